package gprofiler

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/takatori/gprofiler/internal"
	"github.com/takatori/gprofiler/internal/enrichment"
	"github.com/takatori/gprofiler/internal/errors"
	"github.com/takatori/gprofiler/internal/infra"
)

// ResultFunc receives the outcome of an asynchronous Query exactly once.
type ResultFunc func([]enrichment.Record, error)

// GProfiler queries the g:Profiler g:GOSt service.
//
// A GProfiler remembers the last successfully normalized query (the active
// query) so it can be re-encoded later without repeating the options. It is
// not safe for concurrent use.
type GProfiler struct {
	rootURL    string
	maxURLLen  int
	httpClient *infra.HttpClient
	logger     *slog.Logger
	registerer prometheus.Registerer
	obs        *observer

	activeQuery *Attributes
}

var _ enrichment.Enricher = (*GProfiler)(nil)

// NewGProfiler creates a GProfiler for the service configured in config.
func NewGProfiler(config *internal.Config, opts ...Option) (*GProfiler, error) {
	g := &GProfiler{
		rootURL:   config.GProfilerUrl,
		maxURLLen: config.MaxUrlLen,
	}
	for _, o := range opts {
		o(g)
	}
	if g.httpClient == nil {
		g.httpClient = infra.NewHttpClient(config.Timeout)
	}

	obs, err := newObserver(g.logger, g.registerer)
	if err != nil {
		return nil, err
	}
	g.obs = obs

	return g, nil
}

// RootURL returns the service root URL.
func (g *GProfiler) RootURL() string {
	return g.rootURL
}

// active returns a copy of the active query, or nil if none was made yet.
func (g *GProfiler) active() *Attributes {
	if g.activeQuery == nil {
		return nil
	}
	return g.activeQuery.clone()
}

// QueryParams returns the wire parameters for opts. A nil opts re-encodes the
// active query.
func (g *GProfiler) QueryParams(opts *enrichment.QueryOptions) (WireParams, error) {
	attrs, err := g.attributes(opts)
	if err != nil {
		return nil, err
	}
	return transformAttrs(attrs), nil
}

// QueryURL returns a GET URL encoding the query. ok is false when the URL
// would exceed the configured maximum length; that is not an error.
func (g *GProfiler) QueryURL(opts *enrichment.QueryOptions) (u string, ok bool, err error) {
	start := time.Now()
	defer func() { g.obs.observe("url", start, err, "length", len(u)) }()

	params, err := g.QueryParams(opts)
	if err != nil {
		return "", false, err
	}

	u = g.rootURL + "?" + params.encodeQuery()
	if len(u) > g.maxURLLen {
		return "", false, nil
	}
	return u, true, nil
}

// Query submits the query and delivers the parsed records to cb on a separate
// goroutine. Validation errors are returned before any request is sent; a
// transport failure is passed to cb instead.
func (g *GProfiler) Query(ctx context.Context, opts *enrichment.QueryOptions, cb ResultFunc) error {
	if cb == nil {
		return failure.New(
			errors.ErrInvalidArgument,
			failure.Field(failure.Message("the cb parameter is required and must be a function")),
		)
	}

	form, err := g.postData(opts)
	if err != nil {
		return err
	}

	go func() {
		cb(g.send(ctx, form))
	}()
	return nil
}

// Fetch submits the query and blocks until the parsed records are available.
func (g *GProfiler) Fetch(ctx context.Context, opts *enrichment.QueryOptions) ([]enrichment.Record, error) {
	form, err := g.postData(opts)
	if err != nil {
		return nil, err
	}
	return g.send(ctx, form)
}

// FetchURL runs the query as a GET on its URL instead of a form POST. A query
// too long to be represented as a URL fails with InvalidArgument.
func (g *GProfiler) FetchURL(ctx context.Context, opts *enrichment.QueryOptions) (records []enrichment.Record, err error) {
	start := time.Now()
	defer func() { g.obs.observe("query_get", start, err, "records", len(records)) }()

	params, err := g.postData(opts)
	if err != nil {
		return nil, err
	}

	u := g.rootURL + "?" + params.encodeQuery()
	if len(u) > g.maxURLLen {
		return nil, failure.New(
			errors.ErrInvalidArgument,
			failure.Field(failure.Message("query is too long to be represented as a URL")),
			failure.Context{
				"length": strconv.Itoa(len(u)),
			},
		)
	}

	body, err := g.httpClient.GetText(ctx, infra.Request{
		Url: u,
	})
	if err != nil {
		return nil, err
	}

	return parseResult(body), nil
}

func (g *GProfiler) attributes(opts *enrichment.QueryOptions) (*Attributes, error) {
	if opts == nil {
		if g.activeQuery == nil {
			return nil, failure.New(
				errors.ErrValidation,
				failure.Field(failure.Message("no active query associated with GProfiler")),
			)
		}
		return g.activeQuery, nil
	}

	attrs, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	g.activeQuery = attrs
	return attrs, nil
}

func (g *GProfiler) postData(opts *enrichment.QueryOptions) (WireParams, error) {
	params, err := g.QueryParams(opts)
	if err != nil {
		return nil, err
	}
	params["output"] = "mini"
	return params, nil
}

func (g *GProfiler) send(ctx context.Context, form WireParams) (records []enrichment.Record, err error) {
	start := time.Now()
	defer func() { g.obs.observe("query", start, err, "records", len(records)) }()

	body, err := g.httpClient.PostForm(ctx, infra.FormRequest{
		Request: infra.Request{
			Url: g.rootURL,
		},
		Form: form.Values(),
	})
	if err != nil {
		return nil, err
	}

	return parseResult(body), nil
}
