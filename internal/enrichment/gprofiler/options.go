package gprofiler

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/takatori/gprofiler/internal/infra"
)

// Option configures a GProfiler.
type Option func(*GProfiler)

// WithHttpClient replaces the transport.
func WithHttpClient(c *infra.HttpClient) Option {
	return func(g *GProfiler) {
		g.httpClient = c
	}
}

// WithLogger enables operation logging.
func WithLogger(l *slog.Logger) Option {
	return func(g *GProfiler) {
		g.logger = l
	}
}

// WithPrometheus registers operation counts and durations on reg.
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(g *GProfiler) {
		g.registerer = reg
	}
}
