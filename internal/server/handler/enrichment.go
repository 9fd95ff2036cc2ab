package handler

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/morikuni/failure/v2"
	"github.com/takatori/gprofiler/internal/enrichment"
	"github.com/takatori/gprofiler/internal/errors"
)

// Session serializes access to one Enricher, which keeps the active query
// and must not be used concurrently.
type Session struct {
	mu       sync.Mutex
	enricher enrichment.Enricher
}

func NewSession(e enrichment.Enricher) *Session {
	return &Session{enricher: e}
}

// QueryURLResponse is the body returned by the URL endpoints.
type QueryURLResponse struct {
	URL string `json:"url"`
}

// NewQueryHandler runs an enrichment query and returns the parsed records.
func NewQueryHandler(s *Session) func(echo.Context) error {
	return func(c echo.Context) error {
		opts, err := parseOptions(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}

		s.mu.Lock()
		records, err := s.enricher.Fetch(c.Request().Context(), opts)
		s.mu.Unlock()
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(http.StatusOK, records)
	}
}

// NewActiveQueryHandler re-runs the last query submitted through the session
// as a GET on its URL.
func NewActiveQueryHandler(s *Session) func(echo.Context) error {
	return func(c echo.Context) error {
		s.mu.Lock()
		records, err := s.enricher.FetchURL(c.Request().Context(), nil)
		s.mu.Unlock()
		if err != nil {
			return errorResponse(c, activeQueryError(err))
		}

		return c.JSON(http.StatusOK, records)
	}
}

// NewQueryURLHandler returns a shareable GET URL for the posted query.
func NewQueryURLHandler(s *Session) func(echo.Context) error {
	return func(c echo.Context) error {
		opts, err := parseOptions(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		return queryURL(c, s, opts)
	}
}

// NewActiveQueryURLHandler returns the URL of the last query submitted through the session.
func NewActiveQueryURLHandler(s *Session) func(echo.Context) error {
	return func(c echo.Context) error {
		return queryURL(c, s, nil)
	}
}

func queryURL(c echo.Context, s *Session, opts *enrichment.QueryOptions) error {
	s.mu.Lock()
	u, ok, err := s.enricher.QueryURL(opts)
	s.mu.Unlock()
	if err != nil {
		if opts == nil {
			err = activeQueryError(err)
		}
		return errorResponse(c, err)
	}
	if !ok {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "query is too long to be represented as a URL"})
	}

	return c.JSON(http.StatusOK, QueryURLResponse{URL: u})
}

// parseOptions decodes the request body into query options
func parseOptions(c echo.Context) (*enrichment.QueryOptions, error) {
	var opts enrichment.QueryOptions
	if err := c.Bind(&opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// activeQueryError reports a missing active query as NotFound.
func activeQueryError(err error) error {
	if !failure.Is(err, errors.ErrValidation) {
		return err
	}
	return failure.Translate(
		err,
		errors.ErrNotFound,
		failure.Field(failure.Message("no active query")),
	)
}

func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case failure.Is(err, errors.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no active query"})
	case failure.Is(err, errors.ErrValidation, errors.ErrInvalidArgument):
		status = http.StatusBadRequest
	case failure.Is(err, errors.ErrTransport):
		status = http.StatusBadGateway
	}
	if status != http.StatusBadRequest {
		slog.ErrorContext(c.Request().Context(), "enrichment request failed", "error", err)
		return c.JSON(status, map[string]string{"error": http.StatusText(status)})
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
