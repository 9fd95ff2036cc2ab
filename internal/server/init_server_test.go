package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/takatori/gprofiler/internal"
	"github.com/takatori/gprofiler/internal/enrichment/gprofiler"
)

func TestInitServer(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("1\t!\t0.01\t100\t50\t5\t0.5\t0.1\tGO:0001\tBP\tsub1\tName1\t3\tid1,id2\n"))
	}))
	defer upstream.Close()

	reg := prometheus.NewRegistry()
	gp, err := gprofiler.NewGProfiler(&internal.Config{
		GProfilerUrl: upstream.URL + "/",
		MaxUrlLen:    4096,
		Timeout:      5 * time.Second,
	}, gprofiler.WithPrometheus(reg))
	if err != nil {
		t.Fatalf("NewGProfiler() error = %v", err)
	}

	e, err := InitServer(gp, reg)
	if err != nil {
		t.Fatalf("InitServer() error = %v", err)
	}

	tests := []struct {
		method   string
		path     string
		body     string
		expected int
		contains string
	}{
		{http.MethodGet, "/health", "", http.StatusOK, "g:Profiler"},
		{http.MethodGet, "/enrichment/url", "", http.StatusNotFound, "no active query"},
		{http.MethodGet, "/enrichment/query", "", http.StatusNotFound, "no active query"},
		{http.MethodPost, "/enrichment/query", `{"query":"TP53"}`, http.StatusOK, `"term_id":"GO:0001"`},
		{http.MethodGet, "/enrichment/url", "", http.StatusOK, "query=TP53"},
		{http.MethodGet, "/enrichment/query", "", http.StatusOK, `"term_id":"GO:0001"`},
		{http.MethodPost, "/enrichment/url", `{"query":["TP53","BRCA1"]}`, http.StatusOK, "query=TP53%20BRCA1"},
		{http.MethodPost, "/enrichment/query", `{"organism":"hsapiens"}`, http.StatusBadRequest, "error"},
		{http.MethodGet, "/metrics", "", http.StatusOK, "gprofiler_client_operations_total"},
	}

	for _, test := range tests {
		var req *http.Request
		if test.body == "" {
			req = httptest.NewRequest(test.method, test.path, nil)
		} else {
			req = httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != test.expected {
			t.Errorf("%s %s: status = %d, expected %d (body %s)", test.method, test.path, rec.Code, test.expected, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), test.contains) {
			t.Errorf("%s %s: body %q does not contain %q", test.method, test.path, rec.Body.String(), test.contains)
		}
	}
}
