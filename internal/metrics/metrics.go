// Package metrics exposes the CLI's Prometheus collectors and, when a
// listen address is configured, a /metrics HTTP endpoint served for the
// duration of a run.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geoindex_queries_total",
		Help: "Number of queries executed against the index.",
	})

	HitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geoindex_hits_total",
		Help: "Total number of points returned across all queries.",
	})

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoindex_query_duration_seconds",
		Help:    "Latency of a single Contains query against the index.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	})

	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoindex_build_duration_seconds",
		Help:    "Time spent bulk-loading the index from a points file.",
		Buckets: prometheus.ExponentialBuckets(1e-3, 4, 10),
	})
)

// ObserveQuery records one query's outcome.
func ObserveQuery(elapsed time.Duration, hits int) {
	QueriesTotal.Inc()
	HitsTotal.Add(float64(hits))
	QueryDuration.Observe(elapsed.Seconds())
}

// Server wraps an optional /metrics HTTP listener. Shutdown is safe to call
// on a nil *Server and on the listener-less Server that NewServer returns
// for an empty addr.
type Server struct {
	srv *http.Server
}

// NewServer starts serving /metrics on addr in the background. If addr is
// empty, NewServer returns a Server whose Shutdown is a no-op.
func NewServer(addr string) *Server {
	if addr == "" {
		return &Server{}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return &Server{srv: srv}
}

// Shutdown stops the metrics listener, if one is running.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
