// Package report accumulates per-run statistics for a geoindex CLI
// invocation and renders them to stdout in the format described by the
// program's external interface: a line per query, followed by a summary
// once every query has run.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/iverase/index-and-search-geo-points/geoindex"
)

// RunStats accumulates per-query latencies and aggregate counts across a
// single CLI invocation. It also carries a RunID used to correlate log
// lines with this particular run.
type RunStats struct {
	RunID string

	latencies []float64 // seconds, one per recorded query
	totalHits int
	started   time.Time
	elapsed   time.Duration
}

// New creates a RunStats with a fresh v4 UUID run identifier.
func New() *RunStats {
	return &RunStats{RunID: uuid.New().String()}
}

// Start marks the beginning of the run's query loop.
func (s *RunStats) Start(now time.Time) {
	s.started = now
}

// Stop marks the end of the run's query loop.
func (s *RunStats) Stop(now time.Time) {
	s.elapsed = now.Sub(s.started)
}

// RecordQuery appends one query's latency and hit count to the run.
func (s *RunStats) RecordQuery(elapsed time.Duration, hits int) {
	s.latencies = append(s.latencies, elapsed.Seconds())
	s.totalHits += hits
}

// QueryResult formats one query's echoed coordinates, hit count, elapsed
// time, and up to maxPrintedIDs matching ids (with a trailing ellipsis if
// truncated) to w.
func QueryResult(w io.Writer, box geoindex.BBox, elapsed time.Duration, points []geoindex.Point, maxPrintedIDs int) {
	fmt.Fprintf(w, "query [minLon=%g maxLon=%g minLat=%g maxLat=%g]: %d hits in %s\n",
		box.MinLon, box.MaxLon, box.MinLat, box.MaxLat, len(points), elapsed)

	n := len(points)
	truncated := n > maxPrintedIDs
	if truncated {
		n = maxPrintedIDs
	}
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = points[i].ID
	}
	fmt.Fprintf(w, "  ids: %v", ids)
	if truncated {
		fmt.Fprintf(w, " ...")
	}
	fmt.Fprintln(w)
}

// Summary renders the run's totals and latency percentiles to w.
func (s *RunStats) Summary(w io.Writer) {
	n := len(s.latencies)
	qps := 0.0
	if s.elapsed > 0 {
		qps = float64(n) / s.elapsed.Seconds()
	}

	p50, p95, p99 := s.percentiles()

	fmt.Fprintf(w, "run %s: %d queries in %s (%.1f qps), %d total hits\n",
		s.RunID, n, s.elapsed, qps, s.totalHits)
	fmt.Fprintf(w, "latency: p50=%s p95=%s p99=%s\n",
		time.Duration(p50*float64(time.Second)),
		time.Duration(p95*float64(time.Second)),
		time.Duration(p99*float64(time.Second)))
}

// percentiles returns the p50/p95/p99 query latencies in seconds. gonum's
// stat.Quantile requires its sample sorted ascending, so a scratch copy is
// sorted once and reused across all three calls.
func (s *RunStats) percentiles() (p50, p95, p99 float64) {
	if len(s.latencies) == 0 {
		return 0, 0, 0
	}
	sorted := append([]float64(nil), s.latencies...)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	p99 = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	return p50, p95, p99
}
