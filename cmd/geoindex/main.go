// Command geoindex builds a spatial index over a file of points and
// answers a batch of bounding-box queries read from a second file,
// reporting per-query and aggregate statistics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/iverase/index-and-search-geo-points/geoindex"
	"github.com/iverase/index-and-search-geo-points/internal/config"
	"github.com/iverase/index-and-search-geo-points/internal/metrics"
	"github.com/iverase/index-and-search-geo-points/internal/points"
	"github.com/iverase/index-and-search-geo-points/internal/queryfile"
	"github.com/iverase/index-and-search-geo-points/internal/report"
)

func main() {
	args, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	log := newLogger(args.LogLevel, args.LogFormat)

	if err := run(args, log); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func run(args config.Args, log *slog.Logger) error {
	stats := report.New()
	log = log.With("run_id", stats.RunID)

	metricsSrv := metrics.NewServer(args.MetricsAddr)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(ctx); err != nil {
			log.Warn("metrics server shutdown", "err", err)
		}
	}()

	pointsFile, err := os.Open(args.PointsFile)
	if err != nil {
		return fmt.Errorf("opening points file: %w", err)
	}
	defer pointsFile.Close()

	pts, err := points.Load(pointsFile)
	if err != nil {
		return fmt.Errorf("loading points: %w", err)
	}
	log.Info("loaded points", "count", len(pts))

	buildStart := time.Now()
	forest, err := geoindex.NewBKDForest(pts, args.MaxDocsPerLeaf)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	buildElapsed := time.Since(buildStart)
	metrics.BuildDuration.Observe(buildElapsed.Seconds())
	log.Info("built index", "trees", len(forest.Trees()), "elapsed", buildElapsed)

	queriesReader, err := os.Open(args.QueriesFile)
	if err != nil {
		return fmt.Errorf("opening queries file: %w", err)
	}
	defer queriesReader.Close()

	queries, err := queryfile.Load(queriesReader, log)
	if err != nil {
		return fmt.Errorf("loading queries: %w", err)
	}
	log.Info("loaded queries", "count", len(queries))

	stats.Start(time.Now())
	for _, q := range queries {
		queryStart := time.Now()
		var collector geoindex.SliceCollector
		forest.Contains(q, &collector)
		elapsed := time.Since(queryStart)

		stats.RecordQuery(elapsed, len(collector.Points))
		metrics.ObserveQuery(elapsed, len(collector.Points))
		report.QueryResult(os.Stdout, q, elapsed, collector.Points, args.MaxPrintedIDs)
	}
	stats.Stop(time.Now())

	stats.Summary(os.Stdout)
	return nil
}
