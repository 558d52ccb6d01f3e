// Package config centralizes CLI configuration into one typed struct,
// populated from built-in defaults, then an optional YAML file, then
// command-line flags — each layer overriding the one before it.
package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the geoindex CLI.
type Config struct {
	// MaxDocsPerLeaf bounds how many points a KDB tree leaf may hold.
	MaxDocsPerLeaf int `yaml:"maxDocsPerLeaf"`
	// MaxPrintedIDs caps how many matching ids are printed per query
	// before the output is truncated with an ellipsis.
	MaxPrintedIDs int `yaml:"maxPrintedIDs"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"logLevel"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"logFormat"`
	// MetricsAddr, if non-empty, is the address the CLI serves a
	// Prometheus /metrics endpoint on for the duration of the run.
	MetricsAddr string `yaml:"metricsAddr"`
}

// Default returns a Config populated with the CLI's built-in defaults.
func Default() Config {
	return Config{
		MaxDocsPerLeaf: 1024,
		MaxPrintedIDs:  25,
		LogLevel:       "info",
		LogFormat:      "text",
		MetricsAddr:    "",
	}
}

// Args is the result of parsing the CLI's flags and positional arguments.
type Args struct {
	Config
	PointsFile  string
	QueriesFile string
}

// Parse parses args (typically os.Args[1:]) against usage text written to
// out. It applies defaults, then an optional -config YAML file, then
// flags, then the two required positional arguments and the optional
// third maxDocsPerLeaf positional argument (which, if given, overrides
// both the default and any config-file value).
func Parse(argv []string, out *os.File) (Args, error) {
	fs := flag.NewFlagSet("geoindex", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "usage: %s [flags] <points-file> <queries-file> [maxDocsPerLeaf]\n\n", fs.Name())
		fmt.Fprintf(out, "flags:\n")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "optional YAML config file")
	maxPrinted := fs.Int("max-printed", 0, "max ids printed per query (0 = use default/config)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "log format: text, json")
	metricsAddr := fs.String("metrics-addr", "", "address to serve /metrics on, e.g. :9090 (empty disables)")

	if err := fs.Parse(argv); err != nil {
		return Args{}, err
	}

	cfg := Default()
	if *configPath != "" {
		fileCfg, err := loadFile(*configPath)
		if err != nil {
			fs.Usage()
			return Args{}, fmt.Errorf("loading -config %s: %w", *configPath, err)
		}
		cfg = mergeNonZero(cfg, fileCfg)
	}

	if *maxPrinted != 0 {
		cfg.MaxPrintedIDs = *maxPrinted
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	rest := fs.Args()
	if len(rest) < 2 || len(rest) > 3 {
		fs.Usage()
		return Args{}, fmt.Errorf("expected 2 or 3 positional arguments, got %d", len(rest))
	}

	args := Args{Config: cfg, PointsFile: rest[0], QueriesFile: rest[1]}
	if len(rest) == 3 {
		n, err := parsePositiveInt(rest[2])
		if err != nil {
			fs.Usage()
			return Args{}, fmt.Errorf("maxDocsPerLeaf: %w", err)
		}
		args.MaxDocsPerLeaf = n
	}
	if args.MaxDocsPerLeaf < 2 {
		fs.Usage()
		return Args{}, fmt.Errorf("maxDocsPerLeaf must be >= 2, got %d", args.MaxDocsPerLeaf)
	}

	return args, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing yaml: %w", err)
	}
	return cfg, nil
}

// mergeNonZero overlays override's non-zero fields onto base.
func mergeNonZero(base, override Config) Config {
	if override.MaxDocsPerLeaf != 0 {
		base.MaxDocsPerLeaf = override.MaxDocsPerLeaf
	}
	if override.MaxPrintedIDs != 0 {
		base.MaxPrintedIDs = override.MaxPrintedIDs
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.LogFormat != "" {
		base.LogFormat = override.LogFormat
	}
	if override.MetricsAddr != "" {
		base.MetricsAddr = override.MetricsAddr
	}
	return base
}

func parsePositiveInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	if n < 2 {
		return 0, fmt.Errorf("must be >= 2, got %d", n)
	}
	return n, nil
}
