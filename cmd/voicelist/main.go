// Command voicelist prints the text-to-speech voices installed on the host,
// with full detail for high-quality voices and a one-line summary for the rest.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/MrWong99/voicelist/internal/config"
	"github.com/MrWong99/voicelist/internal/lister"
	"github.com/MrWong99/voicelist/internal/observe"
	"github.com/MrWong99/voicelist/pkg/voice"
	"github.com/MrWong99/voicelist/pkg/voice/catalog"
	"github.com/MrWong99/voicelist/pkg/voice/macos"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	fs := flag.NewFlagSet("voicelist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to an optional YAML configuration file")
	sourceName := fs.String("source", config.SourceSystem, "voice source: system or catalog")
	catalogPath := fs.String("catalog", "", "YAML voice catalogue (implies -source catalog)")
	threshold := fs.Int("threshold", lister.DefaultThreshold, "minimum desirability for the detailed block")
	lang := fs.String("lang", "", "only list voices of this base language (BCP-47, e.g. en)")
	logLevel := fs.String("log-level", string(config.LogInfo), "log level: debug, info, warn, error")
	metrics := fs.Bool("metrics", false, "write Prometheus metrics to stderr on exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	// ── Configuration ─────────────────────────────────────────────────────────
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Read(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "voicelist: %v\n", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source.Name = *sourceName
		case "catalog":
			cfg.Source.Path = *catalogPath
			if !isSet(fs, "source") {
				cfg.Source.Name = config.SourceCatalog
			}
		case "threshold":
			cfg.Output.Threshold = *threshold
		case "lang":
			cfg.Output.Language = *lang
		case "log-level":
			cfg.LogLevel = config.LogLevel(*logLevel)
		case "metrics":
			cfg.Metrics = *metrics
		}
	})

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.LogLevel, stderr)
	slog.SetDefault(logger)

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "voicelist: %v\n", err)
		return 1
	}
	logger.Debug("voicelist starting",
		"version", version,
		"source", cfg.Source.Name,
		"threshold", cfg.Output.Threshold,
		"language", cfg.Output.Language,
	)

	// ── Telemetry ─────────────────────────────────────────────────────────────
	met := observe.DefaultMetrics()
	var registry *prometheus.Registry
	if cfg.Metrics {
		registry = prometheus.NewRegistry()
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceVersion: version,
			Registerer:     registry,
		})
		if err != nil {
			logger.Error("failed to initialise telemetry", "err", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("telemetry shutdown error", "err", err)
			}
		}()
		if met, err = observe.NewMetrics(otel.GetMeterProvider()); err != nil {
			logger.Error("failed to create metrics", "err", err)
			return 1
		}
	}

	// ── Source ────────────────────────────────────────────────────────────────
	reg := config.NewRegistry()
	registerBuiltinSources(reg)
	src, err := reg.CreateSource(cfg.Source)
	if err != nil {
		logger.Error("failed to create voice source", "source", cfg.Source.Name, "err", err)
		return 1
	}

	// ── List ──────────────────────────────────────────────────────────────────
	l := lister.New(
		lister.WithThreshold(cfg.Output.Threshold),
		lister.WithLanguage(cfg.LanguageTag()),
		lister.WithMetrics(met),
		lister.WithLogger(logger),
	)
	code := 0
	if err := l.Write(ctx, src, stdout); err != nil {
		switch {
		case errors.Is(err, macos.ErrUnsupported):
			logger.Error("the system voice database is not available here; use -catalog", "err", err)
		case errors.Is(err, voice.ErrMissingAttribute):
			logger.Error("voice database returned an incomplete voice", "err", err)
		default:
			logger.Error("listing failed", "err", err)
		}
		code = 1
	}

	if registry != nil {
		if err := observe.WriteMetrics(stderr, registry); err != nil {
			logger.Warn("failed to write metrics", "err", err)
		}
	}
	return code
}

// registerBuiltinSources wires the voice sources that ship with voicelist
// into reg.
func registerBuiltinSources(reg *config.Registry) {
	reg.RegisterSource(config.SourceSystem, func(config.SourceConfig) (voice.Source, error) {
		return macos.New(), nil
	})
	reg.RegisterSource(config.SourceCatalog, func(entry config.SourceConfig) (voice.Source, error) {
		return catalog.Load(entry.Path)
	})
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
