package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/fplpulse/internal/adapters/http/bootstrap"
	"github.com/okian/fplpulse/internal/adapters/repository"
	app "github.com/okian/fplpulse/internal/app"
	"github.com/okian/fplpulse/internal/config"
	"github.com/okian/fplpulse/internal/domain/enrich"
	"github.com/okian/fplpulse/internal/domain/ranking"
	"github.com/okian/fplpulse/pkg/logger"
	"github.com/okian/fplpulse/pkg/metrics"
)

const progName = "fplpulse"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run performs one report run and returns the process exit code.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	fail := func(err error) int {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return 1
	}

	// Initialize logging with defaults until the config says otherwise
	if err := logger.Init(logger.WithWriter(stdout)); err != nil {
		return fail(fmt.Errorf("initialize logging: %w", err))
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration (defaults -> optional file -> .env -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fail(err)
	}
	if err := logger.Init(logger.WithWriter(stdout), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fail(fmt.Errorf("initialize logging: %w", err))
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := newService(cfg, log)
	if err != nil {
		return fail(err)
	}

	_, runErr := svc.Run(ctx)

	// Export metrics for failed runs too; an export error never changes the outcome.
	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Warn(ctx, "metrics export failed", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
	}

	if runErr != nil {
		return fail(runErr)
	}
	return 0
}

// newService wires the pipeline from cfg. cfg must already be validated.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	variants, err := cfg.Variants()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return app.New(
		app.WithLogger(log),
		app.WithFetcher(bootstrap.New(
			bootstrap.WithURL(cfg.BootstrapURL),
			bootstrap.WithTimeout(cfg.FetchTimeout()),
			bootstrap.WithRetries(cfg.FetchRetries),
			bootstrap.WithUserAgent(cfg.UserAgent),
		)),
		app.WithStore(repository.NewFSStore(
			repository.WithOutputDir(cfg.OutputDir),
			repository.WithDocsDir(cfg.DocsDir),
			repository.WithLockTimeout(cfg.LockTimeout()),
		)),
		app.WithEnricher(enrich.New(enrich.WithOwnershipThreshold(cfg.OwnershipThreshold))),
		app.WithRanker(ranking.New(
			ranking.WithOwnershipCap(cfg.OwnershipCap),
			ranking.WithPriceCap(cfg.PriceCap),
			ranking.WithLossStrategy(cfg.LossStrategyValue()),
		)),
		app.WithVariants(variants...),
		app.WithLocation(loc),
	), nil
}
