package service

import (
	"time"

	"github.com/okian/fplpulse/internal/adapters/repository"
	"github.com/okian/fplpulse/internal/domain/enrich"
	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/domain/ranking"
	"github.com/okian/fplpulse/internal/render"
	"github.com/okian/fplpulse/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the snapshot source.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithStore sets where reports and indexes are persisted.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithEnricher sets the enrichment stage.
func WithEnricher(e *enrich.Enricher) Option {
	return func(s *Service) {
		if e != nil {
			s.enricher = e
		}
	}
}

// WithRanker sets the filter and rank stage.
func WithRanker(r *ranking.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithRenderer sets the render stage.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithVariants selects the reports produced per run, in order.
func WithVariants(variants ...model.Variant) Option {
	return func(s *Service) {
		if len(variants) > 0 {
			s.variants = variants
		}
	}
}

// WithClock sets the source of the run timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone report dates and file names use.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunID sets the id generator used to tag each run's log lines.
func WithRunID(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.runID = gen
		}
	}
}
