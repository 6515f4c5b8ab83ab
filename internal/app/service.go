// Package service runs the report pipeline: fetch, resolve, enrich, rank,
// render and persist, then regenerate the history indexes.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/fplpulse/internal/adapters/http/bootstrap"
	"github.com/okian/fplpulse/internal/adapters/repository"
	"github.com/okian/fplpulse/internal/domain/enrich"
	"github.com/okian/fplpulse/internal/domain/history"
	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/internal/domain/ranking"
	"github.com/okian/fplpulse/internal/domain/teams"
	"github.com/okian/fplpulse/internal/domain/types"
	"github.com/okian/fplpulse/internal/render"
	"github.com/okian/fplpulse/pkg/logger"
	"github.com/okian/fplpulse/pkg/metrics"
)

// Stage names used in logs and metrics.
const (
	StageFetch   = "fetch"
	StageResolve = "resolve"
	StageEnrich  = "enrich"
	StageRank    = "rank"
	StageRender  = "render"
	StageLock    = "lock"
	StageIndex   = "index"
	StagePersist = "persist"
)

// formats are rendered for every variant, in this order.
var formats = []render.Format{render.TXT, render.MD, render.HTML}

// indexFormats get a regenerated history index each run.
var indexFormats = []render.Format{render.MD, render.HTML}

// Fetcher returns one snapshot per call.
type Fetcher interface {
	Fetch(ctx context.Context) (model.Snapshot, error)
}

// VariantResult summarises one report of a run.
type VariantResult struct {
	Variant  model.Variant
	Enriched int
	Sets     map[types.SetKind]int
}

// Result summarises a successful run.
type Result struct {
	RunID       string
	GeneratedAt time.Time
	Players     int
	Teams       int
	Reports     []VariantResult
	Files       []repository.Written
}

// Service runs the pipeline. A run is all or nothing: any failure aborts it
// before anything is persisted, or rolls back what the run wrote.
type Service struct {
	fetcher  Fetcher
	store    repository.Store
	enricher *enrich.Enricher
	ranker   *ranking.Ranker
	renderer *render.Renderer
	variants []model.Variant
	now      func() time.Time
	loc      *time.Location
	runID    func() string
	logger   logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fetcher:  bootstrap.New(),
		store:    repository.NewFSStore(),
		enricher: enrich.New(),
		ranker:   ranking.New(),
		renderer: render.New(),
		variants: []model.Variant{model.OwnershipVariant, model.PriceVariant},
		now:      time.Now,
		loc:      time.Local,
		runID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Run executes one full recomputation from a fresh snapshot.
func (s *Service) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: s.runID(), GeneratedAt: s.now().In(s.loc)}
	log := s.logger.With(logger.String("run_id", res.RunID))
	start := time.Now()

	log.Info(ctx, "run started",
		logger.String("generated_at", res.GeneratedAt.Format(time.RFC3339)),
		logger.Any("variants", variantNames(s.variants)))

	err := s.run(ctx, log, &res)
	metrics.RecordRunDuration(msSince(start))
	if err != nil {
		metrics.RecordRun(metrics.StatusFailure, 0)
		log.Error(ctx, "run failed",
			logger.String("kind", model.ErrorKind(err)),
			logger.Duration("took", time.Since(start)),
			logger.Error(err))
		return Result{}, err
	}

	metrics.RecordRun(metrics.StatusSuccess, res.GeneratedAt.Unix())
	for _, r := range res.Reports {
		log.Info(ctx, "report summary",
			logger.String("variant", r.Variant.String()),
			logger.Int("enriched", r.Enriched),
			logger.Any("sets", r.Sets))
	}
	log.Info(ctx, "run finished",
		logger.Int("files", len(res.Files)),
		logger.Duration("took", time.Since(start)))
	return res, nil
}

func (s *Service) run(ctx context.Context, log logger.Logger, res *Result) error {
	var snap model.Snapshot
	if err := s.stage(ctx, log, StageFetch, func() (err error) {
		snap, err = s.fetcher.Fetch(ctx)
		return err
	}); err != nil {
		return err
	}
	res.Players, res.Teams = len(snap.Players), len(snap.Teams)
	metrics.UpdateSnapshotSize(res.Players, res.Teams)
	log.Info(ctx, "snapshot fetched", logger.Int("players", res.Players), logger.Int("teams", res.Teams))

	var docs []repository.Document
	for _, v := range s.variants {
		vdocs, summary, err := s.report(ctx, log, snap, v, res.GeneratedAt)
		if err != nil {
			return fmt.Errorf("%s report: %w", v, err)
		}
		docs = append(docs, vdocs...)
		res.Reports = append(res.Reports, summary)
	}

	written, err := s.persist(ctx, log, docs, res.GeneratedAt)
	if err != nil {
		return err
	}
	res.Files = written
	return nil
}

// report derives, ranks and renders one variant without touching the store.
func (s *Service) report(ctx context.Context, log logger.Logger, snap model.Snapshot, v model.Variant, at time.Time) ([]repository.Document, VariantResult, error) {
	summary := VariantResult{Variant: v, Sets: make(map[types.SetKind]int)}

	var idx teams.Index
	if err := s.stage(ctx, log, StageResolve, func() (err error) {
		idx, err = teams.Resolve(snap.Teams, teams.ModeFor(v))
		return err
	}); err != nil {
		return nil, summary, err
	}

	var enriched []model.EnrichedPlayer
	if err := s.stage(ctx, log, StageEnrich, func() (err error) {
		enriched, err = s.enricher.Enrich(ctx, snap.Players, idx, v)
		return err
	}); err != nil {
		return nil, summary, err
	}
	summary.Enriched = len(enriched)
	metrics.UpdatePlayersEnriched(v.String(), len(enriched))

	var sets []types.RankedSet
	if err := s.stage(ctx, log, StageRank, func() (err error) {
		sets, err = s.ranker.Rank(enriched, v)
		return err
	}); err != nil {
		return nil, summary, err
	}
	for _, set := range sets {
		summary.Sets[set.Kind] = set.Len()
		metrics.UpdateRankedEntries(v.String(), string(set.Kind), set.Len())
	}

	report := types.Report{Variant: v, GeneratedAt: at, Sets: sets}
	var rendered []render.Rendered
	if err := s.stage(ctx, log, StageRender, func() (err error) {
		rendered, err = s.renderer.RenderAll(report, formats...)
		return err
	}); err != nil {
		return nil, summary, err
	}

	docs := make([]repository.Document, 0, len(rendered))
	for _, r := range rendered {
		area := repository.DocsArea
		if r.Format == render.TXT {
			area = repository.OutputArea
		}
		docs = append(docs, repository.Document{
			Area: area,
			Name: repository.FileName(v.Kind(), at, r.Format.Ext()),
			Body: r.Body,
		})
	}
	return docs, summary, nil
}

// persist takes the index lock, regenerates the indexes over the existing
// history plus this run's documents, and commits everything as one batch.
func (s *Service) persist(ctx context.Context, log logger.Logger, docs []repository.Document, at time.Time) ([]repository.Written, error) {
	var unlock func() error
	if err := s.stage(ctx, log, StageLock, func() (err error) {
		unlock, err = s.store.LockIndex(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			log.Warn(ctx, "release index lock", logger.Error(err))
		}
	}()

	if err := s.stage(ctx, log, StageIndex, func() error {
		lister := pendingLister{base: repository.NewAreaLister(s.store, repository.DocsArea), pending: docs}
		for _, f := range indexFormats {
			hist, err := history.Load(ctx, lister, f.Ext())
			if err != nil {
				return err
			}
			metrics.UpdateHistorySize(f.Ext(), len(hist.Entries))
			doc, err := s.renderer.Index(hist, at)
			if err != nil {
				return err
			}
			docs = append(docs, repository.Document{
				Area: repository.DocsArea,
				Name: history.IndexBase + f.Ext(),
				Body: doc.Body,
			})
		}
		return nil
	}); err != nil {
		return nil, err
	}

	var written []repository.Written
	if err := s.stage(ctx, log, StagePersist, func() (err error) {
		written, err = s.store.Commit(ctx, docs)
		return err
	}); err != nil {
		return nil, err
	}
	for i, w := range written {
		metrics.RecordReportWritten(formatOf(docs[i].Name), w.Size)
		log.Debug(ctx, "wrote file", logger.String("path", w.Path), logger.Int("bytes", w.Size))
	}
	return written, nil
}

// stage times fn, records its metrics and tags errors with the stage name.
func (s *Service) stage(ctx context.Context, log logger.Logger, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStageDuration(name, msSince(start))
	if err != nil {
		metrics.RecordError(name, model.ErrorKind(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	log.Debug(ctx, "stage done", logger.String("stage", name), logger.Duration("took", time.Since(start)))
	return nil
}

// pendingLister lists the docs area as it will look after this run commits.
type pendingLister struct {
	base    history.Lister
	pending []repository.Document
}

func (l pendingLister) List(ctx context.Context) ([]string, error) {
	names, err := l.base.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		seen[n] = struct{}{}
	}
	for _, d := range l.pending {
		if _, dup := seen[d.Name]; d.Area == repository.DocsArea && !dup {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

func formatOf(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

func variantNames(vs []model.Variant) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.String())
	}
	return out
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
