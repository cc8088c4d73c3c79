package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ChipTick/internal/domain/models"
	drepo "ChipTick/internal/domain/repository"
	"ChipTick/internal/sim"
	"ChipTick/pkg/logger"
)

// TickRunner executes one daily invocation end to end: load, advance (or
// bootstrap), persist, publish, archive. Persistence always writes the
// private state before the public history, so a crash in between leaves
// the countdown and regime consistent with the last published point.
type TickRunner struct {
	history    drepo.HistoryStore
	state      drepo.StateStore
	driver     *sim.Driver
	backfiller *sim.Backfiller
	publisher  drepo.ItemPublisher
	archivers  []drepo.Archiver
	metrics    drepo.Metrics
	page       *PageWriter
	log        *logger.Logger

	symbol         string
	publishTimeout time.Duration
}

// TickRunnerOption configures TickRunner.
type TickRunnerOption func(*TickRunner)

// WithPublisher enables pushing the result to the external store item.
func WithPublisher(p drepo.ItemPublisher, timeout time.Duration) TickRunnerOption {
	return func(r *TickRunner) {
		r.publisher = p
		r.publishTimeout = timeout
	}
}

// WithArchivers enables forwarding appended points to downstream sinks.
func WithArchivers(a ...drepo.Archiver) TickRunnerOption {
	return func(r *TickRunner) {
		r.archivers = a
	}
}

// WithPage enables materializing the static chart page when missing.
func WithPage(p *PageWriter) TickRunnerOption {
	return func(r *TickRunner) {
		r.page = p
	}
}

func NewTickRunner(
	history drepo.HistoryStore,
	state drepo.StateStore,
	driver *sim.Driver,
	backfiller *sim.Backfiller,
	metrics drepo.Metrics,
	log *logger.Logger,
	symbol string,
	opts ...TickRunnerOption,
) *TickRunner {
	r := &TickRunner{
		history:        history,
		state:          state,
		driver:         driver,
		backfiller:     backfiller,
		metrics:        metrics,
		log:            log,
		symbol:         symbol,
		publishTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one simulated day ending at today. Persistence and publish
// failures are terminal; archive failures are logged and counted only.
func (r *TickRunner) Run(ctx context.Context, today time.Time) (*models.TickResult, error) {
	start := time.Now()

	if r.page != nil {
		if err := r.page.Ensure(); err != nil {
			r.metrics.RecordError("page")
			r.log.Warn("chart page not written", logger.Error(err))
		}
	}

	hist, legacy, err := r.history.Load()
	if err != nil {
		r.metrics.RecordError("load")
		return nil, fmt.Errorf("load history: %w", err)
	}
	st, err := r.state.Load()
	if err != nil {
		r.metrics.RecordError("load")
		return nil, fmt.Errorf("load state: %w", err)
	}
	st.Merge(legacy)

	var res *models.TickResult
	if len(hist.History) < 2 {
		res = r.bootstrap(today, hist, st)
	} else {
		res, err = r.driver.Advance(today, hist, st)
		if err != nil {
			r.metrics.RecordError("advance")
			return nil, err
		}
	}

	// State first: replaying with a stale countdown is worse than
	// replaying with a stale history tail.
	if err := r.state.Save(st); err != nil {
		r.metrics.RecordError("persist")
		return nil, fmt.Errorf("save state: %w", err)
	}
	if err := r.history.Save(hist); err != nil {
		r.metrics.RecordError("persist")
		return nil, fmt.Errorf("save history: %w", err)
	}

	r.record(res)

	if r.publisher != nil {
		pubCtx, cancel := context.WithTimeout(ctx, r.publishTimeout)
		err := r.publisher.Publish(pubCtx, res)
		cancel()
		if err != nil {
			r.metrics.RecordError("publish")
			return nil, fmt.Errorf("publish item: %w", err)
		}
	}

	if res.Appended {
		r.archive(ctx, hist)
	}

	r.metrics.RecordLatency("tick", time.Since(start).Seconds())
	r.log.Info("tick complete",
		logger.String("date", res.Date),
		logger.Int64("price", res.Price),
		logger.Strings("notes", res.Notes),
		logger.Bool("backfilled", res.Backfilled),
		logger.Bool("appended", res.Appended))
	return res, nil
}

// bootstrap seeds the history with the deterministic backfill series and
// draws the initial shock countdown. Any stub points are replaced whole.
func (r *TickRunner) bootstrap(today time.Time, hist *models.History, st *models.SimState) *models.TickResult {
	hist.History = r.backfiller.Generate(today)
	r.driver.EnsureState(st)
	last, _ := hist.Last()
	return &models.TickResult{
		Date:       last.Date,
		Price:      last.Price,
		Backfilled: true,
		Appended:   true,
	}
}

func (r *TickRunner) record(res *models.TickResult) {
	r.metrics.RecordLastPrice(r.symbol, float64(res.Price))
	if res.Appended && !res.Backfilled {
		regime := res.Regime
		if regime == "" {
			regime = sim.RegimeNormal
		}
		r.metrics.RecordRegimeDay(regime)
	}
	for _, n := range res.Notes {
		if strings.Contains(n, "shock +") {
			r.metrics.RecordShock("up")
		} else if strings.Contains(n, "shock -") {
			r.metrics.RecordShock("down")
		}
	}
}

func (r *TickRunner) archive(ctx context.Context, hist *models.History) {
	last, ok := hist.Last()
	if !ok {
		return
	}
	for _, a := range r.archivers {
		if err := a.Archive(ctx, r.symbol, last); err != nil {
			r.metrics.RecordError("archive")
			r.log.Warn("archive failed", logger.Error(err))
		}
	}
}
