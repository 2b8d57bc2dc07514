// Package dispatcher runs the scheduler tick loop: on every tick it reads
// the configured job windows, asks the window evaluator whether each job may
// run right now, and hands permitted jobs to their call sinks.
package dispatcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/callwave/internal/observability"
	"github.com/hrygo/callwave/server/scheduling/window"
	"github.com/hrygo/callwave/store"
)

// Sink receives a batch of outbound work for a job that is inside its
// window. Implementations wrap the external telephony collaborator; they own
// retries and per-lead bookkeeping.
type Sink interface {
	Dispatch(ctx context.Context, job window.JobName, batchID string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, job window.JobName, batchID string) error

// Dispatch implements Sink.
func (f SinkFunc) Dispatch(ctx context.Context, job window.JobName, batchID string) error {
	return f(ctx, job, batchID)
}

// maxConcurrentDispatches caps how many sinks run at once on a tick.
const maxConcurrentDispatches = 2

// Dispatcher is the scheduler tick loop.
type Dispatcher struct {
	store     *store.Store
	evaluator *window.Evaluator
	sinks     map[window.JobName]Sink
	interval  time.Duration
	logger    *slog.Logger

	// now is injected for tests; production uses time.Now.
	now func() time.Time
}

// New creates a Dispatcher ticking at interval and comparing windows in the
// given reference zone.
func New(st *store.Store, zone *time.Location, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		store:     st,
		evaluator: window.NewEvaluator(zone),
		sinks:     make(map[window.JobName]Sink),
		interval:  interval,
		logger:    slog.Default(),
		now:       time.Now,
	}
}

// Register attaches a sink for a job name. Jobs without a sink are skipped.
// Register is not safe to call after Run has started.
func (d *Dispatcher) Register(job window.JobName, sink Sink) {
	d.sinks[job] = sink
}

// Run ticks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("dispatcher started", "interval", d.interval.String())

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped")
			return ctx.Err()
		case <-ticker.C:
			d.Tick(ctx, d.now().UTC())
		}
	}
}

// Tick evaluates every registered job once against now and waits for the
// resulting dispatches. Exported so tests and the CLI can drive single ticks
// with a fixed clock.
func (d *Dispatcher) Tick(ctx context.Context, now time.Time) {
	observability.DispatchTicks.Inc()

	windows, err := d.store.ListJobWindows(ctx, nil)
	if err != nil {
		d.logger.Error("failed to list job windows", "error", err)
		return
	}

	byName := make(map[window.JobName]*store.JobWindow, len(windows))
	for _, jw := range windows {
		byName[window.JobName(jw.Name)] = jw
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDispatches)

	for _, job := range window.AllJobNames {
		sink, ok := d.sinks[job]
		if !ok {
			continue
		}

		record, ok := byName[job]
		if !ok {
			observability.DispatchSkips.WithLabelValues(string(job), "unconfigured").Inc()
			continue
		}

		jw, err := record.ToWindow()
		if err != nil {
			// Upserts validate, so a bad row means someone edited the
			// database directly.
			d.logger.Error("stored job window failed validation", "job", string(job), "error", err)
			observability.DispatchSkips.WithLabelValues(string(job), "invalid").Inc()
			continue
		}

		if !jw.Enabled {
			observability.DispatchSkips.WithLabelValues(string(job), "disabled").Inc()
			continue
		}
		if !d.evaluator.IsWithinWindow(jw, now) {
			observability.DispatchSkips.WithLabelValues(string(job), "outside_window").Inc()
			continue
		}

		job := job
		g.Go(func() error {
			d.dispatch(gctx, job, sink)
			return nil
		})
	}

	// Sink failures are logged and counted per job, never returned.
	_ = g.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, job window.JobName, sink Sink) {
	batchID := uuid.New().String()
	start := time.Now()

	if err := sink.Dispatch(ctx, job, batchID); err != nil {
		observability.DispatchErrors.WithLabelValues(string(job)).Inc()
		d.logger.Error("dispatch failed",
			"job", string(job),
			"batch_id", batchID,
			"error", err)
		return
	}

	observability.DispatchBatches.WithLabelValues(string(job)).Inc()
	d.logger.Info("dispatched batch",
		"job", string(job),
		"batch_id", batchID,
		"duration_ms", time.Since(start).Milliseconds())
}
