package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/logger"
	"github.com/baharkarakas/payment-reconciler/internal/metrics"
	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
)

const (
	stageFeed      = "feed"
	stageRecord    = "record"
	stageMatch     = "match"
	stageCallback  = "callback"
	stageWatermark = "watermark"
	stageSweep     = "sweep"
)

// Reconciler drives one poll, record, match, notify and sweep pass per tick.
type Reconciler struct {
	feed     LedgerFeed
	marks    repo.Watermarks
	recorder *Recorder
	matcher  *Matcher
	notifier Notifier
	sweeper  *Sweeper
	interval time.Duration
	log      *slog.Logger
}

type ReconcilerDeps struct {
	Feed       LedgerFeed // nil disables polling; sweeping still runs
	Watermarks repo.Watermarks
	Recorder   *Recorder
	Matcher    *Matcher
	Notifier   Notifier
	Sweeper    *Sweeper
}

func NewReconciler(d ReconcilerDeps, interval time.Duration, log *slog.Logger) *Reconciler {
	return &Reconciler{
		feed:     d.Feed,
		marks:    d.Watermarks,
		recorder: d.Recorder,
		matcher:  d.Matcher,
		notifier: d.Notifier,
		sweeper:  d.Sweeper,
		interval: interval,
		log:      logger.Component(log, "reconciler"),
	}
}

// Run loops until ctx is done. Cancellation is observed between iterations
// only; an iteration in flight completes on a detached context.
func (r *Reconciler) Run(ctx context.Context) {
	feed := "none"
	if r.feed != nil {
		feed = r.feed.Name()
	}
	r.log.Info("reconciler started", "interval", r.interval, "feed", feed)

	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		if err := r.RunOnce(context.WithoutCancel(ctx)); err != nil {
			r.log.Error("iteration failed", "err", err)
		}
		select {
		case <-ctx.Done():
			r.log.Info("reconciler stopped")
			return
		case <-t.C:
		}
	}
}

// RunOnce performs a single iteration. A failing stage never prevents the
// others from running; all stage errors are returned joined.
func (r *Reconciler) RunOnce(ctx context.Context) error {
	start := time.Now()
	defer func() { metrics.CycleDuration.Observe(time.Since(start).Seconds()) }()

	var errs []error
	if r.feed != nil {
		if err := r.poll(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if r.sweeper != nil {
		if _, err := r.sweeper.Sweep(ctx); err != nil {
			errs = append(errs, stageErr(stageSweep, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Reconciler) poll(ctx context.Context) error {
	mark, err := r.marks.Get(ctx, r.feed.Name())
	if err != nil {
		return stageErr(stageWatermark, err)
	}
	entries, err := r.feed.Entries(ctx, mark.LastBillID)
	if err != nil {
		return stageErr(stageFeed, err)
	}

	var (
		last    *models.LedgerEntry
		procErr error
	)
	for i := range entries {
		e := entries[i]
		if mark.Covers(e) {
			continue
		}
		if e.Kind == models.LedgerKindTransfer {
			if procErr = r.process(ctx, e); procErr != nil {
				// retried next cycle: the watermark stays before it
				break
			}
		}
		last = &entries[i]
	}

	if last != nil {
		next := models.Watermark{Feed: r.feed.Name(), LastBillID: last.BillID, LastTS: last.Timestamp.UnixMilli()}
		if err := r.marks.Advance(ctx, next); err != nil {
			return errors.Join(procErr, stageErr(stageWatermark, err))
		}
	}
	return procErr
}

func (r *Reconciler) process(ctx context.Context, e models.LedgerEntry) error {
	rec, _, err := r.recorder.Record(ctx, e)
	if err != nil {
		return stageErr(stageRecord, err)
	}
	if rec.IsMatched {
		return nil
	}
	order, ok, err := r.matcher.Match(ctx, rec)
	if err != nil {
		return stageErr(stageMatch, err)
	}
	if !ok {
		return nil
	}
	// the match is committed; a callback failure here is left to the sweeper
	if err := r.notifier.Dispatch(ctx, order, true); err != nil {
		metrics.StageErrors.WithLabelValues(stageCallback).Inc()
		r.log.Error("callback dispatch failed", "order_id", order.OrderID, "err", err)
	}
	return nil
}

func stageErr(stage string, err error) error {
	metrics.StageErrors.WithLabelValues(stage).Inc()
	return fmt.Errorf("%s: %w", stage, err)
}
