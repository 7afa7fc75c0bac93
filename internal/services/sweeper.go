package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/logger"
	"github.com/baharkarakas/payment-reconciler/internal/metrics"
	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
	"github.com/baharkarakas/payment-reconciler/internal/worker"
)

const sweepBatch = 500

// Sweeper expires pending orders past their deadline and sends their failed
// callbacks. It also re-dispatches terminal orders whose callback was never
// attempted (a crash between commit and dispatch) once they are older than
// grace.
type Sweeper struct {
	orders   repo.Orders
	notifier Notifier
	pool     *worker.Pool
	grace    time.Duration
	now      func() time.Time
	log      *slog.Logger
}

// NewSweeper fans callbacks out on pool; a nil pool dispatches inline.
func NewSweeper(orders repo.Orders, n Notifier, pool *worker.Pool, grace time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{
		orders:   orders,
		notifier: n,
		pool:     pool,
		grace:    grace,
		now:      time.Now,
		log:      logger.Component(log, "sweeper"),
	}
}

// Sweep runs one pass and returns how many orders this call expired.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.orders.ListExpirable(ctx, now, sweepBatch)
	if err != nil {
		return 0, fmt.Errorf("list expirable: %w", err)
	}

	var (
		mu      sync.Mutex
		errs    []error
		expired int
	)
	addErr := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}
	dispatch := s.dispatcher(addErr)

	for _, o := range due {
		exp, won, err := s.orders.MarkExpired(ctx, o.OrderID)
		if err != nil {
			addErr(fmt.Errorf("expire %s: %w", o.OrderID, err))
			continue
		}
		if !won {
			// matched concurrently
			s.log.Debug("expiry lost race", "order_id", o.OrderID)
			continue
		}
		expired++
		metrics.OrdersExpired.Inc()
		s.log.Info("order expired", "order_id", exp.OrderID, "amount", exp.Amount.String(), "currency", exp.Currency)
		dispatch.run(exp, false)
	}

	if s.grace > 0 {
		stranded, err := s.orders.ListUndelivered(ctx, now.Add(-s.grace), sweepBatch)
		if err != nil {
			addErr(fmt.Errorf("list undelivered: %w", err))
		}
		for _, o := range stranded {
			s.log.Warn("redelivering stranded callback", "order_id", o.OrderID, "status", o.Status)
			dispatch.run(o, o.Status == models.OrderMatched)
		}
	}

	dispatch.wait()
	return expired, errors.Join(errs...)
}

type sweepDispatch struct {
	run  func(o models.PaymentOrder, success bool)
	wait func()
}

func (s *Sweeper) dispatcher(addErr func(error)) sweepDispatch {
	ctx := context.Background()
	call := func(o models.PaymentOrder, success bool) {
		if err := s.notifier.Dispatch(ctx, o, success); err != nil {
			addErr(err)
		}
	}
	if s.pool == nil {
		return sweepDispatch{run: call, wait: func() {}}
	}
	b := s.pool.Batch()
	return sweepDispatch{
		run:  func(o models.PaymentOrder, success bool) { b.Go(func() { call(o, success) }) },
		wait: b.Wait,
	}
}
