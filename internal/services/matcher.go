package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/payment-reconciler/internal/logger"
	"github.com/baharkarakas/payment-reconciler/internal/metrics"
	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
)

// Matcher pairs a recorded inflow with at most one pending order. All
// concurrency control lives in the datastore transaction behind
// repository.Matching.
type Matcher struct {
	matching repo.Matching
	log      *slog.Logger
}

func NewMatcher(m repo.Matching, log *slog.Logger) *Matcher {
	return &Matcher{matching: m, log: logger.Component(log, "matcher")}
}

// Match returns the order that now references rec. ok is false when nothing
// matched, including a lost race, which is not an error.
func (m *Matcher) Match(ctx context.Context, rec models.TransferRecord) (models.PaymentOrder, bool, error) {
	if rec.Type != models.TransferInflow || rec.IsMatched {
		return models.PaymentOrder{}, false, nil
	}

	order, outcome, err := m.matching.MatchTransfer(ctx, rec.BillID)
	if err != nil {
		return models.PaymentOrder{}, false, fmt.Errorf("match transfer %s: %w", rec.BillID, err)
	}
	metrics.MatchOutcomes.WithLabelValues(string(outcome)).Inc()

	switch outcome {
	case repo.MatchOK:
		m.log.Info("match", "order_id", order.OrderID, "bill_id", rec.BillID, "amount", rec.Amount.String(), "currency", rec.Currency)
		return order, true, nil
	case repo.MatchLostRace, repo.MatchAlreadyMatched:
		m.log.Debug("match lost race", "bill_id", rec.BillID, "outcome", outcome)
	default:
		m.log.Debug("no match", "bill_id", rec.BillID, "outcome", outcome)
	}
	return models.PaymentOrder{}, false, nil
}
