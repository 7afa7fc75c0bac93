package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/payment-reconciler/internal/logger"
	"github.com/baharkarakas/payment-reconciler/internal/metrics"
	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
)

// Recorder persists each distinct ledger entry once.
type Recorder struct {
	transfers repo.Transfers
	log       *slog.Logger
}

func NewRecorder(t repo.Transfers, log *slog.Logger) *Recorder {
	return &Recorder{transfers: t, log: logger.Component(log, "recorder")}
}

// Record stores e keyed by bill id. Recording an id already stored is a
// no-op that returns the stored row with inserted=false.
func (r *Recorder) Record(ctx context.Context, e models.LedgerEntry) (models.TransferRecord, bool, error) {
	if e.BillID == "" {
		return models.TransferRecord{}, false, errors.New("ledger entry without bill id")
	}
	rec := models.NewTransferRecord(e)
	rec.Currency = NormalizeCurrency(rec.Currency)

	stored, inserted, err := r.transfers.Record(ctx, rec)
	if err != nil {
		return models.TransferRecord{}, false, fmt.Errorf("record transfer %s: %w", e.BillID, err)
	}
	if inserted {
		metrics.TransfersRecorded.WithLabelValues("inserted").Inc()
		r.log.Info("transfer recorded", "bill_id", stored.BillID, "amount", stored.Amount.String(), "currency", stored.Currency, "type", stored.Type)
	} else {
		metrics.TransfersRecorded.WithLabelValues("duplicate").Inc()
		r.log.Debug("transfer already recorded", "bill_id", stored.BillID, "matched", stored.IsMatched)
	}
	return stored, inserted, nil
}
