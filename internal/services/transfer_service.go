package services

import (
	"context"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
)

const (
	DefaultTransferLookback = 2 * time.Hour
	MaxTransferList         = 500
)

// TransferService answers read-only queries over recorded transfers.
type TransferService struct {
	transfers repo.Transfers
	now       func() time.Time
}

func NewTransferService(t repo.Transfers) *TransferService {
	return &TransferService{transfers: t, now: time.Now}
}

// ListRecent returns transfers at or after since, newest first. A zero since
// means the last two hours; limit is clamped to [1, MaxTransferList].
func (s *TransferService) ListRecent(ctx context.Context, since time.Time, limit int) ([]models.TransferRecord, error) {
	if since.IsZero() {
		since = s.now().Add(-DefaultTransferLookback)
	}
	if limit <= 0 || limit > MaxTransferList {
		limit = MaxTransferList
	}
	out, err := s.transfers.ListSince(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.TransferRecord{}
	}
	return out, nil
}
