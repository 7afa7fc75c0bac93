package services

import (
	"context"

	"github.com/baharkarakas/payment-reconciler/internal/models"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks -source=interfaces.go

// LedgerFeed yields ledger entries newer than a bill id, oldest first.
type LedgerFeed interface {
	Name() string
	Entries(ctx context.Context, afterBillID string) ([]models.LedgerEntry, error)
}

// Notifier delivers the outcome callback for a terminal order.
type Notifier interface {
	Dispatch(ctx context.Context, o models.PaymentOrder, success bool) error
}
