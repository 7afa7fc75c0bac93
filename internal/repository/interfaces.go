package repository

import (
	"context"
	"errors"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateOrder = errors.New("order id already exists")
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=interfaces.go

// Orders is the order store: the single source of truth for lifecycle state.
type Orders interface {
	// Create inserts a pending order. Returns ErrDuplicateOrder when the id exists.
	Create(ctx context.Context, o models.NewOrder) (models.PaymentOrder, error)
	Get(ctx context.Context, orderID string) (models.PaymentOrder, error)

	// ListExpirable returns pending, not yet notified orders whose expiry is before now.
	ListExpirable(ctx context.Context, now time.Time, limit int) ([]models.PaymentOrder, error)
	// MarkExpired moves pending -> expired. won is false when the order was no
	// longer pending.
	MarkExpired(ctx context.Context, orderID string) (o models.PaymentOrder, won bool, err error)

	// ListUndelivered returns terminal orders with a callback target that were
	// never attempted and were last touched before olderThan.
	ListUndelivered(ctx context.Context, olderThan time.Time, limit int) ([]models.PaymentOrder, error)
	// ClaimCallback marks the single delivery attempt for the order. won is
	// false when an attempt was already claimed or an outcome recorded.
	ClaimCallback(ctx context.Context, orderID string, at time.Time) (won bool, err error)
	// RecordCallback moves callback status from not_sent to status. won is
	// false when another writer recorded an outcome first.
	RecordCallback(ctx context.Context, orderID string, status models.CallbackStatus, response string, at time.Time) (won bool, err error)
}

// Transfers persists ledger events exactly once per bill id.
type Transfers interface {
	// Record inserts rec unless its bill id is already stored. It always
	// returns the stored row; inserted tells whether this call created it.
	Record(ctx context.Context, rec models.TransferRecord) (stored models.TransferRecord, inserted bool, err error)
	Get(ctx context.Context, billID string) (models.TransferRecord, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]models.TransferRecord, error)
}

type MatchOutcome string

const (
	MatchOK             MatchOutcome = "matched"
	MatchNoCandidate    MatchOutcome = "no_candidate"
	MatchLostRace       MatchOutcome = "lost_race"
	MatchAlreadyMatched MatchOutcome = "already_matched"
	MatchNotEligible    MatchOutcome = "not_eligible"
)

// Matching pairs a recorded transfer with one pending order.
type Matching interface {
	// MatchTransfer runs the whole match in one transaction. The returned
	// order is only meaningful when outcome is MatchOK.
	MatchTransfer(ctx context.Context, billID string) (models.PaymentOrder, MatchOutcome, error)
}

// Watermarks stores the feed position already processed.
type Watermarks interface {
	// Get returns the zero watermark (with Feed set) when none is stored.
	Get(ctx context.Context, feed string) (models.Watermark, error)
	// Advance stores w unless a newer position is already stored.
	Advance(ctx context.Context, w models.Watermark) error
}
