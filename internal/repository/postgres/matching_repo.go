package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type matchingRepo struct{ pool *pgxpool.Pool }

// MatchTransfer pairs the transfer with the oldest-created pending order of
// equal amount and currency whose window contains the transfer time.
//
// Both rows are locked with FOR UPDATE and every write is conditional on the
// state read under the lock, so any number of concurrent matchers (in this
// process or another) can run it without double assignment.
func (r *matchingRepo) MatchTransfer(ctx context.Context, billID string) (models.PaymentOrder, repo.MatchOutcome, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return models.PaymentOrder{}, "", fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. lock the transfer so two matchers of the same bill serialize here
	var (
		amount    string
		currency  string
		billTime  time.Time
		typ       models.TransferType
		isMatched bool
	)
	err = tx.QueryRow(ctx,
		`SELECT amount::text, currency, bill_time, transfer_type, is_matched
		   FROM ledger_transfers
		  WHERE bill_id = $1
		    FOR UPDATE`,
		billID,
	).Scan(&amount, &currency, &billTime, &typ, &isMatched)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PaymentOrder{}, "", repo.ErrNotFound
	}
	if err != nil {
		return models.PaymentOrder{}, "", fmt.Errorf("lock transfer: %w", err)
	}
	if isMatched {
		return models.PaymentOrder{}, repo.MatchAlreadyMatched, nil
	}
	if typ != models.TransferInflow {
		return models.PaymentOrder{}, repo.MatchNotEligible, nil
	}

	// 2. select and lock the candidate order, earliest created first
	candidate, err := scanOrder(tx.QueryRow(ctx,
		`SELECT `+orderColumns+`
		   FROM payment_orders
		  WHERE status = 'pending'
		    AND amount = $1::numeric
		    AND currency = $2
		    AND create_time <= $3
		    AND expire_time >= $3
		  ORDER BY create_time ASC, id ASC
		  LIMIT 1
		    FOR UPDATE`,
		amount, currency, billTime,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PaymentOrder{}, repo.MatchNoCandidate, nil
	}
	if err != nil {
		return models.PaymentOrder{}, "", fmt.Errorf("lock order: %w", err)
	}

	// 3. re-check under the lock
	if candidate.Status != models.OrderPending {
		return models.PaymentOrder{}, repo.MatchLostRace, nil
	}

	// 4. conditional transition pending -> matched
	matched, err := scanOrder(tx.QueryRow(ctx,
		`UPDATE payment_orders
		    SET status = 'matched',
		        matched_bill_id = $2,
		        matched_time = $3,
		        updated_at = now()
		  WHERE order_id = $1
		    AND status = 'pending'
		  RETURNING `+orderColumns,
		candidate.OrderID, billID, billTime,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PaymentOrder{}, repo.MatchLostRace, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			// another order already references this bill
			return models.PaymentOrder{}, repo.MatchAlreadyMatched, nil
		}
		return models.PaymentOrder{}, "", fmt.Errorf("update order: %w", err)
	}

	// 5. consume the transfer, also conditionally
	tag, err := tx.Exec(ctx,
		`UPDATE ledger_transfers
		    SET matched_order_id = $2,
		        matched_time = $3,
		        is_matched = true
		  WHERE bill_id = $1
		    AND NOT is_matched`,
		billID, matched.OrderID, billTime,
	)
	if err != nil {
		return models.PaymentOrder{}, "", fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.PaymentOrder{}, repo.MatchAlreadyMatched, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return models.PaymentOrder{}, "", fmt.Errorf("tx commit failed: %w", err)
	}
	return matched, repo.MatchOK, nil
}
