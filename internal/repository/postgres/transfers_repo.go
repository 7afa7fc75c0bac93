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

type transfersRepo struct{ pool *pgxpool.Pool }

func (r *transfersRepo) Record(ctx context.Context, rec models.TransferRecord) (models.TransferRecord, bool, error) {
	stored, err := scanTransfer(r.pool.QueryRow(ctx,
		`INSERT INTO ledger_transfers (bill_id, amount, currency, balance, transfer_type, bill_timestamp, bill_time)
		 VALUES ($1, $2::numeric, $3, $4::numeric, $5, $6, $7)
		 ON CONFLICT (bill_id) DO NOTHING
		 RETURNING `+transferColumns,
		rec.BillID, rec.Amount.String(), rec.Currency, rec.Balance.String(), rec.Type, rec.BillTimestamp, rec.BillTime.UTC(),
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.TransferRecord{}, false, fmt.Errorf("insert transfer: %w", err)
	}
	// already recorded
	stored, err = r.Get(ctx, rec.BillID)
	if err != nil {
		return models.TransferRecord{}, false, err
	}
	return stored, false, nil
}

func (r *transfersRepo) Get(ctx context.Context, billID string) (models.TransferRecord, error) {
	t, err := scanTransfer(r.pool.QueryRow(ctx,
		`SELECT `+transferColumns+` FROM ledger_transfers WHERE bill_id = $1`, billID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.TransferRecord{}, repo.ErrNotFound
	}
	return t, err
}

func (r *transfersRepo) ListSince(ctx context.Context, since time.Time, limit int) ([]models.TransferRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transferColumns+`
		   FROM ledger_transfers
		  WHERE bill_time >= $1
		  ORDER BY bill_time DESC, id DESC
		  LIMIT $2`,
		since.UTC(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TransferRecord
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
