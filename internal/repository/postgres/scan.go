package postgres

import (
	"errors"
	"fmt"

	"github.com/baharkarakas/payment-reconciler/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

type scanner interface {
	Scan(dest ...any) error
}

// amounts are selected as ::text and parsed here so no value passes through float
const orderColumns = `order_id, amount::text, currency, create_time, expire_time, status,
       matched_bill_id, matched_time, callback_url, callback_status, callback_response,
       callback_time, callback_attempted_at, remark, created_at, updated_at`

func scanOrder(row scanner) (models.PaymentOrder, error) {
	var (
		o      models.PaymentOrder
		amount string
	)
	err := row.Scan(&o.OrderID, &amount, &o.Currency, &o.CreateTime, &o.ExpireTime, &o.Status,
		&o.MatchedBillID, &o.MatchedTime, &o.CallbackURL, &o.CallbackStatus, &o.CallbackResponse,
		&o.CallbackTime, &o.CallbackAttemptedAt, &o.Remark, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return models.PaymentOrder{}, err
	}
	if o.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.PaymentOrder{}, fmt.Errorf("parse order amount: %w", err)
	}
	return o, nil
}

func collectOrders(rows pgx.Rows) ([]models.PaymentOrder, error) {
	defer rows.Close()
	var out []models.PaymentOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

const transferColumns = `bill_id, amount::text, currency, balance::text, transfer_type, bill_timestamp,
       bill_time, recorded_at, matched_order_id, matched_time, is_matched`

func scanTransfer(row scanner) (models.TransferRecord, error) {
	var (
		t               models.TransferRecord
		amount, balance string
	)
	err := row.Scan(&t.BillID, &amount, &t.Currency, &balance, &t.Type, &t.BillTimestamp,
		&t.BillTime, &t.RecordedAt, &t.MatchedOrderID, &t.MatchedTime, &t.IsMatched)
	if err != nil {
		return models.TransferRecord{}, err
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return models.TransferRecord{}, fmt.Errorf("parse transfer amount: %w", err)
	}
	if t.Balance, err = decimal.NewFromString(balance); err != nil {
		return models.TransferRecord{}, fmt.Errorf("parse transfer balance: %w", err)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
