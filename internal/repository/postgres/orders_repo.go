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

type ordersRepo struct{ pool *pgxpool.Pool }

func (r *ordersRepo) Create(ctx context.Context, o models.NewOrder) (models.PaymentOrder, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO payment_orders (order_id, amount, currency, create_time, expire_time, callback_url, remark)
		 VALUES ($1, $2::numeric, $3, $4, $5, $6, $7)
		 RETURNING `+orderColumns,
		o.OrderID, o.Amount.String(), o.Currency, o.CreateTime.UTC(), o.ExpireTime.UTC(), o.CallbackURL, o.Remark,
	)
	out, err := scanOrder(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.PaymentOrder{}, repo.ErrDuplicateOrder
		}
		return models.PaymentOrder{}, fmt.Errorf("insert order: %w", err)
	}
	return out, nil
}

func (r *ordersRepo) Get(ctx context.Context, orderID string) (models.PaymentOrder, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM payment_orders WHERE order_id = $1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PaymentOrder{}, repo.ErrNotFound
	}
	return o, err
}

func (r *ordersRepo) ListExpirable(ctx context.Context, now time.Time, limit int) ([]models.PaymentOrder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+`
		   FROM payment_orders
		  WHERE status = 'pending'
		    AND expire_time < $1
		    AND callback_status = 'not_sent'
		  ORDER BY expire_time ASC
		  LIMIT $2`,
		now.UTC(), limit,
	)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *ordersRepo) MarkExpired(ctx context.Context, orderID string) (models.PaymentOrder, bool, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`UPDATE payment_orders
		    SET status = 'expired', updated_at = now()
		  WHERE order_id = $1
		    AND status = 'pending'
		  RETURNING `+orderColumns,
		orderID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.PaymentOrder{}, false, nil
	}
	if err != nil {
		return models.PaymentOrder{}, false, err
	}
	return o, true, nil
}

func (r *ordersRepo) ListUndelivered(ctx context.Context, olderThan time.Time, limit int) ([]models.PaymentOrder, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+`
		   FROM payment_orders
		  WHERE status IN ('matched', 'expired')
		    AND callback_status = 'not_sent'
		    AND callback_url <> ''
		    AND callback_attempted_at IS NULL
		    AND updated_at < $1
		  ORDER BY updated_at ASC
		  LIMIT $2`,
		olderThan.UTC(), limit,
	)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *ordersRepo) ClaimCallback(ctx context.Context, orderID string, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payment_orders
		    SET callback_attempted_at = $2, updated_at = now()
		  WHERE order_id = $1
		    AND callback_status = 'not_sent'
		    AND callback_attempted_at IS NULL`,
		orderID, at.UTC(),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ordersRepo) RecordCallback(ctx context.Context, orderID string, status models.CallbackStatus, response string, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE payment_orders
		    SET callback_status = $2,
		        callback_response = $3,
		        callback_time = $4,
		        updated_at = now()
		  WHERE order_id = $1
		    AND callback_status = 'not_sent'`,
		orderID, status, response, at.UTC(),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
