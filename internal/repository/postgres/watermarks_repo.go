package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/payment-reconciler/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type watermarksRepo struct{ pool *pgxpool.Pool }

func (r *watermarksRepo) Get(ctx context.Context, feed string) (models.Watermark, error) {
	w := models.Watermark{Feed: feed}
	err := r.pool.QueryRow(ctx,
		`SELECT last_bill_id, last_ts FROM feed_watermarks WHERE feed = $1`, feed,
	).Scan(&w.LastBillID, &w.LastTS)
	if errors.Is(err, pgx.ErrNoRows) {
		return w, nil
	}
	return w, err
}

func (r *watermarksRepo) Advance(ctx context.Context, w models.Watermark) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO feed_watermarks (feed, last_bill_id, last_ts, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (feed) DO UPDATE
		    SET last_bill_id = EXCLUDED.last_bill_id,
		        last_ts = EXCLUDED.last_ts,
		        updated_at = now()
		  WHERE feed_watermarks.last_ts <= EXCLUDED.last_ts`,
		w.Feed, w.LastBillID, w.LastTS,
	)
	return err
}
