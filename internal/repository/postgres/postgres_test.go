package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/payment-reconciler/internal/db"
	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
)

// testRepos connects to TEST_DATABASE_URL, migrates and empties the tables.
// Tests are skipped when the variable is not set.
func testRepos(t *testing.T) (Repositories, *pgxpool.Pool) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.NewPool(ctx, url, 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.RunMigrations(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE payment_orders, ledger_transfers, feed_watermarks RESTART IDENTITY`)
	require.NoError(t, err)
	return NewRepositories(pool), pool
}

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func mustOrder(t *testing.T, r Repositories, id, amount string, created time.Time) models.PaymentOrder {
	t.Helper()
	o, err := r.Orders.Create(context.Background(), models.NewOrder{
		OrderID:     id,
		Amount:      decimal.RequireFromString(amount),
		Currency:    "USDT",
		CreateTime:  created,
		ExpireTime:  created.Add(time.Hour),
		CallbackURL: "http://merchant.example/cb",
	})
	require.NoError(t, err)
	return o
}

func mustTransfer(t *testing.T, r Repositories, billID, amount string, at time.Time) models.TransferRecord {
	t.Helper()
	rec, inserted, err := r.Transfers.Record(context.Background(), models.NewTransferRecord(models.LedgerEntry{
		BillID:    billID,
		Amount:    decimal.RequireFromString(amount),
		Currency:  "USDT",
		Balance:   decimal.NewFromInt(1000),
		Kind:      models.LedgerKindTransfer,
		Timestamp: at,
	}))
	require.NoError(t, err)
	require.True(t, inserted)
	return rec
}

func TestOrders_CreateAndGet(t *testing.T) {
	r, _ := testRepos(t)
	ctx := context.Background()

	o := mustOrder(t, r, "A-1", "100.12345678", base)
	assert.Equal(t, models.OrderPending, o.Status)
	assert.Equal(t, models.CallbackNotSent, o.CallbackStatus)
	assert.Equal(t, "100.12345678", o.Amount.String())

	got, err := r.Orders.Get(ctx, "A-1")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(o.Amount))
	assert.True(t, got.CreateTime.Equal(base))

	_, err = r.Orders.Get(ctx, "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOrders_ConcurrentDuplicateCreate(t *testing.T) {
	r, _ := testRepos(t)

	const n = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok, dupes  int
		unexpected []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Orders.Create(context.Background(), models.NewOrder{
				OrderID: "DUP", Amount: decimal.NewFromInt(5), Currency: "USDT",
				CreateTime: base, ExpireTime: base.Add(time.Hour),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, repo.ErrDuplicateOrder):
				dupes++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, unexpected)
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dupes)
}

func TestTransfers_RecordIsIdempotent(t *testing.T) {
	r, _ := testRepos(t)
	ctx := context.Background()

	first := mustTransfer(t, r, "B1", "100.5", base.Add(time.Minute))
	assert.Equal(t, models.TransferInflow, first.Type)

	again, inserted, err := r.Transfers.Record(ctx, models.NewTransferRecord(models.LedgerEntry{
		BillID: "B1", Amount: decimal.RequireFromString("999"), Currency: "USDT",
		Kind: models.LedgerKindTransfer, Timestamp: base,
	}))
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.True(t, again.Amount.Equal(decimal.RequireFromString("100.5")), "stored row must be unchanged")

	out := mustTransfer(t, r, "B2", "-7", base.Add(2*time.Minute))
	assert.Equal(t, models.TransferOutflow, out.Type)
	assert.Equal(t, "7", out.Amount.String())

	list, err := r.Transfers.ListSince(ctx, base, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B2", list[0].BillID)
}

func TestMatching_FirstCreatedWins(t *testing.T) {
	r, _ := testRepos(t)
	ctx := context.Background()

	mustOrder(t, r, "O4", "50", base.Add(2*time.Minute))
	mustOrder(t, r, "O3", "50", base)
	mustTransfer(t, r, "B1", "50", base.Add(5*time.Minute))

	o, outcome, err := r.Matching.MatchTransfer(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, repo.MatchOK, outcome)
	assert.Equal(t, "O3", o.OrderID)
	require.NotNil(t, o.MatchedBillID)
	assert.Equal(t, "B1", *o.MatchedBillID)
	require.NotNil(t, o.MatchedTime)
	assert.True(t, o.MatchedTime.Equal(base.Add(5*time.Minute)))

	rec, err := r.Transfers.Get(ctx, "B1")
	require.NoError(t, err)
	assert.True(t, rec.IsMatched)
	require.NotNil(t, rec.MatchedOrderID)
	assert.Equal(t, "O3", *rec.MatchedOrderID)

	_, outcome, err = r.Matching.MatchTransfer(ctx, "B1")
	require.NoError(t, err)
	assert.Equal(t, repo.MatchAlreadyMatched, outcome)

	o4, err := r.Orders.Get(ctx, "O4")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o4.Status)
}

func TestMatching_RespectsWindowAndAmount(t *testing.T) {
	r, _ := testRepos(t)
	ctx := context.Background()

	mustOrder(t, r, "A", "10.00000001", base)
	mustTransfer(t, r, "EXACT-LATE", "10.00000001", base.Add(2*time.Hour))
	mustTransfer(t, r, "EARLY", "10.00000001", base.Add(-time.Minute))
	mustTransfer(t, r, "OFF", "10", base.Add(time.Minute))
	mustTransfer(t, r, "OUT", "-10.00000001", base.Add(time.Minute))

	for _, bill := range []string{"EXACT-LATE", "EARLY", "OFF"} {
		_, outcome, err := r.Matching.MatchTransfer(ctx, bill)
		require.NoError(t, err)
		assert.Equal(t, repo.MatchNoCandidate, outcome, bill)
	}
	_, outcome, err := r.Matching.MatchTransfer(ctx, "OUT")
	require.NoError(t, err)
	assert.Equal(t, repo.MatchNotEligible, outcome)

	_, _, err = r.Matching.MatchTransfer(ctx, "nope")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestMatching_ConcurrentMatchersAssignOnce(t *testing.T) {
	r, _ := testRepos(t)

	mustOrder(t, r, "O1", "25", base)
	mustOrder(t, r, "O2", "25", base.Add(time.Second))
	mustTransfer(t, r, "B1", "25", base.Add(time.Minute))

	const n = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		matched []string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, outcome, err := r.Matching.MatchTransfer(context.Background(), "B1")
			assert.NoError(t, err)
			if outcome == repo.MatchOK {
				mu.Lock()
				matched = append(matched, o.OrderID)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"O1"}, matched)
	o2, err := r.Orders.Get(context.Background(), "O2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, o2.Status)
}

func TestMatching_ConcurrentTransfersOneOrder(t *testing.T) {
	r, _ := testRepos(t)

	mustOrder(t, r, "O1", "25", base)
	bills := make([]string, 6)
	for i := range bills {
		bills[i] = uuid.NewString()
		mustTransfer(t, r, bills[i], "25", base.Add(time.Minute))
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for _, b := range bills {
		wg.Add(1)
		go func(b string) {
			defer wg.Done()
			_, outcome, err := r.Matching.MatchTransfer(context.Background(), b)
			assert.NoError(t, err)
			if outcome == repo.MatchOK {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(b)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestOrders_ExpireVersusMatch(t *testing.T) {
	r, _ := testRepos(t)
	ctx := context.Background()

	mustOrder(t, r, "O1", "30", base)
	mustTransfer(t, r, "B1", "30", base.Add(time.Minute))

	_, outcome, err := r.Matching.MatchTransfer(ctx, "B1")
	require.NoError(t, err)
	require.Equal(t, repo.MatchOK, outcome)

	_, won, err := r.Orders.MarkExpired(ctx, "O1")
	require.NoError(t, err)
	assert.False(t, won, "a matched order must never expire")

	mustOrder(t, r, "O2", "31", base)
	due, err := r.Orders.ListExpirable(ctx, base.Add(2*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "O2", due[0].OrderID)

	exp, won, err := r.Orders.MarkExpired(ctx, "O2")
	require.NoError(t, err)
	assert.True(t, won)
	assert.Equal(t, models.OrderExpired, exp.Status)

	_, won, err = r.Orders.MarkExpired(ctx, "O2")
	require.NoError(t, err)
	assert.False(t, won)
}

func TestOrders_RecordCallbackAtMostOnce(t *testing.T) {
	r, pool := testRepos(t)
	ctx := context.Background()

	mustOrder(t, r, "O1", "30", base)
	_, won, err := r.Orders.MarkExpired(ctx, "O1")
	require.NoError(t, err)
	require.True(t, won)

	// make it look stranded
	_, err = pool.Exec(ctx, `UPDATE payment_orders SET updated_at = now() - interval '1 hour' WHERE order_id = 'O1'`)
	require.NoError(t, err)
	stranded, err := r.Orders.ListUndelivered(ctx, time.Now().Add(-time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, stranded, 1)

	won, err = r.Orders.RecordCallback(ctx, "O1", models.CallbackSentOK, "ok", time.Now())
	require.NoError(t, err)
	assert.True(t, won)

	won, err = r.Orders.RecordCallback(ctx, "O1", models.CallbackSentFailed, "late", time.Now())
	require.NoError(t, err)
	assert.False(t, won)

	o, err := r.Orders.Get(ctx, "O1")
	require.NoError(t, err)
	assert.Equal(t, models.CallbackSentOK, o.CallbackStatus)

	stranded, err = r.Orders.ListUndelivered(ctx, time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, stranded)
}

func TestOrders_ClaimCallbackOnce(t *testing.T) {
	r, pool := testRepos(t)
	ctx := context.Background()

	mustOrder(t, r, "O1", "30", base)
	_, won, err := r.Orders.MarkExpired(ctx, "O1")
	require.NoError(t, err)
	require.True(t, won)

	const claimers = 8
	var (
		wg   sync.WaitGroup
		wins int32
	)
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := r.Orders.ClaimCallback(ctx, "O1", time.Now())
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins)

	o, err := r.Orders.Get(ctx, "O1")
	require.NoError(t, err)
	assert.NotNil(t, o.CallbackAttemptedAt)
	assert.Equal(t, models.CallbackNotSent, o.CallbackStatus)

	// a claimed order whose outcome was never recorded is not redelivered
	_, err = pool.Exec(ctx, `UPDATE payment_orders SET updated_at = now() - interval '1 hour' WHERE order_id = 'O1'`)
	require.NoError(t, err)
	stranded, err := r.Orders.ListUndelivered(ctx, time.Now().Add(-time.Minute), 10)
	require.NoError(t, err)
	assert.Empty(t, stranded)

	// the claimant can still record its outcome
	won, err = r.Orders.RecordCallback(ctx, "O1", models.CallbackSentFailed, "timeout", time.Now())
	require.NoError(t, err)
	assert.True(t, won)

	won, err = r.Orders.ClaimCallback(ctx, "O1", time.Now())
	require.NoError(t, err)
	assert.False(t, won)
}

func TestWatermarks_Monotonic(t *testing.T) {
	r, _ := testRepos(t)
	ctx := context.Background()

	w, err := r.Watermarks.Get(ctx, "okx:bills")
	require.NoError(t, err)
	assert.Equal(t, models.Watermark{Feed: "okx:bills"}, w)

	require.NoError(t, r.Watermarks.Advance(ctx, models.Watermark{Feed: "okx:bills", LastBillID: "200", LastTS: 2000}))
	require.NoError(t, r.Watermarks.Advance(ctx, models.Watermark{Feed: "okx:bills", LastBillID: "100", LastTS: 1000}))

	w, err = r.Watermarks.Get(ctx, "okx:bills")
	require.NoError(t, err)
	assert.Equal(t, "200", w.LastBillID)
	assert.Equal(t, int64(2000), w.LastTS)
}
