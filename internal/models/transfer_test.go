package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTransferRecord(t *testing.T) {
	ts := time.Date(2025, 11, 15, 12, 35, 0, 0, time.UTC)

	tests := []struct {
		name     string
		amount   string
		wantAmt  string
		wantType TransferType
	}{
		{name: "inflow keeps value", amount: "88.02", wantAmt: "88.02", wantType: TransferInflow},
		{name: "outflow becomes absolute", amount: "-12.5", wantAmt: "12.5", wantType: TransferOutflow},
		{name: "zero is not an inflow", amount: "0", wantAmt: "0", wantType: TransferOutflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewTransferRecord(LedgerEntry{
				BillID:    "1",
				Amount:    decimal.RequireFromString(tt.amount),
				Currency:  "USDT",
				Balance:   decimal.RequireFromString("100"),
				Kind:      LedgerKindTransfer,
				Timestamp: ts,
			})
			assert.True(t, decimal.RequireFromString(tt.wantAmt).Equal(rec.Amount))
			assert.Equal(t, tt.wantType, rec.Type)
			assert.Equal(t, ts.UnixMilli(), rec.BillTimestamp)
			assert.False(t, rec.IsMatched)
		})
	}
}

func TestLedgerEntry_Inflow(t *testing.T) {
	in := LedgerEntry{Kind: LedgerKindTransfer, Amount: decimal.RequireFromString("1")}
	out := LedgerEntry{Kind: LedgerKindTransfer, Amount: decimal.RequireFromString("-1")}
	trade := LedgerEntry{Kind: "2", Amount: decimal.RequireFromString("1")}

	assert.True(t, in.Inflow())
	assert.False(t, out.Inflow())
	assert.False(t, trade.Inflow())
}

func TestWatermark_Covers(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)
	w := Watermark{LastBillID: "3020596814559830016", LastTS: base.UnixMilli()}

	assert.True(t, w.Covers(LedgerEntry{BillID: "1", Timestamp: base.Add(-time.Second)}))
	assert.True(t, w.Covers(LedgerEntry{BillID: "3020596814559830016", Timestamp: base}))
	assert.False(t, w.Covers(LedgerEntry{BillID: "3020596814559830017", Timestamp: base}))
	assert.False(t, w.Covers(LedgerEntry{BillID: "2", Timestamp: base.Add(time.Second)}))
	assert.False(t, Watermark{}.Covers(LedgerEntry{BillID: "1", Timestamp: base}))
}

func TestCompareBillIDs(t *testing.T) {
	assert.Equal(t, -1, CompareBillIDs("99", "100"))
	assert.Equal(t, 1, CompareBillIDs("100", "99"))
	assert.Equal(t, 0, CompareBillIDs("42", "42"))
	assert.Equal(t, -1, CompareBillIDs("abc", "abd"))
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.False(t, OrderPending.Terminal())
	assert.True(t, OrderMatched.Terminal())
	assert.True(t, OrderExpired.Terminal())
}
