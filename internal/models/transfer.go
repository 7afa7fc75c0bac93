package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferType string

const (
	TransferInflow  TransferType = "inflow"
	TransferOutflow TransferType = "outflow"
)

// LedgerEntry is one balance-affecting record as delivered by the feed.
// Amount is signed: positive for funds in.
type LedgerEntry struct {
	BillID    string
	Amount    decimal.Decimal
	Currency  string
	Balance   decimal.Decimal
	Kind      string // feed classification, "1" is a transfer
	Timestamp time.Time
}

// Inflow reports whether the entry is a transfer that added funds.
func (e LedgerEntry) Inflow() bool {
	return e.Kind == LedgerKindTransfer && e.Amount.IsPositive()
}

// LedgerKindTransfer is the feed classification for transfers.
const LedgerKindTransfer = "1"

// TransferRecord is the stored, deduplicated form of a LedgerEntry.
type TransferRecord struct {
	BillID         string          `json:"bill_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Balance        decimal.Decimal `json:"balance"`
	Type           TransferType    `json:"transfer_type"`
	BillTimestamp  int64           `json:"bill_timestamp"`
	BillTime       time.Time       `json:"bill_time"`
	RecordedAt     time.Time       `json:"recorded_at"`
	MatchedOrderID *string         `json:"matched_order_id"`
	MatchedTime    *time.Time      `json:"matched_time"`
	IsMatched      bool            `json:"is_matched"`
}

// NewTransferRecord converts a feed entry into its stored form: the sign is
// consumed into Type and Amount becomes absolute.
func NewTransferRecord(e LedgerEntry) TransferRecord {
	typ := TransferOutflow
	if e.Amount.IsPositive() {
		typ = TransferInflow
	}
	return TransferRecord{
		BillID:        e.BillID,
		Amount:        e.Amount.Abs(),
		Currency:      e.Currency,
		Balance:       e.Balance,
		Type:          typ,
		BillTimestamp: e.Timestamp.UnixMilli(),
		BillTime:      e.Timestamp.UTC(),
	}
}

// Watermark marks the newest feed entry fully processed.
type Watermark struct {
	Feed       string
	LastBillID string
	LastTS     int64
}

// Covers reports whether e is at or below the watermark.
func (w Watermark) Covers(e LedgerEntry) bool {
	if w.LastBillID == "" {
		return false
	}
	ts := e.Timestamp.UnixMilli()
	if ts != w.LastTS {
		return ts < w.LastTS
	}
	return CompareBillIDs(e.BillID, w.LastBillID) <= 0
}

// CompareBillIDs orders numeric bill ids by value and falls back to string
// order for non-numeric ids.
func CompareBillIDs(a, b string) int {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
