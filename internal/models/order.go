package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderMatched OrderStatus = "matched"
	OrderExpired OrderStatus = "expired"
)

// Terminal reports whether no further status transition is allowed.
func (s OrderStatus) Terminal() bool { return s == OrderMatched || s == OrderExpired }

type CallbackStatus string

const (
	CallbackNotSent    CallbackStatus = "not_sent"
	CallbackSentOK     CallbackStatus = "sent_ok"
	CallbackSentFailed CallbackStatus = "sent_failed"
)

// PaymentOrder is a request to be told when an inflow of Amount/Currency is
// observed between CreateTime and ExpireTime.
type PaymentOrder struct {
	OrderID    string          `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	CreateTime time.Time       `json:"create_time"`
	ExpireTime time.Time       `json:"expire_time"`
	Status     OrderStatus     `json:"status"`

	MatchedBillID *string    `json:"matched_bill_id"`
	MatchedTime   *time.Time `json:"matched_time"`

	CallbackURL      string         `json:"callback_url,omitempty"`
	CallbackStatus   CallbackStatus `json:"callback_status"`
	CallbackResponse *string        `json:"-"`
	CallbackTime     *time.Time     `json:"callback_time,omitempty"`

	// CallbackAttemptedAt is set once, just before the single delivery attempt.
	CallbackAttemptedAt *time.Time `json:"callback_attempted_at,omitempty"`

	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewOrder is the intake input for a payment order.
type NewOrder struct {
	OrderID     string
	Amount      decimal.Decimal
	Currency    string
	CreateTime  time.Time
	ExpireTime  time.Time
	CallbackURL string
	Remark      string
}
