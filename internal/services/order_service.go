package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/logger"
	"github.com/baharkarakas/payment-reconciler/internal/metrics"
	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	DefaultCurrency = "USDT"
	AmountScale     = 8

	// CreateTimeLayout is the wall-clock form order issuers send.
	CreateTimeLayout = "2006-01-02 15:04:05"
)

var ErrInvalidOrder = errors.New("invalid order")

type CreateOrderInput struct {
	OrderID     string
	Amount      decimal.Decimal
	Currency    string
	CreateTime  time.Time
	CallbackURL string
	Remark      string
}

type OrderService struct {
	orders repo.Orders
	window time.Duration
	loc    *time.Location
	log    *slog.Logger
}

func NewOrderService(orders repo.Orders, window time.Duration, loc *time.Location, log *slog.Logger) *OrderService {
	if loc == nil {
		loc = time.UTC
	}
	return &OrderService{orders: orders, window: window, loc: loc, log: logger.Component(log, "intake")}
}

// Create stores a pending order expiring window after its creation time.
// A duplicate order id yields repository.ErrDuplicateOrder and changes nothing.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (models.PaymentOrder, error) {
	in.OrderID = strings.TrimSpace(in.OrderID)
	in.Currency = NormalizeCurrency(in.Currency)
	if in.OrderID == "" {
		return models.PaymentOrder{}, fmt.Errorf("%w: order_id required", ErrInvalidOrder)
	}
	if !in.Amount.IsPositive() {
		return models.PaymentOrder{}, fmt.Errorf("%w: amount must be positive", ErrInvalidOrder)
	}
	if !in.Amount.Equal(in.Amount.Truncate(AmountScale)) {
		return models.PaymentOrder{}, fmt.Errorf("%w: amount has more than %d decimals", ErrInvalidOrder, AmountScale)
	}
	if in.CreateTime.IsZero() {
		return models.PaymentOrder{}, fmt.Errorf("%w: create_time required", ErrInvalidOrder)
	}

	o, err := s.orders.Create(ctx, models.NewOrder{
		OrderID:     in.OrderID,
		Amount:      in.Amount,
		Currency:    in.Currency,
		CreateTime:  in.CreateTime,
		ExpireTime:  in.CreateTime.Add(s.window),
		CallbackURL: strings.TrimSpace(in.CallbackURL),
		Remark:      in.Remark,
	})
	if err != nil {
		return models.PaymentOrder{}, err
	}
	metrics.OrdersCreated.Inc()
	s.log.Info("order created", "order_id", o.OrderID, "amount", o.Amount.String(), "currency", o.Currency, "expire_time", o.ExpireTime)
	return o, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (models.PaymentOrder, error) {
	return s.orders.Get(ctx, strings.TrimSpace(orderID))
}

// ParseCreateTime accepts RFC 3339 or "YYYY-MM-DD HH:MM:SS" in the
// configured zone.
func (s *OrderService) ParseCreateTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(CreateTimeLayout, v, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: create_time must be RFC 3339 or %q", ErrInvalidOrder, CreateTimeLayout)
	}
	return t.UTC(), nil
}

func NormalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return DefaultCurrency
	}
	return c
}
