package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
	"github.com/baharkarakas/payment-reconciler/internal/repository/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	orders := mocks.NewMockOrders(ctrl)
	orders.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o models.NewOrder) (models.PaymentOrder, error) {
			assert.Equal(t, "A-1", o.OrderID)
			assert.Equal(t, "USDT", o.Currency)
			assert.True(t, o.Amount.Equal(decimal.RequireFromString("100.5")))
			assert.Equal(t, created.Add(time.Hour), o.ExpireTime)
			assert.Equal(t, "https://merchant.example/cb", o.CallbackURL)
			return models.PaymentOrder{
				OrderID:        o.OrderID,
				Amount:         o.Amount,
				Currency:       o.Currency,
				CreateTime:     o.CreateTime,
				ExpireTime:     o.ExpireTime,
				Status:         models.OrderPending,
				CallbackURL:    o.CallbackURL,
				CallbackStatus: models.CallbackNotSent,
			}, nil
		})

	svc := NewOrderService(orders, time.Hour, time.UTC, nil)
	got, err := svc.Create(context.Background(), CreateOrderInput{
		OrderID:     " A-1 ",
		Amount:      decimal.RequireFromString("100.5"),
		CreateTime:  created,
		CallbackURL: "https://merchant.example/cb",
	})

	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)
	assert.Equal(t, models.CallbackNotSent, got.CallbackStatus)
}

func TestOrderService_CreateRejectsInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   CreateOrderInput
	}{
		{"missing id", CreateOrderInput{Amount: decimal.NewFromInt(1), CreateTime: now}},
		{"zero amount", CreateOrderInput{OrderID: "A", Amount: decimal.Zero, CreateTime: now}},
		{"negative amount", CreateOrderInput{OrderID: "A", Amount: decimal.NewFromInt(-5), CreateTime: now}},
		{"too many decimals", CreateOrderInput{OrderID: "A", Amount: decimal.RequireFromString("1.123456789"), CreateTime: now}},
		{"missing create time", CreateOrderInput{OrderID: "A", Amount: decimal.NewFromInt(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no store call is expected
			svc := NewOrderService(mocks.NewMockOrders(ctrl), time.Hour, time.UTC, nil)
			_, err := svc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}
}

func TestOrderService_CreateDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := mocks.NewMockOrders(ctrl)
	orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(models.PaymentOrder{}, repo.ErrDuplicateOrder)

	svc := NewOrderService(orders, time.Hour, time.UTC, nil)
	_, err := svc.Create(context.Background(), CreateOrderInput{
		OrderID:    "A-1",
		Amount:     decimal.NewFromInt(10),
		CreateTime: time.Now(),
	})

	assert.True(t, errors.Is(err, repo.ErrDuplicateOrder))
}

func TestOrderService_ParseCreateTime(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	svc := NewOrderService(nil, time.Hour, shanghai, nil)

	got, err := svc.ParseCreateTime("2025-03-01 18:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), got)

	got, err = svc.ParseCreateTime("2025-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), got)

	_, err = svc.ParseCreateTime("yesterday")
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "USDT", NormalizeCurrency(""))
	assert.Equal(t, "USDC", NormalizeCurrency(" usdc "))
}
