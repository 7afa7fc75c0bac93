package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/auth"
	"github.com/baharkarakas/payment-reconciler/internal/logger"
	"github.com/baharkarakas/payment-reconciler/internal/metrics"
	"github.com/baharkarakas/payment-reconciler/internal/models"
	repo "github.com/baharkarakas/payment-reconciler/internal/repository"
	"github.com/google/uuid"
)

const (
	CallbackSuccess = "success"
	CallbackFailed  = "failed"

	// callback responses are stored truncated to this many bytes
	maxResponseSummary = 1000
)

// Dispatcher sends the signed outcome callback of a terminal order and
// records the first delivery outcome. Each order gets at most one POST: the
// attempt is claimed in the store before sending, and a sent_failed order
// stays sent_failed.
type Dispatcher struct {
	orders repo.Orders
	secret string
	client *http.Client
	loc    *time.Location
	now    func() time.Time
	log    *slog.Logger
}

// NewDispatcher renders callback times in loc, or UTC when loc is nil.
func NewDispatcher(orders repo.Orders, secret string, timeout time.Duration, loc *time.Location, log *slog.Logger) *Dispatcher {
	if loc == nil {
		loc = time.UTC
	}
	return &Dispatcher{
		orders: orders,
		secret: secret,
		client: &http.Client{Timeout: timeout},
		loc:    loc,
		now:    time.Now,
		log:    logger.Component(log, "dispatcher"),
	}
}

// Dispatch is a no-op for non-terminal orders, orders without a callback
// target, and orders whose delivery was already attempted. Only datastore
// failures are returned.
func (d *Dispatcher) Dispatch(ctx context.Context, o models.PaymentOrder, success bool) error {
	if !o.Status.Terminal() {
		metrics.Callbacks.WithLabelValues("skipped").Inc()
		d.log.Warn("callback for non-terminal order", "order_id", o.OrderID, "status", o.Status)
		return nil
	}
	if o.CallbackURL == "" {
		metrics.Callbacks.WithLabelValues("skipped").Inc()
		d.log.Debug("no callback target", "order_id", o.OrderID)
		return nil
	}
	if o.CallbackStatus != models.CallbackNotSent || o.CallbackAttemptedAt != nil {
		metrics.Callbacks.WithLabelValues("skipped").Inc()
		d.log.Debug("callback already attempted", "order_id", o.OrderID, "callback_status", o.CallbackStatus)
		return nil
	}

	sentAt := d.now()
	body, err := CallbackPayload(o, success, sentAt, d.loc)
	if err != nil {
		return fmt.Errorf("build callback payload: %w", err)
	}

	claimed, err := d.orders.ClaimCallback(ctx, o.OrderID, sentAt)
	if err != nil {
		return fmt.Errorf("claim callback %s: %w", o.OrderID, err)
	}
	if !claimed {
		metrics.Callbacks.WithLabelValues("discarded").Inc()
		d.log.Debug("callback attempt already claimed", "order_id", o.OrderID)
		return nil
	}

	status, summary := d.post(ctx, o.CallbackURL, body, sentAt)

	won, err := d.orders.RecordCallback(ctx, o.OrderID, status, summary, d.now())
	if err != nil {
		return fmt.Errorf("record callback %s: %w", o.OrderID, err)
	}
	if !won {
		metrics.Callbacks.WithLabelValues("discarded").Inc()
		d.log.Debug("callback outcome already recorded by another writer", "order_id", o.OrderID)
		return nil
	}

	metrics.Callbacks.WithLabelValues(string(status)).Inc()
	if status == models.CallbackSentOK {
		d.log.Info("callback sent", "order_id", o.OrderID, "success", success)
	} else {
		d.log.Warn("callback failed", "order_id", o.OrderID, "success", success, "response", summary)
	}
	return nil
}

func (d *Dispatcher) post(ctx context.Context, target string, body []byte, sentAt time.Time) (models.CallbackStatus, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return models.CallbackSentFailed, truncateSummary(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.HeaderSignature, auth.SignWebhook(d.secret, body))
	req.Header.Set(auth.HeaderTimestamp, strconv.FormatInt(sentAt.Unix(), 10))
	req.Header.Set(auth.HeaderID, uuid.NewString())

	resp, err := d.client.Do(req)
	if err != nil {
		return models.CallbackSentFailed, truncateSummary(err.Error())
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSummary))
	if resp.StatusCode == http.StatusOK {
		return models.CallbackSentOK, truncateSummary(string(raw))
	}
	return models.CallbackSentFailed, truncateSummary(fmt.Sprintf("http %d: %s", resp.StatusCode, raw))
}

// CallbackPayload is the canonical (key-sorted, compact) JSON body of an
// outcome callback. The signature covers exactly these bytes. Wall-clock
// fields are rendered in loc, the zone order issuers submit create_time in.
func CallbackPayload(o models.PaymentOrder, success bool, sentAt time.Time, loc *time.Location) ([]byte, error) {
	status := CallbackFailed
	if success {
		status = CallbackSuccess
	}
	var matchedBill, matchedTime any
	if o.MatchedBillID != nil {
		matchedBill = *o.MatchedBillID
	}
	if o.MatchedTime != nil {
		matchedTime = o.MatchedTime.In(loc).Format(CreateTimeLayout)
	}
	return auth.CanonicalJSON(map[string]any{
		"order_id":        o.OrderID,
		"amount":          o.Amount.String(),
		"currency":        o.Currency,
		"create_time":     o.CreateTime.In(loc).Format(CreateTimeLayout),
		"status":          status,
		"matched_bill_id": matchedBill,
		"matched_time":    matchedTime,
		"timestamp":       sentAt.Unix(),
	})
}

// truncateSummary keeps the stored summary within maxResponseSummary bytes
// and valid as Postgres text: no split runes, no NUL bytes.
func truncateSummary(s string) string {
	if len(s) > maxResponseSummary {
		s = s[:maxResponseSummary]
	}
	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}
