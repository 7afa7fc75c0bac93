// Package okx reads account bills from the OKX v5 REST API and exposes them
// as ledger entries.
package okx

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/models"
	"github.com/shopspring/decimal"
)

const (
	billsPath = "/api/v5/account/bills"
	pageLimit = 100
)

type Credentials struct {
	APIKey     string
	SecretKey  string
	Passphrase string
}

type Client struct {
	baseURL   string
	creds     Credentials
	simulated bool
	http      *http.Client
	now       func() time.Time
}

func NewClient(baseURL string, creds Credentials, simulated bool, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		creds:     creds,
		simulated: simulated,
		http:      &http.Client{Timeout: timeout},
		now:       time.Now,
	}
}

// Name identifies the feed in the watermark table.
func (c *Client) Name() string { return "okx:bills" }

type bill struct {
	BillID string `json:"billId"`
	BalChg string `json:"balChg"`
	Bal    string `json:"bal"`
	Ccy    string `json:"ccy"`
	Type   string `json:"type"`
	Ts     string `json:"ts"`
}

type billsResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []bill `json:"data"`
}

// Entries returns transfer bills newer than afterBillID (all recent bills
// when empty), ordered oldest to newest.
func (c *Client) Entries(ctx context.Context, afterBillID string) ([]models.LedgerEntry, error) {
	q := url.Values{}
	q.Set("type", models.LedgerKindTransfer)
	q.Set("limit", strconv.Itoa(pageLimit))
	if afterBillID != "" {
		q.Set("before", afterBillID)
	}
	path := billsPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.sign(req, path, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("okx bills: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("okx bills read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("okx bills: http %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var out billsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("okx bills decode: %w", err)
	}
	if out.Code != "0" {
		return nil, fmt.Errorf("okx bills: code %s: %s", out.Code, out.Msg)
	}

	entries := make([]models.LedgerEntry, 0, len(out.Data))
	for _, b := range out.Data {
		e, err := b.entry()
		if err != nil {
			return nil, fmt.Errorf("okx bill %s: %w", b.BillID, err)
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ti, tj := entries[i].Timestamp, entries[j].Timestamp
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return models.CompareBillIDs(entries[i].BillID, entries[j].BillID) < 0
	})
	return entries, nil
}

func (b bill) entry() (models.LedgerEntry, error) {
	amount, err := decimal.NewFromString(b.BalChg)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("balChg: %w", err)
	}
	bal, err := decimal.NewFromString(b.Bal)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("bal: %w", err)
	}
	ms, err := strconv.ParseInt(b.Ts, 10, 64)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("ts: %w", err)
	}
	return models.LedgerEntry{
		BillID:    b.BillID,
		Amount:    amount,
		Currency:  b.Ccy,
		Balance:   bal,
		Kind:      b.Type,
		Timestamp: time.UnixMilli(ms).UTC(),
	}, nil
}

// sign sets the OK-ACCESS-* headers: base64(HMAC-SHA256(secret, ts+method+path+body)).
func (c *Client) sign(req *http.Request, path, body string) {
	ts := c.now().UTC().Format("2006-01-02T15:04:05.000Z")
	req.Header.Set("OK-ACCESS-KEY", c.creds.APIKey)
	req.Header.Set("OK-ACCESS-SIGN", Signature(c.creds.SecretKey, ts, req.Method, path, body))
	req.Header.Set("OK-ACCESS-TIMESTAMP", ts)
	req.Header.Set("OK-ACCESS-PASSPHRASE", c.creds.Passphrase)
	req.Header.Set("Content-Type", "application/json")
	if c.simulated {
		req.Header.Set("x-simulated-trading", "1")
	}
}

func Signature(secret, timestamp, method, path, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + method + path + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n])
	}
	return string(b)
}
