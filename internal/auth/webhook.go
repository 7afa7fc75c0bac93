package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

const (
	HeaderSignature = "X-Webhook-Signature"
	HeaderTimestamp = "X-Webhook-Timestamp"
	HeaderID        = "X-Webhook-Id"

	// DefaultWebhookWindow bounds how old a signed callback may be.
	DefaultWebhookWindow = 5 * time.Minute
)

var (
	ErrBadSignature   = errors.New("webhook signature mismatch")
	ErrStaleTimestamp = errors.New("webhook timestamp outside window")
)

// CanonicalJSON encodes a flat payload with keys in lexicographic order and
// no insignificant whitespace. encoding/json sorts map keys, which is what
// makes the output canonical.
func CanonicalJSON(payload map[string]any) ([]byte, error) {
	return json.Marshal(payload)
}

// SignWebhook returns the hex HMAC-SHA256 of body under secret.
func SignWebhook(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyWebhook checks a received callback: the signature must match body
// and the timestamp header must be within window of now.
func VerifyWebhook(secret string, body []byte, signature, timestamp string, now time.Time, window time.Duration) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrStaleTimestamp
	}
	if d := now.Sub(time.Unix(ts, 0)); d > window || d < -window {
		return ErrStaleTimestamp
	}
	want := SignWebhook(secret, body)
	if !hmac.Equal([]byte(want), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}
