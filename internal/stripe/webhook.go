package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gigpay/gigpay-backend/internal/apperr"
)

// DefaultTolerance is how far a webhook timestamp may drift before the
// signature is rejected as stale.
const DefaultTolerance = 5 * time.Minute

// Event is a processor-originated webhook event.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"object"`
	} `json:"data"`
}

// ConstructEvent verifies the Stripe-Signature header over the raw payload
// and unmarshals the event. The header carries a unix timestamp and one or
// more v1 signatures: HMAC-SHA256(secret, "<t>.<payload>") hex-encoded.
func ConstructEvent(payload []byte, sigHeader, secret string) (Event, error) {
	return constructEventAt(payload, sigHeader, secret, time.Now(), DefaultTolerance)
}

func constructEventAt(payload []byte, sigHeader, secret string, now time.Time, tolerance time.Duration) (Event, error) {
	var event Event
	if sigHeader == "" {
		return event, apperr.Signature("missing signature header")
	}

	var ts int64 = -1
	var sigs [][]byte
	for _, part := range strings.Split(sigHeader, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return event, apperr.Signature("malformed timestamp")
			}
			ts = n
		case "v1":
			sig, err := hex.DecodeString(v)
			if err != nil {
				continue
			}
			sigs = append(sigs, sig)
		}
	}
	if ts < 0 || len(sigs) == 0 {
		return event, apperr.Signature("malformed signature header")
	}
	if d := now.Sub(time.Unix(ts, 0)); d > tolerance || d < -tolerance {
		return event, apperr.Signature("timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	ok := false
	for _, sig := range sigs {
		if hmac.Equal(expected, sig) {
			ok = true
			break
		}
	}
	if !ok {
		return event, apperr.Signature("no matching v1 signature")
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, apperr.Signature("undecodable payload: %v", err)
	}
	return event, nil
}
