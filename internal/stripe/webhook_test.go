package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret string, payload []byte, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestConstructEvent_Valid(t *testing.T) {
	now := time.Unix(1700000000, 0)
	payload := []byte(`{"id":"evt_1","type":"customer.created","data":{"object":{"id":"cus_1","email":"a@b.c"}}}`)

	ev, err := constructEventAt(payload, sign("sec", payload, now), "sec", now, DefaultTolerance)
	require.NoError(t, err)
	assert.Equal(t, "customer.created", ev.Type)
	assert.Equal(t, "cus_1", ev.Data.Object.ID)
	assert.Equal(t, "a@b.c", ev.Data.Object.Email)
}

func TestConstructEvent_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	payload := []byte(`{"type":"customer.created"}`)

	_, err := constructEventAt(payload, sign("other", payload, now), "sec", now, DefaultTolerance)
	assert.ErrorIs(t, err, apperr.ErrSignature)
}

func TestConstructEvent_StaleTimestamp(t *testing.T) {
	now := time.Unix(1700000000, 0)
	payload := []byte(`{"type":"customer.created"}`)
	old := now.Add(-10 * time.Minute)

	_, err := constructEventAt(payload, sign("sec", payload, old), "sec", now, DefaultTolerance)
	assert.ErrorIs(t, err, apperr.ErrSignature)
}

func TestConstructEvent_MalformedHeaders(t *testing.T) {
	payload := []byte(`{}`)
	now := time.Unix(1700000000, 0)

	for _, header := range []string{
		"",
		"v1=deadbeef",
		"t=notanumber,v1=deadbeef",
		"t=1700000000",
	} {
		_, err := constructEventAt(payload, header, "sec", now, DefaultTolerance)
		assert.ErrorIs(t, err, apperr.ErrSignature, "header %q", header)
	}
}

func TestConstructEvent_SecondV1SignatureAccepted(t *testing.T) {
	now := time.Unix(1700000000, 0)
	payload := []byte(`{"type":"customer.created"}`)
	good := sign("sec", payload, now)
	header := fmt.Sprintf("t=%d,v1=%s,%s", now.Unix(), hex.EncodeToString([]byte("garbage-sig-bytes-00000000000000")), good[len(fmt.Sprintf("t=%d,", now.Unix())):])

	_, err := constructEventAt(payload, header, "sec", now, DefaultTolerance)
	assert.NoError(t, err)
}
