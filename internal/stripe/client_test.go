package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/customers", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ada@example.com", r.PostForm.Get("email"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cus_123"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	id, err := c.CreateCustomer(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cus_123", id)
}

func TestCreateTransfer_PassesAmountUnscaled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/transfers", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "200", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "cus_1", r.PostForm.Get("source_transaction"))
		assert.Equal(t, "cus_2", r.PostForm.Get("destination"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"tr_1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	id, err := c.CreateTransfer(context.Background(), 200, "cus_1", "cus_2")
	require.NoError(t, err)
	assert.Equal(t, "tr_1", id)
}

func TestPost_APIErrorMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	_, err := c.CreateCharge(context.Background(), 100, "cus_1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrExternal)
	assert.Contains(t, err.Error(), "declined")
}

func TestAttachPaymentMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_methods/pm_1/attach", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "cus_1", r.PostForm.Get("customer"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pm_1"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test")
	assert.NoError(t, c.AttachPaymentMethod(context.Background(), "pm_1", "cus_1"))
}
