// Package stripe is a minimal client for the processor's form-encoded REST
// API. It covers only the calls the wallet needs; amounts are passed through
// in minor currency units without scaling.
package stripe

import (
	"context"
	"strconv"
	"time"

	"github.com/gigpay/gigpay-backend/internal/apperr"
	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/x-www-form-urlencoded")
	return &Client{http: c}
}

type apiObject struct {
	ID string `json:"id"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, form map[string]string) (string, error) {
	var obj apiObject
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&obj).
		SetError(&apiErr).
		Post(path)
	if err != nil {
		return "", apperr.External("stripe %s: %v", path, err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", apperr.External("stripe %s: %s", path, msg)
	}
	return obj.ID, nil
}

func (c *Client) CreateCustomer(ctx context.Context, email string) (string, error) {
	return c.post(ctx, "/v1/customers", map[string]string{"email": email})
}

func (c *Client) CreateTransfer(ctx context.Context, amount int64, source, destination string) (string, error) {
	return c.post(ctx, "/v1/transfers", map[string]string{
		"amount":             strconv.FormatInt(amount, 10),
		"currency":           "usd",
		"source_transaction": source,
		"destination":        destination,
	})
}

func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, customer string) (string, error) {
	return c.post(ctx, "/v1/payment_intents", map[string]string{
		"amount":   strconv.FormatInt(amount, 10),
		"currency": "usd",
		"customer": customer,
	})
}

func (c *Client) CreateCharge(ctx context.Context, amount int64, customer string) (string, error) {
	return c.post(ctx, "/v1/charges", map[string]string{
		"amount":   strconv.FormatInt(amount, 10),
		"currency": "usd",
		"customer": customer,
	})
}

func (c *Client) AttachPaymentMethod(ctx context.Context, paymentMethodID, customer string) error {
	_, err := c.post(ctx, "/v1/payment_methods/"+paymentMethodID+"/attach",
		map[string]string{"customer": customer})
	return err
}
