package handlers

import (
	"io"
	"net/http"

	"github.com/gigpay/gigpay-backend/internal/api/httpx"
	"github.com/gigpay/gigpay-backend/internal/services"
)

const maxWebhookBody = 64 << 10

type WebhookHandler struct {
	Webhooks *services.WebhookService
}

func NewWebhookHandler(ws *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{Webhooks: ws}
}

// Stripe receives processor events. The signature is verified over the raw
// body, so the body must not be decoded before verification.
func (h *WebhookHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "unreadable body")
		return
	}
	handled, err := h.Webhooks.Handle(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if !handled {
		httpx.WriteSuccess(w, http.StatusOK, "webhook event ignored", nil)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "webhook handled successfully", nil)
}
