package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gigpay/gigpay-backend/internal/api/httpx"
	"github.com/gigpay/gigpay-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type PaymentsHandler struct {
	Payments *services.PaymentService
}

func NewPaymentsHandler(ps *services.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{Payments: ps}
}

type transferReq struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Amount     int64  `json:"amount"`
}

func (h *PaymentsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SenderID == "" || req.ReceiverID == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "bad request")
		return
	}
	idem := r.Header.Get("Idempotency-Key")
	tr, err := h.Payments.Transfer(r.Context(), req.SenderID, req.ReceiverID, req.Amount, idem)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "money transferred successfully", tr)
}

type walletReq struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

func (h *PaymentsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req walletReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "bad request")
		return
	}
	idem := r.Header.Get("Idempotency-Key")
	tr, err := h.Payments.Deposit(r.Context(), req.UserID, req.Amount, idem)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "deposit accepted", tr)
}

func (h *PaymentsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req walletReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "bad request")
		return
	}
	idem := r.Header.Get("Idempotency-Key")
	tr, err := h.Payments.Withdraw(r.Context(), req.UserID, req.Amount, idem)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "withdrawal accepted", tr)
}

type attachMethodReq struct {
	UserID          string `json:"user_id"`
	PaymentMethodID string `json:"payment_method_id"`
}

func (h *PaymentsHandler) AttachPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req attachMethodReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.PaymentMethodID == "" {
		httpx.WriteFailure(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := h.Payments.AttachPaymentMethod(r.Context(), req.UserID, req.PaymentMethodID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "payment method attached", nil)
}

func (h *PaymentsHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	tr, err := h.Payments.GetTransfer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "", tr)
}
