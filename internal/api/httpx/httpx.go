package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/gigpay/gigpay-backend/internal/apperr"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteSuccess(w http.ResponseWriter, status int, msg string, data any) {
	WriteJSON(w, status, Response{Success: true, Message: msg, Data: data})
}

func WriteFailure(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Response{Success: false, Message: msg})
}

// WriteError maps a service failure to its status and code.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, apperr.HTTPStatus(err), Response{
		Success: false,
		Message: err.Error(),
		Code:    apperr.Code(err),
	})
}
