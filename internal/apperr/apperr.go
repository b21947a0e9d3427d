package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel failure kinds. Every service returns one of these (wrapped) so the
// HTTP layer can map it to a status without inspecting message strings.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrExternal     = errors.New("external failure")
	ErrSignature    = errors.New("invalid signature")
	ErrInternal     = errors.New("internal failure")
)

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}

func External(format string, args ...any) error {
	return wrap(ErrExternal, format, args...)
}

func Signature(format string, args ...any) error {
	return wrap(ErrSignature, format, args...)
}

func Internal(format string, args ...any) error {
	return wrap(ErrInternal, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// HTTPStatus maps a failure to the status the handlers use: 404 missing
// entity, 400 bad state or bad signature, 502 rejected processor call,
// 500 everything else.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrSignature):
		return http.StatusBadRequest
	case errors.Is(err, ErrExternal):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code returns a short machine-readable code for the failure kind.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrExternal):
		return "external_failure"
	case errors.Is(err, ErrSignature):
		return "signature_invalid"
	default:
		return "internal_error"
	}
}
