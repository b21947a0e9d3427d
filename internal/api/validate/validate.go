package validate

import (
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// OrNil keeps callers from returning a typed nil slice as a non-nil error.
func (e Errs) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MinInt(field string, v, min int64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatInt(min, 10)}
	}
	return nil
}

// Email rejects anything without a local part and a dotted domain. Full
// address verification belongs to the mailbox, not the API.
func Email(field, value string) *ErrField {
	if value == "" {
		return nil // Required reports the empty case
	}
	at := strings.Index(value, "@")
	if at < 1 || !strings.Contains(value[at+1:], ".") || strings.ContainsAny(value, " \t") {
		return &ErrField{Field: field, Msg: "not a valid email"}
	}
	return nil
}
