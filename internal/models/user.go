package models

import (
	"errors"
	"strings"
	"time"
)

// User is a wallet account. Balance is kept in minor currency units (cents);
// every operation in the API speaks cents, nothing scales by 100.
// StripeCustomerID is nil until provisioning succeeds.
type User struct {
	ID                    string    `json:"id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	PasswordHash          string    `json:"-"`
	Balance               int64     `json:"balance"`
	StripeCustomerID      *string   `json:"stripe_customer_id,omitempty"`
	StripePaymentMethodID *string   `json:"stripe_payment_method_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return errors.New("username too short")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}

// Provisioned reports whether the user is linked to a processor customer.
func (u *User) Provisioned() bool {
	return u.StripeCustomerID != nil && *u.StripeCustomerID != ""
}
