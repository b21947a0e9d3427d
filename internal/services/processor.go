package services

import "context"

// Processor is the payment-processor surface the services use. Amounts are in
// minor currency units end to end.
type Processor interface {
	CreateCustomer(ctx context.Context, email string) (string, error)
	CreateTransfer(ctx context.Context, amount int64, source, destination string) (string, error)
	CreatePaymentIntent(ctx context.Context, amount int64, customer string) (string, error)
	CreateCharge(ctx context.Context, amount int64, customer string) (string, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customer string) error
}
