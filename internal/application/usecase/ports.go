// internal/application/usecase/ports.go
package usecase

import "context"

// IdentityProvider is the outbound port for the external identity service
// (Firebase Auth in production).
type IdentityProvider interface {
	// CreateAccount provisions an account and returns its opaque uid.
	CreateAccount(ctx context.Context, email, password string) (string, error)

	// DeleteAccount removes an account. Used as compensation when the user
	// document write fails after account creation.
	DeleteAccount(ctx context.Context, uid string) error
}

// PaymentOutcome is the closed set of gateway results Buy branches on.
// Anything else the gateway reports maps to PaymentUnexpected.
type PaymentOutcome string

const (
	PaymentRequiresAction        PaymentOutcome = "requires_action"
	PaymentRequiresPaymentMethod PaymentOutcome = "requires_payment_method"
	PaymentSucceeded             PaymentOutcome = "succeeded"
	PaymentUnexpected            PaymentOutcome = "unexpected"
)

// ConfirmPaymentInput carries one payment attempt. Exactly one of
// PaymentMethodID / PaymentIntentID is set (validated by the caller).
type ConfirmPaymentInput struct {
	AmountMinor     int64
	Currency        string
	PaymentMethodID string
	PaymentIntentID string
	IdempotencyKey  string
}

// PaymentResult is the gateway's answer to a confirm attempt.
type PaymentResult struct {
	Outcome      PaymentOutcome
	IntentID     string
	ClientSecret string // continuation token for requires_action
}

// CheckoutSessionInput describes a hosted checkout session for one voucher.
type CheckoutSessionInput struct {
	Name            string
	UnitAmountMinor int64
	Currency        string
	Quantity        int64
	SuccessURL      string
	CancelURL       string
}

// CheckoutSession is the created hosted session the buyer is redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway is the outbound port for the external payment service
// (Stripe in production). It only reports status values; no document state.
type PaymentGateway interface {
	ConfirmPayment(ctx context.Context, in ConfirmPaymentInput) (PaymentResult, error)
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (CheckoutSession, error)
}

// Mailer is the outbound port for best-effort notification mail.
// Failures are logged and never fail the operation.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
