// internal/adapters/out/stripe/payment_gateway.go
package stripe

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	uc "voucherhub/internal/application/usecase"
)

// Gateway implements usecase.PaymentGateway on the Stripe API.
//
// Only the intent status makes it back to the core; amounts are charged in
// the currency's minor unit as computed by the caller.
type Gateway struct {
	api *client.API
}

func NewGateway(secretKey string) *Gateway {
	sc := &client.API{}
	sc.Init(strings.TrimSpace(secretKey), nil)
	return &Gateway{api: sc}
}

// ConfirmPayment creates-and-confirms a new intent (paymentMethodId) or
// confirms an existing one (paymentIntentId) and classifies the result.
func (g *Gateway) ConfirmPayment(ctx context.Context, in uc.ConfirmPaymentInput) (uc.PaymentResult, error) {
	if g == nil || g.api == nil {
		return uc.PaymentResult{}, errors.New("stripe gateway is not initialized")
	}

	var (
		pi  *stripe.PaymentIntent
		err error
	)

	if id := strings.TrimSpace(in.PaymentIntentID); id != "" {
		params := &stripe.PaymentIntentConfirmParams{}
		params.Context = ctx
		pi, err = g.api.PaymentIntents.Confirm(id, params)
	} else {
		params := &stripe.PaymentIntentParams{
			Amount:             stripe.Int64(in.AmountMinor),
			Currency:           stripe.String(in.Currency),
			PaymentMethod:      stripe.String(in.PaymentMethodID),
			Confirm:            stripe.Bool(true),
			ConfirmationMethod: stripe.String(string(stripe.PaymentIntentConfirmationMethodManual)),
		}
		params.Context = ctx
		if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
			params.SetIdempotencyKey(key)
		}
		pi, err = g.api.PaymentIntents.New(params)
	}
	if err != nil {
		return uc.PaymentResult{}, err
	}

	res := uc.PaymentResult{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusRequiresAction:
		res.Outcome = uc.PaymentRequiresAction
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		res.Outcome = uc.PaymentRequiresPaymentMethod
	case stripe.PaymentIntentStatusSucceeded:
		res.Outcome = uc.PaymentSucceeded
	default:
		log.Printf("[stripe_gateway] unexpected intent status intent=%s status=%s", pi.ID, pi.Status)
		res.Outcome = uc.PaymentUnexpected
	}
	return res, nil
}

// CreateCheckoutSession creates a hosted payment-mode checkout session with
// one ad-hoc line item.
func (g *Gateway) CreateCheckoutSession(ctx context.Context, in uc.CheckoutSessionInput) (uc.CheckoutSession, error) {
	if g == nil || g.api == nil {
		return uc.CheckoutSession{}, errors.New("stripe gateway is not initialized")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(in.Quantity),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(in.Currency),
					UnitAmount: stripe.Int64(in.UnitAmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Name),
					},
				},
			},
		},
	}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return uc.CheckoutSession{}, err
	}
	return uc.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}
