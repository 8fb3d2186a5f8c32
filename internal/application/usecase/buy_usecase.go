// internal/application/usecase/buy_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"voucherhub/internal/domain/apperr"
	userdom "voucherhub/internal/domain/user"
	voucherdom "voucherhub/internal/domain/voucher"
)

// BuyUsecase runs the purchase protocol:
//
//  1. validate caller + payload (which also picks the payment variant)
//  2. read the voucher and check it is still in the Created state
//  3. ask the gateway to charge; only a confirmed "succeeded" proceeds
//  4. commit ownership conditionally (fails if another buyer won the race)
//
// No lock is held across step 3 and 4; the conditional commit in step 4 is
// what makes "first buyer wins" hold under concurrency.
type BuyUsecase struct {
	users      userdom.Repository
	vouchers   voucherdom.Repository
	gateway    PaymentGateway // nil when payment credentials are unresolved
	mailer     Mailer         // optional
	publicBase string
	newKey     func() string // idempotency key source
}

func NewBuyUsecase(users userdom.Repository, vouchers voucherdom.Repository, gateway PaymentGateway, mailer Mailer, publicBaseURL string) *BuyUsecase {
	return &BuyUsecase{
		users:      users,
		vouchers:   vouchers,
		gateway:    gateway,
		mailer:     mailer,
		publicBase: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		newKey:     uuid.NewString,
	}
}

type BuyInput struct {
	VoucherID string
	Quantity  int64

	// PaymentIntent variant: exactly one of the two.
	PaymentMethodID string
	PaymentIntentID string

	// Checkout variant: quantity + currency, no payment method/intent.
	Currency string
}

type BuyResult struct {
	// PaymentIntent variant.
	RequiresAction            bool
	PaymentIntentClientSecret string

	// Checkout variant.
	CheckoutSessionID string
	CheckoutURL       string
}

func (u *BuyUsecase) Buy(ctx context.Context, buyerUID string, in BuyInput) (BuyResult, error) {
	if u == nil || u.users == nil || u.vouchers == nil {
		return BuyResult{}, apperr.E(apperr.Internal, "buy usecase is not configured")
	}
	// Misconfiguration is an internal error at call time, not at startup.
	if u.gateway == nil || u.publicBase == "" {
		return BuyResult{}, apperr.E(apperr.Internal, "payment gateway is not configured")
	}

	uid := strings.TrimSpace(buyerUID)
	if uid == "" {
		return BuyResult{}, apperr.E(apperr.Unauthenticated, "the operation must be called while authenticated")
	}

	voucherID := strings.TrimSpace(in.VoucherID)
	if voucherID == "" {
		return BuyResult{}, apperr.E(apperr.InvalidArgument, "all fields must be present: voucherId")
	}
	if in.Quantity < 1 {
		return BuyResult{}, apperr.E(apperr.InvalidArgument, "field quantity must be a positive integer")
	}

	pm := strings.TrimSpace(in.PaymentMethodID)
	pi := strings.TrimSpace(in.PaymentIntentID)
	cur := strings.ToLower(strings.TrimSpace(in.Currency))

	checkout := pm == "" && pi == "" && cur != ""
	if !checkout {
		if (pm == "") == (pi == "") {
			return BuyResult{}, apperr.E(apperr.InvalidArgument, "exactly one of paymentMethodId or paymentIntentId must be present")
		}
	}

	v, err := u.vouchers.GetByID(ctx, voucherID)
	if err != nil {
		return BuyResult{}, apperr.Wrap(apperr.Internal, "failed to read voucher", err)
	}
	if v == nil {
		return BuyResult{}, apperr.E(apperr.FailedPrecondition, "voucher does not exist")
	}
	switch v.State() {
	case voucherdom.StateOwned:
		return BuyResult{}, apperr.E(apperr.FailedPrecondition, "voucher has already been bought")
	case voucherdom.StateRedeemed:
		return BuyResult{}, apperr.E(apperr.FailedPrecondition, "voucher has already been redeemed")
	}

	if checkout {
		return u.startCheckout(ctx, v, cur, in.Quantity)
	}

	res, err := u.gateway.ConfirmPayment(ctx, ConfirmPaymentInput{
		AmountMinor:     voucherdom.AmountMinorUnits(v.Price, v.Currency, in.Quantity),
		Currency:        v.Currency,
		PaymentMethodID: pm,
		PaymentIntentID: pi,
		IdempotencyKey:  u.newKey(),
	})
	if err != nil {
		return BuyResult{}, apperr.Wrap(apperr.Internal, "payment failed", err)
	}

	switch res.Outcome {
	case PaymentRequiresAction:
		// No document mutation: the caller re-invokes with the intent id.
		return BuyResult{
			RequiresAction:            true,
			PaymentIntentClientSecret: res.ClientSecret,
		}, nil

	case PaymentRequiresPaymentMethod:
		return BuyResult{}, apperr.E(apperr.Internal, "payment was declined, a new payment method is required")

	case PaymentSucceeded:
		// proceed to fulfillment

	default:
		return BuyResult{}, apperr.E(apperr.Internal, "unexpected payment state")
	}

	if err := u.vouchers.ClaimOwner(ctx, voucherID, uid); err != nil {
		switch {
		case errors.Is(err, voucherdom.ErrNotFound),
			errors.Is(err, voucherdom.ErrAlreadyOwned),
			errors.Is(err, voucherdom.ErrAlreadyRedeemed):
			// Lost the race after a successful charge. Surface the state error
			// and leave the intent id in the log for reconciliation.
			log.Printf("[buy_uc] charge succeeded but voucher moved voucherId=%s buyer=%s intent=%s err=%v",
				maskID(voucherID), maskID(uid), res.IntentID, err)
			return BuyResult{}, apperr.Wrap(apperr.FailedPrecondition, "voucher has already been bought", err)
		default:
			log.Printf("[buy_uc] commit failed after successful charge voucherId=%s buyer=%s intent=%s err=%v",
				maskID(voucherID), maskID(uid), res.IntentID, err)
			return BuyResult{}, apperr.Wrap(apperr.Unknown, "an unknown error occurred", err)
		}
	}

	log.Printf("[buy_uc] OK fulfilled voucherId=%s buyer=%s intent=%s", maskID(voucherID), maskID(uid), res.IntentID)

	u.sendReceipt(ctx, uid, v.Title)
	return BuyResult{}, nil
}

// startCheckout creates a hosted checkout session. No document mutation
// happens here; fulfillment runs when the buyer re-invokes Buy with the
// session's payment intent.
func (u *BuyUsecase) startCheckout(ctx context.Context, v *voucherdom.Voucher, currency string, quantity int64) (BuyResult, error) {
	sess, err := u.gateway.CreateCheckoutSession(ctx, CheckoutSessionInput{
		Name:            v.Title,
		UnitAmountMinor: voucherdom.AmountMinorUnits(v.Price, currency, 1),
		Currency:        currency,
		Quantity:        quantity,
		SuccessURL:      u.publicBase + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       u.publicBase + "/checkout/cancel",
	})
	if err != nil {
		return BuyResult{}, apperr.Wrap(apperr.Internal, "failed to create checkout session", err)
	}

	log.Printf("[buy_uc] OK checkout session created voucherId=%s session=%s", maskID(v.ID), sess.ID)
	return BuyResult{
		CheckoutSessionID: sess.ID,
		CheckoutURL:       sess.URL,
	}, nil
}

func (u *BuyUsecase) sendReceipt(ctx context.Context, uid, title string) {
	if u.mailer == nil {
		return
	}
	buyer, err := u.users.GetByID(ctx, uid)
	if err != nil || buyer == nil || buyer.Email == "" {
		return
	}
	body := fmt.Sprintf("Your purchase of %q is complete.", title)
	if mErr := u.mailer.Send(ctx, buyer.Email, "Voucher purchase receipt", body); mErr != nil {
		log.Printf("[buy_uc] WARN receipt mail failed buyer=%s err=%v", maskID(uid), mErr)
	}
}
