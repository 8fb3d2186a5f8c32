package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	usecase "voucherhub/internal/application/usecase"
	"voucherhub/internal/domain/apperr"
	userdom "voucherhub/internal/domain/user"
	voucherdom "voucherhub/internal/domain/voucher"
	testhelpers "voucherhub/internal/test"
)

const publicBase = "https://shop.example"

func unsoldVoucher() *voucherdom.Voucher {
	return &voucherdom.Voucher{
		ID:        "voucher-1",
		Title:     "Coffee",
		Price:     4.5,
		Currency:  "usd",
		CreatedAt: time.Now(),
		ShopID:    "shop-1",
	}
}

func voucherRepoWith(v *voucherdom.Voucher) *testhelpers.VoucherRepositoryStub {
	return &testhelpers.VoucherRepositoryStub{
		GetByIDFn: func(context.Context, string) (*voucherdom.Voucher, error) {
			return v, nil
		},
	}
}

func succeedingGateway() *testhelpers.PaymentGatewayStub {
	return &testhelpers.PaymentGatewayStub{}
}

func validBuy() usecase.BuyInput {
	return usecase.BuyInput{VoucherID: "voucher-1", Quantity: 1, PaymentMethodID: "pm_1"}
}

func TestBuyMisconfigured(t *testing.T) {
	// no gateway
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, voucherRepoWith(unsoldVoucher()), nil, nil, publicBase)
	if _, err := uc.Buy(context.Background(), "buyer", validBuy()); apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected internal for missing gateway, got %v", err)
	}

	// no public domain
	uc = usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, voucherRepoWith(unsoldVoucher()), succeedingGateway(), nil, " ")
	if _, err := uc.Buy(context.Background(), "buyer", validBuy()); apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected internal for missing public domain, got %v", err)
	}
}

func TestBuyUnauthenticated(t *testing.T) {
	repo := &testhelpers.VoucherRepositoryStub{
		GetByIDFn: func(context.Context, string) (*voucherdom.Voucher, error) {
			t.Fatal("no document access on unauthenticated calls")
			return nil, nil
		},
	}
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, repo, succeedingGateway(), nil, publicBase)

	if _, err := uc.Buy(context.Background(), "", validBuy()); apperr.KindOf(err) != apperr.Unauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestBuyValidation(t *testing.T) {
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, voucherRepoWith(unsoldVoucher()), succeedingGateway(), nil, publicBase)

	cases := []struct {
		name string
		in   usecase.BuyInput
	}{
		{"missing voucherId", usecase.BuyInput{Quantity: 1, PaymentMethodID: "pm_1"}},
		{"zero quantity", usecase.BuyInput{VoucherID: "voucher-1", PaymentMethodID: "pm_1"}},
		{"neither method nor intent", usecase.BuyInput{VoucherID: "voucher-1", Quantity: 1}},
		{"both method and intent", usecase.BuyInput{VoucherID: "voucher-1", Quantity: 1, PaymentMethodID: "pm_1", PaymentIntentID: "pi_1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Buy(context.Background(), "buyer", tc.in); apperr.KindOf(err) != apperr.InvalidArgument {
				t.Fatalf("expected invalid-argument, got %v", err)
			}
		})
	}
}

func TestBuyVoucherPreconditions(t *testing.T) {
	now := time.Now()

	t.Run("missing voucher", func(t *testing.T) {
		uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, voucherRepoWith(nil), succeedingGateway(), nil, publicBase)
		if _, err := uc.Buy(context.Background(), "buyer", validBuy()); apperr.KindOf(err) != apperr.FailedPrecondition {
			t.Fatalf("expected failed-precondition, got %v", err)
		}
	})

	t.Run("already owned", func(t *testing.T) {
		v := unsoldVoucher()
		v.OwnerID = "someone"
		uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, voucherRepoWith(v), succeedingGateway(), nil, publicBase)
		if _, err := uc.Buy(context.Background(), "buyer", validBuy()); apperr.KindOf(err) != apperr.FailedPrecondition {
			t.Fatalf("expected failed-precondition, got %v", err)
		}
	})

	t.Run("already redeemed", func(t *testing.T) {
		v := unsoldVoucher()
		v.RedeemedAt = &now
		uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, voucherRepoWith(v), succeedingGateway(), nil, publicBase)
		if _, err := uc.Buy(context.Background(), "buyer", validBuy()); apperr.KindOf(err) != apperr.FailedPrecondition {
			t.Fatalf("expected failed-precondition, got %v", err)
		}
	})
}

func TestBuyRequiresActionLeavesStateUntouched(t *testing.T) {
	repo := voucherRepoWith(unsoldVoucher())
	repo.ClaimOwnerFn = func(context.Context, string, string) error {
		t.Fatal("no mutation may happen on requires_action")
		return nil
	}
	gw := &testhelpers.PaymentGatewayStub{
		ConfirmPaymentFn: func(context.Context, usecase.ConfirmPaymentInput) (usecase.PaymentResult, error) {
			return usecase.PaymentResult{Outcome: usecase.PaymentRequiresAction, IntentID: "pi_2", ClientSecret: "cs_secret"}, nil
		},
	}
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, repo, gw, nil, publicBase)

	res, err := uc.Buy(context.Background(), "buyer", validBuy())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.RequiresAction || res.PaymentIntentClientSecret != "cs_secret" {
		t.Fatalf("expected requiresAction with continuation token, got %+v", res)
	}
}

func TestBuyDeclined(t *testing.T) {
	repo := voucherRepoWith(unsoldVoucher())
	repo.ClaimOwnerFn = func(context.Context, string, string) error {
		t.Fatal("no mutation may happen on a declined payment")
		return nil
	}
	gw := &testhelpers.PaymentGatewayStub{
		ConfirmPaymentFn: func(context.Context, usecase.ConfirmPaymentInput) (usecase.PaymentResult, error) {
			return usecase.PaymentResult{Outcome: usecase.PaymentRequiresPaymentMethod}, nil
		},
	}
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, repo, gw, nil, publicBase)

	if _, err := uc.Buy(context.Background(), "buyer", validBuy()); apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected internal for declined payment, got %v", err)
	}
}

func TestBuyUnexpectedGatewayState(t *testing.T) {
	gw := &testhelpers.PaymentGatewayStub{
		ConfirmPaymentFn: func(context.Context, usecase.ConfirmPaymentInput) (usecase.PaymentResult, error) {
			return usecase.PaymentResult{Outcome: usecase.PaymentUnexpected}, nil
		},
	}
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, voucherRepoWith(unsoldVoucher()), gw, nil, publicBase)

	if _, err := uc.Buy(context.Background(), "buyer", validBuy()); apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected internal for unexpected state, got %v", err)
	}
}

func TestBuyGatewayError(t *testing.T) {
	gw := &testhelpers.PaymentGatewayStub{
		ConfirmPaymentFn: func(context.Context, usecase.ConfirmPaymentInput) (usecase.PaymentResult, error) {
			return usecase.PaymentResult{}, errors.New("gateway unreachable")
		},
	}
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, voucherRepoWith(unsoldVoucher()), gw, nil, publicBase)

	if _, err := uc.Buy(context.Background(), "buyer", validBuy()); apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected internal for gateway failure, got %v", err)
	}
}

func TestBuySucceededFulfills(t *testing.T) {
	var claimedVoucher, claimedBuyer string
	var charged usecase.ConfirmPaymentInput
	repo := voucherRepoWith(unsoldVoucher())
	repo.ClaimOwnerFn = func(_ context.Context, voucherID, buyerUID string) error {
		claimedVoucher, claimedBuyer = voucherID, buyerUID
		return nil
	}
	gw := &testhelpers.PaymentGatewayStub{
		ConfirmPaymentFn: func(_ context.Context, in usecase.ConfirmPaymentInput) (usecase.PaymentResult, error) {
			charged = in
			return usecase.PaymentResult{Outcome: usecase.PaymentSucceeded, IntentID: "pi_3"}, nil
		},
	}
	users := &testhelpers.UserRepositoryStub{
		GetByIDFn: func(_ context.Context, id string) (*userdom.User, error) {
			return &userdom.User{ID: id, Username: "bob", Email: "bob@example.com"}, nil
		},
	}
	mailedTo := ""
	mailer := &testhelpers.MailerStub{SendFn: func(_ context.Context, to, _, _ string) error {
		mailedTo = to
		return nil
	}}
	uc := usecase.NewBuyUsecase(users, repo, gw, mailer, publicBase)

	in := validBuy()
	in.Quantity = 3
	res, err := uc.Buy(context.Background(), "buyer", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RequiresAction {
		t.Fatal("succeeded purchase must not require action")
	}
	if claimedVoucher != "voucher-1" || claimedBuyer != "buyer" {
		t.Fatalf("unexpected claim: voucher=%q buyer=%q", claimedVoucher, claimedBuyer)
	}
	// 4.50 usd * 3 = 1350 minor units
	if charged.AmountMinor != 1350 || charged.Currency != "usd" {
		t.Fatalf("unexpected charge: %+v", charged)
	}
	if charged.IdempotencyKey == "" {
		t.Fatal("charge must carry an idempotency key")
	}
	if mailedTo != "bob@example.com" {
		t.Fatalf("expected receipt mail, got %q", mailedTo)
	}
}

func TestBuyLosesRaceAfterCharge(t *testing.T) {
	repo := voucherRepoWith(unsoldVoucher())
	repo.ClaimOwnerFn = func(context.Context, string, string) error {
		return voucherdom.ErrAlreadyOwned
	}
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, repo, succeedingGateway(), nil, publicBase)

	_, err := uc.Buy(context.Background(), "buyer", validBuy())
	if apperr.KindOf(err) != apperr.FailedPrecondition {
		t.Fatalf("expected failed-precondition when another buyer won, got %v", err)
	}
}

func TestBuyCommitFailure(t *testing.T) {
	repo := voucherRepoWith(unsoldVoucher())
	repo.ClaimOwnerFn = func(context.Context, string, string) error {
		return errors.New("commit failed")
	}
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, repo, succeedingGateway(), nil, publicBase)

	_, err := uc.Buy(context.Background(), "buyer", validBuy())
	if apperr.KindOf(err) != apperr.Unknown {
		t.Fatalf("expected unknown on commit failure, got %v", err)
	}
}

func TestBuyCheckoutVariant(t *testing.T) {
	var sess usecase.CheckoutSessionInput
	repo := voucherRepoWith(unsoldVoucher())
	repo.ClaimOwnerFn = func(context.Context, string, string) error {
		t.Fatal("no mutation may happen at session creation")
		return nil
	}
	gw := &testhelpers.PaymentGatewayStub{
		ConfirmPaymentFn: func(context.Context, usecase.ConfirmPaymentInput) (usecase.PaymentResult, error) {
			t.Fatal("checkout variant must not confirm an intent")
			return usecase.PaymentResult{}, nil
		},
		CreateCheckoutSessionFn: func(_ context.Context, in usecase.CheckoutSessionInput) (usecase.CheckoutSession, error) {
			sess = in
			return usecase.CheckoutSession{ID: "cs_9", URL: "https://checkout.example/cs_9"}, nil
		},
	}
	uc := usecase.NewBuyUsecase(&testhelpers.UserRepositoryStub{}, repo, gw, nil, publicBase)

	res, err := uc.Buy(context.Background(), "buyer", usecase.BuyInput{
		VoucherID: "voucher-1",
		Quantity:  2,
		Currency:  "JPY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CheckoutSessionID != "cs_9" || res.CheckoutURL == "" {
		t.Fatalf("expected session in result, got %+v", res)
	}
	if sess.Currency != "jpy" || sess.Quantity != 2 {
		t.Fatalf("unexpected session input: %+v", sess)
	}
	// jpy is zero-decimal: 4.5 rounds to 5 per unit
	if sess.UnitAmountMinor != 5 {
		t.Fatalf("unexpected unit amount: %d", sess.UnitAmountMinor)
	}
	if sess.SuccessURL != publicBase+"/checkout/success?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("unexpected success url: %q", sess.SuccessURL)
	}
	if sess.CancelURL != publicBase+"/checkout/cancel" {
		t.Fatalf("unexpected cancel url: %q", sess.CancelURL)
	}
}
