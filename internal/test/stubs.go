// internal/test/stubs.go
package test

import (
	"context"
	"time"

	usecase "voucherhub/internal/application/usecase"
	shopdom "voucherhub/internal/domain/shop"
	userdom "voucherhub/internal/domain/user"
	voucherdom "voucherhub/internal/domain/voucher"
)

// UserRepositoryStub implements user.Repository with function fields.
// Nil fields fall back to empty results.
type UserRepositoryStub struct {
	GetByIDFn        func(ctx context.Context, id string) (*userdom.User, error)
	UsernameExistsFn func(ctx context.Context, username string) (bool, error)
	CreateFn         func(ctx context.Context, u userdom.User) error
}

func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*userdom.User, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *UserRepositoryStub) UsernameExists(ctx context.Context, username string) (bool, error) {
	if s.UsernameExistsFn != nil {
		return s.UsernameExistsFn(ctx, username)
	}
	return false, nil
}

func (s *UserRepositoryStub) Create(ctx context.Context, u userdom.User) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, u)
	}
	return nil
}

// ShopRepositoryStub implements shop.Repository.
type ShopRepositoryStub struct {
	GetByIDFn         func(ctx context.Context, id string) (*shopdom.Shop, error)
	CreateWithOwnerFn func(ctx context.Context, s shopdom.Shop, ownerUID string) (shopdom.Shop, error)
}

func (s *ShopRepositoryStub) GetByID(ctx context.Context, id string) (*shopdom.Shop, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *ShopRepositoryStub) CreateWithOwner(ctx context.Context, sh shopdom.Shop, ownerUID string) (shopdom.Shop, error) {
	if s.CreateWithOwnerFn != nil {
		return s.CreateWithOwnerFn(ctx, sh, ownerUID)
	}
	sh.ID = "shop-1"
	return sh, nil
}

// VoucherRepositoryStub implements voucher.Repository.
type VoucherRepositoryStub struct {
	GetByIDFn    func(ctx context.Context, id string) (*voucherdom.Voucher, error)
	CreateFn     func(ctx context.Context, v voucherdom.Voucher) (voucherdom.Voucher, error)
	ClaimOwnerFn func(ctx context.Context, voucherID, buyerUID string) error
	RedeemFn     func(ctx context.Context, voucherID string, at time.Time) error
	TransferFn   func(ctx context.Context, voucherID, senderUID, receiverUID string) error
}

func (s *VoucherRepositoryStub) GetByID(ctx context.Context, id string) (*voucherdom.Voucher, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *VoucherRepositoryStub) Create(ctx context.Context, v voucherdom.Voucher) (voucherdom.Voucher, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, v)
	}
	v.ID = "voucher-1"
	return v, nil
}

func (s *VoucherRepositoryStub) ClaimOwner(ctx context.Context, voucherID, buyerUID string) error {
	if s.ClaimOwnerFn != nil {
		return s.ClaimOwnerFn(ctx, voucherID, buyerUID)
	}
	return nil
}

func (s *VoucherRepositoryStub) Redeem(ctx context.Context, voucherID string, at time.Time) error {
	if s.RedeemFn != nil {
		return s.RedeemFn(ctx, voucherID, at)
	}
	return nil
}

func (s *VoucherRepositoryStub) Transfer(ctx context.Context, voucherID, senderUID, receiverUID string) error {
	if s.TransferFn != nil {
		return s.TransferFn(ctx, voucherID, senderUID, receiverUID)
	}
	return nil
}

// IdentityProviderStub implements usecase.IdentityProvider.
type IdentityProviderStub struct {
	CreateAccountFn func(ctx context.Context, email, password string) (string, error)
	DeleteAccountFn func(ctx context.Context, uid string) error
}

func (s *IdentityProviderStub) CreateAccount(ctx context.Context, email, password string) (string, error) {
	if s.CreateAccountFn != nil {
		return s.CreateAccountFn(ctx, email, password)
	}
	return "uid-1", nil
}

func (s *IdentityProviderStub) DeleteAccount(ctx context.Context, uid string) error {
	if s.DeleteAccountFn != nil {
		return s.DeleteAccountFn(ctx, uid)
	}
	return nil
}

// PaymentGatewayStub implements usecase.PaymentGateway.
type PaymentGatewayStub struct {
	ConfirmPaymentFn        func(ctx context.Context, in usecase.ConfirmPaymentInput) (usecase.PaymentResult, error)
	CreateCheckoutSessionFn func(ctx context.Context, in usecase.CheckoutSessionInput) (usecase.CheckoutSession, error)
}

func (s *PaymentGatewayStub) ConfirmPayment(ctx context.Context, in usecase.ConfirmPaymentInput) (usecase.PaymentResult, error) {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, in)
	}
	return usecase.PaymentResult{Outcome: usecase.PaymentSucceeded, IntentID: "pi_1"}, nil
}

func (s *PaymentGatewayStub) CreateCheckoutSession(ctx context.Context, in usecase.CheckoutSessionInput) (usecase.CheckoutSession, error) {
	if s.CreateCheckoutSessionFn != nil {
		return s.CreateCheckoutSessionFn(ctx, in)
	}
	return usecase.CheckoutSession{ID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
}

// MailerStub implements usecase.Mailer.
type MailerStub struct {
	SendFn func(ctx context.Context, to, subject, body string) error
}

func (s *MailerStub) Send(ctx context.Context, to, subject, body string) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, to, subject, body)
	}
	return nil
}
