package usecase_test

import (
	"context"
	"testing"
	"time"

	usecase "voucherhub/internal/application/usecase"
	"voucherhub/internal/domain/apperr"
	userdom "voucherhub/internal/domain/user"
	voucherdom "voucherhub/internal/domain/voucher"
	testhelpers "voucherhub/internal/test"
)

func controllerOf(shopID string) *testhelpers.UserRepositoryStub {
	return &testhelpers.UserRepositoryStub{
		GetByIDFn: func(_ context.Context, id string) (*userdom.User, error) {
			return &userdom.User{ID: id, Username: "alice", Email: "a@b.c", Shops: []string{shopID}}, nil
		},
	}
}

func TestCreateVoucherValidation(t *testing.T) {
	uc := usecase.NewVoucherUsecase(controllerOf("shop-1"), &testhelpers.VoucherRepositoryStub{})

	if _, err := uc.Create(context.Background(), "", usecase.CreateVoucherInput{Title: "Coffee", ShopID: "shop-1"}); apperr.KindOf(err) != apperr.Unauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "uid-1", usecase.CreateVoucherInput{Title: "", ShopID: "shop-1"}); apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected invalid-argument for missing title, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "uid-1", usecase.CreateVoucherInput{Title: "Coffee", ShopID: ""}); apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected invalid-argument for missing shopId, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "uid-1", usecase.CreateVoucherInput{Title: "Coffee", ShopID: "shop-1", ExpireAt: "not-a-date"}); apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected invalid-argument for bad expireAt, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "uid-1", usecase.CreateVoucherInput{Title: "Coffee", ShopID: "shop-1", Price: -5}); apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected invalid-argument for negative price, got %v", err)
	}
}

func TestCreateVoucherPermissionDenied(t *testing.T) {
	uc := usecase.NewVoucherUsecase(controllerOf("shop-1"), &testhelpers.VoucherRepositoryStub{
		CreateFn: func(context.Context, voucherdom.Voucher) (voucherdom.Voucher, error) {
			t.Fatal("voucher must not be created for a non-controller")
			return voucherdom.Voucher{}, nil
		},
	})

	_, err := uc.Create(context.Background(), "uid-1", usecase.CreateVoucherInput{Title: "Coffee", ShopID: "shop-other"})
	if apperr.KindOf(err) != apperr.PermissionDenied {
		t.Fatalf("expected permission-denied, got %v", err)
	}
}

func TestCreateVoucherMissingCaller(t *testing.T) {
	uc := usecase.NewVoucherUsecase(&testhelpers.UserRepositoryStub{}, &testhelpers.VoucherRepositoryStub{})

	_, err := uc.Create(context.Background(), "ghost", usecase.CreateVoucherInput{Title: "Coffee", ShopID: "shop-1"})
	if apperr.KindOf(err) != apperr.PermissionDenied {
		t.Fatalf("expected permission-denied for unknown caller, got %v", err)
	}
}

func TestCreateVoucherSuccess(t *testing.T) {
	var saved voucherdom.Voucher
	uc := usecase.NewVoucherUsecase(controllerOf("shop-1"), &testhelpers.VoucherRepositoryStub{
		CreateFn: func(_ context.Context, v voucherdom.Voucher) (voucherdom.Voucher, error) {
			saved = v
			v.ID = "voucher-9"
			return v, nil
		},
	})

	created, err := uc.Create(context.Background(), "uid-1", usecase.CreateVoucherInput{
		Title:    "Coffee",
		Price:    4.5,
		Currency: "EUR",
		ExpireAt: "2027-01-02",
		ShopID:   "shop-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "voucher-9" {
		t.Fatalf("expected minted id, got %q", created.ID)
	}
	if saved.Currency != "eur" {
		t.Fatalf("currency must be normalized lowercase, got %q", saved.Currency)
	}
	if saved.OwnerID != "" || saved.RedeemedAt != nil {
		t.Fatalf("new voucher must be unowned and unredeemed: %+v", saved)
	}
	if saved.ExpireAt == nil || !saved.ExpireAt.Equal(time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expireAt mis-parsed: %v", saved.ExpireAt)
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("createdAt must be set by the usecase")
	}
}
