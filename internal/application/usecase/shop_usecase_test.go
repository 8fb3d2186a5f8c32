package usecase_test

import (
	"context"
	"errors"
	"testing"

	usecase "voucherhub/internal/application/usecase"
	"voucherhub/internal/domain/apperr"
	shopdom "voucherhub/internal/domain/shop"
	testhelpers "voucherhub/internal/test"
)

func TestCreateShopUnauthenticated(t *testing.T) {
	uc := usecase.NewShopUsecase(&testhelpers.ShopRepositoryStub{
		CreateWithOwnerFn: func(context.Context, shopdom.Shop, string) (shopdom.Shop, error) {
			t.Fatal("no document access on unauthenticated calls")
			return shopdom.Shop{}, nil
		},
	})

	_, err := uc.Create(context.Background(), "", usecase.CreateShopInput{Name: "Bakery"})
	if apperr.KindOf(err) != apperr.Unauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestCreateShopValidation(t *testing.T) {
	uc := usecase.NewShopUsecase(&testhelpers.ShopRepositoryStub{})

	if _, err := uc.Create(context.Background(), "uid-1", usecase.CreateShopInput{Name: "  "}); apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected invalid-argument for empty name, got %v", err)
	}
	if _, err := uc.Create(context.Background(), "uid-1", usecase.CreateShopInput{Name: "Bakery", Tags: []string{"bread", " "}}); apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected invalid-argument for blank tag, got %v", err)
	}
}

func TestCreateShopSuccess(t *testing.T) {
	var gotOwner string
	uc := usecase.NewShopUsecase(&testhelpers.ShopRepositoryStub{
		CreateWithOwnerFn: func(_ context.Context, s shopdom.Shop, ownerUID string) (shopdom.Shop, error) {
			gotOwner = ownerUID
			s.ID = "shop-7"
			return s, nil
		},
	})

	created, err := uc.Create(context.Background(), "uid-1", usecase.CreateShopInput{Name: "Bakery", Tags: []string{"bread"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "shop-7" {
		t.Fatalf("expected minted id, got %q", created.ID)
	}
	if gotOwner != "uid-1" {
		t.Fatalf("shop must be attached to the caller, got %q", gotOwner)
	}
	if len(created.Vouchers) != 0 {
		t.Fatalf("new shop must start with no vouchers: %+v", created)
	}
}

func TestCreateShopTagsDefaultEmpty(t *testing.T) {
	uc := usecase.NewShopUsecase(&testhelpers.ShopRepositoryStub{})

	created, err := uc.Create(context.Background(), "uid-1", usecase.CreateShopInput{Name: "Bakery"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Tags == nil || len(created.Tags) != 0 {
		t.Fatalf("tags must default to empty, got %#v", created.Tags)
	}
}

func TestCreateShopCommitFailure(t *testing.T) {
	uc := usecase.NewShopUsecase(&testhelpers.ShopRepositoryStub{
		CreateWithOwnerFn: func(context.Context, shopdom.Shop, string) (shopdom.Shop, error) {
			return shopdom.Shop{}, errors.New("batch commit failed")
		},
	})

	_, err := uc.Create(context.Background(), "uid-1", usecase.CreateShopInput{Name: "Bakery"})
	if apperr.KindOf(err) != apperr.Unknown {
		t.Fatalf("expected unknown on commit failure, got %v", err)
	}
}
