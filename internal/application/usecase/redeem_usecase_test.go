package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	usecase "voucherhub/internal/application/usecase"
	"voucherhub/internal/domain/apperr"
	voucherdom "voucherhub/internal/domain/voucher"
	testhelpers "voucherhub/internal/test"
)

func TestRedeemUnauthenticated(t *testing.T) {
	repo := &testhelpers.VoucherRepositoryStub{
		RedeemFn: func(context.Context, string, time.Time) error {
			t.Fatal("no commit on unauthenticated calls")
			return nil
		},
	}
	uc := usecase.NewRedeemUsecase(repo)

	if err := uc.Redeem(context.Background(), " ", "voucher-1"); apperr.KindOf(err) != apperr.Unauthenticated {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestRedeemMissingVoucherID(t *testing.T) {
	uc := usecase.NewRedeemUsecase(&testhelpers.VoucherRepositoryStub{})

	if err := uc.Redeem(context.Background(), "staff", ""); apperr.KindOf(err) != apperr.InvalidArgument {
		t.Fatalf("expected invalid-argument, got %v", err)
	}
}

func TestRedeemStateErrors(t *testing.T) {
	cases := []struct {
		name   string
		commit error
		kind   apperr.Kind
	}{
		{"not found", voucherdom.ErrNotFound, apperr.FailedPrecondition},
		{"not owned", voucherdom.ErrNotOwned, apperr.FailedPrecondition},
		{"owner missing", voucherdom.ErrOwnerMissing, apperr.FailedPrecondition},
		{"already redeemed", voucherdom.ErrAlreadyRedeemed, apperr.FailedPrecondition},
		{"storage failure", errors.New("deadline exceeded"), apperr.Unknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &testhelpers.VoucherRepositoryStub{
				RedeemFn: func(context.Context, string, time.Time) error { return tc.commit },
			}
			uc := usecase.NewRedeemUsecase(repo)

			err := uc.Redeem(context.Background(), "staff", "voucher-1")
			if apperr.KindOf(err) != tc.kind {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
			if !errors.Is(err, tc.commit) {
				t.Fatalf("commit error must stay in the chain, got %v", err)
			}
		})
	}
}

func TestRedeemStampsUTC(t *testing.T) {
	var stamped time.Time
	repo := &testhelpers.VoucherRepositoryStub{
		RedeemFn: func(_ context.Context, voucherID string, at time.Time) error {
			if voucherID != "voucher-1" {
				t.Fatalf("unexpected voucher id %q", voucherID)
			}
			stamped = at
			return nil
		},
	}
	uc := usecase.NewRedeemUsecase(repo)

	before := time.Now().UTC()
	if err := uc.Redeem(context.Background(), "staff", "voucher-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := time.Now().UTC()

	if stamped.Location() != time.UTC {
		t.Fatalf("expected UTC stamp, got %v", stamped.Location())
	}
	if stamped.Before(before) || stamped.After(after) {
		t.Fatalf("stamp %v out of range [%v, %v]", stamped, before, after)
	}
}
