// internal/application/usecase/voucher_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"voucherhub/internal/domain/apperr"
	userdom "voucherhub/internal/domain/user"
	voucherdom "voucherhub/internal/domain/voucher"
)

// VoucherUsecase issues vouchers for shops the caller controls.
type VoucherUsecase struct {
	users    userdom.Repository
	vouchers voucherdom.Repository
	now      func() time.Time
}

func NewVoucherUsecase(users userdom.Repository, vouchers voucherdom.Repository) *VoucherUsecase {
	return &VoucherUsecase{
		users:    users,
		vouchers: vouchers,
		now:      time.Now,
	}
}

type CreateVoucherInput struct {
	Title       string
	Description *string
	Price       float64
	Currency    string
	ExpireAt    string // RFC3339 or date-only, optional
	ShopID      string
}

// Create validates that the caller controls the shop, then atomically writes
// the voucher document and appends its reference to the shop's vouchers.
func (u *VoucherUsecase) Create(ctx context.Context, callerUID string, in CreateVoucherInput) (voucherdom.Voucher, error) {
	if u == nil || u.users == nil || u.vouchers == nil {
		return voucherdom.Voucher{}, apperr.E(apperr.Internal, "voucher usecase is not configured")
	}

	uid := strings.TrimSpace(callerUID)
	if uid == "" {
		return voucherdom.Voucher{}, apperr.E(apperr.Unauthenticated, "the operation must be called while authenticated")
	}

	title := strings.TrimSpace(in.Title)
	shopID := strings.TrimSpace(in.ShopID)
	if title == "" || shopID == "" {
		return voucherdom.Voucher{}, apperr.E(apperr.InvalidArgument, "all fields must be present: title and shopId")
	}

	var expireAt *time.Time
	if s := strings.TrimSpace(in.ExpireAt); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return voucherdom.Voucher{}, apperr.E(apperr.InvalidArgument, "field expireAt must be an ISO date string")
		}
		expireAt = &t
	}

	caller, err := u.users.GetByID(ctx, uid)
	if err != nil {
		return voucherdom.Voucher{}, apperr.Wrap(apperr.Internal, "failed to read user", err)
	}
	if caller == nil || !caller.ControlsShop(shopID) {
		return voucherdom.Voucher{}, apperr.E(apperr.PermissionDenied, "this user is not the shop's owner")
	}

	v, err := voucherdom.New(title, in.Description, in.Price, in.Currency, expireAt, shopID, u.now())
	if err != nil {
		return voucherdom.Voucher{}, apperr.Wrap(apperr.InvalidArgument, "invalid voucher", err)
	}

	created, err := u.vouchers.Create(ctx, v)
	if err != nil {
		return voucherdom.Voucher{}, apperr.Wrap(apperr.Unknown, "failed to create voucher", err)
	}

	log.Printf("[voucher_uc] OK created voucherId=%s shopId=%s by=%s", maskID(created.ID), maskID(shopID), maskID(uid))
	return created, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
