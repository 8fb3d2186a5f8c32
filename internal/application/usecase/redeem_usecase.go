// internal/application/usecase/redeem_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"voucherhub/internal/domain/apperr"
	voucherdom "voucherhub/internal/domain/voucher"
)

// RedeemUsecase marks owned vouchers redeemed. Redemption is terminal: the
// conditional commit rejects vouchers that are unowned, already redeemed, or
// whose owner document no longer resolves.
type RedeemUsecase struct {
	vouchers voucherdom.Repository
	now      func() time.Time
}

func NewRedeemUsecase(vouchers voucherdom.Repository) *RedeemUsecase {
	return &RedeemUsecase{
		vouchers: vouchers,
		now:      time.Now,
	}
}

func (u *RedeemUsecase) Redeem(ctx context.Context, callerUID, voucherID string) error {
	if u == nil || u.vouchers == nil {
		return apperr.E(apperr.Internal, "redeem usecase is not configured")
	}

	uid := strings.TrimSpace(callerUID)
	if uid == "" {
		return apperr.E(apperr.Unauthenticated, "the operation must be called while authenticated")
	}
	vid := strings.TrimSpace(voucherID)
	if vid == "" {
		return apperr.E(apperr.InvalidArgument, "all fields must be present: voucherId")
	}

	if err := u.vouchers.Redeem(ctx, vid, u.now().UTC()); err != nil {
		switch {
		case errors.Is(err, voucherdom.ErrNotFound):
			return apperr.Wrap(apperr.FailedPrecondition, "voucher does not exist", err)
		case errors.Is(err, voucherdom.ErrNotOwned):
			return apperr.Wrap(apperr.FailedPrecondition, "voucher has not been bought by a customer yet", err)
		case errors.Is(err, voucherdom.ErrOwnerMissing):
			return apperr.Wrap(apperr.FailedPrecondition, "voucher owner no longer exists", err)
		case errors.Is(err, voucherdom.ErrAlreadyRedeemed):
			return apperr.Wrap(apperr.FailedPrecondition, "voucher has already been redeemed", err)
		default:
			return apperr.Wrap(apperr.Unknown, "an unknown error occurred", err)
		}
	}

	log.Printf("[redeem_uc] OK redeemed voucherId=%s by=%s", maskID(vid), maskID(uid))
	return nil
}
