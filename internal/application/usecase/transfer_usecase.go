// internal/application/usecase/transfer_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"voucherhub/internal/domain/apperr"
	voucherdom "voucherhub/internal/domain/voucher"
)

// TransferUsecase moves an unredeemed voucher between users. The sender must
// be the current owner; the commit re-checks that at commit time so two
// concurrent transfers of the same voucher cannot both apply.
type TransferUsecase struct {
	vouchers voucherdom.Repository
}

func NewTransferUsecase(vouchers voucherdom.Repository) *TransferUsecase {
	return &TransferUsecase{vouchers: vouchers}
}

func (u *TransferUsecase) Transfer(ctx context.Context, senderUID, receiverUID, voucherID string) error {
	if u == nil || u.vouchers == nil {
		return apperr.E(apperr.Internal, "transfer usecase is not configured")
	}

	sender := strings.TrimSpace(senderUID)
	if sender == "" {
		return apperr.E(apperr.Unauthenticated, "the operation must be called while authenticated")
	}
	receiver := strings.TrimSpace(receiverUID)
	vid := strings.TrimSpace(voucherID)
	if receiver == "" || vid == "" {
		return apperr.E(apperr.InvalidArgument, "all fields must be present: userId and voucherId")
	}
	if receiver == sender {
		return apperr.E(apperr.InvalidArgument, "cannot transfer a voucher to yourself")
	}

	if err := u.vouchers.Transfer(ctx, vid, sender, receiver); err != nil {
		switch {
		case errors.Is(err, voucherdom.ErrNotFound):
			return apperr.Wrap(apperr.FailedPrecondition, "voucher does not exist", err)
		case errors.Is(err, voucherdom.ErrAlreadyRedeemed):
			return apperr.Wrap(apperr.FailedPrecondition, "voucher has already been redeemed", err)
		case errors.Is(err, voucherdom.ErrSenderNotOwner):
			return apperr.Wrap(apperr.FailedPrecondition, "voucher is not owned by the sender", err)
		default:
			return apperr.Wrap(apperr.Unknown, "an unknown error occurred", err)
		}
	}

	log.Printf("[transfer_uc] OK transferred voucherId=%s from=%s to=%s", maskID(vid), maskID(sender), maskID(receiver))
	return nil
}
