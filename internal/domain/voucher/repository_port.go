// internal/domain/voucher/repository_port.go
package voucher

import (
	"context"
	"time"
)

// Repository is the outbound port for the "voucher" collection.
//
// The mutating operations are conditional commits: each one re-validates the
// lifecycle preconditions against current document state inside the same
// atomic unit that applies the writes, and surfaces the lifecycle sentinels
// (ErrNotFound, ErrAlreadyOwned, ...) when the state moved since the caller's
// precondition read. This closes the read-check-then-write race on concurrent
// purchases of the same voucher.
type Repository interface {
	// GetByID returns (nil, nil) if not found (nil policy).
	GetByID(ctx context.Context, id string) (*Voucher, error)

	// Create atomically creates the voucher document (owner absent) and
	// appends its reference to the issuing shop's vouchers field.
	// Returns the voucher with its minted id.
	Create(ctx context.Context, v Voucher) (Voucher, error)

	// ClaimOwner commits the Created -> Owned transition: appends the voucher
	// reference to the buyer's vouchers and sets the voucher's owner, but only
	// if the voucher is still unowned and unredeemed at commit time.
	ClaimOwner(ctx context.Context, voucherID, buyerUID string) error

	// Redeem commits the Owned -> Redeemed transition by setting redeemedAt.
	// Fails unless the voucher is owned and its owner document still resolves.
	Redeem(ctx context.Context, voucherID string, at time.Time) error

	// Transfer moves an unredeemed voucher from sender to receiver: removes
	// the reference from the sender's vouchers, appends it to the receiver's,
	// and points the voucher's owner at the receiver. Fails unless the sender
	// is still the current owner at commit time.
	Transfer(ctx context.Context, voucherID, senderUID, receiverUID string) error
}
