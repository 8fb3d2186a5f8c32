// internal/adapters/out/firestore/voucher_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	voucherdom "voucherhub/internal/domain/voucher"
)

// VoucherRepositoryFS implements voucher.Repository using Firestore.
//
// Collection design:
// - collection: voucher
// - docId: minted by Firestore
// - fields: title, description?, price, currency, createdAt, expireAt?,
//   redeemedAt?, user(ref)?, shop(ref)
//
// Lifecycle transitions run inside RunTransaction so the preconditions are
// re-validated against the snapshot the commit applies to. Firestore aborts
// and retries the transaction when a concurrent writer touches the voucher,
// which is exactly the "first buyer wins" guard the protocol needs.
type VoucherRepositoryFS struct {
	Client *firestore.Client
}

func NewVoucherRepositoryFS(client *firestore.Client) *VoucherRepositoryFS {
	return &VoucherRepositoryFS{Client: client}
}

type voucherDoc struct {
	Title       string                 `firestore:"title"`
	Description *string                `firestore:"description,omitempty"`
	Price       float64                `firestore:"price"`
	Currency    string                 `firestore:"currency"`
	CreatedAt   time.Time              `firestore:"createdAt"`
	ExpireAt    *time.Time             `firestore:"expireAt,omitempty"`
	RedeemedAt  *time.Time             `firestore:"redeemedAt,omitempty"`
	User        *firestore.DocumentRef `firestore:"user,omitempty"`
	Shop        *firestore.DocumentRef `firestore:"shop"`
}

func (d voucherDoc) toDomain(id string) voucherdom.Voucher {
	v := voucherdom.Voucher{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Currency:    d.Currency,
		CreatedAt:   d.CreatedAt,
		ExpireAt:    d.ExpireAt,
		RedeemedAt:  d.RedeemedAt,
	}
	if d.User != nil {
		v.OwnerID = d.User.ID
	}
	if d.Shop != nil {
		v.ShopID = d.Shop.ID
	}
	return v
}

func (r *VoucherRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(voucherCollection)
}

func (r *VoucherRepositoryFS) userDocRef(uid string) *firestore.DocumentRef {
	return r.Client.Collection(userCollection).Doc(uid)
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *VoucherRepositoryFS) GetByID(ctx context.Context, id string) (*voucherdom.Voucher, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("voucher_repository_fs: firestore client is nil")
	}

	vid := strings.TrimSpace(id)
	if vid == "" {
		return nil, errors.New("voucher_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(vid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc voucherDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	v := doc.toDomain(vid)
	return &v, nil
}

// Create writes the voucher document and appends its reference to the shop's
// vouchers field in one atomic batch.
func (r *VoucherRepositoryFS) Create(ctx context.Context, v voucherdom.Voucher) (voucherdom.Voucher, error) {
	if r == nil || r.Client == nil {
		return voucherdom.Voucher{}, errors.New("voucher_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(v.ShopID)
	if sid == "" {
		return voucherdom.Voucher{}, errors.New("voucher_repository_fs: Create requires voucher.ShopID")
	}

	voucherRef := r.col().NewDoc()
	shopRef := r.Client.Collection(shopCollection).Doc(sid)

	doc := voucherDoc{
		Title:       v.Title,
		Description: v.Description,
		Price:       v.Price,
		Currency:    v.Currency,
		CreatedAt:   v.CreatedAt,
		ExpireAt:    v.ExpireAt,
		Shop:        shopRef,
	}

	batch := r.Client.Batch()
	batch.Set(voucherRef, doc)
	batch.Update(shopRef, []firestore.Update{
		{Path: "vouchers", Value: firestore.ArrayUnion(voucherRef)},
	})

	if _, err := batch.Commit(ctx); err != nil {
		return voucherdom.Voucher{}, err
	}

	v.ID = voucherRef.ID
	return v, nil
}

// ClaimOwner commits Created -> Owned, guarding that the voucher is still
// unowned and unredeemed at commit time.
func (r *VoucherRepositoryFS) ClaimOwner(ctx context.Context, voucherID, buyerUID string) error {
	if r == nil || r.Client == nil {
		return errors.New("voucher_repository_fs: firestore client is nil")
	}

	vid := strings.TrimSpace(voucherID)
	uid := strings.TrimSpace(buyerUID)
	if vid == "" {
		return errors.New("voucher_repository_fs: voucherID is empty")
	}
	if uid == "" {
		return errors.New("voucher_repository_fs: buyerUID is empty")
	}

	voucherRef := r.col().Doc(vid)
	buyerRef := r.userDocRef(uid)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := r.txGetVoucher(tx, voucherRef)
		if err != nil {
			return err
		}
		if doc.RedeemedAt != nil {
			return voucherdom.ErrAlreadyRedeemed
		}
		if doc.User != nil {
			return voucherdom.ErrAlreadyOwned
		}

		if err := tx.Update(buyerRef, []firestore.Update{
			{Path: "vouchers", Value: firestore.ArrayUnion(voucherRef)},
		}); err != nil {
			return err
		}
		return tx.Update(voucherRef, []firestore.Update{
			{Path: "user", Value: buyerRef},
		})
	})
}

// Redeem commits Owned -> Redeemed. The owner document must still resolve.
func (r *VoucherRepositoryFS) Redeem(ctx context.Context, voucherID string, at time.Time) error {
	if r == nil || r.Client == nil {
		return errors.New("voucher_repository_fs: firestore client is nil")
	}

	vid := strings.TrimSpace(voucherID)
	if vid == "" {
		return errors.New("voucher_repository_fs: voucherID is empty")
	}
	if at.IsZero() {
		at = time.Now()
	}
	at = at.UTC()

	voucherRef := r.col().Doc(vid)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := r.txGetVoucher(tx, voucherRef)
		if err != nil {
			return err
		}
		if doc.RedeemedAt != nil {
			return voucherdom.ErrAlreadyRedeemed
		}
		if doc.User == nil {
			return voucherdom.ErrNotOwned
		}

		ownerSnap, err := tx.Get(doc.User)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return voucherdom.ErrOwnerMissing
			}
			return err
		}
		if ownerSnap == nil || !ownerSnap.Exists() {
			return voucherdom.ErrOwnerMissing
		}

		return tx.Update(voucherRef, []firestore.Update{
			{Path: "redeemedAt", Value: at},
		})
	})
}

// Transfer moves an unredeemed voucher from sender to receiver, guarding
// that the sender is still the current owner at commit time.
func (r *VoucherRepositoryFS) Transfer(ctx context.Context, voucherID, senderUID, receiverUID string) error {
	if r == nil || r.Client == nil {
		return errors.New("voucher_repository_fs: firestore client is nil")
	}

	vid := strings.TrimSpace(voucherID)
	sender := strings.TrimSpace(senderUID)
	receiver := strings.TrimSpace(receiverUID)
	if vid == "" {
		return errors.New("voucher_repository_fs: voucherID is empty")
	}
	if sender == "" || receiver == "" {
		return errors.New("voucher_repository_fs: senderUID and receiverUID are required")
	}

	voucherRef := r.col().Doc(vid)
	senderRef := r.userDocRef(sender)
	receiverRef := r.userDocRef(receiver)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := r.txGetVoucher(tx, voucherRef)
		if err != nil {
			return err
		}
		if doc.RedeemedAt != nil {
			return voucherdom.ErrAlreadyRedeemed
		}
		if doc.User == nil || doc.User.ID != sender {
			return voucherdom.ErrSenderNotOwner
		}

		if err := tx.Update(senderRef, []firestore.Update{
			{Path: "vouchers", Value: firestore.ArrayRemove(voucherRef)},
		}); err != nil {
			return err
		}
		if err := tx.Update(receiverRef, []firestore.Update{
			{Path: "vouchers", Value: firestore.ArrayUnion(voucherRef)},
		}); err != nil {
			return err
		}
		return tx.Update(voucherRef, []firestore.Update{
			{Path: "user", Value: receiverRef},
		})
	})
}

func (r *VoucherRepositoryFS) txGetVoucher(tx *firestore.Transaction, ref *firestore.DocumentRef) (*voucherDoc, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, voucherdom.ErrNotFound
		}
		return nil, err
	}
	if snap == nil || !snap.Exists() {
		return nil, voucherdom.ErrNotFound
	}

	var doc voucherDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
