// internal/adapters/out/firestore/shop_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shopdom "voucherhub/internal/domain/shop"
)

// ShopRepositoryFS implements shop.Repository using Firestore.
//
// Collection design:
// - collection: shop
// - docId: minted by Firestore
// - fields: name, tags([]string), vouchers([]ref)
//
// Ownership lives on the user document (shops field), not here.
type ShopRepositoryFS struct {
	Client *firestore.Client
}

func NewShopRepositoryFS(client *firestore.Client) *ShopRepositoryFS {
	return &ShopRepositoryFS{Client: client}
}

type shopDoc struct {
	Name     string                   `firestore:"name"`
	Tags     []string                 `firestore:"tags"`
	Vouchers []*firestore.DocumentRef `firestore:"vouchers"`
}

func (r *ShopRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(shopCollection)
}

// GetByID returns (nil, nil) if not found (nil policy).
func (r *ShopRepositoryFS) GetByID(ctx context.Context, id string) (*shopdom.Shop, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("shop_repository_fs: firestore client is nil")
	}

	sid := strings.TrimSpace(id)
	if sid == "" {
		return nil, errors.New("shop_repository_fs: id is empty")
	}

	snap, err := r.col().Doc(sid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc shopDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}

	s := shopdom.Shop{
		ID:       sid,
		Name:     doc.Name,
		Tags:     doc.Tags,
		Vouchers: refIDs(doc.Vouchers),
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return &s, nil
}

// CreateWithOwner writes the shop document and appends its reference to the
// owner's shops field in one atomic batch.
func (r *ShopRepositoryFS) CreateWithOwner(ctx context.Context, s shopdom.Shop, ownerUID string) (shopdom.Shop, error) {
	if r == nil || r.Client == nil {
		return shopdom.Shop{}, errors.New("shop_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(ownerUID)
	if uid == "" {
		return shopdom.Shop{}, errors.New("shop_repository_fs: ownerUID is empty")
	}

	shopRef := r.col().NewDoc()
	userRef := r.Client.Collection(userCollection).Doc(uid)

	doc := shopDoc{
		Name:     s.Name,
		Tags:     s.Tags,
		Vouchers: []*firestore.DocumentRef{},
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	batch := r.Client.Batch()
	batch.Set(shopRef, doc)
	batch.Update(userRef, []firestore.Update{
		{Path: "shops", Value: firestore.ArrayUnion(shopRef)},
	})

	if _, err := batch.Commit(ctx); err != nil {
		return shopdom.Shop{}, err
	}

	s.ID = shopRef.ID
	return s, nil
}
