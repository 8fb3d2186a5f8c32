// internal/application/usecase/shop_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"

	"voucherhub/internal/domain/apperr"
	shopdom "voucherhub/internal/domain/shop"
)

// ShopUsecase creates shops on behalf of authenticated users.
type ShopUsecase struct {
	shops shopdom.Repository
}

func NewShopUsecase(shops shopdom.Repository) *ShopUsecase {
	return &ShopUsecase{shops: shops}
}

type CreateShopInput struct {
	Name string
	Tags []string
}

// Create atomically writes the shop document and records the caller as its
// controller on the caller's user document.
func (u *ShopUsecase) Create(ctx context.Context, callerUID string, in CreateShopInput) (shopdom.Shop, error) {
	if u == nil || u.shops == nil {
		return shopdom.Shop{}, apperr.E(apperr.Internal, "shop usecase is not configured")
	}

	uid := strings.TrimSpace(callerUID)
	if uid == "" {
		return shopdom.Shop{}, apperr.E(apperr.Unauthenticated, "the operation must be called while authenticated")
	}
	if strings.TrimSpace(in.Name) == "" {
		return shopdom.Shop{}, apperr.E(apperr.InvalidArgument, "all fields must be present: name")
	}

	s, err := shopdom.New(in.Name, in.Tags)
	if err != nil {
		return shopdom.Shop{}, apperr.Wrap(apperr.InvalidArgument, "invalid shop", err)
	}

	created, err := u.shops.CreateWithOwner(ctx, s, uid)
	if err != nil {
		return shopdom.Shop{}, apperr.Wrap(apperr.Unknown, "failed to create shop", err)
	}

	log.Printf("[shop_uc] OK created shopId=%s owner=%s", maskID(created.ID), maskID(uid))
	return created, nil
}
