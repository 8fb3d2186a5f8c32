// internal/domain/shop/repository_port.go
package shop

import "context"

// Repository is the outbound port for the "shop" collection.
type Repository interface {
	// GetByID returns (nil, nil) if not found (nil policy).
	GetByID(ctx context.Context, id string) (*Shop, error)

	// CreateWithOwner atomically creates the shop document and appends its
	// reference to the owning user's shops field (set-union, no duplicates).
	// Returns the shop with its minted id.
	CreateWithOwner(ctx context.Context, s Shop, ownerUID string) (Shop, error)
}
