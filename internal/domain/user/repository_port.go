// internal/domain/user/repository_port.go
package user

import "context"

// Repository is the outbound port for the "user" collection.
type Repository interface {
	// GetByID returns (nil, nil) if not found (nil policy).
	GetByID(ctx context.Context, id string) (*User, error)

	// UsernameExists reports whether any user document carries username.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// Create writes a new user document at docId = u.ID.
	// Fails if a document already exists at that id.
	Create(ctx context.Context, u User) error
}
