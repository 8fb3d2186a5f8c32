// internal/domain/user/entity.go
package user

import (
	"errors"
	"strings"
)

// User mirrors a document in the "user" collection.
// - docId = Firebase Auth UID (docId is the source of truth)
// - Vouchers holds ids of vouchers the user owns
// - Shops holds ids of shops the user controls
type User struct {
	ID       string
	Username string
	Email    string
	Vouchers []string
	Shops    []string
}

var (
	ErrInvalidID       = errors.New("user: invalid id")
	ErrInvalidUsername = errors.New("user: invalid username")
	ErrInvalidEmail    = errors.New("user: invalid email")
)

// New builds a freshly registered user with empty vouchers/shops.
func New(id, username, email string) (User, error) {
	u := User{
		ID:       strings.TrimSpace(id),
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Vouchers: []string{},
		Shops:    []string{},
	}
	if u.ID == "" {
		return User{}, ErrInvalidID
	}
	if u.Username == "" {
		return User{}, ErrInvalidUsername
	}
	if u.Email == "" {
		return User{}, ErrInvalidEmail
	}
	return u, nil
}

// ControlsShop reports whether shopID is in the user's shops.
func (u User) ControlsShop(shopID string) bool {
	sid := strings.TrimSpace(shopID)
	if sid == "" {
		return false
	}
	for _, s := range u.Shops {
		if s == sid {
			return true
		}
	}
	return false
}

// OwnsVoucher reports whether voucherID is in the user's vouchers.
func (u User) OwnsVoucher(voucherID string) bool {
	vid := strings.TrimSpace(voucherID)
	if vid == "" {
		return false
	}
	for _, v := range u.Vouchers {
		if v == vid {
			return true
		}
	}
	return false
}
