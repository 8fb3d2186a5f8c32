// internal/domain/shop/entity.go
package shop

import (
	"errors"
	"strings"
)

// Shop mirrors a document in the "shop" collection.
// Ownership is recorded on the creating user's shops field, not here.
type Shop struct {
	ID       string
	Name     string
	Tags     []string
	Vouchers []string
}

var (
	ErrInvalidName = errors.New("shop: invalid name")
	ErrInvalidTag  = errors.New("shop: invalid tag")
)

// New builds a shop with no vouchers. Tags default to empty, blank tags are
// rejected rather than silently dropped.
func New(name string, tags []string) (Shop, error) {
	s := Shop{
		Name:     strings.TrimSpace(name),
		Tags:     []string{},
		Vouchers: []string{},
	}
	if s.Name == "" {
		return Shop{}, ErrInvalidName
	}
	for _, t := range tags {
		tt := strings.TrimSpace(t)
		if tt == "" {
			return Shop{}, ErrInvalidTag
		}
		s.Tags = append(s.Tags, tt)
	}
	return s, nil
}
