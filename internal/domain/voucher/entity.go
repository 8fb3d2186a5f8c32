// internal/domain/voucher/entity.go
package voucher

import (
	"errors"
	"math"
	"strings"
	"time"
)

// State is the voucher lifecycle, strictly ordered:
//
//	Created --Buy--> Owned --Transfer--> Owned (repeatable) --Redeem--> Redeemed (terminal)
//
// The state is derived from OwnerID / RedeemedAt so documents written by
// older clients still classify; new writes always keep the two in sync.
type State int

const (
	StateCreated State = iota // no owner, not redeemed
	StateOwned                // owned, not redeemed
	StateRedeemed             // terminal
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOwned:
		return "owned"
	case StateRedeemed:
		return "redeemed"
	default:
		return "invalid"
	}
}

// Voucher mirrors a document in the "voucher" collection.
// - ShopID is immutable after creation
// - OwnerID is empty until exactly one successful purchase
// - RedeemedAt non-nil marks the terminal state
type Voucher struct {
	ID          string
	Title       string
	Description *string
	Price       float64 // major units, nonnegative
	Currency    string  // lowercase ISO code
	CreatedAt   time.Time
	ExpireAt    *time.Time
	RedeemedAt  *time.Time
	OwnerID     string
	ShopID      string
}

const DefaultCurrency = "usd"

var (
	ErrInvalidTitle     = errors.New("voucher: invalid title")
	ErrInvalidPrice     = errors.New("voucher: invalid price")
	ErrInvalidShopID    = errors.New("voucher: invalid shopId")
	ErrInvalidCreatedAt = errors.New("voucher: invalid createdAt")
)

// Lifecycle sentinels surfaced by Repository conditional commits.
var (
	ErrNotFound        = errors.New("voucher: does not exist")
	ErrAlreadyOwned    = errors.New("voucher: already bought")
	ErrAlreadyRedeemed = errors.New("voucher: already redeemed")
	ErrNotOwned        = errors.New("voucher: not bought by any user yet")
	ErrOwnerMissing    = errors.New("voucher: owner no longer exists")
	ErrSenderNotOwner  = errors.New("voucher: sender is not the current owner")
)

// New builds an unsold voucher. ID is minted by the repository on create.
func New(title string, description *string, price float64, currency string, expireAt *time.Time, shopID string, createdAt time.Time) (Voucher, error) {
	v := Voucher{
		Title:       strings.TrimSpace(title),
		Description: normalizePtr(description),
		Price:       price,
		Currency:    strings.ToLower(strings.TrimSpace(currency)),
		CreatedAt:   createdAt.UTC(),
		ShopID:      strings.TrimSpace(shopID),
	}
	if expireAt != nil && !expireAt.IsZero() {
		e := expireAt.UTC()
		v.ExpireAt = &e
	}
	if v.Currency == "" {
		v.Currency = DefaultCurrency
	}
	if v.Title == "" {
		return Voucher{}, ErrInvalidTitle
	}
	if v.Price < 0 || math.IsNaN(v.Price) || math.IsInf(v.Price, 0) {
		return Voucher{}, ErrInvalidPrice
	}
	if v.ShopID == "" {
		return Voucher{}, ErrInvalidShopID
	}
	if v.CreatedAt.IsZero() {
		return Voucher{}, ErrInvalidCreatedAt
	}
	return v, nil
}

// State derives the lifecycle state. RedeemedAt wins over ownership so a
// redeemed voucher stays terminal even if the owner field is later mangled.
func (v Voucher) State() State {
	if v.RedeemedAt != nil && !v.RedeemedAt.IsZero() {
		return StateRedeemed
	}
	if strings.TrimSpace(v.OwnerID) != "" {
		return StateOwned
	}
	return StateCreated
}

// zeroDecimalCurrencies are ISO 4217 currencies whose minor unit equals the
// major unit (amounts are charged as-is, not in hundredths).
var zeroDecimalCurrencies = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {},
	"krw": {}, "mga": {}, "pyg": {}, "rwf": {}, "ugx": {}, "vnd": {},
	"vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

// AmountMinorUnits converts price*quantity to the currency's minor unit,
// rounded half away from zero.
func AmountMinorUnits(price float64, currency string, quantity int64) int64 {
	total := price * float64(quantity)
	cur := strings.ToLower(strings.TrimSpace(currency))
	if _, zero := zeroDecimalCurrencies[cur]; zero {
		return int64(math.Round(total))
	}
	return int64(math.Round(total * 100))
}

func normalizePtr(p *string) *string {
	if p == nil {
		return nil
	}
	t := strings.TrimSpace(*p)
	if t == "" {
		return nil
	}
	return &t
}
