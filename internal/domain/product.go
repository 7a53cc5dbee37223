package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidProductName     = fmt.Errorf("%w: product name must be a non-empty string", ErrInvalidArgument)
	ErrInvalidProductPrice    = fmt.Errorf("%w: product price must be a non-negative number", ErrInvalidArgument)
	ErrInvalidProductQuantity = fmt.Errorf("%w: product quantity must be a non-negative number", ErrInvalidArgument)
	ErrInvalidExpirationDate  = fmt.Errorf("%w: expiration date must be a non-empty string", ErrInvalidArgument)
)

// Kind tags the product variant
type Kind int

const (
	KindStandard Kind = iota
	KindPerishable
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindPerishable:
		return "perishable"
	default:
		return "unknown"
	}
}

// ParseKind maps a kind name to a Kind. The empty string means standard.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return KindStandard, true
	case "perishable":
		return KindPerishable, true
	default:
		return KindStandard, false
	}
}

// Product represents a stock item. Perishable products carry an expiration
// date and are otherwise handled exactly like standard ones.
type Product struct {
	id             string
	name           string
	price          float64
	quantity       float64
	kind           Kind
	expirationDate string
}

func (p *Product) ID() string             { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() float64         { return p.price }
func (p *Product) Quantity() float64      { return p.quantity }
func (p *Product) Kind() Kind             { return p.kind }
func (p *Product) ExpirationDate() string { return p.expirationDate }

// TotalValue returns price times quantity, unrounded
func (p *Product) TotalValue() float64 {
	return p.price * p.quantity
}

// Describe renders the product for display
func (p *Product) Describe() string {
	desc := fmt.Sprintf("Product: %s, Price: %s, Quantity: %s",
		p.name, FormatMoney(p.price), formatQuantity(p.quantity))
	if p.kind == KindPerishable {
		desc += ", Expiration Date: " + p.expirationDate
	}
	return desc
}

func (p *Product) String() string {
	return p.Describe()
}

// Clone returns a copy of p that shares no mutable state with it
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// valid reports whether p was built by a Factory and still holds its invariants.
// Store and ApplyDiscount skip anything that fails this check.
func (p *Product) valid() bool {
	if p == nil || p.name == "" || !validAmount(p.price) || !validAmount(p.quantity) {
		return false
	}
	return p.kind == KindStandard || (p.kind == KindPerishable && p.expirationDate != "")
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// formatQuantity renders q in its shortest decimal form. Magnitudes of 1e21
// and above, or below 1e-6, switch to exponent notation such as 1e+21.
func formatQuantity(q float64) string {
	if !validAmount(q) {
		return fmt.Sprint(q)
	}
	if q != 0 && (q >= 1e21 || q < 1e-6) {
		mantissa, exp, _ := strings.Cut(strconv.FormatFloat(q, 'e', -1, 64), "e")
		n, _ := strconv.Atoi(exp)
		return fmt.Sprintf("%se%+d", mantissa, n)
	}
	return decimal.NewFromFloat(q).String()
}

// Factory constructs products and counts every successful construction.
// It is not safe for concurrent use.
type Factory struct {
	created int64
}

// NewFactory creates a factory with a zero construction count
func NewFactory() *Factory {
	return &Factory{}
}

// Created returns how many products this factory has constructed
func (f *Factory) Created() int64 {
	return f.created
}

// NewProduct creates a standard product with validation
func (f *Factory) NewProduct(name string, price, quantity float64) (*Product, error) {
	trimmed, err := validateProduct(name, price, quantity)
	if err != nil {
		return nil, err
	}
	return f.build(trimmed, price, quantity, KindStandard, ""), nil
}

// NewPerishableProduct creates a perishable product with validation. Product
// fields are checked before the expiration date.
func (f *Factory) NewPerishableProduct(name string, price, quantity float64, expirationDate string) (*Product, error) {
	trimmed, err := validateProduct(name, price, quantity)
	if err != nil {
		return nil, err
	}
	expires := strings.TrimSpace(expirationDate)
	if expires == "" {
		return nil, ErrInvalidExpirationDate
	}
	return f.build(trimmed, price, quantity, KindPerishable, expires), nil
}

func (f *Factory) build(name string, price, quantity float64, kind Kind, expires string) *Product {
	f.created++
	return &Product{
		id:             uuid.New().String(),
		name:           name,
		price:          price,
		quantity:       quantity,
		kind:           kind,
		expirationDate: expires,
	}
}

func validateProduct(name string, price, quantity float64) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrInvalidProductName
	}
	if !validAmount(price) {
		return "", ErrInvalidProductPrice
	}
	if !validAmount(quantity) {
		return "", ErrInvalidProductQuantity
	}
	return trimmed, nil
}
