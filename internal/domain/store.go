package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Store aggregates products in insertion order. Duplicate names are allowed
// and products are never removed.
type Store struct {
	inventory []*Product
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// AddProduct appends p. Nil or unconstructed products are ignored and
// reported with false.
func (s *Store) AddProduct(p *Product) bool {
	if !p.valid() {
		return false
	}
	s.inventory = append(s.inventory, p)
	return true
}

// InventoryValue sums TotalValue over the inventory in insertion order
func (s *Store) InventoryValue() float64 {
	var sum float64
	for _, p := range s.inventory {
		sum += p.TotalValue()
	}
	return sum
}

// FindProductByName returns the first product whose trimmed, case-folded
// name equals the trimmed, case-folded input.
func (s *Store) FindProductByName(name string) (*Product, error) {
	fold := cases.Fold()
	target := fold.String(strings.TrimSpace(name))
	for _, p := range s.inventory {
		if fold.String(p.name) == target {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Products returns a snapshot of the inventory. The products themselves are shared.
func (s *Store) Products() []*Product {
	out := make([]*Product, len(s.inventory))
	copy(out, s.inventory)
	return out
}

func (s *Store) Len() int {
	return len(s.inventory)
}
