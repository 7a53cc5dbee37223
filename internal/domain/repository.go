package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// InventoryRepository defines the contract for the store backing the service.
// Returned products are snapshots: later discounts do not show through them.
type InventoryRepository interface {
	Add(ctx context.Context, product *Product) (bool, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	Value(ctx context.Context) (float64, error)
	ApplyDiscount(ctx context.Context, discount float64) (int, []*Product, error)
	Reset(ctx context.Context) error
}
