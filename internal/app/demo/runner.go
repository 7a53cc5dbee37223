// Package demo scripts the store walkthrough: seed a small inventory, apply
// a discount, then recalculate the total. Output is plain text lines.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mrops-br/store-inventory-api/internal/app/dto"
	"github.com/mrops-br/store-inventory-api/internal/domain"
)

// DemoDiscount is the fraction taken off every price by Discount
const DemoDiscount = 0.15

// NotInitializedMessage is returned by Discount and Recalculate before Run
const NotInitializedMessage = "Run demo first!"

// Inventory is the part of the inventory service the demo drives
type Inventory interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]*dto.ProductResponse, error)
	FindProductByName(ctx context.Context, name string) (*dto.ProductResponse, error)
	InventoryValue(ctx context.Context) (*dto.InventoryValueResponse, error)
	ApplyDiscount(ctx context.Context, req *dto.DiscountRequest) (*dto.DiscountResponse, error)
	Reset(ctx context.Context) error
}

// Runner holds the demo's initialization state
type Runner struct {
	inventory Inventory
	logger    *slog.Logger

	mu          sync.Mutex
	initialized bool
}

func NewRunner(inventory Inventory, logger *slog.Logger) *Runner {
	return &Runner{
		inventory: inventory,
		logger:    logger,
	}
}

func seedProducts() []dto.CreateProductRequest {
	amount := func(v float64) *float64 { return &v }
	return []dto.CreateProductRequest{
		{Name: "Apple", Price: amount(2.5), Quantity: amount(50)},
		{Name: "Banana", Price: amount(1.2), Quantity: amount(40)},
		{Name: "Bread", Price: amount(3.5), Quantity: amount(20), Kind: "perishable", ExpirationDate: "2025-02-15"},
		{Name: "Milk", Price: amount(1.5), Quantity: amount(10), Kind: "perishable", ExpirationDate: "2025-01-31"},
		{Name: "Cereal", Price: amount(4.8), Quantity: amount(15)},
	}
}

// Run resets the inventory, seeds it and reports the initial state
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.inventory.Reset(ctx); err != nil {
		return nil, fmt.Errorf("reset inventory: %w", err)
	}
	for _, req := range seedProducts() {
		if _, err := r.inventory.CreateProduct(ctx, &req); err != nil {
			return nil, fmt.Errorf("seed %s: %w", req.Name, err)
		}
	}
	r.initialized = true

	products, err := r.inventory.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	value, err := r.inventory.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}

	lines := []string{"Initial Inventory:"}
	lines = append(lines, descriptions(products)...)
	lines = append(lines, "Total inventory value: "+value.Formatted)

	lines = append(lines, "Find product 'Milk':")
	milk, err := r.inventory.FindProductByName(ctx, "Milk")
	switch {
	case err == nil:
		lines = append(lines, milk.Description)
	case errors.Is(err, domain.ErrProductNotFound):
		lines = append(lines, "not found")
	default:
		return nil, err
	}

	r.logger.InfoContext(ctx, "Demo inventory seeded",
		slog.Int("count", len(products)),
		slog.String("value", value.Formatted),
	)
	return lines, nil
}

// Discount applies DemoDiscount and lists the new prices
func (r *Runner) Discount(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return []string{NotInitializedMessage}, nil
	}

	resp, err := r.inventory.ApplyDiscount(ctx, &dto.DiscountRequest{Discount: DemoDiscount})
	if err != nil {
		return nil, err
	}

	lines := []string{fmt.Sprintf("Applied %.0f%% discount to all products.", DemoDiscount*100)}
	return append(lines, descriptions(resp.Products)...), nil
}

// Recalculate reports the current inventory value
func (r *Runner) Recalculate(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return []string{NotInitializedMessage}, nil
	}

	value, err := r.inventory.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	return []string{"Recalculated inventory value: " + value.Formatted}, nil
}

func descriptions(products []*dto.ProductResponse) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Description
	}
	return out
}
