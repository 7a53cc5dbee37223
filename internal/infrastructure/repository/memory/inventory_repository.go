package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/store-inventory-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InventoryRepository is an in-memory implementation of domain.InventoryRepository.
// A single lock guards the store and every price mutation. Products handed
// out are snapshots taken under that lock, never the stored instances.
type InventoryRepository struct {
	mu     sync.RWMutex
	store  *domain.Store
	tracer trace.Tracer
	logger *slog.Logger
}

// NewInventoryRepository creates a repository backed by an empty store
func NewInventoryRepository(tracer trace.Tracer, logger *slog.Logger) *InventoryRepository {
	return &InventoryRepository{
		store:  domain.NewStore(),
		tracer: tracer,
		logger: logger,
	}
}

// Add appends a product to the store. Invalid products are ignored and
// reported with false.
func (r *InventoryRepository) Add(ctx context.Context, product *domain.Product) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "InventoryRepository.Add")
	defer span.End()

	r.mu.Lock()
	added := r.store.AddProduct(product)
	size := r.store.Len()
	r.mu.Unlock()

	span.SetAttributes(
		attribute.Bool("product.added", added),
		attribute.Int("inventory.size", size),
	)

	if !added {
		r.logger.WarnContext(ctx, "Ignored invalid product")
		span.SetStatus(codes.Ok, "Product ignored")
		return false, nil
	}

	r.logger.DebugContext(ctx, "Product stored in repository",
		slog.String("product_id", product.ID()),
		slog.String("product_name", product.Name()),
	)

	span.SetStatus(codes.Ok, "Product stored")
	return true, nil
}

// FindByName retrieves the first product matching name
func (r *InventoryRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "InventoryRepository.FindByName")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	found, err := r.store.FindProductByName(name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.DebugContext(ctx, "Product not found in repository",
			slog.String("product_name", name),
		)
		return nil, err
	}

	span.SetAttributes(attribute.String("product.id", found.ID()))
	span.SetStatus(codes.Ok, "Product found")
	return found.Clone(), nil
}

// FindAll retrieves all products in insertion order
func (r *InventoryRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	_, span := r.tracer.Start(ctx, "InventoryRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := snapshot(r.store.Products())
	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved")
	return products, nil
}

// Value returns the total inventory value
func (r *InventoryRepository) Value(ctx context.Context) (float64, error) {
	_, span := r.tracer.Start(ctx, "InventoryRepository.Value")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	value := r.store.InventoryValue()
	span.SetAttributes(attribute.Float64("inventory.value", value))
	span.SetStatus(codes.Ok, "Inventory valued")
	return value, nil
}

// ApplyDiscount reprices every stored product under the write lock and
// returns the inventory as it stood right after the discount
func (r *InventoryRepository) ApplyDiscount(ctx context.Context, discount float64) (int, []*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "InventoryRepository.ApplyDiscount")
	defer span.End()

	span.SetAttributes(attribute.Float64("discount.fraction", discount))

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.store.Products()
	applied := domain.ApplyDiscount(stored, discount)
	products := snapshot(stored)

	r.logger.DebugContext(ctx, "Discount applied in repository",
		slog.Float64("discount", discount),
		slog.Int("applied", applied),
	)

	span.SetAttributes(attribute.Int("discount.applied", applied))
	span.SetStatus(codes.Ok, "Discount processed")
	return applied, products, nil
}

// Reset replaces the store with an empty one
func (r *InventoryRepository) Reset(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "InventoryRepository.Reset")
	defer span.End()

	r.mu.Lock()
	dropped := r.store.Len()
	r.store = domain.NewStore()
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Inventory reset",
		slog.Int("dropped", dropped),
	)

	span.SetStatus(codes.Ok, "Inventory reset")
	return nil
}

func snapshot(products []*domain.Product) []*domain.Product {
	out := make([]*domain.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
