package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/mrops-br/store-inventory-api/internal/app/dto"
	"github.com/mrops-br/store-inventory-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InventoryService handles inventory use cases
type InventoryService struct {
	repo   domain.InventoryRepository
	tracer trace.Tracer
	logger *slog.Logger

	// factoryMu serialises construction; the factory counter is not concurrency safe.
	factoryMu sync.Mutex
	factory   *domain.Factory

	productCreatedCounter metric.Int64Counter
	inventoryOperations   metric.Int64Counter
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	repo domain.InventoryRepository,
	factory *domain.Factory,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *InventoryService {
	s := &InventoryService{
		repo:    repo,
		factory: factory,
		tracer:  tracer,
		logger:  logger,
	}

	s.productCreatedCounter, _ = meter.Int64Counter(
		"inventory.products.created",
		metric.WithDescription("Total number of products created through the service"),
	)

	s.inventoryOperations, _ = meter.Int64Counter(
		"inventory.operations",
		metric.WithDescription("Total number of inventory operations"),
	)

	_, _ = meter.Int64ObservableCounter(
		"inventory.products.constructed",
		metric.WithDescription("Products constructed since process start, including ones later dropped by a reset"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(s.constructed())
			return nil
		}),
	)

	return s
}

// CreateProduct constructs a product of the requested kind and stores it
func (s *InventoryService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.CreateProduct")
	defer span.End()

	price, quantity := valueOrNaN(req.Price), valueOrNaN(req.Quantity)
	span.SetAttributes(
		attribute.String("product.name", req.Name),
		attribute.String("product.kind", req.Kind),
		attribute.Float64("product.price", price),
		attribute.Float64("product.quantity", quantity),
	)

	s.logger.InfoContext(ctx, "Creating product",
		slog.String("name", req.Name),
		slog.String("kind", req.Kind),
		slog.Float64("price", price),
		slog.Float64("quantity", quantity),
	)

	product, err := s.construct(req.Name, price, quantity, req.Kind, req.ExpirationDate)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		s.logger.WarnContext(ctx, "Failed to create product",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "create", "invalid")
		return nil, err
	}

	span.SetAttributes(attribute.String("product.id", product.ID()))

	// Once stored, the product's price belongs to the repository lock.
	created := dto.ToProductResponse(product)

	if _, err := s.repo.Add(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store product")
		s.logger.ErrorContext(ctx, "Failed to store product",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "create", "failure")
		return nil, fmt.Errorf("store product: %w", err)
	}

	s.productCreatedCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("kind", product.Kind().String())),
	)
	s.record(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", product.ID()),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return created, nil
}

// ListProducts retrieves all products in insertion order
func (s *InventoryService) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ListProducts")
	defer span.End()

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		s.logger.ErrorContext(ctx, "Failed to list products",
			slog.String("error", err.Error()),
		)
		s.record(ctx, "list", "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.record(ctx, "list", "success")

	s.logger.DebugContext(ctx, "Products listed",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToProductResponseList(products), nil
}

// FindProductByName looks a product up by case-insensitive, trimmed name
func (s *InventoryService) FindProductByName(ctx context.Context, name string) (*dto.ProductResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.FindProductByName")
	defer span.End()

	span.SetAttributes(attribute.String("product.name", name))

	product, err := s.repo.FindByName(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("name", name),
		)
		s.record(ctx, "find", "not_found")
		return nil, err
	}

	s.record(ctx, "find", "success")
	span.SetStatus(codes.Ok, "Product found")
	return dto.ToProductResponse(product), nil
}

// InventoryValue returns the sum of every product's total value
func (s *InventoryService) InventoryValue(ctx context.Context) (*dto.InventoryValueResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.InventoryValue")
	defer span.End()

	value, err := s.repo.Value(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to value inventory")
		s.record(ctx, "value", "failure")
		return nil, err
	}

	s.record(ctx, "value", "success")
	span.SetAttributes(attribute.Float64("inventory.value", value))
	span.SetStatus(codes.Ok, "Inventory valued")
	return dto.ToInventoryValueResponse(value), nil
}

// ApplyDiscount reprices the whole inventory. A fraction outside (0, 1) is
// not an error: nothing changes and Applied is zero.
func (s *InventoryService) ApplyDiscount(ctx context.Context, req *dto.DiscountRequest) (*dto.DiscountResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.ApplyDiscount")
	defer span.End()

	span.SetAttributes(attribute.Float64("discount.fraction", req.Discount))

	if !domain.ValidDiscount(req.Discount) {
		s.logger.WarnContext(ctx, "Discount outside (0, 1) ignored",
			slog.Float64("discount", req.Discount),
		)
	}

	applied, products, err := s.repo.ApplyDiscount(ctx, req.Discount)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to apply discount")
		s.record(ctx, "discount", "failure")
		return nil, err
	}

	result := "success"
	if applied == 0 {
		result = "noop"
	}
	s.record(ctx, "discount", result)

	s.logger.InfoContext(ctx, "Discount processed",
		slog.Float64("discount", req.Discount),
		slog.Int("applied", applied),
	)

	span.SetAttributes(attribute.Int("discount.applied", applied))
	span.SetStatus(codes.Ok, "Discount processed")
	return &dto.DiscountResponse{
		Discount: req.Discount,
		Applied:  applied,
		Products: dto.ToProductResponseList(products),
	}, nil
}

// Stats reports the construction counter and the current inventory size
func (s *InventoryService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Stats")
	defer span.End()

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		return nil, err
	}

	span.SetStatus(codes.Ok, "Stats collected")
	return &dto.StatsResponse{
		Constructed: s.constructed(),
		Stored:      len(products),
	}, nil
}

// Reset empties the inventory. The construction counter is left untouched.
func (s *InventoryService) Reset(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Reset")
	defer span.End()

	if err := s.repo.Reset(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to reset inventory")
		s.record(ctx, "reset", "failure")
		return err
	}

	s.record(ctx, "reset", "success")
	span.SetStatus(codes.Ok, "Inventory reset")
	return nil
}

func (s *InventoryService) construct(name string, price, quantity float64, kind, expirationDate string) (*domain.Product, error) {
	k, ok := domain.ParseKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown product kind %q", domain.ErrInvalidArgument, kind)
	}

	s.factoryMu.Lock()
	defer s.factoryMu.Unlock()

	if k == domain.KindPerishable {
		return s.factory.NewPerishableProduct(name, price, quantity, expirationDate)
	}
	return s.factory.NewProduct(name, price, quantity)
}

func (s *InventoryService) constructed() int64 {
	s.factoryMu.Lock()
	defer s.factoryMu.Unlock()
	return s.factory.Created()
}

func (s *InventoryService) record(ctx context.Context, operation, result string) {
	s.inventoryOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
