package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mrops-br/store-inventory-api/internal/app/dto"
	"github.com/mrops-br/store-inventory-api/internal/domain"
	"github.com/mrops-br/store-inventory-api/internal/infrastructure/http/response"
)

// InventoryService is the use-case surface the handler depends on
type InventoryService interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]*dto.ProductResponse, error)
	FindProductByName(ctx context.Context, name string) (*dto.ProductResponse, error)
	InventoryValue(ctx context.Context) (*dto.InventoryValueResponse, error)
	ApplyDiscount(ctx context.Context, req *dto.DiscountRequest) (*dto.DiscountResponse, error)
	Stats(ctx context.Context) (*dto.StatsResponse, error)
}

// InventoryHandler handles HTTP requests for products and the inventory
type InventoryHandler struct {
	service  InventoryService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "http"),
	}
}

// CreateProduct handles POST /products
func (h *InventoryHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string, len(validationErrors))
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			h.logger.WarnContext(r.Context(), "Validation errors occurred", slog.Any("fields", fields))
			response.ValidationError(w, fields)
			return
		}
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			response.Error(w, http.StatusBadRequest, err)
			return
		}
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusCreated, product)
}

// ListProducts handles GET /products
func (h *InventoryHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// FindProduct handles GET /products/search?name=
func (h *InventoryHandler) FindProduct(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	product, err := h.service.FindProductByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.Error(w, http.StatusNotFound, err)
		} else {
			response.Error(w, http.StatusInternalServerError, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// InventoryValue handles GET /inventory/value
func (h *InventoryHandler) InventoryValue(w http.ResponseWriter, r *http.Request) {
	value, err := h.service.InventoryValue(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, value)
}

// ApplyDiscount handles POST /inventory/discount. Fractions outside (0, 1)
// leave prices unchanged and report applied as 0.
func (h *InventoryHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req dto.DiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.service.ApplyDiscount(r.Context(), &req)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Stats handles GET /inventory/stats
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
