package dto

import (
	"github.com/mrops-br/store-inventory-api/internal/domain"
)

// CreateProductRequest represents the request to create a product.
// Range checks are left to the domain constructors.
type CreateProductRequest struct {
	Name           string   `json:"name" validate:"required"`
	Price          *float64 `json:"price" validate:"required"`
	Quantity       *float64 `json:"quantity" validate:"required"`
	Kind           string   `json:"kind" validate:"omitempty,oneof=standard perishable"`
	ExpirationDate string   `json:"expiration_date" validate:"required_if=Kind perishable"`
}

// DiscountRequest represents a bulk discount, as a fraction in (0, 1)
type DiscountRequest struct {
	Discount float64 `json:"discount"`
}

// ProductResponse represents the product response
type ProductResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Kind           string  `json:"kind"`
	Price          float64 `json:"price"`
	Quantity       float64 `json:"quantity"`
	TotalValue     float64 `json:"total_value"`
	ExpirationDate string  `json:"expiration_date,omitempty"`
	Description    string  `json:"description"`
}

// InventoryValueResponse carries the raw and display form of the inventory value
type InventoryValueResponse struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// DiscountResponse reports the outcome of a bulk discount
type DiscountResponse struct {
	Discount float64            `json:"discount"`
	Applied  int                `json:"applied"`
	Products []*ProductResponse `json:"products"`
}

// StatsResponse exposes diagnostic counters
type StatsResponse struct {
	Constructed int64 `json:"constructed"`
	Stored      int   `json:"stored"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:             p.ID(),
		Name:           p.Name(),
		Kind:           p.Kind().String(),
		Price:          p.Price(),
		Quantity:       p.Quantity(),
		TotalValue:     p.TotalValue(),
		ExpirationDate: p.ExpirationDate(),
		Description:    p.Describe(),
	}
}

// ToProductResponseList converts a list of domain Products to ProductResponse list
func ToProductResponseList(products []*domain.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}

// ToInventoryValueResponse pairs a value with its money formatting
func ToInventoryValueResponse(value float64) *InventoryValueResponse {
	return &InventoryValueResponse{
		Value:     value,
		Formatted: domain.FormatMoney(value),
	}
}
