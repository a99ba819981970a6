package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ProductRequest creación/actualización de producto.
type ProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad a su representación HTTP.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}
