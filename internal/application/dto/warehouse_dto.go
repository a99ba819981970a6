package dto

import (
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// WarehouseRequest creación/actualización de bodega.
type WarehouseRequest struct {
	Name string `json:"name"`
}

// WarehouseResponse representación de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockResponse existencia de un producto en una bodega.
type StockResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
}

// ToWarehouseResponse mapea la entidad a su representación HTTP.
func ToWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID, Name: w.Name, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
}

// ToStockResponse mapea la entidad a su representación HTTP.
func ToStockResponse(s *entity.Stock) StockResponse {
	return StockResponse{ID: s.ID, ProductID: s.ProductID, WarehouseID: s.WarehouseID, Quantity: s.Quantity}
}
