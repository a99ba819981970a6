package dto

import (
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// OrderItemRequest línea de pedido en peticiones.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Count     int64  `json:"count"` // mínimo 1
}

// OrderStoreRequest creación de pedido. El pedido nace siempre en estado active
// y queda ligado de forma inmutable a la bodega indicada.
type OrderStoreRequest struct {
	Customer    string             `json:"customer"`
	WarehouseID string             `json:"warehouse_id"`
	Items       []OrderItemRequest `json:"items"`
}

// OrderUpdateRequest actualización de pedido: cliente y reemplazo en bloque de
// líneas. Ni el estado ni la bodega se tocan por esta vía.
type OrderUpdateRequest struct {
	Customer *string            `json:"customer"`
	Items    []OrderItemRequest `json:"items"` // nil = conservar líneas actuales
}

// OrderIndexRequest filtros de listado de pedidos.
type OrderIndexRequest struct {
	PageRequest
	Status      string `query:"status"`
	WarehouseID string `query:"warehouse_id"`
	Customer    string `query:"customer"`
	DateFrom    string `query:"date_from"` // YYYY-MM-DD
	DateTo      string `query:"date_to"`   // YYYY-MM-DD
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Count       int64  `json:"count"`
}

// OrderResponse representación de un pedido con sus líneas.
type OrderResponse struct {
	ID          string              `json:"id"`
	Customer    string              `json:"customer"`
	WarehouseID string              `json:"warehouse_id"`
	Status      string              `json:"status"`
	CompletedAt *time.Time          `json:"completed_at"`
	CanceledAt  *time.Time          `json:"canceled_at"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Items       []OrderItemResponse `json:"items"`
}

// ToOrderResponse mapea la entidad a su representación HTTP.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		r := OrderItemResponse{ID: it.ID, ProductID: it.ProductID, Count: it.Count}
		if it.Product != nil {
			r.ProductName = it.Product.Name
		}
		items = append(items, r)
	}
	return &OrderResponse{
		ID:          o.ID,
		Customer:    o.Customer,
		WarehouseID: o.WarehouseID,
		Status:      o.Status,
		CompletedAt: o.CompletedAt,
		CanceledAt:  o.CanceledAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       items,
	}
}
