package dto

import (
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// MovementIndexRequest filtros de listado de movimientos de stock.
type MovementIndexRequest struct {
	PageRequest
	WarehouseID   string `query:"warehouse_id"`
	ProductID     string `query:"product_id"`
	OperationType string `query:"operation_type"`
	DateFrom      string `query:"date_from"` // YYYY-MM-DD
	DateTo        string `query:"date_to"`   // YYYY-MM-DD
}

// AdjustStockRequest ajuste manual de stock (delta con signo, distinto de cero).
type AdjustStockRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Delta       int64  `json:"delta"`
	Reason      string `json:"reason"`
}

// MovementResponse representación de un movimiento de stock.
type MovementResponse struct {
	ID            string    `json:"id"`
	StockID       string    `json:"stock_id"`
	Amount        int64     `json:"amount"`
	OperationType string    `json:"operation_type"`
	SourceType    string    `json:"source_type"`
	SourceID      string    `json:"source_id"`
	Reason        string    `json:"reason,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToMovementResponse mapea la entidad a su representación HTTP.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		StockID:       m.StockID,
		Amount:        m.Amount,
		OperationType: m.OperationType,
		SourceType:    m.SourceType,
		SourceID:      m.SourceID,
		Reason:        m.Reason,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}
