package repository

import (
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// MovementFilter criterios de listado de movimientos. Los campos vacíos/nil no filtran.
type MovementFilter struct {
	WarehouseID   string
	ProductID     string
	OperationType string
	From          *time.Time
	To            *time.Time
}

// StockMovementRepository define el puerto de persistencia del log de movimientos.
// Solo inserción y lectura: los movimientos son inmutables y nunca se borran.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// ListByStock historial de una fila de stock en orden de reconstrucción
	// (created_at, id ascendente).
	ListByStock(stockID string, limit, offset int) ([]*entity.StockMovement, error)
	List(filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
}
