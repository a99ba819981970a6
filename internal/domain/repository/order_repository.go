package repository

import (
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// OrderListFilter criterios de listado de pedidos. Los campos vacíos/nil no filtran.
type OrderListFilter struct {
	Status      string
	WarehouseID string
	Customer    string // coincidencia parcial, case-insensitive
	DateFrom    *time.Time
	DateTo      *time.Time
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Las variantes ForUpdate bloquean la fila del pedido para serializar
// transiciones concurrentes sobre el mismo pedido.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetByIDForUpdate(id string) (*entity.Order, error)
	// UpdateHeader persiste customer y updated_at. La bodega es inmutable.
	UpdateHeader(order *entity.Order) error
	// UpdateStatus persiste status, completed_at, canceled_at y updated_at.
	UpdateStatus(order *entity.Order) error
	// ReplaceItems borra y recrea todas las líneas del pedido (reemplazo en bloque).
	ReplaceItems(orderID string, items []entity.OrderItem) error
	// Delete elimina el pedido y sus líneas (cascada). No revierte stock.
	Delete(id string) error
	List(filter OrderListFilter, limit, offset int) ([]*entity.Order, error)
	Count(filter OrderListFilter) (int, error)
}
