package entity

import "time"

// Estados del ciclo de vida de un pedido.
const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// ValidOrderStatus indica si s es un estado de pedido conocido.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusActive || s == OrderStatusCompleted || s == OrderStatusCanceled
}

// Order representa un pedido ligado a una única bodega. La bodega es inmutable
// después de la creación; el estado solo cambia a través del ciclo de vida
// (complete / cancel / restore), nunca por actualización directa.
type Order struct {
	ID          string
	Customer    string
	WarehouseID string
	Status      string // active, completed, canceled
	CompletedAt *time.Time
	CanceledAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

// OrderItem línea de pedido: producto y cantidad (mínimo 1).
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Count     int64
	Product   *Product // cargado opcionalmente para respuestas
}

// CanComplete indica si el pedido admite la transición complete (solo activos).
func (o *Order) CanComplete() bool {
	return o.Status == OrderStatusActive
}

// CanCancel indica si el pedido admite la transición cancel (activos o completados).
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusActive || o.Status == OrderStatusCompleted
}

// CanRestore indica si el pedido admite la transición restore: solo cancelados
// que nunca quedaron con marca de completado.
func (o *Order) CanRestore() bool {
	return o.Status == OrderStatusCanceled && o.CompletedAt == nil
}

// MarkCompleted aplica el cambio de estado a completed.
func (o *Order) MarkCompleted(now time.Time) {
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.CanceledAt = nil
	o.UpdatedAt = now
}

// MarkCanceled aplica el cambio de estado a canceled y limpia completed_at.
func (o *Order) MarkCanceled(now time.Time) {
	o.Status = OrderStatusCanceled
	o.CanceledAt = &now
	o.CompletedAt = nil
	o.UpdatedAt = now
}

// Reactivate devuelve el pedido a active limpiando ambas marcas de tiempo.
func (o *Order) Reactivate(now time.Time) {
	o.Status = OrderStatusActive
	o.CompletedAt = nil
	o.CanceledAt = nil
	o.UpdatedAt = now
}
