package entity

import "time"

// Stock existencia de un producto en una bodega. Clave única (product_id, warehouse_id).
// La cantidad es un entero con signo: el modelo de datos admite valores negativos
// (anomalía de negocio, no rechazada a nivel de libro mayor); la suficiencia la
// garantiza el ciclo de vida del pedido, no esta capa.
type Stock struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
