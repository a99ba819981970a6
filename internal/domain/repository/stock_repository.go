package repository

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// StockRepository define el puerto para consultar/ajustar stock por producto+bodega.
// Usado dentro de transacciones para garantizar consistencia. Get y GetForUpdate
// devuelven (nil, nil) si no existe fila para el par solicitado.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	// AdjustQuantity aplica un delta con signo de forma atómica
	// (UPDATE ... SET quantity = quantity + delta RETURNING) y devuelve la fila
	// actualizada, o (nil, nil) si no existe. Sin piso: la suficiencia es
	// responsabilidad del caller.
	AdjustQuantity(productID, warehouseID string, delta int64) (*entity.Stock, error)
	// Upsert fija una cantidad absoluta; solo para siembra/carga inicial.
	Upsert(stock *entity.Stock) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error)
}
