package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = "id, product_id, warehouse_id, quantity, created_at, updated_at"

// Get obtiene el stock de un producto en una bodega, o (nil, nil) si no existe fila.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(query, productID, warehouseID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Devuelve (nil, nil) si no existe fila para el par solicitado.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(query, productID, warehouseID)
}

// AdjustQuantity aplica el delta de forma atómica y devuelve la fila resultante.
// Sin piso: la cantidad puede quedar negativa; la suficiencia la garantiza el caller.
func (r *StockRepo) AdjustQuantity(productID, warehouseID string, delta int64) (*entity.Stock, error) {
	query := `
		UPDATE stock SET quantity = quantity + $3, updated_at = now()
		WHERE product_id = $1 AND warehouse_id = $2
		RETURNING ` + stockColumns
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, delta).Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return &s, nil
}

// Upsert fija la cantidad absoluta (solo siembra/carga inicial).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (id, product_id, warehouse_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ID, stock.ProductID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse existencias de una bodega, paginadas.
func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StockRepo) scanOne(query string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
