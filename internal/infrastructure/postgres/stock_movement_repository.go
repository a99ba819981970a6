package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo inserta y lee: los movimientos son inmutables.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = "id, stock_id, amount, operation_type, source_type, source_id, reason, user_id, created_at"

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	reason := (*string)(nil)
	if movement.Reason != "" {
		reason = &movement.Reason
	}
	userID := (*string)(nil)
	if movement.UserID != "" {
		userID = &movement.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.StockID, movement.Amount, movement.OperationType,
		movement.SourceType, movement.SourceID, reason, userID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByStock historial de una fila de stock en orden de reconstrucción
// (created_at e id ascendentes).
func (r *StockMovementRepo) ListByStock(stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE stock_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, stockID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by stock: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// List movimientos filtrados por bodega, producto, tipo de operación y fechas,
// del más reciente al más antiguo.
func (r *StockMovementRepo) List(f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.stock_id, m.amount, m.operation_type, m.source_type, m.source_id, m.reason, m.user_id, m.created_at
		FROM stock_movements m
		JOIN stock s ON s.id = m.stock_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if f.WarehouseID != "" {
		query += fmt.Sprintf(" AND s.warehouse_id = $%d", pos)
		args = append(args, f.WarehouseID)
		pos++
	}
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND s.product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.OperationType != "" {
		query += fmt.Sprintf(" AND m.operation_type = $%d", pos)
		args = append(args, f.OperationType)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reason, userID *string
		if err := rows.Scan(&m.ID, &m.StockID, &m.Amount, &m.OperationType,
			&m.SourceType, &m.SourceID, &reason, &userID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if reason != nil {
			m.Reason = *reason
		}
		if userID != nil {
			m.UserID = *userID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
