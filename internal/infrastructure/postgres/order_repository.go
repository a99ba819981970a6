package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = "o.id, o.customer, o.warehouse_id, o.status, o.completed_at, o.canceled_at, o.created_at, o.updated_at"

// Create persiste la cabecera y las líneas del pedido. Invocar dentro de una
// transacción para que ambas inserciones sean atómicas.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer, warehouse_id, status, completed_at, canceled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Customer, order.WarehouseID, order.Status,
		order.CompletedAt, order.CanceledAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrWarehouseNotFound
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(order.ID, order.Items)
}

// GetByID obtiene el pedido con líneas y productos, o (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero bloqueando la fila del pedido, para
// serializar transiciones concurrentes sobre el mismo pedido.
func (r *OrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return r.getOne(`SELECT `+orderColumns+` FROM orders o WHERE o.id = $1 FOR UPDATE`, id)
}

// UpdateHeader persiste customer y updated_at. La bodega nunca se actualiza.
func (r *OrderRepo) UpdateHeader(order *entity.Order) error {
	query := `UPDATE orders SET customer = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, order.ID, order.Customer, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order header: %w", err)
	}
	return nil
}

// UpdateStatus persiste status y marcas de tiempo del ciclo de vida.
func (r *OrderRepo) UpdateStatus(order *entity.Order) error {
	query := `
		UPDATE orders SET status = $2, completed_at = $3, canceled_at = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.CompletedAt, order.CanceledAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// ReplaceItems borra y recrea todas las líneas (reemplazo en bloque).
func (r *OrderRepo) ReplaceItems(orderID string, items []entity.OrderItem) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(orderID, items)
}

// Delete elimina el pedido; las líneas caen por cascada. No toca stock.
func (r *OrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// List pedidos filtrados, del más reciente al más antiguo, con líneas cargadas.
func (r *OrderRepo) List(filter repository.OrderListFilter, limit, offset int) ([]*entity.Order, error) {
	where, args := buildOrderConditions(filter, 1)
	query := `SELECT ` + orderColumns + ` FROM orders o` + where +
		fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	byID := map[string]*entity.Order{}
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	items, err := r.loadItems(`WHERE i.order_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return list, nil
}

// Count total de pedidos que satisfacen el filtro.
func (r *OrderRepo) Count(filter repository.OrderListFilter) (int, error) {
	where, args := buildOrderConditions(filter, 1)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM orders o`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return total, nil
}

func (r *OrderRepo) getOne(query, id string) (*entity.Order, error) {
	row := r.q.QueryRow(context.Background(), query, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.loadItems(`WHERE i.order_id = $1`, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) insertItems(orderID string, items []entity.OrderItem) error {
	for _, it := range items {
		query := `
			INSERT INTO order_items (id, order_id, product_id, count)
			VALUES ($1, $2, $3, $4)`
		if _, err := r.q.Exec(context.Background(), query, it.ID, orderID, it.ProductID, it.Count); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// loadItems carga líneas (con su producto) según la condición dada, en orden de
// inserción estable.
func (r *OrderRepo) loadItems(where string, arg any) ([]entity.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.count, p.id, p.name, p.price, p.created_at, p.updated_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id ` + where + `
		ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		var p entity.Product
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Count,
			&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.Product = &p
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.Customer, &o.WarehouseID, &o.Status,
		&o.CompletedAt, &o.CanceledAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
