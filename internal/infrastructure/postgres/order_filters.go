package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// Filtros de listado de pedidos como tabla de estrategias: cada entrada sabe si
// aplica para el filtro recibido y cómo construir su condición SQL. Agregar un
// filtro nuevo es agregar una entrada, sin tocar el armado de la consulta.
type orderFilterBuilder struct {
	// cond usa %d como posición del placeholder
	cond  string
	value func(f repository.OrderListFilter) (any, bool)
}

var orderFilterBuilders = []orderFilterBuilder{
	{
		cond: "o.status = $%d",
		value: func(f repository.OrderListFilter) (any, bool) {
			return f.Status, f.Status != ""
		},
	},
	{
		cond: "o.warehouse_id = $%d",
		value: func(f repository.OrderListFilter) (any, bool) {
			return f.WarehouseID, f.WarehouseID != ""
		},
	},
	{
		cond: "o.customer ILIKE '%%' || $%d || '%%'",
		value: func(f repository.OrderListFilter) (any, bool) {
			return f.Customer, f.Customer != ""
		},
	},
	{
		cond: "o.created_at >= $%d",
		value: func(f repository.OrderListFilter) (any, bool) {
			if f.DateFrom == nil {
				return nil, false
			}
			return *f.DateFrom, true
		},
	},
	{
		cond: "o.created_at <= $%d",
		value: func(f repository.OrderListFilter) (any, bool) {
			if f.DateTo == nil {
				return nil, false
			}
			return *f.DateTo, true
		},
	},
}

// buildOrderConditions arma la cláusula WHERE (" WHERE a AND b" o vacía) y sus
// argumentos, numerando placeholders desde startPos.
func buildOrderConditions(f repository.OrderListFilter, startPos int) (string, []any) {
	var conds []string
	var args []any
	pos := startPos
	for _, b := range orderFilterBuilders {
		v, ok := b.value(f)
		if !ok {
			continue
		}
		conds = append(conds, fmt.Sprintf(b.cond, pos))
		args = append(args, v)
		pos++
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
