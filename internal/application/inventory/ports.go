package inventory

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad: o confirman todos los
// deltas de stock, movimientos y cambios de pedido, o ninguno. Cualquier error
// devuelto por fn provoca rollback completo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
