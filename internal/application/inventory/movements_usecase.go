package inventory

import (
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// MovementsUseCase consulta del log de movimientos (solo lectura).
type MovementsUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewMovementsUseCase construye el caso de uso.
func NewMovementsUseCase(movRepo repository.StockMovementRepository) *MovementsUseCase {
	return &MovementsUseCase{movRepo: movRepo}
}

// List movimientos filtrados por bodega, producto, tipo de operación y rango de fechas.
func (uc *MovementsUseCase) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.List(filter, limit, offset)
}

// History historial completo de una fila de stock en orden de reconstrucción.
func (uc *MovementsUseCase) History(stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByStock(stockID, limit, offset)
}
