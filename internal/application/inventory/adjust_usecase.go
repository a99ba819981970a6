package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// AdjustStockUseCase ajuste manual de stock (solo admin): aplica un delta con
// signo a través del Ledger y deja el movimiento manual_adjustment. Puede dejar
// la cantidad en negativo: el libro mayor no impone piso y los ajustes
// administrativos se apoyan en esa permisividad.
type AdjustStockUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository, warehouseRepo repository.WarehouseRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// AdjustInput entrada del ajuste manual.
type AdjustInput struct {
	ProductID   string
	WarehouseID string
	Delta       int64 // distinto de cero
	Reason      string
	UserID      string // actor que ejecuta el ajuste
}

// Adjust valida producto y bodega, y aplica el delta con su movimiento en una
// sola transacción. Devuelve la cantidad resultante.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in AdjustInput) (int64, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Delta == 0 {
		return 0, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return 0, err
	}
	if warehouse == nil {
		return 0, domain.ErrWarehouseNotFound
	}

	reason := in.Reason
	if reason == "" {
		reason = fmt.Sprintf("Ajuste manual de %s en bodega %s", product.Name, warehouse.Name)
	}

	var newQty int64
	err = uc.txRunner.Run(ctx, func(
		_ repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		ledger := NewLedger(stockRepo, movRepo)
		qty, err := ledger.Apply(Entry{
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Delta:       in.Delta,
			Operation:   entity.OperationManualAdjustment,
			SourceType:  entity.SourceTypeUser,
			SourceID:    in.UserID,
			Reason:      reason,
			UserID:      in.UserID,
			At:          time.Now(),
		})
		if err != nil {
			return err
		}
		newQty = qty
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newQty, nil
}
