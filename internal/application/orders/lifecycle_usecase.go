package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// LifecycleUseCase máquina de estados del pedido: complete, cancel y restore.
// Cada transición corre como una unidad atómica dentro de TxRunner.Run: carga el
// pedido con bloqueo de fila, valida precondiciones, aplica los deltas de stock
// vía el Ledger (con sus movimientos de auditoría) y actualiza el estado. Si algo
// falla no queda ningún cambio parcial.
//
// Para complete y restore la suficiencia se verifica en dos fases: primero se
// bloquean (SELECT FOR UPDATE) y verifican TODAS las líneas, y solo después se
// descuenta. Así una línea insuficiente a mitad de pedido no deja descuentos
// parciales, y las filas bloqueadas no pueden ser drenadas por una transacción
// concurrente entre la verificación y el descuento.
type LifecycleUseCase struct {
	txRunner      inventory.TxRunner
	warehouseRepo repository.WarehouseRepository
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(txRunner inventory.TxRunner, warehouseRepo repository.WarehouseRepository) *LifecycleUseCase {
	return &LifecycleUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo}
}

// Complete transición active -> completed: descuenta el stock de cada línea y
// registra un movimiento order_completion por línea. userID es el actor que
// queda en los movimientos (vacío = anónimo).
func (uc *LifecycleUseCase) Complete(ctx context.Context, orderID, userID string) (*entity.Order, error) {
	var result *entity.Order
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		order, err := uc.lockOrder(orderRepo, orderID)
		if err != nil {
			return err
		}
		if !order.CanComplete() {
			return &domain.TransitionError{OrderID: order.ID, Status: order.Status, Transition: "complete"}
		}
		if err := uc.requireWarehouse(order.WarehouseID); err != nil {
			return err
		}

		now := time.Now()
		if err := uc.deductLines(stockRepo, movRepo, order, entity.OperationOrderCompletion,
			fmt.Sprintf("Finalización del pedido #%s", order.ID), userID, now); err != nil {
			return err
		}

		order.MarkCompleted(now)
		if err := orderRepo.UpdateStatus(order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel transición {active, completed} -> canceled. Solo si el pedido estaba
// completed se devuelve el stock (movimientos order_cancellation por línea); un
// pedido activo nunca descontó, así que solo cambia de estado.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, orderID, userID string) (*entity.Order, error) {
	var result *entity.Order
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		order, err := uc.lockOrder(orderRepo, orderID)
		if err != nil {
			return err
		}
		if !order.CanCancel() {
			return &domain.TransitionError{OrderID: order.ID, Status: order.Status, Transition: "cancel"}
		}

		now := time.Now()
		if order.Status == entity.OrderStatusCompleted {
			ledger := inventory.NewLedger(stockRepo, movRepo)
			reason := fmt.Sprintf("Cancelación del pedido completado #%s", order.ID)
			for _, item := range order.Items {
				if _, err := ledger.Apply(inventory.Entry{
					ProductID:   item.ProductID,
					WarehouseID: order.WarehouseID,
					Delta:       item.Count,
					Operation:   entity.OperationOrderCancellation,
					SourceType:  entity.SourceTypeOrder,
					SourceID:    order.ID,
					Reason:      reason,
					UserID:      userID,
					At:          now,
				}); err != nil {
					return err
				}
			}
		}

		order.MarkCanceled(now)
		if err := orderRepo.UpdateStatus(order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Restore transición canceled -> active, solo para pedidos cancelados que nunca
// quedaron completados: vuelve a descontar el stock de cada línea (movimientos
// order_restoration) con la misma verificación en dos fases que complete.
func (uc *LifecycleUseCase) Restore(ctx context.Context, orderID, userID string) (*entity.Order, error) {
	var result *entity.Order
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		order, err := uc.lockOrder(orderRepo, orderID)
		if err != nil {
			return err
		}
		if !order.CanRestore() {
			return &domain.TransitionError{OrderID: order.ID, Status: order.Status, Transition: "restore"}
		}
		if err := uc.requireWarehouse(order.WarehouseID); err != nil {
			return err
		}

		now := time.Now()
		if err := uc.deductLines(stockRepo, movRepo, order, entity.OperationOrderRestoration,
			fmt.Sprintf("Reactivación del pedido #%s", order.ID), userID, now); err != nil {
			return err
		}

		order.Reactivate(now)
		if err := orderRepo.UpdateStatus(order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockOrder carga el pedido (con líneas) bloqueando su fila.
func (uc *LifecycleUseCase) lockOrder(orderRepo repository.OrderRepository, orderID string) (*entity.Order, error) {
	order, err := orderRepo.GetByIDForUpdate(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// requireWarehouse verifica que la bodega del pedido siga existiendo.
func (uc *LifecycleUseCase) requireWarehouse(warehouseID string) error {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrWarehouseNotFound
	}
	return nil
}

// deductLines descuenta el stock de todas las líneas en dos fases: primero
// bloquea y verifica suficiencia de cada una, después aplica los deltas y
// registra los movimientos. Un pedido sin líneas pasa trivialmente.
func (uc *LifecycleUseCase) deductLines(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	order *entity.Order,
	operation, reason, userID string,
	now time.Time,
) error {
	// Fase 1: bloquear todas las filas y verificar suficiencia antes de mutar nada
	for _, item := range order.Items {
		stock, err := stockRepo.GetForUpdate(item.ProductID, order.WarehouseID)
		if err != nil {
			return err
		}
		if stock == nil {
			return &domain.StockMissingError{ProductID: item.ProductID, WarehouseID: order.WarehouseID}
		}
		if stock.Quantity < item.Count {
			return &domain.StockShortageError{
				ProductID:   item.ProductID,
				WarehouseID: order.WarehouseID,
				Available:   stock.Quantity,
				Required:    item.Count,
			}
		}
	}

	// Fase 2: aplicar deltas y registrar un movimiento por línea
	ledger := inventory.NewLedger(stockRepo, movRepo)
	for _, item := range order.Items {
		if _, err := ledger.Apply(inventory.Entry{
			ProductID:   item.ProductID,
			WarehouseID: order.WarehouseID,
			Delta:       -item.Count,
			Operation:   operation,
			SourceType:  entity.SourceTypeOrder,
			SourceID:    order.ID,
			Reason:      reason,
			UserID:      userID,
			At:          now,
		}); err != nil {
			return err
		}
	}
	return nil
}
