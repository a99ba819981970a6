package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// CrudUseCase operaciones de pedido fuera del ciclo de vida: crear, consultar,
// actualizar (cliente y líneas en bloque), listar y borrar. Nunca toca el estado
// ni el stock; eso es exclusivo de LifecycleUseCase.
type CrudUseCase struct {
	txRunner      inventory.TxRunner
	orderRepo     repository.OrderRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

// NewCrudUseCase construye el caso de uso.
func NewCrudUseCase(
	txRunner inventory.TxRunner,
	orderRepo repository.OrderRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
) *CrudUseCase {
	return &CrudUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
	}
}

// Create crea un pedido en estado active ligado a una bodega (inmutable). Valida
// que la bodega y todos los productos existan y que cada línea tenga count >= 1.
func (uc *CrudUseCase) Create(ctx context.Context, in dto.OrderStoreRequest) (*entity.Order, error) {
	if in.Customer == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound
	}
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		Customer:    in.Customer,
		WarehouseID: in.WarehouseID,
		Status:      entity.OrderStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       items,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}

	// Cabecera y líneas en una sola transacción
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
	) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(order.ID)
}

// Get devuelve el pedido con líneas y productos, o ErrNotFound.
func (uc *CrudUseCase) Get(id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List pedidos filtrados y paginados, más el total sin paginar.
func (uc *CrudUseCase) List(filter repository.OrderListFilter, limit, offset int) ([]*entity.Order, int, error) {
	list, err := uc.orderRepo.List(filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.orderRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update actualiza cliente y/o reemplaza las líneas en bloque, en una sola
// transacción. El estado y la bodega no se tocan por esta vía.
func (uc *CrudUseCase) Update(ctx context.Context, id string, in dto.OrderUpdateRequest) (*entity.Order, error) {
	var newItems []entity.OrderItem
	if in.Items != nil {
		items, err := uc.buildItems(in.Items)
		if err != nil {
			return nil, err
		}
		newItems = items
	}

	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if in.Customer != nil {
			if *in.Customer == "" {
				return domain.ErrInvalidInput
			}
			order.Customer = *in.Customer
			order.UpdatedAt = now
			if err := orderRepo.UpdateHeader(order); err != nil {
				return err
			}
		}
		if newItems != nil {
			for i := range newItems {
				newItems[i].OrderID = order.ID
			}
			if err := orderRepo.ReplaceItems(order.ID, newItems); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(id)
}

// Delete borra el pedido y sus líneas (hard delete). Comportamiento heredado y
// deliberado: NO revierte stock aunque el pedido esté completed; quien necesite
// la devolución debe cancelar antes de borrar.
func (uc *CrudUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
	) error {
		order, err := orderRepo.GetByID(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		return orderRepo.Delete(id)
	})
}

// buildItems valida las líneas (producto existente, count >= 1) y las materializa.
func (uc *CrudUseCase) buildItems(in []dto.OrderItemRequest) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(in))
	ids := make([]string, 0, len(in))
	for _, it := range in {
		if it.ProductID == "" || it.Count < 1 {
			return nil, domain.ErrInvalidInput
		}
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, it := range in {
		product, ok := products[it.ProductID]
		if !ok || product == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.OrderItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Count:     it.Count,
			Product:   product,
		})
	}
	return items, nil
}
