package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// WarehouseUseCase CRUD de bodegas más la consulta de existencias por bodega.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository, stockRepo repository.StockRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo, stockRepo: stockRepo}
}

// Create crea una bodega.
func (uc *WarehouseUseCase) Create(in dto.WarehouseRequest) (*entity.Warehouse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// Get devuelve una bodega o ErrWarehouseNotFound.
func (uc *WarehouseUseCase) Get(id string) (*entity.Warehouse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound
	}
	return warehouse, nil
}

// Update renombra una bodega.
func (uc *WarehouseUseCase) Update(id string, in dto.WarehouseRequest) (*entity.Warehouse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	warehouse.Name = in.Name
	warehouse.UpdatedAt = time.Now()
	if err := uc.warehouseRepo.Update(warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// List bodegas paginadas.
func (uc *WarehouseUseCase) List(limit, offset int) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List(limit, offset)
}

// Delete elimina una bodega.
func (uc *WarehouseUseCase) Delete(id string) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	return uc.warehouseRepo.Delete(id)
}

// Stocks existencias de la bodega, paginadas.
func (uc *WarehouseUseCase) Stocks(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	if _, err := uc.Get(warehouseID); err != nil {
		return nil, err
	}
	return uc.stockRepo.ListByWarehouse(warehouseID, limit, offset)
}
