package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create crea un producto.
func (uc *ProductUseCase) Create(in dto.ProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get devuelve un producto o ErrNotFound.
func (uc *ProductUseCase) Get(id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update actualiza nombre y precio.
func (uc *ProductUseCase) Update(id string, in dto.ProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Price = in.Price
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// List productos paginados.
func (uc *ProductUseCase) List(limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(id string) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}
