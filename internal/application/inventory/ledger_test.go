package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// memStockRepo fila única en memoria, suficiente para ejercitar el Ledger.
type memStockRepo struct {
	stock *entity.Stock // nil = sin fila
}

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if r.stock == nil || r.stock.ProductID != productID || r.stock.WarehouseID != warehouseID {
		return nil, nil
	}
	dup := *r.stock
	return &dup, nil
}

func (r *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *memStockRepo) AdjustQuantity(productID, warehouseID string, delta int64) (*entity.Stock, error) {
	if r.stock == nil || r.stock.ProductID != productID || r.stock.WarehouseID != warehouseID {
		return nil, nil
	}
	r.stock.Quantity += delta
	dup := *r.stock
	return &dup, nil
}

func (r *memStockRepo) Upsert(stock *entity.Stock) error {
	dup := *stock
	r.stock = &dup
	return nil
}

func (r *memStockRepo) ListByWarehouse(string, int, int) ([]*entity.Stock, error) {
	if r.stock == nil {
		return nil, nil
	}
	dup := *r.stock
	return []*entity.Stock{&dup}, nil
}

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	dup := *m
	r.movements = append(r.movements, &dup)
	return nil
}

func (r *memMovementRepo) ListByStock(string, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

func (r *memMovementRepo) List(repository.MovementFilter, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

// memTxRunner pasa los repos tal cual; las pruebas de rollback viven en el
// paquete de pedidos.
type memTxRunner struct {
	stocks    *memStockRepo
	movements *memMovementRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(nil, r.stocks, r.movements)
}

// memCatalog repos mínimos de producto y bodega para el caso de uso de ajuste.
type memProductRepo struct{ product *entity.Product }

func (r *memProductRepo) Create(*entity.Product) error { return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.product == nil || r.product.ID != id {
		return nil, nil
	}
	return r.product, nil
}
func (r *memProductRepo) GetByIDs([]string) (map[string]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(*entity.Product) error                          { return nil }
func (r *memProductRepo) List(int, int) ([]*entity.Product, error)              { return nil, nil }
func (r *memProductRepo) Delete(string) error                                   { return nil }

type memWarehouseRepo struct{ warehouse *entity.Warehouse }

func (r *memWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if r.warehouse == nil || r.warehouse.ID != id {
		return nil, nil
	}
	return r.warehouse, nil
}
func (r *memWarehouseRepo) Update(*entity.Warehouse) error             { return nil }
func (r *memWarehouseRepo) List(int, int) ([]*entity.Warehouse, error) { return nil, nil }
func (r *memWarehouseRepo) Delete(string) error                        { return nil }

// ── Ledger ────────────────────────────────────────────────────────────────────

func TestLedgerApply_AjustaYRegistraUnMovimiento(t *testing.T) {
	stocks := &memStockRepo{stock: &entity.Stock{ID: "s-1", ProductID: "p-1", WarehouseID: "w-1", Quantity: 10}}
	movements := &memMovementRepo{}
	ledger := inventory.NewLedger(stocks, movements)

	at := time.Now()
	qty, err := ledger.Apply(inventory.Entry{
		ProductID:   "p-1",
		WarehouseID: "w-1",
		Delta:       -4,
		Operation:   entity.OperationOrderCompletion,
		SourceType:  entity.SourceTypeOrder,
		SourceID:    "o-1",
		Reason:      "Finalización del pedido #o-1",
		UserID:      "u-1",
		At:          at,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), qty)

	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "s-1", m.StockID)
	assert.Equal(t, int64(-4), m.Amount)
	assert.Equal(t, entity.OperationOrderCompletion, m.OperationType)
	assert.Equal(t, entity.SourceTypeOrder, m.SourceType)
	assert.Equal(t, "o-1", m.SourceID)
	assert.Equal(t, "u-1", m.UserID)
	assert.Equal(t, at, m.CreatedAt)
}

func TestLedgerApply_SinFila_StockMissing(t *testing.T) {
	ledger := inventory.NewLedger(&memStockRepo{}, &memMovementRepo{})

	_, err := ledger.Apply(inventory.Entry{ProductID: "p-x", WarehouseID: "w-1", Delta: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)

	var missing *domain.StockMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "p-x", missing.ProductID)
}

func TestLedgerApply_PermiteNegativo(t *testing.T) {
	stocks := &memStockRepo{stock: &entity.Stock{ID: "s-1", ProductID: "p-1", WarehouseID: "w-1", Quantity: 3}}
	ledger := inventory.NewLedger(stocks, &memMovementRepo{})

	qty, err := ledger.Apply(inventory.Entry{ProductID: "p-1", WarehouseID: "w-1", Delta: -8})
	require.NoError(t, err)
	assert.Equal(t, int64(-5), qty, "el libro mayor no impone piso")
}

// ── Ajuste manual ─────────────────────────────────────────────────────────────

func newAdjustUseCase(qty int64) (*memStockRepo, *memMovementRepo, *inventory.AdjustStockUseCase) {
	stocks := &memStockRepo{stock: &entity.Stock{ID: "s-1", ProductID: "p-1", WarehouseID: "w-1", Quantity: qty}}
	movements := &memMovementRepo{}
	uc := inventory.NewAdjustStockUseCase(
		&memTxRunner{stocks: stocks, movements: movements},
		&memProductRepo{product: &entity.Product{ID: "p-1", Name: "Café", Price: decimal.NewFromInt(100)}},
		&memWarehouseRepo{warehouse: &entity.Warehouse{ID: "w-1", Name: "Central"}},
	)
	return stocks, movements, uc
}

func TestAdjust_AplicaDeltaConMovimiento(t *testing.T) {
	_, movements, uc := newAdjustUseCase(10)

	qty, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID:   "p-1",
		WarehouseID: "w-1",
		Delta:       -12,
		Reason:      "merma por inventario físico",
		UserID:      "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-2), qty, "el ajuste admin puede dejar negativo")

	require.Len(t, movements.movements, 1)
	m := movements.movements[0]
	assert.Equal(t, entity.OperationManualAdjustment, m.OperationType)
	assert.Equal(t, entity.SourceTypeUser, m.SourceType)
	assert.Equal(t, "admin-1", m.SourceID)
	assert.Equal(t, "merma por inventario físico", m.Reason)
}

func TestAdjust_Validaciones(t *testing.T) {
	_, _, uc := newAdjustUseCase(10)
	ctx := context.Background()

	_, err := uc.Adjust(ctx, inventory.AdjustInput{ProductID: "p-1", WarehouseID: "w-1", Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero no es un ajuste")

	_, err = uc.Adjust(ctx, inventory.AdjustInput{ProductID: "fantasma", WarehouseID: "w-1", Delta: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Adjust(ctx, inventory.AdjustInput{ProductID: "p-1", WarehouseID: "fantasma", Delta: 1})
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)
}

func TestAdjust_RazonPorDefecto(t *testing.T) {
	_, movements, uc := newAdjustUseCase(10)

	_, err := uc.Adjust(context.Background(), inventory.AdjustInput{
		ProductID: "p-1", WarehouseID: "w-1", Delta: 5, UserID: "admin-1",
	})
	require.NoError(t, err)
	require.Len(t, movements.movements, 1)
	assert.Contains(t, movements.movements[0].Reason, "Ajuste manual")
}
