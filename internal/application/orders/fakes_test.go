package orders_test

import (
	"context"
	"strings"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// fakeStore estado en memoria compartido por los repos fake. Las lecturas
// devuelven copias para que los casos de uso no muten el estado por referencia.
type fakeStore struct {
	orders     map[string]*entity.Order
	stocks     map[string]*entity.Stock // clave productID|warehouseID
	movements  []*entity.StockMovement
	warehouses map[string]*entity.Warehouse
	products   map[string]*entity.Product
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:     map[string]*entity.Order{},
		stocks:     map[string]*entity.Stock{},
		warehouses: map[string]*entity.Warehouse{},
		products:   map[string]*entity.Product{},
	}
}

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func repositoryFilter(customer string) repository.OrderListFilter {
	return repository.OrderListFilter{Customer: customer}
}

func copyOrder(o *entity.Order) *entity.Order {
	if o == nil {
		return nil
	}
	dup := *o
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		dup.CompletedAt = &t
	}
	if o.CanceledAt != nil {
		t := *o.CanceledAt
		dup.CanceledAt = &t
	}
	dup.Items = append([]entity.OrderItem(nil), o.Items...)
	return &dup
}

func copyStock(s *entity.Stock) *entity.Stock {
	if s == nil {
		return nil
	}
	dup := *s
	return &dup
}

// snapshot copia profunda del estado, para simular rollback transaccional.
func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, o := range s.orders {
		snap.orders[id] = copyOrder(o)
	}
	for k, st := range s.stocks {
		snap.stocks[k] = copyStock(st)
	}
	snap.movements = append([]*entity.StockMovement(nil), s.movements...)
	for id, w := range s.warehouses {
		dup := *w
		snap.warehouses[id] = &dup
	}
	for id, p := range s.products {
		dup := *p
		snap.products[id] = &dup
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.orders = snap.orders
	s.stocks = snap.stocks
	s.movements = snap.movements
	s.warehouses = snap.warehouses
	s.products = snap.products
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner simula la semántica transaccional: si fn falla, el estado vuelve
// al snapshot previo (equivalente al rollback de PostgreSQL).
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	snap := r.store.snapshot()
	err := fn(&fakeOrderRepo{r.store}, &fakeStockRepo{r.store}, &fakeMovementRepo{r.store})
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

// ── OrderRepository ───────────────────────────────────────────────────────────

type fakeOrderRepo struct{ store *fakeStore }

func (r *fakeOrderRepo) Create(order *entity.Order) error {
	r.store.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	return copyOrder(r.store.orders[id]), nil
}

func (r *fakeOrderRepo) GetByIDForUpdate(id string) (*entity.Order, error) {
	return copyOrder(r.store.orders[id]), nil
}

func (r *fakeOrderRepo) UpdateHeader(order *entity.Order) error {
	if existing, ok := r.store.orders[order.ID]; ok {
		existing.Customer = order.Customer
		existing.UpdatedAt = order.UpdatedAt
	}
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(order *entity.Order) error {
	if existing, ok := r.store.orders[order.ID]; ok {
		existing.Status = order.Status
		existing.CompletedAt = order.CompletedAt
		existing.CanceledAt = order.CanceledAt
		existing.UpdatedAt = order.UpdatedAt
	}
	return nil
}

func (r *fakeOrderRepo) ReplaceItems(orderID string, items []entity.OrderItem) error {
	if existing, ok := r.store.orders[orderID]; ok {
		existing.Items = append([]entity.OrderItem(nil), items...)
	}
	return nil
}

func (r *fakeOrderRepo) Delete(id string) error {
	delete(r.store.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(filter repository.OrderListFilter, limit, offset int) ([]*entity.Order, error) {
	var list []*entity.Order
	for _, o := range r.store.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.WarehouseID != "" && o.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.Customer != "" && !strings.Contains(strings.ToLower(o.Customer), strings.ToLower(filter.Customer)) {
			continue
		}
		list = append(list, copyOrder(o))
	}
	return list, nil
}

func (r *fakeOrderRepo) Count(filter repository.OrderListFilter) (int, error) {
	list, _ := r.List(filter, 0, 0)
	return len(list), nil
}

// ── StockRepository ───────────────────────────────────────────────────────────

type fakeStockRepo struct{ store *fakeStore }

func (r *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	return copyStock(r.store.stocks[stockKey(productID, warehouseID)]), nil
}

func (r *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *fakeStockRepo) AdjustQuantity(productID, warehouseID string, delta int64) (*entity.Stock, error) {
	stock, ok := r.store.stocks[stockKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	stock.Quantity += delta
	return copyStock(stock), nil
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	r.store.stocks[stockKey(stock.ProductID, stock.WarehouseID)] = copyStock(stock)
	return nil
}

func (r *fakeStockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Stock, error) {
	var list []*entity.Stock
	for _, s := range r.store.stocks {
		if s.WarehouseID == warehouseID {
			list = append(list, copyStock(s))
		}
	}
	return list, nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	dup := *movement
	r.store.movements = append(r.store.movements, &dup)
	return nil
}

func (r *fakeMovementRepo) ListByStock(stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.StockID == stockID {
			dup := *m
			list = append(list, &dup)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.store.movements {
		if filter.OperationType != "" && m.OperationType != filter.OperationType {
			continue
		}
		dup := *m
		list = append(list, &dup)
	}
	return list, nil
}

// ── WarehouseRepository / ProductRepository ───────────────────────────────────

type fakeWarehouseRepo struct{ store *fakeStore }

func (r *fakeWarehouseRepo) Create(warehouse *entity.Warehouse) error {
	dup := *warehouse
	r.store.warehouses[warehouse.ID] = &dup
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	dup := *w
	return &dup, nil
}

func (r *fakeWarehouseRepo) Update(warehouse *entity.Warehouse) error {
	r.store.warehouses[warehouse.ID] = warehouse
	return nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.store.warehouses {
		dup := *w
		list = append(list, &dup)
	}
	return list, nil
}

func (r *fakeWarehouseRepo) Delete(id string) error {
	delete(r.store.warehouses, id)
	return nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(product *entity.Product) error {
	dup := *product
	r.store.products[product.ID] = &dup
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	dup := *p
	return &dup, nil
}

func (r *fakeProductRepo) GetByIDs(ids []string) (map[string]*entity.Product, error) {
	result := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			dup := *p
			result[id] = &dup
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	r.store.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.store.products {
		dup := *p
		list = append(list, &dup)
	}
	return list, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}
