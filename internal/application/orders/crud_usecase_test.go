package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

func seedCrud(t *testing.T) (*fakeStore, *orders.CrudUseCase) {
	t.Helper()
	store := newFakeStore()
	store.warehouses[warehouseW] = &entity.Warehouse{ID: warehouseW, Name: "Bodega Central"}
	store.products[productP1] = &entity.Product{ID: productP1, Name: "Café molido 500g", Price: decimal.NewFromInt(18500)}
	store.products[productP2] = &entity.Product{ID: productP2, Name: "Panela orgánica 1kg", Price: decimal.NewFromInt(7200)}

	uc := orders.NewCrudUseCase(&fakeTxRunner{store}, &fakeOrderRepo{store}, &fakeWarehouseRepo{store}, &fakeProductRepo{store})
	return store, uc
}

func TestCrudCreate_NaceActivoEnLaBodega(t *testing.T) {
	store, uc := seedCrud(t)

	order, err := uc.Create(context.Background(), dto.OrderStoreRequest{
		Customer:    "ACME",
		WarehouseID: warehouseW,
		Items: []dto.OrderItemRequest{
			{ProductID: productP1, Count: 3},
			{ProductID: productP2, Count: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusActive, order.Status)
	assert.Equal(t, warehouseW, order.WarehouseID)
	assert.Nil(t, order.CompletedAt)
	assert.Nil(t, order.CanceledAt)
	require.Len(t, order.Items, 2)
	assert.NotEmpty(t, order.Items[0].ID)

	assert.Len(t, store.orders, 1)
	assert.Empty(t, store.movements, "crear no toca stock ni movimientos")
}

func TestCrudCreate_Validaciones(t *testing.T) {
	_, uc := seedCrud(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.OrderStoreRequest{WarehouseID: warehouseW})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cliente obligatorio")

	_, err = uc.Create(ctx, dto.OrderStoreRequest{Customer: "ACME", WarehouseID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)

	_, err = uc.Create(ctx, dto.OrderStoreRequest{
		Customer: "ACME", WarehouseID: warehouseW,
		Items: []dto.OrderItemRequest{{ProductID: productP1, Count: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "count mínimo 1")

	_, err = uc.Create(ctx, dto.OrderStoreRequest{
		Customer: "ACME", WarehouseID: warehouseW,
		Items: []dto.OrderItemRequest{{ProductID: "fantasma", Count: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

func TestCrudUpdate_ClienteYLineasEnBloque(t *testing.T) {
	store, uc := seedCrud(t)
	created, err := uc.Create(context.Background(), dto.OrderStoreRequest{
		Customer:    "ACME",
		WarehouseID: warehouseW,
		Items:       []dto.OrderItemRequest{{ProductID: productP1, Count: 3}},
	})
	require.NoError(t, err)

	newCustomer := "Globex"
	updated, err := uc.Update(context.Background(), created.ID, dto.OrderUpdateRequest{
		Customer: &newCustomer,
		Items:    []dto.OrderItemRequest{{ProductID: productP2, Count: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Globex", updated.Customer)
	require.Len(t, updated.Items, 1, "reemplazo en bloque")
	assert.Equal(t, productP2, updated.Items[0].ProductID)
	assert.Equal(t, entity.OrderStatusActive, updated.Status, "el estado no cambia por update")
	assert.Equal(t, warehouseW, updated.WarehouseID, "la bodega es inmutable")
	assert.Empty(t, store.movements)
}

func TestCrudUpdate_SoloCliente_ConservaLineas(t *testing.T) {
	_, uc := seedCrud(t)
	created, err := uc.Create(context.Background(), dto.OrderStoreRequest{
		Customer:    "ACME",
		WarehouseID: warehouseW,
		Items:       []dto.OrderItemRequest{{ProductID: productP1, Count: 3}},
	})
	require.NoError(t, err)

	newCustomer := "Globex"
	updated, err := uc.Update(context.Background(), created.ID, dto.OrderUpdateRequest{Customer: &newCustomer})
	require.NoError(t, err)

	assert.Equal(t, "Globex", updated.Customer)
	require.Len(t, updated.Items, 1, "items nil conserva las líneas")
	assert.Equal(t, productP1, updated.Items[0].ProductID)
}

func TestCrudDelete_NoRevierteStock(t *testing.T) {
	store, uc := seedCrud(t)
	store.stocks[stockKey(productP1, warehouseW)] = &entity.Stock{ID: "s-1", ProductID: productP1, WarehouseID: warehouseW, Quantity: 10}

	created, err := uc.Create(context.Background(), dto.OrderStoreRequest{
		Customer:    "ACME",
		WarehouseID: warehouseW,
		Items:       []dto.OrderItemRequest{{ProductID: productP1, Count: 3}},
	})
	require.NoError(t, err)

	// Completar el pedido para que haya descuento previo al borrado.
	lifecycle := orders.NewLifecycleUseCase(&fakeTxRunner{store}, &fakeWarehouseRepo{store})
	_, err = lifecycle.Complete(context.Background(), created.ID, actorID)
	require.NoError(t, err)
	require.Equal(t, int64(7), quantity(store, productP1))

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err = uc.Get(created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(7), quantity(store, productP1),
		"borrar no devuelve stock; los movimientos quedan como constancia")
	assert.Len(t, store.movements, 1)
}

func TestCrudDelete_Inexistente(t *testing.T) {
	_, uc := seedCrud(t)
	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrudGet_Inexistente(t *testing.T) {
	_, uc := seedCrud(t)
	_, err := uc.Get("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrudList_Filtra(t *testing.T) {
	_, uc := seedCrud(t)
	ctx := context.Background()
	for _, customer := range []string{"ACME", "Globex"} {
		_, err := uc.Create(ctx, dto.OrderStoreRequest{
			Customer:    customer,
			WarehouseID: warehouseW,
			Items:       []dto.OrderItemRequest{{ProductID: productP1, Count: 1}},
		})
		require.NoError(t, err)
	}

	list, total, err := uc.List(repositoryFilter("acme"), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "ACME", list[0].Customer, "búsqueda por subcadena sin distinguir mayúsculas")

	_, total, err = uc.List(repositoryFilter(""), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// Marca de tiempo consistente en la creación.
	assert.WithinDuration(t, time.Now(), list[0].CreatedAt, time.Minute)
}
