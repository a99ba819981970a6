package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

const (
	warehouseW = "w-1"
	productP1  = "p-1"
	productP2  = "p-2"
	orderO     = "o-1"
	actorID    = "u-1"
)

// seedScenario arma el escenario base: bodega W, stock P1=10 y P2=5, y el
// pedido activo O con líneas [P1:3, P2:5].
func seedScenario(t *testing.T) (*fakeStore, *orders.LifecycleUseCase) {
	t.Helper()
	store := newFakeStore()
	now := time.Now()

	store.warehouses[warehouseW] = &entity.Warehouse{ID: warehouseW, Name: "Bodega Central"}
	store.stocks[stockKey(productP1, warehouseW)] = &entity.Stock{ID: "s-1", ProductID: productP1, WarehouseID: warehouseW, Quantity: 10}
	store.stocks[stockKey(productP2, warehouseW)] = &entity.Stock{ID: "s-2", ProductID: productP2, WarehouseID: warehouseW, Quantity: 5}
	store.orders[orderO] = &entity.Order{
		ID:          orderO,
		Customer:    "ACME",
		WarehouseID: warehouseW,
		Status:      entity.OrderStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items: []entity.OrderItem{
			{ID: "i-1", OrderID: orderO, ProductID: productP1, Count: 3},
			{ID: "i-2", OrderID: orderO, ProductID: productP2, Count: 5},
		},
	}

	uc := orders.NewLifecycleUseCase(&fakeTxRunner{store}, &fakeWarehouseRepo{store})
	return store, uc
}

func quantity(store *fakeStore, productID string) int64 {
	return store.stocks[stockKey(productID, warehouseW)].Quantity
}

// ── Complete ──────────────────────────────────────────────────────────────────

func TestComplete_DescuentaStockYRegistraMovimientos(t *testing.T) {
	store, uc := seedScenario(t)

	order, err := uc.Complete(context.Background(), orderO, actorID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)
	assert.Nil(t, order.CanceledAt)

	assert.Equal(t, int64(7), quantity(store, productP1), "10 - 3")
	assert.Equal(t, int64(0), quantity(store, productP2), "5 - 5")

	require.Len(t, store.movements, 2, "exactamente un movimiento por línea")
	for _, m := range store.movements {
		assert.Equal(t, entity.OperationOrderCompletion, m.OperationType)
		assert.Equal(t, entity.SourceTypeOrder, m.SourceType)
		assert.Equal(t, orderO, m.SourceID)
		assert.Equal(t, actorID, m.UserID)
		assert.Contains(t, m.Reason, "Finalización del pedido #"+orderO)
		assert.Negative(t, m.Amount)
	}
}

func TestComplete_StockInsuficiente_NoDejaCambiosParciales(t *testing.T) {
	store, uc := seedScenario(t)
	// P2 requiere 5 pero solo hay 4: la primera línea (P1) era suficiente,
	// aun así nada debe descontarse.
	store.stocks[stockKey(productP2, warehouseW)].Quantity = 4

	_, err := uc.Complete(context.Background(), orderO, actorID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var shortage *domain.StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, productP2, shortage.ProductID)
	assert.Equal(t, int64(4), shortage.Available)
	assert.Equal(t, int64(5), shortage.Required)

	assert.Equal(t, int64(10), quantity(store, productP1), "sin descuento parcial")
	assert.Equal(t, int64(4), quantity(store, productP2))
	assert.Empty(t, store.movements, "sin movimientos registrados")
	assert.Equal(t, entity.OrderStatusActive, store.orders[orderO].Status)
}

func TestComplete_SinFilaDeStock_FallaDura(t *testing.T) {
	store, uc := seedScenario(t)
	delete(store.stocks, stockKey(productP2, warehouseW))

	_, err := uc.Complete(context.Background(), orderO, actorID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)

	var missing *domain.StockMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, productP2, missing.ProductID)
	assert.Equal(t, warehouseW, missing.WarehouseID)

	assert.Equal(t, int64(10), quantity(store, productP1))
	assert.Empty(t, store.movements)
}

func TestComplete_PedidoNoActivo_TransicionInvalida(t *testing.T) {
	for _, status := range []string{entity.OrderStatusCompleted, entity.OrderStatusCanceled} {
		store, uc := seedScenario(t)
		store.orders[orderO].Status = status

		_, err := uc.Complete(context.Background(), orderO, actorID)
		require.Error(t, err, "status %s", status)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		var transition *domain.TransitionError
		require.ErrorAs(t, err, &transition)
		assert.Equal(t, status, transition.Status)
		assert.Equal(t, "complete", transition.Transition)

		assert.Equal(t, int64(10), quantity(store, productP1), "rechazo sin efectos")
		assert.Empty(t, store.movements)
	}
}

func TestComplete_BodegaInexistente(t *testing.T) {
	store, uc := seedScenario(t)
	delete(store.warehouses, warehouseW)

	_, err := uc.Complete(context.Background(), orderO, actorID)
	assert.ErrorIs(t, err, domain.ErrWarehouseNotFound)
	assert.Equal(t, int64(10), quantity(store, productP1))
}

func TestComplete_PedidoInexistente(t *testing.T) {
	_, uc := seedScenario(t)

	_, err := uc.Complete(context.Background(), "no-existe", actorID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplete_PedidoSinLineas_PasaTrivialmente(t *testing.T) {
	store, uc := seedScenario(t)
	store.orders[orderO].Items = nil

	order, err := uc.Complete(context.Background(), orderO, actorID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.Empty(t, store.movements)
}

// ── Cancel ────────────────────────────────────────────────────────────────────

func TestCancel_ActivoNoTocaStock(t *testing.T) {
	store, uc := seedScenario(t)

	order, err := uc.Cancel(context.Background(), orderO, actorID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCanceled, order.Status)
	require.NotNil(t, order.CanceledAt)
	assert.Nil(t, order.CompletedAt)

	assert.Equal(t, int64(10), quantity(store, productP1), "un activo nunca descontó")
	assert.Equal(t, int64(5), quantity(store, productP2))
	assert.Empty(t, store.movements, "sin devolución, sin movimientos")
}

func TestCancel_CompletadoDevuelveStock(t *testing.T) {
	store, uc := seedScenario(t)
	_, err := uc.Complete(context.Background(), orderO, actorID)
	require.NoError(t, err)

	order, err := uc.Cancel(context.Background(), orderO, actorID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCanceled, order.Status)
	assert.Nil(t, order.CompletedAt, "cancelar limpia completed_at")

	assert.Equal(t, int64(10), quantity(store, productP1), "vuelve al valor original")
	assert.Equal(t, int64(5), quantity(store, productP2))

	require.Len(t, store.movements, 4, "2 de completar + 2 de cancelar")
	var returned int
	for _, m := range store.movements {
		if m.OperationType == entity.OperationOrderCancellation {
			returned++
			assert.Positive(t, m.Amount, "las devoluciones son entradas")
			assert.Contains(t, m.Reason, "Cancelación del pedido completado #"+orderO)
		}
	}
	assert.Equal(t, 2, returned)
}

func TestCancel_CanceladoRechazado(t *testing.T) {
	store, uc := seedScenario(t)
	store.orders[orderO].Status = entity.OrderStatusCanceled

	_, err := uc.Cancel(context.Background(), orderO, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, store.movements)
}

// ── Restore ───────────────────────────────────────────────────────────────────

func TestRestore_DescuentaDeNuevo(t *testing.T) {
	store, uc := seedScenario(t)
	_, err := uc.Cancel(context.Background(), orderO, actorID)
	require.NoError(t, err)

	order, err := uc.Restore(context.Background(), orderO, actorID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusActive, order.Status)
	assert.Nil(t, order.CanceledAt)
	assert.Nil(t, order.CompletedAt)

	// Reactivar vuelve a comprometer el stock de cada línea.
	assert.Equal(t, int64(7), quantity(store, productP1))
	assert.Equal(t, int64(0), quantity(store, productP2))

	require.Len(t, store.movements, 2)
	for _, m := range store.movements {
		assert.Equal(t, entity.OperationOrderRestoration, m.OperationType)
		assert.Negative(t, m.Amount)
		assert.Contains(t, m.Reason, "Reactivación del pedido #"+orderO)
	}
}

func TestRestore_StockInsuficiente_TodoONada(t *testing.T) {
	store, uc := seedScenario(t)
	_, err := uc.Cancel(context.Background(), orderO, actorID)
	require.NoError(t, err)
	store.stocks[stockKey(productP2, warehouseW)].Quantity = 2

	_, err = uc.Restore(context.Background(), orderO, actorID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), quantity(store, productP1), "sin descuento parcial")
	assert.Equal(t, int64(2), quantity(store, productP2))
	assert.Empty(t, store.movements)
	assert.Equal(t, entity.OrderStatusCanceled, store.orders[orderO].Status)
}

func TestRestore_NoCancelado_Rechazado(t *testing.T) {
	for _, status := range []string{entity.OrderStatusActive, entity.OrderStatusCompleted} {
		store, uc := seedScenario(t)
		store.orders[orderO].Status = status

		_, err := uc.Restore(context.Background(), orderO, actorID)
		require.Error(t, err, "status %s", status)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Empty(t, store.movements)
	}
}

func TestRestore_CanceladoConMarcaDeCompletado_Rechazado(t *testing.T) {
	// Estado inconsistente con el invariante (canceled + completed_at): la
	// guarda lo rechaza en vez de volver a descontar.
	store, uc := seedScenario(t)
	now := time.Now()
	store.orders[orderO].Status = entity.OrderStatusCanceled
	store.orders[orderO].CompletedAt = &now

	_, err := uc.Restore(context.Background(), orderO, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ── Propiedades de conjunto ───────────────────────────────────────────────────

// Round-trip: complete → cancel → restore deja cada fila de stock con el valor
// inmediatamente posterior al complete original y el pedido en active.
func TestRoundTrip_CompleteCancelRestore(t *testing.T) {
	store, uc := seedScenario(t)
	ctx := context.Background()

	_, err := uc.Complete(ctx, orderO, actorID)
	require.NoError(t, err)
	p1AfterComplete := quantity(store, productP1)
	p2AfterComplete := quantity(store, productP2)

	_, err = uc.Cancel(ctx, orderO, actorID)
	require.NoError(t, err)

	order, err := uc.Restore(ctx, orderO, actorID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusActive, order.Status)
	assert.Equal(t, p1AfterComplete, quantity(store, productP1))
	assert.Equal(t, p2AfterComplete, quantity(store, productP2))

	// Conservación: la suma de movimientos por fila coincide con el delta neto.
	sums := map[string]int64{}
	for _, m := range store.movements {
		sums[m.StockID] += m.Amount
	}
	assert.Equal(t, int64(-3), sums["s-1"], "-3 +3 -3")
	assert.Equal(t, int64(-5), sums["s-2"], "-5 +5 -5")
}

// El log de movimientos reconstruye la cantidad de cada fila: cantidad inicial
// más la suma de amounts debe dar la cantidad final.
func TestMovimientos_ReconstruyenCantidad(t *testing.T) {
	store, uc := seedScenario(t)
	ctx := context.Background()

	_, err := uc.Complete(ctx, orderO, actorID)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, orderO, actorID)
	require.NoError(t, err)

	var sumP1 int64
	for _, m := range store.movements {
		if m.StockID == "s-1" {
			sumP1 += m.Amount
		}
	}
	assert.Equal(t, int64(10)+sumP1, quantity(store, productP1))
}

func TestErrores_SeDistinguenEntreSi(t *testing.T) {
	shortage := &domain.StockShortageError{ProductID: productP1, WarehouseID: warehouseW, Available: 1, Required: 2}
	assert.ErrorIs(t, shortage, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, shortage, domain.ErrInvalidTransition)

	transition := &domain.TransitionError{OrderID: orderO, Status: "canceled", Transition: "complete"}
	assert.ErrorIs(t, transition, domain.ErrInvalidTransition)
	assert.NotErrorIs(t, transition, domain.ErrInsufficientStock)

	missing := &domain.StockMissingError{ProductID: productP1, WarehouseID: warehouseW}
	assert.ErrorIs(t, missing, domain.ErrStockNotFound)
	assert.False(t, errors.Is(missing, domain.ErrInsufficientStock))
}
