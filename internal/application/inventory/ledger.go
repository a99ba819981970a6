package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// Ledger libro mayor de stock: aplica deltas con signo sobre las filas de stock
// y registra el movimiento de auditoría correspondiente, siempre dentro de la
// transacción del caller (los repos recibidos deben estar atados a la tx).
//
// El Ledger no impone piso a la cantidad: verificar suficiencia antes de restar
// es responsabilidad de quien lo invoca (el ciclo de vida del pedido).
type Ledger struct {
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
}

// NewLedger construye el libro mayor sobre repositorios atados a una transacción.
func NewLedger(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) *Ledger {
	return &Ledger{stockRepo: stockRepo, movRepo: movRepo}
}

// Entry un ajuste de stock con su contexto de auditoría.
type Entry struct {
	ProductID   string
	WarehouseID string
	Delta       int64 // positivo = entrada, negativo = salida
	Operation   string
	SourceType  string
	SourceID    string
	Reason      string
	UserID      string
	At          time.Time
}

// Apply ajusta la cantidad de la fila (producto, bodega) con el delta de la
// entrada y registra exactamente un movimiento. Devuelve la cantidad resultante.
// Si la fila no existe retorna StockMissingError; nada queda a medias porque el
// ajuste y el movimiento comparten transacción.
func (l *Ledger) Apply(e Entry) (int64, error) {
	stock, err := l.stockRepo.AdjustQuantity(e.ProductID, e.WarehouseID, e.Delta)
	if err != nil {
		return 0, err
	}
	if stock == nil {
		return 0, &domain.StockMissingError{ProductID: e.ProductID, WarehouseID: e.WarehouseID}
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		StockID:       stock.ID,
		Amount:        e.Delta,
		OperationType: e.Operation,
		SourceType:    e.SourceType,
		SourceID:      e.SourceID,
		Reason:        e.Reason,
		UserID:        e.UserID,
		CreatedAt:     e.At,
	}
	if err := l.movRepo.Create(mov); err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}
