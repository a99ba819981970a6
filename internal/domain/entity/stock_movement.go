package entity

import "time"

// Tipos de operación que generan movimientos de stock. La lista es extensible:
// nuevos orígenes (compras, devoluciones) agregan su propia constante.
const (
	OperationOrderCompletion   = "order_completion"
	OperationOrderCancellation = "order_cancellation"
	OperationOrderRestoration  = "order_restoration"
	OperationManualAdjustment  = "manual_adjustment"
)

// Tipos de entidad origen del movimiento (referencia polimórfica tipada).
const (
	SourceTypeOrder = "order"
	SourceTypeUser  = "user"
)

// StockMovement registro inmutable de auditoría: un cambio con signo sobre una fila
// de stock. Nunca se actualiza ni se borra; el historial de cantidades de cualquier
// stock se reconstruye ordenando por (stock_id, created_at, id).
type StockMovement struct {
	ID            string
	StockID       string
	Amount        int64  // positivo = entrada, negativo = salida
	OperationType string // ver constantes Operation*
	SourceType    string // ver constantes SourceType*
	SourceID      string
	Reason        string // comentario libre, opcional
	UserID        string // actor, vacío si anónimo/sistema
	CreatedAt     time.Time
}
