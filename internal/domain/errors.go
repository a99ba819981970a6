package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Los tipos con contexto de más
// abajo envuelven a estos centinelas, de modo que errors.Is siga funcionando en
// la capa HTTP.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStockNotFound      = errors.New("sin registro de stock para el producto en la bodega")
	ErrWarehouseNotFound  = errors.New("bodega no encontrada")
	ErrPersistence        = errors.New("error de persistencia") // reintentable por el caller
)

// TransitionError precondición de estado no cumplida en el ciclo de vida del pedido.
type TransitionError struct {
	OrderID    string
	Status     string // estado actual del pedido
	Transition string // complete, cancel, restore
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("pedido %s en estado %q no admite la transición %q", e.OrderID, e.Status, e.Transition)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// StockShortageError una línea requiere más unidades de las disponibles.
type StockShortageError struct {
	ProductID   string
	WarehouseID string
	Available   int64
	Required    int64
}

func (e *StockShortageError) Error() string {
	return fmt.Sprintf("stock insuficiente del producto %s en bodega %s: disponible %d, requerido %d",
		e.ProductID, e.WarehouseID, e.Available, e.Required)
}

func (e *StockShortageError) Unwrap() error { return ErrInsufficientStock }

// StockMissingError no existe fila de stock para (producto, bodega); equivale a
// disponibilidad cero y es falla dura en complete/restore.
type StockMissingError struct {
	ProductID   string
	WarehouseID string
}

func (e *StockMissingError) Error() string {
	return fmt.Sprintf("el producto %s no tiene registro de stock en la bodega %s", e.ProductID, e.WarehouseID)
}

func (e *StockMissingError) Unwrap() error { return ErrStockNotFound }
