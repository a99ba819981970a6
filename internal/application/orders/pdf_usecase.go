package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// OrderLineForPDF línea de pedido enriquecida para la hoja imprimible.
type OrderLineForPDF struct {
	ProductName string
	Count       int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// OrderPDFGenerator puerto del generador de la hoja de pedido.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, warehouse *entity.Warehouse, lines []OrderLineForPDF, total decimal.Decimal) ([]byte, error)
}

// PDFUseCase arma la hoja imprimible de un pedido: cabecera, líneas con precio
// vigente del producto y total.
type PDFUseCase struct {
	orderRepo     repository.OrderRepository
	warehouseRepo repository.WarehouseRepository
	generator     OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(orderRepo repository.OrderRepository, warehouseRepo repository.WarehouseRepository, generator OrderPDFGenerator) *PDFUseCase {
	return &PDFUseCase{orderRepo: orderRepo, warehouseRepo: warehouseRepo, generator: generator}
}

// Generate devuelve los bytes del PDF del pedido.
func (uc *PDFUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(order.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound
	}

	lines := make([]OrderLineForPDF, 0, len(order.Items))
	total := decimal.Zero
	for _, it := range order.Items {
		line := OrderLineForPDF{Count: it.Count}
		if it.Product != nil {
			line.ProductName = it.Product.Name
			line.UnitPrice = it.Product.Price
			line.Subtotal = it.Product.Price.Mul(decimal.NewFromInt(it.Count))
		}
		total = total.Add(line.Subtotal)
		lines = append(lines, line)
	}

	return uc.generator.GenerateOrderPDF(ctx, order, warehouse, lines, total)
}
