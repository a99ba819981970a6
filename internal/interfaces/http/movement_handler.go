package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/inventory"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/xmlexport"
)

// MovementHandler maneja las peticiones HTTP del log de movimientos y del
// ajuste manual de stock (protegido; el ajuste exige rol admin).
type MovementHandler struct {
	movements *inventory.MovementsUseCase
	adjust    *inventory.AdjustStockUseCase
	exporter  *xmlexport.MovementExporter
}

// NewMovementHandler construye el handler.
func NewMovementHandler(movements *inventory.MovementsUseCase, adjust *inventory.AdjustStockUseCase, exporter *xmlexport.MovementExporter) *MovementHandler {
	return &MovementHandler{movements: movements, adjust: adjust, exporter: exporter}
}

// List godoc
// @Summary      Listar movimientos de stock
// @Description  Log inmutable de auditoría, del más reciente al más antiguo.
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id    query  string  false  "Filtrar por bodega"
// @Param        product_id      query  string  false  "Filtrar por producto"
// @Param        operation_type  query  string  false  "order_completion | order_cancellation | order_restoration | manual_adjustment"
// @Param        date_from       query  string  false  "YYYY-MM-DD"
// @Param        date_to         query  string  false  "YYYY-MM-DD"
// @Param        limit           query  int     false  "Tamaño de página (def. 20, máx. 100)"
// @Param        offset          query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stocks/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter, page, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	list, err := h.movements.List(filter, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de una fila de stock
// @Description  Movimientos de la fila en orden de reconstrucción (ascendente).
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la fila de stock"
// @Param        limit   query  int     false  "Tamaño de página (def. 20, máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stocks/{id}/movements [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.movements.History(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// ExportXML godoc
// @Summary      Exportar movimientos como XML de auditoría
// @Tags         stocks
// @Security     Bearer
// @Produce      application/xml
// @Param        warehouse_id    query  string  false  "Filtrar por bodega"
// @Param        product_id      query  string  false  "Filtrar por producto"
// @Param        operation_type  query  string  false  "Filtrar por tipo de operación"
// @Param        date_from       query  string  false  "YYYY-MM-DD"
// @Param        date_to         query  string  false  "YYYY-MM-DD"
// @Param        limit           query  int     false  "Tamaño de página (def. 20, máx. 100)"
// @Param        offset          query  int     false  "Desplazamiento"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stocks/movements/export [get]
func (h *MovementHandler) ExportXML(c *fiber.Ctx) error {
	filter, page, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	list, err := h.movements.List(filter, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.exporter.Export(list, time.Now())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.xml"`)
	return c.Send(data)
}

// Adjust godoc
// @Summary      Ajuste manual de stock (admin)
// @Description  Aplica un delta con signo y deja el movimiento manual_adjustment. Puede dejar la cantidad en negativo.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, warehouse_id, delta (≠ 0), reason (opcional)"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/adjust [post]
func (h *MovementHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	newQty, err := h.adjust.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Delta:       in.Delta,
		Reason:      in.Reason,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"quantity": newQty})
}

func (h *MovementHandler) parseFilter(c *fiber.Ctx) (repository.MovementFilter, dto.PageRequest, error) {
	var in dto.MovementIndexRequest
	if err := c.QueryParser(&in); err != nil {
		return repository.MovementFilter{}, dto.PageRequest{}, err
	}
	in.DefaultPage()
	filter := repository.MovementFilter{
		WarehouseID:   in.WarehouseID,
		ProductID:     in.ProductID,
		OperationType: in.OperationType,
	}
	var err error
	if filter.From, err = parseDate(in.DateFrom, false); err != nil {
		return repository.MovementFilter{}, dto.PageRequest{}, err
	}
	if filter.To, err = parseDate(in.DateTo, true); err != nil {
		return repository.MovementFilter{}, dto.PageRequest{}, err
	}
	return filter, in.PageRequest, nil
}
