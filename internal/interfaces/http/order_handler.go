package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	crud      *orders.CrudUseCase
	lifecycle *orders.LifecycleUseCase
	pdf       *orders.PDFUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(crud *orders.CrudUseCase, lifecycle *orders.LifecycleUseCase, pdf *orders.PDFUseCase) *OrderHandler {
	return &OrderHandler{crud: crud, lifecycle: lifecycle, pdf: pdf}
}

// Create godoc
// @Summary      Crear pedido
// @Description  El pedido nace en estado active y queda ligado de forma inmutable a la bodega.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderStoreRequest  true  "customer, warehouse_id, items"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.crud.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOrderResponse(order))
}

// GetByID godoc
// @Summary      Consultar pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.crud.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// List godoc
// @Summary      Listar pedidos
// @Description  Filtros combinables por estado, bodega, cliente (subcadena) y rango de fechas de creación.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status        query  string  false  "active | completed | canceled"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        customer      query  string  false  "Subcadena del nombre del cliente"
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Param        limit         query  int     false  "Tamaño de página (def. 20, máx. 100)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.OrderIndexRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	in.DefaultPage()
	if in.Status != "" && !entity.ValidOrderStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status inválido"})
	}
	filter := repository.OrderListFilter{
		Status:      in.Status,
		WarehouseID: in.WarehouseID,
		Customer:    in.Customer,
	}
	var err error
	if filter.DateFrom, err = parseDate(in.DateFrom, false); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from inválida (YYYY-MM-DD)"})
	}
	if filter.DateTo, err = parseDate(in.DateTo, true); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to inválida (YYYY-MM-DD)"})
	}

	list, total, err := h.crud.List(filter, in.Limit, in.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.ToOrderResponse(o))
	}
	return c.JSON(fiber.Map{
		"orders": out,
		"page":   dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	})
}

// Update godoc
// @Summary      Actualizar pedido
// @Description  Cliente y/o reemplazo en bloque de líneas. Estado y bodega no se tocan por esta vía.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del pedido"
// @Param        body  body  dto.OrderUpdateRequest true  "customer y/o items"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.OrderUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.crud.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Delete godoc
// @Summary      Eliminar pedido
// @Description  Borrado físico del pedido y sus líneas. No revierte stock; cancelar antes si se requiere la devolución.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.crud.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "pedido eliminado"})
}

// Complete godoc
// @Summary      Completar pedido
// @Description  Transición active -> completed: descuenta stock y registra movimientos de auditoría.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *fiber.Ctx) error {
	order, err := h.lifecycle.Complete(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Transición {active, completed} -> canceled. Solo devuelve stock si el pedido estaba completed.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.lifecycle.Cancel(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// Restore godoc
// @Summary      Reactivar pedido cancelado
// @Description  Transición canceled -> active, solo para pedidos que nunca quedaron completed. Vuelve a descontar stock.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/restore [post]
func (h *OrderHandler) Restore(c *fiber.Ctx) error {
	order, err := h.lifecycle.Restore(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(order))
}

// PDF godoc
// @Summary      Hoja imprimible del pedido
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	data, err := h.pdf.Generate(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido-`+c.Params("id")+`.pdf"`)
	return c.Send(data)
}

// parseDate interpreta YYYY-MM-DD; endOfDay la corre al último instante del día
// para que los rangos sean inclusivos. Cadena vacía -> nil sin error.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
