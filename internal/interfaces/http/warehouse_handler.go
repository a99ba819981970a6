package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP de bodegas (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WarehouseRequest  true  "name"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWarehouseResponse(warehouse))
}

// GetByID godoc
// @Summary      Consultar bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	warehouse, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(warehouse))
}

// Update godoc
// @Summary      Renombrar bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la bodega"
// @Param        body  body  dto.WarehouseRequest true  "name"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(warehouse))
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (def. 20, máx. 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.ToWarehouseResponse(w))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la bodega"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "bodega eliminada"})
}

// Stocks godoc
// @Summary      Existencias de la bodega
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la bodega"
// @Param        limit   query  int     false  "Tamaño de página (def. 20, máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/stocks [get]
func (h *WarehouseHandler) Stocks(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.Stocks(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToStockResponse(s))
	}
	return c.JSON(out)
}
