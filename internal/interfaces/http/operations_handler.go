package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// OperationsHandler vistas del libro por tipo de operación (protegido).
type OperationsHandler struct {
	uc *inventory.MoveUseCase
}

// NewOperationsHandler construye el handler.
func NewOperationsHandler(uc *inventory.MoveUseCase) *OperationsHandler {
	return &OperationsHandler{uc: uc}
}

// Receipts godoc
// @Summary      Listar recepciones
// @Description  Movimientos con origen de tipo vendor (entrada de mercancía).
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Buscar por referencia, producto u origen"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.MoveListResponse
// @Router       /api/operations/receipts [get]
func (h *OperationsHandler) Receipts(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.Receipts(c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Deliveries godoc
// @Summary      Listar entregas
// @Description  Movimientos con destino de tipo customer (salida de mercancía).
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Buscar por referencia, producto u origen"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.MoveListResponse
// @Router       /api/operations/deliveries [get]
func (h *OperationsHandler) Deliveries(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.Deliveries(c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
