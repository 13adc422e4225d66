package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	appinv "github.com/jhoicas/gametech-stock/internal/application/inventory"
)

// WarehouseHandler maneja las peticiones HTTP de depósitos (protegido).
type WarehouseHandler struct {
	session *appinv.Session
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(session *appinv.Session) *WarehouseHandler {
	return &WarehouseHandler{session: session}
}

// List godoc
// @Summary      Listar depósitos
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WarehouseResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.session.Warehouses())
}

// Reload godoc
// @Summary      Recargar depósitos desde la base
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WarehouseReloadResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/warehouses/reload [post]
func (h *WarehouseHandler) Reload(c *fiber.Ctx) error {
	n, err := h.session.ReloadWarehouses(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.WarehouseReloadResponse{Loaded: n})
}
