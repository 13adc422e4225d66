package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gametech-stock/internal/application/dto"
	appinv "github.com/jhoicas/gametech-stock/internal/application/inventory"
	"github.com/jhoicas/gametech-stock/internal/domain/inventory"
)

// ProductHandler maneja las peticiones HTTP de productos (protegido).
type ProductHandler struct {
	session *appinv.Session
}

// NewProductHandler construye el handler.
func NewProductHandler(session *appinv.Session) *ProductHandler {
	return &ProductHandler{session: session}
}

// Create godoc
// @Summary      Dar de alta un producto
// @Description  El código (P001, P002, ...) lo asigna el sistema. initial_stock > 0 entra como ajuste "Ingreso nuevo".
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.session.RegisterProduct(c.UserContext(), appinv.RegisterProductInput{
		NewProductInput: inventory.NewProductInput{
			Name:         in.Name,
			Category:     in.Category,
			MinimumStock: in.MinimumStock,
			WarehouseID:  in.WarehouseID,
		},
		InitialStock: in.InitialStock,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items := h.session.Products()
	return c.JSON(dto.ProductListResponse{Items: items, Total: len(items)})
}

// Critical godoc
// @Summary      Productos con stock crítico
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products/critical [get]
func (h *ProductHandler) Critical(c *fiber.Ctx) error {
	items := h.session.CriticalProducts()
	return c.JSON(dto.ProductListResponse{Items: items, Total: len(items)})
}

// GetByCode godoc
// @Summary      Obtener producto por código
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code} [get]
func (h *ProductHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.session.FindProduct(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Historial de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del producto"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{code}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	items, err := h.session.ProductHistory(c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementListResponse{Items: items, Total: len(items)})
}
