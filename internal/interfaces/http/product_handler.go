package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ProductHandler CRUD del catálogo de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase

	lowStockThreshold decimal.Decimal
}

// NewProductHandler construye el handler. lowStockThreshold es el umbral
// configurado para /low-stock cuando el caller no pasa ?threshold.
func NewProductHandler(uc *usecase.ProductUseCase, lowStockThreshold decimal.Decimal) *ProductHandler {
	return &ProductHandler{uc: uc, lowStockThreshold: lowStockThreshold}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, unit, category, opening_stock"
// @Success      201   {object}  dto.ProductDTO
// @Failure      409   {object}  dto.ErrorResponse  "nombre duplicado entre productos activos"
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID devuelve un producto por su ID.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// List lista productos; ?active=true limita a los activos.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	onlyActive := c.QueryBool("active", false)

	list, err := h.uc.List(c.Context(), GetActor(c), onlyActive, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}

// ListLowStock lista productos activos con stock bajo el umbral configurado.
func (h *ProductHandler) ListLowStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	threshold := h.lowStockThreshold
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || parsed.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "umbral inválido"})
		}
		threshold = parsed
	}

	list, err := h.uc.ListLowStock(c.Context(), GetActor(c), threshold, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "products": list})
}

// Update modifica los metadatos del producto. El stock actual solo cambia
// por transacciones del ledger, nunca por esta ruta.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Deactivate marca el producto inactivo; el historial se conserva.
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto desactivado"})
}

// Activate reactiva un producto inactivo.
func (h *ProductHandler) Activate(c *fiber.Ctx) error {
	if err := h.uc.Activate(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto activado"})
}
