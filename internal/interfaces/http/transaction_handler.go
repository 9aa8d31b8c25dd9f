package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/query"
)

// TransactionHandler lecturas del ledger (protegido).
type TransactionHandler struct {
	uc *query.TransactionQueryUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *query.TransactionQueryUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// List godoc
// @Summary      Listar transacciones del ledger
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        user_id     query  string  false  "Filtrar por actor"
// @Param        type        query  string  false  "stock_in | stock_out"
// @Param        from        query  string  false  "RFC3339"
// @Param        to          query  string  false  "RFC3339"
// @Success      200  {array}   dto.TransactionViewDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	f := query.Filter{
		ProductID: c.Query("product_id"),
		UserID:    c.Query("user_id"),
		Type:      c.Query("type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida"})
		}
		f.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida"})
		}
		f.To = &t
	}

	list, err := h.uc.List(c.Context(), GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}

// ListForUser lista las transacciones ejecutadas por un usuario.
func (h *TransactionHandler) ListForUser(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, err := h.uc.ListForUser(c.Context(), GetActor(c), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "transactions": list})
}
