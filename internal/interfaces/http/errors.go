package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// errorBody mapea un error de dominio a código HTTP y cuerpo.
// Los errores de autorización no revelan si el recurso existe; los de stock
// insuficiente incluyen disponible vs solicitado para que el caller pueda
// renderizar el mensaje.
func errorBody(err error) (int, dto.ErrorResponse) {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente",
			Details: map[string]any{
				"product_id": insufficient.ProductID,
				"available":  insufficient.Available.String(),
				"requested":  insufficient.Requested.String(),
			},
		}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"}
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
	case errors.Is(err, domain.ErrProductInactive):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "PRODUCT_INACTIVE", Message: "producto inactivo"}
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"}
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "permisos insuficientes"}
	case errors.Is(err, domain.ErrBusy):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "BUSY", Message: "producto bloqueado por otro movimiento, reintentar"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

// respondError serializa el error mapeado.
func respondError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	return c.Status(status).JSON(body)
}
