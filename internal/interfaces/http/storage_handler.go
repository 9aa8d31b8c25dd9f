package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// StorageHandler taxonomía de ubicaciones y dimensiones de almacenamiento.
type StorageHandler struct {
	uc *usecase.StorageUseCase
}

// NewStorageHandler construye el handler.
func NewStorageHandler(uc *usecase.StorageUseCase) *StorageHandler {
	return &StorageHandler{uc: uc}
}

// CreateLocation crea una ubicación de almacenamiento.
func (h *StorageHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.CreateLocation(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

// ListLocations lista las ubicaciones.
func (h *StorageHandler) ListLocations(c *fiber.Ctx) error {
	list, err := h.uc.ListLocations(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "locations": list})
}

// UpdateLocation modifica una ubicación.
func (h *StorageHandler) UpdateLocation(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.UpdateLocation(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(loc)
}

// DeleteLocation elimina una ubicación y sus dimensiones.
func (h *StorageHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.uc.DeleteLocation(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ubicación eliminada"})
}

// CreateDimension crea una dimensión dentro de una ubicación.
func (h *StorageHandler) CreateDimension(c *fiber.Ctx) error {
	var in dto.CreateDimensionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.LocationID = c.Params("id")
	dim, err := h.uc.CreateDimension(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dim)
}

// ListDimensions lista las dimensiones de una ubicación.
func (h *StorageHandler) ListDimensions(c *fiber.Ctx) error {
	list, err := h.uc.ListDimensions(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "dimensions": list})
}

// DeleteDimension elimina una dimensión.
func (h *StorageHandler) DeleteDimension(c *fiber.Ctx) error {
	if err := h.uc.DeleteDimension(c.Context(), GetActor(c), c.Params("dimensionId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "dimensión eliminada"})
}
