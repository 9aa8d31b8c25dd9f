package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// DashboardHandler métricas derivadas (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Monthly devuelve el movimiento por día del mes indicado (?year=&month=).
func (h *DashboardHandler) Monthly(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	if year == 0 || month == 0 {
		now := time.Now()
		year, month = now.Year(), int(now.Month())
	}
	result, err := h.uc.GetMonthlyMovement(c.Context(), year, time.Month(month))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.JSON(result)
}

// Analytics devuelve el reporte de analítica de inventario.
func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	result, err := h.uc.GetInventoryAnalytics(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
