package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockHandler maneja los movimientos de stock (protegido).
type StockHandler struct {
	uc *ledger.RecordMovementUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.RecordMovementUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity, po_number, remarks"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	return h.record(c, entity.TransactionTypeStockIn)
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, quantity, so_number, remarks"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK incluye available y requested"
// @Router       /api/stock/out [post]
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	return h.record(c, entity.TransactionTypeStockOut)
}

func (h *StockHandler) record(c *fiber.Ctx, txType string) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.RecordMovement(c.Context(), GetActor(c), ledger.MovementInput{
		ProductID:       in.ProductID,
		Type:            txType,
		Quantity:        in.Quantity,
		Remarks:         in.Remarks,
		SONumber:        in.SONumber,
		PONumber:        in.PONumber,
		OriginalUnit:    in.OriginalUnit,
		TransactionDate: in.TransactionDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		Transaction: dto.ToTransactionDTO(result.Transaction),
		Product:     dto.ToProductDTO(result.Product),
	})
}

// StockInBatch registra un lote de entradas; resultados por ítem.
func (h *StockHandler) StockInBatch(c *fiber.Ctx) error {
	return h.recordBatch(c, entity.TransactionTypeStockIn)
}

// StockOutBatch registra un lote de salidas; resultados por ítem.
func (h *StockHandler) StockOutBatch(c *fiber.Ctx) error {
	return h.recordBatch(c, entity.TransactionTypeStockOut)
}

// recordBatch aplica cada ítem como transacción independiente y reporta cada
// resultado por separado: los éxitos quedan confirmados aunque otros ítems
// fallen. Devuelve 207 si hubo resultados mixtos.
func (h *StockHandler) recordBatch(c *fiber.Ctx, txType string) error {
	var in dto.BatchMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote vacío"})
	}
	items := make([]ledger.BatchItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, ledger.BatchItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	results := h.uc.RecordBatch(c.Context(), GetActor(c), ledger.BatchInput{
		Type:            txType,
		Items:           items,
		Remarks:         in.Remarks,
		SONumber:        in.SONumber,
		PONumber:        in.PONumber,
		TransactionDate: in.TransactionDate,
	})

	out := make([]dto.BatchItemResponse, 0, len(results))
	failures := 0
	for _, r := range results {
		item := dto.BatchItemResponse{ProductID: r.ProductID, OK: r.Err == nil}
		if r.Err != nil {
			failures++
			_, body := errorBody(r.Err)
			item.Error = &body
		} else {
			item.Movement = &dto.MovementResponse{
				Transaction: dto.ToTransactionDTO(r.Movement.Transaction),
				Product:     dto.ToProductDTO(r.Movement.Product),
			}
		}
		out = append(out, item)
	}

	status := fiber.StatusCreated
	if failures > 0 && failures < len(results) {
		status = fiber.StatusMultiStatus
	} else if failures == len(results) {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{"results": out})
}
