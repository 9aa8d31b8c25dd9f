// Package ledger implementa el motor de movimientos de stock: aplica un
// movimiento firmado (entrada o salida) sobre exactamente un producto, de
// forma atómica con el append de su entrada en el ledger.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ledgerScale escala fija del ledger. Cantidades con más decimales se
// redondean y el valor original se conserva en OriginalQuantity.
const ledgerScale = 2

// RecordMovementUseCase aplica movimientos de stock de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) sobre el producto y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner TxRunner
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para registrar un movimiento.
// Quantity viaja como string: el caso de uso valida el parseo y decide si hay
// que conservar la precisión original.
type MovementInput struct {
	ProductID       string
	Type            string // stock_in | stock_out
	Quantity        string
	Remarks         string
	SONumber        string
	PONumber        string
	OriginalUnit    string
	TransactionDate *time.Time // nil = fecha de commit
}

// MovementResult producto actualizado + entrada insertada en el ledger.
type MovementResult struct {
	Transaction *entity.StockTransaction
	Product     *entity.Product
}

// BatchItemResult resultado individual de un ítem de lote: o Movement o Err.
type BatchItemResult struct {
	ProductID string
	Movement  *MovementResult
	Err       error
}

// RecordStockIn registra una entrada de stock.
func (uc *RecordMovementUseCase) RecordStockIn(ctx context.Context, actor policy.Actor, in MovementInput) (*MovementResult, error) {
	in.Type = entity.TransactionTypeStockIn
	return uc.RecordMovement(ctx, actor, in)
}

// RecordStockOut registra una salida de stock.
func (uc *RecordMovementUseCase) RecordStockOut(ctx context.Context, actor policy.Actor, in MovementInput) (*MovementResult, error) {
	in.Type = entity.TransactionTypeStockOut
	return uc.RecordMovement(ctx, actor, in)
}

// RecordMovement valida y aplica un movimiento como unidad atómica:
//
//  1. política de acceso (sin tocar la BD si se deniega)
//  2. parseo de cantidad (> 0, redondeo a escala del ledger)
//  3. dentro de la transacción: usuario existe, producto existe y activo,
//     fila del producto bloqueada, suficiencia en salidas, escritura del
//     nuevo saldo y append de la entrada del ledger
//
// Bajo llamadas concurrentes sobre el mismo producto, el bloqueo de fila
// serializa la secuencia leer-validar-escribir: cada movimiento ve el efecto
// del anterior y los snapshots previous/new encadenan sin saltos.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, actor policy.Actor, in MovementInput) (*MovementResult, error) {
	var op policy.Operation
	switch in.Type {
	case entity.TransactionTypeStockIn:
		op = policy.OpStockIn
	case entity.TransactionTypeStockOut:
		op = policy.OpStockOut
	default:
		return nil, domain.ErrInvalidInput
	}
	if !actor.Can(op) {
		return nil, domain.ErrUnauthorized
	}
	if in.ProductID == "" || actor.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	qty, err := decimal.NewFromString(in.Quantity)
	if err != nil {
		return nil, domain.ErrInvalidQuantity
	}
	rounded := qty.Round(ledgerScale)
	if !rounded.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	// Precisión extra no se trunca en silencio: se conserva el valor crudo.
	originalQuantity := ""
	if !rounded.Equal(qty) {
		originalQuantity = in.Quantity
	}

	var result *MovementResult
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		userRepo repository.UserRepository,
	) error {
		actorUser, err := userRepo.GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if actorUser == nil {
			return domain.ErrUserNotFound
		}

		// Bloquea la fila del producto: punto de serialización del motor.
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if !product.IsActive {
			return domain.ErrProductInactive
		}

		previous := product.CurrentStock
		var newStock decimal.Decimal
		if in.Type == entity.TransactionTypeStockIn {
			newStock = previous.Add(rounded)
		} else {
			if previous.LessThan(rounded) {
				return &domain.InsufficientStockError{
					ProductID: product.ID,
					Available: previous,
					Requested: rounded,
				}
			}
			newStock = previous.Sub(rounded)
		}

		if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
			return err
		}

		now := time.Now()
		txDate := now
		if in.TransactionDate != nil {
			txDate = *in.TransactionDate
		}
		entry := &entity.StockTransaction{
			ID:               uuid.New().String(),
			ProductID:        product.ID,
			UserID:           actor.UserID,
			Type:             in.Type,
			Quantity:         rounded,
			PreviousStock:    previous,
			NewStock:         newStock,
			Remarks:          in.Remarks,
			SONumber:         in.SONumber,
			PONumber:         in.PONumber,
			OriginalQuantity: originalQuantity,
			OriginalUnit:     in.OriginalUnit,
			TransactionDate:  txDate,
			CreatedAt:        now,
		}
		if err := txRepo.Create(ctx, entry); err != nil {
			return err
		}

		product.CurrentStock = newStock
		product.UpdatedAt = now
		result = &MovementResult{Transaction: entry, Product: product}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BatchInput lote de pares producto/cantidad con metadatos compartidos.
type BatchInput struct {
	Type            string
	Items           []BatchItem
	Remarks         string
	SONumber        string
	PONumber        string
	TransactionDate *time.Time
}

// BatchItem un par producto/cantidad.
type BatchItem struct {
	ProductID string
	Quantity  string
}

// RecordBatch aplica cada ítem como unidad atómica independiente, en orden.
// Un fallo (ej. stock insuficiente) no revierte los ítems ya confirmados:
// cada resultado se reporta por separado y el caller decide qué hacer con el
// lote. No hay modo todo-o-nada.
func (uc *RecordMovementUseCase) RecordBatch(ctx context.Context, actor policy.Actor, in BatchInput) []BatchItemResult {
	results := make([]BatchItemResult, 0, len(in.Items))
	for _, item := range in.Items {
		mov, err := uc.RecordMovement(ctx, actor, MovementInput{
			ProductID:       item.ProductID,
			Type:            in.Type,
			Quantity:        item.Quantity,
			Remarks:         in.Remarks,
			SONumber:        in.SONumber,
			PONumber:        in.PONumber,
			TransactionDate: in.TransactionDate,
		})
		results = append(results, BatchItemResult{ProductID: item.ProductID, Movement: mov, Err: err})
	}
	return results
}
