package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockMovementRequest cuerpo de POST /api/stock/in y /api/stock/out.
// Quantity llega como string para validar el parseo en el caso de uso y
// conservar la precisión original del caller.
type StockMovementRequest struct {
	ProductID       string     `json:"product_id"`
	Quantity        string     `json:"quantity"`
	Remarks         string     `json:"remarks"`
	PONumber        string     `json:"po_number"`
	SONumber        string     `json:"so_number"`
	OriginalUnit    string     `json:"original_unit"`
	TransactionDate *time.Time `json:"transaction_date"`
}

// BatchMovementItem un par producto/cantidad dentro de un lote.
type BatchMovementItem struct {
	ProductID string `json:"product_id"`
	Quantity  string `json:"quantity"`
}

// BatchMovementRequest cuerpo de POST /api/stock/{in,out}/batch.
// Los metadatos se comparten entre todos los ítems.
type BatchMovementRequest struct {
	Items           []BatchMovementItem `json:"items"`
	Remarks         string              `json:"remarks"`
	PONumber        string              `json:"po_number"`
	SONumber        string              `json:"so_number"`
	TransactionDate *time.Time          `json:"transaction_date"`
}

// MovementResponse movimiento aplicado: entrada del ledger + producto actualizado.
type MovementResponse struct {
	Transaction TransactionDTO `json:"transaction"`
	Product     ProductDTO     `json:"product"`
}

// BatchItemResponse resultado individual de un ítem del lote.
// Un fallo en un ítem no revierte los demás.
type BatchItemResponse struct {
	ProductID string             `json:"product_id"`
	OK        bool               `json:"ok"`
	Movement  *MovementResponse  `json:"movement,omitempty"`
	Error     *ErrorResponse     `json:"error,omitempty"`
}

// TransactionDTO entrada del ledger serializable.
type TransactionDTO struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	UserID           string          `json:"user_id"`
	Type             string          `json:"type"`
	Quantity         decimal.Decimal `json:"quantity"`
	PreviousStock    decimal.Decimal `json:"previous_stock"`
	NewStock         decimal.Decimal `json:"new_stock"`
	Remarks          string          `json:"remarks,omitempty"`
	SONumber         string          `json:"so_number,omitempty"`
	PONumber         string          `json:"po_number,omitempty"`
	OriginalQuantity string          `json:"original_quantity,omitempty"`
	OriginalUnit     string          `json:"original_unit,omitempty"`
	TransactionDate  time.Time       `json:"transaction_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TransactionViewDTO entrada del ledger con producto y usuario unidos.
// Producto o usuario pueden venir null si la referencia ya no existe.
type TransactionViewDTO struct {
	TransactionDTO
	ProductName *string `json:"product_name"`
	ProductUnit *string `json:"product_unit"`
	UserName    *string `json:"user_name"`
}

// ToTransactionDTO convierte la entidad del ledger a DTO.
func ToTransactionDTO(t *entity.StockTransaction) TransactionDTO {
	return TransactionDTO{
		ID:               t.ID,
		ProductID:        t.ProductID,
		UserID:           t.UserID,
		Type:             t.Type,
		Quantity:         t.Quantity,
		PreviousStock:    t.PreviousStock,
		NewStock:         t.NewStock,
		Remarks:          t.Remarks,
		SONumber:         t.SONumber,
		PONumber:         t.PONumber,
		OriginalQuantity: t.OriginalQuantity,
		OriginalUnit:     t.OriginalUnit,
		TransactionDate:  t.TransactionDate,
		CreatedAt:        t.CreatedAt,
	}
}
