package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	TransactionTypeStockIn  = "stock_in"
	TransactionTypeStockOut = "stock_out"
)

// StockTransaction es una entrada inmutable del ledger de movimientos.
// Se crea exactamente una vez, en la misma transacción de BD que actualiza el
// saldo del producto, y nunca se modifica ni se borra.
//
// PreviousStock y NewStock son la foto del saldo antes y después de aplicar el
// movimiento: leídas en orden de commit, NewStock de la entrada N es igual a
// PreviousStock de la entrada N+1 para el mismo producto.
type StockTransaction struct {
	ID               string
	ProductID        string
	UserID           string // actor que ejecutó el movimiento
	Type             string // stock_in | stock_out
	Quantity         decimal.Decimal // magnitud, siempre positiva
	PreviousStock    decimal.Decimal
	NewStock         decimal.Decimal
	Remarks          string
	SONumber         string // salidas: orden de venta
	PONumber         string // entradas: orden de compra
	OriginalQuantity string // cantidad tal como llegó, si tenía más de 2 decimales
	OriginalUnit     string
	TransactionDate  time.Time
	CreatedAt        time.Time
}
