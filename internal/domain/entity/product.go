package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// OpeningStock es la línea base inmutable; CurrentStock es el saldo vivo y solo
// lo muta el motor de movimientos (ledger). Las ediciones de metadatos
// (nombre, unidad, categoría, ubicación) nunca tocan CurrentStock.
type Product struct {
	ID                string
	Name              string // único entre productos activos, case-sensitive
	Unit              string // unidad de medida, opaca para el ledger
	Category          string
	StorageLocationID string // opcional, referencia a storage_locations
	OpeningStock      decimal.Decimal // saldo inicial, inmutable
	CurrentStock      decimal.Decimal // saldo actual, nunca negativo
	IsActive          bool            // soft-delete
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
