package entity

import "time"

// StorageLocation representa una ubicación física de almacenamiento
// (bodega, estante, cuarto frío). Taxonomía de referencia para productos.
type StorageLocation struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StorageDimension representa una dimensión dentro de una ubicación
// (pasillo, nivel, caja).
type StorageDimension struct {
	ID         string
	LocationID string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
