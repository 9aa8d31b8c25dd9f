package dto

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateLocationRequest alta de ubicación de almacenamiento.
type CreateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LocationDTO respuesta de ubicación.
type LocationDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateLocationRequest edición de ubicación.
type UpdateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateDimensionRequest alta de dimensión dentro de una ubicación.
type CreateDimensionRequest struct {
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
}

// DimensionDTO respuesta de dimensión.
type DimensionDTO struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToLocationDTO convierte la entidad a DTO.
func ToLocationDTO(l *entity.StorageLocation) LocationDTO {
	return LocationDTO{ID: l.ID, Name: l.Name, Description: l.Description, CreatedAt: l.CreatedAt}
}

// ToDimensionDTO convierte la entidad a DTO.
func ToDimensionDTO(d *entity.StorageDimension) DimensionDTO {
	return DimensionDTO{ID: d.ID, LocationID: d.LocationID, Name: d.Name, CreatedAt: d.CreatedAt}
}
