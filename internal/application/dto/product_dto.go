package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// CreateProductRequest alta de producto. OpeningStock siembra CurrentStock.
type CreateProductRequest struct {
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	Category          string          `json:"category"`
	StorageLocationID string          `json:"storage_location_id"`
	OpeningStock      decimal.Decimal `json:"opening_stock"`
}

// UpdateProductRequest edición de metadatos. No permite tocar saldos:
// current_stock solo cambia vía movimientos del ledger.
type UpdateProductRequest struct {
	Name              string `json:"name"`
	Unit              string `json:"unit"`
	Category          string `json:"category"`
	StorageLocationID string `json:"storage_location_id"`
}

// ProductDTO respuesta de producto.
type ProductDTO struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	Category          string          `json:"category,omitempty"`
	StorageLocationID string          `json:"storage_location_id,omitempty"`
	OpeningStock      decimal.Decimal `json:"opening_stock"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToProductDTO convierte la entidad a DTO.
func ToProductDTO(p *entity.Product) ProductDTO {
	return ProductDTO{
		ID:                p.ID,
		Name:              p.Name,
		Unit:              p.Unit,
		Category:          p.Category,
		StorageLocationID: p.StorageLocationID,
		OpeningStock:      p.OpeningStock,
		CurrentStock:      p.CurrentStock,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
