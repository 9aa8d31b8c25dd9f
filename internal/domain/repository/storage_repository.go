package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StorageRepository puerto para la taxonomía de ubicaciones de almacenamiento.
type StorageRepository interface {
	CreateLocation(ctx context.Context, loc *entity.StorageLocation) error
	GetLocation(ctx context.Context, id string) (*entity.StorageLocation, error)
	ListLocations(ctx context.Context) ([]*entity.StorageLocation, error)
	UpdateLocation(ctx context.Context, loc *entity.StorageLocation) error
	DeleteLocation(ctx context.Context, id string) error

	CreateDimension(ctx context.Context, dim *entity.StorageDimension) error
	ListDimensions(ctx context.Context, locationID string) ([]*entity.StorageDimension, error)
	DeleteDimension(ctx context.Context, id string) error
}
