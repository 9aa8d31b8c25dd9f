package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StorageUseCase mantiene la taxonomía de ubicaciones y dimensiones.
type StorageUseCase struct {
	repo repository.StorageRepository
}

// NewStorageUseCase construye el caso de uso.
func NewStorageUseCase(repo repository.StorageRepository) *StorageUseCase {
	return &StorageUseCase{repo: repo}
}

// CreateLocation crea una ubicación.
func (uc *StorageUseCase) CreateLocation(ctx context.Context, actor policy.Actor, in dto.CreateLocationRequest) (*dto.LocationDTO, error) {
	if !actor.Can(policy.OpStorageManage) {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	loc := &entity.StorageLocation{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.CreateLocation(ctx, loc); err != nil {
		return nil, err
	}
	out := dto.ToLocationDTO(loc)
	return &out, nil
}

// ListLocations lista todas las ubicaciones.
func (uc *StorageUseCase) ListLocations(ctx context.Context, actor policy.Actor) ([]dto.LocationDTO, error) {
	if !actor.Can(policy.OpProductRead) {
		return nil, domain.ErrUnauthorized
	}
	locs, err := uc.repo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationDTO, 0, len(locs))
	for _, l := range locs {
		out = append(out, dto.ToLocationDTO(l))
	}
	return out, nil
}

// UpdateLocation edita nombre y descripción de una ubicación.
func (uc *StorageUseCase) UpdateLocation(ctx context.Context, actor policy.Actor, id string, in dto.UpdateLocationRequest) (*dto.LocationDTO, error) {
	if !actor.Can(policy.OpStorageManage) {
		return nil, domain.ErrUnauthorized
	}
	loc, err := uc.repo.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		loc.Name = in.Name
	}
	loc.Description = in.Description
	loc.UpdatedAt = time.Now()
	if err := uc.repo.UpdateLocation(ctx, loc); err != nil {
		return nil, err
	}
	out := dto.ToLocationDTO(loc)
	return &out, nil
}

// DeleteLocation elimina una ubicación.
func (uc *StorageUseCase) DeleteLocation(ctx context.Context, actor policy.Actor, id string) error {
	if !actor.Can(policy.OpStorageManage) {
		return domain.ErrUnauthorized
	}
	loc, err := uc.repo.GetLocation(ctx, id)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.ErrNotFound
	}
	return uc.repo.DeleteLocation(ctx, id)
}

// CreateDimension crea una dimensión dentro de una ubicación.
func (uc *StorageUseCase) CreateDimension(ctx context.Context, actor policy.Actor, in dto.CreateDimensionRequest) (*dto.DimensionDTO, error) {
	if !actor.Can(policy.OpStorageManage) {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.repo.GetLocation(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	dim := &entity.StorageDimension{
		ID:         uuid.New().String(),
		LocationID: in.LocationID,
		Name:       in.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.CreateDimension(ctx, dim); err != nil {
		return nil, err
	}
	out := dto.ToDimensionDTO(dim)
	return &out, nil
}

// ListDimensions lista dimensiones de una ubicación.
func (uc *StorageUseCase) ListDimensions(ctx context.Context, actor policy.Actor, locationID string) ([]dto.DimensionDTO, error) {
	if !actor.Can(policy.OpProductRead) {
		return nil, domain.ErrUnauthorized
	}
	dims, err := uc.repo.ListDimensions(ctx, locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DimensionDTO, 0, len(dims))
	for _, d := range dims {
		out = append(out, dto.ToDimensionDTO(d))
	}
	return out, nil
}

// DeleteDimension elimina una dimensión.
func (uc *StorageUseCase) DeleteDimension(ctx context.Context, actor policy.Actor, id string) error {
	if !actor.Can(policy.OpStorageManage) {
		return domain.ErrUnauthorized
	}
	return uc.repo.DeleteDimension(ctx, id)
}
