package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StorageRepository = (*StorageRepo)(nil)

// StorageRepo taxonomía de ubicaciones y dimensiones sobre PostgreSQL.
type StorageRepo struct {
	q Querier
}

// NewStorageRepository construye el adaptador.
func NewStorageRepository(q Querier) *StorageRepo {
	return &StorageRepo{q: q}
}

// CreateLocation persiste una ubicación.
func (r *StorageRepo) CreateLocation(ctx context.Context, loc *entity.StorageLocation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO storage_locations (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		loc.ID, loc.Name, loc.Description, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert storage location: %w", err)
	}
	return nil
}

// GetLocation obtiene una ubicación por ID.
func (r *StorageRepo) GetLocation(ctx context.Context, id string) (*entity.StorageLocation, error) {
	var l entity.StorageLocation
	err := r.q.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM storage_locations WHERE id = $1`, id).
		Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage location: %w", err)
	}
	return &l, nil
}

// ListLocations lista todas las ubicaciones.
func (r *StorageRepo) ListLocations(ctx context.Context) ([]*entity.StorageLocation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM storage_locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list storage locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var l entity.StorageLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateLocation actualiza nombre y descripción.
func (r *StorageRepo) UpdateLocation(ctx context.Context, loc *entity.StorageLocation) error {
	_, err := r.q.Exec(ctx, `
		UPDATE storage_locations SET name = $2, description = $3, updated_at = $4
		WHERE id = $1`,
		loc.ID, loc.Name, loc.Description, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update storage location: %w", err)
	}
	return nil
}

// DeleteLocation elimina la ubicación y sus dimensiones (cascade).
func (r *StorageRepo) DeleteLocation(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM storage_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete storage location: %w", err)
	}
	return nil
}

// CreateDimension persiste una dimensión.
func (r *StorageRepo) CreateDimension(ctx context.Context, dim *entity.StorageDimension) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO storage_dimensions (id, location_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		dim.ID, dim.LocationID, dim.Name, dim.CreatedAt, dim.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert storage dimension: %w", err)
	}
	return nil
}

// ListDimensions lista dimensiones; locationID vacío lista todas.
func (r *StorageRepo) ListDimensions(ctx context.Context, locationID string) ([]*entity.StorageDimension, error) {
	query := `SELECT id, location_id, name, created_at, updated_at FROM storage_dimensions`
	args := []any{}
	if locationID != "" {
		query += ` WHERE location_id = $1`
		args = append(args, locationID)
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list storage dimensions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageDimension
	for rows.Next() {
		var d entity.StorageDimension
		if err := rows.Scan(&d.ID, &d.LocationID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage dimension: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// DeleteDimension elimina una dimensión.
func (r *StorageRepo) DeleteDimension(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM storage_dimensions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete storage dimension: %w", err)
	}
	return nil
}
