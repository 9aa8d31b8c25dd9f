package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. Solo metadatos: los saldos se mueven
// exclusivamente vía el motor de movimientos (ledger).
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. OpeningStock siembra CurrentStock y después es
// inmutable.
func (uc *ProductUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateProductRequest) (*dto.ProductDTO, error) {
	if !actor.Can(policy.OpProductWrite) {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OpeningStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsActive {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	opening := in.OpeningStock.Round(2)
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		Unit:              in.Unit,
		Category:          in.Category,
		StorageLocationID: in.StorageLocationID,
		OpeningStock:      opening,
		CurrentStock:      opening,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ToProductDTO(product)
	return &out, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor policy.Actor, id string) (*dto.ProductDTO, error) {
	if !actor.Can(policy.OpProductRead) {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ToProductDTO(product)
	return &out, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, actor policy.Actor, onlyActive bool, limit, offset int) ([]dto.ProductDTO, error) {
	if !actor.Can(policy.OpProductRead) {
		return nil, domain.ErrUnauthorized
	}
	products, err := uc.repo.List(ctx, onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductDTO(p))
	}
	return out, nil
}

// ListLowStock lista productos activos por debajo del umbral.
func (uc *ProductUseCase) ListLowStock(ctx context.Context, actor policy.Actor, threshold decimal.Decimal, limit, offset int) ([]dto.ProductDTO, error) {
	if !actor.Can(policy.OpProductRead) {
		return nil, domain.ErrUnauthorized
	}
	products, err := uc.repo.ListLowStock(ctx, threshold, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductDTO(p))
	}
	return out, nil
}

// Update edita metadatos. No toca current_stock ni opening_stock: una edición
// concurrente con un movimiento no puede corromper el saldo.
func (uc *ProductUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductDTO, error) {
	if !actor.Can(policy.OpProductWrite) {
		return nil, domain.ErrUnauthorized
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" && in.Name != product.Name {
		existing, err := uc.repo.GetByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.IsActive {
			return nil, domain.ErrDuplicate
		}
		product.Name = in.Name
	}
	if in.Unit != "" {
		product.Unit = in.Unit
	}
	product.Category = in.Category
	product.StorageLocationID = in.StorageLocationID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.ToProductDTO(product)
	return &out, nil
}

// Deactivate marca el producto como inactivo (soft-delete). El historial del
// ledger se conserva.
func (uc *ProductUseCase) Deactivate(ctx context.Context, actor policy.Actor, id string) error {
	return uc.setActive(ctx, actor, id, false)
}

// Activate reactiva un producto.
func (uc *ProductUseCase) Activate(ctx context.Context, actor policy.Actor, id string) error {
	return uc.setActive(ctx, actor, id, true)
}

func (uc *ProductUseCase) setActive(ctx context.Context, actor policy.Actor, id string, active bool) error {
	if !actor.Can(policy.OpProductWrite) {
		return domain.ErrUnauthorized
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetActive(ctx, id, active)
}
