package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
)

// memProductRepo mapa en memoria, suficiente para el CRUD de metadatos.
type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) UpdateStock(_ context.Context, id string, newStock decimal.Decimal) error {
	r.products[id].CurrentStock = newStock
	return nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	stored := r.products[p.ID]
	stored.Name = p.Name
	stored.Unit = p.Unit
	stored.Category = p.Category
	stored.StorageLocationID = p.StorageLocationID
	stored.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *memProductRepo) SetActive(_ context.Context, id string, active bool) error {
	r.products[id].IsActive = active
	return nil
}

func (r *memProductRepo) List(_ context.Context, onlyActive bool, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if onlyActive && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock(_ context.Context, threshold decimal.Decimal, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.IsActive && p.CurrentStock.LessThan(threshold) {
			out = append(out, p)
		}
	}
	return out, nil
}

func writerActor() policy.Actor {
	return policy.Actor{UserID: "u-1", Role: entity.RoleMasterInventoryHandler}
}

func TestProductCreate_SiembraSaldoConStockInicial(t *testing.T) {
	repo := newMemProductRepo()
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.Create(context.Background(), writerActor(), dto.CreateProductRequest{
		Name:         "Harina",
		Unit:         "kg",
		Category:     "granos",
		OpeningStock: decimal.RequireFromString("12.345"),
	})
	require.NoError(t, err)

	assert.True(t, out.OpeningStock.Equal(decimal.RequireFromString("12.35")),
		"el stock inicial se redondea a la escala del ledger")
	assert.True(t, out.CurrentStock.Equal(out.OpeningStock),
		"el saldo actual arranca igual al inicial")
	assert.True(t, out.IsActive)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, writerActor(), dto.CreateProductRequest{Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre requerido")

	_, err = uc.Create(ctx, writerActor(), dto.CreateProductRequest{Name: "Sal"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unidad requerida")

	_, err = uc.Create(ctx, writerActor(), dto.CreateProductRequest{
		Name: "Sal", Unit: "kg", OpeningStock: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock inicial negativo")
}

func TestProductCreate_NombreDuplicadoEntreActivos(t *testing.T) {
	repo := newMemProductRepo()
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, writerActor(), dto.CreateProductRequest{Name: "Arroz", Unit: "kg"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, writerActor(), dto.CreateProductRequest{Name: "Arroz", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"dos productos activos no pueden compartir nombre")
}

func TestProductCreate_NombreLibreTrasDesactivar(t *testing.T) {
	repo := newMemProductRepo()
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, writerActor(), dto.CreateProductRequest{Name: "Café", Unit: "kg"})
	require.NoError(t, err)
	require.NoError(t, uc.Deactivate(ctx, writerActor(), created.ID))

	_, err = uc.Create(ctx, writerActor(), dto.CreateProductRequest{Name: "Café", Unit: "kg"})
	assert.NoError(t, err, "el nombre de un producto inactivo queda libre")
}

func TestProductCreate_RolSoloLectura(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())
	actor := policy.Actor{UserID: "u-2", Role: entity.RoleStockInManager}

	_, err := uc.Create(context.Background(), actor, dto.CreateProductRequest{Name: "Sal", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProductUpdate_NoTocaSaldos(t *testing.T) {
	repo := newMemProductRepo()
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, writerActor(), dto.CreateProductRequest{
		Name: "Azúcar", Unit: "kg", OpeningStock: decimal.RequireFromString("20"),
	})
	require.NoError(t, err)

	// Un movimiento externo cambia el saldo; la edición de metadatos no debe
	// pisarlo.
	repo.products[created.ID].CurrentStock = decimal.RequireFromString("14")

	updated, err := uc.Update(ctx, writerActor(), created.ID, dto.UpdateProductRequest{
		Name: "Azúcar refinada",
		Unit: "lb",
	})
	require.NoError(t, err)

	assert.Equal(t, "Azúcar refinada", updated.Name)
	assert.Equal(t, "lb", updated.Unit)
	assert.True(t, repo.products[created.ID].CurrentStock.Equal(decimal.RequireFromString("14")),
		"editar metadatos nunca modifica current_stock")
	assert.True(t, repo.products[created.ID].OpeningStock.Equal(decimal.RequireFromString("20")),
		"opening_stock es inmutable tras la creación")
}

func TestProductUpdate_RenombreADuplicado(t *testing.T) {
	repo := newMemProductRepo()
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	_, err := uc.Create(ctx, writerActor(), dto.CreateProductRequest{Name: "Sal", Unit: "kg"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, writerActor(), dto.CreateProductRequest{Name: "Pimienta", Unit: "kg"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, writerActor(), second.ID, dto.UpdateProductRequest{Name: "Sal"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductDeactivate_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newMemProductRepo())
	err := uc.Deactivate(context.Background(), writerActor(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductListLowStock_FiltraPorUmbral(t *testing.T) {
	repo := newMemProductRepo()
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	low, err := uc.Create(ctx, writerActor(), dto.CreateProductRequest{
		Name: "Canela", Unit: "kg", OpeningStock: decimal.RequireFromString("2"),
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, writerActor(), dto.CreateProductRequest{
		Name: "Avena", Unit: "kg", OpeningStock: decimal.RequireFromString("50"),
	})
	require.NoError(t, err)

	out, err := uc.ListLowStock(ctx, writerActor(), decimal.RequireFromString("10"), 20, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, low.ID, out[0].ID)
}
