package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/query"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// stubTxRepo devuelve vistas preparadas y captura el filtro recibido.
type stubTxRepo struct {
	views      []*repository.TransactionView
	lastFilter repository.TransactionFilter
}

func (s *stubTxRepo) Create(_ context.Context, _ *entity.StockTransaction) error { return nil }

func (s *stubTxRepo) List(_ context.Context, f repository.TransactionFilter) ([]*repository.TransactionView, error) {
	s.lastFilter = f
	return s.views, nil
}

func (s *stubTxRepo) ListByProduct(_ context.Context, _ string, _, _ int) ([]*entity.StockTransaction, error) {
	return nil, nil
}

func adminActor() policy.Actor {
	return policy.Actor{UserID: "u-1", Role: entity.RoleSuperAdmin}
}

func sampleView(withRefs bool) *repository.TransactionView {
	v := &repository.TransactionView{
		Transaction: entity.StockTransaction{
			ID:        "t-1",
			ProductID: "p-1",
			UserID:    "u-1",
			Type:      entity.TransactionTypeStockOut,
			Quantity:  decimal.RequireFromString("2.5"),
		},
	}
	if withRefs {
		v.Product = &entity.Product{ID: "p-1", Name: "Harina", Unit: "kg"}
		v.User = &entity.User{ID: "u-1", Name: "Ana"}
	}
	return v
}

func TestList_MapeaProductoYUsuario(t *testing.T) {
	repo := &stubTxRepo{views: []*repository.TransactionView{sampleView(true)}}
	uc := query.NewTransactionQueryUseCase(repo)

	out, err := uc.List(context.Background(), adminActor(), query.Filter{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	require.NotNil(t, out[0].ProductName)
	assert.Equal(t, "Harina", *out[0].ProductName)
	require.NotNil(t, out[0].ProductUnit)
	assert.Equal(t, "kg", *out[0].ProductUnit)
	require.NotNil(t, out[0].UserName)
	assert.Equal(t, "Ana", *out[0].UserName)
}

func TestList_ReferenciaRota_CamposNull(t *testing.T) {
	repo := &stubTxRepo{views: []*repository.TransactionView{sampleView(false)}}
	uc := query.NewTransactionQueryUseCase(repo)

	out, err := uc.List(context.Background(), adminActor(), query.Filter{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Nil(t, out[0].ProductName, "producto borrado sale como null, no como error")
	assert.Nil(t, out[0].UserName)
	assert.Equal(t, "t-1", out[0].ID, "la entrada del ledger se devuelve igual")
}

func TestList_RolSinPermiso(t *testing.T) {
	uc := query.NewTransactionQueryUseCase(&stubTxRepo{})
	actor := policy.Actor{UserID: "u-2", Role: entity.RoleStockInManager}

	_, err := uc.List(context.Background(), actor, query.Filter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestList_TipoInvalido(t *testing.T) {
	uc := query.NewTransactionQueryUseCase(&stubTxRepo{})

	_, err := uc.List(context.Background(), adminActor(), query.Filter{Type: "ajuste"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_NormalizaPaginacion(t *testing.T) {
	repo := &stubTxRepo{}
	uc := query.NewTransactionQueryUseCase(repo)

	_, err := uc.List(context.Background(), adminActor(), query.Filter{Limit: 0, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastFilter.Limit, "limit por defecto")
	assert.Equal(t, 0, repo.lastFilter.Offset)

	_, err = uc.List(context.Background(), adminActor(), query.Filter{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastFilter.Limit, "limit acotado al máximo")
}

func TestList_PropagaFiltros(t *testing.T) {
	repo := &stubTxRepo{}
	uc := query.NewTransactionQueryUseCase(repo)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	_, err := uc.List(context.Background(), adminActor(), query.Filter{
		ProductID: "p-9",
		Type:      entity.TransactionTypeStockIn,
		From:      &from,
		To:        &to,
	})
	require.NoError(t, err)
	assert.Equal(t, "p-9", repo.lastFilter.ProductID)
	assert.Equal(t, entity.TransactionTypeStockIn, repo.lastFilter.Type)
	assert.Equal(t, &from, repo.lastFilter.From)
	assert.Equal(t, &to, repo.lastFilter.To)
}

func TestListForUser_FiltraPorUsuario(t *testing.T) {
	repo := &stubTxRepo{}
	uc := query.NewTransactionQueryUseCase(repo)

	_, err := uc.ListForUser(context.Background(), adminActor(), "u-7", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "u-7", repo.lastFilter.UserID)
	assert.Equal(t, 10, repo.lastFilter.Limit)
}
