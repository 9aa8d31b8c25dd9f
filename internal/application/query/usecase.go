// Package query expone la vista de solo lectura del ledger: entradas
// filtradas y unidas con producto y usuario.
package query

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TransactionQueryUseCase lecturas filtradas del ledger. Solo lee estado
// confirmado; nunca modifica nada.
type TransactionQueryUseCase struct {
	txRepo repository.TransactionRepository
}

// NewTransactionQueryUseCase construye el caso de uso.
func NewTransactionQueryUseCase(txRepo repository.TransactionRepository) *TransactionQueryUseCase {
	return &TransactionQueryUseCase{txRepo: txRepo}
}

// Filter filtros aceptados por List. Campos vacíos no filtran.
type Filter struct {
	ProductID string
	UserID    string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// List devuelve las entradas del ledger ordenadas por fecha descendente.
// Referencias rotas (usuario o producto borrado) salen como campos null,
// no como error.
func (uc *TransactionQueryUseCase) List(ctx context.Context, actor policy.Actor, f Filter) ([]dto.TransactionViewDTO, error) {
	if !actor.Can(policy.OpTransactionQuery) {
		return nil, domain.ErrUnauthorized
	}
	if f.Type != "" && f.Type != entity.TransactionTypeStockIn && f.Type != entity.TransactionTypeStockOut {
		return nil, domain.ErrInvalidInput
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	views, err := uc.txRepo.List(ctx, repository.TransactionFilter{
		ProductID: f.ProductID,
		UserID:    f.UserID,
		Type:      f.Type,
		From:      f.From,
		To:        f.To,
		Limit:     f.Limit,
		Offset:    f.Offset,
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransactionViewDTO, 0, len(views))
	for _, v := range views {
		item := dto.TransactionViewDTO{TransactionDTO: dto.ToTransactionDTO(&v.Transaction)}
		if v.Product != nil {
			item.ProductName = &v.Product.Name
			item.ProductUnit = &v.Product.Unit
		}
		if v.User != nil {
			item.UserName = &v.User.Name
		}
		out = append(out, item)
	}
	return out, nil
}

// ListForUser atajo: entradas ejecutadas por un usuario concreto.
func (uc *TransactionQueryUseCase) ListForUser(ctx context.Context, actor policy.Actor, userID string, limit, offset int) ([]dto.TransactionViewDTO, error) {
	return uc.List(ctx, actor, Filter{UserID: userID, Limit: limit, Offset: offset})
}
