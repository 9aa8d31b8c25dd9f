package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore simula la BD: un mutex serializa las transacciones (equivalente al
// bloqueo de fila) y un snapshot al inicio permite revertir si fn falla, igual
// que el Rollback real.
type fakeStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	users    map[string]*entity.User
	ledger   []*entity.StockTransaction

	// inyección de fallo: el insert del ledger falla después de haberse
	// escrito el nuevo saldo
	failLedgerInsert bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[string]*entity.Product{},
		users:    map[string]*entity.User{},
	}
}

func (s *fakeStore) Run(_ context.Context, fn func(repository.ProductRepository, repository.TransactionRepository, repository.UserRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		snapshot[id] = &cp
	}
	ledgerLen := len(s.ledger)

	err := fn(&fakeProductRepo{s}, &fakeTxRepo{s}, &fakeUserRepo{s})
	if err != nil {
		s.products = snapshot
		s.ledger = s.ledger[:ledgerLen]
		return err
	}
	return nil
}

func (s *fakeStore) addProduct(id string, stock decimal.Decimal, active bool) {
	s.products[id] = &entity.Product{
		ID:           id,
		Name:         "producto-" + id,
		Unit:         "kg",
		OpeningStock: stock,
		CurrentStock: stock,
		IsActive:     active,
	}
}

func (s *fakeStore) addUser(id, role string) {
	s.users[id] = &entity.User{ID: id, Username: "u-" + id, Role: role, Status: entity.UserStatusActive}
}

func (s *fakeStore) stockOf(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].CurrentStock
}

func (s *fakeStore) entriesOf(id string) []*entity.StockTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockTransaction
	for _, e := range s.ledger {
		if e.ProductID == id {
			out = append(out, e)
		}
	}
	return out
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *fakeProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) UpdateStock(_ context.Context, id string, newStock decimal.Decimal) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = newStock
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error { return nil }

func (r *fakeProductRepo) SetActive(_ context.Context, id string, active bool) error {
	if p, ok := r.s.products[id]; ok {
		p.IsActive = active
	}
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ bool, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListLowStock(_ context.Context, _ decimal.Decimal, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeTxRepo struct{ s *fakeStore }

func (r *fakeTxRepo) Create(_ context.Context, tx *entity.StockTransaction) error {
	if r.s.failLedgerInsert {
		return errors.New("insert fallido")
	}
	r.s.ledger = append(r.s.ledger, tx)
	return nil
}

func (r *fakeTxRepo) List(_ context.Context, _ repository.TransactionFilter) ([]*repository.TransactionView, error) {
	return nil, nil
}

func (r *fakeTxRepo) ListByProduct(_ context.Context, productID string, _, _ int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, e := range r.s.ledger {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.s.users[id], nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "p-1"
	testUserID    = "u-1"
)

func adminActor() policy.Actor {
	return policy.Actor{UserID: testUserID, Role: entity.RoleSuperAdmin}
}

func setup(stock string) (*fakeStore, *ledger.RecordMovementUseCase) {
	store := newFakeStore()
	store.addProduct(testProductID, decimal.RequireFromString(stock), true)
	store.addUser(testUserID, entity.RoleSuperAdmin)
	return store, ledger.NewRecordMovementUseCase(store)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos básicos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaActualizaSaldoYEncadena(t *testing.T) {
	store, uc := setup("10.00")
	ctx := context.Background()

	first, err := uc.RecordStockIn(ctx, adminActor(), ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "5",
		PONumber:  "PO-001",
	})
	require.NoError(t, err)
	assert.True(t, first.Transaction.PreviousStock.Equal(decimal.RequireFromString("10")),
		"previous_stock debe ser el saldo antes del movimiento")
	assert.True(t, first.Transaction.NewStock.Equal(decimal.RequireFromString("15")))
	assert.Equal(t, "PO-001", first.Transaction.PONumber)

	second, err := uc.RecordStockIn(ctx, adminActor(), ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "2.50",
	})
	require.NoError(t, err)
	assert.True(t, second.Transaction.PreviousStock.Equal(first.Transaction.NewStock),
		"el previous del segundo movimiento debe encadenar con el new del primero")
	assert.True(t, store.stockOf(testProductID).Equal(decimal.RequireFromString("17.5")))
}

func TestRecordMovement_SalidaExactaDejaSaldoCero(t *testing.T) {
	store, uc := setup("7.25")

	result, err := uc.RecordStockOut(context.Background(), adminActor(), ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "7.25",
		SONumber:  "SO-042",
	})
	require.NoError(t, err)
	assert.True(t, result.Transaction.NewStock.IsZero(), "la salida exacta debe dejar saldo 0")
	assert.True(t, store.stockOf(testProductID).IsZero())
}

func TestRecordMovement_SalidaInsuficiente_NoCambiaNada(t *testing.T) {
	store, uc := setup("3.00")

	_, err := uc.RecordStockOut(context.Background(), adminActor(), ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "5",
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient, "debe ser el error estructurado de stock insuficiente")
	assert.True(t, insufficient.Available.Equal(decimal.RequireFromString("3")))
	assert.True(t, insufficient.Requested.Equal(decimal.RequireFromString("5")))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "debe matchear el sentinel vía errors.Is")

	assert.True(t, store.stockOf(testProductID).Equal(decimal.RequireFromString("3")),
		"el saldo no debe cambiar ante un rechazo")
	assert.Empty(t, store.entriesOf(testProductID), "no debe quedar entrada en el ledger")
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	_, uc := setup("10")

	_, err := uc.RecordStockIn(context.Background(), adminActor(), ledger.MovementInput{
		ProductID: "no-existe",
		Quantity:  "1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordMovement_ProductoInactivo(t *testing.T) {
	store, uc := setup("10")
	store.products[testProductID].IsActive = false

	_, err := uc.RecordStockIn(context.Background(), adminActor(), ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "1",
	})
	assert.ErrorIs(t, err, domain.ErrProductInactive)
}

func TestRecordMovement_UsuarioInexistente(t *testing.T) {
	_, uc := setup("10")
	actor := policy.Actor{UserID: "fantasma", Role: entity.RoleSuperAdmin}

	_, err := uc.RecordStockIn(context.Background(), actor, ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "1",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de cantidades
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_CantidadInvalida(t *testing.T) {
	store, uc := setup("10")

	for _, quantity := range []string{"abc", "", "0", "-3", "0.004"} {
		_, err := uc.RecordStockIn(context.Background(), adminActor(), ledger.MovementInput{
			ProductID: testProductID,
			Quantity:  quantity,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %q debe rechazarse", quantity)
	}
	assert.Empty(t, store.entriesOf(testProductID))
}

func TestRecordMovement_PrecisionOriginalSeConserva(t *testing.T) {
	_, uc := setup("10")

	result, err := uc.RecordStockIn(context.Background(), adminActor(), ledger.MovementInput{
		ProductID:    testProductID,
		Quantity:     "3.456",
		OriginalUnit: "lb",
	})
	require.NoError(t, err)
	assert.True(t, result.Transaction.Quantity.Equal(decimal.RequireFromString("3.46")),
		"la cantidad aplicada se redondea a la escala del ledger")
	assert.Equal(t, "3.456", result.Transaction.OriginalQuantity,
		"el valor crudo debe conservarse cuando el redondeo lo altera")
	assert.Equal(t, "lb", result.Transaction.OriginalUnit)
}

func TestRecordMovement_CantidadYaEnEscala_SinOriginal(t *testing.T) {
	_, uc := setup("10")

	result, err := uc.RecordStockIn(context.Background(), adminActor(), ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "2.50",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Transaction.OriginalQuantity,
		"sin pérdida de precisión no se guarda cantidad original")
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de acceso
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_RolSinPermiso(t *testing.T) {
	store, uc := setup("10")
	store.addUser("u-out", entity.RoleStockOutManager)
	actor := policy.Actor{UserID: "u-out", Role: entity.RoleStockOutManager}

	_, err := uc.RecordStockIn(context.Background(), actor, ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "1",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"stock_out_manager no puede registrar entradas")

	_, err = uc.RecordStockOut(context.Background(), actor, ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "1",
	})
	assert.NoError(t, err, "stock_out_manager sí puede registrar salidas")
}

func TestRecordMovement_TipoDesconocido(t *testing.T) {
	_, uc := setup("10")

	_, err := uc.RecordMovement(context.Background(), adminActor(), ledger.MovementInput{
		ProductID: testProductID,
		Type:      "ajuste",
		Quantity:  "1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_FalloEnLedger_RevierteSaldo(t *testing.T) {
	store, uc := setup("10")
	store.failLedgerInsert = true

	_, err := uc.RecordStockIn(context.Background(), adminActor(), ledger.MovementInput{
		ProductID: testProductID,
		Quantity:  "4",
	})
	require.Error(t, err)
	assert.True(t, store.stockOf(testProductID).Equal(decimal.RequireFromString("10")),
		"si el append del ledger falla el saldo debe revertirse")
	assert.Empty(t, store.entriesOf(testProductID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordBatch_ExitoParcial(t *testing.T) {
	store, uc := setup("10")
	store.addProduct("p-2", decimal.RequireFromString("1"), true)
	store.addProduct("p-3", decimal.RequireFromString("8"), true)

	results := uc.RecordBatch(context.Background(), adminActor(), ledger.BatchInput{
		Type: entity.TransactionTypeStockOut,
		Items: []ledger.BatchItem{
			{ProductID: testProductID, Quantity: "6"},
			{ProductID: "p-2", Quantity: "5"}, // insuficiente
			{ProductID: "p-3", Quantity: "2"},
		},
		Remarks: "despacho semanal",
	})
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrInsufficientStock)
	assert.NoError(t, results[2].Err)

	assert.True(t, store.stockOf(testProductID).Equal(decimal.RequireFromString("4")),
		"los ítems exitosos quedan confirmados aunque otro falle")
	assert.True(t, store.stockOf("p-2").Equal(decimal.RequireFromString("1")),
		"el ítem rechazado no cambia su saldo")
	assert.True(t, store.stockOf("p-3").Equal(decimal.RequireFromString("6")))

	assert.Equal(t, "despacho semanal", results[0].Movement.Transaction.Remarks,
		"los metadatos compartidos del lote llegan a cada entrada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Con N salidas concurrentes de q unidades sobre un saldo B, deben confirmarse
// exactamente floor(B/q) y el resto rechazarse por insuficiencia. El saldo
// nunca puede quedar negativo y los snapshots deben encadenar sin saltos.
func TestRecordMovement_SalidasConcurrentes_NuncaNegativo(t *testing.T) {
	store, uc := setup("10")
	ctx := context.Background()

	const workers = 20
	quantity := "3"

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RecordStockOut(ctx, adminActor(), ledger.MovementInput{
				ProductID: testProductID,
				Quantity:  quantity,
			})
		}(i)
	}
	wg.Wait()

	confirmed := 0
	for _, err := range errs {
		if err == nil {
			confirmed++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 3, confirmed, "con saldo 10 y salidas de 3 caben exactamente 3")
	assert.True(t, store.stockOf(testProductID).Equal(decimal.RequireFromString("1")))

	// Verificación de encadenamiento: ordenadas por commit, cada entrada parte
	// del saldo que dejó la anterior.
	entries := store.entriesOf(testProductID)
	require.Len(t, entries, 3)
	expected := decimal.RequireFromString("10")
	for _, e := range entries {
		assert.True(t, e.PreviousStock.Equal(expected),
			"previous_stock debe ser el new_stock de la entrada anterior")
		expected = e.NewStock
	}
	assert.True(t, expected.Equal(decimal.RequireFromString("1")))
}
