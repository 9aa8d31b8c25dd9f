package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

type stubUserRepo struct {
	users map[string]*entity.User // por username
}

func (r *stubUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.users[username], nil
}

func (r *stubUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }

func (r *stubUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	return nil, nil
}

func buildAuth(t *testing.T, status string) (*auth.AuthUseCase, auth.JWTConfig) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &stubUserRepo{users: map[string]*entity.User{
		"ana": {
			ID:           "u-1",
			Username:     "ana",
			PasswordHash: string(hash),
			Role:         entity.RoleStockInManager,
			Status:       status,
		},
	}}
	cfg := auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "almacen-api-test"}
	return auth.NewAuthUseCase(repo, cfg), cfg
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc, cfg := buildAuth(t, entity.UserStatusActive)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.User.Username)

	userID, role, err := pkgjwt.Parse(cfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, entity.RoleStockInManager, role, "el rol viaja en el token")
}

func TestLogin_FallosIndistinguibles(t *testing.T) {
	uc, _ := buildAuth(t, entity.UserStatusActive)
	ctx := context.Background()

	_, errBadPassword := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "incorrecta"})
	_, errNoUser := uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreta123"})

	assert.ErrorIs(t, errBadPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized,
		"usuario inexistente y contraseña mala devuelven el mismo error")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, _ := buildAuth(t, entity.UserStatusInactive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc, _ := buildAuth(t, entity.UserStatusActive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
