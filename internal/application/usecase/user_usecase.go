package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var validRoles = map[string]bool{
	entity.RoleSuperAdmin:             true,
	entity.RoleStockInManager:         true,
	entity.RoleStockOutManager:        true,
	entity.RoleMasterInventoryHandler: true,
}

// UserUseCase CRUD de usuarios. Restringido a super_admin por la política.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario con la contraseña hasheada con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, actor policy.Actor, in dto.CreateUserRequest) (*dto.UserDTO, error) {
	if !actor.Can(policy.OpUserManage) {
		return nil, domain.ErrUnauthorized
	}
	if in.Username == "" || len(in.Password) < 8 || !validRoles[in.Role] {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Username
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.ToUserDTO(user)
	return &out, nil
}

// List lista usuarios.
func (uc *UserUseCase) List(ctx context.Context, actor policy.Actor, limit, offset int) ([]dto.UserDTO, error) {
	if !actor.Can(policy.OpUserManage) {
		return nil, domain.ErrUnauthorized
	}
	users, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserDTO(u))
	}
	return out, nil
}

// Update edita nombre, rol o estado de un usuario.
func (uc *UserUseCase) Update(ctx context.Context, actor policy.Actor, id string, in dto.UpdateUserRequest) (*dto.UserDTO, error) {
	if !actor.Can(policy.OpUserManage) {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Role != "" {
		if !validRoles[in.Role] {
			return nil, domain.ErrInvalidInput
		}
		user.Role = in.Role
	}
	if in.Status != "" {
		if in.Status != entity.UserStatusActive && in.Status != entity.UserStatusInactive {
			return nil, domain.ErrInvalidInput
		}
		user.Status = in.Status
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := dto.ToUserDTO(user)
	return &out, nil
}
