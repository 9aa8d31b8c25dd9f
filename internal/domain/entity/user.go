package entity

import "time"

// Roles válidos para User. El mapeo rol → operación vive en domain/policy.
const (
	RoleSuperAdmin             = "super_admin"
	RoleStockInManager         = "stock_in_manager"
	RoleStockOutManager        = "stock_out_manager"
	RoleMasterInventoryHandler = "master_inventory_handler"
)

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
