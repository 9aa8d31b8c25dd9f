package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/policy"
)

func TestAllowed_SuperAdminTieneTodo(t *testing.T) {
	ops := []policy.Operation{
		policy.OpStockIn, policy.OpStockOut, policy.OpProductRead, policy.OpProductWrite,
		policy.OpTransactionQuery, policy.OpUserManage, policy.OpStorageManage, policy.OpDashboardView,
	}
	for _, op := range ops {
		assert.True(t, policy.Allowed(entity.RoleSuperAdmin, op), "super_admin debe poder %s", op)
	}
}

func TestAllowed_MasterHandler_SinGestionDeUsuarios(t *testing.T) {
	role := entity.RoleMasterInventoryHandler

	assert.True(t, policy.Allowed(role, policy.OpStockIn))
	assert.True(t, policy.Allowed(role, policy.OpStockOut))
	assert.True(t, policy.Allowed(role, policy.OpProductWrite))
	assert.True(t, policy.Allowed(role, policy.OpStorageManage))
	assert.False(t, policy.Allowed(role, policy.OpUserManage),
		"solo super_admin administra usuarios")
}

func TestAllowed_RolesDeMovimiento_SoloSuDireccion(t *testing.T) {
	assert.True(t, policy.Allowed(entity.RoleStockInManager, policy.OpStockIn))
	assert.False(t, policy.Allowed(entity.RoleStockInManager, policy.OpStockOut))

	assert.True(t, policy.Allowed(entity.RoleStockOutManager, policy.OpStockOut))
	assert.False(t, policy.Allowed(entity.RoleStockOutManager, policy.OpStockIn))

	for _, role := range []string{entity.RoleStockInManager, entity.RoleStockOutManager} {
		assert.True(t, policy.Allowed(role, policy.OpProductRead))
		assert.True(t, policy.Allowed(role, policy.OpDashboardView))
		assert.False(t, policy.Allowed(role, policy.OpProductWrite))
		assert.False(t, policy.Allowed(role, policy.OpUserManage))
	}
}

func TestAllowed_RolDesconocido_TodoDenegado(t *testing.T) {
	assert.False(t, policy.Allowed("auditor", policy.OpProductRead))
	assert.False(t, policy.Allowed("", policy.OpStockIn))
}

func TestActor_Can(t *testing.T) {
	actor := policy.Actor{UserID: "u-1", Role: entity.RoleStockInManager}
	assert.True(t, actor.Can(policy.OpStockIn))
	assert.False(t, actor.Can(policy.OpStockOut))
}
