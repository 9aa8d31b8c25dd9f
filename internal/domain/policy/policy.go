// Package policy centraliza el mapeo rol → operación. Toda decisión de
// permisos pasa por aquí; ningún caso de uso ni handler rederiva permisos
// con switches sobre strings de rol.
package policy

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Operation identifica una operación protegida.
type Operation string

const (
	OpStockIn          Operation = "stock_in"
	OpStockOut         Operation = "stock_out"
	OpProductRead      Operation = "product_read"
	OpProductWrite     Operation = "product_write"
	OpTransactionQuery Operation = "transaction_query"
	OpUserManage       Operation = "user_manage"
	OpStorageManage    Operation = "storage_manage"
	OpDashboardView    Operation = "dashboard_view"
)

// Actor es la identidad explícita con la que se invoca cada caso de uso.
// Se construye desde los claims del JWT; el núcleo nunca lee estado de
// sesión global.
type Actor struct {
	UserID string
	Role   string
}

// tabla estática rol → operaciones permitidas.
var allowed = map[string]map[Operation]bool{
	entity.RoleSuperAdmin: {
		OpStockIn: true, OpStockOut: true,
		OpProductRead: true, OpProductWrite: true,
		OpTransactionQuery: true, OpUserManage: true,
		OpStorageManage: true, OpDashboardView: true,
	},
	entity.RoleMasterInventoryHandler: {
		OpStockIn: true, OpStockOut: true,
		OpProductRead: true, OpProductWrite: true,
		OpTransactionQuery: true,
		OpStorageManage:    true, OpDashboardView: true,
	},
	entity.RoleStockInManager: {
		OpStockIn: true, OpProductRead: true, OpDashboardView: true,
	},
	entity.RoleStockOutManager: {
		OpStockOut: true, OpProductRead: true, OpDashboardView: true,
	},
}

// Allowed indica si el rol puede ejecutar la operación.
// Roles desconocidos no tienen ningún permiso.
func Allowed(role string, op Operation) bool {
	return allowed[role][op]
}

// Can indica si el actor puede ejecutar la operación.
func (a Actor) Can(op Operation) bool {
	return Allowed(a.Role, op)
}
