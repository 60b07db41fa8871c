package models

// Role groups users for the module permission matrix. System roles
// (Super Admin, Region Admin) cannot be deleted.
type Role struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"unique;not null" json:"name" binding:"required"`
	Description  string `json:"description"`
	IsSystemRole bool   `gorm:"default:false" json:"is_system_role"`
}

// RolePermission is one cell row of the matrix: what a role may do in
// one module. Modules without a row default to no access.
type RolePermission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	RoleID     uint   `gorm:"uniqueIndex:idx_role_module;not null" json:"role_id"`
	ModuleCode string `gorm:"uniqueIndex:idx_role_module;not null" json:"module_code"`
	CanView    bool   `gorm:"default:false" json:"can_view"`
	CanEdit    bool   `gorm:"default:false" json:"can_edit"`
}
