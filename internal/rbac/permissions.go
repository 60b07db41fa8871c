// Package rbac resolves the module permission matrix for a role.
// Modules a role has no row for default to no access.
package rbac

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trip_dispatch/internal/apperrors"
	"trip_dispatch/internal/models"
)

// ModuleCodes is the fixed set of permissionable modules.
var ModuleCodes = []string{"dashboard", "trips", "trip_tracking", "vehicles", "users", "roles", "settings"}

type Permission struct {
	View bool `json:"view"`
	Edit bool `json:"edit"`
}

type PermissionSet map[string]Permission

type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// PermissionsFor returns the full matrix row for a role, with every
// known module present and defaulting to {false, false}.
func (r *Resolver) PermissionsFor(roleID uint) (PermissionSet, error) {
	permissions := PermissionSet{}
	for _, code := range ModuleCodes {
		permissions[code] = Permission{}
	}

	var rows []models.RolePermission
	if err := r.db.Where("role_id = ?", roleID).Find(&rows).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	for _, row := range rows {
		permissions[row.ModuleCode] = Permission{View: row.CanView, Edit: row.CanEdit}
	}
	return permissions, nil
}

// CanEdit is the common single-module check used by mutating handlers.
func (r *Resolver) CanEdit(roleID uint, module string) (bool, error) {
	permissions, err := r.PermissionsFor(roleID)
	if err != nil {
		return false, err
	}
	return permissions[module].Edit, nil
}

func (r *Resolver) ListRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Order("name ASC").Find(&roles).Error; err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return roles, nil
}

func (r *Resolver) CreateRole(name, description string) (*models.Role, error) {
	role := models.Role{Name: name, Description: description}
	if err := r.db.Create(&role).Error; err != nil {
		return nil, apperrors.FromDB(err, "Role name already exists")
	}
	return &role, nil
}

// DeleteRole refuses to remove system roles. Permission rows for the
// role are removed with it.
func (r *Resolver) DeleteRole(id uint) error {
	var role models.Role
	if err := r.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFoundf("Role not found")
		}
		return apperrors.FromDB(err, "")
	}
	if role.IsSystemRole {
		return apperrors.Conflictf("Cannot delete system roles")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, id).Error
	})
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	return nil
}

// ModulePermission is one matrix cell submitted by the admin UI.
type ModulePermission struct {
	ModuleCode string `json:"module_code" binding:"required"`
	CanView    bool   `json:"can_view"`
	CanEdit    bool   `json:"can_edit"`
}

// UpdateRolePermissions upserts the submitted cells in one
// transaction. Cells not submitted keep their current values.
func (r *Resolver) UpdateRolePermissions(roleID uint, permissions []ModulePermission) error {
	var role models.Role
	if err := r.db.First(&role, roleID).Error; err != nil {
		return apperrors.NotFoundf("Role not found")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range permissions {
			row := models.RolePermission{
				RoleID:     roleID,
				ModuleCode: p.ModuleCode,
				CanView:    p.CanView,
				CanEdit:    p.CanEdit,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "role_id"}, {Name: "module_code"}},
				DoUpdates: clause.AssignmentColumns([]string{"can_view", "can_edit"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.FromDB(err, "")
	}
	return nil
}
