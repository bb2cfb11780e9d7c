package service

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/user/model"
)

var defaultRoles = []model.RoleModel{
	{RoleName: constants.RoleSuperAdmin, RoleDescription: "Platform-wide administrator"},
	{RoleName: constants.RoleManagementAdmin, RoleDescription: "School management administrator"},
	{RoleName: constants.RoleTeacher, RoleDescription: "Teaching staff"},
	{RoleName: constants.RoleStudentParent, RoleDescription: "Student or parent account"},
}

// RoleRegistry caches the roles table in memory. It is populated once at
// process start; request handlers never get-or-create roles on the fly.
type RoleRegistry struct {
	mu     sync.RWMutex
	byName map[string]model.RoleModel
}

func NewRoleRegistry() *RoleRegistry {
	return &RoleRegistry{byName: make(map[string]model.RoleModel)}
}

// Load seeds any missing system role and caches the full table.
func (r *RoleRegistry) Load(db *gorm.DB) error {
	for _, def := range defaultRoles {
		role := def
		if err := db.Where("role_name = ?", def.RoleName).
			FirstOrCreate(&role, model.RoleModel{RoleName: def.RoleName, RoleDescription: def.RoleDescription}).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", def.RoleName, err)
		}
	}

	var roles []model.RoleModel
	if err := db.Find(&roles).Error; err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName = make(map[string]model.RoleModel, len(roles))
	for _, role := range roles {
		r.byName[role.RoleName] = role
	}
	return nil
}

func (r *RoleRegistry) Get(name string) (model.RoleModel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.byName[name]
	return role, ok
}

func (r *RoleRegistry) MustGet(name string) (model.RoleModel, error) {
	role, ok := r.Get(name)
	if !ok {
		return model.RoleModel{}, fmt.Errorf("role %q is not registered", name)
	}
	return role, nil
}
