package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleModel represents the roles table. The four system roles are seeded at
// process start and cached in the RoleRegistry; nothing creates roles lazily
// per request.
type RoleModel struct {
	RoleID          uuid.UUID `gorm:"type:uuid;primaryKey;column:role_id" json:"id"`
	RoleName        string    `gorm:"type:varchar(50);unique;not null;column:role_name" json:"name"`
	RoleDescription string    `gorm:"type:text;column:role_description" json:"description"`

	RoleCreatedAt time.Time `gorm:"autoCreateTime;column:role_created_at" json:"created_at"`
	RoleUpdatedAt time.Time `gorm:"autoUpdateTime;column:role_updated_at" json:"updated_at"`
}

func (RoleModel) TableName() string {
	return "roles"
}

func (r *RoleModel) BeforeCreate(tx *gorm.DB) error {
	if r.RoleID == uuid.Nil {
		r.RoleID = uuid.New()
	}
	return nil
}
