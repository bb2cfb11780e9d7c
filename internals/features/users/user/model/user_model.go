package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the users table. Email is the login id; username is
// derived from the email local-part at provisioning time.
type UserModel struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"id"`
	UserName string    `gorm:"size:150;unique;not null;column:username" json:"username"`
	Email    string    `gorm:"size:255;unique;not null;column:email" json:"email"`
	Phone    *string   `gorm:"size:20;column:phone" json:"phone,omitempty"`

	RoleID *uuid.UUID `gorm:"type:uuid;column:role_id" json:"role_id,omitempty"`
	Role   *RoleModel `gorm:"foreignKey:RoleID;references:RoleID" json:"role,omitempty"`

	Credential Credential `gorm:"embedded" json:"-"`

	IsActive   bool `gorm:"not null;default:true;column:is_active" json:"is_active"`
	IsVerified bool `gorm:"not null;default:false;column:is_verified" json:"is_verified"`

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

// RoleName returns the role name or "" when no role is attached.
func (u *UserModel) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.RoleName
}
