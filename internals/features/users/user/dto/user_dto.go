package dto

import (
	"time"

	"github.com/google/uuid"

	uModel "schoolku_backend/internals/features/users/user/model"
)

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	UserName        string    `json:"username"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	Role            string    `json:"role,omitempty"`
	CredentialState string    `json:"credential_state"`
	IsActive        bool      `json:"is_active"`
	IsVerified      bool      `json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromUserModel(m *uModel.UserModel) UserResponse {
	return UserResponse{
		ID:              m.UserID,
		UserName:        m.UserName,
		Email:           m.Email,
		Phone:           m.Phone,
		Role:            m.RoleName(),
		CredentialState: string(m.Credential.PasswordState),
		IsActive:        m.IsActive,
		IsVerified:      m.IsVerified,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func FromUserModels(ms []uModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromUserModel(&ms[i]))
	}
	return out
}

/* =======================================================
   LOGIN CREDENTIALS (returned once, at provisioning)
   ======================================================= */

type LoginCredentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
