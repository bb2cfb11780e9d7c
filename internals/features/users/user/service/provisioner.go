package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"schoolku_backend/internals/features/users/user/model"
)

var (
	ErrEmailTaken = errors.New("a user with this email already exists")

	usernameCleaner = regexp.MustCompile(`[^a-z0-9._-]`)
)

const (
	oneTimePasswordLength = 8
	passwordAlphabet      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxUsernameAttempts   = 100
)

// ProvisionResult carries the created account plus the one-time password.
// The plaintext lives only in this struct; callers return it once and drop it.
type ProvisionResult struct {
	User            *model.UserModel
	OneTimePassword string
}

// ProvisionUser creates a login-capable account for the given email with the
// given role and a generated one-time credential. Exactly one user may exist
// per email; a taken email fails with ErrEmailTaken.
func ProvisionUser(tx *gorm.DB, email, roleName string, reg *RoleRegistry) (*ProvisionResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errors.New("email is required")
	}

	var count int64
	if err := tx.Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	role, err := reg.MustGet(roleName)
	if err != nil {
		return nil, err
	}

	username, err := DeriveUsername(tx, email)
	if err != nil {
		return nil, err
	}

	oneTime, err := GenerateOneTimePassword()
	if err != nil {
		return nil, err
	}
	cred, err := model.NewOneTimeCredential(oneTime)
	if err != nil {
		return nil, err
	}

	user := &model.UserModel{
		UserName:   username,
		Email:      email,
		RoleID:     &role.RoleID,
		Credential: cred,
		IsActive:   true,
	}
	if err := tx.Create(user).Error; err != nil {
		return nil, err
	}
	user.Role = &role

	return &ProvisionResult{User: user, OneTimePassword: oneTime}, nil
}

// DeriveUsername builds a username from the email local-part, adding a numeric
// suffix until it no longer collides.
func DeriveUsername(tx *gorm.DB, email string) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	}
	base = usernameCleaner.ReplaceAllString(strings.ToLower(base), "")
	if base == "" {
		base = "user"
	}

	candidate := base
	for i := 1; i <= maxUsernameAttempts; i++ {
		var count int64
		if err := tx.Model(&model.UserModel{}).Where("username = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", fmt.Errorf("could not derive a free username for %s", email)
}

// GenerateOneTimePassword returns an 8-char alphanumeric password from
// crypto/rand.
func GenerateOneTimePassword() (string, error) {
	out := make([]byte, oneTimePasswordLength)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
