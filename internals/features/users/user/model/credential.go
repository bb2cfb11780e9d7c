package model

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// CredentialState tracks how the stored password hash came to be.
type CredentialState string

const (
	CredentialNotSet           CredentialState = "not_set"
	CredentialOneTimeGenerated CredentialState = "one_time_generated"
	CredentialUserSet          CredentialState = "user_set"
)

var ErrCredentialNotUsable = errors.New("credential not usable")

// Credential is an embedded value type constructed once at account
// provisioning. Only a bcrypt hash is ever persisted; the generated one-time
// password is surfaced in the creation response and nowhere else.
type Credential struct {
	PasswordHash  string          `gorm:"type:varchar(100);column:password_hash" json:"-"`
	PasswordState CredentialState `gorm:"type:varchar(20);not null;default:'not_set';column:password_state" json:"-"`
}

// NewOneTimeCredential hashes a system-generated password.
func NewOneTimeCredential(plain string) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}
	return Credential{PasswordHash: string(hash), PasswordState: CredentialOneTimeGenerated}, nil
}

// NewUserSetCredential hashes a password the user chose themselves.
func NewUserSetCredential(plain string) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return Credential{}, err
	}
	return Credential{PasswordHash: string(hash), PasswordState: CredentialUserSet}, nil
}

func (cr Credential) Usable() bool {
	return cr.PasswordState != CredentialNotSet && cr.PasswordHash != ""
}

func (cr Credential) Check(plain string) error {
	if !cr.Usable() {
		return ErrCredentialNotUsable
	}
	return bcrypt.CompareHashAndPassword([]byte(cr.PasswordHash), []byte(plain))
}
