package service

import (
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.RoleModel{}, &model.UserModel{}))
	return db
}

func loadedRegistry(t *testing.T, db *gorm.DB) *RoleRegistry {
	t.Helper()
	reg := NewRoleRegistry()
	require.NoError(t, reg.Load(db))
	return reg
}

func TestRoleRegistrySeedsDefaultRoles(t *testing.T) {
	db := newTestDB(t)
	reg := loadedRegistry(t, db)

	for _, name := range constants.AllRoles {
		role, ok := reg.Get(name)
		assert.True(t, ok, "role %s", name)
		assert.Equal(t, name, role.RoleName)
	}

	_, ok := reg.Get("nonexistent")
	assert.False(t, ok)
}

func TestProvisionUserCreatesAccount(t *testing.T) {
	db := newTestDB(t)
	reg := loadedRegistry(t, db)

	res, err := ProvisionUser(db, "Parent.One@Example.com", constants.RoleStudentParent, reg)
	require.NoError(t, err)

	assert.Equal(t, "parent.one@example.com", res.User.Email)
	assert.Equal(t, "parent.one", res.User.UserName)
	assert.Equal(t, constants.RoleStudentParent, res.User.RoleName())
	assert.True(t, res.User.IsActive)

	assert.Len(t, res.OneTimePassword, 8)
	assert.Equal(t, model.CredentialOneTimeGenerated, res.User.Credential.PasswordState)
	assert.NoError(t, res.User.Credential.Check(res.OneTimePassword))
	assert.Error(t, res.User.Credential.Check("wrong-password"))
}

func TestProvisionUserRejectsTakenEmail(t *testing.T) {
	db := newTestDB(t)
	reg := loadedRegistry(t, db)

	_, err := ProvisionUser(db, "taken@example.com", constants.RoleStudentParent, reg)
	require.NoError(t, err)

	_, err = ProvisionUser(db, "taken@example.com", constants.RoleStudentParent, reg)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeriveUsernameSuffixesOnCollision(t *testing.T) {
	db := newTestDB(t)
	reg := loadedRegistry(t, db)

	for i, email := range []string{"kim@a.example.com", "kim@b.example.com", "kim@c.example.com"} {
		res, err := ProvisionUser(db, email, constants.RoleStudentParent, reg)
		require.NoError(t, err)
		switch i {
		case 0:
			assert.Equal(t, "kim", res.User.UserName)
		case 1:
			assert.Equal(t, "kim1", res.User.UserName)
		case 2:
			assert.Equal(t, "kim2", res.User.UserName)
		}
	}
}

func TestDeriveUsernameStripsInvalidRunes(t *testing.T) {
	db := newTestDB(t)

	name, err := DeriveUsername(db, "We!rd Na+me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "werdname", name)
}

func TestGenerateOneTimePasswordShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-zA-Z0-9]{8}$`)
	seen := map[string]bool{}

	for i := 0; i < 20; i++ {
		pw, err := GenerateOneTimePassword()
		require.NoError(t, err)
		assert.Regexp(t, pattern, pw)
		seen[pw] = true
	}
	// 20 draws from a 62^8 space colliding would point at a broken generator
	assert.Greater(t, len(seen), 1)
}
