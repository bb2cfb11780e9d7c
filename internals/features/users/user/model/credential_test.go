package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroCredentialIsNotUsable(t *testing.T) {
	var cred Credential
	assert.False(t, cred.Usable())
	assert.ErrorIs(t, cred.Check("anything"), ErrCredentialNotUsable)
}

func TestOneTimeCredential(t *testing.T) {
	cred, err := NewOneTimeCredential("s3cret99")
	require.NoError(t, err)

	assert.Equal(t, CredentialOneTimeGenerated, cred.PasswordState)
	assert.True(t, cred.Usable())
	assert.NotContains(t, cred.PasswordHash, "s3cret99")
	assert.NoError(t, cred.Check("s3cret99"))
	assert.Error(t, cred.Check("other"))
}

func TestUserSetCredential(t *testing.T) {
	cred, err := NewUserSetCredential("chosen-by-user")
	require.NoError(t, err)

	assert.Equal(t, CredentialUserSet, cred.PasswordState)
	assert.NoError(t, cred.Check("chosen-by-user"))
}
