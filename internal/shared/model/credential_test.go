package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredential_BcryptPrefixes(t *testing.T) {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		cred := ParseCredential(prefix + "12$abcdefghijklmnopqrstuv")
		assert.Equal(t, CredentialHashed, cred.Kind(), "prefix %s", prefix)
		assert.True(t, cred.IsHashed())
	}
}

func TestParseCredential_Legacy(t *testing.T) {
	for _, stored := range []string{"pass123", "", "2a$notahash", "$1$md5crypt"} {
		cred := ParseCredential(stored)
		assert.Equal(t, CredentialLegacy, cred.Kind(), "stored %q", stored)
		assert.Equal(t, stored, cred.Stored())
	}
}

func TestCredential_StringNeverLeaksValue(t *testing.T) {
	cred := ParseCredential("super-secret")
	assert.NotContains(t, cred.String(), "super-secret")
}

func TestUser_PasswordNeverInJSON(t *testing.T) {
	u := User{
		ID:       "usr-1",
		Name:     "Karim",
		Email:    "karim@test.com",
		Password: "$2a$12$abcdefghijklmnopqrstuv",
		Role:     UserRoleUser,
	}
	data, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), u.Password)
}
