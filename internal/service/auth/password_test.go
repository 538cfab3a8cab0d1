package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordFormat(t *testing.T) {
	stored, err := hashPassword("correct horse battery staple")
	require.NoError(t, err)

	hash, salt, ok := strings.Cut(stored, ".")
	require.True(t, ok, "stored value must be hash.salt")
	assert.Len(t, hash, scryptKeyLen*2)
	assert.Len(t, salt, saltLen*2)
}

func TestCheckPasswordHash(t *testing.T) {
	stored, err := hashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, checkPasswordHash("secret123", stored))
	assert.False(t, checkPasswordHash("secret124", stored))
	assert.False(t, checkPasswordHash("", stored))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := hashPassword("secret123")
	require.NoError(t, err)
	second, err := hashPassword("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "same password must hash with fresh salts")
	assert.True(t, checkPasswordHash("secret123", first))
	assert.True(t, checkPasswordHash("secret123", second))
}

func TestCheckPasswordHashMalformedStored(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		".deadbeef",
		"deadbeef.",
		"nothex.deadbeef",
		"deadbeef.nothex",
	}
	for _, stored := range cases {
		assert.False(t, checkPasswordHash("secret123", stored), "stored=%q", stored)
	}
}
