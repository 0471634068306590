package services_test

import (
	"strings"
	"testing"

	"blog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_LongPasswords(t *testing.T) {
	hasher := services.NewBcryptHasher(bcrypt.MinCost)

	tests := []struct {
		name  string
		plain string
	}{
		{"short", "secret1"},
		{"exactly 72 bytes", strings.Repeat("p", 72)},
		{"100 ascii characters", strings.Repeat("p", 100)},
		{"100 multibyte characters", strings.Repeat("密", 100)},
		{"multibyte split at the limit", strings.Repeat("a", 71) + strings.Repeat("é", 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := hasher.Hash(tt.plain)
			require.NoError(t, err)
			assert.True(t, hasher.Compare(tt.plain, digest))
			assert.False(t, hasher.Compare("wrong-password", digest))
		})
	}
}

func TestBcryptHasher_OnlyFirst72BytesCount(t *testing.T) {
	hasher := services.NewBcryptHasher(bcrypt.MinCost)
	prefix := strings.Repeat("x", 72)

	digest, err := hasher.Hash(prefix + "tail-one")
	require.NoError(t, err)
	assert.True(t, hasher.Compare(prefix+"tail-two", digest))
	assert.False(t, hasher.Compare(strings.Repeat("y", 72)+"tail-one", digest))
}
