package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	require.NoError(t, VerifyPassword("correct-horse", hash))

	err = VerifyPassword("wrong-horse", hash)
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("", bcrypt.MinCost)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestHashPassword_Salted(t *testing.T) {
	// bcrypt солит каждый хеш, поэтому хеши разные
	h1, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_EmptyHash(t *testing.T) {
	err := VerifyPassword("x", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash cannot be empty")
}

func TestHashToken_KnownVector(t *testing.T) {
	expected := "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08" // SHA256("test")

	hash, err := HashToken("test")
	require.NoError(t, err)
	assert.Equal(t, expected, hash)

	_, err = HashToken("")
	assert.Error(t, err)
}

func TestVerifyToken(t *testing.T) {
	hash, err := HashToken("refresh-token")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		hashed  string
		wantErr bool
	}{
		{name: "match", token: "refresh-token", hashed: hash},
		{name: "mismatch", token: "other-token", hashed: hash, wantErr: true},
		{name: "empty token", token: "", hashed: hash, wantErr: true},
		{name: "empty hash", token: "refresh-token", hashed: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyToken(tt.token, tt.hashed)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGenerateResetCode(t *testing.T) {
	for range 50 {
		code, err := GenerateResetCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[1-9][0-9]{5}$`, code)
	}
}
