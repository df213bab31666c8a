package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("alice")
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestVerifyToken_Tampered(t *testing.T) {
	token, err := CreateToken("alice")
	require.NoError(t, err)

	_, err = VerifyToken(token + "x")
	assert.Error(t, err)

	_, err = VerifyToken("not-a-token")
	assert.Error(t, err)
}
