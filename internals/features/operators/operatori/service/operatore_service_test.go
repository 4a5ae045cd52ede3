package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "Correct horse"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "anna@clinic.it", NormalizeEmail("  Anna@Clinic.IT "))
}
