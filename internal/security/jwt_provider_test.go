package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-that-is-long-enough"

func TestIssueAndValidateRoundtrip(t *testing.T) {
	provider := NewJWTProvider(testSecret, 15*time.Minute)

	token, err := provider.Issue("alice", []string{"ROLE_CSR", "ROLE_CUSTOMER"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, provider.IsValid(token))

	username, err := provider.Username(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", username)

	roles, err := provider.Roles(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"ROLE_CSR", "ROLE_CUSTOMER"}, roles)
}

func TestIsValid_RejectsGarbage(t *testing.T) {
	provider := NewJWTProvider(testSecret, 15*time.Minute)

	assert.False(t, provider.IsValid("not-a-jwt"))
	assert.False(t, provider.IsValid(""))
}

func TestIsValid_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTProvider(testSecret, 15*time.Minute)
	verifier := NewJWTProvider("a-different-secret-also-long-enough!", 15*time.Minute)

	token, err := issuer.Issue("alice", []string{"ROLE_CSR"})
	require.NoError(t, err)

	assert.False(t, verifier.IsValid(token))
}

func TestIsValid_RejectsExpiredToken(t *testing.T) {
	provider := NewJWTProvider(testSecret, -time.Minute)

	token, err := provider.Issue("alice", []string{"ROLE_CSR"})
	require.NoError(t, err)

	assert.False(t, provider.IsValid(token))
}

func TestUsername_InvalidTokenErrors(t *testing.T) {
	provider := NewJWTProvider(testSecret, 15*time.Minute)

	_, err := provider.Username("not-a-jwt")
	assert.Error(t, err)
}

func TestRoles_EmptyRoleSetSurvivesRoundtrip(t *testing.T) {
	provider := NewJWTProvider(testSecret, 15*time.Minute)

	token, err := provider.Issue("bob", []string{})
	require.NoError(t, err)

	roles, err := provider.Roles(token)
	assert.NoError(t, err)
	assert.Empty(t, roles)
}
