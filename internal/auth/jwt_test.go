package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	token, exp, err := Issue(7, RoleFaculty, "attendance-portal", "secret", time.Hour)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := Parse(token, "secret", "attendance-portal")
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, RoleFaculty, claims.Role)
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, _, err := Issue(7, RoleAdmin, "attendance-portal", "secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "other-secret", "attendance-portal")
	assert.Error(t, err)
}

func TestParseRejectsIssuerMismatch(t *testing.T) {
	token, _, err := Issue(7, RoleAdmin, "someone-else", "secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "secret", "attendance-portal")
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, _, err := Issue(7, RoleAdmin, "attendance-portal", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, "secret", "attendance-portal")
	assert.Error(t, err)
}
