package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/pipeline-crm/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "admin", "admin", "pipeline-crm-test", 60)
	require.NoError(t, err)

	username, role, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
	assert.Equal(t, "admin", role)
}

func TestParse_Expired(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "admin", "admin", "x", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "admin", "admin", "x", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("another-secret", tok)
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := pkgjwt.Generate("", "admin", "admin", "x", 60)
	assert.Error(t, err)
	_, _, err = pkgjwt.Parse("", "token")
	assert.Error(t, err)
}
