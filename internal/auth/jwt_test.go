package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	jwtAuth := NewJWTAuthenticator("super-secret", "job-portal-api", time.Hour)

	token, err := jwtAuth.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subjectID, err := jwtAuth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subjectID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	jwtAuth := NewJWTAuthenticator("super-secret", "job-portal-api", -time.Second)

	token, err := jwtAuth.Issue("user-123")
	require.NoError(t, err)

	_, err = jwtAuth.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewJWTAuthenticator("right-secret", "job-portal-api", time.Hour)
	verifier := NewJWTAuthenticator("wrong-secret", "job-portal-api", time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_WrongIssuer(t *testing.T) {
	t.Parallel()

	issuer := NewJWTAuthenticator("super-secret", "someone-else", time.Hour)
	verifier := NewJWTAuthenticator("super-secret", "job-portal-api", time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	jwtAuth := NewJWTAuthenticator("super-secret", "job-portal-api", time.Hour)

	for _, input := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc", "Bearer x"} {
		_, err := jwtAuth.Verify(input)
		assert.ErrorIs(t, err, ErrTokenMalformed, "input %q", input)
	}
}
