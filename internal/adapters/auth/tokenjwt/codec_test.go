package tokenjwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	c := New("test-secret", time.Hour)

	token, err := c.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := c.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestCodec_Issue_EmptyUserID(t *testing.T) {
	c := New("test-secret", time.Hour)

	_, err := c.Issue("   ")
	assert.Error(t, err)
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Verify_Expired(t *testing.T) {
	c := New("test-secret", time.Hour)

	issuedAt := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return issuedAt }

	token, err := c.Issue("user-123")
	require.NoError(t, err)

	// dentro del TTL sigue válido
	c.now = func() time.Time { return issuedAt.Add(30 * time.Minute) }
	_, err = c.Verify(context.Background(), token)
	require.NoError(t, err)

	// pasado el TTL, inválido
	c.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = c.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Verify_Garbage(t *testing.T) {
	c := New("test-secret", time.Hour)

	for _, tok := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		_, err := c.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
