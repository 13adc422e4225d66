package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T, secret, issuer string) *Signer {
	t.Helper()
	s, err := NewSigner(secret, issuer, 5*time.Minute)
	require.NoError(t, err)
	return s
}

func TestIssueYVerify_IdaYVuelta(t *testing.T) {
	s := newTestSigner(t, "s3cret", "gametech-test")
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	tok, err := s.Issue(42, "OPERADOR")
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(5*time.Minute), tok.ExpiresAt)

	claims, err := s.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "OPERADOR", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestVerify_FirmaIncorrecta(t *testing.T) {
	tok, err := newTestSigner(t, "s3cret", "gametech-test").Issue(1, "ADMIN")
	require.NoError(t, err)

	_, err = newTestSigner(t, "otro-secret", "gametech-test").Verify(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_OtroIssuer(t *testing.T) {
	tok, err := newTestSigner(t, "s3cret", "otro-sistema").Issue(1, "ADMIN")
	require.NoError(t, err)

	_, err = newTestSigner(t, "s3cret", "gametech-test").Verify(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TokenExpirado(t *testing.T) {
	s := newTestSigner(t, "s3cret", "gametech-test")
	issuedAt := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issuedAt }
	tok, err := s.Issue(1, "ADMIN")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_SinUsuario(t *testing.T) {
	s := newTestSigner(t, "s3cret", "gametech-test")
	tok, err := s.Issue(0, "ADMIN")
	require.NoError(t, err)

	_, err = s.Verify(tok.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewSigner_SecretVacio(t *testing.T) {
	_, err := NewSigner("", "x", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestNewSigner_TTLPorDefecto(t *testing.T) {
	s, err := NewSigner("s3cret", "x", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, s.ttl)
}
