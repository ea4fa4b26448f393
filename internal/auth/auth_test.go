package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
)

func newTestTokenService(t *testing.T, d time.Duration) *TokenService {
	t.Helper()
	key, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	svc, err := NewTokenService(key, d)
	require.NoError(t, err)
	return svc
}

func TestLoadOrGenerateKey_PersistsKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, first, keyLength)

	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	info, err := os.Stat(filepath.Join(dir, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrGenerateKey_RejectsCorruptKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, keyFileName), []byte("abc"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.ErrorContains(t, err, "invalid auth key length")

	require.NoError(t, os.WriteFile(filepath.Join(dir, keyFileName), []byte(strings.Repeat("zz", 32)), 0o600))
	_, err = LoadOrGenerateKey(dir)
	assert.ErrorContains(t, err, "not valid hex")
}

func TestNewTokenService_KeyLength(t *testing.T) {
	_, err := NewTokenService(make([]byte, 16), time.Minute)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, 15*time.Minute)

	token, err := svc.GenerateAccessToken("user-abc", "Ada")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "user-abc", claims.Subject)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.TokenID)
	assert.Equal(t, 15*time.Minute, svc.AccessTokenDuration())
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)

	token, err := svc.GenerateAccessToken("user-abc", "")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.VerifyAccessToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	issuer := newTestTokenService(t, time.Minute)
	other := newTestTokenService(t, time.Minute)

	token, err := issuer.GenerateAccessToken("user-abc", "")
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))

	_, err = issuer.VerifyAccessToken("garbage")
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestGenerateAccessToken_RequiresUser(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)
	_, err := svc.GenerateAccessToken("", "")
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}
