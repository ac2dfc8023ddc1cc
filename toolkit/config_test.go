package toolkit

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("APIPROBE_BASE_URL", "http://localhost:5000/items")
	t.Setenv("APIPROBE_AUTH_TOKEN", "tok-123")
	t.Setenv("APIPROBE_SIGNING_KEY", "")
	t.Setenv("APIPROBE_REPORT_PATH", "out/report.json")

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:5000/items", cfg.BaseURL)
	assert.Equal(t, "tok-123", cfg.AuthToken)
	assert.Empty(t, cfg.SigningKey)
	assert.Equal(t, "out/report.json", cfg.ReportPath)
}

func TestBearerTokenStatic(t *testing.T) {
	tok, err := Config{AuthToken: "static-token"}.BearerToken()
	require.NoError(t, err)
	assert.Equal(t, "static-token", tok)

	tok, err = Config{}.BearerToken()
	require.NoError(t, err)
	assert.Empty(t, tok, "no auth configured means no token")
}

func TestBearerTokenMintedWhenSigningKeySet(t *testing.T) {
	cfg := Config{AuthToken: "ignored", SigningKey: "sekrit"}
	tok, err := cfg.BearerToken()
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.NotEqual(t, "ignored", tok)

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		return []byte("sekrit"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "apiprobe", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, IsAbsoluteURL("http://localhost:5000/items"))
	assert.True(t, IsAbsoluteURL(" https://api.example.com "))
	assert.False(t, IsAbsoluteURL("/items"))
	assert.False(t, IsAbsoluteURL("localhost:5000"))
	assert.False(t, IsAbsoluteURL(""))
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", TruncateForLog([]byte("short"), 10))
	long := strings.Repeat("a", 20)
	assert.Equal(t, long[:10]+"...", TruncateForLog([]byte(long), 10))
}
