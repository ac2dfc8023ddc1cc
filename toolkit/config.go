package toolkit

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL    string `json:"base"`       // "http://localhost:8000/items" example
	AuthToken  string `json:"auth_token"` // static bearer token, used as-is
	SigningKey string `json:"-"`          // when set, a short-lived HS256 token is minted instead
	ReportPath string `json:"-"`
}

// LoadConfig reads an optional .env file and then the APIPROBE_* environment.
// Missing .env is not an error; a later env value wins over the file.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("toolkit.config: no .env file loaded error=%v", err)
	}
	cfg := Config{
		BaseURL:    strings.TrimSpace(os.Getenv("APIPROBE_BASE_URL")),
		AuthToken:  strings.TrimSpace(os.Getenv("APIPROBE_AUTH_TOKEN")),
		SigningKey: strings.TrimSpace(os.Getenv("APIPROBE_SIGNING_KEY")),
		ReportPath: strings.TrimSpace(os.Getenv("APIPROBE_REPORT_PATH")),
	}
	log.Printf("toolkit.config: loaded base=%s auth_token_present=%t signing_key_present=%t", cfg.BaseURL, cfg.AuthToken != "", cfg.SigningKey != "")
	return cfg
}

// BearerToken resolves the token to inject on outgoing requests. With a
// signing key configured the token is minted fresh for this run; otherwise
// the static token is returned, which may be empty (no auth).
func (c Config) BearerToken() (string, error) {
	if c.SigningKey == "" {
		return c.AuthToken, nil
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "apiprobe",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.SigningKey))
	if err != nil {
		return "", fmt.Errorf("sign run token: %w", err)
	}
	log.Printf("toolkit.config: minted run token exp=%s", claims.ExpiresAt.Format(time.RFC3339))
	return token, nil
}

func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func TruncateForLog(body []byte, max int) string {
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
