package config

import (
	"fmt"
	"strings"
	"time"
)

// TokenStoreMode selects where the legacy credential persists.
type TokenStoreMode string

const (
	// TokenStoreFile keeps the credential in a local file (single
	// workstation, the default).
	TokenStoreFile TokenStoreMode = "file"
	// TokenStoreRedis keeps the credential in Redis (shared kiosk
	// terminals such as badge clock-in stations).
	TokenStoreRedis TokenStoreMode = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for TokenStoreMode.
func (m *TokenStoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "file", "redis":
		*m = TokenStoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid TokenStoreMode: %q (valid options: file, redis)", v)
	}
}

// RedisConfig contains Redis connection settings for the shared-terminal
// credential store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// SessionConfig groups credential persistence configuration.
type SessionConfig struct {
	// TokenStore determines which credential store adapter to use.
	TokenStore TokenStoreMode `env:"TOKEN_STORE" envDefault:"file"`

	// TokenFile is the credential path when TokenStore=file.
	TokenFile string `env:"TOKEN_FILE" envDefault:".ponto/token"`

	// Terminal names this kiosk when TokenStore=redis; stations never
	// share a credential slot.
	Terminal string `env:"TERMINAL" envDefault:""`

	// TokenTTL expires an idle shared-terminal credential. Zero keeps it
	// until logout. Ignored by the file store.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"0"`

	// Redis connection settings (used when TokenStore=redis).
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TokenStore == "" {
		s.TokenStore = TokenStoreFile
	}
	if s.TokenTTL < 0 {
		s.TokenTTL = 0
	}
}
