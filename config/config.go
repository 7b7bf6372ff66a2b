package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Authentication service endpoint configuration
//   - session.go: Credential persistence configuration
//   - nav.go: Navigation and route policy configuration
type AppConfig struct {
	// IsDev controls development mode behavior (verbose guard logging,
	// relaxed endpoint defaults). Set DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	// API is the remote authentication service endpoint.
	API APIConfig

	// Session controls where the legacy credential persists.
	Session SessionConfig `envPrefix:"SESSION_"`

	// Nav holds login/forbidden/home paths and the public allow-list.
	Nav NavConfig `envPrefix:"NAV_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// Call it after env parsing.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Session.Sanitize()
	c.Nav.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
