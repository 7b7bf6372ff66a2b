package config

import (
	"strings"
	"time"
)

// APIConfig contains the authentication service endpoint configuration.
type APIConfig struct {
	// BaseURL is the origin of the authentication service.
	BaseURL string `env:"API_BASE_URL" envDefault:"https://folha-ponto.onrender.com"`

	// Timeout bounds every request to the service.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimSuffix(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 15 * time.Second
	}
}
