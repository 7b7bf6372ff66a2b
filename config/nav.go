package config

// NavConfig contains navigation policy configuration.
type NavConfig struct {
	// LoginPath is where unauthenticated navigations and forced logouts
	// land. The app's login page is the root route.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/"`

	// ForbiddenPath receives authenticated users holding the wrong role.
	ForbiddenPath string `env:"FORBIDDEN_PATH" envDefault:"/acesso-negado"`

	// HomePath is the landing page an authenticated user is forwarded to
	// when navigating to root.
	HomePath string `env:"HOME_PATH" envDefault:"/dashboard"`

	// PublicPaths is an extra allow-list of always-public paths on top of
	// the route tree's own Public flags.
	PublicPaths []string `env:"PUBLIC_PATHS" envDefault:"" envSeparator:";"`
}

// Sanitize applies guardrails to navigation configuration values.
func (n *NavConfig) Sanitize() {
	if n.LoginPath == "" {
		n.LoginPath = "/"
	}
	if n.ForbiddenPath == "" {
		n.ForbiddenPath = "/acesso-negado"
	}
	if n.HomePath == "" {
		n.HomePath = "/dashboard"
	}
}
