package bootstrap

import (
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/folha-ponto/ponto-client/config"
	"github.com/folha-ponto/ponto-client/internal/adapters/api"
	"github.com/folha-ponto/ponto-client/internal/adapters/legacyjwt"
	redisadapter "github.com/folha-ponto/ponto-client/internal/adapters/redis"
	"github.com/folha-ponto/ponto-client/internal/adapters/tokenfile"
	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
	"github.com/folha-ponto/ponto-client/internal/domain/route"
	"github.com/folha-ponto/ponto-client/internal/observability/notify"
	"github.com/folha-ponto/ponto-client/internal/ports"
	"github.com/folha-ponto/ponto-client/internal/service"
	"github.com/folha-ponto/ponto-client/internal/transport"
)

// SessionDeps contains everything needed to assemble the session layer.
type SessionDeps struct {
	Config config.AppConfig
	Logger *slog.Logger
}

// BuildCredentialStore creates the credential store selected by config.
func BuildCredentialStore(cfg config.SessionConfig) (ports.CredentialStore, error) {
	switch cfg.TokenStore {
	case config.TokenStoreFile:
		store, err := tokenfile.NewStore(cfg.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("build file token store: %w", err)
		}
		return store, nil

	case config.TokenStoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := redisadapter.NewTokenStore(client, cfg.Terminal, cfg.TokenTTL)
		if err != nil {
			return nil, fmt.Errorf("build redis token store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown token store mode %q", cfg.TokenStore)
	}
}

// BuildAPIClient creates the authentication service client.
func BuildAPIClient(cfg config.APIConfig) (*api.Client, error) {
	client, err := api.New(api.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build api client: %w", err)
	}
	return client, nil
}

// SessionLayer bundles the assembled session components. The API client
// is exposed so callers can drive the legacy login flow directly.
type SessionLayer struct {
	Client   *api.Client
	Sessions *service.SessionService
}

// BuildSessionLayer wires the API client, credential store, and token
// decoder into a SessionService.
func BuildSessionLayer(deps SessionDeps) (*SessionLayer, error) {
	client, err := BuildAPIClient(deps.Config.API)
	if err != nil {
		return nil, err
	}

	creds, err := BuildCredentialStore(deps.Config.Session)
	if err != nil {
		return nil, err
	}

	sessions := service.NewSessionService(service.SessionServiceOptions{
		API:     client,
		Creds:   creds,
		Decoder: legacyjwt.NewDecoder(),
		Logger:  deps.Logger,
	})
	return &SessionLayer{Client: client, Sessions: sessions}, nil
}

// AppRoutes returns the application's navigation routes with their
// access descriptors. Root is the login page and, with the forbidden
// screen, the only public route. The protected pages are siblings, not
// children of root: a public parent would bleed Public onto every page
// under it and the guard would stop asking for a session at all.
func AppRoutes() []route.Route {
	return []route.Route{
		{Path: "/", Public: true},
		{Path: "/dashboard", RequiresAuth: true},
		{Path: "/visualizar", RequiresAuth: true},
		{Path: "/editar", RequiresAuth: true, Roles: []domainauth.Role{domainauth.RoleManager, domainauth.RoleAdmin, domainauth.RoleSuperAdmin}},
		{Path: "/bater-ponto", RequiresAuth: true, Roles: []domainauth.Role{domainauth.RoleEmployee, domainauth.RoleIntern}},
		{Path: "/acesso-negado", Public: true},
	}
}

// BuildGuard assembles the navigation guard over the app route table.
func BuildGuard(sessions *service.SessionService, deps SessionDeps) *service.Guard {
	table := route.NewTable(AppRoutes(), deps.Config.Nav.PublicPaths)
	return service.NewGuard(service.GuardOptions{
		Sessions:      sessions,
		Routes:        table,
		LoginPath:     deps.Config.Nav.LoginPath,
		ForbiddenPath: deps.Config.Nav.ForbiddenPath,
		HomePath:      deps.Config.Nav.HomePath,
		Logger:        deps.Logger,
	})
}

// BuildAuthGate assembles the transport hook for the business-data
// client. Callers install it as their http.Client's Transport.
func BuildAuthGate(sessions *service.SessionService, nav ports.Navigator, deps SessionDeps) *transport.AuthGate {
	table := route.NewTable(AppRoutes(), deps.Config.Nav.PublicPaths)
	return transport.NewAuthGate(transport.AuthGateOptions{
		Sessions:  sessions,
		Routes:    table,
		Navigator: nav,
		Notifier:  notify.NewSlogNotifier(deps.Logger),
		LoginPath: deps.Config.Nav.LoginPath,
		Logger:    deps.Logger,
	})
}
