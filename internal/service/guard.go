package service

import (
	"context"
	"log/slog"

	"github.com/folha-ponto/ponto-client/internal/domain/route"
)

// Action is the guard's verdict for one navigation attempt.
type Action int

const (
	// ActionAdmit lets the navigation proceed to its target.
	ActionAdmit Action = iota
	// ActionRedirect sends the navigation to Decision.Target instead.
	ActionRedirect
	// ActionSuperseded means a newer navigation canceled this one; the
	// decision must be dropped, not committed.
	ActionSuperseded
)

// String returns the action's log label.
func (a Action) String() string {
	switch a {
	case ActionAdmit:
		return "admit"
	case ActionRedirect:
		return "redirect"
	case ActionSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Decision is the guard's outcome. Reason is a stable label for logs.
type Decision struct {
	Action Action
	Target string
	Reason string
}

// GuardOptions groups dependencies for Guard.
type GuardOptions struct {
	Sessions      *SessionService
	Routes        *route.Table
	LoginPath     string
	ForbiddenPath string
	HomePath      string
	Logger        *slog.Logger
}

// Guard runs before every route change. It consults the session snapshot
// (resolving identity lazily when stale) and the target route's access
// descriptor, and decides to admit, redirect to login, or redirect to the
// forbidden page.
type Guard struct {
	sessions      *SessionService
	routes        *route.Table
	loginPath     string
	forbiddenPath string
	homePath      string
	logger        *slog.Logger
}

// NewGuard constructs a Guard.
func NewGuard(opts GuardOptions) *Guard {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		sessions:      opts.Sessions,
		routes:        opts.Routes,
		loginPath:     opts.LoginPath,
		forbiddenPath: opts.ForbiddenPath,
		homePath:      opts.HomePath,
		logger:        logger,
	}
}

// Evaluate decides one navigation attempt. Checks run in strict order:
// root forward, public check, resolve-if-stale, auth check, role check.
// Reordering any two steps changes behavior, so don't.
//
// ctx belongs to the navigation: when a newer navigation supersedes this
// one, cancel it and the stale decision comes back as ActionSuperseded.
func (g *Guard) Evaluate(ctx context.Context, target string) Decision {
	desc := g.routes.Match(target)

	// Root is the login page. A user holding a credential is forwarded to
	// the landing page instead of being shown login again.
	if desc.Path == "/" && g.sessions.Snapshot().Token != "" {
		return g.decide(ctx, desc, Decision{Action: ActionRedirect, Target: g.homePath, Reason: "root_forward"})
	}

	// Public routes admit immediately, with no resolution and no waiting.
	if desc.Public {
		return g.decide(ctx, desc, Decision{Action: ActionAdmit, Reason: "public"})
	}

	// Resolve identity once, lazily. Concurrent navigations share the
	// outstanding call; a canceled navigation detaches without committing.
	if !g.sessions.Snapshot().Loaded {
		if err := g.sessions.FetchUser(ctx); err != nil {
			return Decision{Action: ActionSuperseded, Reason: "canceled"}
		}
	}
	if ctx.Err() != nil {
		return Decision{Action: ActionSuperseded, Reason: "canceled"}
	}

	snap := g.sessions.Snapshot()

	if desc.RequiresAuth && !snap.Authenticated() {
		return g.decide(ctx, desc, Decision{Action: ActionRedirect, Target: g.loginPath, Reason: "login_required"})
	}

	if len(desc.Roles) > 0 && !snap.HasRole(desc.Roles) {
		return g.decide(ctx, desc, Decision{Action: ActionRedirect, Target: g.forbiddenPath, Reason: "role_denied"})
	}

	return g.decide(ctx, desc, Decision{Action: ActionAdmit, Reason: "admit"})
}

func (g *Guard) decide(ctx context.Context, desc route.Descriptor, d Decision) Decision {
	g.logger.DebugContext(ctx, "navigation decision",
		slog.String("path", desc.Path),
		slog.String("reason", d.Reason),
		slog.String("redirect", d.Target),
	)
	return d
}
