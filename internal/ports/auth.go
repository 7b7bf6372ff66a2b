package ports

// Package ports defines interfaces (hexagonal ports) for session-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
	"github.com/folha-ponto/ponto-client/internal/observability/notify"
)

// IdentityClient talks to the remote authentication service. The cookie
// session rides the underlying transport; application code never sees it.
type IdentityClient interface {
	// Login exchanges username/password for a legacy bearer token.
	Login(ctx context.Context, username, password string) (string, error)

	// WhoAmI fetches the current profile. bearer may be empty, in which
	// case only the ambient cookie session authenticates the call. Absent
	// response fields stay nil in the patch.
	WhoAmI(ctx context.Context, bearer string) (domainauth.ProfilePatch, error)

	// Logout asks the server to invalidate the ambient session.
	// Best-effort: callers swallow the error and clear local state anyway.
	Logout(ctx context.Context) error
}

// CredentialStore persists the single legacy bearer credential.
// Load returns "" with a nil error when no credential is stored; absence
// is not an error.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// CredentialDecoder extracts the provisional identity hint from a legacy
// token without network I/O. A malformed or expired token is an error,
// never a panic.
type CredentialDecoder interface {
	Decode(token string) (domainauth.TokenHint, error)
}

// Navigator is the router surface the session layer drives: where the
// user currently is, and forced navigation on session expiry.
type Navigator interface {
	Current() string
	Go(path string)
}

// Notifier surfaces transient user-visible notifications.
type Notifier interface {
	Notify(ctx context.Context, ev notify.Event)
}
