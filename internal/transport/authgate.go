package transport

// Package transport hosts the business-data client's cross-cutting hook:
// detecting authorization expiry on any response and forcing
// re-authentication. The business client itself lives with the callers;
// they wrap their http.Client's Transport with AuthGate.

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/folha-ponto/ponto-client/internal/domain/route"
	"github.com/folha-ponto/ponto-client/internal/observability/notify"
	"github.com/folha-ponto/ponto-client/internal/ports"
)

// sessionEnder is the one session-store operation the hook needs.
type sessionEnder interface {
	Logout(ctx context.Context)
}

type exemptKey struct{}

// Exempt marks a request context so an unauthorized response on that one
// request does not trigger forced logout. Anonymous pages probing
// endpoints that legitimately return 401 use this.
func Exempt(ctx context.Context) context.Context {
	return context.WithValue(ctx, exemptKey{}, true)
}

// IsExempt reports whether ctx carries the exemption flag.
func IsExempt(ctx context.Context) bool {
	v, _ := ctx.Value(exemptKey{}).(bool)
	return v
}

// RequestError is the uniform shape every transport-level failure is
// normalized into before reaching the caller; no bare non-Error values
// escape the hook.
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// AuthGateOptions groups construction parameters for AuthGate.
type AuthGateOptions struct {
	// Base is the wrapped RoundTripper. Nil means http.DefaultTransport.
	Base http.RoundTripper

	Sessions  sessionEnder
	Routes    *route.Table
	Navigator ports.Navigator
	Notifier  ports.Notifier
	LoginPath string
	Logger    *slog.Logger
}

// AuthGate observes every response from the business-data transport. On
// an unauthorized response it forces logout and a login redirect, unless
// the request was exempted or the user is currently on a public page.
// The response is still returned to the original caller so request-level
// UI can react too.
type AuthGate struct {
	base      http.RoundTripper
	sessions  sessionEnder
	routes    *route.Table
	nav       ports.Navigator
	notifier  ports.Notifier
	loginPath string
	logger    *slog.Logger

	// forcing collapses concurrent 401s into a single logout episode, so
	// a burst of failing calls shows exactly one notification.
	forcing atomic.Bool
}

// NewAuthGate constructs an AuthGate.
func NewAuthGate(opts AuthGateOptions) *AuthGate {
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthGate{
		base:      base,
		sessions:  opts.Sessions,
		routes:    opts.Routes,
		nav:       opts.Navigator,
		notifier:  opts.Notifier,
		loginPath: opts.LoginPath,
		logger:    logger,
	}
}

// RoundTrip implements http.RoundTripper.
func (g *AuthGate) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := g.base.RoundTrip(req)
	if err != nil {
		return nil, &RequestError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.handleUnauthorized(req)
	}
	return resp, nil
}

func (g *AuthGate) handleUnauthorized(req *http.Request) {
	if IsExempt(req.Context()) {
		return
	}

	// An anonymous page probing an endpoint that answers 401 must not
	// bounce the user into a redirect loop.
	current := g.nav.Current()
	if g.routes.Match(current).Public {
		return
	}

	if !g.forcing.CompareAndSwap(false, true) {
		return
	}
	defer g.forcing.Store(false)

	// The caller's request may already be canceled; the recovery flow
	// still has to run to completion.
	ctx := context.WithoutCancel(req.Context())

	g.logger.WarnContext(ctx, "session expired, forcing re-authentication",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("route", current),
	)

	g.sessions.Logout(ctx)
	g.notifier.Notify(ctx, notify.Warning("Sessão expirada. Faça login novamente."))
	g.nav.Go(g.loginPath)
}
