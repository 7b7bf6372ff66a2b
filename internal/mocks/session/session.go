package session

// Package session contains simple hand-written test doubles for the
// session ports. These are lightweight and suitable for unit tests
// without codegen.

import (
	"context"
	"sync"
	"sync/atomic"

	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
	"github.com/folha-ponto/ponto-client/internal/observability/notify"
	"github.com/folha-ponto/ponto-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityClient    = (*StubIdentityClient)(nil)
	_ ports.CredentialStore   = (*MemoryCredentialStore)(nil)
	_ ports.CredentialDecoder = (*StaticDecoder)(nil)
	_ ports.Navigator         = (*ScriptedNavigator)(nil)
	_ ports.Notifier          = (*RecordingNotifier)(nil)
)

// StubIdentityClient simulates the remote authentication service with
// per-call overrides and call counting.
type StubIdentityClient struct {
	LoginFunc  func(ctx context.Context, username, password string) (string, error)
	WhoAmIFunc func(ctx context.Context, bearer string) (domainauth.ProfilePatch, error)
	LogoutFunc func(ctx context.Context) error

	whoAmICalls atomic.Int64
	logoutCalls atomic.Int64
}

func (s *StubIdentityClient) Login(ctx context.Context, username, password string) (string, error) {
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, username, password)
	}
	return "stub-token", nil
}

func (s *StubIdentityClient) WhoAmI(ctx context.Context, bearer string) (domainauth.ProfilePatch, error) {
	s.whoAmICalls.Add(1)
	if s.WhoAmIFunc != nil {
		return s.WhoAmIFunc(ctx, bearer)
	}
	return domainauth.ProfilePatch{}, nil
}

func (s *StubIdentityClient) Logout(ctx context.Context) error {
	s.logoutCalls.Add(1)
	if s.LogoutFunc != nil {
		return s.LogoutFunc(ctx)
	}
	return nil
}

// WhoAmICalls reports how many resolutions were issued.
func (s *StubIdentityClient) WhoAmICalls() int { return int(s.whoAmICalls.Load()) }

// LogoutCalls reports how many server logouts were issued.
func (s *StubIdentityClient) LogoutCalls() int { return int(s.logoutCalls.Load()) }

// PatchFor builds a fully populated ProfilePatch, the shape a healthy
// who-am-I response produces.
func PatchFor(code string, role domainauth.Role) domainauth.ProfilePatch {
	id := 1
	name := "Colaborador " + code
	email := code + "@example.com"
	return domainauth.ProfilePatch{
		ID:    &id,
		Code:  &code,
		Name:  &name,
		Email: &email,
		Role:  &role,
	}
}

// MemoryCredentialStore is an in-memory ports.CredentialStore.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	token string

	SaveErr  error
	ClearErr error
	LoadErr  error
}

func (m *MemoryCredentialStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	return m.token, nil
}

func (m *MemoryCredentialStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	return nil
}

func (m *MemoryCredentialStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	return nil
}

// Stored returns the currently persisted token.
func (m *MemoryCredentialStore) Stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Seed pre-populates the store, bypassing Save validation.
func (m *MemoryCredentialStore) Seed(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// StaticDecoder returns a fixed hint (or error) for every token.
type StaticDecoder struct {
	Hint domainauth.TokenHint
	Err  error
}

func (d StaticDecoder) Decode(string) (domainauth.TokenHint, error) {
	if d.Err != nil {
		return domainauth.TokenHint{}, d.Err
	}
	return d.Hint, nil
}

// ScriptedNavigator records forced navigations and reports a fixed
// current path.
type ScriptedNavigator struct {
	mu      sync.Mutex
	current string
	visits  []string
}

// NewScriptedNavigator creates a navigator currently showing path.
func NewScriptedNavigator(path string) *ScriptedNavigator {
	return &ScriptedNavigator{current: path}
}

func (n *ScriptedNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *ScriptedNavigator) Go(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
	n.visits = append(n.visits, path)
}

// Visits returns every forced navigation in order.
func (n *ScriptedNavigator) Visits() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.visits...)
}

// RecordingNotifier captures every emitted event.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *RecordingNotifier) Notify(_ context.Context, ev notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns the captured events in order.
func (r *RecordingNotifier) Events() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}
