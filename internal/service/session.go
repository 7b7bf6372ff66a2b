package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
	"github.com/folha-ponto/ponto-client/internal/ports"
)

// SessionServiceOptions groups dependencies for SessionService.
type SessionServiceOptions struct {
	API     ports.IdentityClient
	Creds   ports.CredentialStore
	Decoder ports.CredentialDecoder
	Logger  *slog.Logger
}

// SessionService owns the process-wide identity snapshot. Its four
// operations (Login, FetchUser, Logout, ApplyProfile) are the only
// writer path; everything else reads point-in-time copies via Snapshot.
//
// Every network-dependent operation absorbs transport failures
// internally and degrades to "no identity". Callers never receive a
// resolution error; they observe the resulting snapshot.
type SessionService struct {
	api     ports.IdentityClient
	creds   ports.CredentialStore
	decoder ports.CredentialDecoder
	logger  *slog.Logger

	mu   sync.RWMutex
	snap domainauth.Snapshot

	// flight collapses concurrent identity resolutions into one
	// outstanding call; late joiners await the first call's outcome.
	flight singleflight.Group
}

// NewSessionService constructs a SessionService with an empty snapshot.
func NewSessionService(opts SessionServiceOptions) *SessionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionService{
		api:     opts.API,
		creds:   opts.Creds,
		decoder: opts.Decoder,
		logger:  logger,
	}
}

// Snapshot returns a point-in-time copy of the identity snapshot.
func (s *SessionService) Snapshot() domainauth.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Login persists the credential, resolves identity from both sources
// (local token decode first, then the server profile, whose role wins),
// and marks the snapshot loaded regardless of the network half's outcome.
func (s *SessionService) Login(ctx context.Context, token string) {
	if err := s.creds.Save(ctx, token); err != nil {
		s.logger.WarnContext(ctx, "persist credential failed", "error", err)
	}

	s.mu.Lock()
	s.snap.Token = token
	s.mu.Unlock()

	s.resolveWithToken(ctx, token)

	s.mu.Lock()
	s.snap.Loaded = true
	s.mu.Unlock()
}

// Restore rebuilds the snapshot from a previously persisted credential,
// typically once at process start. With no stored credential it only
// marks the snapshot loaded.
func (s *SessionService) Restore(ctx context.Context) {
	token, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "load persisted credential failed", "error", err)
	}

	if token != "" {
		s.mu.Lock()
		s.snap.Token = token
		s.mu.Unlock()
		s.resolveWithToken(ctx, token)
	}

	s.mu.Lock()
	s.snap.Loaded = true
	s.mu.Unlock()
}

// resolveWithToken decodes the local hint and then asks the server for
// the authoritative profile. The hint fills gaps only: a non-empty server
// role always overwrites it, while a network failure leaves the hint in
// place as the provisional identity.
func (s *SessionService) resolveWithToken(ctx context.Context, token string) {
	hint, err := s.decoder.Decode(token)
	if err != nil {
		// Malformed or expired token: proceed unauthenticated, never crash
		// the caller's navigation.
		s.logger.InfoContext(ctx, "legacy token rejected", "error", err)
	} else if hint.Role != "" {
		role := hint.Role
		s.ApplyProfile(domainauth.ProfilePatch{Role: &role})
	}

	patch, err := s.api.WhoAmI(ctx, token)
	if err != nil {
		s.logger.InfoContext(ctx, "profile fetch failed during login", "error", err)
		return
	}
	s.ApplyProfile(patch)
}

// FetchUser refreshes identity from the ambient session (attaching the
// known bearer token when present). Concurrent calls share one
// outstanding resolution. The returned error is only the caller's own
// context error: a canceled caller detaches while the resolution itself
// continues and still settles the snapshot.
func (s *SessionService) FetchUser(ctx context.Context) error {
	ch := s.flight.DoChan("whoami", func() (any, error) {
		s.resolveAmbient(context.WithoutCancel(ctx))
		return nil, nil
	})

	select {
	case <-ch:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SessionService) resolveAmbient(ctx context.Context) {
	s.mu.RLock()
	bearer := s.snap.Token
	s.mu.RUnlock()

	patch, err := s.api.WhoAmI(ctx, bearer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Degrade to "no identity": keep the stored token, clear everything
		// the failed resolution can no longer vouch for. Loaded still flips
		// to true; the attempt completed.
		s.logger.InfoContext(ctx, "identity resolution failed", "error", err)
		s.snap.Role = ""
		s.snap.SubjectCode = ""
		s.snap.Profile = domainauth.Profile{}
	} else {
		s.applyLocked(patch)
	}
	s.snap.Loaded = true
}

// Logout best-effort invalidates the server session, then resets the
// snapshot and erases the persisted credential. Idempotent: a second call
// lands on the same empty state.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		// Server-side invalidation is best-effort; local state clears anyway.
		s.logger.WarnContext(ctx, "server logout failed", "error", err)
	}

	s.mu.Lock()
	s.snap = domainauth.Snapshot{}
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "erase persisted credential failed", "error", err)
	}
}

// ApplyProfile merges a partial profile patch into the snapshot. Pure
// state mutation, no network. Role and SubjectCode are re-derived from
// the merged profile so they can never disagree with it.
func (s *SessionService) ApplyProfile(patch domainauth.ProfilePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(patch)
}

func (s *SessionService) applyLocked(patch domainauth.ProfilePatch) {
	s.snap.Profile = s.snap.Profile.Merge(patch)
	s.snap.Role = s.snap.Profile.Role
	s.snap.SubjectCode = s.snap.Profile.Code
}
