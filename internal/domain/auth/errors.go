package auth

// Error taxonomy for identity resolution and transport failures. All of
// these are absorbed at the session-service boundary; callers observe the
// resulting snapshot, not the error. They exist so logs and tests can tell
// the failure classes apart.

type taxonomyError string

func (e taxonomyError) Error() string { return string(e) }

const (
	// ErrInvalidCredential marks a malformed or expired legacy token.
	// Resolved silently to "unauthenticated".
	ErrInvalidCredential taxonomyError = "invalid credential"

	// ErrResolutionFailed marks a network or server error during an
	// identity fetch. Resolved to "unauthenticated", never surfaced.
	ErrResolutionFailed taxonomyError = "identity resolution failed"

	// ErrAuthorizationExpired marks an unauthorized response on a business
	// call. Triggers forced logout and a login redirect, not a retry.
	ErrAuthorizationExpired taxonomyError = "authorization expired"

	// ErrForbidden marks an authenticated user holding the wrong role.
	// Routed to the forbidden page, not an error dialog.
	ErrForbidden taxonomyError = "forbidden"
)
