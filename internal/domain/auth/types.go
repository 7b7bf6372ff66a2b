package auth

// Package auth contains domain-level types for identity and session state.
// It is pure and free of transport/adapter concerns.

import "strings"

// Role represents an application's authorization role.
// String form matches the wire values the backend emits.
// Valid values are defined as constants below.
type Role string

const (
	// RoleManager can review and edit time entries for their team.
	RoleManager Role = "gestao"
	// RoleEmployee records and views their own time entries.
	RoleEmployee Role = "funcionario"
	// RoleIntern is like RoleEmployee with a reduced workday.
	RoleIntern Role = "estagiario"
	// RoleAdmin administers accounts and collaborator records.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin is the unrestricted bootstrap role.
	RoleSuperAdmin Role = "administrador"
)

// NormalizeRole maps an incoming role string onto the fixed role set,
// case-insensitively. Unrecognized values yield ok=false; they are never
// stored verbatim, so garbage from any source cannot reach an access
// decision.
func NormalizeRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleManager:
		return RoleManager, true
	case RoleEmployee:
		return RoleEmployee, true
	case RoleIntern:
		return RoleIntern, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	default:
		return "", false
	}
}

// Profile is the best-known collaborator profile. Zero values mean the
// field has never been reported by any source.
type Profile struct {
	ID    int
	Code  string
	Name  string
	Email string
	Role  Role
	Title string
}

// IsEmpty reports whether no profile field has been populated yet.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// ProfilePatch is a partial profile update. Nil fields are "not reported"
// and never overwrite known values; merges are strictly additive.
type ProfilePatch struct {
	ID    *int
	Code  *string
	Name  *string
	Email *string
	Role  *Role
	Title *string
}

// Merge applies patch on top of p and returns the result. Only non-nil
// patch fields are taken; p is never mutated.
func (p Profile) Merge(patch ProfilePatch) Profile {
	merged := p
	if patch.ID != nil {
		merged.ID = *patch.ID
	}
	if patch.Code != nil {
		merged.Code = *patch.Code
	}
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Role != nil {
		merged.Role = *patch.Role
	}
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	return merged
}

// TokenHint is the provisional identity decoded locally from a legacy
// bearer token. It is a fast hint only; the server profile is always
// authoritative.
type TokenHint struct {
	Subject string
	Role    Role
}

// Snapshot is the materialized view of the current identity. Role and
// SubjectCode are derived from the last merged profile and never disagree
// with it.
type Snapshot struct {
	// Token is the persisted legacy bearer credential, empty when the
	// cookie session is the only mechanism in play.
	Token string

	// Role gates menus and routes. Empty means no role.
	Role Role

	// SubjectCode is the collaborator's stable external code (e.g. "116987").
	SubjectCode string

	// Profile holds the merged best-known profile fields.
	Profile Profile

	// Loaded is true once an identity resolution attempt has completed at
	// least once (success or failure) since the last reset.
	Loaded bool
}

// Authenticated reports whether the snapshot proves a live session:
// either a role or a subject code is known.
func (s Snapshot) Authenticated() bool {
	return s.Role != "" || s.SubjectCode != ""
}

// HasRole reports whether the snapshot's role is a member of allowed.
func (s Snapshot) HasRole(allowed []Role) bool {
	for _, r := range allowed {
		if s.Role == r {
			return true
		}
	}
	return false
}
