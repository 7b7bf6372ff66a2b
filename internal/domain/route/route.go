package route

// Package route models the navigation tree's access descriptors. The
// guard reads this; it never writes. Unknown paths are protected by
// default so a missing descriptor fails closed.

import (
	"strings"

	"github.com/folha-ponto/ponto-client/internal/domain/auth"
)

// Route declares access requirements for one path in the navigation tree.
// Children inherit a parent's Public flag: a public subtree never waits on
// identity resolution.
type Route struct {
	// Path is absolute for top-level routes and relative for children.
	Path string

	// Public admits the route without any authentication check.
	Public bool

	// RequiresAuth demands a live session. Independent of Roles: a route
	// can require login without restricting by role.
	RequiresAuth bool

	// Roles, when non-empty, restricts the route to the listed roles.
	Roles []auth.Role

	Children []Route
}

// Descriptor is the flattened access view for one concrete path, with
// ancestor flags already folded in.
type Descriptor struct {
	Path         string
	Public       bool
	RequiresAuth bool
	Roles        []auth.Role

	// Known is false when no declared route matched and the fail-closed
	// default applied.
	Known bool
}

// Table resolves concrete paths to descriptors.
type Table struct {
	flat   map[string]Descriptor
	public map[string]struct{}
}

// NewTable flattens the route tree and records the extra always-public
// paths from configuration.
func NewTable(routes []Route, publicPaths []string) *Table {
	t := &Table{
		flat:   make(map[string]Descriptor),
		public: make(map[string]struct{}, len(publicPaths)),
	}
	for _, p := range publicPaths {
		t.public[normalize(p)] = struct{}{}
	}
	for _, r := range routes {
		t.flatten("", r, false)
	}
	return t
}

func (t *Table) flatten(prefix string, r Route, parentPublic bool) {
	full := join(prefix, r.Path)
	public := parentPublic || r.Public
	t.flat[full] = Descriptor{
		Path:         full,
		Public:       public,
		RequiresAuth: r.RequiresAuth,
		Roles:        append([]auth.Role(nil), r.Roles...),
		Known:        true,
	}
	for _, child := range r.Children {
		t.flatten(full, child, public)
	}
}

// Match returns the descriptor for path. The literal root and the
// configured allow-list are always public; any other undeclared path is
// treated as requiring authentication.
func (t *Table) Match(path string) Descriptor {
	p := normalize(path)

	if desc, ok := t.flat[p]; ok {
		if _, allow := t.public[p]; allow {
			desc.Public = true
		}
		return desc
	}

	if _, allow := t.public[p]; allow || p == "/" {
		return Descriptor{Path: p, Public: true}
	}

	// Fail closed for anything not declared.
	return Descriptor{Path: p, RequiresAuth: true}
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func join(prefix, path string) string {
	if prefix == "" || prefix == "/" {
		return normalize(path)
	}
	if path == "" {
		return normalize(prefix)
	}
	return normalize(prefix + "/" + strings.TrimPrefix(path, "/"))
}
