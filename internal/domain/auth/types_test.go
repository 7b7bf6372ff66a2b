package auth

import "testing"

func TestNormalizeRole_CaseInsensitive(t *testing.T) {
	for _, v := range []string{"gestao", "Gestao", "GESTAO", "  gestao "} {
		role, ok := NormalizeRole(v)
		if !ok || role != RoleManager {
			t.Fatalf("NormalizeRole(%q) = (%q, %v), want (gestao, true)", v, role, ok)
		}
	}
}

func TestNormalizeRole_FixedSet(t *testing.T) {
	cases := map[string]Role{
		"funcionario":   RoleEmployee,
		"Estagiario":    RoleIntern,
		"ADMIN":         RoleAdmin,
		"Administrador": RoleSuperAdmin,
	}
	for in, want := range cases {
		got, ok := NormalizeRole(in)
		if !ok || got != want {
			t.Fatalf("NormalizeRole(%q) = (%q, %v), want (%q, true)", in, got, ok, want)
		}
	}
}

func TestNormalizeRole_Unknown(t *testing.T) {
	for _, v := range []string{"", "root", "gestao2", "manager", "<script>"} {
		role, ok := NormalizeRole(v)
		if ok || role != "" {
			t.Fatalf("NormalizeRole(%q) = (%q, %v), want rejection", v, role, ok)
		}
	}
}

func TestProfile_MergeAdditive(t *testing.T) {
	id := 7
	code := "116987"
	name := "Maria"
	base := Profile{}.Merge(ProfilePatch{ID: &id, Code: &code, Name: &name})

	// A later partial patch must not erase known fields.
	email := "maria@example.com"
	merged := base.Merge(ProfilePatch{Email: &email})
	if merged.ID != 7 || merged.Code != "116987" || merged.Name != "Maria" {
		t.Fatalf("partial patch clobbered known fields: %+v", merged)
	}
	if merged.Email != "maria@example.com" {
		t.Fatalf("patch field not applied: %+v", merged)
	}
}

func TestProfile_MergeIdempotent(t *testing.T) {
	role := RoleManager
	code := "42"
	patch := ProfilePatch{Code: &code, Role: &role}

	once := Profile{}.Merge(patch)
	twice := once.Merge(patch)
	if once != twice {
		t.Fatalf("repeated patch changed profile: %+v vs %+v", once, twice)
	}
}

func TestProfile_IsEmpty(t *testing.T) {
	if !(Profile{}).IsEmpty() {
		t.Fatal("zero profile should be empty")
	}
	if (Profile{Code: "1"}).IsEmpty() {
		t.Fatal("populated profile should not be empty")
	}
}

func TestSnapshot_Authenticated(t *testing.T) {
	if (Snapshot{}).Authenticated() {
		t.Fatal("empty snapshot must not count as authenticated")
	}
	if !(Snapshot{Role: RoleEmployee}).Authenticated() {
		t.Fatal("role alone proves a session")
	}
	if !(Snapshot{SubjectCode: "116987"}).Authenticated() {
		t.Fatal("subject code alone proves a session")
	}
}

func TestSnapshot_HasRole(t *testing.T) {
	s := Snapshot{Role: RoleEmployee}
	if s.HasRole([]Role{RoleManager}) {
		t.Fatal("funcionario must not pass a gestao-only set")
	}
	if !s.HasRole([]Role{RoleManager, RoleEmployee}) {
		t.Fatal("member role should pass")
	}
	if s.HasRole(nil) {
		t.Fatal("empty set matches nothing")
	}
}
