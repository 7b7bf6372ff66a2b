package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folha-ponto/ponto-client/config"
	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
	"github.com/folha-ponto/ponto-client/internal/domain/route"
	"github.com/folha-ponto/ponto-client/internal/testutil"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	cfg := config.AppConfig{
		API: config.APIConfig{BaseURL: "http://localhost:8000"},
		Session: config.SessionConfig{
			TokenStore: config.TokenStoreFile,
			TokenFile:  filepath.Join(t.TempDir(), "token"),
		},
	}
	cfg.Sanitize()
	return cfg
}

func TestBuildCredentialStore_File(t *testing.T) {
	cfg := testConfig(t)
	store, err := BuildCredentialStore(cfg.Session)
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestBuildCredentialStore_FileRequiresPath(t *testing.T) {
	_, err := BuildCredentialStore(config.SessionConfig{TokenStore: config.TokenStoreFile})
	assert.Error(t, err)
}

func TestBuildCredentialStore_RedisRequiresTerminal(t *testing.T) {
	_, err := BuildCredentialStore(config.SessionConfig{
		TokenStore: config.TokenStoreRedis,
		Redis:      config.RedisConfig{Addr: "localhost:6379"},
	})
	assert.Error(t, err, "redis mode without a terminal name must fail")
}

func TestBuildCredentialStore_UnknownMode(t *testing.T) {
	_, err := BuildCredentialStore(config.SessionConfig{TokenStore: "postgres"})
	assert.Error(t, err)
}

func TestBuildSessionLayer(t *testing.T) {
	deps := SessionDeps{Config: testConfig(t), Logger: testutil.DiscardLogger()}

	layer, err := BuildSessionLayer(deps)
	require.NoError(t, err)
	require.NotNil(t, layer.Client)
	require.NotNil(t, layer.Sessions)

	snap := layer.Sessions.Snapshot()
	assert.False(t, snap.Loaded)
	assert.False(t, snap.Authenticated())
}

func TestBuildGuard(t *testing.T) {
	deps := SessionDeps{Config: testConfig(t), Logger: testutil.DiscardLogger()}

	layer, err := BuildSessionLayer(deps)
	require.NoError(t, err)

	guard := BuildGuard(layer.Sessions, deps)
	assert.NotNil(t, guard)
}

func TestAppRoutes_CoverOriginalPages(t *testing.T) {
	paths := map[string]bool{}
	for _, r := range AppRoutes() {
		paths[r.Path] = true
	}

	for _, want := range []string{"/", "/dashboard", "/visualizar", "/editar", "/bater-ponto", "/acesso-negado"} {
		assert.True(t, paths[want], "route %q missing", want)
	}
}

func TestAppRoutes_ProtectedPagesDemandSession(t *testing.T) {
	table := route.NewTable(AppRoutes(), nil)

	for _, path := range []string{"/dashboard", "/visualizar", "/editar", "/bater-ponto"} {
		desc := table.Match(path)
		assert.False(t, desc.Public, "route %q must not be public alongside the login root", path)
		assert.True(t, desc.RequiresAuth, "route %q must demand a session", path)
	}

	assert.True(t, table.Match("/").Public, "root is the login page")
	assert.True(t, table.Match("/acesso-negado").Public, "forbidden screen must render without a session")
}

func TestAppRoutes_EditRestrictedToManagement(t *testing.T) {
	table := route.NewTable(AppRoutes(), nil)

	desc := table.Match("/editar")
	assert.ElementsMatch(t,
		[]domainauth.Role{domainauth.RoleManager, domainauth.RoleAdmin, domainauth.RoleSuperAdmin},
		desc.Roles)

	assert.Empty(t, table.Match("/dashboard").Roles, "dashboard is role-agnostic")
}
