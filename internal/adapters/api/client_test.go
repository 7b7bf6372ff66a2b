package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return client, srv
}

func TestNew_RequiresAbsoluteBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{BaseURL: "folha-ponto.onrender.com"})
	assert.Error(t, err)
}

func TestClient_Login(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "maria@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "s3cret", r.PostForm.Get("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
	}))

	token, err := client.Login(context.Background(), "maria@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestClient_Login_BadCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "maria@example.com", "wrong")
	assert.Error(t, err)
}

func TestClient_WhoAmI_PartialFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/colaborador", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"116987","nome":"Maria"}`))
	}))

	patch, err := client.WhoAmI(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, patch.Code)
	assert.Equal(t, "116987", *patch.Code)
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Maria", *patch.Name)
	assert.Nil(t, patch.ID)
	assert.Nil(t, patch.Email)
	assert.Nil(t, patch.Role)
	assert.Nil(t, patch.Title)
}

func TestClient_WhoAmI_BearerHeader(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"role":"GESTAO"}`))
	}))

	patch, err := client.WhoAmI(context.Background(), "tok-123")
	require.NoError(t, err)
	require.NotNil(t, patch.Role)
	assert.Equal(t, domainauth.RoleManager, *patch.Role)
}

func TestClient_WhoAmI_GarbageRoleDropped(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"1","role":"root"}`))
	}))

	patch, err := client.WhoAmI(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, patch.Role, "unknown role must be reported as absent")
	require.NotNil(t, patch.Code)
}

func TestClient_WhoAmI_Unauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Não autenticado", http.StatusUnauthorized)
	}))

	_, err := client.WhoAmI(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainauth.ErrAuthorizationExpired)
}

func TestClient_WhoAmI_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.WhoAmI(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainauth.ErrResolutionFailed)
}

func TestClient_CookieSessionPersistsAcrossCalls(t *testing.T) {
	var sawCookie bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/", HttpOnly: true})
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
		case "/me/colaborador":
			if c, err := r.Cookie("session"); err == nil && c.Value == "abc" {
				sawCookie = true
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		}
	}))

	_, err := client.Login(context.Background(), "u", "p")
	require.NoError(t, err)

	_, err = client.WhoAmI(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, sawCookie, "ambient session cookie should ride the whoami call")
}

func TestClient_Logout(t *testing.T) {
	var called bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.Logout(context.Background()))
	assert.True(t, called)
}

func TestClient_Logout_ServerFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	assert.Error(t, client.Logout(context.Background()))
}
