package api

// Package api is the HTTP adapter for the remote authentication service.
// The client carries a cookie jar so the HttpOnly session cookie rides
// every call without application code seeing it (the "ambient session").

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
	"golang.org/x/net/publicsuffix"
)

const (
	loginPath  = "/auth/login"
	logoutPath = "/auth/logout"
	whoAmIPath = "/me/colaborador"

	defaultTimeout = 15 * time.Second
)

// Options groups construction parameters for Client.
type Options struct {
	// BaseURL is the authentication service origin, e.g.
	// "https://folha-ponto.onrender.com".
	BaseURL string

	// Timeout bounds every request. Zero means the 15s default.
	Timeout time.Duration

	// Transport optionally overrides the underlying RoundTripper.
	Transport http.RoundTripper
}

// Client calls the authentication endpoints. Safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
}

// New constructs a Client with a fresh cookie jar.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("api: BaseURL is required")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", opts.BaseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http: &http.Client{
			Jar:       jar,
			Timeout:   timeout,
			Transport: opts.Transport,
		},
		baseURL: strings.TrimSuffix(base.String(), "/"),
	}, nil
}

// tokenResponse is the wire shape of POST /auth/login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges username/password for a legacy bearer token using the
// form-encoded legacy endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login rejected: %w", statusError(resp.StatusCode))
	}

	var body tokenResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return "", fmt.Errorf("decode login response: %w", decodeErr)
	}
	if body.AccessToken == "" {
		return "", errors.New("login response missing access_token")
	}
	return body.AccessToken, nil
}

// profileResponse is the wire shape of GET /me/colaborador. Every field
// may be absent; pointers keep "absent" distinct from zero values.
type profileResponse struct {
	ID    *int    `json:"id"`
	Code  *string `json:"code"`
	Name  *string `json:"nome"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
	Title *string `json:"cargo"`
}

// WhoAmI fetches the current profile over the ambient cookie session,
// optionally attaching a bearer token. Role strings are normalized here;
// an unrecognized role is reported as absent, never passed through.
func (c *Client) WhoAmI(ctx context.Context, bearer string) (domainauth.ProfilePatch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+whoAmIPath, nil)
	if err != nil {
		return domainauth.ProfilePatch{}, fmt.Errorf("build whoami request: %w", err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domainauth.ProfilePatch{}, fmt.Errorf("whoami request: %w: %w", domainauth.ErrResolutionFailed, err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domainauth.ProfilePatch{}, fmt.Errorf("whoami: %w", domainauth.ErrAuthorizationExpired)
	case resp.StatusCode != http.StatusOK:
		return domainauth.ProfilePatch{}, fmt.Errorf("whoami: %w: %w", domainauth.ErrResolutionFailed, statusError(resp.StatusCode))
	}

	var body profileResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil {
		return domainauth.ProfilePatch{}, fmt.Errorf("decode whoami response: %w: %w", domainauth.ErrResolutionFailed, decodeErr)
	}
	return body.toPatch(), nil
}

// Logout asks the server to drop the ambient session. The response body
// is ignored beyond success/failure.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+logoutPath, nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("logout rejected: %w", statusError(resp.StatusCode))
	}
	return nil
}

func (p profileResponse) toPatch() domainauth.ProfilePatch {
	patch := domainauth.ProfilePatch{
		ID:    p.ID,
		Code:  p.Code,
		Name:  p.Name,
		Email: p.Email,
		Title: p.Title,
	}
	if p.Role != nil {
		if role, ok := domainauth.NormalizeRole(*p.Role); ok {
			patch.Role = &role
		}
	}
	return patch
}

// statusError keeps HTTP failures in one comparable shape.
type statusError int

func (e statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", int(e))
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
