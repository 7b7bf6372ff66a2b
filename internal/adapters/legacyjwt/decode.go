package legacyjwt

// Package legacyjwt decodes the legacy bearer token locally, without
// signature verification. The decoded payload is a non-authoritative
// hint: it may pre-populate the role before the server answers, but
// access is never granted on the decode alone.

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/folha-ponto/ponto-client/internal/domain/auth"
)

// claims is the payload the legacy login endpoint signs into its tokens.
type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Decoder implements ports.CredentialDecoder over the legacy JWT format.
type Decoder struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewDecoder constructs a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Decode extracts the provisional identity hint from token. Malformed or
// expired tokens return an error wrapping auth.ErrInvalidCredential; they
// never panic. An unrecognized role in an otherwise valid token yields an
// empty hint role rather than an error.
func (d *Decoder) Decode(token string) (domainauth.TokenHint, error) {
	if token == "" {
		return domainauth.TokenHint{}, fmt.Errorf("empty token: %w", domainauth.ErrInvalidCredential)
	}

	var c claims
	if _, _, err := d.parser.ParseUnverified(token, &c); err != nil {
		return domainauth.TokenHint{}, fmt.Errorf("parse token: %w: %w", domainauth.ErrInvalidCredential, err)
	}

	if c.ExpiresAt != nil && c.ExpiresAt.Before(d.now()) {
		return domainauth.TokenHint{}, fmt.Errorf("token expired: %w", domainauth.ErrInvalidCredential)
	}

	hint := domainauth.TokenHint{Subject: c.Subject}
	if role, ok := domainauth.NormalizeRole(c.Role); ok {
		hint.Role = role
	}
	return hint, nil
}
