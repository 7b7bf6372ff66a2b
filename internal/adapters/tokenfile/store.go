package tokenfile

// Package tokenfile persists the legacy bearer credential as a single
// file on the local workstation. Absence of the file means "no legacy
// credential", not an error.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store is a file-backed credential store. Safe for concurrent use at the
// filesystem's atomicity level; the session service is the only writer.
type Store struct {
	path string
}

// NewStore creates a Store persisting to path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("tokenfile: path is required")
	}
	return &Store{path: path}, nil
}

// Load returns the stored credential, or "" when none is stored.
func (s *Store) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the credential with owner-only permissions. The write goes
// through a temp file and rename so a crash never leaves a torn token.
func (s *Store) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.New("tokenfile: refusing to save empty token")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.WriteString(token); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write token file: %w", err)
	}
	if err = tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod token file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close token file: %w", err)
	}
	if err = os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

// Clear removes the stored credential. Clearing an already-empty store is
// a no-op, keeping logout idempotent.
func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
