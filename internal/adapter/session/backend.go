package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
)

const (
	accessKey  = "access"
	refreshKey = "refresh"
)

// DefaultPath returns the session file path in the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "storefront", "session.json"), nil
}

// A FileBackend keeps the token pair in a JSON file under two fixed keys.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) FileBackend {
	return FileBackend{path}
}

func (b FileBackend) Path() string {
	return b.path
}

// Load returns empty credentials when the file does not exist.
func (b FileBackend) Load(ctx context.Context) (domain.Credentials, error) {
	const op = "FileBackend.Load"

	if err := ctx.Err(); err != nil {
		return domain.Credentials{}, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Credentials{}, nil
		}
		return domain.Credentials{}, fmt.Errorf("%s: %w", op, err)
	}

	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		return domain.Credentials{}, fmt.Errorf("%s: malformed session file: %w", op, err)
	}
	return domain.Credentials{Access: kv[accessKey], Refresh: kv[refreshKey]}, nil
}

// Save replaces the file atomically.
func (b FileBackend) Save(ctx context.Context, creds domain.Credentials) (saveErr error) {
	const op = "FileBackend.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.MarshalIndent(map[string]string{
		accessKey:  creds.Access,
		refreshKey: creds.Refresh,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if saveErr != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// A MemoryBackend keeps credentials for the process lifetime.
type MemoryBackend struct {
	mu    sync.Mutex
	creds domain.Credentials
}

func NewMemoryBackend(initial domain.Credentials) *MemoryBackend {
	return &MemoryBackend{creds: initial}
}

func (b *MemoryBackend) Load(context.Context) (domain.Credentials, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.creds, nil
}

func (b *MemoryBackend) Save(_ context.Context, creds domain.Credentials) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.creds = creds
	return nil
}
