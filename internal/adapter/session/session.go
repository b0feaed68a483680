// Package session holds the credentials of the storefront user.
//
// A [Session] is created once and injected into every component that reads
// or writes the token pair; there is no package level state.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CredentialsStore = (*Session)(nil)

type Backend interface {
	Load(context.Context) (domain.Credentials, error)
	Save(context.Context, domain.Credentials) error
}

type Session struct {
	backend Backend

	mu    sync.RWMutex
	creds domain.Credentials
}

// Open loads persisted credentials from the backend.
func Open(ctx context.Context, backend Backend) (*Session, error) {
	const op = "session.Open"

	creds, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Session{backend: backend, creds: creds}, nil
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Access
}

func (s *Session) Credentials() domain.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// SetCredentials persists creds and makes them visible to readers.
// In-memory credentials are left untouched if persisting fails.
func (s *Session) SetCredentials(ctx context.Context, creds domain.Credentials) error {
	const op = "Session.SetCredentials"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Save(ctx, creds); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.creds = creds
	return nil
}
