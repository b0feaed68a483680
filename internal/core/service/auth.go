package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// An Auth runs the login and register forms and is the only writer of the
// credentials store.
type Auth struct {
	api   port.AuthAPI
	creds port.CredentialsStore

	mu         sync.Mutex
	submitting bool
	notice     string
}

func NewAuth(api port.AuthAPI, creds port.CredentialsStore) *Auth {
	return &Auth{api: api, creds: creds}
}

// Login authenticates and persists the issued tokens. Nothing is written
// on failure.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	const op = "Auth.Login"

	if err := a.begin(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer a.end()

	if err := a.login(ctx, username, password); err != nil {
		a.setNotice(detailOr(err, MsgLoginFailed))
		slog.Warn("login failed", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Register creates the account and logs in with the same credentials.
func (a *Auth) Register(
	ctx context.Context, username, email, password string,
) error {
	const op = "Auth.Register"

	if err := a.begin(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer a.end()

	err := a.api.Register(ctx, username, email, password)
	if err == nil {
		err = a.login(ctx, username, password)
	}
	if err != nil {
		a.setNotice(registerFailureMessage(err))
		slog.Warn("register failed", "op", op, "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a *Auth) login(ctx context.Context, username, password string) error {
	creds, err := a.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return a.creds.SetCredentials(ctx, creds)
}

// registerFailureMessage picks detail, then the first username, email and
// password messages.
func registerFailureMessage(err error) string {
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		return MsgRegisterFailed
	}

	if apiErr.Detail != "" {
		return apiErr.Detail
	}
	for _, field := range []string{"username", "email", "password"} {
		if msg := apiErr.FieldError(field); msg != "" {
			return msg
		}
	}
	return MsgRegisterFailed
}

func (a *Auth) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.submitting {
		return domain.ErrBusy
	}
	a.submitting = true
	a.notice = ""
	return nil
}

func (a *Auth) end() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.submitting = false
}

func (a *Auth) Notice() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notice
}

func (a *Auth) setNotice(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notice = s
}

// LoggedIn reports whether an access token is stored.
func (a *Auth) LoggedIn() bool {
	return !a.creds.Credentials().Empty()
}
