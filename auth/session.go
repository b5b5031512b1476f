// Package auth holds the per-visitor session: the stored credential, the
// user it belongs to, and the login, register and logout operations.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eringen/folio/api"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = errors.New("auth: not authenticated")

// CredentialStore persists the session credential between requests.
// Load returns "" when nothing is stored.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Session is the authentication state of one visitor. It is created per
// request, hydrated from the CredentialStore, and discarded afterwards.
type Session struct {
	client *api.Client
	store  CredentialStore
	now    func() time.Time

	token string
	user  *api.User
}

// New returns an unauthenticated Session. client must be anonymous; the
// session derives authenticated clients from it.
func New(client *api.Client, store CredentialStore) *Session {
	return &Session{client: client, store: store, now: time.Now}
}

// Hydrate restores the session from the stored credential. A credential
// that is expired or rejected by the API is cleared. Other API failures
// leave the credential in place and the session anonymous.
func (s *Session) Hydrate(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("auth: load credential: %w", err)
	}
	if token == "" {
		return nil
	}
	if expired(token, s.now()) {
		return s.store.Clear(ctx)
	}
	user, err := s.client.WithToken(token).Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			return s.store.Clear(ctx)
		}
		return fmt.Errorf("auth: restore session: %w", err)
	}
	s.token = token
	s.user = &user
	return nil
}

// Login signs in with email and password and stores the returned credential.
func (s *Session) Login(ctx context.Context, email, password string) error {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

// Register creates an account and signs in as it.
func (s *Session) Register(ctx context.Context, username, email, password string) error {
	res, err := s.client.Register(ctx, username, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, res)
}

func (s *Session) establish(ctx context.Context, res api.AuthResponse) error {
	if res.Token == "" {
		return fmt.Errorf("auth: login response carried no token")
	}
	if err := s.store.Save(ctx, res.Token); err != nil {
		return fmt.Errorf("auth: save credential: %w", err)
	}
	user := res.User
	s.token = res.Token
	s.user = &user
	return nil
}

// Logout forgets the credential.
func (s *Session) Logout(ctx context.Context) error {
	s.token = ""
	s.user = nil
	return s.store.Clear(ctx)
}

// User returns the signed-in user, or nil.
func (s *Session) User() *api.User {
	return s.user
}

// IsAuthenticated reports whether a user is signed in.
func (s *Session) IsAuthenticated() bool {
	return s.user != nil
}

// IsAdmin reports whether the signed-in user has the admin role.
func (s *Session) IsAdmin() bool {
	return s.user.IsAdmin()
}

// Client returns an API client carrying the session credential, or the
// anonymous client when signed out.
func (s *Session) Client() *api.Client {
	return s.client.WithToken(s.token)
}

// expired reports whether token is a JWT whose exp claim is in the past.
// Opaque tokens and tokens without exp are left to the API to judge.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
