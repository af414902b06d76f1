// Package service holds the client-side state model: the session and cart
// stores plus the catalog and order synchronization flows. Stores are built
// once at startup and injected; none of them is a package-level global.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/petuniaboards/storefront/internal/core/domain"
	"github.com/petuniaboards/storefront/internal/core/ports"
)

// SessionStore holds the authenticated user and bearer token. The two fields
// are always set or cleared together under one critical section.
type SessionStore struct {
	gateway  ports.Gateway
	creds    ports.CredentialStore
	validate *validator.Validate
	log      zerolog.Logger

	mu      sync.RWMutex
	user    *domain.User
	token   string
	loading bool
	booted  bool
}

func NewSessionStore(gateway ports.Gateway, creds ports.CredentialStore, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		gateway:  gateway,
		creds:    creds,
		validate: validator.New(),
		log:      log,
	}
}

// SignIn authenticates against the backend and persists the credentials for
// the next bootstrap. The session is left untouched on any failure.
func (s *SessionStore) SignIn(ctx context.Context, creds domain.Credentials) error {
	return s.signIn(ctx, creds, false)
}

func (s *SessionStore) signIn(ctx context.Context, creds domain.Credentials, bootstrap bool) error {
	if err := s.validate.Struct(creds); err != nil {
		return validationError(err)
	}

	user, token, err := s.gateway.SignIn(ctx, creds)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	if !bootstrap {
		// A persisted entry must always correspond to a successful sign-in,
		// so it is written only after the gateway call succeeded. Bootstrap
		// restores an existing entry and must not rewrite it.
		if err := s.creds.Save(ctx, creds); err != nil {
			s.log.Warn().Err(err).Msg("could not persist credentials")
		}
	}

	s.log.Info().Str("email", creds.Email).Bool("bootstrap", bootstrap).Msg("signed in")
	return nil
}

// Bootstrap runs the one-time startup sign-in from persisted credentials.
// Failures are swallowed: the user lands on the unauthenticated flow instead
// of seeing an error. Subsequent calls are no-ops.
func (s *SessionStore) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	if s.booted {
		s.mu.Unlock()
		return
	}
	s.booted = true
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	creds, err := s.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredentials) {
			s.log.Warn().Err(err).Msg("could not read stored credentials")
		}
		return
	}

	if err := s.signIn(ctx, creds, true); err != nil {
		// Stale or revoked credentials; session stays empty.
		s.log.Warn().Err(err).Msg("session bootstrap failed")
	}
}

// SignUp registers a new account. Registration does not imply login, so the
// session is never mutated here.
func (s *SessionStore) SignUp(ctx context.Context, reg domain.Registration) error {
	if err := s.validate.Struct(reg); err != nil {
		return validationError(err)
	}
	if err := s.gateway.SignUp(ctx, reg); err != nil {
		return err
	}
	s.log.Info().Str("email", reg.Email).Msg("account registered")
	return nil
}

// SignOut clears the session and deletes the persisted credential entry,
// unconditionally and without contacting the server.
func (s *SessionStore) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	return s.creds.Delete(ctx)
}

// User returns the signed-in user, or nil.
func (s *SessionStore) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the active bearer token, or "".
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Loading reports whether a bootstrap sign-in is in flight; the presentation
// layer blocks navigation decisions on it.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
