package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

var validCreds = domain.Credentials{Email: "alisson@email.com", Password: "123456"}

func newSessionFixture(gateway *stubGateway) (*SessionStore, *memCredStore) {
	creds := &memCredStore{}
	return NewSessionStore(gateway, creds, zerolog.Nop()), creds
}

func TestSessionStore_SignIn_Success(t *testing.T) {
	gateway := &stubGateway{
		signInFn: func(_ context.Context, creds domain.Credentials) (*domain.User, string, error) {
			require.Equal(t, validCreds, creds)
			return &domain.User{ID: 1, Name: "Alisson", Email: creds.Email}, "tok-123", nil
		},
	}
	session, creds := newSessionFixture(gateway)

	require.NoError(t, session.SignIn(context.Background(), validCreds))

	assert.True(t, session.Authenticated())
	assert.Equal(t, "tok-123", session.Token())
	assert.Equal(t, "Alisson", session.User().Name)
	assert.Equal(t, 1, creds.saves)
	require.NotNil(t, creds.creds)
	assert.Equal(t, validCreds, *creds.creds)
}

func TestSessionStore_SignIn_ValidationSkipsRequest(t *testing.T) {
	called := false
	gateway := &stubGateway{
		signInFn: func(context.Context, domain.Credentials) (*domain.User, string, error) {
			called = true
			return nil, "", nil
		},
	}
	session, creds := newSessionFixture(gateway)

	cases := []domain.Credentials{
		{Email: "", Password: "123456"},
		{Email: "not-an-email", Password: "123456"},
		{Email: "a@b.com", Password: "12345"},
	}
	for _, c := range cases {
		err := session.SignIn(context.Background(), c)
		require.Error(t, err)
	}

	assert.False(t, called, "validation failures must not reach the gateway")
	assert.False(t, session.Authenticated())
	assert.Equal(t, 0, creds.saves)
}

func TestSessionStore_SignIn_RemoteFailureLeavesSessionUntouched(t *testing.T) {
	gateway := &stubGateway{
		signInFn: func(context.Context, domain.Credentials) (*domain.User, string, error) {
			return nil, "", errors.New("invalid email or password")
		},
	}
	session, creds := newSessionFixture(gateway)

	err := session.SignIn(context.Background(), validCreds)
	require.EqualError(t, err, "invalid email or password")

	assert.Nil(t, session.User())
	assert.Empty(t, session.Token())
	assert.Equal(t, 0, creds.saves)
}

func TestSessionStore_Bootstrap_NoCredentials(t *testing.T) {
	called := false
	gateway := &stubGateway{
		signInFn: func(context.Context, domain.Credentials) (*domain.User, string, error) {
			called = true
			return nil, "", nil
		},
	}
	session, _ := newSessionFixture(gateway)

	session.Bootstrap(context.Background())

	assert.False(t, called)
	assert.False(t, session.Authenticated())
	assert.False(t, session.Loading())
}

func TestSessionStore_Bootstrap_ValidCredentials(t *testing.T) {
	calls := 0
	gateway := &stubGateway{
		signInFn: func(_ context.Context, creds domain.Credentials) (*domain.User, string, error) {
			calls++
			return &domain.User{ID: 1, Name: "Alisson", Email: creds.Email}, "tok-restored", nil
		},
	}
	creds := &memCredStore{creds: &validCreds}
	session := NewSessionStore(gateway, creds, zerolog.Nop())

	session.Bootstrap(context.Background())

	assert.True(t, session.Authenticated())
	assert.Equal(t, "tok-restored", session.Token())
	assert.Equal(t, 0, creds.saves, "bootstrap must not rewrite the credential entry")
	assert.False(t, session.Loading())

	// Bootstrap runs exactly once per process.
	session.Bootstrap(context.Background())
	assert.Equal(t, 1, calls)
}

func TestSessionStore_Bootstrap_StaleCredentialsSwallowed(t *testing.T) {
	gateway := &stubGateway{
		signInFn: func(context.Context, domain.Credentials) (*domain.User, string, error) {
			return nil, "", errors.New("invalid email or password")
		},
	}
	creds := &memCredStore{creds: &validCreds}
	session := NewSessionStore(gateway, creds, zerolog.Nop())

	session.Bootstrap(context.Background())

	assert.False(t, session.Authenticated())
	assert.False(t, session.Loading())
}

func TestSessionStore_SignUp(t *testing.T) {
	var got domain.Registration
	gateway := &stubGateway{
		signUpFn: func(_ context.Context, reg domain.Registration) error {
			got = reg
			return nil
		},
	}
	session, _ := newSessionFixture(gateway)

	reg := domain.Registration{Name: "Alisson", Email: "a@b.com", Password: "123456", ConfirmPassword: "123456"}
	require.NoError(t, session.SignUp(context.Background(), reg))
	assert.Equal(t, reg, got)

	// Registration never signs the user in.
	assert.False(t, session.Authenticated())
}

func TestSessionStore_SignUp_MismatchedConfirmation(t *testing.T) {
	called := false
	gateway := &stubGateway{
		signUpFn: func(context.Context, domain.Registration) error {
			called = true
			return nil
		},
	}
	session, _ := newSessionFixture(gateway)

	reg := domain.Registration{Name: "Alisson", Email: "a@b.com", Password: "123456", ConfirmPassword: "654321"}
	err := session.SignUp(context.Background(), reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")
	assert.False(t, called)
}

func TestSessionStore_SignOut_AlwaysClears(t *testing.T) {
	gateway := &stubGateway{
		signInFn: func(_ context.Context, creds domain.Credentials) (*domain.User, string, error) {
			return &domain.User{ID: 1, Email: creds.Email}, "tok", nil
		},
	}
	session, creds := newSessionFixture(gateway)

	require.NoError(t, session.SignIn(context.Background(), validCreds))
	require.NoError(t, session.SignOut(context.Background()))

	assert.Nil(t, session.User())
	assert.Empty(t, session.Token())
	assert.Nil(t, creds.creds)

	// Signing out an already-empty session is still fine.
	require.NoError(t, session.SignOut(context.Background()))
	assert.Equal(t, 2, creds.deletes)
}
