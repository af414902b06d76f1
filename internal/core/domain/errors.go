package domain

import "errors"

var (
	// ErrEmptyCart rejects order submission before any request is issued.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotAuthenticated guards operations that need a bearer token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoCredentials means no credential entry is persisted; bootstrap
	// treats it as "land on the unauthenticated flow", not a failure.
	ErrNoCredentials = errors.New("no stored credentials")

	// Backend-side conditions, shared with the stub API.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrProductNotFound    = errors.New("product not found")
)
