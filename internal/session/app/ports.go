package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/session/domain"
)

type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error)
}

// Registrar creates an account and returns a session for it.
type Registrar interface {
	Register(ctx context.Context, data domain.RegistrationData) (domain.AuthResult, error)
}

type StateStore interface {
	State() domain.State
	Dispatch(action domain.Action)
	NextRequestID() uint64
}
