// Package localauth registers accounts without a server round trip. The commerce API
// has no registration endpoint, so the token and user id are generated here.
package localauth

import (
	"context"

	"github.com/google/uuid"

	"github.com/dwikikusuma/storefront/internal/session/domain"
)

type MockRegistrar struct {
	newID func() string
}

func NewMockRegistrar() *MockRegistrar {
	return &MockRegistrar{newID: uuid.NewString}
}

func (r *MockRegistrar) Register(ctx context.Context, data domain.RegistrationData) (domain.AuthResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.AuthResult{}, err
	}
	return domain.AuthResult{
		Token: r.newID(),
		User: domain.User{
			ID:        r.newID(),
			Username:  data.Username,
			Email:     data.Email,
			FirstName: data.FirstName,
			LastName:  data.LastName,
		},
	}, nil
}
