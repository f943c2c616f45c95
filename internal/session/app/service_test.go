package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/session/domain"
)

type memStore struct {
	mu    sync.Mutex
	state domain.State
	seq   uint64
}

func (m *memStore) State() domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *memStore) Dispatch(a domain.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = domain.Reduce(m.state, a)
}

func (m *memStore) NextRequestID() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return m.seq
}

type fakeAuth struct {
	calls int
	res   domain.AuthResult
	err   error
}

func (f *fakeAuth) Login(ctx context.Context, creds domain.Credentials) (domain.AuthResult, error) {
	f.calls++
	return f.res, f.err
}

type fakeRegistrar struct{ got domain.RegistrationData }

func (f *fakeRegistrar) Register(ctx context.Context, data domain.RegistrationData) (domain.AuthResult, error) {
	f.got = data
	return domain.AuthResult{Token: "reg-token", User: domain.User{ID: "u-1", Username: data.Username, Email: data.Email}}, nil
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("token only response", func(t *testing.T) {
		store := &memStore{}
		svc := NewService(store, &fakeAuth{res: domain.AuthResult{Token: "tok"}}, &fakeRegistrar{})

		require.NoError(t, svc.Login(ctx, "  mor_2314 ", "83r5^_"))
		st := store.State()
		assert.True(t, st.IsAuthenticated)
		assert.Equal(t, "tok", st.Token)
		require.NotNil(t, st.User)
		assert.Equal(t, "mor_2314", st.User.Username)
		assert.Equal(t, "mor_2314", st.User.ID)
	})

	t.Run("rejected", func(t *testing.T) {
		store := &memStore{}
		svc := NewService(store, &fakeAuth{err: ErrInvalidCredentials}, &fakeRegistrar{})

		err := svc.Login(ctx, "mor_2314", "bad")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		st := store.State()
		assert.False(t, st.IsAuthenticated)
		assert.False(t, st.Loading)
		assert.Equal(t, "login failed", st.Error)
	})

	t.Run("missing fields never reach upstream", func(t *testing.T) {
		store := &memStore{}
		auth := &fakeAuth{}
		svc := NewService(store, auth, &fakeRegistrar{})

		err := svc.Login(ctx, " ", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, 0, auth.calls)
		assert.Equal(t, "username is required, password is required: invalid input", store.State().Error)
	})

	t.Run("failure keeps existing session", func(t *testing.T) {
		store := &memStore{}
		auth := &fakeAuth{res: domain.AuthResult{Token: "first", User: domain.User{ID: "7", Username: "kate"}}}
		svc := NewService(store, auth, &fakeRegistrar{})
		require.NoError(t, svc.Login(ctx, "kate", "pw"))

		auth.err = errors.New("POST /auth/login: connection refused")
		require.Error(t, svc.Login(ctx, "kate", "pw"))

		st := store.State()
		assert.True(t, st.IsAuthenticated)
		assert.Equal(t, "first", st.Token)
		assert.Equal(t, "7", st.User.ID)
		assert.Contains(t, st.Error, "connection refused")

		svc.ClearError()
		assert.Empty(t, store.State().Error)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		store := &memStore{}
		reg := &fakeRegistrar{}
		svc := NewService(store, &fakeAuth{}, reg)

		err := svc.Register(ctx, domain.RegistrationData{Username: " ana ", Password: "secret1", Email: "ana@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "ana", reg.got.Username)
		st := store.State()
		assert.True(t, st.IsAuthenticated)
		assert.Equal(t, "reg-token", st.Token)
	})

	cases := []struct {
		name string
		data domain.RegistrationData
		msg  string
	}{
		{"short password", domain.RegistrationData{Username: "ana", Password: "123"}, "password must be at least 6 characters"},
		{"bad email", domain.RegistrationData{Username: "ana", Password: "secret1", Email: "ana@"}, "email must be a valid email address"},
		{"no username", domain.RegistrationData{Password: "secret1"}, "username is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &memStore{}
			svc := NewService(store, &fakeAuth{}, &fakeRegistrar{})

			err := svc.Register(ctx, tc.data)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, store.State().Error, tc.msg)
			assert.False(t, store.State().IsAuthenticated)
		})
	}
}

func TestLogout(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, &fakeAuth{res: domain.AuthResult{Token: "tok"}}, &fakeRegistrar{})
	require.NoError(t, svc.Login(context.Background(), "kate", "pw"))

	svc.Logout()
	assert.Equal(t, domain.Initial(), store.State())
	svc.Logout()
	assert.Equal(t, domain.Initial(), store.State())
}
