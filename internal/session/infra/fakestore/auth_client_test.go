package fakestore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	gmux "github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/session/app"
	"github.com/dwikikusuma/storefront/internal/session/domain"
	"github.com/dwikikusuma/storefront/pkg/httpjson"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := gmux.NewRouter()
	mux.Methods("POST").Path("/auth/login").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		switch {
		case creds.Username == "mor_2314" && creds.Password == "83r5^_":
			_, _ = w.Write([]byte(`{"token":"eyJhbGciOi"}`))
		case creds.Username == "broken":
			w.WriteHeader(http.StatusBadGateway)
		case creds.Username == "silent":
			_, _ = w.Write([]byte(`{}`))
		default:
			http.Error(w, "username or password is incorrect", http.StatusUnauthorized)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuthClient_Login(t *testing.T) {
	srv := newServer(t)
	client := NewAuthClient(httpjson.New(srv.URL))
	ctx := context.Background()

	t.Run("token only", func(t *testing.T) {
		res, err := client.Login(ctx, domain.Credentials{Username: "mor_2314", Password: "83r5^_"})
		require.NoError(t, err)
		assert.Equal(t, "eyJhbGciOi", res.Token)
		assert.Empty(t, res.User.Username)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		_, err := client.Login(ctx, domain.Credentials{Username: "mor_2314", Password: "nope"})
		require.Error(t, err)
		assert.ErrorIs(t, err, app.ErrInvalidCredentials)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("upstream failure is not a credential error", func(t *testing.T) {
		_, err := client.Login(ctx, domain.Credentials{Username: "broken", Password: "x"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, app.ErrInvalidCredentials)
		assert.True(t, httpjson.IsStatus(err, http.StatusBadGateway))
	})

	t.Run("no token", func(t *testing.T) {
		_, err := client.Login(ctx, domain.Credentials{Username: "silent", Password: "x"})
		assert.ErrorIs(t, err, app.ErrInvalidCredentials)
	})
}
