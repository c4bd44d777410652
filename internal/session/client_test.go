package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_SignInReturnsSession(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600,"user":{"id":"` + userID.String() + `","email":"r@example.com"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", zap.NewNop())
	sess, err := c.SignIn(context.Background(), "r@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, userID, sess.User.ID)
}

func TestClient_SignInBadCredentialsIsErrNoSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", zap.NewNop())
	_, err := c.SignIn(context.Background(), "r@example.com", "nope")
	require.ErrorIs(t, err, ErrNoSession)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestClient_CurrentUser(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"id":"` + userID.String() + `","email":"r@example.com"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", zap.NewNop())

	user, err := c.CurrentUser(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	_, err = c.CurrentUser(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = c.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClient_SignOutToleratesRevokedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key", zap.NewNop())
	assert.NoError(t, c.SignOut(context.Background(), "stale"))
}
