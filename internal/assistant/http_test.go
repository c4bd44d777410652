package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHTTPAssistant_Reply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "How do I screen for Go experience?", req.Prompt)
		assert.Equal(t, "r-123", req.RecruiterID)
		json.NewEncoder(w).Encode(chatResponse{Reply: "Ask about goroutine leaks."})
	}))
	defer srv.Close()

	a := NewHTTPAssistant(srv.URL, zap.NewNop())
	reply, err := a.Reply(context.Background(), "How do I screen for Go experience?", "r-123")
	require.NoError(t, err)
	assert.Equal(t, "Ask about goroutine leaks.", reply)
}

func TestHTTPAssistant_TransportFailureIsGeneric(t *testing.T) {
	a := NewHTTPAssistant("http://127.0.0.1:1", zap.NewNop())
	_, err := a.Reply(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPAssistant_EndpointErrorPassesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(chatResponse{Error: "prompt too long"})
	}))
	defer srv.Close()

	a := NewHTTPAssistant(srv.URL, zap.NewNop())
	_, err := a.Reply(context.Background(), "hello", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt too long")
}

func TestHTTPAssistant_UndecodableBodyIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	a := NewHTTPAssistant(srv.URL, zap.NewNop())
	_, err := a.Reply(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}
