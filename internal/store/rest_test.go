package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRESTStore_SelectBuildsQueryParams(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotAuth, gotAPIKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotAPIKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1"},{"id":"2"}]`))
	}))
	defer srv.Close()

	s := NewRESTStore(srv.URL, "secret-key", zap.NewNop())
	rows, err := s.Select(context.Background(), CollectionQuestions, Query{
		Conds:   []Cond{{Field: "interview_id", Op: OpEq, Value: "abc"}},
		OrderBy: "order_index",
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	assert.Equal(t, "/questions", gotPath)
	assert.Equal(t, []string{"eq.abc"}, gotQuery["interview_id"])
	assert.Equal(t, []string{"order_index.asc"}, gotQuery["order"])
	assert.Equal(t, []string{"10"}, gotQuery["limit"])
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "secret-key", gotAPIKey)
}

func TestRESTStore_SelectInOperator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "in.(a,b)", r.URL.Query().Get("interview_id"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	s := NewRESTStore(srv.URL, "k", zap.NewNop())
	_, err := s.Select(context.Background(), CollectionQuestions, Query{
		Conds: []Cond{{Field: "interview_id", Op: OpIn, Value: []string{"a", "b"}}},
	})
	require.NoError(t, err)
}

func TestRESTStore_InsertReturnsCreatedRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What is a goroutine?", body["text"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"text":"What is a goroutine?","order_index":1}]`))
	}))
	defer srv.Close()

	s := NewRESTStore(srv.URL, "k", zap.NewNop())
	row, err := s.Insert(context.Background(), CollectionQuestions, map[string]any{
		"text":        "What is a goroutine?",
		"order_index": 1,
	})
	require.NoError(t, err)

	var created Question
	require.NoError(t, json.Unmarshal(row, &created))
	assert.Equal(t, 1, created.OrderIndex)
}

func TestRESTStore_DeleteTargetsID(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq."+id.String(), r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewRESTStore(srv.URL, "k", zap.NewNop())
	require.NoError(t, s.Delete(context.Background(), CollectionQuestions, id))
}

func TestRESTStore_ErrorSurfacesStoreMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"permission denied for table questions"}`))
	}))
	defer srv.Close()

	s := NewRESTStore(srv.URL, "k", zap.NewNop())
	_, err := s.Select(context.Background(), CollectionQuestions, Query{})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, CollectionQuestions, reqErr.Collection)
	assert.Contains(t, reqErr.Message, "permission denied")
}

func TestRESTStore_UnknownCollectionRejected(t *testing.T) {
	s := NewRESTStore("http://localhost:1", "k", zap.NewNop())
	_, err := s.Select(context.Background(), "pg_shadow", Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown collection")
}
