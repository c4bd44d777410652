package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const restTimeout = 15 * time.Second

// RESTStore talks to the hosted PostgREST-compatible data API. Conditions
// map to field=op.value query parameters and ordering to order=field.dir.
type RESTStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

// NewRESTStore creates a REST backend rooted at baseURL (e.g.
// "https://xyz.example.co/rest/v1"). The API key is sent both as the
// apikey header and as a bearer token, which is what the hosted store expects.
func NewRESTStore(baseURL, apiKey string, logger *zap.Logger) *RESTStore {
	return &RESTStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: restTimeout},
		logger:  logger,
	}
}

// Select fetches rows matching q.
func (s *RESTStore) Select(ctx context.Context, collection string, q Query) ([]json.RawMessage, error) {
	if !KnownCollection(collection) {
		return nil, requestErr(collection, "select", "unknown collection", nil)
	}

	params := url.Values{}
	params.Set("select", "*")
	for _, c := range q.Conds {
		params.Set(c.Field, condParam(c))
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+collection, nil)
	if err != nil {
		return nil, requestErr(collection, "select", "building request", err)
	}
	req.URL.RawQuery = params.Encode()
	s.setHeaders(req)

	var rows []json.RawMessage
	if err := s.do(req, collection, "select", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Insert creates a record and returns the created row.
func (s *RESTStore) Insert(ctx context.Context, collection string, record any) (json.RawMessage, error) {
	if !KnownCollection(collection) {
		return nil, requestErr(collection, "insert", "unknown collection", nil)
	}

	body, err := json.Marshal(record)
	if err != nil {
		return nil, requestErr(collection, "insert", "encoding record", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+collection, bytes.NewReader(body))
	if err != nil {
		return nil, requestErr(collection, "insert", "building request", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	// The store answers an insert with a one-element array.
	var rows []json.RawMessage
	if err := s.do(req, collection, "insert", &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, requestErr(collection, "insert", "no row returned", nil)
	}
	return rows[0], nil
}

// Update patches a record by id.
func (s *RESTStore) Update(ctx context.Context, collection string, id uuid.UUID, patch map[string]any) error {
	if !KnownCollection(collection) {
		return requestErr(collection, "update", "unknown collection", nil)
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return requestErr(collection, "update", "encoding patch", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.baseURL+"/"+collection, bytes.NewReader(body))
	if err != nil {
		return requestErr(collection, "update", "building request", err)
	}
	req.URL.RawQuery = url.Values{"id": {"eq." + id.String()}}.Encode()
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	return s.do(req, collection, "update", nil)
}

// Delete removes a record by id.
func (s *RESTStore) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	if !KnownCollection(collection) {
		return requestErr(collection, "delete", "unknown collection", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.baseURL+"/"+collection, nil)
	if err != nil {
		return requestErr(collection, "delete", "building request", err)
	}
	req.URL.RawQuery = url.Values{"id": {"eq." + id.String()}}.Encode()
	s.setHeaders(req)

	return s.do(req, collection, "delete", nil)
}

func (s *RESTStore) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
}

func (s *RESTStore) do(req *http.Request, collection, op string, target any) error {
	if s.logger != nil {
		s.logger.Debug("store request",
			zap.String("op", op),
			zap.String("collection", collection),
			zap.String("url", req.URL.String()),
		)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return requestErr(collection, op, "request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return requestErr(collection, op, "reading response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return requestErr(collection, op, restErrorMessage(resp.StatusCode, data), nil)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return requestErr(collection, op, "decoding response", err)
	}
	return nil
}

// restErrorMessage pulls the store's message field out of an error body,
// falling back to the HTTP status.
func restErrorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("unexpected status %d", status)
}

func condParam(c Cond) string {
	switch c.Op {
	case OpIn:
		vals, _ := c.Value.([]string)
		return "in.(" + strings.Join(vals, ",") + ")"
	default:
		return "eq." + fmt.Sprint(c.Value)
	}
}
