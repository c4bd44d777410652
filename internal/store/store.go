// Package store is the adapter to the hosted row store. The rest of the
// codebase consumes the generic Store interface and the typed helpers in
// Collections; it never talks to a backend directly.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Collection names known to the adapter. Backends reject anything else,
// so a collection name is never interpolated from user input.
const (
	CollectionSubmissions = "submissions"
	CollectionInterviews  = "interviews"
	CollectionQuestions   = "questions"
	CollectionRecruiters  = "recruiters"
)

// knownCollections is the registry consulted by both backends.
var knownCollections = map[string]bool{
	CollectionSubmissions: true,
	CollectionInterviews:  true,
	CollectionQuestions:   true,
	CollectionRecruiters:  true,
}

// KnownCollection reports whether name is a collection this adapter serves.
func KnownCollection(name string) bool {
	return knownCollections[name]
}

// Supported condition operators.
const (
	OpEq = "eq"
	OpIn = "in"
)

// Cond is a single filter condition on a Select.
type Cond struct {
	Field string
	Op    string
	Value any
}

// Query describes a Select: conditions are combined with AND.
type Query struct {
	Conds   []Cond
	OrderBy string
	Desc    bool
	Limit   int
}

// Store is the generic boundary to the external row store. Rows travel as
// JSON documents so callers decode into whatever type they need.
type Store interface {
	Select(ctx context.Context, collection string, q Query) ([]json.RawMessage, error)
	Insert(ctx context.Context, collection string, record any) (json.RawMessage, error)
	Update(ctx context.Context, collection string, id uuid.UUID, patch map[string]any) error
	Delete(ctx context.Context, collection string, id uuid.UUID) error
}

// RequestError is returned for any failed store operation. The message is
// human-readable and safe to surface in a banner.
type RequestError struct {
	Collection string
	Op         string
	Message    string
	Cause      error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store %s on %s: %s: %v", e.Op, e.Collection, e.Message, e.Cause)
	}
	return fmt.Sprintf("store %s on %s: %s", e.Op, e.Collection, e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

func requestErr(collection, op, message string, cause error) *RequestError {
	return &RequestError{Collection: collection, Op: op, Message: message, Cause: cause}
}
