package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// Collections layers typed accessors over the generic Store interface.
// It carries no state beyond the backend handle.
type Collections struct {
	store Store
}

// NewCollections wraps a backend with typed accessors.
func NewCollections(s Store) *Collections {
	return &Collections{store: s}
}

// Store exposes the underlying backend for callers that need the generic API.
func (c *Collections) Store() Store {
	return c.store
}

// ListSubmissions returns the recruiter's submissions, newest first.
func (c *Collections) ListSubmissions(ctx context.Context, recruiterID uuid.UUID) ([]Submission, error) {
	rows, err := c.store.Select(ctx, CollectionSubmissions, Query{
		Conds:   []Cond{{Field: "recruiter_id", Op: OpEq, Value: recruiterID}},
		OrderBy: "created_at",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[Submission](CollectionSubmissions, rows)
}

// ListInterviews returns the recruiter's interviews, most recently created first.
func (c *Collections) ListInterviews(ctx context.Context, recruiterID uuid.UUID) ([]Interview, error) {
	rows, err := c.store.Select(ctx, CollectionInterviews, Query{
		Conds:   []Cond{{Field: "recruiter_id", Op: OpEq, Value: recruiterID}},
		OrderBy: "created_at",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[Interview](CollectionInterviews, rows)
}

// GetInterview fetches a single interview by id. Returns (nil, nil) when
// the record does not exist.
func (c *Collections) GetInterview(ctx context.Context, id uuid.UUID) (*Interview, error) {
	rows, err := c.store.Select(ctx, CollectionInterviews, Query{
		Conds: []Cond{{Field: "id", Op: OpEq, Value: id}},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	list, err := decodeRows[Interview](CollectionInterviews, rows)
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// CreateInterview inserts an interview and returns the created row.
func (c *Collections) CreateInterview(ctx context.Context, recruiterID uuid.UUID, title string) (*Interview, error) {
	row, err := c.store.Insert(ctx, CollectionInterviews, map[string]any{
		"id":           uuid.New(),
		"recruiter_id": recruiterID,
		"title":        title,
	})
	if err != nil {
		return nil, err
	}
	return decodeRow[Interview](CollectionInterviews, row)
}

// UpdateJobDescription saves the job description of an interview.
func (c *Collections) UpdateJobDescription(ctx context.Context, id uuid.UUID, description string) error {
	return c.store.Update(ctx, CollectionInterviews, id, map[string]any{
		"job_description": description,
	})
}

// ListQuestions returns all questions ordered by order index ascending.
// Ownership filtering happens post-fetch in the question manager.
func (c *Collections) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := c.store.Select(ctx, CollectionQuestions, Query{
		OrderBy: "order_index",
	})
	if err != nil {
		return nil, err
	}
	return decodeRows[Question](CollectionQuestions, rows)
}

// CreateQuestion inserts a question and returns the created row.
func (c *Collections) CreateQuestion(ctx context.Context, interviewID uuid.UUID, text string, orderIndex int) (*Question, error) {
	row, err := c.store.Insert(ctx, CollectionQuestions, map[string]any{
		"id":           uuid.New(),
		"interview_id": interviewID,
		"text":         text,
		"order_index":  orderIndex,
	})
	if err != nil {
		return nil, err
	}
	return decodeRow[Question](CollectionQuestions, row)
}

// DeleteQuestion removes a question by id.
func (c *Collections) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return c.store.Delete(ctx, CollectionQuestions, id)
}

// GetRecruiter fetches display metadata for a recruiter. Returns (nil, nil)
// when no profile row exists yet.
func (c *Collections) GetRecruiter(ctx context.Context, id uuid.UUID) (*Recruiter, error) {
	rows, err := c.store.Select(ctx, CollectionRecruiters, Query{
		Conds: []Cond{{Field: "id", Op: OpEq, Value: id}},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	list, err := decodeRows[Recruiter](CollectionRecruiters, rows)
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

func decodeRows[T any](collection string, rows []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := json.Unmarshal(row, &v); err != nil {
			return nil, requestErr(collection, "decode", "decoding row", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeRow[T any](collection string, row json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(row, &v); err != nil {
		return nil, requestErr(collection, "decode", "decoding row", err)
	}
	return &v, nil
}
