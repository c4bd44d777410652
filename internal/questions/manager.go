// Package questions manages the interview-question list: listing a
// recruiter's questions, attaching new ones, and removing them. Mutations
// call the remote store first and patch local state only on success; a
// failed call leaves the caller's list untouched.
package questions

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkoster/hireboard/internal/store"
	"go.uber.org/zap"
)

// DefaultInterviewTitle names the interview created on a recruiter's
// first question add.
const DefaultInterviewTitle = "General screening"

// Backend is the slice of the store the manager needs. *store.Collections
// satisfies it.
type Backend interface {
	ListInterviews(ctx context.Context, recruiterID uuid.UUID) ([]store.Interview, error)
	CreateInterview(ctx context.Context, recruiterID uuid.UUID, title string) (*store.Interview, error)
	ListQuestions(ctx context.Context) ([]store.Question, error)
	CreateQuestion(ctx context.Context, interviewID uuid.UUID, text string, orderIndex int) (*store.Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
}

// Manager coordinates question operations for one backend.
type Manager struct {
	backend Backend
	logger  *zap.Logger
}

// NewManager creates a question manager.
func NewManager(backend Backend, logger *zap.Logger) *Manager {
	return &Manager{backend: backend, logger: logger}
}

// List returns the recruiter's questions ordered by order index ascending.
// The store returns questions for all interviews; ownership is enforced
// post-fetch by filtering against the recruiter's interview set. This is
// a display concern, not a substitute for the store's access policy.
func (m *Manager) List(ctx context.Context, recruiterID uuid.UUID) ([]store.Question, error) {
	interviews, err := m.backend.ListInterviews(ctx, recruiterID)
	if err != nil {
		return nil, fmt.Errorf("listing interviews: %w", err)
	}
	owned := make(map[uuid.UUID]bool, len(interviews))
	for _, iv := range interviews {
		owned[iv.ID] = true
	}

	all, err := m.backend.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}

	mine := make([]store.Question, 0, len(all))
	for _, q := range all {
		if owned[q.InterviewID] {
			mine = append(mine, q)
		}
	}
	return mine, nil
}

// Add attaches a question to the recruiter's most recently created
// interview, creating one first when the recruiter has none. It returns
// the patched list and the created question; on any remote failure the
// returned list is the input unchanged.
func (m *Manager) Add(ctx context.Context, list []store.Question, recruiterID uuid.UUID, text string) ([]store.Question, *store.Question, error) {
	if text == "" {
		return list, nil, fmt.Errorf("question text is empty")
	}

	interviews, err := m.backend.ListInterviews(ctx, recruiterID)
	if err != nil {
		return list, nil, fmt.Errorf("listing interviews: %w", err)
	}

	var target *store.Interview
	if len(interviews) > 0 {
		// Interviews come back most recently created first.
		target = &interviews[0]
	} else {
		created, err := m.backend.CreateInterview(ctx, recruiterID, DefaultInterviewTitle)
		if err != nil {
			return list, nil, fmt.Errorf("creating interview: %w", err)
		}
		if m.logger != nil {
			m.logger.Info("created first interview",
				zap.String("recruiter", recruiterID.String()),
				zap.String("interview", created.ID.String()),
			)
		}
		target = created
	}

	question, err := m.backend.CreateQuestion(ctx, target.ID, text, nextOrderIndex(list, target.ID))
	if err != nil {
		return list, nil, fmt.Errorf("creating question: %w", err)
	}

	patched := make([]store.Question, 0, len(list)+1)
	patched = append(patched, list...)
	patched = append(patched, *question)
	return patched, question, nil
}

// Remove deletes one question remotely and drops exactly that identifier
// from the returned list. On remote failure the input list comes back
// unchanged. No retry.
func (m *Manager) Remove(ctx context.Context, list []store.Question, id uuid.UUID) ([]store.Question, error) {
	if err := m.backend.DeleteQuestion(ctx, id); err != nil {
		return list, fmt.Errorf("deleting question: %w", err)
	}

	patched := make([]store.Question, 0, len(list))
	for _, q := range list {
		if q.ID != id {
			patched = append(patched, q)
		}
	}
	return patched, nil
}

// nextOrderIndex is max(existing)+1 over the target interview's questions.
// Order indexes are never resequenced on delete.
func nextOrderIndex(list []store.Question, interviewID uuid.UUID) int {
	max := 0
	for _, q := range list {
		if q.InterviewID == interviewID && q.OrderIndex > max {
			max = q.OrderIndex
		}
	}
	return max + 1
}
