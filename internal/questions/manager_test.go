package questions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkoster/hireboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	interviews []store.Interview
	questions  []store.Question

	createInterviewCalls int
	createQuestionCalls  int
	deleteCalls          int
	deleteErr            error
	createQuestionErr    error
}

func (f *fakeBackend) ListInterviews(_ context.Context, recruiterID uuid.UUID) ([]store.Interview, error) {
	var mine []store.Interview
	for _, iv := range f.interviews {
		if iv.RecruiterID == recruiterID {
			mine = append(mine, iv)
		}
	}
	return mine, nil
}

func (f *fakeBackend) CreateInterview(_ context.Context, recruiterID uuid.UUID, title string) (*store.Interview, error) {
	f.createInterviewCalls++
	iv := store.Interview{ID: uuid.New(), RecruiterID: recruiterID, Title: title, CreatedAt: time.Now()}
	// Newest first, matching the store ordering.
	f.interviews = append([]store.Interview{iv}, f.interviews...)
	return &iv, nil
}

func (f *fakeBackend) ListQuestions(_ context.Context) ([]store.Question, error) {
	return f.questions, nil
}

func (f *fakeBackend) CreateQuestion(_ context.Context, interviewID uuid.UUID, text string, orderIndex int) (*store.Question, error) {
	f.createQuestionCalls++
	if f.createQuestionErr != nil {
		return nil, f.createQuestionErr
	}
	q := store.Question{ID: uuid.New(), InterviewID: interviewID, Text: text, OrderIndex: orderIndex}
	f.questions = append(f.questions, q)
	return &q, nil
}

func (f *fakeBackend) DeleteQuestion(_ context.Context, id uuid.UUID) error {
	f.deleteCalls++
	return f.deleteErr
}

func TestAdd_FirstAddCreatesExactlyOneInterview(t *testing.T) {
	backend := &fakeBackend{}
	m := NewManager(backend, zap.NewNop())
	recruiter := uuid.New()

	list, q1, err := m.Add(context.Background(), nil, recruiter, "Tell me about a recent project.")
	require.NoError(t, err)
	require.NotNil(t, q1)
	assert.Equal(t, 1, backend.createInterviewCalls)
	assert.Equal(t, 1, q1.OrderIndex)
	require.Len(t, list, 1)

	// Second add reuses the interview.
	list, q2, err := m.Add(context.Background(), list, recruiter, "How do you test your code?")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.createInterviewCalls)
	assert.Equal(t, q1.InterviewID, q2.InterviewID)
	assert.Equal(t, 2, q2.OrderIndex)
	assert.Len(t, list, 2)
}

func TestAdd_UsesMostRecentInterview(t *testing.T) {
	recruiter := uuid.New()
	older := store.Interview{ID: uuid.New(), RecruiterID: recruiter}
	newer := store.Interview{ID: uuid.New(), RecruiterID: recruiter}
	backend := &fakeBackend{interviews: []store.Interview{newer, older}}
	m := NewManager(backend, zap.NewNop())

	_, q, err := m.Add(context.Background(), nil, recruiter, "Why this company?")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, q.InterviewID)
	assert.Zero(t, backend.createInterviewCalls)
}

func TestAdd_RemoteFailureLeavesListUnchanged(t *testing.T) {
	recruiter := uuid.New()
	iv := store.Interview{ID: uuid.New(), RecruiterID: recruiter}
	existing := []store.Question{{ID: uuid.New(), InterviewID: iv.ID, OrderIndex: 1}}
	backend := &fakeBackend{
		interviews:        []store.Interview{iv},
		createQuestionErr: fmt.Errorf("insert rejected"),
	}
	m := NewManager(backend, zap.NewNop())

	list, q, err := m.Add(context.Background(), existing, recruiter, "text")
	require.Error(t, err)
	assert.Nil(t, q)
	assert.Equal(t, existing, list)
}

func TestAdd_OrderIndexCountsOnlyTargetInterview(t *testing.T) {
	recruiter := uuid.New()
	iv := store.Interview{ID: uuid.New(), RecruiterID: recruiter}
	otherInterview := uuid.New()
	list := []store.Question{
		{ID: uuid.New(), InterviewID: iv.ID, OrderIndex: 3},
		{ID: uuid.New(), InterviewID: otherInterview, OrderIndex: 9},
	}
	backend := &fakeBackend{interviews: []store.Interview{iv}}
	m := NewManager(backend, zap.NewNop())

	_, q, err := m.Add(context.Background(), list, recruiter, "next")
	require.NoError(t, err)
	assert.Equal(t, 4, q.OrderIndex)
}

func TestRemove_DropsExactlyThatIDWithOneRemoteCall(t *testing.T) {
	victim := uuid.New()
	keep := uuid.New()
	list := []store.Question{
		{ID: keep, OrderIndex: 1},
		{ID: victim, OrderIndex: 2},
	}
	backend := &fakeBackend{}
	m := NewManager(backend, zap.NewNop())

	patched, err := m.Remove(context.Background(), list, victim)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.deleteCalls)
	require.Len(t, patched, 1)
	assert.Equal(t, keep, patched[0].ID)
	// The survivor keeps its order index; no resequencing.
	assert.Equal(t, 1, patched[0].OrderIndex)
}

func TestRemove_RemoteFailureLeavesListUnchanged(t *testing.T) {
	list := []store.Question{{ID: uuid.New()}, {ID: uuid.New()}}
	backend := &fakeBackend{deleteErr: fmt.Errorf("delete rejected")}
	m := NewManager(backend, zap.NewNop())

	patched, err := m.Remove(context.Background(), list, list[0].ID)
	require.Error(t, err)
	assert.Equal(t, list, patched)
	assert.Equal(t, 1, backend.deleteCalls)
}

func TestList_FiltersToOwnedInterviews(t *testing.T) {
	recruiter := uuid.New()
	mine := store.Interview{ID: uuid.New(), RecruiterID: recruiter}
	theirs := store.Interview{ID: uuid.New(), RecruiterID: uuid.New()}
	backend := &fakeBackend{
		interviews: []store.Interview{mine, theirs},
		questions: []store.Question{
			{ID: uuid.New(), InterviewID: mine.ID, OrderIndex: 1},
			{ID: uuid.New(), InterviewID: theirs.ID, OrderIndex: 1},
			{ID: uuid.New(), InterviewID: mine.ID, OrderIndex: 2},
		},
	}
	m := NewManager(backend, zap.NewNop())

	got, err := m.List(context.Background(), recruiter)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].OrderIndex)
	assert.Equal(t, 2, got[1].OrderIndex)
}
