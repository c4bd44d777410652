package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records calls and plays back canned rows per collection.
type fakeStore struct {
	rows      map[string][]json.RawMessage
	insertErr error
	selects   []Query
	inserted  []any
	deleted   []uuid.UUID
	updates   []map[string]any
}

func (f *fakeStore) Select(_ context.Context, collection string, q Query) ([]json.RawMessage, error) {
	f.selects = append(f.selects, q)
	return f.rows[collection], nil
}

func (f *fakeStore) Insert(_ context.Context, _ string, record any) (json.RawMessage, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.inserted = append(f.inserted, record)
	return json.Marshal(record)
}

func (f *fakeStore) Update(_ context.Context, _ string, _ uuid.UUID, patch map[string]any) error {
	f.updates = append(f.updates, patch)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _ string, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestCollections_ListSubmissionsDecodes(t *testing.T) {
	recruiter := uuid.New()
	fake := &fakeStore{rows: map[string][]json.RawMessage{
		CollectionSubmissions: {
			json.RawMessage(`{"id":"` + uuid.New().String() + `","title":"Backend Engineer","recruiter_id":"` + recruiter.String() + `","candidate":{"full_name":"Dana Ivers","email":"dana@example.com","experience":"4 years"}}`),
		},
	}}
	cols := NewCollections(fake)

	subs, err := cols.ListSubmissions(context.Background(), recruiter)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Backend Engineer", subs[0].Title)
	require.NotNil(t, subs[0].Candidate)
	assert.Equal(t, "Dana Ivers", subs[0].Candidate.FullName)

	require.Len(t, fake.selects, 1)
	assert.Equal(t, "created_at", fake.selects[0].OrderBy)
	assert.True(t, fake.selects[0].Desc)
}

func TestCollections_ListQuestionsOrdersByIndex(t *testing.T) {
	fake := &fakeStore{rows: map[string][]json.RawMessage{}}
	cols := NewCollections(fake)

	_, err := cols.ListQuestions(context.Background())
	require.NoError(t, err)

	require.Len(t, fake.selects, 1)
	assert.Equal(t, "order_index", fake.selects[0].OrderBy)
	assert.False(t, fake.selects[0].Desc)
}

func TestCollections_GetInterviewMissingIsNilNil(t *testing.T) {
	fake := &fakeStore{rows: map[string][]json.RawMessage{}}
	cols := NewCollections(fake)

	iv, err := cols.GetInterview(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, iv)
}

func TestCollections_UpdateJobDescriptionPatchesOneField(t *testing.T) {
	fake := &fakeStore{}
	cols := NewCollections(fake)

	require.NoError(t, cols.UpdateJobDescription(context.Background(), uuid.New(), "Own the billing service."))
	require.Len(t, fake.updates, 1)
	assert.Equal(t, map[string]any{"job_description": "Own the billing service."}, fake.updates[0])
}

func TestCollections_CreateQuestionCarriesOrderIndex(t *testing.T) {
	fake := &fakeStore{}
	cols := NewCollections(fake)

	q, err := cols.CreateQuestion(context.Background(), uuid.New(), "Describe a tough debug.", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, q.OrderIndex)
	assert.Equal(t, "Describe a tough debug.", q.Text)
}
