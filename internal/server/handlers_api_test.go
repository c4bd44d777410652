package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/mkoster/hireboard/internal/assistant"
	"github.com/mkoster/hireboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPICandidates_FiltersByQuery(t *testing.T) {
	env := newTestEnv(t)
	env.seedSubmissions("Backend Engineer", "Product Designer")

	rec := env.do(env.apiRequest(t, http.MethodGet, "/api/v1/candidates?q=backend", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Candidates []store.Submission `json:"candidates"`
		Total      int                `json:"total"`
		Matched    int                `json:"matched"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 2, payload.Total)
	assert.Equal(t, 1, payload.Matched)
	require.Len(t, payload.Candidates, 1)
	assert.Equal(t, "Backend Engineer", payload.Candidates[0].Title)
}

func TestAPIMetrics_InProgressIsSixOfTen(t *testing.T) {
	env := newTestEnv(t)
	env.seedSubmissions("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")

	rec := env.do(env.apiRequest(t, http.MethodGet, "/api/v1/metrics", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Total      int `json:"total"`
		InProgress int `json:"in_progress"`
		Completed  int `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 10, payload.Total)
	assert.Equal(t, 6, payload.InProgress)
	assert.Equal(t, 4, payload.Completed)
}

func TestAPIMetrics_FetchFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.selectErr[store.CollectionSubmissions] = errors.New("store down")

	rec := env.do(env.apiRequest(t, http.MethodGet, "/api/v1/metrics", ""))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "store down")
}

func TestAPIAddQuestion_Created(t *testing.T) {
	env := newTestEnv(t)
	interviewID := uuid.New()
	env.store.rows[store.CollectionInterviews] = []any{
		store.Interview{ID: interviewID, RecruiterID: env.recruiterID, Title: "Loop"},
	}
	env.store.rows[store.CollectionQuestions] = []any{
		store.Question{ID: uuid.New(), InterviewID: interviewID, Text: "Existing", OrderIndex: 4},
	}

	rec := env.do(env.apiRequest(t, http.MethodPost, "/api/v1/questions", `{"text":"New question"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var created store.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "New question", created.Text)
	assert.Equal(t, interviewID, created.InterviewID)
	assert.Equal(t, 5, created.OrderIndex)
}

func TestAPIAddQuestion_RejectsEmptyText(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(env.apiRequest(t, http.MethodPost, "/api/v1/questions", `{"text":""}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(env.apiRequest(t, http.MethodPost, "/api/v1/questions", `not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.store.inserted)
}

func TestAPIDeleteQuestion(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()

	rec := env.do(env.apiRequest(t, http.MethodDelete, "/api/v1/questions/"+id.String(), ""))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, env.store.deleted)
}

func TestAPIDeleteQuestion_RemoteFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.deleteErr = errors.New("store down")

	rec := env.do(env.apiRequest(t, http.MethodDelete, "/api/v1/questions/"+uuid.NewString(), ""))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Empty(t, env.store.deleted)
}

func TestAPIDeleteQuestion_BadID(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(env.apiRequest(t, http.MethodDelete, "/api/v1/questions/not-a-uuid", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPISaveDescription(t *testing.T) {
	env := newTestEnv(t)
	interviewID := uuid.New()
	env.store.rows[store.CollectionInterviews] = []any{
		store.Interview{ID: interviewID, RecruiterID: env.recruiterID, Title: "Loop"},
	}

	rec := env.do(env.apiRequest(t, http.MethodPut, "/api/v1/interviews/"+interviewID.String()+"/description", `{"description":"Build billing"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.store.updated)
	var updated store.Interview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Build billing", updated.JobDescription)
}

func TestAPISaveDescription_UnknownInterview(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(env.apiRequest(t, http.MethodPut, "/api/v1/interviews/"+uuid.NewString()+"/description", `{"description":"text"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, env.store.updated)
}

func TestAPISuggestions(t *testing.T) {
	env := newTestEnv(t)
	interviewID := uuid.New()
	env.store.rows[store.CollectionInterviews] = []any{
		store.Interview{ID: interviewID, RecruiterID: env.recruiterID, Title: "Loop", JobDescription: "Go backend role"},
	}
	env.suggester.suggestions = []string{"Explain channels", "Design a rate limiter"}

	rec := env.do(env.apiRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID.String()+"/suggestions", `{"count":2}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Questions []string `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Questions, 2)
	assert.Equal(t, "Go backend role", env.suggester.gotText)
}

func TestAPISuggestions_NoDescription(t *testing.T) {
	env := newTestEnv(t)
	interviewID := uuid.New()
	env.store.rows[store.CollectionInterviews] = []any{
		store.Interview{ID: interviewID, RecruiterID: env.recruiterID, Title: "Loop"},
	}

	rec := env.do(env.apiRequest(t, http.MethodPost, "/api/v1/interviews/"+interviewID.String()+"/suggestions", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIChat(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = "Here is a summary."

	rec := env.do(env.apiRequest(t, http.MethodPost, "/api/v1/chat", `{"prompt":"Summarize my pipeline"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"Here is a summary."}`, rec.Body.String())
}

func TestAPIChat_AssistantDown(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.err = assistant.ErrUnavailable

	rec := env.do(env.apiRequest(t, http.MethodPost, "/api/v1/chat", `{"prompt":"hello"}`))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "try again")
}
