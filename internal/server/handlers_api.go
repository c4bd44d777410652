package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkoster/hireboard/internal/filtering"
	"github.com/mkoster/hireboard/internal/stats"
	"github.com/mkoster/hireboard/internal/store"
)

var validate = validator.New()

type addQuestionRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type saveDescriptionRequest struct {
	Description string `json:"description" validate:"required,min=1"`
}

type suggestionsRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=10"`
}

type chatRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=4000"`
}

// decodeAndValidate reads a JSON body into dst and checks its validate
// tags.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "request body is not valid JSON"}
	}
	if err := validate.Struct(dst); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// handleAPICandidates returns the filtered submission list. Criteria come
// from the same query parameters the candidates page uses.
func (s *Server) handleAPICandidates(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	subs, err := s.collections.ListSubmissions(r.Context(), recruiterID)
	if err != nil {
		s.errorResponse(w, &ErrFetch{Collection: store.CollectionSubmissions, Cause: err})
		return
	}

	criteria := filtering.FromQuery(r.URL.Query())
	filtered := filtering.Apply(subs, criteria)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidates": filtered,
		"total":      len(subs),
		"matched":    len(filtered),
	})
}

func (s *Server) handleAPIMetrics(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	subs, err := s.collections.ListSubmissions(r.Context(), recruiterID)
	if err != nil {
		s.errorResponse(w, &ErrFetch{Collection: store.CollectionSubmissions, Cause: err})
		return
	}
	s.jsonResponse(w, http.StatusOK, stats.Compute(subs))
}

func (s *Server) handleAPIListQuestions(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	list, err := s.questions.List(r.Context(), recruiterID)
	if err != nil {
		s.errorResponse(w, &ErrFetch{Collection: store.CollectionQuestions, Cause: err})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"questions": list})
}

func (s *Server) handleAPIAddQuestion(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req addQuestionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	list, err := s.questions.List(r.Context(), recruiterID)
	if err != nil {
		s.errorResponse(w, &ErrFetch{Collection: store.CollectionQuestions, Cause: err})
		return
	}

	_, created, err := s.questions.Add(r.Context(), list, recruiterID, req.Text)
	if err != nil {
		s.errorResponse(w, &ErrMutation{Op: "adding the question", Cause: err})
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleAPIDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "id is not a valid UUID"})
		return
	}

	list, err := s.questions.List(r.Context(), recruiterID)
	if err != nil {
		s.errorResponse(w, &ErrFetch{Collection: store.CollectionQuestions, Cause: err})
		return
	}

	if _, err := s.questions.Remove(r.Context(), list, id); err != nil {
		s.errorResponse(w, &ErrMutation{Op: "deleting the question", Cause: err})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAPISaveDescription(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "id is not a valid UUID"})
		return
	}

	var req saveDescriptionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	interview, err := s.collections.GetInterview(r.Context(), id)
	if err != nil {
		s.errorResponse(w, &ErrFetch{Collection: store.CollectionInterviews, Cause: err})
		return
	}
	if interview == nil {
		s.errorResponse(w, &ErrNotFound{Entity: "interview"})
		return
	}

	if err := s.collections.UpdateJobDescription(r.Context(), id, req.Description); err != nil {
		s.errorResponse(w, &ErrMutation{Op: "saving the description", Cause: err})
		return
	}

	interview.JobDescription = req.Description
	s.jsonResponse(w, http.StatusOK, interview)
}

func (s *Server) handleAPISuggestions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "id is not a valid UUID"})
		return
	}

	var req suggestionsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if req.Count == 0 {
		req.Count = suggestionCount
	}

	interview, err := s.collections.GetInterview(r.Context(), id)
	if err != nil {
		s.errorResponse(w, &ErrFetch{Collection: store.CollectionInterviews, Cause: err})
		return
	}
	if interview == nil {
		s.errorResponse(w, &ErrNotFound{Entity: "interview"})
		return
	}
	if interview.JobDescription == "" {
		s.errorResponse(w, &ErrValidation{Field: "job_description", Message: "the interview has no job description to suggest from"})
		return
	}

	suggestions, err := s.suggester.SuggestQuestions(r.Context(), interview.JobDescription, req.Count)
	if err != nil {
		s.logger.Error("suggestions failed", zap.Error(err))
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"questions": suggestions})
}

func (s *Server) handleAPIChat(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req chatRequest
	if err := decodeAndValidate(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	reply, err := s.assistant.Reply(r.Context(), req.Prompt, recruiterID.String())
	if err != nil {
		s.logger.Error("chat failed", zap.Error(err))
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"reply": reply})
}
