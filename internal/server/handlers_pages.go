package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mkoster/hireboard/internal/filtering"
	"github.com/mkoster/hireboard/internal/questions"
	"github.com/mkoster/hireboard/internal/server/middleware"
	"github.com/mkoster/hireboard/internal/session"
	"github.com/mkoster/hireboard/internal/store"
)

// suggestionCount is how many questions one suggestion round generates.
const suggestionCount = 3

func (s *Server) handleSignInForm(w http.ResponseWriter, r *http.Request) {
	// An already signed-in user goes straight to the dashboard.
	if token := middleware.TokenFromRequest(r); token != "" {
		if _, err := s.verifier.Verify(token); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	renderPage(w, http.StatusOK, "signin", map[string]any{})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, "signin", map[string]any{"Error": "Invalid form submission."})
		return
	}

	sess, err := s.auth.SignIn(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if err != nil {
		s.logger.Warn("sign-in failed", zap.Error(err))
		message := "Sign-in failed. Please try again."
		if errors.Is(err, session.ErrNoSession) {
			message = "Invalid email or password."
		}
		renderPage(w, http.StatusUnauthorized, "signin", map[string]any{"Error": message})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.AccessToken,
		Path:     "/",
		MaxAge:   sess.ExpiresIn,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromRequest(r); token != "" {
		if err := s.auth.SignOut(r.Context(), token); err != nil {
			s.logger.Warn("sign-out failed", zap.Error(err))
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/signin", http.StatusSeeOther)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	s.renderOverview(w, r, "", "")
}

// renderOverview draws the overview tab, optionally with a chat reply or
// an error banner. A fetch failure renders the page with empty data and
// the banner; the view never crashes.
func (s *Server) renderOverview(w http.ResponseWriter, r *http.Request, chatReply, banner string) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	state := NewViewState(TabOverview, r.URL.Query())
	data := map[string]any{
		"State":     state,
		"Email":     middleware.Email(r),
		"ChatReply": chatReply,
		"Error":     banner,
	}

	subs, recruiter, err := s.fetchOverview(r.Context(), recruiterID)
	if err != nil {
		s.logger.Error("overview fetch failed", zap.Error(err))
		if banner == "" {
			data["Error"] = bannerMessage(err)
		}
		renderPage(w, http.StatusOK, "overview", data)
		return
	}

	state.AcceptRecords(subs)
	data["Recruiter"] = recruiter
	renderPage(w, http.StatusOK, "overview", data)
}

// fetchOverview loads the overview collections concurrently. The
// recruiter profile is display metadata and may legitimately be nil.
func (s *Server) fetchOverview(ctx context.Context, recruiterID uuid.UUID) ([]store.Submission, *store.Recruiter, error) {
	var (
		subs      []store.Submission
		recruiter *store.Recruiter
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subs, err = s.collections.ListSubmissions(ctx, recruiterID)
		if err != nil {
			return &ErrFetch{Collection: store.CollectionSubmissions, Cause: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recruiter, err = s.collections.GetRecruiter(ctx, recruiterID)
		if err != nil {
			return &ErrFetch{Collection: store.CollectionRecruiters, Cause: err}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return subs, recruiter, nil
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	state := NewViewState(TabCandidates, r.URL.Query())
	data := map[string]any{
		"State":   state,
		"Email":   middleware.Email(r),
		"Buckets": filtering.Buckets(),
	}

	subs, err := s.collections.ListSubmissions(r.Context(), recruiterID)
	if err != nil {
		s.logger.Error("candidates fetch failed", zap.Error(err))
		data["Error"] = bannerMessage(&ErrFetch{Collection: store.CollectionSubmissions, Cause: err})
		renderPage(w, http.StatusOK, "candidates", data)
		return
	}

	state.AcceptRecords(subs)
	renderPage(w, http.StatusOK, "candidates", data)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	s.renderQuestions(w, r, "")
}

// renderQuestions draws the questions tab. Each section that fails to
// load degrades to the banner; the rest of the page still renders.
func (s *Server) renderQuestions(w http.ResponseWriter, r *http.Request, banner string) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}

	state := NewViewState(TabQuestions, r.URL.Query())
	data := map[string]any{
		"State": state,
		"Email": middleware.Email(r),
		"Error": banner,
	}

	var (
		list       []store.Question
		interviews []store.Interview
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		list, err = s.questions.List(gctx, recruiterID)
		if err != nil {
			return &ErrFetch{Collection: store.CollectionQuestions, Cause: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		interviews, err = s.collections.ListInterviews(gctx, recruiterID)
		if err != nil {
			return &ErrFetch{Collection: store.CollectionInterviews, Cause: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("questions fetch failed", zap.Error(err))
		if banner == "" {
			data["Error"] = bannerMessage(err)
		}
		renderPage(w, http.StatusOK, "questions", data)
		return
	}

	data["Questions"] = list
	if len(interviews) > 0 {
		data["Interview"] = &interviews[0]
	}

	if sets, err := questions.StarterSets(); err == nil {
		data["Sets"] = sets
	} else {
		s.logger.Error("starter sets unavailable", zap.Error(err))
	}

	if r.URL.Query().Get("suggest") == "1" && len(interviews) > 0 && interviews[0].JobDescription != "" {
		suggestions, err := s.suggester.SuggestQuestions(r.Context(), interviews[0].JobDescription, suggestionCount)
		if err != nil {
			s.logger.Error("suggestions failed", zap.Error(err))
			if banner == "" {
				data["Error"] = bannerMessage(err)
			}
		} else {
			data["Suggestions"] = suggestions
		}
	}

	renderPage(w, http.StatusOK, "questions", data)
}

func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderQuestions(w, r, "Invalid form submission.")
		return
	}

	list, err := s.questions.List(r.Context(), recruiterID)
	if err != nil {
		s.renderQuestions(w, r, bannerMessage(&ErrFetch{Collection: store.CollectionQuestions, Cause: err}))
		return
	}

	if _, _, err := s.questions.Add(r.Context(), list, recruiterID, r.PostForm.Get("text")); err != nil {
		s.logger.Error("add question failed", zap.Error(err))
		s.renderQuestions(w, r, bannerMessage(&ErrMutation{Op: "adding the question", Cause: err}))
		return
	}
	http.Redirect(w, r, "/questions", http.StatusSeeOther)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.renderQuestions(w, r, "Invalid question id.")
		return
	}

	list, err := s.questions.List(r.Context(), recruiterID)
	if err != nil {
		s.renderQuestions(w, r, bannerMessage(&ErrFetch{Collection: store.CollectionQuestions, Cause: err}))
		return
	}

	if _, err := s.questions.Remove(r.Context(), list, id); err != nil {
		s.logger.Error("delete question failed", zap.Error(err))
		s.renderQuestions(w, r, bannerMessage(&ErrMutation{Op: "deleting the question", Cause: err}))
		return
	}
	http.Redirect(w, r, "/questions", http.StatusSeeOther)
}

func (s *Server) handleSaveDescription(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.renderQuestions(w, r, "Invalid interview id.")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderQuestions(w, r, "Invalid form submission.")
		return
	}

	if err := s.collections.UpdateJobDescription(r.Context(), id, r.PostForm.Get("description")); err != nil {
		s.logger.Error("save description failed", zap.Error(err))
		s.renderQuestions(w, r, bannerMessage(&ErrMutation{Op: "saving the description", Cause: err}))
		return
	}
	http.Redirect(w, r, "/questions", http.StatusSeeOther)
}

func (s *Server) handleImportDescription(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.renderQuestions(w, r, "Invalid interview id.")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderQuestions(w, r, "Invalid form submission.")
		return
	}
	postingURL := r.PostForm.Get("url")
	if postingURL == "" {
		s.renderQuestions(w, r, "A posting URL is required.")
		return
	}

	text, err := s.importer.Description(r.Context(), postingURL)
	if err != nil {
		s.logger.Error("description import failed", zap.Error(err))
		s.renderQuestions(w, r, "Could not import a description from that URL.")
		return
	}

	if err := s.collections.UpdateJobDescription(r.Context(), id, text); err != nil {
		s.logger.Error("save imported description failed", zap.Error(err))
		s.renderQuestions(w, r, bannerMessage(&ErrMutation{Op: "saving the description", Cause: err}))
		return
	}
	http.Redirect(w, r, "/questions", http.StatusSeeOther)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	recruiterID, err := s.recruiterID(r)
	if err != nil {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderOverview(w, r, "", "Invalid form submission.")
		return
	}
	prompt := r.PostForm.Get("prompt")
	if prompt == "" {
		s.renderOverview(w, r, "", "Enter a message first.")
		return
	}

	reply, err := s.assistant.Reply(r.Context(), prompt, recruiterID.String())
	if err != nil {
		s.logger.Error("chat failed", zap.Error(err))
		s.renderOverview(w, r, "", bannerMessage(err))
		return
	}
	s.renderOverview(w, r, reply, "")
}
