package server

import (
	"net/url"

	"github.com/mkoster/hireboard/internal/filtering"
	"github.com/mkoster/hireboard/internal/stats"
	"github.com/mkoster/hireboard/internal/store"
)

// Tab identifies the active dashboard tab.
type Tab string

const (
	TabOverview   Tab = "overview"
	TabCandidates Tab = "candidates"
	TabQuestions  Tab = "questions"
)

// ParseTab resolves a tab name; anything unknown falls back to overview.
func ParseTab(name string) Tab {
	switch Tab(name) {
	case TabCandidates:
		return TabCandidates
	case TabQuestions:
		return TabQuestions
	default:
		return TabOverview
	}
}

// ViewState is the per-request presentation state: the active tab, the
// current filter criteria, and the derived filtered slice and metrics.
// It is built from the URL for every request and owned by a single
// goroutine; there are no ambient globals and no locking.
type ViewState struct {
	Tab      Tab
	Criteria filtering.Criteria

	// EditingDescription toggles the job-description editor on the
	// questions tab.
	EditingDescription bool

	// Busy disables mutation buttons while a submission is in flight.
	// Advisory only; it is not a mutex.
	Busy bool

	records  []store.Submission
	Filtered []store.Submission
	Metrics  stats.Overview
}

// NewViewState builds the state for one request. Criteria and toggles come
// from the query string.
func NewViewState(tab Tab, query url.Values) *ViewState {
	s := &ViewState{
		Tab:                tab,
		Criteria:           filtering.FromQuery(query),
		EditingDescription: query.Get("edit") == "1",
	}
	s.recompute()
	return s
}

// AcceptRecords installs a fetch result, replacing the collection
// wholesale. Calls arriving out of order are benign: whichever result is
// accepted last wins, and an outstanding fetch is never aborted.
func (s *ViewState) AcceptRecords(records []store.Submission) {
	s.records = records
	s.recompute()
}

// SetCriteria replaces the filter criteria and recomputes synchronously.
// No debounce and no async filtering.
func (s *ViewState) SetCriteria(c filtering.Criteria) {
	s.Criteria = c
	s.recompute()
}

// Records returns the full unfiltered collection.
func (s *ViewState) Records() []store.Submission {
	return s.records
}

func (s *ViewState) recompute() {
	s.Filtered = filtering.Apply(s.records, s.Criteria)
	s.Metrics = stats.Compute(s.records)
}
