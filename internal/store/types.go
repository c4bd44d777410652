package store

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one candidate's interview submission. Immutable once
// fetched; its lifecycle is bound to a single request.
type Submission struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	RecruiterID uuid.UUID  `json:"recruiter_id"`
	Candidate   *Candidate `json:"candidate,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Candidate holds the optional structured details attached to a submission.
// Experience is free text ("4 years in fintech"); the filter engine parses
// a leading integer out of it.
type Candidate struct {
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Experience string     `json:"experience"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// Interview groups questions under a recruiter and carries the job description.
type Interview struct {
	ID             uuid.UUID `json:"id"`
	RecruiterID    uuid.UUID `json:"recruiter_id"`
	Title          string    `json:"title"`
	JobDescription string    `json:"job_description"`
	CreatedAt      time.Time `json:"created_at"`
}

// Question belongs to exactly one interview. OrderIndex is a stable
// insertion-order attribute; it is never resequenced on delete.
type Question struct {
	ID          uuid.UUID `json:"id"`
	InterviewID uuid.UUID `json:"interview_id"`
	Text        string    `json:"text"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recruiter is display metadata for a signed-in user. The ID equals the
// auth user id.
type Recruiter struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Company  string    `json:"company"`
}
