// Package session is the boundary to the hosted auth service. The product
// consumes an external user store; nothing here hashes or stores passwords.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoSession means there is no signed-in user. It is a caller-visible
// state, not a fatal condition: pages respond with a sign-in prompt.
var ErrNoSession = errors.New("no active session")

// User is the authenticated recruiter as reported by the auth service.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is the result of a password sign-in.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	User        User      `json:"user"`
	IssuedAt    time.Time `json:"-"`
}
