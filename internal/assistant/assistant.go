// Package assistant is the chat/completion boundary: one prompt in, one
// reply out. No streaming, no server-side conversation history.
package assistant

import (
	"context"
	"errors"
)

// ErrUnavailable is the generic, retry-prompting failure surfaced to the
// user when the assistant transport fails. The underlying cause stays in
// the logs, never in the banner.
var ErrUnavailable = errors.New("the assistant is unavailable right now, please try again")

// Assistant answers a single free-text prompt. The recruiter id is an
// optional owner identifier forwarded for context.
type Assistant interface {
	Reply(ctx context.Context, prompt, recruiterID string) (string, error)
}
