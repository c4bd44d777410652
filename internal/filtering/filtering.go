package filtering

import (
	"strings"
	"time"
	"unicode"

	"github.com/mkoster/hireboard/internal/store"
)

// Matches reports whether a submission passes every active predicate.
// Short-circuit AND, cheapest checks first; correctness does not depend
// on the order.
func Matches(sub store.Submission, c Criteria) bool {
	return matchesText(sub, c.Query) &&
		matchesExperience(sub, c) &&
		matchesRating(sub, c.MinRating) &&
		matchesDate(sub, c.Start, c.End)
}

// Apply returns the submissions passing the criteria, preserving input
// order. The input slice is never mutated.
func Apply(subs []store.Submission, c Criteria) []store.Submission {
	out := make([]store.Submission, 0, len(subs))
	for _, sub := range subs {
		if Matches(sub, c) {
			out = append(out, sub)
		}
	}
	return out
}

// matchesText is a case-insensitive substring match against title,
// candidate name, email, and experience. An empty query always matches.
func matchesText(sub store.Submission, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	fields := []string{sub.Title}
	if sub.Candidate != nil {
		fields = append(fields, sub.Candidate.FullName, sub.Candidate.Email, sub.Candidate.Experience)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func matchesExperience(sub store.Submission, c Criteria) bool {
	if c.AllLevels() {
		return true
	}

	experience := ""
	if sub.Candidate != nil {
		experience = sub.Candidate.Experience
	}
	bucket, ok := BucketFor(experience)
	if !ok {
		// No parseable experience never matches any bucket.
		return false
	}
	return c.HasLevel(bucket)
}

func matchesRating(sub store.Submission, minRating float64) bool {
	if minRating <= 0 {
		return true
	}
	return Rating(sub.ID) >= minRating
}

// matchesDate checks the candidate timestamp against the range. Records
// without a timestamp always match. The end bound excludes from the start
// of the second day after the end date, so the whole end day plus one day
// forward stays included.
func matchesDate(sub store.Submission, start, end *time.Time) bool {
	if sub.Candidate == nil || sub.Candidate.CreatedAt == nil {
		return true
	}
	at := *sub.Candidate.CreatedAt

	if start != nil && at.Before(dayStart(*start)) {
		return false
	}
	if end != nil && !at.Before(dayStart(*end).AddDate(0, 0, 2)) {
		return false
	}
	return true
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BucketFor parses a leading integer out of a free-text experience string
// and maps it to a bucket: 0-2 and 3-5 inclusive on both ends, 5+ strictly
// greater than 5. Returns false when no leading integer is present.
func BucketFor(experience string) (string, bool) {
	years, ok := leadingInt(experience)
	if !ok {
		return "", false
	}
	switch {
	case years >= 0 && years <= 2:
		return Bucket0to2, true
	case years >= 3 && years <= 5:
		return Bucket3to5, true
	case years > 5:
		return Bucket5Plus, true
	default:
		return "", false
	}
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n := 0
	for _, r := range s[:end] {
		n = n*10 + int(r-'0')
	}
	return n, true
}
