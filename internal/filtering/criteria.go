// Package filtering is the pure predicate engine behind the candidates tab.
// Given a submission and the current criteria it decides inclusion; it never
// mutates records and the same inputs always yield the same output set.
package filtering

import (
	"net/url"
	"strconv"
	"time"
)

// Experience bucket labels.
const (
	LevelAll    = "all"
	Bucket0to2  = "0-2"
	Bucket3to5  = "3-5"
	Bucket5Plus = "5+"
)

// Buckets lists the selectable experience buckets in display order.
func Buckets() []string {
	return []string{Bucket0to2, Bucket3to5, Bucket5Plus}
}

// Criteria is the user's current filter selection. The zero value is the
// default view: all levels, empty query, zero rating floor, open date range.
type Criteria struct {
	Levels    []string
	Query     string
	MinRating float64
	Start     *time.Time
	End       *time.Time
}

// Default returns the unfiltered criteria.
func Default() Criteria {
	return Criteria{}
}

// AllLevels reports whether bucket filtering is bypassed, either because
// nothing is selected or because the "all" label is among the selection.
func (c Criteria) AllLevels() bool {
	if len(c.Levels) == 0 {
		return true
	}
	for _, level := range c.Levels {
		if level == LevelAll {
			return true
		}
	}
	return false
}

// HasLevel reports whether the bucket label is selected.
func (c Criteria) HasLevel(label string) bool {
	for _, level := range c.Levels {
		if level == label {
			return true
		}
	}
	return false
}

// FromQuery parses criteria out of URL query parameters. Unparseable
// values fall back to the default, never to an error: a broken filter
// input must not break the page.
func FromQuery(values url.Values) Criteria {
	c := Criteria{
		Levels: values["level"],
		Query:  values.Get("q"),
	}

	if raw := values.Get("min_rating"); raw != "" {
		if rating, err := strconv.ParseFloat(raw, 64); err == nil && rating >= 0 {
			c.MinRating = rating
		}
	}
	if raw := values.Get("start"); raw != "" {
		if day, err := time.Parse("2006-01-02", raw); err == nil {
			c.Start = &day
		}
	}
	if raw := values.Get("end"); raw != "" {
		if day, err := time.Parse("2006-01-02", raw); err == nil {
			c.End = &day
		}
	}
	return c
}

// QueryValues renders the criteria back into URL parameters, used by the
// candidates page to keep links and the filter form in sync.
func (c Criteria) QueryValues() url.Values {
	values := url.Values{}
	for _, level := range c.Levels {
		values.Add("level", level)
	}
	if c.Query != "" {
		values.Set("q", c.Query)
	}
	if c.MinRating > 0 {
		values.Set("min_rating", strconv.FormatFloat(c.MinRating, 'f', -1, 64))
	}
	if c.Start != nil {
		values.Set("start", c.Start.Format("2006-01-02"))
	}
	if c.End != nil {
		values.Set("end", c.End.Format("2006-01-02"))
	}
	return values
}
