package filtering

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromQuery_ParsesAllFields(t *testing.T) {
	values := url.Values{
		"level":      {"0-2", "5+"},
		"q":          {"fintech"},
		"min_rating": {"4.5"},
		"start":      {"2024-01-01"},
		"end":        {"2024-02-01"},
	}

	c := FromQuery(values)
	assert.Equal(t, []string{"0-2", "5+"}, c.Levels)
	assert.Equal(t, "fintech", c.Query)
	assert.Equal(t, 4.5, c.MinRating)
	require.NotNil(t, c.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *c.Start)
	require.NotNil(t, c.End)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *c.End)
}

func TestFromQuery_BadValuesFallBackToDefaults(t *testing.T) {
	c := FromQuery(url.Values{
		"min_rating": {"high"},
		"start":      {"yesterday"},
		"end":        {"01/02/2024"},
	})
	assert.Zero(t, c.MinRating)
	assert.Nil(t, c.Start)
	assert.Nil(t, c.End)
}

func TestQueryValues_RoundTrips(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Criteria{
		Levels:    []string{"3-5"},
		Query:     "go",
		MinRating: 4,
		Start:     &start,
	}

	got := FromQuery(c.QueryValues())
	assert.Equal(t, c.Levels, got.Levels)
	assert.Equal(t, c.Query, got.Query)
	assert.Equal(t, c.MinRating, got.MinRating)
	require.NotNil(t, got.Start)
	assert.True(t, got.Start.Equal(start))
	assert.Nil(t, got.End)
}

func TestAllLevels(t *testing.T) {
	assert.True(t, Criteria{}.AllLevels())
	assert.True(t, Criteria{Levels: []string{"0-2", LevelAll}}.AllLevels())
	assert.False(t, Criteria{Levels: []string{"0-2"}}.AllLevels())
}
