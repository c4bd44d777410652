// Package stats derives the overview metrics and chart series from the
// full (unfiltered) submission collection. Everything here is recomputed
// per request; nothing is stored.
package stats

import (
	"time"

	"github.com/mkoster/hireboard/internal/filtering"
	"github.com/mkoster/hireboard/internal/store"
)

// trailingDays is the window of the submissions-per-day chart.
const trailingDays = 14

// Unclassified labels submissions whose experience has no parseable bucket.
const Unclassified = "unclassified"

// DayCount is one point on the submissions-per-day series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Overview holds the derived metrics for the overview tab.
//
// InProgress is a fixed-fraction presentation heuristic (60% of total,
// rounded down), not per-record status; callers must not treat it as
// authoritative state.
type Overview struct {
	Total      int            `json:"total"`
	InProgress int            `json:"in_progress"`
	Completed  int            `json:"completed"`
	ByBucket   map[string]int `json:"by_bucket"`
	ByDay      []DayCount     `json:"by_day"`
}

// Compute derives the overview from the submissions as of now.
func Compute(subs []store.Submission) Overview {
	return ComputeAt(subs, time.Now())
}

// ComputeAt derives the overview with an explicit reference time for the
// trailing-days series.
func ComputeAt(subs []store.Submission, now time.Time) Overview {
	total := len(subs)
	inProgress := total * 60 / 100

	byBucket := map[string]int{
		filtering.Bucket0to2:  0,
		filtering.Bucket3to5:  0,
		filtering.Bucket5Plus: 0,
		Unclassified:          0,
	}
	for _, sub := range subs {
		experience := ""
		if sub.Candidate != nil {
			experience = sub.Candidate.Experience
		}
		if bucket, ok := filtering.BucketFor(experience); ok {
			byBucket[bucket]++
		} else {
			byBucket[Unclassified]++
		}
	}

	return Overview{
		Total:      total,
		InProgress: inProgress,
		Completed:  total - inProgress,
		ByBucket:   byBucket,
		ByDay:      byDay(subs, now),
	}
}

// byDay buckets candidate timestamps into the trailing window, zero-filled
// so the chart always renders a full axis.
func byDay(subs []store.Submission, now time.Time) []DayCount {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts := make(map[string]int, trailingDays)
	series := make([]DayCount, 0, trailingDays)
	for i := trailingDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		counts[day] = 0
		series = append(series, DayCount{Date: day})
	}

	for _, sub := range subs {
		if sub.Candidate == nil || sub.Candidate.CreatedAt == nil {
			continue
		}
		day := sub.Candidate.CreatedAt.Format("2006-01-02")
		if _, ok := counts[day]; ok {
			counts[day]++
		}
	}

	for i := range series {
		series[i].Count = counts[series[i].Date]
	}
	return series
}
