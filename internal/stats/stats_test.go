package stats

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mkoster/hireboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissions(n int) []store.Submission {
	subs := make([]store.Submission, n)
	for i := range subs {
		subs[i] = store.Submission{ID: uuid.New()}
	}
	return subs
}

func TestCompute_InProgressIsFloorOfSixtyPercent(t *testing.T) {
	cases := map[int]int{0: 0, 1: 0, 2: 1, 5: 3, 10: 6, 11: 6, 13: 7}
	for total, want := range cases {
		ov := Compute(submissions(total))
		assert.Equal(t, total, ov.Total)
		assert.Equal(t, want, ov.InProgress, "total=%d", total)
		assert.Equal(t, total-want, ov.Completed, "total=%d", total)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	subs := submissions(10)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, ComputeAt(subs, now), ComputeAt(subs, now))
}

func TestComputeAt_BucketCounts(t *testing.T) {
	exp := func(s string) *store.Candidate { return &store.Candidate{Experience: s} }
	subs := []store.Submission{
		{ID: uuid.New(), Candidate: exp("1 year")},
		{ID: uuid.New(), Candidate: exp("2 years")},
		{ID: uuid.New(), Candidate: exp("4 years")},
		{ID: uuid.New(), Candidate: exp("10 years")},
		{ID: uuid.New(), Candidate: exp("senior")},
		{ID: uuid.New()},
	}

	ov := ComputeAt(subs, time.Now())
	assert.Equal(t, 2, ov.ByBucket["0-2"])
	assert.Equal(t, 1, ov.ByBucket["3-5"])
	assert.Equal(t, 1, ov.ByBucket["5+"])
	assert.Equal(t, 2, ov.ByBucket[Unclassified])
}

func TestComputeAt_ByDayZeroFilledTrailingWindow(t *testing.T) {
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	onDay := func(day time.Time) store.Submission {
		return store.Submission{ID: uuid.New(), Candidate: &store.Candidate{CreatedAt: &day}}
	}

	subs := []store.Submission{
		onDay(time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC)),
		onDay(time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)),
		onDay(time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)),
		// Outside the window, must not appear.
		onDay(time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)),
	}

	ov := ComputeAt(subs, now)
	require.Len(t, ov.ByDay, 14)
	assert.Equal(t, "2024-05-02", ov.ByDay[0].Date)
	assert.Equal(t, 1, ov.ByDay[0].Count)
	assert.Equal(t, "2024-05-15", ov.ByDay[13].Date)
	assert.Equal(t, 2, ov.ByDay[13].Count)

	sum := 0
	for _, d := range ov.ByDay {
		sum += d.Count
	}
	assert.Equal(t, 3, sum)
}
