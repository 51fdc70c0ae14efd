package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuarterBounds(t *testing.T) {
	now := day(2026, 2, 15)
	cases := []struct {
		q          int
		start, end string
	}{
		{1, "2026-01-01", "2026-03-31"},
		{2, "2026-04-01", "2026-06-30"},
		{3, "2026-07-01", "2026-09-30"},
		{4, "2026-10-01", "2026-12-31"},
	}
	for _, tc := range cases {
		r, err := QuarterBounds(2026, tc.q, now)
		require.NoError(t, err)
		assert.Equal(t, tc.start, r.Start.Format("2006-01-02"), "Q%d", tc.q)
		assert.Equal(t, tc.end, r.End.Format("2006-01-02"), "Q%d", tc.q)
	}
}

func TestQuarterBounds_DefaultsToQuarterOfNow(t *testing.T) {
	r, err := QuarterBounds(2025, 0, day(2026, 8, 3))
	require.NoError(t, err)
	assert.Equal(t, day(2025, 7, 1), r.Start)
	assert.Equal(t, day(2025, 9, 30), r.End)
}

func TestQuarterBounds_Invalid(t *testing.T) {
	_, err := QuarterBounds(2026, 5, time.Now())
	assert.Error(t, err)
}

func TestQuarterOf(t *testing.T) {
	assert.Equal(t, Quarter{Year: 2026, Number: 1}, QuarterOf(day(2026, 3, 31)))
	assert.Equal(t, Quarter{Year: 2026, Number: 2}, QuarterOf(day(2026, 4, 1)))
	assert.Equal(t, Quarter{Year: 2026, Number: 4}, QuarterOf(day(2026, 12, 31)))
	assert.Equal(t, "Q4 2026", QuarterOf(day(2026, 10, 19)).String())
}
