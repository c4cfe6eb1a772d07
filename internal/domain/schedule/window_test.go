package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2026-03-02 08:00 Jakarta time.
var jakarta = time.FixedZone("WIB", 7*3600)

func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, jakarta)
}

func weeklyMonday0800() Descriptor {
	return Descriptor{
		Type:   TypeWeekly,
		Weekly: []WeeklyEntry{{Day: time.Monday, Time: TimeOfDay{Hour: 8}}},
	}
}

func TestClassify_Boundaries(t *testing.T) {
	t.Parallel()

	scheduled := mondayAt(8, 0)
	w := DefaultPolicy().WindowFor(scheduled)

	cases := []struct {
		name string
		now  time.Time
		want State
	}{
		{"five minutes early is on time", scheduled.Add(-5 * time.Minute), StateOnTime},
		{"one second before that is not yet open", scheduled.Add(-5*time.Minute - time.Second), StateNotYetOpen},
		{"exactly on schedule", scheduled, StateOnTime},
		{"ten minutes after is still on time", scheduled.Add(10 * time.Minute), StateOnTime},
		{"one second past on-time is late", scheduled.Add(10*time.Minute + time.Second), StateLate},
		{"twenty-five minutes after is late", scheduled.Add(25 * time.Minute), StateLate},
		{"one second past the grace is closed", scheduled.Add(25*time.Minute + time.Second), StateClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.Classify(tc.now))
		})
	}
}

func TestWindowFor_Offsets(t *testing.T) {
	t.Parallel()

	scheduled := mondayAt(8, 0)
	w := DefaultPolicy().WindowFor(scheduled)

	assert.Equal(t, scheduled.Add(-5*time.Minute), w.EarliestOnTime)
	assert.Equal(t, scheduled.Add(10*time.Minute), w.LatestOnTime)
	assert.Equal(t, scheduled.Add(25*time.Minute), w.LatestLate)
}

func TestEvaluateAt_WeeklyMatchingDay(t *testing.T) {
	t.Parallel()

	w, state, ok := weeklyMonday0800().EvaluateAt(mondayAt(8, 4), DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, StateOnTime, state)
	assert.Equal(t, mondayAt(8, 0), w.ScheduledAt)
}

func TestEvaluateAt_WeeklyNonMatchingDay(t *testing.T) {
	t.Parallel()

	tuesday := mondayAt(8, 0).AddDate(0, 0, 1)
	_, state, ok := weeklyMonday0800().EvaluateAt(tuesday, DefaultPolicy())
	assert.False(t, ok)
	assert.Equal(t, StateClosed, state)
}

func TestEvaluateAt_WeeklyPicksNearestEntry(t *testing.T) {
	t.Parallel()

	d := Descriptor{
		Type: TypeWeekly,
		Weekly: []WeeklyEntry{
			{Day: time.Monday, Time: TimeOfDay{Hour: 8}},
			{Day: time.Monday, Time: TimeOfDay{Hour: 13}},
		},
	}

	w, state, ok := d.EvaluateAt(mondayAt(13, 2), DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, StateOnTime, state)
	assert.Equal(t, mondayAt(13, 0), w.ScheduledAt)
}

func TestEvaluateAt_MonthlyShortMonthNeverFires(t *testing.T) {
	t.Parallel()

	d := Descriptor{Type: TypeMonthly, DayOfMonth: 31, MonthlyTime: TimeOfDay{Hour: 8}}

	// April has 30 days; the schedule must not roll over to May 1st.
	for day := 1; day <= 30; day++ {
		now := time.Date(2026, time.April, day, 8, 0, 0, 0, jakarta)
		_, _, ok := d.EvaluateAt(now, DefaultPolicy())
		assert.False(t, ok, "fired on April %d", day)
	}

	// It does fire on May 31st.
	_, state, ok := d.EvaluateAt(time.Date(2026, time.May, 31, 8, 4, 0, 0, jakarta), DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, StateOnTime, state)
}

func TestEvaluateAt_MonthlyWrongDay(t *testing.T) {
	t.Parallel()

	d := Descriptor{Type: TypeMonthly, DayOfMonth: 15, MonthlyTime: TimeOfDay{Hour: 8}}
	_, _, ok := d.EvaluateAt(time.Date(2026, time.April, 14, 8, 0, 0, 0, jakarta), DefaultPolicy())
	assert.False(t, ok)
}

func TestEvaluateAt_OneTime(t *testing.T) {
	t.Parallel()

	instant := mondayAt(8, 0)
	d := Descriptor{Type: TypeOneTime, OneTime: instant}

	_, state, ok := d.EvaluateAt(instant.Add(7*time.Minute), DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, StateOnTime, state)

	// A different day falls far outside the window instead of not firing.
	_, state, ok = d.EvaluateAt(instant.AddDate(0, 0, 2), DefaultPolicy())
	require.True(t, ok)
	assert.Equal(t, StateClosed, state)
}
