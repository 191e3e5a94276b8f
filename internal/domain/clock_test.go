package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Hour())
	assert.Equal(t, 30, c.Minute())
	assert.Equal(t, 0, c.Second())

	c, err = ParseClockTime("23:59:58")
	require.NoError(t, err)
	assert.Equal(t, 23, c.Hour())
	assert.Equal(t, 59, c.Minute())
	assert.Equal(t, 58, c.Second())

	_, err = ParseClockTime("9h30")
	assert.Error(t, err)
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "09:30", NewClockTime(9, 30, 0).String())
	assert.Equal(t, "09:30:15", NewClockTime(9, 30, 15).String())
}

func TestDateCompareAndDays(t *testing.T) {
	a := Date{Year: 2025, Month: time.March, Day: 10}
	b := Date{Year: 2025, Month: time.March, Day: 11}

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, a.DaysUntil(b))
	assert.Equal(t, -1, b.DaysUntil(a))
}

func TestDurationMinutes_SameDay(t *testing.T) {
	day := Date{Year: 2025, Month: time.March, Day: 10}

	min, ok := DurationMinutes(day, NewClockTime(9, 0, 0), day, NewClockTime(10, 0, 0))
	require.True(t, ok)
	assert.Equal(t, 60, min)
}

func TestDurationMinutes_FloorsSeconds(t *testing.T) {
	day := Date{Year: 2025, Month: time.March, Day: 10}

	min, ok := DurationMinutes(day, NewClockTime(9, 0, 30), day, NewClockTime(9, 2, 15))
	require.True(t, ok)
	assert.Equal(t, 1, min, "105 seconds floors to 1 minute")
}

func TestDurationMinutes_MidnightRollover(t *testing.T) {
	day := Date{Year: 2025, Month: time.March, Day: 10}

	// 23:30 to 00:15 recorded on the same date reads as end-before-start;
	// a single 24h shift explains it.
	min, ok := DurationMinutes(day, NewClockTime(23, 30, 0), day, NewClockTime(0, 15, 0))
	require.True(t, ok)
	assert.Equal(t, 45, min)
}

func TestDurationMinutes_AcrossDates(t *testing.T) {
	start := Date{Year: 2025, Month: time.March, Day: 10}
	end := Date{Year: 2025, Month: time.March, Day: 12}

	min, ok := DurationMinutes(start, NewClockTime(8, 0, 0), end, NewClockTime(9, 30, 0))
	require.True(t, ok)
	assert.Equal(t, 2*24*60+90, min)
}

func TestDurationMinutes_UnexplainableNegative(t *testing.T) {
	start := Date{Year: 2025, Month: time.March, Day: 12}
	end := Date{Year: 2025, Month: time.March, Day: 10}

	// End two days before start: no single rollover explains it, and the
	// result must never be a negative or wrapped-around guess.
	_, ok := DurationMinutes(start, NewClockTime(8, 0, 0), end, NewClockTime(9, 0, 0))
	assert.False(t, ok)
}
