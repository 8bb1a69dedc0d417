package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRange_SingleDay(t *testing.T) {
	days := Range(date(2025, time.January, 10), date(2025, time.January, 10))
	require.Len(t, days, 1)
	assert.Equal(t, date(2025, time.January, 10), days[0])
}

func TestRange_MultipleDays(t *testing.T) {
	days := Range(date(2025, time.January, 10), date(2025, time.January, 12))
	require.Len(t, days, 3)
	assert.Equal(t, date(2025, time.January, 10), days[0])
	assert.Equal(t, date(2025, time.January, 11), days[1])
	assert.Equal(t, date(2025, time.January, 12), days[2])
}

func TestRange_CrossesMonthBoundary(t *testing.T) {
	days := Range(date(2025, time.January, 30), date(2025, time.February, 2))
	require.Len(t, days, 4)
	assert.Equal(t, date(2025, time.February, 1), days[2])
}

func TestRange_LeapDay(t *testing.T) {
	days := Range(date(2024, time.February, 28), date(2024, time.March, 1))
	require.Len(t, days, 3)
	assert.Equal(t, date(2024, time.February, 29), days[1])
}

func TestRange_EndBeforeStart(t *testing.T) {
	assert.Nil(t, Range(date(2025, time.January, 12), date(2025, time.January, 10)))
}

func TestRange_NormalizesTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.March, 3, 14, 30, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)
	days := Range(start, end)
	require.Len(t, days, 2)
	assert.Equal(t, date(2025, time.March, 3), days[0])
	assert.Equal(t, date(2025, time.March, 4), days[1])
}

func TestCountDays(t *testing.T) {
	assert.Equal(t, 1, CountDays(date(2025, time.January, 10), date(2025, time.January, 10)))
	assert.Equal(t, 3, CountDays(date(2025, time.January, 10), date(2025, time.January, 12)))
	assert.Equal(t, 0, CountDays(date(2025, time.January, 12), date(2025, time.January, 10)))
}
