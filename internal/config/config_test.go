package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadScheduleDefaults(t *testing.T) {
	for _, key := range []string{
		"SCHEDULE_SOURCE_URL", "SCHEDULE_FETCH_TIMEOUT", "SCHEDULE_STALENESS_TTL",
		"SCHEDULE_ODD_WEEK_PARITY", "SCHEDULE_DEFAULT_DURATION_MIN",
		"SCHEDULE_CUSTOM_DURATION_MIN", "SCHEDULE_SEMESTER_START", "SCHEDULE_SEMESTER_END",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadSchedule()
	assert.Equal(t, "https://student.lpnu.ua/students_schedule", cfg.SourceURL)
	assert.Equal(t, 24*time.Hour, cfg.StalenessTTL)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ParityNumerator, cfg.OddWeekParity)
	assert.Equal(t, 95*time.Minute, cfg.DefaultDuration)
	assert.Equal(t, 120*time.Minute, cfg.CustomDuration)
}

func TestLoadScheduleOverrides(t *testing.T) {
	t.Setenv("SCHEDULE_STALENESS_TTL", "6h")
	t.Setenv("SCHEDULE_ODD_WEEK_PARITY", "denominator")
	t.Setenv("SCHEDULE_DEFAULT_DURATION_MIN", "80")

	cfg := LoadSchedule()
	assert.Equal(t, 6*time.Hour, cfg.StalenessTTL)
	assert.Equal(t, ParityDenominator, cfg.OddWeekParity)
	assert.Equal(t, ParityNumerator, cfg.EvenWeekParity())
	assert.Equal(t, 80*time.Minute, cfg.DefaultDuration)
}

func TestLoadScheduleIgnoresInvalid(t *testing.T) {
	t.Setenv("SCHEDULE_STALENESS_TTL", "скоро")
	t.Setenv("SCHEDULE_ODD_WEEK_PARITY", "even")
	t.Setenv("SCHEDULE_DEFAULT_DURATION_MIN", "-5")

	cfg := LoadSchedule()
	assert.Equal(t, 24*time.Hour, cfg.StalenessTTL)
	assert.Equal(t, ParityNumerator, cfg.OddWeekParity)
	assert.Equal(t, 95*time.Minute, cfg.DefaultDuration)
}

func TestSemesterRangeByMonth(t *testing.T) {
	var cfg Schedule

	// Осень: с августа по декабрь действует осенний семестр.
	start, end := cfg.SemesterRange(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC), end)

	// Весна.
	start, end = cfg.SemesterRange(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), end)
}

func TestSemesterRangeExplicitOverride(t *testing.T) {
	cfg := Schedule{SemesterStart: "2025-09-08", SemesterEnd: "2025-12-01"}
	start, end := cfg.SemesterRange(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), end)
}
