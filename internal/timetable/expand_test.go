package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"studhub/internal/config"
	"studhub/internal/models"
)

var semStart = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) // понедельник

func day(offset int) time.Time {
	return semStart.AddDate(0, 0, offset)
}

func TestWeekParity(t *testing.T) {
	// Первая неделя нечётная.
	assert.Equal(t, config.ParityNumerator, WeekParity(semStart, semStart, config.ParityNumerator))
	// Сдвиг на 7 дней меняет метку, на 14 — возвращает.
	for offset := 0; offset < 60; offset++ {
		d := day(offset)
		p := WeekParity(d, semStart, config.ParityNumerator)
		assert.NotEqual(t, p, WeekParity(d.AddDate(0, 0, 7), semStart, config.ParityNumerator), "смещение %d", offset)
		assert.Equal(t, p, WeekParity(d.AddDate(0, 0, 14), semStart, config.ParityNumerator), "смещение %d", offset)
	}
}

func TestWeekParityConfigurableMapping(t *testing.T) {
	// Соответствие нечётной недели метке — настройка, а не константа.
	assert.Equal(t, config.ParityNumerator, WeekParity(semStart, semStart, config.ParityNumerator))
	assert.Equal(t, config.ParityDenominator, WeekParity(semStart, semStart, config.ParityDenominator))
}

func TestExpandNumeratorOnlyOnOddWeeks(t *testing.T) {
	rows := []models.Lesson{{
		GroupName: "КН-21",
		Subgroup:  1,
		Weekday:   "Monday",
		StartTime: "08:30",
		EndTime:   "10:05",
		Subject:   "Алгоритми",
		Kind:      KindLecture,
		Parity:    config.ParityNumerator,
	}}
	rows[0].ID = 7

	events := Expand(rows, semStart, day(27), config.ParityNumerator)

	var dates []string
	for _, ev := range events {
		dates = append(dates, ev.Date.Format("2006-01-02"))
		assert.Equal(t, config.ParityNumerator, ev.Parity)
	}
	// Понедельники только нечётных недель: 1-я и 3-я.
	assert.Equal(t, []string{"2025-09-01", "2025-09-15"}, dates)
}

func TestExpandBothParityCoversEveryMatchingDay(t *testing.T) {
	rows := []models.Lesson{{
		Weekday: "Wednesday", StartTime: "10:20", Subject: "Фізика", Parity: config.ParityBoth,
	}}

	events := Expand(rows, semStart, day(27), config.ParityNumerator)

	assert.Len(t, events, 4) // все четыре среды диапазона, независимо от чётности
	for _, ev := range events {
		assert.Equal(t, time.Wednesday, ev.Date.Weekday())
	}
}

func TestExpandSkipsOtherWeekdays(t *testing.T) {
	rows := []models.Lesson{{
		Weekday: "Monday", Subject: "Алгоритми", Parity: config.ParityBoth,
	}}

	events := Expand(rows, semStart, day(27), config.ParityNumerator)
	for _, ev := range events {
		assert.Equal(t, time.Monday, ev.Date.Weekday())
	}
}

func TestExpandWeekdayAliases(t *testing.T) {
	// День недели в шаблоне может быть сокращением, в том числе украинским.
	for _, name := range []string{"Monday", "mon", "Пн", "Понеділок"} {
		rows := []models.Lesson{{Weekday: name, Subject: "Алгоритми", Parity: config.ParityBoth}}
		events := Expand(rows, semStart, day(6), config.ParityNumerator)
		assert.Len(t, events, 1, "день: %q", name)
		assert.Equal(t, "2025-09-01", events[0].Date.Format("2006-01-02"), "день: %q", name)
	}
}

func TestExpandInclusiveBounds(t *testing.T) {
	rows := []models.Lesson{{Weekday: "Monday", Subject: "Алгоритми", Parity: config.ParityBoth}}

	// Диапазон из одного дня, совпадающего с днём недели строки.
	events := Expand(rows, semStart, semStart, config.ParityNumerator)
	assert.Len(t, events, 1)

	// Пустой и вывернутый диапазоны.
	assert.Empty(t, Expand(rows, semStart, semStart.AddDate(0, 0, -1), config.ParityNumerator))
	assert.Empty(t, Expand(nil, semStart, day(27), config.ParityNumerator))
}

func TestExpandUnknownWeekdayDropped(t *testing.T) {
	rows := []models.Lesson{{Weekday: "Someday", Subject: "Algo", Parity: config.ParityBoth}}
	assert.Empty(t, Expand(rows, semStart, day(27), config.ParityNumerator))
}

func TestExpandIsDeterministic(t *testing.T) {
	rows := []models.Lesson{
		{Weekday: "Monday", StartTime: "08:30", Subject: "Алгоритми", Parity: config.ParityNumerator, Subgroup: 1},
		{Weekday: "Monday", StartTime: "10:20", Subject: "Фізика", Parity: config.ParityBoth, Subgroup: 2},
	}
	a := Expand(rows, semStart, day(110), config.ParityNumerator)
	b := Expand(rows, semStart, day(110), config.ParityNumerator)
	assert.Equal(t, a, b)
}
