package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studhub/internal/config"
	"studhub/internal/models"
)

func TestDedupeLastRowWins(t *testing.T) {
	rows := []models.Lesson{
		{GroupName: "КН-21", Subgroup: 1, Weekday: "Monday", StartTime: "08:30", Parity: config.ParityBoth, Subject: "Алгоритми", Location: "215 IV н.к."},
		{GroupName: "КН-21", Subgroup: 2, Weekday: "Monday", StartTime: "08:30", Parity: config.ParityBoth, Subject: "Алгоритми"},
		{GroupName: "КН-21", Subgroup: 1, Weekday: "Monday", StartTime: "08:30", Parity: config.ParityBoth, Subject: "Алгоритми", Location: "301 I н.к."},
	}

	out := dedupe(rows)
	require.Len(t, out, 2)
	// Поздний повтор слота уточняет ранний, порядок появления сохраняется.
	assert.Equal(t, "301 I н.к.", out[0].Location)
	assert.Equal(t, 1, out[0].Subgroup)
	assert.Equal(t, 2, out[1].Subgroup)
}

func TestDedupeKeysByGroup(t *testing.T) {
	rows := []models.Lesson{
		{GroupName: "КН-21", Subgroup: 1, Weekday: "Monday", StartTime: "08:30", Parity: config.ParityBoth, Subject: "Алгоритми"},
		{GroupName: "КН-22", Subgroup: 1, Weekday: "Monday", StartTime: "08:30", Parity: config.ParityBoth, Subject: "Фізика"},
	}

	// Одинаковый слот в разных группах — не дубль.
	assert.Len(t, dedupe(rows), 2)
}
