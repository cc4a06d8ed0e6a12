package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studhub/internal/config"
)

func TestKindFromText(t *testing.T) {
	cases := []struct {
		text string
		kind string
	}{
		{"Лекція", KindLecture},
		{"лекція, 215 IV н.к.", KindLecture},
		{"Практична робота", KindPractical},
		{"practical", KindPractical},
		{"Лабораторна", KindLab},
		{"Консультація", KindConsultation},
		{"Іваненко О.П.", KindOther},
		{"", KindOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindFromText(tc.text), "текст: %q", tc.text)
	}
}

func TestDisplayType(t *testing.T) {
	assert.Equal(t, KindLecture, DisplayType("lecture"))
	assert.Equal(t, KindPractical, DisplayType("practical"))
	assert.Equal(t, KindLab, DisplayType("lab"))
	// Консультация сводится к "other" — отдельной категории отображения нет.
	assert.Equal(t, KindOther, DisplayType("consultation"))
	assert.Equal(t, KindOther, DisplayType(""))
}

func TestLooksLikeLocation(t *testing.T) {
	assert.True(t, LooksLikeLocation("215 IV н.к."))
	assert.True(t, LooksLikeLocation("ауд. 101"))
	assert.True(t, LooksLikeLocation("301"))
	assert.False(t, LooksLikeLocation("Іваненко Олег Петрович"))
	assert.False(t, LooksLikeLocation(""))
	// Длинная строка с цифрой — не аудитория.
	assert.False(t, LooksLikeLocation("Дисципліна вільного вибору студента 2024"))
}

func TestParityFromMarker(t *testing.T) {
	assert.Equal(t, config.ParityNumerator, ParityFromMarker("group_chys_sub_1"))
	assert.Equal(t, config.ParityDenominator, ParityFromMarker("sub_2_znam"))
	assert.Equal(t, config.ParityBoth, ParityFromMarker("group_full"))
	assert.Equal(t, config.ParityBoth, ParityFromMarker(""))
}

func TestSubgroupsFromMarker(t *testing.T) {
	assert.Equal(t, []int{1}, SubgroupsFromMarker("group_chys_sub_1"))
	assert.Equal(t, []int{2}, SubgroupsFromMarker("sub_2_znam"))
	// Без маркера занятие дублируется в обе подгруппы.
	assert.Equal(t, []int{1, 2}, SubgroupsFromMarker("group_full"))
}

func TestSubgroupsFromBlock(t *testing.T) {
	assert.Equal(t, []int{1}, SubgroupsFromBlock([]string{"Алгоритми", "підгрупа 1", "Лекція"}))
	assert.Equal(t, []int{2}, SubgroupsFromBlock([]string{"Алгоритми", "2", "Практична"}))
	assert.Equal(t, []int{1, 2}, SubgroupsFromBlock([]string{"Алгоритми", "Лекція"}))
	// "1" в первой строке — это название, не подгруппа.
	assert.Equal(t, []int{1, 2}, SubgroupsFromBlock([]string{"Математичний аналіз 1"}))
}

func TestNormalizeGroup(t *testing.T) {
	assert.Equal(t, "КН-21", NormalizeGroup("  кн-21 "))
	assert.Equal(t, "", NormalizeGroup("   "))
}
