package timetable

import (
	"strings"
	"time"
)

// Slot — фиксированное время пары по её номеру.
type Slot struct {
	Start string
	End   string
}

// lessonSlots — звонки университета. Таблица фиксирована: номер пары на
// странице расписания всегда отображается в эти интервалы.
var lessonSlots = map[string]Slot{
	"1": {"08:30", "10:05"},
	"2": {"10:20", "11:55"},
	"3": {"12:10", "13:45"},
	"4": {"14:15", "15:50"},
	"5": {"16:00", "17:35"},
	"6": {"17:40", "19:15"},
	"7": {"19:20", "20:55"},
	"8": {"21:00", "22:35"},
}

// SlotTimes возвращает время начала и конца пары по её номеру.
func SlotTimes(number string) (Slot, bool) {
	s, ok := lessonSlots[number]
	return s, ok
}

// canonicalWeekdays — канонические имена дней (Mon=0..Sun=6) и варианты
// написания, встречающиеся в разметке источника.
var canonicalWeekdays = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var weekdayAliases = [7][]string{
	{"monday", "mon", "понеділок", "пн"},
	{"tuesday", "tue", "вівторок", "вт"},
	{"wednesday", "wed", "середа", "ср"},
	{"thursday", "thu", "четвер", "чт"},
	{"friday", "fri", "п'ятниця", "пт"},
	{"saturday", "sat", "субота", "сб"},
	{"sunday", "sun", "неділя", "нд"},
}

// WeekdayIndex сопоставляет текст дню недели (Mon=0..Sun=6) нечувствительно
// к регистру, по подстроке в обе стороны: "Пн" находится в "Понеділок",
// а "monday" содержит "mon".
func WeekdayIndex(name string) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return 0, false
	}
	for i, aliases := range weekdayAliases {
		for _, alias := range aliases {
			if strings.Contains(needle, alias) || strings.Contains(alias, needle) {
				return i, true
			}
		}
	}
	return 0, false
}

// CanonicalWeekday возвращает каноническое имя по индексу Mon=0..Sun=6.
func CanonicalWeekday(idx int) string {
	return canonicalWeekdays[idx]
}

// dateWeekdayIndex — индекс дня недели даты в нумерации Mon=0..Sun=6.
func dateWeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
