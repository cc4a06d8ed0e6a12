package timetable

import (
	"time"

	"studhub/internal/config"
	"studhub/internal/models"
)

// Event — одно конкретное занятие в календаре. Никогда не сохраняется:
// вычисляется заново из шаблона на каждый запрос.
type Event struct {
	LessonID  uint
	Date      time.Time
	StartTime string
	EndTime   string
	Subject   string
	Kind      string
	Location  string
	Subgroup  int
	Parity    string // Чередование недели самой даты
}

// WeekParity возвращает метку недели для даты: номер недели считается от
// начала семестра, нечётным неделям соответствует oddParity.
// Какая метка нечётная — вопрос конкретного семестра, поэтому
// соответствие задаётся настройкой, а не константой.
func WeekParity(date, semesterStart time.Time, oddParity string) string {
	days := int(midnight(date).Sub(midnight(semesterStart)).Hours() / 24)
	week := days/7 + 1
	if week%2 == 1 {
		return oddParity
	}
	if oddParity == config.ParityNumerator {
		return config.ParityDenominator
	}
	return config.ParityNumerator
}

// Expand проецирует недельный шаблон на календарь семестра: по событию на
// каждую дату диапазона, чей день недели совпадает со строкой шаблона, а
// чередование строки — "both" или равно чередованию недели даты.
// Функция чистая: без ввода-вывода, результат детерминирован.
func Expand(rows []models.Lesson, semesterStart, semesterEnd time.Time, oddParity string) []Event {
	if semesterEnd.Before(semesterStart) || len(rows) == 0 {
		return nil
	}

	// Индексы дней недели шаблона считаем один раз.
	weekdayOf := make([]int, len(rows))
	for i, row := range rows {
		idx, ok := WeekdayIndex(row.Weekday)
		if !ok {
			idx = -1
		}
		weekdayOf[i] = idx
	}

	var events []Event
	for d := midnight(semesterStart); !d.After(midnight(semesterEnd)); d = d.AddDate(0, 0, 1) {
		dayIdx := dateWeekdayIndex(d)
		parity := WeekParity(d, semesterStart, oddParity)
		for i, row := range rows {
			if weekdayOf[i] != dayIdx {
				continue
			}
			if row.Parity != config.ParityBoth && row.Parity != parity {
				continue
			}
			events = append(events, Event{
				LessonID:  row.ID,
				Date:      d,
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
				Subject:   row.Subject,
				Kind:      row.Kind,
				Location:  row.Location,
				Subgroup:  row.Subgroup,
				Parity:    parity,
			})
		}
	}
	return events
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
