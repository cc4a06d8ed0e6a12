package timetable

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"studhub/internal/config"
	"studhub/internal/models"
)

// DisplayEvent — событие в готовом для календаря виде. Идентификатор
// стабилен для пары (источник, строка, дата), чтобы клиент мог отличать
// пары шаблона от пользовательских событий при правке и удалении.
type DisplayEvent struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"` // lecture / practical / lab / other
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Subgroup  int    `json:"subgroup"`
	Location  string `json:"location,omitempty"`
	IsCustom  bool   `json:"is_custom"`
}

// fallbackEnd подставляется, когда начало пары не разобралось и конец
// вычислить не из чего. Конец первой пары по звонкам.
const fallbackEnd = "10:05"

// AssembleView собирает единый список событий: развёрнутый шаблон,
// отфильтрованный по подгруппе, плюс события пользователя, в
// хронологическом порядке.
func AssembleView(expanded []Event, subgroup int, custom []models.CustomEvent, cfg config.Schedule) []DisplayEvent {
	return MergeViews(BuildLessonView(expanded, subgroup, cfg), BuildCustomView(custom, cfg))
}

// BuildLessonView отбирает события нужной подгруппы (0 — обе) и
// дописывает недостающее время конца.
func BuildLessonView(expanded []Event, subgroup int, cfg config.Schedule) []DisplayEvent {
	out := make([]DisplayEvent, 0, len(expanded))
	for _, ev := range expanded {
		if ev.Subgroup != 0 && subgroup != 0 && ev.Subgroup != subgroup {
			continue
		}
		end := ev.EndTime
		if end == "" {
			end = inferEnd(ev.StartTime, cfg.DefaultDuration)
		}
		date := ev.Date.Format("2006-01-02")
		out = append(out, DisplayEvent{
			ID:        fmt.Sprintf("lesson-%d-%s", ev.LessonID, date),
			Title:     ev.Subject,
			Type:      DisplayType(ev.Kind),
			Date:      date,
			StartTime: ev.StartTime,
			EndTime:   end,
			Subgroup:  ev.Subgroup,
			Location:  ev.Location,
			IsCustom:  false,
		})
	}
	return out
}

// BuildCustomView готовит события пользователя. Подгруппой они не
// фильтруются, а запасная длительность у них своя, длиннее пары.
func BuildCustomView(custom []models.CustomEvent, cfg config.Schedule) []DisplayEvent {
	out := make([]DisplayEvent, 0, len(custom))
	for _, ev := range custom {
		end := ev.EndTime
		if end == "" {
			end = inferEnd(ev.StartTime, cfg.CustomDuration)
		}
		out = append(out, DisplayEvent{
			ID:        fmt.Sprintf("custom-%d", ev.ID),
			Title:     ev.Title,
			Type:      DisplayType(ev.Kind),
			Date:      ev.Date,
			StartTime: ev.StartTime,
			EndTime:   end,
			IsCustom:  true,
		})
	}
	return out
}

// MergeViews объединяет списки в хронологическом порядке. Сортировка
// устойчивая: при равном времени события шаблона остаются впереди.
func MergeViews(lessons, custom []DisplayEvent) []DisplayEvent {
	out := make([]DisplayEvent, 0, len(lessons)+len(custom))
	out = append(out, lessons...)
	out = append(out, custom...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return clockMinutes(out[i].StartTime) < clockMinutes(out[j].StartTime)
	})
	return out
}

// inferEnd вычисляет конец события как начало плюс длительность пары.
// Непригодное время начала локально гасится фиксированной подстановкой.
func inferEnd(start string, d time.Duration) string {
	t, err := time.Parse("15:04", strings.TrimSpace(start))
	if err != nil {
		return fallbackEnd
	}
	return t.Add(d).Format("15:04")
}

func clockMinutes(s string) int {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 24 * 60 // события без времени — в конец дня
	}
	return t.Hour()*60 + t.Minute()
}
