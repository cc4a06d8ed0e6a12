package timetable

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"studhub/internal/config"
	"studhub/internal/models"
)

// Parse разбирает страницу расписания в строки недельного шаблона группы.
// Сначала пробуется структурная разметка (Shape A), затем табличная
// (Shape B). Непригодная разметка даёт пустой список, паники исключены.
func Parse(markup, group string) []models.Lesson {
	group = NormalizeGroup(group)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	if lessons := parseGrouped(doc, group); len(lessons) > 0 {
		return lessons
	}
	return parseGrid(doc, group)
}

// parseGrouped — структурная разметка: секции по дням недели, внутри —
// номер пары (h3) и элементы занятий с маркерами подгруппы и чередования
// в идентификаторе (sub_1/sub_2, chys/znam).
func parseGrouped(doc *goquery.Document, group string) []models.Lesson {
	var lessons []models.Lesson

	doc.Find("div.view-grouping").Each(func(_ int, day *goquery.Selection) {
		dayName := strings.TrimSpace(day.Find(".view-grouping-header").First().Text())
		idx, ok := WeekdayIndex(dayName)
		if !ok {
			return
		}
		weekday := CanonicalWeekday(idx)

		slot := ""
		day.Find(".view-grouping-content").Children().Each(func(_ int, node *goquery.Selection) {
			if goquery.NodeName(node) == "h3" {
				slot = strings.TrimSpace(node.Text())
				return
			}

			ownID, hasOwnID := node.Attr("id")
			entries := node.Find("[id]")
			switch {
			case entries.Length() > 0:
				entries.Each(func(_ int, entry *goquery.Selection) {
					marker, _ := entry.Attr("id")
					lessons = append(lessons, buildEntry(group, weekday, slot, marker, entry)...)
				})
			case hasOwnID:
				lessons = append(lessons, buildEntry(group, weekday, slot, ownID, node)...)
			default:
				// Без маркеров — занятие для обеих подгрупп каждую неделю.
				lessons = append(lessons, buildEntry(group, weekday, slot, "", node)...)
			}
		})
	})

	return lessons
}

// buildEntry превращает один элемент занятия в строки шаблона, раскрывая
// маркер подгруппы: без явного sub_1/sub_2 занятие дублируется в обе
// подгруппы, тогда как отсутствие chys/znam даёт одну строку "both".
func buildEntry(group, weekday, slot, marker string, node *goquery.Selection) []models.Lesson {
	lines := textLines(node)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil
	}

	start, end := "", ""
	if s, ok := SlotTimes(slot); ok {
		start, end = s.Start, s.End
	}

	subject, kind, location := splitEntryText(lines)
	if subject == "" {
		return nil
	}

	parity := ParityFromMarker(marker)
	var out []models.Lesson
	for _, sub := range SubgroupsFromMarker(marker) {
		out = append(out, models.Lesson{
			GroupName: group,
			Subgroup:  sub,
			Weekday:   weekday,
			StartTime: start,
			EndTime:   end,
			Subject:   subject,
			Kind:      kind,
			Location:  location,
			Parity:    parity,
		})
	}
	return out
}

// splitEntryText: первая строка — предмет, остальные классифицируются
// в вид занятия и аудиторию. Строка вида "Лекція, 215 IV н.к."
// разбирается по запятым.
func splitEntryText(lines []string) (subject, kind, location string) {
	subject = strings.TrimSpace(lines[0])
	kind = KindOther
	for _, line := range lines[1:] {
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if kind == KindOther {
				if k := KindFromText(part); k != KindOther {
					kind = k
				}
			}
			if location == "" && LooksLikeLocation(part) {
				location = part
			}
		}
	}
	return subject, kind, location
}

var timeRangeRe = regexp.MustCompile(`(\d{1,2}[:.]\d{2})\s*[-–—]\s*(\d{1,2}[:.]\d{2})`)

// parseGrid — табличная разметка: заголовок задаёт дни недели по
// колонкам, первая ячейка строки — интервал времени, в ячейках дней —
// блоки занятий, разделённые пустыми строками.
func parseGrid(doc *goquery.Document, group string) []models.Lesson {
	var lessons []models.Lesson

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		days := headerWeekdays(table)
		if len(days) == 0 {
			return true
		}

		table.Find("tr").Each(func(ri int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			m := timeRangeRe.FindStringSubmatch(strings.TrimSpace(cells.First().Text()))
			if m == nil {
				return
			}
			start := normalizeClock(m[1])
			end := normalizeClock(m[2])

			cells.Slice(1, cells.Length()).Each(func(ci int, cell *goquery.Selection) {
				weekday, ok := days[ci]
				if !ok {
					return
				}
				for _, block := range textBlocks(cell) {
					lessons = append(lessons, buildGridBlock(group, weekday, start, end, block)...)
				}
			})
		})
		return false
	})

	return lessons
}

// headerWeekdays сопоставляет колонки таблицы дням недели по заголовку.
// Ключ — номер колонки без первой (там время пары).
func headerWeekdays(table *goquery.Selection) map[int]string {
	days := make(map[int]string)
	header := table.Find("tr").First()
	header.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		if i == 0 {
			return
		}
		if idx, ok := WeekdayIndex(cell.Text()); ok {
			days[i-1] = CanonicalWeekday(idx)
		}
	})
	return days
}

// buildGridBlock разбирает один блок ячейки: первая строка — предмет,
// последняя — вид занятия, одиночная "1"/"2" — подгруппа.
func buildGridBlock(group, weekday, start, end string, lines []string) []models.Lesson {
	if len(lines) == 0 {
		return nil
	}
	subject := strings.TrimSpace(lines[0])
	if subject == "" {
		return nil
	}

	kind := KindOther
	if len(lines) > 1 {
		kind = KindFromText(lines[len(lines)-1])
	}
	location := ""
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		// Одиночные "1"/"2" — маркер подгруппы, не аудитория.
		if line == "1" || line == "2" {
			continue
		}
		if LooksLikeLocation(line) {
			location = line
			break
		}
	}

	var out []models.Lesson
	for _, sub := range SubgroupsFromBlock(lines) {
		out = append(out, models.Lesson{
			GroupName: group,
			Subgroup:  sub,
			Weekday:   weekday,
			StartTime: start,
			EndTime:   end,
			Subject:   subject,
			Kind:      kind,
			Location:  location,
			Parity:    config.ParityBoth,
		})
	}
	return out
}

var (
	brRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe = regexp.MustCompile(`<[^>]*>`)
)

// textLines возвращает непустые текстовые строки элемента: <br> считается
// переводом строки, остальные теги отбрасываются.
func textLines(node *goquery.Selection) []string {
	var lines []string
	for _, line := range rawLines(node) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// textBlocks группирует строки ячейки в блоки, разделённые пустыми строками.
func textBlocks(node *goquery.Selection) [][]string {
	var blocks [][]string
	var cur []string
	for _, line := range rawLines(node) {
		if line == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

func rawLines(node *goquery.Selection) []string {
	h, err := node.Html()
	if err != nil {
		return nil
	}
	h = brRe.ReplaceAllString(h, "\n")
	h = strings.ReplaceAll(h, "</p>", "\n\n")
	h = strings.ReplaceAll(h, "</div>", "\n")
	h = tagRe.ReplaceAllString(h, "")
	text := html.UnescapeString(h)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

// normalizeClock приводит "8.30" и "8:30" к виду "08:30".
func normalizeClock(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", ":")
	t, err := time.Parse("15:04", s)
	if err != nil {
		return s
	}
	return t.Format("15:04")
}
