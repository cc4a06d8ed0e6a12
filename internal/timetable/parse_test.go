package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studhub/internal/config"
	"studhub/internal/models"
)

// Структурная разметка источника: секции по дням, номер пары в h3,
// маркеры подгруппы и чередования в id элемента занятия.
const groupedMarkup = `
<html><body>
<div class="view-grouping">
  <div class="view-grouping-header">Пн</div>
  <div class="view-grouping-content">
    <h3>1</h3>
    <div class="stud_schedule">
      <span id="group_chys_sub_1">Алгоритми і структури даних<br>Іваненко О.П.<br>Лекція, 215 IV н.к.</span>
    </div>
    <h3>2</h3>
    <div class="stud_schedule">
      <span id="group_full">Фізика<br>Практична, 301 I н.к.</span>
    </div>
  </div>
</div>
<div class="view-grouping">
  <div class="view-grouping-header">Вт</div>
  <div class="view-grouping-content">
    <h3>3</h3>
    <div class="stud_schedule">
      <span id="sub_2_znam">Бази даних<br>Лабораторна, 105 V н.к.</span>
    </div>
  </div>
</div>
</body></html>`

func findLessons(lessons []models.Lesson, subject string) []models.Lesson {
	var out []models.Lesson
	for _, l := range lessons {
		if l.Subject == subject {
			out = append(out, l)
		}
	}
	return out
}

func TestParseGroupedMarkup(t *testing.T) {
	lessons := Parse(groupedMarkup, "кн-21")

	// Алгоритми: явная подгруппа 1, чисельник.
	algo := findLessons(lessons, "Алгоритми і структури даних")
	require.Len(t, algo, 1)
	assert.Equal(t, "КН-21", algo[0].GroupName)
	assert.Equal(t, 1, algo[0].Subgroup)
	assert.Equal(t, "Monday", algo[0].Weekday)
	assert.Equal(t, "08:30", algo[0].StartTime)
	assert.Equal(t, "10:05", algo[0].EndTime)
	assert.Equal(t, KindLecture, algo[0].Kind)
	assert.Equal(t, "215 IV н.к.", algo[0].Location)
	assert.Equal(t, config.ParityNumerator, algo[0].Parity)

	// Фізика: маркера подгруппы нет — две строки, но одно общее "both",
	// а не дубль по чередованию.
	phys := findLessons(lessons, "Фізика")
	require.Len(t, phys, 2)
	subs := []int{phys[0].Subgroup, phys[1].Subgroup}
	assert.ElementsMatch(t, []int{1, 2}, subs)
	assert.Equal(t, config.ParityBoth, phys[0].Parity)
	assert.Equal(t, config.ParityBoth, phys[1].Parity)
	assert.Equal(t, "10:20", phys[0].StartTime)
	assert.Equal(t, KindPractical, phys[0].Kind)

	// Бази даних: подгруппа 2, знаменник, третья пара.
	db := findLessons(lessons, "Бази даних")
	require.Len(t, db, 1)
	assert.Equal(t, 2, db[0].Subgroup)
	assert.Equal(t, "Tuesday", db[0].Weekday)
	assert.Equal(t, "12:10", db[0].StartTime)
	assert.Equal(t, config.ParityDenominator, db[0].Parity)
	assert.Equal(t, KindLab, db[0].Kind)
}

// Табличная разметка: дни недели в заголовке, интервал времени в первой
// ячейке строки, блоки занятий в ячейках дней.
const gridMarkup = `
<html><body>
<table>
  <tr><th>Пари</th><th>Понеділок</th><th>Вівторок</th></tr>
  <tr>
    <td>08:30 - 10:05</td>
    <td>Алгоритми і структури даних<br>1<br>Лекція</td>
    <td></td>
  </tr>
  <tr>
    <td>10:20 - 11:55</td>
    <td>Фізика<br>Практична</td>
    <td>Бази даних<br>Лабораторна<br><br>Англійська мова<br>2<br>Практична</td>
  </tr>
</table>
</body></html>`

func TestParseGridMarkup(t *testing.T) {
	lessons := Parse(gridMarkup, "КН-21")

	algo := findLessons(lessons, "Алгоритми і структури даних")
	require.Len(t, algo, 1)
	assert.Equal(t, 1, algo[0].Subgroup)
	assert.Equal(t, "Monday", algo[0].Weekday)
	assert.Equal(t, "08:30", algo[0].StartTime)
	assert.Equal(t, "10:05", algo[0].EndTime)
	assert.Equal(t, KindLecture, algo[0].Kind)

	// Блок без маркера подгруппы раскрывается в обе подгруппы.
	phys := findLessons(lessons, "Фізика")
	require.Len(t, phys, 2)
	assert.ElementsMatch(t, []int{1, 2}, []int{phys[0].Subgroup, phys[1].Subgroup})
	assert.Equal(t, config.ParityBoth, phys[0].Parity)
	assert.Equal(t, KindPractical, phys[0].Kind)

	// Два блока в одной ячейке, разделённые пустой строкой.
	db := findLessons(lessons, "Бази даних")
	require.Len(t, db, 2)
	assert.Equal(t, "Tuesday", db[0].Weekday)
	assert.Equal(t, "10:20", db[0].StartTime)
	assert.Equal(t, KindLab, db[0].Kind)

	eng := findLessons(lessons, "Англійська мова")
	require.Len(t, eng, 1)
	assert.Equal(t, 2, eng[0].Subgroup)
}

func TestParseGarbage(t *testing.T) {
	assert.Empty(t, Parse("", "КН-21"))
	assert.Empty(t, Parse("не html и не расписание", "КН-21"))
	assert.Empty(t, Parse("<html><body><p>Сторінку не знайдено</p></body></html>", "КН-21"))
	assert.Empty(t, Parse("<div class=\"view-grouping\"><div class=\"view-grouping-header\">Пн</div></div>", "КН-21"))
}

func TestParseDropsEntriesWithoutSubject(t *testing.T) {
	markup := `
<div class="view-grouping">
  <div class="view-grouping-header">Пн</div>
  <div class="view-grouping-content">
    <h3>1</h3>
    <div class="stud_schedule"><span id="group_full"><br><br></span></div>
  </div>
</div>`
	assert.Empty(t, Parse(markup, "КН-21"))
}
