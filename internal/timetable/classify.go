package timetable

import (
	"regexp"
	"strings"

	"studhub/internal/config"
)

// Виды занятий.
const (
	KindLecture      = "lecture"
	KindPractical    = "practical"
	KindLab          = "lab"
	KindConsultation = "consultation"
	KindOther        = "other"
)

// kindKeywords — подстроки, по которым определяется вид занятия.
// Источник пишет по-украински, английские варианты оставлены на случай
// смены языка страницы.
var kindKeywords = []struct {
	substr string
	kind   string
}{
	{"лекц", KindLecture},
	{"lecture", KindLecture},
	{"практ", KindPractical},
	{"practic", KindPractical},
	{"лаб", KindLab},
	{"lab", KindLab},
	{"консульт", KindConsultation},
	{"consult", KindConsultation},
}

// KindFromText определяет вид занятия по свободному тексту.
func KindFromText(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range kindKeywords {
		if strings.Contains(lower, kw.substr) {
			return kw.kind
		}
	}
	return KindOther
}

// DisplayType сводит вид занятия к одной из четырёх категорий отображения.
func DisplayType(kind string) string {
	switch KindFromText(kind) {
	case KindLecture:
		return KindLecture
	case KindPractical:
		return KindPractical
	case KindLab:
		return KindLab
	}
	return KindOther
}

var digitRe = regexp.MustCompile(`\d`)

// buildingMarkers — сокращения учебных корпусов в обозначении аудитории.
var buildingMarkers = []string{"н.к.", "н.к", "к."}

// LooksLikeLocation — эвристика аудитории: короткий фрагмент с цифрой
// или пометкой корпуса. Фамилии преподавателей и названия предметов
// под неё не попадают.
func LooksLikeLocation(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" || len([]rune(t)) > 24 {
		return false
	}
	lower := strings.ToLower(t)
	for _, m := range buildingMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return digitRe.MatchString(t)
}

// ParityFromMarker извлекает чередование недель из идентификатора элемента
// разметки: "chys" — чисельник, "znam" — знаменник, иначе обе недели.
func ParityFromMarker(marker string) string {
	lower := strings.ToLower(marker)
	switch {
	case strings.Contains(lower, "chys"):
		return config.ParityNumerator
	case strings.Contains(lower, "znam"):
		return config.ParityDenominator
	}
	return config.ParityBoth
}

// SubgroupsFromMarker извлекает подгруппы из идентификатора элемента.
// Явный маркер даёт одну подгруппу; без маркера занятие дублируется
// в обе подгруппы (а не помечается нулём — так ведёт себя источник).
func SubgroupsFromMarker(marker string) []int {
	lower := strings.ToLower(marker)
	switch {
	case strings.Contains(lower, "sub_1"):
		return []int{1}
	case strings.Contains(lower, "sub_2"):
		return []int{2}
	}
	return []int{1, 2}
}

// SubgroupsFromBlock ищет одиночный токен "1" или "2" в тексте ячейки
// табличной формы расписания.
func SubgroupsFromBlock(lines []string) []int {
	for _, line := range lines[min(1, len(lines)):] {
		for _, tok := range strings.Fields(line) {
			switch strings.Trim(tok, "().,;") {
			case "1":
				return []int{1}
			case "2":
				return []int{2}
			}
		}
	}
	return []int{1, 2}
}

// NormalizeGroup приводит название группы к каноническому виду.
func NormalizeGroup(group string) string {
	return strings.ToUpper(strings.TrimSpace(group))
}
