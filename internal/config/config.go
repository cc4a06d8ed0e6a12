package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Parity — метки чередования недель (чисельник/знаменник).
const (
	ParityNumerator   = "numerator"
	ParityDenominator = "denominator"
	ParityBoth        = "both"
)

// Schedule — настройки конвейера расписания. Все значения можно
// переопределить через переменные окружения.
type Schedule struct {
	SourceURL       string        // Адрес страницы расписания университета
	Semester        string        // Параметр semestr внешнего источника
	SemesterPart    string        // Параметр semestrduration внешнего источника
	FetchTimeout    time.Duration // Таймаут запроса к внешнему источнику
	StalenessTTL    time.Duration // Срок свежести кэша шаблона
	ViewCacheTTL    time.Duration // TTL redis-кэша развёрнутого расписания
	OddWeekParity   string        // Какой метке соответствует нечётная неделя
	DefaultDuration time.Duration // Длительность пары при отсутствии конца
	CustomDuration  time.Duration // То же для пользовательских событий
	DebugDumpDir    string        // Если непусто — сырые ответы источника пишутся сюда
	SemesterStart   string        // Явное начало семестра ("2025-09-01"), иначе по правилу месяца
	SemesterEnd     string        // Явный конец семестра
}

// LoadSchedule читает настройки из окружения, подставляя значения по умолчанию.
func LoadSchedule() Schedule {
	return Schedule{
		SourceURL:       getenvDefault("SCHEDULE_SOURCE_URL", "https://student.lpnu.ua/students_schedule"),
		Semester:        getenvDefault("SCHEDULE_SEMESTER", "1"),
		SemesterPart:    getenvDefault("SCHEDULE_SEMESTER_PART", "1"),
		FetchTimeout:    getenvDuration("SCHEDULE_FETCH_TIMEOUT", 15*time.Second),
		StalenessTTL:    getenvDuration("SCHEDULE_STALENESS_TTL", 24*time.Hour),
		ViewCacheTTL:    getenvDuration("SCHEDULE_VIEW_CACHE_TTL", 10*time.Minute),
		OddWeekParity:   getenvParity("SCHEDULE_ODD_WEEK_PARITY", ParityNumerator),
		DefaultDuration: getenvMinutes("SCHEDULE_DEFAULT_DURATION_MIN", 95),
		CustomDuration:  getenvMinutes("SCHEDULE_CUSTOM_DURATION_MIN", 120),
		DebugDumpDir:    strings.TrimSpace(os.Getenv("SCHEDULE_DEBUG_DUMP_DIR")),
		SemesterStart:   strings.TrimSpace(os.Getenv("SCHEDULE_SEMESTER_START")),
		SemesterEnd:     strings.TrimSpace(os.Getenv("SCHEDULE_SEMESTER_END")),
	}
}

// EvenWeekParity возвращает метку, противоположную OddWeekParity.
func (s Schedule) EvenWeekParity() string {
	if s.OddWeekParity == ParityNumerator {
		return ParityDenominator
	}
	return ParityNumerator
}

// SemesterRange вычисляет границы семестра на дату запроса.
// С августа действует осенний семестр (1 сентября — 19 декабря),
// иначе весенний (1 февраля — 30 июня). Явные SCHEDULE_SEMESTER_START/END
// имеют приоритет.
func (s Schedule) SemesterRange(asOf time.Time) (time.Time, time.Time) {
	start, end := defaultSemesterRange(asOf)
	if t, err := time.Parse("2006-01-02", s.SemesterStart); err == nil {
		start = t
	}
	if t, err := time.Parse("2006-01-02", s.SemesterEnd); err == nil {
		end = t
	}
	return start, end
}

func defaultSemesterRange(asOf time.Time) (time.Time, time.Time) {
	year := asOf.Year()
	if asOf.Month() >= time.August {
		return time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.December, 19, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC)
}

func getenvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getenvMinutes(key string, fallback int) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return time.Duration(fallback) * time.Minute
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(fallback) * time.Minute
	}
	return time.Duration(n) * time.Minute
}

func getenvParity(key, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case ParityNumerator:
		return ParityNumerator
	case ParityDenominator:
		return ParityDenominator
	}
	return fallback
}
