package timetable

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	"studhub/internal/config"
)

// Fetcher скачивает страницу расписания группы с сайта университета.
type Fetcher struct {
	client       *resty.Client
	semester     string
	semesterPart string
	dumpDir      string
}

// NewFetcher настраивает HTTP-клиент: таймаут и браузерные заголовки,
// без которых источник периодически отдаёт другую разметку.
func NewFetcher(cfg config.Schedule) *Fetcher {
	client := resty.New().
		SetBaseURL(cfg.SourceURL).
		SetTimeout(cfg.FetchTimeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36").
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "uk-UA,uk;q=0.9,en;q=0.5").
		SetDoNotParseResponse(true)

	return &Fetcher{
		client:       client,
		semester:     cfg.Semester,
		semesterPart: cfg.SemesterPart,
		dumpDir:      cfg.DebugDumpDir,
	}
}

// FetchGroupPage возвращает разметку расписания группы в UTF-8.
// Любой сбой (сеть, таймаут, не-2xx) — ошибка, без повторных попыток:
// вызывающая сторона отдаёт устаревший кэш.
func (f *Fetcher) FetchGroupPage(ctx context.Context, group string) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"studygroup_abbrname": group,
			"semestr":             f.semester,
			"semestrduration":     f.semesterPart,
		}).
		Get("")
	if err != nil {
		return "", fmt.Errorf("запрос расписания %s: %w", group, err)
	}
	defer resp.RawBody().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		io.Copy(io.Discard, resp.RawBody())
		return "", fmt.Errorf("расписание %s: статус %d", group, resp.StatusCode())
	}

	// Источник исторически менял кодировку; декодируем по Content-Type
	// с приведением к UTF-8, иначе кириллица в названиях предметов ломается.
	reader, err := charset.NewReader(resp.RawBody(), resp.Header().Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("кодировка ответа для %s: %w", group, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("чтение ответа для %s: %w", group, err)
	}

	f.dump(group, body)
	return string(body), nil
}

// dump пишет сырой ответ в файл для диагностики. Работает только когда
// каталог задан явно через SCHEDULE_DEBUG_DUMP_DIR.
func (f *Fetcher) dump(group string, body []byte) {
	if f.dumpDir == "" {
		return
	}
	name := fmt.Sprintf("%s_%s.html",
		strings.ReplaceAll(group, string(filepath.Separator), "_"),
		time.Now().Format("20060102T150405"))
	if err := os.WriteFile(filepath.Join(f.dumpDir, name), body, 0o644); err != nil {
		log.Println("Не удалось сохранить дамп ответа:", err)
	}
}
