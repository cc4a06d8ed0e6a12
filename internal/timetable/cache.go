package timetable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"studhub/internal/config"
	"studhub/internal/models"
)

// ErrNothingParsed означает, что обе стратегии разбора не дали ни одной
// строки. Хороший кэш такой результат не затирает.
var ErrNothingParsed = errors.New("разбор расписания не дал ни одной пары")

// PageFetcher отдаёт разметку расписания группы.
type PageFetcher interface {
	FetchGroupPage(ctx context.Context, group string) (string, error)
}

// Service — конвейер расписания: кэш шаблона в БД, загрузка и разбор
// страницы источника, развёртка на семестр.
type Service struct {
	DB      *gorm.DB
	Fetcher PageFetcher
	Cfg     config.Schedule
}

// EnsureFresh гарантирует свежий шаблон группы в кэше. Пока кэш свежее
// порога, сетевых запросов нет — повторный вызов в пределах окна ничего
// не делает. При сбое загрузки или пустом разборе старые строки остаются:
// устаревшее расписание лучше пустого.
func (s *Service) EnsureFresh(ctx context.Context, group string) error {
	group = NormalizeGroup(group)

	var newest time.Time
	row := s.DB.Model(&models.Lesson{}).
		Where("group_name = ?", group).
		Select("COALESCE(MAX(cached_at), '0001-01-01')").Row()
	_ = row.Scan(&newest)

	if !newest.IsZero() && time.Since(newest) < s.Cfg.StalenessTTL {
		return nil
	}
	return s.Refresh(ctx, group)
}

// Refresh безусловно перечитывает расписание группы из источника и
// атомарно заменяет её строки в кэше.
func (s *Service) Refresh(ctx context.Context, group string) error {
	group = NormalizeGroup(group)

	markup, err := s.Fetcher.FetchGroupPage(ctx, group)
	if err != nil {
		return err
	}

	lessons := dedupe(Parse(markup, group))
	if len(lessons) == 0 {
		return ErrNothingParsed
	}

	now := time.Now()
	for i := range lessons {
		lessons[i].CachedAt = now
	}

	// Удаление и вставка в одной транзакции: читатели никогда не видят
	// группу с пустым шаблоном посреди обновления. Удаление только
	// физическое: мягко удалённые строки остаются в уникальном индексе
	// и повторная вставка тех же слотов упирается в ограничение.
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("group_name = ?", group).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(lessons, 100).Error
	})
	if err != nil {
		return fmt.Errorf("замена шаблона группы %s: %w", group, err)
	}
	return nil
}

// Lessons читает кэшированный шаблон группы.
func (s *Service) Lessons(group string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.DB.Where("group_name = ?", NormalizeGroup(group)).
		Order("weekday, start_time, subgroup").
		Find(&lessons).Error
	return lessons, err
}

// KnownGroups возвращает группы, чьё расписание уже есть в кэше.
func (s *Service) KnownGroups() ([]string, error) {
	var groups []string
	err := s.DB.Model(&models.Lesson{}).
		Distinct("group_name").
		Order("group_name").
		Pluck("group_name", &groups).Error
	return groups, err
}

// dedupe схлопывает повторы по ключу уникальности шаблона, чтобы
// пакетная вставка не упала на ограничении индекса. При совпадении
// ключа побеждает более поздняя строка: повтор в разметке — это
// уточнение, а не дубль.
func dedupe(lessons []models.Lesson) []models.Lesson {
	type key struct {
		group, weekday string
		subgroup       int
		start, parity  string
	}
	seen := make(map[key]int, len(lessons))
	out := lessons[:0]
	for _, l := range lessons {
		k := key{l.GroupName, l.Weekday, l.Subgroup, l.StartTime, l.Parity}
		if i, ok := seen[k]; ok {
			out[i] = l
			continue
		}
		seen[k] = len(out)
		out = append(out, l)
	}
	return out
}
