package tasks

import (
	"context"
	"log"
	"time"

	"studhub/internal/models"
	"studhub/internal/storage"
	"studhub/internal/timetable"

	"github.com/robfig/cron/v3"
)

// Timetable выставляется в main до запуска планировщика.
var Timetable *timetable.Service

// RefreshFollowedSchedules прогревает кэш: обходит группы, указанные в
// профилях пользователей, и освежает протухшие шаблоны. Свежие группы
// пропускаются без сетевых запросов, так что задачу можно гонять часто.
func RefreshFollowedSchedules() {
	var groups []string
	if err := storage.DB.Model(&models.User{}).
		Where("group_name <> ''").
		Distinct("group_name").
		Pluck("group_name", &groups).Error; err != nil {
		log.Println("Ошибка при выборке групп пользователей:", err)
		return
	}

	if len(groups) == 0 {
		log.Println("Нет групп для прогрева расписания.")
		return
	}

	for _, group := range groups {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := Timetable.EnsureFresh(ctx, group)
		cancel()
		if err != nil {
			log.Printf("Прогрев расписания %s: %v", group, err)
			continue
		}
	}
	log.Printf("Прогрев расписания завершён, групп: %d", len(groups))
}

// CleanUnfollowedSchedules удаляет кэш шаблонов групп, за которыми больше
// не следит ни один пользователь.
func CleanUnfollowedSchedules() {
	// Unscoped: иначе строки остаются в уникальном индексе шаблона и
	// повторный прогрев группы после очистки падает на ограничении.
	res := storage.DB.Unscoped().
		Where("group_name NOT IN (?)", storage.DB.Model(&models.User{}).
			Where("group_name <> ''").
			Distinct("group_name").
			Select("group_name")).
		Delete(&models.Lesson{})
	if res.Error != nil {
		log.Println("Ошибка при очистке неиспользуемых расписаний:", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Удалено строк неиспользуемых расписаний: %d", res.RowsAffected)
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Прогрев кэша расписаний каждый час.
	_, err := c.AddFunc("0 0 * * * *", RefreshFollowedSchedules)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи RefreshFollowedSchedules:", err)
	}

	// Очистка неиспользуемых шаблонов каждый день в 03:00.
	_, err = c.AddFunc("0 0 3 * * *", CleanUnfollowedSchedules)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи CleanUnfollowedSchedules:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
