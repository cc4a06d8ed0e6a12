package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"studhub/internal/models"
	"studhub/internal/response"
	"studhub/internal/storage"
	"studhub/internal/timetable"

	"github.com/gin-gonic/gin"
)

// Timetable — конвейер расписания, собирается в main.
var Timetable *timetable.Service

type ScheduleViewResponse struct {
	Group    string                   `json:"group"`
	Subgroup int                      `json:"subgroup"`
	Events   []timetable.DisplayEvent `json:"events"`
	Error    string                   `json:"error,omitempty"` // Пояснение, если отдан устаревший или пустой кэш
}

// GetGroupScheduleHandler отдаёт календарь группы: пары из кэшированного
// шаблона, развёрнутые на семестр, плюс события пользователя.
// @Summary		Расписание группы
// @Description	Возвращает события семестра для группы и подгруппы. При недоступности источника отдаёт устаревший кэш, при пустом кэше — пустой список с пометкой об ошибке, но не 5xx
// @Tags			schedule
// @Produce		json
// @Security		BearerAuth
// @Param			group		path	string	true	"Название группы, например КН-21"
// @Param			subgroup	query	int		false	"Подгруппа (1 или 2, 0 — обе)"
// @Param			date		query	string	false	"Дата отсчёта семестра, YYYY-MM-DD (по умолчанию сегодня)"
// @Success		200	{object}	ScheduleViewResponse	"События семестра"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_GROUP, INVALID_SUBGROUP)"
// @Router			/api/schedule/{group} [get]
func GetGroupScheduleHandler(c *gin.Context) {
	group := timetable.NormalizeGroup(c.Param("group"))
	if group == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_GROUP",
			Message: "Не указана группа",
		})
		return
	}

	subgroup := 1
	if raw := c.Query("subgroup"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 2 {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_SUBGROUP",
				Message: "Подгруппа должна быть 0, 1 или 2",
			})
			return
		}
		subgroup = n
	}

	asOf := time.Now()
	if raw := c.Query("date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			asOf = t
		}
	}

	userID := c.GetUint("userID")
	view, errNote := buildScheduleView(c, group, subgroup, asOf, userID)

	c.JSON(http.StatusOK, ScheduleViewResponse{
		Group:    group,
		Subgroup: subgroup,
		Events:   view,
		Error:    errNote,
	})
}

// buildScheduleView — единая точка входа конвейера: освежить кэш шаблона,
// развернуть его на семестр, подмешать события пользователя. Любой сбой
// по пути деградирует до лучших доступных данных, вплоть до пустого списка.
func buildScheduleView(c *gin.Context, group string, subgroup int, asOf time.Time, userID uint) ([]timetable.DisplayEvent, string) {
	cfg := Timetable.Cfg
	semStart, semEnd := cfg.SemesterRange(asOf)

	errNote := ""
	base, ok := cachedLessonView(c, group, subgroup, semStart)
	if !ok {
		if err := Timetable.EnsureFresh(c.Request.Context(), group); err != nil {
			// Кэш остаётся как был: устаревшее расписание лучше пустого.
			log.Printf("Обновление расписания %s: %v", group, err)
			errNote = "Расписание могло устареть: источник недоступен"
		}

		lessons, err := Timetable.Lessons(group)
		if err != nil {
			log.Printf("Чтение шаблона %s: %v", group, err)
			return []timetable.DisplayEvent{}, "Не удалось прочитать расписание"
		}

		expanded := timetable.Expand(lessons, semStart, semEnd, cfg.OddWeekParity)
		base = timetable.BuildLessonView(expanded, subgroup, cfg)
		storeLessonView(c, group, subgroup, semStart, base)
	}

	var custom []models.CustomEvent
	if userID != 0 {
		if err := storage.DB.Where("user_id = ? AND group_name = ?", userID, group).
			Find(&custom).Error; err != nil {
			log.Printf("Чтение событий пользователя %d: %v", userID, err)
		}
	}

	return timetable.MergeViews(base, timetable.BuildCustomView(custom, cfg)), errNote
}

func lessonViewKey(group string, subgroup int, semStart time.Time) string {
	return fmt.Sprintf("schedule_%s_%d_%s", group, subgroup, semStart.Format("2006-01-02"))
}

// cachedLessonView достаёт развёрнутый шаблон из Redis. Кэш общий для
// всех пользователей группы: события пользователя в него не входят.
func cachedLessonView(c *gin.Context, group string, subgroup int, semStart time.Time) ([]timetable.DisplayEvent, bool) {
	if storage.RedisClient == nil {
		return nil, false
	}
	cached, err := storage.RedisClient.Get(c.Request.Context(), lessonViewKey(group, subgroup, semStart)).Result()
	if err != nil || cached == "" {
		return nil, false
	}
	var view []timetable.DisplayEvent
	if err := json.Unmarshal([]byte(cached), &view); err != nil {
		return nil, false
	}
	return view, true
}

func storeLessonView(c *gin.Context, group string, subgroup int, semStart time.Time, view []timetable.DisplayEvent) {
	if storage.RedisClient == nil || len(view) == 0 {
		return
	}
	body, err := json.Marshal(view)
	if err != nil {
		return
	}
	storage.RedisClient.Set(c.Request.Context(), lessonViewKey(group, subgroup, semStart), string(body), Timetable.Cfg.ViewCacheTTL)
}
