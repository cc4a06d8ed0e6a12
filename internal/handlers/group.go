package handlers

import (
	"net/http"

	"studhub/internal/response"

	"github.com/gin-gonic/gin"
)

type GroupListResponse struct {
	Groups []string `json:"groups"`
	Total  int      `json:"total"`
}

// GetGroupsHandler возвращает группы, чьё расписание уже есть в кэше.
// У источника нет API со списком групп, поэтому множество известных
// групп накапливается по мере запросов расписания.
// @Summary		Список известных групп
// @Description	Возвращает названия групп, для которых уже загружено расписание
// @Tags			groups
// @Produce		json
// @Success		200	{object}	GroupListResponse		"Список групп"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/groups [get]
func GetGroupsHandler(c *gin.Context) {
	groups, err := Timetable.KnownGroups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при чтении списка групп",
		})
		return
	}

	c.JSON(http.StatusOK, GroupListResponse{Groups: groups, Total: len(groups)})
}
