package handlers

import (
	"net/http"
	"strconv"
	"time"

	"studhub/internal/models"
	"studhub/internal/response"
	"studhub/internal/storage"
	"studhub/internal/timetable"

	"github.com/gin-gonic/gin"
)

type SaveEventRequest struct {
	ID        uint   `json:"id"` // 0 — создать новое событие
	Group     string `json:"group_name" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Kind      string `json:"type"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SaveEventHandler создаёт или обновляет событие пользователя.
// @Summary		Сохранение события
// @Description	Создаёт событие календаря или обновляет существующее по id. Событие принадлежит только текущему пользователю
// @Tags			events
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			event	body		SaveEventRequest			true	"Данные события"
// @Success		200		{object}	response.SuccessResponse	"Событие сохранено"
// @Failure		400		{object}	response.ErrorResponse		"Ошибка валидации (VALIDATION_ERROR, INVALID_DATE)"
// @Failure		404		{object}	response.ErrorResponse		"Событие не найдено или принадлежит другому пользователю (EVENT_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/event [post]
func SaveEventHandler(c *gin.Context) {
	var req SaveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATE",
			Message: "Дата должна быть в формате YYYY-MM-DD",
		})
		return
	}

	userID := c.GetUint("userID")

	if req.ID != 0 {
		var event models.CustomEvent
		if err := storage.DB.Where("id = ? AND user_id = ?", req.ID, userID).First(&event).Error; err != nil {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "EVENT_NOT_FOUND",
				Message: "Событие не найдено",
			})
			return
		}
		event.Title = req.Title
		event.Kind = req.Kind
		event.Date = req.Date
		event.StartTime = req.StartTime
		event.EndTime = req.EndTime
		if err := storage.DB.Save(&event).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка при обновлении события",
			})
			return
		}
		c.JSON(http.StatusOK, response.SuccessResponse{Message: "Событие обновлено"})
		return
	}

	event := models.CustomEvent{
		UserID:    userID,
		GroupName: timetable.NormalizeGroup(req.Group),
		Title:     req.Title,
		Kind:      req.Kind,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := storage.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании события",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Событие создано", "id": event.ID})
}

// DeleteEventHandler удаляет событие пользователя.
// @Summary		Удаление события
// @Description	Удаляет событие календаря текущего пользователя
// @Tags			events
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		int							true	"ID события"
// @Success		200	{object}	response.SuccessResponse	"Событие удалено"
// @Failure		400	{object}	response.ErrorResponse		"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse		"Событие не найдено (EVENT_NOT_FOUND)"
// @Router			/api/event/{id} [delete]
func DeleteEventHandler(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Неверный идентификатор события",
		})
		return
	}

	userID := c.GetUint("userID")
	res := storage.DB.Where("id = ? AND user_id = ?", eventID, userID).Delete(&models.CustomEvent{})
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие не найдено",
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Событие удалено"})
}
