package handlers

import (
	"net/http"
	"regexp"

	"studhub/internal/models"
	"studhub/internal/response"
	"studhub/internal/storage"
	"studhub/internal/timetable"

	"github.com/gin-gonic/gin"
)

// Формат названия группы: две кириллические буквы, дефис, две цифры.
var groupNameRe = regexp.MustCompile(`^[А-ЯІЇЄҐ]{2}-\d{2}$`)

type ProfileResponse struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Group   string `json:"group"`
}

type UpdateProfileRequest struct {
	Group string `json:"group" binding:"required"`
}

// @Summary		Профиль пользователя
// @Description	Возвращает данные профиля текущего пользователя
// @Tags			profile
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ProfileResponse			"Данные профиля"
// @Failure		404	{object}	response.ErrorResponse	"Пользователь не найден (USER_NOT_FOUND)"
// @Router			/api/profile [get]
func GetProfileHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "USER_NOT_FOUND",
			Message: "Пользователь не найден",
		})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Name:    user.Name,
		Surname: user.Surname,
		Email:   user.Email,
		Group:   user.GroupName,
	})
}

// @Summary		Смена учебной группы
// @Description	Устанавливает учебную группу пользователя, например "КН-21"
// @Tags			profile
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			profile	body		UpdateProfileRequest		true	"Новая группа"
// @Success		200		{object}	response.SuccessResponse	"Группа обновлена"
// @Failure		400		{object}	response.ErrorResponse		"Неверный формат группы (INVALID_GROUP)"
// @Failure		500		{object}	response.ErrorResponse		"Ошибка сервера (DB_ERROR)"
// @Router			/api/profile [put]
func UpdateProfileHandler(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	group := timetable.NormalizeGroup(req.Group)
	if !groupNameRe.MatchString(group) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_GROUP",
			Message: "Неверный формат группы. Пример: КН-21",
		})
		return
	}

	userID := c.GetUint("userID")
	if err := storage.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("group_name", group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при обновлении группы",
		})
		return
	}

	c.JSON(http.StatusOK, response.SuccessResponse{
		Message: "Группа успешно обновлена",
	})
}
