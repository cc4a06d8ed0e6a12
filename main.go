package main

import (
	"fmt"
	"log"
	"os"
	_ "studhub/docs"
	"studhub/internal/auth"
	"studhub/internal/config"
	"studhub/internal/handlers"
	"studhub/internal/models"
	"studhub/internal/storage"
	"studhub/internal/tasks"
	"studhub/internal/timetable"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Студенческий портал: расписание группы
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(&models.User{}, &models.Lesson{}, &models.CustomEvent{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	scheduleCfg := config.LoadSchedule()
	handlers.Timetable = &timetable.Service{
		DB:      storage.DB,
		Fetcher: timetable.NewFetcher(scheduleCfg),
		Cfg:     scheduleCfg,
	}
	tasks.Timetable = handlers.Timetable

	tasks.InitScheduler()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/refresh", handlers.RefreshToken)
	}

	apiGroup := r.Group("/api", auth.AuthMiddleware())
	{
		apiGroup.GET("/groups", handlers.GetGroupsHandler)
		apiGroup.GET("/schedule/:group", handlers.GetGroupScheduleHandler)
		apiGroup.GET("/profile", handlers.GetProfileHandler)
		apiGroup.PUT("/profile", handlers.UpdateProfileHandler)
		apiGroup.POST("/event", handlers.SaveEventHandler)
		apiGroup.DELETE("/event/:id", handlers.DeleteEventHandler)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
