package models

import "gorm.io/gorm"

// CustomEvent — событие, добавленное пользователем в свой календарь.
// В шаблон расписания никогда не пишется, только подмешивается при выдаче.
type CustomEvent struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null"`
	User      User   `gorm:"foreignKey:UserID"`
	GroupName string `gorm:"index;not null"`
	Title     string `gorm:"not null"`
	Kind      string // lecture / practical / lab / other
	Date      string `gorm:"not null"` // "2025-09-01"
	StartTime string // "14:15"
	EndTime   string // Может отсутствовать
}
