package models

import (
	"time"

	"gorm.io/gorm"
)

// Lesson — одна повторяющаяся пара из недельного шаблона группы.
// Набор строк группы целиком заменяется при каждом обновлении кэша.
type Lesson struct {
	gorm.Model
	GroupName string    `gorm:"index;not null;uniqueIndex:idx_lesson_slot"`     // Название группы (верхний регистр)
	Subgroup  int       `gorm:"not null;default:0;uniqueIndex:idx_lesson_slot"` // 0 — обе подгруппы, 1 или 2
	Weekday   string    `gorm:"not null;uniqueIndex:idx_lesson_slot"`           // Канонический день недели, Monday..Sunday
	StartTime string    `gorm:"uniqueIndex:idx_lesson_slot"`                    // "08:30"
	EndTime   string    // "10:05", может отсутствовать — тогда вычисляется при выдаче
	Subject   string    `gorm:"not null"`
	Kind      string    // lecture / practical / lab / consultation / other
	Location  string    // Аудитория, например "215 IV н.к."
	Parity    string    `gorm:"not null;default:'both';uniqueIndex:idx_lesson_slot"` // numerator / denominator / both
	CachedAt  time.Time `gorm:"index"` // Когда строка попала в кэш
}
