package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal is one logged eating event. Its nutrient snapshot is pushed into the
// day's aggregate when logged and reversed if the meal is deleted.
type Meal struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	FoodName string `gorm:"not null" json:"food_name"`
	MealType string `gorm:"size:20" json:"meal_type"` // breakfast|lunch|dinner|snack

	Nutrients NutrientAmounts `gorm:"embedded" json:"nutrients"`

	ServingSize string    `json:"serving_size"`
	Quantity    float64   `gorm:"default:1" json:"quantity"`
	Source      string    `gorm:"size:20" json:"source"` // "manual" | "scan"
	LoggedAt    time.Time `gorm:"index" json:"logged_at"`
}
