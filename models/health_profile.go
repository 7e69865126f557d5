package models

import (
	"gorm.io/gorm"
)

// HealthProfile is 1:1 with a user. Every successful upsert triggers a new
// NutritionGoalVersion, so targets always track the latest physiology.
type HealthProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Age           int     `json:"age"`
	Gender        string  `gorm:"size:16" json:"gender"` // "male" | "female" | "other"
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `gorm:"size:20" json:"activity_level"` // sedentary..very_active

	HasDiabetes            bool `json:"has_diabetes"`
	HasBloodPressureIssues bool `json:"has_blood_pressure_issues"`
	HasHeartIssues         bool `json:"has_heart_issues"`
	HasGutIssues           bool `json:"has_gut_issues"`

	WeightGoal        string `gorm:"size:16" json:"weight_goal"` // "loss" | "gain" | "maintain"
	MuscleBuilding    bool   `json:"muscle_building"`
	EnergyImprovement bool   `json:"energy_improvement"`
	SugarControl      bool   `json:"sugar_control"`
}
