package models

import (
	"time"

	"gorm.io/datatypes"
)

// NutrientTargets is one set of whole-unit nutrient goals.
// Embedded four times per version (daily plus the frozen period multiples).
type NutrientTargets struct {
	Calories     int `json:"calories"`
	Protein      int `json:"protein"`
	Carbs        int `json:"carbs"`
	Fat          int `json:"fat"`
	Fiber        int `json:"fiber"`
	Sugar        int `json:"sugar"`
	SaturatedFat int `json:"saturated_fat"`
}

// Scale multiplies every target by n. Used once, at version-write time.
func (t NutrientTargets) Scale(n int) NutrientTargets {
	return NutrientTargets{
		Calories:     t.Calories * n,
		Protein:      t.Protein * n,
		Carbs:        t.Carbs * n,
		Fat:          t.Fat * n,
		Fiber:        t.Fiber * n,
		Sugar:        t.Sugar * n,
		SaturatedFat: t.SaturatedFat * n,
	}
}

// NutritionGoalVersion is an append-only, effective-dated goal record.
// The version active on date D is the one with the greatest
// effective_from <= D. Rows are never updated or deleted.
//
// Weekly/monthly/yearly are daily×7/×30/×365 computed at write time, not at
// read time: a goal change mid-period does not re-rate the period already in
// progress.
type NutritionGoalVersion struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Daily   NutrientTargets `gorm:"embedded;embeddedPrefix:daily_" json:"daily"`
	Weekly  NutrientTargets `gorm:"embedded;embeddedPrefix:weekly_" json:"weekly"`
	Monthly NutrientTargets `gorm:"embedded;embeddedPrefix:monthly_" json:"monthly"`
	Yearly  NutrientTargets `gorm:"embedded;embeddedPrefix:yearly_" json:"yearly"`

	Reasoning     string         `gorm:"type:text" json:"reasoning"`
	EffectiveFrom datatypes.Date `gorm:"index;not null" json:"effective_from"`
	CreatedAt     time.Time      `json:"created_at"`
}

// TargetsFor returns the pre-multiplied targets for a period.
// Unknown periods fall back to daily.
func (v *NutritionGoalVersion) TargetsFor(period string) NutrientTargets {
	switch period {
	case "weekly":
		return v.Weekly
	case "monthly":
		return v.Monthly
	case "yearly":
		return v.Yearly
	default:
		return v.Daily
	}
}
