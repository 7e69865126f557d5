package models

import (
	"time"

	"gorm.io/datatypes"
)

// NutrientAmounts is a field-wise nutrient quantity: the delta applied by a
// logged meal, and equally the running totals of a day. Calories are whole
// kcal; the gram fields are decimals.
type NutrientAmounts struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// Negate returns the compensating delta, used when a logged meal is deleted.
func (a NutrientAmounts) Negate() NutrientAmounts {
	return NutrientAmounts{
		Calories: -a.Calories,
		Protein:  -a.Protein,
		Carbs:    -a.Carbs,
		Fat:      -a.Fat,
		Fiber:    -a.Fiber,
		Sugar:    -a.Sugar,
	}
}

// Add returns the field-wise sum.
func (a NutrientAmounts) Add(b NutrientAmounts) NutrientAmounts {
	return NutrientAmounts{
		Calories: a.Calories + b.Calories,
		Protein:  a.Protein + b.Protein,
		Carbs:    a.Carbs + b.Carbs,
		Fat:      a.Fat + b.Fat,
		Fiber:    a.Fiber + b.Fiber,
		Sugar:    a.Sugar + b.Sugar,
	}
}

// DailyNutritionAggregate holds the incremental per-(user, day) counters.
// Exactly one row exists per key; totals equal the field-wise sum of every
// delta ever applied to it. Rows are created on the first delta of a day and
// only ever mutated by addition through a single atomic upsert statement.
type DailyNutritionAggregate struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	UserID  uint           `gorm:"uniqueIndex:idx_user_day;not null" json:"user_id"`
	DayDate datatypes.Date `gorm:"uniqueIndex:idx_user_day;not null" json:"day_date"`

	Totals     NutrientAmounts `gorm:"embedded" json:"totals"`
	MealsCount int             `json:"meals_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DayOf truncates a timestamp to its calendar date key.
func DayOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
