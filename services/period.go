package services

import (
	"strings"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

// PeriodMultiplier converts daily targets to period targets.
// Calendar-approximate on purpose: weekly 7, monthly 30, yearly 365.
func PeriodMultiplier(period string) int {
	switch strings.ToLower(period) {
	case "weekly":
		return 7
	case "monthly":
		return 30
	case "yearly":
		return 365
	default: // "daily", "today", anything unknown
		return 1
	}
}

// SumAggregates folds a sparse run of day rows into one total.
// Absent days are simply not in the slice, so they contribute zero.
func SumAggregates(rows []models.DailyNutritionAggregate) models.NutrientAmounts {
	var total models.NutrientAmounts
	for _, row := range rows {
		total = total.Add(row.Totals)
	}
	return total
}

// ProgressPercentage reports consumed against goal, uncapped so overage shows
// as >100. A non-positive goal reads as zero progress rather than dividing
// by zero.
func ProgressPercentage(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return consumed / goal * 100
}

// ClampedProgress is the progress-bar display value, held to [0, 100].
func ClampedProgress(consumed, goal float64) float64 {
	p := ProgressPercentage(consumed, goal)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
