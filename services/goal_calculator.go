package services

import (
	"fmt"
	"math"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

// Physiological defaults used when a profile field is missing or zero.
// The calculator never fails: worst case it answers for this default person.
const (
	defaultAge      = 30
	defaultWeightKg = 70.0
	defaultHeightCm = 170.0
	defaultActivity = "moderate"
	defaultGender   = "other"
)

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// ComputeGoals derives daily nutrient targets from a health profile using the
// Mifflin-St Jeor equation with WHO/FAO macro splits. Deterministic and total:
// identical profiles always produce identical targets, and a nil profile
// yields the defaults.
//
// This is the synchronous fallback behind the AI goal refiner — it must always
// be available, so it touches nothing outside its arguments.
func ComputeGoals(p *models.HealthProfile) (models.NutrientTargets, string) {
	age := defaultAge
	weight := defaultWeightKg
	height := defaultHeightCm
	activity := defaultActivity
	gender := defaultGender

	diabetic := false
	weightGoal := "maintain"
	muscleBuilding := false

	if p != nil {
		if p.Age > 0 {
			age = p.Age
		}
		if p.WeightKg > 0 {
			weight = p.WeightKg
		}
		if p.HeightCm > 0 {
			height = p.HeightCm
		}
		if p.ActivityLevel != "" {
			activity = p.ActivityLevel
		}
		if p.Gender != "" {
			gender = p.Gender
		}
		diabetic = p.HasDiabetes
		if p.WeightGoal != "" {
			weightGoal = p.WeightGoal
		}
		muscleBuilding = p.MuscleBuilding
	}

	// Mifflin-St Jeor BMR; "other" takes the midpoint of the two offsets.
	bmr := 10*weight + 6.25*height - 5*float64(age)
	switch gender {
	case "male":
		bmr += 5
	case "female":
		bmr -= 161
	default:
		bmr -= 78
	}

	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = activityMultipliers[defaultActivity]
	}
	tdee := bmr * mult

	calories := tdee
	switch weightGoal {
	case "loss":
		calories = tdee * 0.80 // 20% deficit
	case "gain":
		calories = tdee * 1.15 // 15% surplus
	}

	proteinPerKg := 0.8
	if muscleBuilding {
		proteinPerKg = 1.8
	} else if weightGoal == "loss" {
		proteinPerKg = 1.4
	}
	protein := weight * proteinPerKg

	// Split the calories left after protein between carbs and fat.
	carbPct, fatPct := 0.50, 0.30
	if diabetic {
		carbPct, fatPct = 0.40, 0.35
	}
	remaining := calories - protein*4
	carbs := remaining * (carbPct / (carbPct + fatPct)) / 4
	fat := remaining * (fatPct / (carbPct + fatPct)) / 9

	fiber := 28
	sugar := sugarCeiling(gender, diabetic)
	if diabetic {
		fiber = 35
	}

	saturatedFat := int(math.Round(calories * 0.10 / 9))

	targets := models.NutrientTargets{
		Calories:     int(math.Round(calories)),
		Protein:      int(math.Round(protein)),
		Carbs:        int(math.Round(carbs)),
		Fat:          int(math.Round(fat)),
		Fiber:        fiber,
		Sugar:        sugar,
		SaturatedFat: saturatedFat,
	}

	reasoning := fmt.Sprintf(
		"Calculated using Mifflin-St Jeor formula (TDEE: %d kcal) with WHO/FAO/AHA guidelines adjusted for your profile",
		int(math.Round(tdee)))

	return targets, reasoning
}

// sugarCeiling returns grams of total sugar per day. Deliberately generous for
// non-diabetics so natural fruit and dairy sugars fit under the ceiling.
func sugarCeiling(gender string, diabetic bool) int {
	if diabetic {
		return 25
	}
	switch gender {
	case "male":
		return 90
	case "female":
		return 75
	default:
		return 80
	}
}
