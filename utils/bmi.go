package utils

import (
	"errors"
	"math"
)

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0 // to meters
	bmi := weightKg / (h * h)
	return math.Round(bmi*10) / 10, nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obese"
	}
}

// HealthyWeightRange returns the kg range corresponding to BMI 18.5-24.9.
func HealthyWeightRange(heightCm float64) (minKg, maxKg float64) {
	if heightCm <= 0 {
		return 0, 0
	}
	h := heightCm / 100.0
	minKg = math.Round(18.5*h*h*10) / 10
	maxKg = math.Round(24.9*h*h*10) / 10
	return minKg, maxKg
}
