package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

var ErrMealNotFound = errors.New("meal not found")

// MealService records eating events and keeps the daily aggregates in step:
// logging applies the meal's nutrient snapshot as a delta, deletion backs the
// same delta out again through the same atomic path.
type MealService struct {
	db         *gorm.DB
	aggregates *AggregateService
}

func NewMealService(db *gorm.DB, aggregates *AggregateService) *MealService {
	return &MealService{db: db, aggregates: aggregates}
}

type LogMealRequest struct {
	FoodName    string                 `json:"food_name" binding:"required"`
	MealType    string                 `json:"meal_type"`
	Nutrients   models.NutrientAmounts `json:"nutrients"`
	ServingSize string                 `json:"serving_size"`
	Quantity    float64                `json:"quantity"`
	Source      string                 `json:"source"`
	LoggedAt    *time.Time             `json:"logged_at"`
}

// LogMeal stores the meal row and pushes its nutrients into the aggregate for
// the day it was eaten. A failed increment surfaces as an error — the delta
// is never silently dropped.
func (s *MealService) LogMeal(userID uint, req LogMealRequest) (*models.Meal, error) {
	loggedAt := time.Now()
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}

	mealType := req.MealType
	if mealType == "" {
		mealType = "snack"
	}
	source := req.Source
	if source == "" {
		source = "manual"
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	// Reject malformed deltas up front, before the meal row exists.
	meal := &models.Meal{
		UserID:      userID,
		FoodName:    req.FoodName,
		MealType:    mealType,
		Nutrients:   req.Nutrients,
		ServingSize: req.ServingSize,
		Quantity:    quantity,
		Source:      source,
		LoggedAt:    loggedAt,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}
		return NewAggregateService(tx).UpsertIncrement(userID, loggedAt, req.Nutrients)
	})
	if err != nil {
		return nil, err
	}
	return meal, nil
}

// DeleteMeal removes a logged meal and reverses its contribution to that
// day's totals with a compensating negative delta. The original system left
// totals stale after deletion; this is the corrected behavior.
func (s *MealService) DeleteMeal(userID, mealID uint) error {
	var meal models.Meal
	err := s.db.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&meal).Error; err != nil {
			return err
		}
		return NewAggregateService(tx).ReverseIncrement(userID, meal.LoggedAt, meal.Nutrients)
	})
}

// ListMeals returns meals for a period: "today", "week", or anything else
// for the full history. Newest first.
func (s *MealService) ListMeals(userID uint, period string) ([]models.Meal, error) {
	q := s.db.Where("user_id = ?", userID).Order("logged_at DESC")

	now := time.Now()
	switch period {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		q = q.Where("logged_at >= ? AND logged_at < ?", start, start.Add(24*time.Hour))
	case "week":
		q = q.Where("logged_at >= ?", now.AddDate(0, 0, -7))
	}

	var meals []models.Meal
	err := q.Find(&meals).Error
	return meals, err
}
