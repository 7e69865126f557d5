package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

// ErrInvalidDelta marks a malformed nutrient delta. These are rejected before
// touching the store and must not be retried.
var ErrInvalidDelta = errors.New("invalid nutrient delta")

// AggregateService maintains the per-(user, day) nutrient counters.
//
// The one real race in this system lives here: two meal-logging events for
// the same key must both land. Every write is therefore a single conditional
// insert-or-update statement — the database resolves the conflict, never a
// read-modify-write across two round trips.
type AggregateService struct {
	db *gorm.DB
}

func NewAggregateService(db *gorm.DB) *AggregateService {
	return &AggregateService{db: db}
}

// UpsertIncrement applies one meal's nutrient delta to the user's day row,
// creating the row seeded with the delta on first use. meals_count moves up
// by one.
func (s *AggregateService) UpsertIncrement(userID uint, day time.Time, delta models.NutrientAmounts) error {
	return s.applyDelta(userID, day, delta, 1)
}

// ReverseIncrement backs a previously applied delta out again, for meal
// deletion. It runs through the same atomic statement with the delta negated
// and meals_count stepped down.
func (s *AggregateService) ReverseIncrement(userID uint, day time.Time, delta models.NutrientAmounts) error {
	return s.applyDelta(userID, day, delta.Negate(), -1)
}

func (s *AggregateService) applyDelta(userID uint, day time.Time, delta models.NutrientAmounts, mealsDelta int) error {
	if err := validateDelta(delta); err != nil {
		return err
	}

	row := models.DailyNutritionAggregate{
		UserID:     userID,
		DayDate:    models.DayOf(day),
		Totals:     delta,
		MealsCount: mealsDelta,
	}

	// ON CONFLICT DO UPDATE with additive expressions: the increment happens
	// inside the database, so concurrent writers to the same key serialize
	// there and no update is lost.
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "day_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"calories":    gorm.Expr("daily_nutrition_aggregates.calories + excluded.calories"),
			"protein":     gorm.Expr("daily_nutrition_aggregates.protein + excluded.protein"),
			"carbs":       gorm.Expr("daily_nutrition_aggregates.carbs + excluded.carbs"),
			"fat":         gorm.Expr("daily_nutrition_aggregates.fat + excluded.fat"),
			"fiber":       gorm.Expr("daily_nutrition_aggregates.fiber + excluded.fiber"),
			"sugar":       gorm.Expr("daily_nutrition_aggregates.sugar + excluded.sugar"),
			"meals_count": gorm.Expr("daily_nutrition_aggregates.meals_count + excluded.meals_count"),
			"updated_at":  time.Now(),
		}),
	}).Create(&row).Error
}

func validateDelta(d models.NutrientAmounts) error {
	for name, v := range map[string]float64{
		"protein": d.Protein,
		"carbs":   d.Carbs,
		"fat":     d.Fat,
		"fiber":   d.Fiber,
		"sugar":   d.Sugar,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidDelta, name)
		}
	}
	return nil
}

// Day returns the aggregate for one date. An absent row reads as all-zero —
// a day with no activity is simply not stored.
func (s *AggregateService) Day(userID uint, day time.Time) (models.DailyNutritionAggregate, error) {
	var row models.DailyNutritionAggregate
	err := s.db.
		Where("user_id = ? AND day_date = ?", userID, models.DayOf(day)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DailyNutritionAggregate{
				UserID:  userID,
				DayDate: models.DayOf(day),
			}, nil
		}
		return models.DailyNutritionAggregate{}, err
	}
	return row, nil
}

// Range returns the sparse ascending run of day rows in [from, to].
// len(result) is the number of days actually tracked, not the width of the
// window.
func (s *AggregateService) Range(userID uint, from, to time.Time) ([]models.DailyNutritionAggregate, error) {
	var rows []models.DailyNutritionAggregate
	err := s.db.
		Where("user_id = ? AND day_date >= ? AND day_date <= ?",
			userID, models.DayOf(from), models.DayOf(to)).
		Order("day_date ASC").
		Find(&rows).Error
	return rows, err
}
