package services

import (
	"context"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

// GoalService owns the append-only history of personalized nutrient targets.
// Versions are effective-dated: the one active on date D has the greatest
// effective_from <= D. Appends need no locking (independent inserts), and an
// as-of read racing a concurrent append is benign because effective_from is
// never future-dated.
type GoalService struct {
	db      *gorm.DB
	refiner GoalRefiner
	timeout time.Duration
}

func NewGoalService(db *gorm.DB, refiner GoalRefiner, timeout time.Duration) *GoalService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GoalService{db: db, refiner: refiner, timeout: timeout}
}

// AppendVersion inserts a new goal version effective from today. The frozen
// weekly/monthly/yearly multiples are computed here, once, at write time.
// Existing rows are never updated or deleted.
func (s *GoalService) AppendVersion(userID uint, daily models.NutrientTargets, reasoning string) (*models.NutritionGoalVersion, error) {
	v := &models.NutritionGoalVersion{
		UserID:        userID,
		Daily:         daily,
		Weekly:        daily.Scale(7),
		Monthly:       daily.Scale(30),
		Yearly:        daily.Scale(365),
		Reasoning:     reasoning,
		EffectiveFrom: models.DayOf(time.Now()),
	}
	if err := s.db.Create(v).Error; err != nil {
		return nil, err
	}
	return v, nil
}

// ActiveVersion returns the version active on asOf, or nil when the user has
// none yet — which is not an error; callers fall back to ComputeGoals.
// Same-day appends tie on effective_from, so the latest insert wins.
func (s *GoalService) ActiveVersion(userID uint, asOf time.Time) (*models.NutritionGoalVersion, error) {
	var v models.NutritionGoalVersion
	err := s.db.
		Where("user_id = ? AND effective_from <= ?", userID, models.DayOf(asOf)).
		Order("effective_from DESC, id DESC").
		First(&v).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// ActiveTargets resolves the targets in force for a user on a date, projected
// to the requested period. With no stored version the deterministic
// calculator answers, scaled by the same period multipliers.
func (s *GoalService) ActiveTargets(userID uint, profile *models.HealthProfile, asOf time.Time, period string) (models.NutrientTargets, string, error) {
	period = NormalizePeriod(period)

	v, err := s.ActiveVersion(userID, asOf)
	if err != nil {
		return models.NutrientTargets{}, "", err
	}
	if v != nil {
		return v.TargetsFor(period), v.Reasoning, nil
	}

	daily, reasoning := ComputeGoals(profile)
	return daily.Scale(PeriodMultiplier(period)), reasoning, nil
}

// GenerateAndStore recomputes targets for a user and appends them as a new
// version. The AI refiner is tried first under a deadline; anything short of
// a fully valid answer (timeout, transport error, schema violation) falls
// back to the calculator, which cannot fail.
func (s *GoalService) GenerateAndStore(ctx context.Context, userID uint, profile *models.HealthProfile) (*models.NutritionGoalVersion, error) {
	daily, reasoning := s.resolveTargets(ctx, profile)
	return s.AppendVersion(userID, daily, reasoning)
}

func (s *GoalService) resolveTargets(ctx context.Context, profile *models.HealthProfile) (models.NutrientTargets, string) {
	if s.refiner != nil {
		rctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		targets, reasoning, err := s.refiner.RefineGoals(rctx, profile)
		if err == nil {
			return targets, reasoning
		}
		if err != ErrRefinerUnavailable {
			log.Printf("[GOALS] refiner unavailable, using calculated targets: %v", err)
		}
	}
	return ComputeGoals(profile)
}

// NormalizePeriod maps request values onto the four stored period names.
func NormalizePeriod(period string) string {
	switch strings.ToLower(period) {
	case "weekly":
		return "weekly"
	case "monthly":
		return "monthly"
	case "yearly":
		return "yearly"
	default:
		return "daily"
	}
}
