package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
	"github.com/AhmedAli-29SE/nutrifresh-server/utils"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService handles accounts and the health profile. A profile upsert is
// what drives goal versioning: every successful write appends a fresh
// NutritionGoalVersion derived from the new physiology.
type UserService struct {
	db        *gorm.DB
	goals     *GoalService
	jwtSecret []byte
}

func NewUserService(db *gorm.DB, goals *GoalService, jwtSecret []byte) *UserService {
	return &UserService{db: db, goals: goals, jwtSecret: jwtSecret}
}

func (s *UserService) Register(email, password, firstName, lastName string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Authenticate(email, password string) (string, error) {
	var user models.User
	err := s.db.Where("email = ? AND disabled = ?", email, false).First(&user).Error
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(s.jwtSecret, user.ID, user.Email)
}

// Profile returns the user's health profile, or nil when none has been set
// up yet — callers treat that as "use calculator defaults", not an error.
func (s *UserService) Profile(userID uint) (*models.HealthProfile, error) {
	var profile models.HealthProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

type ProfileInput struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`

	HasDiabetes            bool `json:"has_diabetes"`
	HasBloodPressureIssues bool `json:"has_blood_pressure_issues"`
	HasHeartIssues         bool `json:"has_heart_issues"`
	HasGutIssues           bool `json:"has_gut_issues"`

	Goals struct {
		WeightGoal        string `json:"weight_goal"`
		MuscleBuilding    bool   `json:"muscle_building"`
		EnergyImprovement bool   `json:"energy_improvement"`
		SugarControl      bool   `json:"sugar_control"`
	} `json:"goals"`
}

// UpsertProfile writes the user's profile (insert or replace, 1:1 with the
// user) and appends a new goal version from it. Goal generation failure does
// not roll back the profile write — targets can be regenerated explicitly.
func (s *UserService) UpsertProfile(ctx context.Context, userID uint, in ProfileInput) (*models.HealthProfile, *models.NutritionGoalVersion, error) {
	profile := models.HealthProfile{
		UserID:                 userID,
		Age:                    in.Age,
		Gender:                 in.Gender,
		HeightCm:               in.HeightCm,
		WeightKg:               in.WeightKg,
		ActivityLevel:          in.ActivityLevel,
		HasDiabetes:            in.HasDiabetes,
		HasBloodPressureIssues: in.HasBloodPressureIssues,
		HasHeartIssues:         in.HasHeartIssues,
		HasGutIssues:           in.HasGutIssues,
		WeightGoal:             in.Goals.WeightGoal,
		MuscleBuilding:         in.Goals.MuscleBuilding,
		EnergyImprovement:      in.Goals.EnergyImprovement,
		SugarControl:           in.Goals.SugarControl,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"age", "gender", "height_cm", "weight_kg", "activity_level",
			"has_diabetes", "has_blood_pressure_issues", "has_heart_issues", "has_gut_issues",
			"weight_goal", "muscle_building", "energy_improvement", "sugar_control",
			"updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, nil, err
	}

	version, err := s.goals.GenerateAndStore(ctx, userID, &profile)
	if err != nil {
		log.Printf("[PROFILE] goal version append failed for user %d: %v", userID, err)
		return &profile, nil, nil
	}
	return &profile, version, nil
}
