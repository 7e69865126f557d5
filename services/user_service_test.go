package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

func newUserService(t *testing.T) (*UserService, *GoalService) {
	t.Helper()
	db := newTestDB(t)
	goals := NewGoalService(db, nil, time.Second)
	return NewUserService(db, goals, []byte("test-secret")), goals
}

func TestRegisterAndAuthenticate(t *testing.T) {
	users, _ := newUserService(t)

	user, err := users.Register("jamie@example.com", "hunter2hunter2", "Jamie", "Lee")
	if err != nil {
		t.Fatal(err)
	}
	if user.Password == "hunter2hunter2" {
		t.Fatal("password stored in plaintext")
	}

	token, err := users.Authenticate("jamie@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	if _, err := users.Authenticate("jamie@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := users.Authenticate("nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users, _ := newUserService(t)

	if _, err := users.Register("dup@example.com", "passwordpassword", "", ""); err != nil {
		t.Fatal(err)
	}
	_, err := users.Register("dup@example.com", "passwordpassword", "", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestProfileAbsentIsNil(t *testing.T) {
	users, _ := newUserService(t)

	profile, err := users.Profile(1)
	if err != nil {
		t.Fatal(err)
	}
	if profile != nil {
		t.Fatalf("profile = %+v, want nil", profile)
	}
}

func TestUpsertProfileAppendsGoalVersion(t *testing.T) {
	users, goals := newUserService(t)

	input := ProfileInput{
		Age: 30, Gender: "male", HeightCm: 175, WeightKg: 70,
		ActivityLevel: "moderate",
	}
	input.Goals.WeightGoal = "maintain"

	profile, version, err := users.UpsertProfile(context.Background(), 1, input)
	if err != nil {
		t.Fatal(err)
	}
	if profile.WeightKg != 70 {
		t.Errorf("profile = %+v", profile)
	}
	if version == nil {
		t.Fatal("profile write should append a goal version")
	}

	wantDaily, _ := ComputeGoals(profile)
	if version.Daily != wantDaily {
		t.Errorf("version daily = %+v, want %+v", version.Daily, wantDaily)
	}

	// A second write replaces the profile row and appends a second version.
	input.WeightKg = 68
	input.Goals.WeightGoal = "loss"
	_, second, err := users.UpsertProfile(context.Background(), 1, input)
	if err != nil {
		t.Fatal(err)
	}
	if second == nil {
		t.Fatal("second write should append another version")
	}

	var profileCount, versionCount int64
	users.db.Model(&models.HealthProfile{}).Where("user_id = ?", 1).Count(&profileCount)
	users.db.Model(&models.NutritionGoalVersion{}).Where("user_id = ?", 1).Count(&versionCount)
	if profileCount != 1 {
		t.Errorf("profile rows = %d, want 1", profileCount)
	}
	if versionCount != 2 {
		t.Errorf("goal versions = %d, want 2", versionCount)
	}

	active, err := goals.ActiveVersion(1, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.ID != second.ID {
		t.Errorf("active version = %+v, want the latest append", active)
	}
}
