package services

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

func TestEstimateExpirationDays(t *testing.T) {
	cases := []struct {
		level, storage string
		want           int
	}{
		{"fresh", "freezer", 28},
		{"fresh", "fridge", 7},
		{"fresh", "pantry", 4},
		{"mid_fresh", "fridge", 4},
		{"not_fresh", "fridge", 1},
		{"not_fresh", "pantry", 1}, // 0.7 days floors up to the minimum
		{"mystery", "fridge", 5},
		{"fresh", "counter", 7}, // unknown storage, multiplier 1
	}
	for _, tc := range cases {
		if got := EstimateExpirationDays(tc.level, tc.storage); got != tc.want {
			t.Errorf("EstimateExpirationDays(%q, %q) = %d, want %d", tc.level, tc.storage, got, tc.want)
		}
	}
}

func TestCurrentFreshnessDecay(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

	fridge := &models.SavedItem{StorageType: "fridge", InitialFreshness: 80, SavedAt: now.AddDate(0, 0, -3)}
	if got := CurrentFreshness(fridge, now); got != 71 {
		t.Errorf("fridge after 3 days = %v, want 71", got)
	}

	freezer := &models.SavedItem{StorageType: "freezer", InitialFreshness: 80, SavedAt: now.AddDate(0, 0, -10)}
	if got := CurrentFreshness(freezer, now); got != 75 {
		t.Errorf("freezer after 10 days = %v, want 75", got)
	}

	pantry := &models.SavedItem{StorageType: "pantry", InitialFreshness: 10, SavedAt: now.AddDate(0, 0, -3)}
	if got := CurrentFreshness(pantry, now); got != 0 {
		t.Errorf("pantry decay must clamp at 0, got %v", got)
	}

	unknown := &models.SavedItem{StorageType: "cellar", InitialFreshness: 80, SavedAt: now.AddDate(0, 0, -2)}
	if got := CurrentFreshness(unknown, now); got != 74 {
		t.Errorf("unknown storage should decay at fridge rate, got %v", got)
	}

	// Partial days do not count: 47 hours stored is one whole day.
	partial := &models.SavedItem{StorageType: "fridge", InitialFreshness: 80, SavedAt: now.Add(-47 * time.Hour)}
	if got := CurrentFreshness(partial, now); got != 77 {
		t.Errorf("47h stored = %v, want 77", got)
	}
}

func TestCurrentFreshnessNeverIncreases(t *testing.T) {
	item := &models.SavedItem{StorageType: "fridge", InitialFreshness: 90, SavedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}

	prev := 101.0
	for d := 0; d < 40; d++ {
		now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, d)
		got := CurrentFreshness(item, now)
		if got > prev {
			t.Fatalf("day %d: freshness rose from %v to %v", d, prev, got)
		}
		prev = got
	}
	if prev != 0 {
		t.Errorf("after 40 days freshness = %v, want 0", prev)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	item := func(daysAgo, expiration int) *models.SavedItem {
		return &models.SavedItem{SavedAt: now.AddDate(0, 0, -daysAgo), EstimatedExpirationDays: expiration}
	}

	if got := Classify(item(2, 7), now); got != StatusOK {
		t.Errorf("5 days remaining = %q, want ok", got)
	}
	if got := Classify(item(5, 7), now); got != StatusExpiringSoon {
		t.Errorf("2 days remaining = %q, want expiring_soon", got)
	}
	if got := Classify(item(7, 7), now); got != StatusSpoiled {
		t.Errorf("0 days remaining = %q, want spoiled", got)
	}
	if got := Classify(item(12, 7), now); got != StatusSpoiled {
		t.Errorf("past expiration = %q, want spoiled", got)
	}
}

func seedSession(t *testing.T, db *gorm.DB, userID uint, sessionID string, level string, pct float64) {
	t.Helper()
	session := models.ScanSession{
		SessionID:           sessionID,
		UserID:              userID,
		FoodName:            "tomato",
		Category:            "vegetable",
		FreshnessPercentage: pct,
		FreshnessLevel:      level,
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func TestSaveUnknownSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	_, err := svc.Save(1, "nope", "fridge", "")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSaveSnapshotsSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	seedSession(t, db, 1, "s1", "fresh", 85)

	item, err := svc.Save(1, "s1", "freezer", "bought monday")
	if err != nil {
		t.Fatal(err)
	}
	if item.FoodName != "tomato" || item.InitialFreshness != 85 {
		t.Errorf("snapshot = %+v", item)
	}
	if item.EstimatedExpirationDays != 28 {
		t.Errorf("expiration = %d, want 28 for fresh+freezer", item.EstimatedExpirationDays)
	}
	if item.IsRisky {
		t.Error("fresh item at 85 should not be risky")
	}
}

func TestSaveDefaultsMissingReadings(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	seedSession(t, db, 1, "s1", "", 0)

	item, err := svc.Save(1, "s1", "fridge", "")
	if err != nil {
		t.Fatal(err)
	}
	if item.FreshnessLevel != "fresh" || item.InitialFreshness != 50 {
		t.Errorf("defaults not applied: level %q pct %v", item.FreshnessLevel, item.InitialFreshness)
	}
	if item.EstimatedExpirationDays != 7 {
		t.Errorf("expiration = %d, want 7", item.EstimatedExpirationDays)
	}
}

func TestSaveFlagsRiskyFood(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	seedSession(t, db, 1, "s1", "not_fresh", 60)

	item, err := svc.Save(1, "s1", "fridge", "")
	if err != nil {
		t.Fatal(err)
	}
	if !item.IsRisky {
		t.Error("not_fresh item should be flagged risky")
	}
	if item.HealthWarning == "" {
		t.Error("risky item should carry a warning")
	}
}

func TestMarkConsumedIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	seedSession(t, db, 1, "s1", "fresh", 90)
	if _, err := svc.Save(1, "s1", "fridge", ""); err != nil {
		t.Fatal(err)
	}

	if err := svc.MarkConsumed(1, "s1"); err != nil {
		t.Fatal(err)
	}

	var item models.SavedItem
	if err := db.Where("user_id = ? AND session_id = ?", 1, "s1").First(&item).Error; err != nil {
		t.Fatal(err)
	}
	if !item.IsConsumed || item.ConsumedAt == nil {
		t.Fatalf("not consumed: %+v", item)
	}
	firstConsumed := *item.ConsumedAt

	// Second consume is a no-op, not an error, and keeps the original time.
	if err := svc.MarkConsumed(1, "s1"); err != nil {
		t.Fatal(err)
	}
	if err := db.Where("user_id = ? AND session_id = ?", 1, "s1").First(&item).Error; err != nil {
		t.Fatal(err)
	}
	if !item.ConsumedAt.Equal(firstConsumed) {
		t.Errorf("consumed_at moved from %v to %v", firstConsumed, item.ConsumedAt)
	}
}

func TestRemoveConsumedVersusDiscarded(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	seedSession(t, db, 1, "eaten", "fresh", 90)
	seedSession(t, db, 1, "binned", "fresh", 90)
	if _, err := svc.Save(1, "eaten", "fridge", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(1, "binned", "fridge", ""); err != nil {
		t.Fatal(err)
	}

	// "consumed" keeps the row as history.
	if err := svc.Remove(1, "eaten", "consumed"); err != nil {
		t.Fatal(err)
	}
	var eaten models.SavedItem
	if err := db.Where("session_id = ?", "eaten").First(&eaten).Error; err != nil {
		t.Fatalf("consumed row should survive: %v", err)
	}
	if !eaten.IsConsumed {
		t.Error("consumed removal should mark is_consumed")
	}

	// Any other reason removes the row for good.
	if err := svc.Remove(1, "binned", "spoiled"); err != nil {
		t.Fatal(err)
	}
	var gone models.SavedItem
	err := db.Where("session_id = ?", "binned").First(&gone).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("discarded row should be gone, err = %v", err)
	}

	// The session id is free again after a hard delete.
	if _, err := svc.Save(1, "binned", "pantry", ""); err != nil {
		t.Fatalf("re-save after discard: %v", err)
	}
}

func TestResaveRefreshesEntry(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)
	seedSession(t, db, 1, "s1", "fresh", 90)

	if _, err := svc.Save(1, "s1", "fridge", "first"); err != nil {
		t.Fatal(err)
	}
	item, err := svc.Save(1, "s1", "freezer", "moved to freezer")
	if err != nil {
		t.Fatal(err)
	}
	if item.EstimatedExpirationDays != 28 {
		t.Errorf("refreshed expiration = %d, want 28", item.EstimatedExpirationDays)
	}

	var count int64
	db.Model(&models.SavedItem{}).Where("user_id = ? AND session_id = ?", 1, "s1").Count(&count)
	if count != 1 {
		t.Errorf("re-save duplicated the entry: count = %d", count)
	}
}

func TestUsableItemsFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	seedSession(t, db, 1, "good", "fresh", 90)
	seedSession(t, db, 1, "eaten", "fresh", 90)
	seedSession(t, db, 1, "risky", "not_fresh", 60)
	seedSession(t, db, 1, "stale", "fresh", 50)
	for _, id := range []string{"good", "eaten", "risky", "stale"} {
		if _, err := svc.Save(1, id, "pantry", ""); err != nil {
			t.Fatal(err)
		}
	}
	if err := svc.MarkConsumed(1, "eaten"); err != nil {
		t.Fatal(err)
	}
	// Age the stale item five days: 50 - 5*5 = 25, under the default floor.
	err := db.Model(&models.SavedItem{}).
		Where("session_id = ?", "stale").
		Update("saved_at", time.Now().AddDate(0, 0, -5)).Error
	if err != nil {
		t.Fatal(err)
	}

	usable, err := svc.UsableItems(1, 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(usable) != 1 || usable[0].SessionID != "good" {
		t.Fatalf("usable = %+v, want only %q", usable, "good")
	}

	// A lower floor lets the aged item back in.
	usable, err = svc.UsableItems(1, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(usable) != 2 {
		t.Fatalf("usable at floor 20 = %d items, want 2", len(usable))
	}
}

func TestStorageSummaryBuckets(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(db)

	seedSession(t, db, 1, "a", "fresh", 90)
	seedSession(t, db, 1, "b", "fresh", 90)
	seedSession(t, db, 1, "c", "not_fresh", 30)
	if _, err := svc.Save(1, "a", "fridge", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(1, "b", "freezer", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(1, "c", "pantry", ""); err != nil {
		t.Fatal(err)
	}
	// Age the pantry item past its one-day estimate.
	err := db.Model(&models.SavedItem{}).
		Where("session_id = ?", "c").
		Update("saved_at", time.Now().AddDate(0, 0, -2)).Error
	if err != nil {
		t.Fatal(err)
	}

	summary, err := svc.Summary(1)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalItems != 3 {
		t.Errorf("total = %d, want 3", summary.TotalItems)
	}
	if summary.ByStorage["fridge"] != 1 || summary.ByStorage["freezer"] != 1 || summary.ByStorage["pantry"] != 1 {
		t.Errorf("by_storage = %+v", summary.ByStorage)
	}
	if len(summary.Spoiled) != 1 || summary.Spoiled[0].SessionID != "c" {
		t.Errorf("spoiled = %+v, want session c", summary.Spoiled)
	}
}
