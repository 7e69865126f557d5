package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
	"github.com/AhmedAli-29SE/nutrifresh-server/utils"
)

var ErrSessionNotFound = errors.New("scan session not found")

// Item lifecycle classifications, derived at read time and never stored.
const (
	StatusOK           = "ok"
	StatusExpiringSoon = "expiring_soon"
	StatusSpoiled      = "spoiled"
)

// Two independent decay models, both user-visible.
//
// baseExpirationDays x storageMultiplier estimates a shelf life in days,
// fixed once at save time. freshnessDecayPerDay drains the live freshness
// percentage afterwards. They look like they should be one table; they are
// not, and each produces a different number on screen, so both are kept
// exactly as they are.
var (
	baseExpirationDays = map[string]float64{
		"fresh":     7,
		"mid_fresh": 4,
		"not_fresh": 1,
	}
	storageMultiplier = map[string]float64{
		"freezer": 4,
		"fridge":  1,
		"pantry":  0.7,
	}
	// percentage-points of freshness lost per stored day
	freshnessDecayPerDay = map[string]float64{
		"freezer": 0.5,
		"fridge":  3,
		"pantry":  5,
	}
)

// EstimateExpirationDays fixes the shelf-life estimate at save time,
// floored at one day.
func EstimateExpirationDays(freshnessLevel, storageType string) int {
	base, ok := baseExpirationDays[freshnessLevel]
	if !ok {
		base = 5
	}
	mult, ok := storageMultiplier[storageType]
	if !ok {
		mult = 1
	}
	days := int(base * mult)
	if days < 1 {
		days = 1
	}
	return days
}

// DaysElapsed counts whole days between two instants, floor semantics.
func DaysElapsed(savedAt, now time.Time) int {
	if now.Before(savedAt) {
		return 0
	}
	return int(now.Sub(savedAt).Hours() / 24)
}

// CurrentFreshness derives the live freshness of an item: initial reading
// minus stored-days times the storage type's decay rate, clamped at zero and
// rounded to one decimal.
func CurrentFreshness(item *models.SavedItem, now time.Time) float64 {
	rate, ok := freshnessDecayPerDay[item.StorageType]
	if !ok {
		rate = freshnessDecayPerDay["fridge"]
	}
	fresh := item.InitialFreshness - float64(DaysElapsed(item.SavedAt, now))*rate
	if fresh < 0 {
		fresh = 0
	}
	return math.Round(fresh*10) / 10
}

// Classify reports the item's spoilage state as of now. Spoiled exactly when
// the elapsed days reach the save-time expiration estimate; expiring soon in
// the final two days before that.
func Classify(item *models.SavedItem, now time.Time) string {
	elapsed := DaysElapsed(item.SavedAt, now)
	remaining := item.EstimatedExpirationDays - elapsed
	switch {
	case remaining <= 0:
		return StatusSpoiled
	case remaining <= 2:
		return StatusExpiringSoon
	default:
		return StatusOK
	}
}

// SavedItemView is a ledger entry plus its read-time derivations, all
// computed from the same "now" so items in one listing never skew.
type SavedItemView struct {
	models.SavedItem
	CurrentFreshness float64 `json:"current_freshness"`
	DaysStored       int     `json:"days_stored"`
	Status           string  `json:"status"`
}

// StorageSummary buckets a user's inventory for the storage dashboard.
type StorageSummary struct {
	TotalItems   int             `json:"total_items"`
	ByStorage    map[string]int  `json:"by_storage"`
	ExpiringSoon []SavedItemView `json:"expiring_soon"`
	Spoiled      []SavedItemView `json:"spoiled"`
}

// InventoryService is the perishable-food ledger: save, decay, consume,
// remove. State machine per item: Saved -> Consumed or Saved -> Removed,
// both terminal.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// Save enters a scanned food into storage. The referenced scan session must
// exist — saving against a missing session is a fatal not-found, not
// something to retry. Re-saving the same session refreshes the entry.
func (s *InventoryService) Save(userID uint, sessionID, storageType, notes string) (*models.SavedItem, error) {
	var session models.ScanSession
	if err := s.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	// A scan without readings still gets stored; assume middling freshness.
	if session.FreshnessLevel == "" {
		session.FreshnessLevel = "fresh"
	}
	if session.FreshnessPercentage == 0 {
		session.FreshnessPercentage = 50
	}
	level := session.FreshnessLevel
	pct := session.FreshnessPercentage

	var profile models.HealthProfile
	var profilePtr *models.HealthProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		profilePtr = &profile
	}
	warnings, risky := utils.AssessSaveRisk(profilePtr, &session)

	item := models.SavedItem{
		UserID:                  userID,
		SessionID:               sessionID,
		FoodName:                session.FoodName,
		StorageType:             storageType,
		InitialFreshness:        pct,
		FreshnessLevel:          level,
		EstimatedExpirationDays: EstimateExpirationDays(level, storageType),
		Notes:                   notes,
		SavedAt:                 time.Now(),
		IsRisky:                 risky,
		HealthWarning:           utils.JoinWarnings(warnings),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"storage_type", "initial_freshness", "freshness_level",
			"estimated_expiration_days", "notes", "saved_at",
			"is_risky", "health_warning", "updated_at",
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Items lists the user's ledger, unconsumed first then newest, with freshness
// and classification derived against a single timestamp.
func (s *InventoryService) Items(userID uint) ([]SavedItemView, error) {
	var items []models.SavedItem
	err := s.db.
		Where("user_id = ?", userID).
		Order("is_consumed ASC, saved_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]SavedItemView, 0, len(items))
	for i := range items {
		views = append(views, s.view(&items[i], now))
	}
	return views, nil
}

func (s *InventoryService) view(item *models.SavedItem, now time.Time) SavedItemView {
	return SavedItemView{
		SavedItem:        *item,
		CurrentFreshness: CurrentFreshness(item, now),
		DaysStored:       DaysElapsed(item.SavedAt, now),
		Status:           Classify(item, now),
	}
}

// UsableItems feeds "use what you have" suggestions: not consumed, not
// flagged risky, and still at or above the freshness floor.
func (s *InventoryService) UsableItems(userID uint, minFreshness float64) ([]SavedItemView, error) {
	all, err := s.Items(userID)
	if err != nil {
		return nil, err
	}

	usable := make([]SavedItemView, 0, len(all))
	for _, v := range all {
		if v.IsConsumed || v.IsRisky {
			continue
		}
		if v.CurrentFreshness < minFreshness {
			continue
		}
		usable = append(usable, v)
	}
	return usable, nil
}

// MarkConsumed transitions an item to its terminal Consumed state.
// Idempotent: consuming an already-consumed item is a no-op success.
func (s *InventoryService) MarkConsumed(userID uint, sessionID string) error {
	now := time.Now()
	return s.db.Model(&models.SavedItem{}).
		Where("user_id = ? AND session_id = ? AND is_consumed = ?", userID, sessionID, false).
		Updates(map[string]interface{}{
			"is_consumed": true,
			"consumed_at": now,
		}).Error
}

// Remove takes an item out of the ledger. reason "consumed" records the
// consumption instead; anything else hard-deletes the entry for good.
func (s *InventoryService) Remove(userID uint, sessionID, reason string) error {
	if reason == "consumed" {
		return s.MarkConsumed(userID, sessionID)
	}
	return s.db.
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&models.SavedItem{}).Error
}

// Summary buckets the inventory by storage type and spoilage state.
func (s *InventoryService) Summary(userID uint) (*StorageSummary, error) {
	items, err := s.Items(userID)
	if err != nil {
		return nil, err
	}

	summary := &StorageSummary{
		ByStorage:    map[string]int{"fridge": 0, "freezer": 0, "pantry": 0},
		ExpiringSoon: []SavedItemView{},
		Spoiled:      []SavedItemView{},
	}
	summary.TotalItems = len(items)

	for _, v := range items {
		summary.ByStorage[v.StorageType]++
		switch v.Status {
		case StatusExpiringSoon:
			summary.ExpiringSoon = append(summary.ExpiringSoon, v)
		case StatusSpoiled:
			summary.Spoiled = append(summary.Spoiled, v)
		}
	}
	return summary, nil
}
