package models

import (
	"time"
)

// Storage locations and their two independent decay models live in the
// inventory service. A SavedItem stores only what was true at save time;
// current freshness and spoilage classification are derived at read time.
//
// No DeletedAt here: removal is a hard delete (terminal), and the same
// session may be saved again later.
type SavedItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_user_session;not null" json:"user_id"`
	SessionID string `gorm:"uniqueIndex:idx_user_session;size:64;not null" json:"session_id"`

	FoodName    string `json:"food_name"`
	StorageType string `gorm:"size:16" json:"storage_type"` // fridge|freezer|pantry

	InitialFreshness float64 `json:"initial_freshness"` // 0-100 at save time
	FreshnessLevel   string  `gorm:"size:20" json:"freshness_level"`

	// Computed once at save time from freshness level x storage type.
	EstimatedExpirationDays int `json:"estimated_expiration_days"`

	Notes   string    `json:"notes"`
	SavedAt time.Time `json:"saved_at"`

	IsConsumed bool       `json:"is_consumed"`
	ConsumedAt *time.Time `json:"consumed_at"`

	IsRisky       bool   `json:"is_risky"`
	HealthWarning string `json:"health_warning"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
