package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScanSession is the opaque record an external food scan produces:
// a classified food name plus a freshness reading. The classifier itself
// lives outside this service; we only store what it emitted.
type ScanSession struct {
	SessionID string `gorm:"primaryKey;size:64" json:"session_id"`
	UserID    uint   `gorm:"index;not null" json:"user_id"`

	FoodName string `json:"food_name"`
	Category string `json:"category"`

	FreshnessPercentage float64 `json:"freshness_percentage"`
	FreshnessLevel      string  `gorm:"size:20" json:"freshness_level"` // fresh|mid_fresh|not_fresh

	Nutrition datatypes.JSON `json:"nutrition"`
	ImageURL  string         `json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
}
