package utils

import (
	"fmt"
	"strings"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding surfaced on a saved item.
type Warning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
}

// AssessSaveRisk decides whether a scanned food should be flagged when the
// user stores it, based on the scan's freshness reading and the user's
// condition flags. Returns the combined warning text and whether the item
// should be excluded from "use what you have" suggestions.
func AssessSaveRisk(profile *models.HealthProfile, session *models.ScanSession) (warnings []Warning, risky bool) {
	level := strings.ToLower(strings.TrimSpace(session.FreshnessLevel))

	if level == "not_fresh" || session.FreshnessPercentage < 40 {
		risky = true
		warnings = append(warnings, Warning{
			Code:     "low_freshness",
			Severity: High,
			Message:  fmt.Sprintf("%s scanned at %.0f%% freshness; inspect before eating", session.FoodName, session.FreshnessPercentage),
		})
	}

	if profile == nil {
		return warnings, risky
	}

	if profile.HasGutIssues && level != "fresh" {
		warnings = append(warnings, Warning{
			Code:     "gut_sensitivity",
			Severity: Caution,
			Message:  "aging produce can aggravate digestive issues; prefer fully fresh items",
		})
	}
	if profile.HasDiabetes && strings.EqualFold(session.Category, "fruit") {
		warnings = append(warnings, Warning{
			Code:     "sugar_watch",
			Severity: Info,
			Message:  "fruit sugars count toward your daily sugar ceiling",
		})
	}

	return warnings, risky
}

// JoinWarnings flattens warnings into the single text column stored on the item.
func JoinWarnings(ws []Warning) string {
	if len(ws) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ws))
	for _, w := range ws {
		parts = append(parts, w.Message)
	}
	return strings.Join(parts, "; ")
}
