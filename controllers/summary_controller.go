package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
	"github.com/AhmedAli-29SE/nutrifresh-server/services"
)

type SummaryController struct {
	aggregates *services.AggregateService
	goals      *services.GoalService
	users      *services.UserService
}

func NewSummaryController(aggregates *services.AggregateService, goals *services.GoalService, users *services.UserService) *SummaryController {
	return &SummaryController{aggregates: aggregates, goals: goals, users: users}
}

// progressEntry pairs one nutrient's consumption with its goal. Percentage is
// uncapped so overage is visible; remaining never goes below zero.
type progressEntry struct {
	Consumed   float64 `json:"consumed"`
	Goal       float64 `json:"goal"`
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
}

func progressFor(consumed, goal float64) progressEntry {
	remaining := goal - consumed
	if remaining < 0 {
		remaining = 0
	}
	return progressEntry{
		Consumed:   math.Round(consumed*10) / 10,
		Goal:       goal,
		Percentage: math.Round(services.ProgressPercentage(consumed, goal)*10) / 10,
		Remaining:  math.Round(remaining*10) / 10,
	}
}

func buildProgress(totals models.NutrientAmounts, targets models.NutrientTargets) gin.H {
	return gin.H{
		"calories": progressFor(float64(totals.Calories), float64(targets.Calories)),
		"protein":  progressFor(totals.Protein, float64(targets.Protein)),
		"carbs":    progressFor(totals.Carbs, float64(targets.Carbs)),
		"fat":      progressFor(totals.Fat, float64(targets.Fat)),
		"fiber":    progressFor(totals.Fiber, float64(targets.Fiber)),
		"sugar":    progressFor(totals.Sugar, float64(targets.Sugar)),
	}
}

// Daily reports one day's totals against the goal version in force on that
// day, so historical days are judged by the targets the user had then.
func (ctl *SummaryController) Daily(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	row, err := ctl.aggregates.Day(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	profile, err := ctl.users.Profile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	targets, _, err := ctl.goals.ActiveTargets(userID, profile, day, "daily")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        time.Time(row.DayDate).Format("2006-01-02"),
		"totals":      row.Totals,
		"meals_count": row.MealsCount,
		"goals":       targets,
		"progress":    buildProgress(row.Totals, targets),
	})
}

// Range folds the tracked days in [from, to] into one total plus per-day
// averages. days_tracked counts rows that exist, not calendar days, so
// untracked days do not dilute the averages.
func (ctl *SummaryController) Range(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return
	}
	period := services.NormalizePeriod(c.DefaultQuery("period", "weekly"))

	rows, err := ctl.aggregates.Range(userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	totals := services.SumAggregates(rows)

	averages := models.NutrientAmounts{}
	if n := len(rows); n > 0 {
		averages = models.NutrientAmounts{
			Calories: totals.Calories / n,
			Protein:  math.Round(totals.Protein/float64(n)*10) / 10,
			Carbs:    math.Round(totals.Carbs/float64(n)*10) / 10,
			Fat:      math.Round(totals.Fat/float64(n)*10) / 10,
			Fiber:    math.Round(totals.Fiber/float64(n)*10) / 10,
			Sugar:    math.Round(totals.Sugar/float64(n)*10) / 10,
		}
	}

	profile, err := ctl.users.Profile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	targets, _, err := ctl.goals.ActiveTargets(userID, profile, to, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":           from.Format("2006-01-02"),
		"to":             to.Format("2006-01-02"),
		"period":         period,
		"days_tracked":   len(rows),
		"totals":         totals,
		"daily_averages": averages,
		"goals":          targets,
		"progress":       buildProgress(totals, targets),
	})
}
