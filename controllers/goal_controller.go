package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AhmedAli-29SE/nutrifresh-server/services"
)

type GoalController struct {
	goals *services.GoalService
	users *services.UserService
}

func NewGoalController(goals *services.GoalService, users *services.UserService) *GoalController {
	return &GoalController{goals: goals, users: users}
}

// GetGoals returns the nutrient targets in force for a date (default today),
// projected to the requested period.
func (ctl *GoalController) GetGoals(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	asOf := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}
	period := services.NormalizePeriod(c.DefaultQuery("period", "daily"))

	profile, err := ctl.users.Profile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	targets, reasoning, err := ctl.goals.ActiveTargets(userID, profile, asOf, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":    period,
		"date":      asOf.Format("2006-01-02"),
		"targets":   targets,
		"reasoning": reasoning,
	})
}

// RefreshGoals forces a recomputation from the current profile and appends it
// as a new version, regardless of what is already stored.
func (ctl *GoalController) RefreshGoals(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	profile, err := ctl.users.Profile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	version, err := ctl.goals.GenerateAndStore(c.Request.Context(), userID, profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"nutrition_goals": version})
}
