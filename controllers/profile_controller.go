package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmedAli-29SE/nutrifresh-server/services"
	"github.com/AhmedAli-29SE/nutrifresh-server/utils"
)

type ProfileController struct {
	users *services.UserService
}

func NewProfileController(users *services.UserService) *ProfileController {
	return &ProfileController{users: users}
}

func (ctl *ProfileController) GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	profile, err := ctl.users.Profile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"profile": nil})
		return
	}

	resp := gin.H{"profile": profile}
	if bmi, err := utils.CalculateBMI(profile.HeightCm, profile.WeightKg); err == nil {
		minKg, maxKg := utils.HealthyWeightRange(profile.HeightCm)
		resp["bmi"] = gin.H{
			"value":    bmi,
			"category": utils.BMICategory(bmi),
			"healthy_range": gin.H{
				"min": minKg,
				"max": maxKg,
			},
		}
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile upserts the health profile; a successful write also appends
// a new goal version, which is echoed back so clients can refresh targets
// without a second round trip.
func (ctl *ProfileController) UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, version, err := ctl.users.UpsertProfile(c.Request.Context(), userID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"profile": profile}
	if version != nil {
		resp["nutrition_goals"] = version
	}
	c.JSON(http.StatusOK, resp)
}
