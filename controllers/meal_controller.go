package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AhmedAli-29SE/nutrifresh-server/services"
)

type MealController struct {
	meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{meals: meals}
}

func (ctl *MealController) LogMeal(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req services.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := ctl.meals.LogMeal(userID, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDelta) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

func (ctl *MealController) ListMeals(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	meals, err := ctl.meals.ListMeals(userID, c.DefaultQuery("period", "today"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals, "count": len(meals)})
}

func (ctl *MealController) DeleteMeal(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	mealID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := ctl.meals.DeleteMeal(userID, uint(mealID)); err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}
