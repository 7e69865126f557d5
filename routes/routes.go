package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AhmedAli-29SE/nutrifresh-server/config"
	"github.com/AhmedAli-29SE/nutrifresh-server/controllers"
	"github.com/AhmedAli-29SE/nutrifresh-server/middlewares"
	"github.com/AhmedAli-29SE/nutrifresh-server/services"
)

// SetupRouter wires services, controllers, and routes. The refiner is only
// constructed when an API key is configured; without one the goal service
// works purely off the calculator.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	var refiner services.GoalRefiner
	if cfg.GroqAPIKey != "" {
		refiner = services.NewGroqRefiner(cfg.GroqAPIKey, cfg.GroqModel, cfg.RefinerTimeout)
	}

	goalService := services.NewGoalService(db, refiner, cfg.RefinerTimeout)
	aggregateService := services.NewAggregateService(db)
	mealService := services.NewMealService(db, aggregateService)
	inventoryService := services.NewInventoryService(db)
	userService := services.NewUserService(db, goalService, []byte(cfg.JWTSecret))

	authCtl := controllers.NewAuthController(userService)
	profileCtl := controllers.NewProfileController(userService)
	goalCtl := controllers.NewGoalController(goalService, userService)
	mealCtl := controllers.NewMealController(mealService)
	summaryCtl := controllers.NewSummaryController(aggregateService, goalService, userService)
	savedCtl := controllers.NewSavedController(db, inventoryService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	authorized := r.Group("/")
	authorized.Use(middlewares.AuthMiddleware(db, []byte(cfg.JWTSecret)))
	{
		user := authorized.Group("/user")
		{
			user.GET("/profile", profileCtl.GetProfile)
			user.PUT("/profile", profileCtl.UpdateProfile)
			user.GET("/goals", goalCtl.GetGoals)
			user.POST("/goals/refresh", goalCtl.RefreshGoals)
		}

		meals := authorized.Group("/meals")
		{
			meals.POST("", mealCtl.LogMeal)
			meals.GET("", mealCtl.ListMeals)
			meals.DELETE("/:id", mealCtl.DeleteMeal)
		}

		summary := authorized.Group("/summary")
		{
			summary.GET("/daily", summaryCtl.Daily)
			summary.GET("/range", summaryCtl.Range)
		}

		authorized.POST("/scan/sessions", savedCtl.CreateSession)

		saved := authorized.Group("/saved")
		{
			saved.POST("", savedCtl.SaveItem)
			saved.GET("", savedCtl.ListItems)
			saved.POST("/remove", savedCtl.RemoveItem)
			saved.POST("/:sessionID/consume", savedCtl.ConsumeItem)
			saved.GET("/usable", savedCtl.UsableItems)
		}

		authorized.GET("/storage/summary", savedCtl.StorageSummary)
	}

	return r
}
