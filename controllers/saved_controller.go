package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AhmedAli-29SE/nutrifresh-server/models"
	"github.com/AhmedAli-29SE/nutrifresh-server/services"
)

type SavedController struct {
	db        *gorm.DB
	inventory *services.InventoryService
}

func NewSavedController(db *gorm.DB, inventory *services.InventoryService) *SavedController {
	return &SavedController{db: db, inventory: inventory}
}

type createSessionRequest struct {
	SessionID           string         `json:"session_id"`
	FoodName            string         `json:"food_name" binding:"required"`
	Category            string         `json:"category"`
	FreshnessPercentage float64        `json:"freshness_percentage"`
	FreshnessLevel      string         `json:"freshness_level"`
	Nutrition           datatypes.JSON `json:"nutrition"`
	ImageURL            string         `json:"image_url"`
}

// CreateSession records a scan result so it can later be saved to storage or
// logged as a meal. Clients may supply their own session id; otherwise one is
// generated.
func (ctl *SavedController) CreateSession(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	session := models.ScanSession{
		SessionID:           req.SessionID,
		UserID:              userID,
		FoodName:            req.FoodName,
		Category:            req.Category,
		FreshnessPercentage: req.FreshnessPercentage,
		FreshnessLevel:      req.FreshnessLevel,
		Nutrition:           req.Nutrition,
		ImageURL:            req.ImageURL,
	}
	if err := ctl.db.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

type saveItemRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	StorageType string `json:"storage_type" binding:"required,oneof=fridge freezer pantry"`
	Notes       string `json:"notes"`
}

func (ctl *SavedController) SaveItem(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req saveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ctl.inventory.Save(userID, req.SessionID, req.StorageType, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"item": item}
	if item.HealthWarning != "" {
		resp["health_warning"] = item.HealthWarning
	}
	c.JSON(http.StatusCreated, resp)
}

func (ctl *SavedController) ListItems(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	items, err := ctl.inventory.Items(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type removeItemRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Reason    string `json:"reason"`
}

func (ctl *SavedController) RemoveItem(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req removeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctl.inventory.Remove(userID, req.SessionID, req.Reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func (ctl *SavedController) ConsumeItem(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	if err := ctl.inventory.MarkConsumed(userID, c.Param("sessionID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item consumed"})
}

// UsableItems lists unconsumed, non-risky items at or above the freshness
// floor (default 30).
func (ctl *SavedController) UsableItems(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	minFreshness := 30.0
	if raw := c.Query("min_freshness"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_freshness must be between 0 and 100"})
			return
		}
		minFreshness = parsed
	}

	items, err := ctl.inventory.UsableItems(userID, minFreshness)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (ctl *SavedController) StorageSummary(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	summary, err := ctl.inventory.Summary(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
