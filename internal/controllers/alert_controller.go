package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/loglens/backend/internal/models"
	"gorm.io/gorm"
)

// AlertController manages alert match rules. Rules are configuration only;
// nothing here delivers notifications.
type AlertController struct {
	db *gorm.DB
}

func NewAlertController(db *gorm.DB) *AlertController {
	return &AlertController{db: db}
}

type alertRuleRequest struct {
	Keyword string `json:"keyword"`
	Level   string `json:"level"`
	Active  *bool  `json:"active"`
}

func (ac *AlertController) ListRules(c *gin.Context) {
	var rules []models.AlertRule
	if err := ac.db.Order("created_at DESC").Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load alert rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (ac *AlertController) CreateRule(c *gin.Context) {
	var req alertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Alert keyword is required"})
		return
	}

	rule := models.AlertRule{
		Keyword: req.Keyword,
		Level:   models.NormalizeLevel(req.Level),
		Active:  true,
	}
	if req.Level == "" {
		rule.Level = models.LogLevelError
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if err := ac.db.Create(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create alert rule"})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (ac *AlertController) UpdateRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert rule id"})
		return
	}

	var rule models.AlertRule
	if err := ac.db.First(&rule, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert rule not found"})
		return
	}

	var req alertRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Keyword != "" {
		rule.Keyword = req.Keyword
	}
	if req.Level != "" {
		rule.Level = models.NormalizeLevel(req.Level)
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if err := ac.db.Save(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update alert rule"})
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (ac *AlertController) DeleteRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert rule id"})
		return
	}

	res := ac.db.Delete(&models.AlertRule{}, uint(id))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete alert rule"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert rule not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
