package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/loglens/backend/internal/services"
)

type ShareController struct {
	shareService *services.ShareService
}

func NewShareController(shareService *services.ShareService) *ShareController {
	return &ShareController{shareService: shareService}
}

type createShareRequest struct {
	Payload string `json:"payload"`
}

// CreateShare stores an analysis payload and returns its share ID.
func (sc *ShareController) CreateShare(c *gin.Context) {
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Payload == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Share payload is required"})
		return
	}

	share, err := sc.shareService.CreateShare(req.Payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share link"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shareId": share.ShareID, "expiresAt": share.ExpiresAt})
}

// GetShare retrieves a stored share; expired shares read as not found.
func (sc *ShareController) GetShare(c *gin.Context) {
	share, err := sc.shareService.GetShare(c.Param("shareId"))
	if errors.Is(err, services.ErrShareNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shared analysis not found or expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shared analysis"})
		return
	}
	c.JSON(http.StatusOK, share)
}

// ListHistory returns recent analysis history entries.
func (sc *ShareController) ListHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := sc.shareService.ListHistory(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

// GetHistory returns one history entry by id.
func (sc *ShareController) GetHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history id"})
		return
	}

	record, err := sc.shareService.GetHistory(uint(id))
	if errors.Is(err, services.ErrShareNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "History entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history entry"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteHistory removes one history entry.
func (sc *ShareController) DeleteHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history id"})
		return
	}

	err = sc.shareService.DeleteHistory(uint(id))
	if errors.Is(err, services.ErrShareNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "History entry not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete history entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
