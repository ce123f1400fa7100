package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/loglens/backend/internal/logger"
	"github.com/loglens/backend/internal/models"
	"github.com/loglens/backend/internal/services"
)

type AnalysisController struct {
	analysisService *services.AnalysisService
	shareService    *services.ShareService
}

func NewAnalysisController(analysisService *services.AnalysisService, shareService *services.ShareService) *AnalysisController {
	return &AnalysisController{
		analysisService: analysisService,
		shareService:    shareService,
	}
}

type analyzeRequest struct {
	LogData string `json:"logData"`
}

type decodeSessionRequest struct {
	Token string `json:"token"`
}

// Analyze runs the primary analysis over raw log text and returns the merged
// result. The AI failure mode is a 200 with state=failed and a generic
// message so clients can render it like any other terminal state.
func (ac *AnalysisController) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := ac.analysisService.RunAnalysis(c.Request.Context(), req.LogData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run analysis"})
		return
	}
	if result == nil {
		// Blank input is a no-op, not an analysis failure.
		c.JSON(http.StatusBadRequest, gin.H{"error": "Log data is required"})
		return
	}

	// History is best-effort: a storage hiccup must not take down a result
	// the user already has.
	if ac.shareService != nil && result.State == models.AnalysisStateSucceeded {
		if _, err := ac.shareService.SaveHistory(result); err != nil {
			logger.Warn("Failed to save analysis to history", map[string]interface{}{
				"session_id": result.SessionID,
				"error":      err.Error(),
			})
		}
	}

	c.JSON(http.StatusOK, result)
}

// ParsePreview runs only the local batch parser, for immediate display while
// the AI analysis is still pending.
func (ac *AnalysisController) ParsePreview(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	records := services.ParseLogData(req.LogData)
	c.JSON(http.StatusOK, gin.H{
		"records":      records,
		"timeline":     services.AggregateByTime(records, 5),
		"distribution": services.CategoryDistribution(records),
	})
}

// GetAudio returns the audio side-chain state for an analysis session.
// Clients poll this after a successful analysis.
func (ac *AnalysisController) GetAudio(c *gin.Context) {
	audio, err := ac.analysisService.GetAudio(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis session not found"})
		return
	}
	c.JSON(http.StatusOK, audio)
}

// DecodeSession decodes a URL-fragment session token back into raw log text.
// A corrupt token is not an error from the client's point of view: it gets
// empty text and a flag telling it to clear the fragment.
func (ac *AnalysisController) DecodeSession(c *gin.Context) {
	var req decodeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	text, err := services.DecodeSession(req.Token)
	if err != nil {
		logger.Warn("Discarding corrupt session token", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusOK, gin.H{"logData": "", "cleared": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logData": text, "cleared": false})
}
