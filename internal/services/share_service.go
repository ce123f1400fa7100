package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loglens/backend/internal/logger"
	"github.com/loglens/backend/internal/models"
	"gorm.io/gorm"
)

// ErrShareNotFound covers both missing and expired shares; callers cannot
// tell the two apart, matching the retrieval contract.
var ErrShareNotFound = errors.New("shared analysis not found")

// ShareService persists shareable analysis payloads and the analysis
// history. Persistence failures here never invalidate an in-memory analysis
// result already returned to the caller.
type ShareService struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewShareService(db *gorm.DB) *ShareService {
	return &ShareService{db: db, ttl: models.DefaultShareTTL}
}

// CreateShare stores a payload under a fresh opaque share ID valid for the
// configured TTL.
func (s *ShareService) CreateShare(payload string) (*models.SharedAnalysis, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, fmt.Errorf("share payload is empty")
	}

	share := &models.SharedAnalysis{
		ShareID:   strings.ReplaceAll(uuid.NewString(), "-", ""),
		Payload:   payload,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.db.Create(share).Error; err != nil {
		return nil, fmt.Errorf("failed to store shared analysis: %w", err)
	}
	return share, nil
}

// GetShare retrieves a share by ID. Expired shares behave exactly like
// missing ones.
func (s *ShareService) GetShare(shareID string) (*models.SharedAnalysis, error) {
	var share models.SharedAnalysis
	err := s.db.Where("share_id = ?", shareID).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shared analysis: %w", err)
	}
	if share.Expired(time.Now()) {
		return nil, ErrShareNotFound
	}
	return &share, nil
}

// CleanupExpired hard-deletes shares past their expiry and returns how many
// rows were removed.
func (s *ShareService) CleanupExpired() (int64, error) {
	res := s.db.Unscoped().Where("expires_at < ?", time.Now()).Delete(&models.SharedAnalysis{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clean up expired shares: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		logger.Info("Removed expired shares", map[string]interface{}{"count": res.RowsAffected})
	}
	return res.RowsAffected, nil
}

// SaveHistory records a completed analysis. The raw input travels as a
// session token so a history row can be reopened through the codec path.
func (s *ShareService) SaveHistory(result *models.AnalysisResult) (*models.AnalysisRecord, error) {
	var errorCount, warningCount int
	for _, r := range result.Records {
		switch r.Level {
		case models.LogLevelError:
			errorCount++
		case models.LogLevelWarning:
			warningCount++
		}
	}

	record := &models.AnalysisRecord{
		SessionToken:  result.SessionToken,
		Summary:       result.Summary,
		RecordCount:   len(result.Records),
		ErrorCount:    errorCount,
		WarningCount:  warningCount,
		SolutionCount: len(result.Solutions),
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to save analysis history: %w", err)
	}
	return record, nil
}

// ListHistory returns history entries newest first.
func (s *ShareService) ListHistory(limit int) ([]models.AnalysisRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var records []models.AnalysisRecord
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list analysis history: %w", err)
	}
	return records, nil
}

// GetHistory loads one history entry by primary key.
func (s *ShareService) GetHistory(id uint) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := s.db.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis history: %w", err)
	}
	return &record, nil
}

// DeleteHistory removes one history entry.
func (s *ShareService) DeleteHistory(id uint) error {
	res := s.db.Delete(&models.AnalysisRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete analysis history: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrShareNotFound
	}
	return nil
}
