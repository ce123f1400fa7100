package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultShareTTL is how long a stored share stays retrievable.
const DefaultShareTTL = 7 * 24 * time.Hour

// SharedAnalysis is a stored, shareable analysis payload addressed by an
// opaque share ID. Rows past ExpiresAt are treated as not found and reaped by
// the cleanup pass.
type SharedAnalysis struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ShareID   string         `json:"shareId" gorm:"uniqueIndex;not null"`
	Payload   string         `json:"payload" gorm:"type:text;not null"`
	ExpiresAt time.Time      `json:"expiresAt" gorm:"index;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Expired reports whether the share is past its expiry at the given instant.
func (s *SharedAnalysis) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// AnalysisRecord is one history entry for a completed analysis. The raw input
// is stored as a compressed session token rather than plain text so history
// rows stay compact and a stored entry can be reopened through the same codec
// path as a shared link.
type AnalysisRecord struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	SessionToken  string         `json:"sessionToken" gorm:"type:text;not null"`
	Summary       string         `json:"summary" gorm:"type:text"`
	RecordCount   int            `json:"recordCount" gorm:"default:0"`
	ErrorCount    int            `json:"errorCount" gorm:"default:0"`
	WarningCount  int            `json:"warningCount" gorm:"default:0"`
	SolutionCount int            `json:"solutionCount" gorm:"default:0"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// AlertRule is a user-configured match rule (keyword + minimum level).
// Delivery of triggered alerts is out of scope; rules are configuration only.
type AlertRule struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Keyword   string         `json:"keyword" gorm:"not null"`
	Level     LogLevel       `json:"level" gorm:"default:'ERROR'"`
	Active    bool           `json:"active" gorm:"default:true"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (SharedAnalysis) TableName() string {
	return "shared_analyses"
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

func (AlertRule) TableName() string {
	return "alert_rules"
}
