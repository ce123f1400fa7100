package models

import (
	"strings"
	"time"
)

type LogLevel string

const (
	LogLevelDebug   LogLevel = "DEBUG"
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelUnknown LogLevel = "UNKNOWN"
)

// KnownLevels are the levels a parser may extract from a raw line. Anything
// outside this set is folded into UNKNOWN during aggregation.
var KnownLevels = []LogLevel{LogLevelInfo, LogLevelWarning, LogLevelError, LogLevelDebug}

// NormalizeLevel upper-cases a free-form level string and maps values outside
// the known set to UNKNOWN.
func NormalizeLevel(level string) LogLevel {
	upper := LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	switch upper {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return upper
	default:
		return LogLevelUnknown
	}
}

// DefaultCategory is assigned to records before the categorizer has run, and
// to records the categorizer left without a label.
const DefaultCategory = "Uncategorized"

// LogRecord is one parsed log line. Records are created once per analysis run
// and are immutable afterwards except for Category, which the categorization
// collaborator fills in.
type LogRecord struct {
	ID           int        `json:"id"`
	Timestamp    *time.Time `json:"timestamp"`
	Level        LogLevel   `json:"level"`
	Message      string     `json:"message"`
	OriginalLine string     `json:"originalLine"`
	Category     string     `json:"category"`
}

// HasTimestamp reports whether the record carries a usable timestamp.
// Records without one are excluded from timeline aggregation.
func (r *LogRecord) HasTimestamp() bool {
	return r.Timestamp != nil && !r.Timestamp.IsZero()
}
