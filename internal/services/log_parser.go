package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/loglens/backend/internal/models"
)

// logLineRegex captures an optional leading timestamp token, a log level
// anchored right after it, and the remaining message. The level alternatives
// must stay in sync with models.KnownLevels. Lines whose level keyword only
// appears inside the message body deliberately fall through to the fallback
// path because letters are not part of the timestamp/separator classes.
var logLineRegex = regexp.MustCompile(
	`(?i)^\s*([\d\-T:.Z\s/]+[APM]*)?\s*[|\[\]\s-]*(INFO|WARN|ERROR|DEBUG)[|\]\s-]*(.*)$`,
)

// timestampLayouts are tried in order when parsing a captured timestamp
// token. A token matching none of them yields a nil timestamp, never an
// error.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"02/Jan/2006:15:04:05",
	"2006-01-02",
}

// ParseLogLine turns one raw line into a LogRecord. It never fails: lines
// without a recognizable level become UNKNOWN records with the trimmed line
// as message, and unparseable timestamps are stored as nil. OriginalLine is
// kept verbatim, whitespace included.
func ParseLogLine(line string, id int) models.LogRecord {
	match := logLineRegex.FindStringSubmatch(line)
	if match == nil {
		return models.LogRecord{
			ID:           id,
			Timestamp:    nil,
			Level:        models.LogLevelUnknown,
			Message:      strings.TrimSpace(line),
			OriginalLine: line,
			Category:     models.DefaultCategory,
		}
	}

	var timestamp *time.Time
	if tsToken := strings.TrimSpace(match[1]); tsToken != "" {
		if ts, ok := parseTimestamp(tsToken); ok {
			timestamp = &ts
		}
	}

	return models.LogRecord{
		ID:           id,
		Timestamp:    timestamp,
		Level:        models.NormalizeLevel(match[2]),
		Message:      strings.TrimSpace(match[3]),
		OriginalLine: line,
		Category:     models.DefaultCategory,
	}
}

// ParseLogData splits a raw blob into lines and parses every non-blank one.
// IDs are assigned only to retained lines, contiguously from 0 in input
// order, so the same input always yields the same records.
func ParseLogData(logData string) []models.LogRecord {
	if logData == "" {
		return []models.LogRecord{}
	}

	records := make([]models.LogRecord, 0)
	for _, line := range strings.Split(logData, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, ParseLogLine(line, len(records)))
	}
	return records
}

func parseTimestamp(token string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, token); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
