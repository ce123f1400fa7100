package services

import (
	"strings"
	"testing"
	"time"

	"github.com/loglens/backend/internal/models"
)

func TestParseLogLineExtractsTimestampLevelMessage(t *testing.T) {
	line := "2023-10-27T10:03:00.999Z [ERROR] Failed to connect to database: Connection refused."
	record := ParseLogLine(line, 0)

	if record.Level != models.LogLevelError {
		t.Errorf("Expected level ERROR, got %s", record.Level)
	}
	if record.Message != "Failed to connect to database: Connection refused." {
		t.Errorf("Unexpected message: %q", record.Message)
	}
	if record.OriginalLine != line {
		t.Errorf("Original line was modified: %q", record.OriginalLine)
	}
	if record.Timestamp == nil {
		t.Fatal("Expected a parsed timestamp, got nil")
	}
	expected := time.Date(2023, 10, 27, 10, 3, 0, 999000000, time.UTC)
	if !record.Timestamp.Equal(expected) {
		t.Errorf("Expected timestamp %v, got %v", expected, record.Timestamp)
	}
	if record.Category != models.DefaultCategory {
		t.Errorf("Expected default category, got %q", record.Category)
	}
}

func TestParseLogLineVariants(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		level    models.LogLevel
		message  string
		wantTime bool
	}{
		{
			name:     "level without timestamp",
			line:     "INFO User logged in",
			level:    models.LogLevelInfo,
			message:  "User logged in",
			wantTime: false,
		},
		{
			name:     "pipe separated",
			line:     "2023-10-27 10:03:00 | WARN | disk usage above 80%",
			level:    models.LogLevelWarning,
			message:  "disk usage above 80%",
			wantTime: true,
		},
		{
			name:     "lowercase level",
			line:     "2023/10/27 10:03:00 debug cache warmed",
			level:    models.LogLevelDebug,
			message:  "cache warmed",
			wantTime: true,
		},
		{
			name:     "no level token falls back",
			line:     "  just some free text without a level  ",
			level:    models.LogLevelUnknown,
			message:  "just some free text without a level",
			wantTime: false,
		},
		{
			name:     "timestamp only without level falls back",
			line:     "2023-10-27T10:00:00Z request completed",
			level:    models.LogLevelUnknown,
			message:  "2023-10-27T10:00:00Z request completed",
			wantTime: false,
		},
		{
			name:     "level keyword inside message is not matched",
			line:     "User typed ERROR into the search box",
			level:    models.LogLevelUnknown,
			message:  "User typed ERROR into the search box",
			wantTime: false,
		},
		{
			name:     "invalid date with level",
			line:     "9999-99-99 ERROR boom",
			level:    models.LogLevelError,
			message:  "boom",
			wantTime: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			record := ParseLogLine(test.line, 7)
			if record.ID != 7 {
				t.Errorf("Expected id 7, got %d", record.ID)
			}
			if record.Level != test.level {
				t.Errorf("Expected level %s, got %s", test.level, record.Level)
			}
			if record.Message != test.message {
				t.Errorf("Expected message %q, got %q", test.message, record.Message)
			}
			if record.OriginalLine != test.line {
				t.Errorf("Original line was modified: %q", record.OriginalLine)
			}
			if test.wantTime && record.Timestamp == nil {
				t.Error("Expected a timestamp, got nil")
			}
			if !test.wantTime && record.Timestamp != nil {
				t.Errorf("Expected nil timestamp, got %v", record.Timestamp)
			}
		})
	}
}

func TestParseLogDataAssignsContiguousIDs(t *testing.T) {
	logData := strings.Join([]string{
		"INFO first",
		"",
		"   ",
		"ERROR second",
		"\t",
		"no level here",
	}, "\n")

	records := ParseLogData(logData)
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	for i, record := range records {
		if record.ID != i {
			t.Errorf("Expected id %d at position %d, got %d", i, i, record.ID)
		}
	}
	if records[0].Level != models.LogLevelInfo ||
		records[1].Level != models.LogLevelError ||
		records[2].Level != models.LogLevelUnknown {
		t.Errorf("Records out of input order: %v, %v, %v",
			records[0].Level, records[1].Level, records[2].Level)
	}
}

func TestParseLogDataDeterministic(t *testing.T) {
	logData := "INFO one\nWARN two\n\nERROR three"
	first := ParseLogData(logData)
	second := ParseLogData(logData)

	if len(first) != len(second) {
		t.Fatalf("Run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Message != second[i].Message {
			t.Errorf("Run %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParseLogDataEmptyInput(t *testing.T) {
	if records := ParseLogData(""); len(records) != 0 {
		t.Errorf("Expected no records for empty input, got %d", len(records))
	}
	if records := ParseLogData("\n\n  \n"); len(records) != 0 {
		t.Errorf("Expected no records for blank input, got %d", len(records))
	}
}
