package services

import (
	"testing"
	"time"

	"github.com/loglens/backend/internal/models"
)

func tsRecord(id int, at time.Time, level models.LogLevel, category string) models.LogRecord {
	return models.LogRecord{
		ID:        id,
		Timestamp: &at,
		Level:     level,
		Category:  category,
	}
}

func TestAggregateByTimeNeedsTwoTimestampedRecords(t *testing.T) {
	now := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)
	records := []models.LogRecord{
		tsRecord(0, now, models.LogLevelInfo, "API"),
		{ID: 1, Timestamp: nil, Level: models.LogLevelError},
	}

	if buckets := AggregateByTime(records, 5); len(buckets) != 0 {
		t.Errorf("Expected no buckets for a single timestamped record, got %d", len(buckets))
	}
	if buckets := AggregateByTime(nil, 5); len(buckets) != 0 {
		t.Errorf("Expected no buckets for nil input, got %d", len(buckets))
	}
}

func TestAggregateByTimeThreeMinuteSpanUsesThirtySecondBuckets(t *testing.T) {
	base := time.Date(2023, 10, 27, 10, 0, 0, 0, time.UTC)
	records := []models.LogRecord{
		tsRecord(0, base, models.LogLevelError, ""),
		tsRecord(1, base.Add(10*time.Second), models.LogLevelWarning, ""),
		tsRecord(2, base.Add(3*time.Minute), models.LogLevelInfo, ""),
		{ID: 3, Timestamp: nil, Level: models.LogLevelError},
	}

	buckets := AggregateByTime(records, 5)
	if len(buckets) == 0 {
		t.Fatal("Expected buckets, got none")
	}

	const width = int64(30 * 1000)
	for _, b := range buckets {
		if b.Time%width != 0 {
			t.Errorf("Bucket key %d is not aligned to 30s boundaries", b.Time)
		}
	}

	// First two records share the first bucket; the third lands 3 minutes in.
	if len(buckets) != 2 {
		t.Errorf("Expected 2 buckets, got %d", len(buckets))
	}
	total := 0
	for _, b := range buckets {
		total += b.Total()
	}
	if total != 3 {
		t.Errorf("Bucket counts sum to %d, want 3 (timestamped records only)", total)
	}
}

func TestAggregateByTimeSortedAndCountedByLevel(t *testing.T) {
	base := time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC)
	records := []models.LogRecord{
		tsRecord(0, base.Add(30*time.Hour), models.LogLevelInfo, ""),
		tsRecord(1, base, models.LogLevelError, ""),
		tsRecord(2, base, models.LogLevelError, ""),
		tsRecord(3, base, "TRACE", ""),
	}

	buckets := AggregateByTime(records, 5)
	if len(buckets) != 2 {
		t.Fatalf("Expected 2 hourly buckets for a 30h span, got %d", len(buckets))
	}
	if buckets[0].Time >= buckets[1].Time {
		t.Error("Buckets are not sorted ascending by time")
	}
	if buckets[0].Error != 2 {
		t.Errorf("Expected 2 errors in first bucket, got %d", buckets[0].Error)
	}
	if buckets[0].Unknown != 1 {
		t.Errorf("Expected unrecognized level to count as UNKNOWN, got %d", buckets[0].Unknown)
	}
	const hourMs = int64(3600 * 1000)
	if buckets[0].Time%hourMs != 0 || buckets[1].Time%hourMs != 0 {
		t.Error("Expected 1-hour bucket alignment for a span over 24h")
	}
}

func TestCategoryDistributionSortedWithStableTies(t *testing.T) {
	records := []models.LogRecord{
		{ID: 0, Category: "Authentication"},
		{ID: 1, Category: "Database"},
		{ID: 2, Category: "Database"},
		{ID: 3, Category: "Authentication"},
		{ID: 4, Category: "Network"},
		{ID: 5, Category: "Network"},
		{ID: 6, Category: ""},
	}

	dist := CategoryDistribution(records)
	if len(dist) != 4 {
		t.Fatalf("Expected 4 categories, got %d", len(dist))
	}

	total := 0
	for _, entry := range dist {
		total += entry.Count
	}
	if total != len(records) {
		t.Errorf("Distribution counts sum to %d, want %d", total, len(records))
	}

	// Database, Authentication, Network all appear; ties (2 each) keep
	// first-seen order: Authentication before Database before Network.
	if dist[0].Category != "Authentication" || dist[1].Category != "Database" || dist[2].Category != "Network" {
		t.Errorf("Tie order not stable on first-seen: %+v", dist)
	}
	if dist[3].Category != models.DefaultCategory || dist[3].Count != 1 {
		t.Errorf("Empty category should map to %q, got %+v", models.DefaultCategory, dist[3])
	}
}

func TestBucketWidthBreakpoints(t *testing.T) {
	tests := []struct {
		span  time.Duration
		width time.Duration
	}{
		{span: 30 * time.Second, width: 6 * time.Second},
		{span: 3 * time.Minute, width: 30 * time.Second},
		{span: 45 * time.Minute, width: time.Minute},
		{span: 12 * time.Hour, width: 10 * time.Minute},
		{span: 48 * time.Hour, width: time.Hour},
	}

	for _, test := range tests {
		if got := bucketWidthFor(test.span); got != test.width {
			t.Errorf("Span %v: expected width %v, got %v", test.span, test.width, got)
		}
	}
}
