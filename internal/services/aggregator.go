package services

import (
	"sort"
	"time"

	"github.com/loglens/backend/internal/models"
)

// bucketBreakpoint maps a maximum span to the bucket width used below it.
// The table is hand-tuned so the timeline renders a roughly constant number
// of points regardless of how dense or long the log window is.
type bucketBreakpoint struct {
	maxSpan time.Duration
	width   time.Duration
}

var bucketBreakpoints = []bucketBreakpoint{
	{maxSpan: time.Minute, width: 6 * time.Second},
	{maxSpan: 10 * time.Minute, width: 30 * time.Second},
	{maxSpan: time.Hour, width: time.Minute},
	{maxSpan: 24 * time.Hour, width: 10 * time.Minute},
}

// bucketWidthFor picks the adaptive bucket width for a total time span.
// Spans of a day or more fall through to one-hour buckets.
func bucketWidthFor(span time.Duration) time.Duration {
	for _, bp := range bucketBreakpoints {
		if span < bp.maxSpan {
			return bp.width
		}
	}
	return time.Hour
}

// AggregateByTime groups records with valid timestamps into adaptive time
// buckets of per-level counts, sorted ascending by bucket start. Fewer than
// two timestamped records is not enough signal for a timeline and returns an
// empty slice. defaultBucketMinutes seeds the width before the adaptive table
// is consulted; the table covers every span, so it only matters if the
// breakpoints are ever emptied out.
func AggregateByTime(records []models.LogRecord, defaultBucketMinutes int) []models.TimeBucket {
	valid := make([]models.LogRecord, 0, len(records))
	for _, r := range records {
		if r.HasTimestamp() {
			valid = append(valid, r)
		}
	}
	if len(valid) < 2 {
		return []models.TimeBucket{}
	}

	minTime := valid[0].Timestamp.UnixMilli()
	maxTime := minTime
	for _, r := range valid[1:] {
		ms := r.Timestamp.UnixMilli()
		if ms < minTime {
			minTime = ms
		}
		if ms > maxTime {
			maxTime = ms
		}
	}

	width := time.Duration(defaultBucketMinutes) * time.Minute
	if len(bucketBreakpoints) > 0 {
		width = bucketWidthFor(time.Duration(maxTime-minTime) * time.Millisecond)
	}
	widthMs := width.Milliseconds()

	buckets := make(map[int64]*models.TimeBucket)
	for _, r := range valid {
		key := r.Timestamp.UnixMilli() / widthMs * widthMs
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.TimeBucket{Time: key}
			buckets[key] = bucket
		}
		switch models.NormalizeLevel(string(r.Level)) {
		case models.LogLevelError:
			bucket.Error++
		case models.LogLevelWarning:
			bucket.Warn++
		case models.LogLevelInfo:
			bucket.Info++
		case models.LogLevelDebug:
			bucket.Debug++
		default:
			bucket.Unknown++
		}
	}

	out := make([]models.TimeBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// CategoryDistribution counts records per category, timestamped or not, and
// returns the counts sorted descending. Ties keep first-seen input order so
// the result is deterministic. Records without a category fall under
// models.DefaultCategory.
func CategoryDistribution(records []models.LogRecord) []models.CategoryCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range records {
		category := r.Category
		if category == "" {
			category = models.DefaultCategory
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}

	out := make([]models.CategoryCount, 0, len(order))
	for _, category := range order {
		out = append(out, models.CategoryCount{Category: category, Count: counts[category]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
