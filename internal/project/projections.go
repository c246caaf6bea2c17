// Package project derives read-only view models from the full record
// collection: status aggregates, percentages, time-bucketed series, and
// grid rows. Every function here is pure — it takes the slice a
// Store.Load returned and computes a value; nothing writes back.
package project

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fraudlens/fraudlens/internal/model"
)

// StatusCounts aggregates the collection by status. Total always equals
// the full record count, including error records and records whose
// timestamps no longer parse.
type StatusCounts struct {
	Normal     int
	Suspicious int
	Fraud      int
	Errors     int
	Total      int
}

// AggregateStatusCounts tallies records by status.
func AggregateStatusCounts(records []model.FraudRecord) StatusCounts {
	counts := StatusCounts{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case model.StatusNormal:
			counts.Normal++
		case model.StatusSuspicious:
			counts.Suspicious++
		case model.StatusFraud:
			counts.Fraud++
		case model.StatusError:
			counts.Errors++
		}
	}
	return counts
}

// AlertCount is the badge number: records that warrant attention.
func (c StatusCounts) AlertCount() int {
	return c.Suspicious + c.Fraud
}

// PercentageOf returns count as a whole percentage of total, rounded.
// A zero total yields 0 for every count rather than dividing by zero.
func PercentageOf(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// AmountSaved sums the amounts of records classified as fraud — the
// money that would have moved had those transactions gone through.
func AmountSaved(records []model.FraudRecord) float64 {
	var sum float64
	for _, r := range records {
		if r.Status == model.StatusFraud {
			sum += r.Amount
		}
	}
	return sum
}

// Bucket selects the timeline granularity.
type Bucket string

// Timeline bucket granularities.
const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// Valid reports whether b is a known bucket granularity.
func (b Bucket) Valid() bool {
	return b == BucketDay || b == BucketWeek || b == BucketMonth
}

// TimelinePoint is one bucket of the fraud/suspicious time series.
type TimelinePoint struct {
	Key             string
	FraudCount      int
	SuspiciousCount int
}

// Timeline groups records into time buckets keyed by their creation
// timestamp, sorted ascending by key. Records whose timestamps fail to
// parse are excluded here but still counted by AggregateStatusCounts.
func Timeline(records []model.FraudRecord, bucket Bucket) []TimelinePoint {
	byKey := make(map[string]*TimelinePoint)
	for _, r := range records {
		ts, err := time.Parse(time.RFC3339, r.Timestamp)
		if err != nil {
			continue
		}

		key := bucketKey(ts, bucket)
		point, ok := byKey[key]
		if !ok {
			point = &TimelinePoint{Key: key}
			byKey[key] = point
		}
		switch r.Status {
		case model.StatusFraud:
			point.FraudCount++
		case model.StatusSuspicious:
			point.SuspiciousCount++
		}
	}

	points := make([]TimelinePoint, 0, len(byKey))
	for _, p := range byKey {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
	return points
}

func bucketKey(ts time.Time, bucket Bucket) string {
	switch bucket {
	case BucketWeek:
		year, week := ts.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case BucketMonth:
		return ts.Format("2006-01")
	default:
		return ts.Format("2006-01-02")
	}
}
