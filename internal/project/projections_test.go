package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/model"
)

func record(status model.RecordStatus, timestamp string, amount float64) model.FraudRecord {
	return model.FraudRecord{
		ID:        "id-" + timestamp + string(status),
		Timestamp: timestamp,
		Amount:    amount,
		Type:      model.TypePayment,
		Day:       3,
		PairCode:  model.PairCustomerToMerchant,
		PartOfDay: model.PartMorning,
		Status:    status,
		Factors:   []string{},
	}
}

func TestAggregateStatusCounts(t *testing.T) {
	tests := []struct {
		name    string
		records []model.FraudRecord
		want    StatusCounts
	}{
		{
			name:    "empty collection",
			records: nil,
			want:    StatusCounts{},
		},
		{
			name: "mixed statuses",
			records: []model.FraudRecord{
				record(model.StatusNormal, "2025-06-01T10:00:00Z", 10),
				record(model.StatusNormal, "2025-06-02T10:00:00Z", 20),
				record(model.StatusSuspicious, "2025-06-02T11:00:00Z", 30),
				record(model.StatusFraud, "2025-06-03T10:00:00Z", 40),
				record(model.StatusError, "2025-06-03T11:00:00Z", 50),
			},
			want: StatusCounts{Normal: 2, Suspicious: 1, Fraud: 1, Errors: 1, Total: 5},
		},
		{
			name: "unparsable timestamps still count",
			records: []model.FraudRecord{
				record(model.StatusFraud, "not-a-timestamp", 10),
			},
			want: StatusCounts{Fraud: 1, Total: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := AggregateStatusCounts(tt.records)
			assert.Equal(t, tt.want, counts)
			assert.Equal(t, len(tt.records), counts.Total)
		})
	}
}

func TestAlertCount(t *testing.T) {
	counts := StatusCounts{Normal: 5, Suspicious: 2, Fraud: 3, Errors: 1, Total: 11}
	assert.Equal(t, 5, counts.AlertCount())
}

func TestPercentageOf(t *testing.T) {
	tests := []struct {
		name         string
		count, total int
		want         int
	}{
		{"zero total yields zero", 5, 0, 0},
		{"zero of zero", 0, 0, 0},
		{"half", 1, 2, 50},
		{"rounds up", 2, 3, 67},
		{"rounds down", 1, 3, 33},
		{"full", 7, 7, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentageOf(tt.count, tt.total))
		})
	}
}

func TestAmountSaved(t *testing.T) {
	records := []model.FraudRecord{
		record(model.StatusFraud, "2025-06-01T10:00:00Z", 1000),
		record(model.StatusFraud, "2025-06-02T10:00:00Z", 250.50),
		record(model.StatusSuspicious, "2025-06-02T11:00:00Z", 9999),
		record(model.StatusNormal, "2025-06-03T10:00:00Z", 10),
	}
	assert.InDelta(t, 1250.50, AmountSaved(records), 0.001)
	assert.Zero(t, AmountSaved(nil))
}

func TestTimeline(t *testing.T) {
	records := []model.FraudRecord{
		record(model.StatusFraud, "2025-06-01T10:00:00Z", 10),
		record(model.StatusFraud, "2025-06-01T23:00:00Z", 10),
		record(model.StatusSuspicious, "2025-06-01T12:00:00Z", 10),
		record(model.StatusSuspicious, "2025-06-15T12:00:00Z", 10),
		record(model.StatusNormal, "2025-06-15T13:00:00Z", 10),
		record(model.StatusFraud, "2025-07-02T09:00:00Z", 10),
		record(model.StatusFraud, "garbage", 10),
	}

	t.Run("day buckets", func(t *testing.T) {
		points := Timeline(records, BucketDay)
		require.Equal(t, []TimelinePoint{
			{Key: "2025-06-01", FraudCount: 2, SuspiciousCount: 1},
			{Key: "2025-06-15", FraudCount: 0, SuspiciousCount: 1},
			{Key: "2025-07-02", FraudCount: 1, SuspiciousCount: 0},
		}, points)
	})

	t.Run("month buckets", func(t *testing.T) {
		points := Timeline(records, BucketMonth)
		require.Equal(t, []TimelinePoint{
			{Key: "2025-06", FraudCount: 2, SuspiciousCount: 2},
			{Key: "2025-07", FraudCount: 1, SuspiciousCount: 0},
		}, points)
	})

	t.Run("week buckets", func(t *testing.T) {
		points := Timeline(records, BucketWeek)
		// 2025-06-01 is a Sunday in ISO week 22; 2025-06-15 falls in week
		// 24; 2025-07-02 in week 27.
		require.Equal(t, []TimelinePoint{
			{Key: "2025-W22", FraudCount: 2, SuspiciousCount: 1},
			{Key: "2025-W24", FraudCount: 0, SuspiciousCount: 1},
			{Key: "2025-W27", FraudCount: 1, SuspiciousCount: 0},
		}, points)
	})

	t.Run("empty collection", func(t *testing.T) {
		assert.Empty(t, Timeline(nil, BucketDay))
	})
}

func TestBucketValid(t *testing.T) {
	assert.True(t, BucketDay.Valid())
	assert.True(t, BucketWeek.Valid())
	assert.True(t, BucketMonth.Valid())
	assert.False(t, Bucket("hour").Valid())
}
