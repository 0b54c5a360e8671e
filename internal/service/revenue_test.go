package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-services-backend/internal/model"
)

func TestFullScanAggregator_BucketsByMonthWithGaps(t *testing.T) {
	now := func() time.Time { return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC) }

	orderRepo := &mockOrderRepo{
		listCompletedSinceFn: func(ctx context.Context, since time.Time) ([]*model.Order, error) {
			return []*model.Order{
				{Amount: "100.00", CreatedAt: time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC)},
				{Amount: "50.50", CreatedAt: time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC)},
				{Amount: "200.00", CreatedAt: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)},
				{Amount: "garbage", CreatedAt: time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC)},
			}, nil
		},
	}

	agg := NewFullScanAggregator(orderRepo, now)
	series, err := agg.RevenueByMonth(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, "2026-06", series[0].Month)
	assert.Equal(t, "150.50", series[0].Revenue)
	assert.Equal(t, 2, series[0].Orders)

	// No completed orders in July: zero bucket, not a missing entry.
	assert.Equal(t, "2026-07", series[1].Month)
	assert.Equal(t, "0", series[1].Revenue)
	assert.Equal(t, 0, series[1].Orders)

	// The malformed amount row is skipped, not fatal.
	assert.Equal(t, "2026-08", series[2].Month)
	assert.Equal(t, "200.00", series[2].Revenue)
	assert.Equal(t, 1, series[2].Orders)
}
