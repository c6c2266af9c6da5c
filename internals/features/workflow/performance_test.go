package workflow

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestAggregatePerformanceEmpty(t *testing.T) {
	got := AggregatePerformance(MustCatalog(VariantBernie), nil)
	assert.Equal(t, "0.00", got.AvgProductionTime)
	assert.Equal(t, 0, got.TotalVideos)
	assert.NotNil(t, got.MonthlyCounts)
	assert.Empty(t, got.MonthlyCounts)
}

func TestAggregatePerformanceSingle(t *testing.T) {
	videos := []VideoSnapshot{{
		ProductionStatus: StatusFinished,
		CreatedAt:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
	}}
	got := AggregatePerformance(MustCatalog(VariantBernie), videos)
	assert.Equal(t, "10.00", got.AvgProductionTime)
	assert.Equal(t, map[string]int{"2024-01": 1}, got.MonthlyCounts)
	assert.Equal(t, 1, got.TotalVideos)
}

func TestAggregatePerformanceFractionalAndUTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	videos := []VideoSnapshot{
		{
			ProductionStatus: StatusFinished,
			CreatedAt:        time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
			UpdatedAt:        time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
		},
		{
			// 00:30 in Paris on Feb 1st is still January in UTC
			ProductionStatus: StatusFinished,
			CreatedAt:        time.Date(2024, 1, 31, 0, 30, 0, 0, paris),
			UpdatedAt:        time.Date(2024, 2, 1, 0, 30, 0, 0, paris),
		},
		{ProductionStatus: "En cours", CreatedAt: fixedNow.AddDate(0, -1, 0), UpdatedAt: fixedNow},
	}
	got := AggregatePerformance(MustCatalog(VariantBernie), videos)
	assert.Equal(t, "1.25", got.AvgProductionTime)
	assert.Equal(t, map[string]int{"2024-01": 2}, got.MonthlyCounts)
	assert.Equal(t, 2, got.TotalVideos)
}

func TestAggregatePerformanceRoundsTiesUp(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		hours int
		want  string
	}{
		{3, "0.13"},
		{9, "0.38"},
		{12, "0.50"},
		{15, "0.63"},
		{27, "1.13"},
		{8, "0.33"},
	}
	for _, tc := range cases {
		videos := []VideoSnapshot{{
			ProductionStatus: StatusFinished,
			CreatedAt:        start,
			UpdatedAt:        start.Add(time.Duration(tc.hours) * time.Hour),
		}}
		got := AggregatePerformance(MustCatalog(VariantBernie), videos)
		assert.Equal(t, tc.want, got.AvgProductionTime, "%dh", tc.hours)
	}
}

func TestFormatDaysNegativeTie(t *testing.T) {
	assert.Equal(t, "-0.13", formatDays(-0.125))
	assert.Equal(t, "0.00", formatDays(0))
}

func TestProperty_MonthlyCountsSumToTotal(t *testing.T) {
	c := MustCatalog(VariantBernie)
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("monthly buckets add up to totalVideos", prop.ForAll(
		func(ages []int64) bool {
			videos := make([]VideoSnapshot, 0, len(ages))
			for _, h := range ages {
				videos = append(videos, VideoSnapshot{
					ProductionStatus: StatusFinished,
					CreatedAt:        fixedNow.Add(-time.Duration(h+48) * time.Hour),
					UpdatedAt:        fixedNow.Add(-time.Duration(h) * time.Hour),
				})
			}
			got := AggregatePerformance(c, videos)
			sum := 0
			for _, n := range got.MonthlyCounts {
				sum += n
			}
			if len(videos) > 0 && got.AvgProductionTime != "2.00" {
				return false
			}
			return sum == got.TotalVideos && got.TotalVideos == len(videos)
		},
		gen.SliceOf(gen.Int64Range(0, 24*400)),
	))

	properties.TestingRun(t)
}
