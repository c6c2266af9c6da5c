package workflow

import (
	"math"
	"strconv"
	"time"
)

// PerformanceReport is the body of GET /api/performance.
type PerformanceReport struct {
	AvgProductionTime string         `json:"avgProductionTime"`
	MonthlyCounts     map[string]int `json:"monthlyCounts"`
	TotalVideos       int            `json:"totalVideos"`
}

const monthLayout = "2006-01"

// AggregatePerformance averages created→updated turnaround in fractional days
// over the terminal videos and counts completions per UTC month of updated_at.
func AggregatePerformance(catalog *Catalog, videos []VideoSnapshot) PerformanceReport {
	var (
		totalDays float64
		count     int
	)
	monthly := make(map[string]int)

	for _, v := range videos {
		if !catalog.IsTerminal(v.ProductionStatus) {
			continue
		}
		totalDays += v.UpdatedAt.Sub(v.CreatedAt).Seconds() / (24 * time.Hour).Seconds()
		count++
		monthly[v.UpdatedAt.UTC().Format(monthLayout)]++
	}

	avg := 0.0
	if count > 0 {
		avg = totalDays / float64(count)
	}
	return PerformanceReport{
		AvgProductionTime: formatDays(avg),
		MonthlyCounts:     monthly,
		TotalVideos:       count,
	}
}

// formatDays prints two decimals, rounding an exact x.xx5 away from zero.
// A float64 sits exactly on such a tie only when v*8 is an odd integer.
func formatDays(v float64) string {
	if e := v * 8; !math.IsInf(e, 0) && e == math.Trunc(e) && math.Mod(e, 2) != 0 {
		v = math.Copysign(math.Ceil(math.Abs(v)*100), v) / 100
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
