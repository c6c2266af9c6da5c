package workflow

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestPriorityScore(t *testing.T) {
	assert.Equal(t, 0, PriorityScore(fixedNow, fixedNow))
	assert.Equal(t, 10, PriorityScore(fixedNow.AddDate(0, 0, -10), fixedNow))
	assert.Equal(t, 1, PriorityScore(fixedNow.Add(-30*time.Hour), fixedNow))
	assert.Equal(t, 2, PriorityScore(fixedNow.Add(-36*time.Hour), fixedNow))
	assert.Equal(t, 0, PriorityScore(fixedNow.Add(-11*time.Hour), fixedNow))
	assert.Equal(t, -3, PriorityScore(fixedNow.AddDate(0, 0, 3), fixedNow))
	// half rounds toward +inf on the negative side too
	assert.Equal(t, -2, PriorityScore(fixedNow.Add(60*time.Hour), fixedNow))
}

func TestPrioritizeSkipsTerminalAndSorts(t *testing.T) {
	c := MustCatalog(VariantBernie)
	videos := []VideoSnapshot{
		{ID: 1, ProductionStatus: StatusToEdit, UpdatedAt: fixedNow.AddDate(0, 0, -2)},
		{ID: 2, ProductionStatus: StatusFinished, UpdatedAt: fixedNow.AddDate(0, 0, -90)},
		{ID: 3, ProductionStatus: "En cours", UpdatedAt: fixedNow.AddDate(0, 0, -20)},
		{ID: 4, ProductionStatus: "En cours", UpdatedAt: fixedNow.AddDate(0, 0, 1)},
		{ID: 5, ProductionStatus: StatusToEdit, UpdatedAt: fixedNow.AddDate(0, 0, -2)},
	}

	got := Prioritize(c, videos, fixedNow)
	require.Len(t, got, 4)

	ids := make([]int64, 0, len(got))
	for _, v := range got {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []int64{3, 1, 5, 4}, ids)
	assert.Equal(t, 20, got[0].Priority)
	assert.Equal(t, -1, got[3].Priority)
}

func TestAlertsThreshold(t *testing.T) {
	c := MustCatalog(VariantBernie)
	videos := []VideoSnapshot{
		{ID: 1, ProductionStatus: StatusToEdit, UpdatedAt: fixedNow.Add(-StalenessThreshold)},
		{ID: 2, ProductionStatus: StatusToEdit, UpdatedAt: fixedNow.Add(-StalenessThreshold - time.Second)},
		{ID: 3, ProductionStatus: StatusFinished, UpdatedAt: fixedNow.AddDate(-1, 0, 0)},
		{ID: 4, ProductionStatus: "En cours", UpdatedAt: fixedNow.AddDate(0, 0, -30)},
	}

	got := Alerts(c, videos, fixedNow)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestAlertsEmptyIsNotNil(t *testing.T) {
	got := Alerts(MustCatalog(VariantBernie), nil, fixedNow)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func genSnapshots(c *Catalog) gopter.Gen {
	values := make([]interface{}, 0)
	for _, s := range c.Statuses() {
		values = append(values, s.Value)
	}
	return gen.SliceOf(gopter.CombineGens(
		gen.Int64Range(-60*24, 60*24),
		gen.OneConstOf(values...),
	).Map(func(vals []interface{}) VideoSnapshot {
		return VideoSnapshot{
			ProductionStatus: vals[1].(string),
			UpdatedAt:        fixedNow.Add(-time.Duration(vals[0].(int64)) * time.Hour),
		}
	}))
}

func TestProperty_PrioritiesNonIncreasing(t *testing.T) {
	c := MustCatalog(VariantBigwater)
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("priorities are sorted stalest first", prop.ForAll(
		func(videos []VideoSnapshot) bool {
			got := Prioritize(c, videos, fixedNow)
			for i := 1; i < len(got); i++ {
				if got[i-1].Priority < got[i].Priority {
					return false
				}
			}
			return true
		},
		genSnapshots(c),
	))

	properties.Property("priorities never contain a terminal video", prop.ForAll(
		func(videos []VideoSnapshot) bool {
			expected := 0
			for _, v := range videos {
				if !c.IsTerminal(v.ProductionStatus) {
					expected++
				}
			}
			got := Prioritize(c, videos, fixedNow)
			return len(got) == expected
		},
		genSnapshots(c),
	))

	properties.TestingRun(t)
}

func TestProperty_AlertsMatchThreshold(t *testing.T) {
	c := MustCatalog(VariantBernie)
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("alerts are exactly the stale non-terminal videos", prop.ForAll(
		func(videos []VideoSnapshot) bool {
			got := Alerts(c, videos, fixedNow)
			want := 0
			for _, v := range videos {
				if !c.IsTerminal(v.ProductionStatus) && fixedNow.Sub(v.UpdatedAt) > StalenessThreshold {
					want++
				}
			}
			if len(got) != want {
				return false
			}
			for _, v := range got {
				if c.IsTerminal(v.ProductionStatus) || fixedNow.Sub(v.UpdatedAt) <= StalenessThreshold {
					return false
				}
			}
			return true
		},
		genSnapshots(c),
	))

	properties.TestingRun(t)
}
