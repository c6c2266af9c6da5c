package workflow

import (
	"math"
	"sort"
	"time"
)

// StalenessThreshold is the age past which a non-terminal video raises an alert.
const StalenessThreshold = 7 * 24 * time.Hour

// VideoSnapshot is the subset of a category video the scoring views read.
type VideoSnapshot struct {
	ID               int64     `json:"id"`
	CategoryID       int64     `json:"category_id"`
	Title            string    `json:"title"`
	ProductionStatus string    `json:"production_status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PrioritizedVideo struct {
	VideoSnapshot
	Priority int `json:"priority"`
}

// PriorityScore is the number of days since updatedAt, rounded half up.
// A future updatedAt gives a negative score.
func PriorityScore(updatedAt, now time.Time) int {
	days := now.Sub(updatedAt).Hours() / 24
	return int(math.Floor(days + 0.5))
}

// Prioritize scores every non-terminal video and orders them stalest first.
// Ties keep their input order.
func Prioritize(catalog *Catalog, videos []VideoSnapshot, now time.Time) []PrioritizedVideo {
	out := make([]PrioritizedVideo, 0, len(videos))
	for _, v := range videos {
		if catalog.IsTerminal(v.ProductionStatus) {
			continue
		}
		out = append(out, PrioritizedVideo{VideoSnapshot: v, Priority: PriorityScore(v.UpdatedAt, now)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

func AlertCutoff(now time.Time) time.Time {
	return now.Add(-StalenessThreshold)
}

// Alerts keeps the non-terminal videos last touched strictly before the cutoff.
func Alerts(catalog *Catalog, videos []VideoSnapshot, now time.Time) []VideoSnapshot {
	cutoff := AlertCutoff(now)
	out := make([]VideoSnapshot, 0)
	for _, v := range videos {
		if catalog.IsTerminal(v.ProductionStatus) {
			continue
		}
		if v.UpdatedAt.Before(cutoff) {
			out = append(out, v)
		}
	}
	return out
}
