// Package health rolls trades, surveillance flags and compliance tasks
// into composite 0-100 scores and a 14-day risk heatmap. Compute is a
// pure function; the reference time is passed in rather than read from
// the live clock so results are reproducible.
package health

import (
	"math"
	"time"

	"github.com/tapan77777/Transpera/models"
)

const (
	overduePenalty = 5

	penaltyHigh   = 8
	penaltyMedium = 4
	penaltyLow    = 2

	recentWindow = 7 * 24 * time.Hour

	// Heatmap covers the 14 calendar days ending today. Bucket 1 above
	// mediumDayTrades trades in a day, bucket 2 above highDayTrades.
	heatmapDays     = 14
	mediumDayTrades = 5
	highDayTrades   = 15

	weightCompliance   = 0.45
	weightSurveillance = 0.35
	weightBusiness     = 0.20
)

// Compute recomputes the full health score from a snapshot. Nothing is
// cached between calls and no input is mutated.
func Compute(trades []models.Trade, flags []models.Flag, tasks []models.ComplianceTask, now time.Time) models.HealthScore {
	compliance := complianceScore(tasks)
	surv := surveillanceScore(flags)
	business := businessScore(trades, now)

	overall := int(math.Round(
		weightCompliance*float64(compliance) +
			weightSurveillance*float64(surv) +
			weightBusiness*float64(business)))

	return models.HealthScore{
		ComplianceScore:   compliance,
		SurveillanceScore: surv,
		BusinessScore:     business,
		Overall:           overall,
		Heatmap:           heatmap(trades, now),
	}
}

// complianceScore is the completion ratio minus a linear overdue
// penalty. The task total is floored at 1 so an empty list scores 0
// instead of dividing by zero.
func complianceScore(tasks []models.ComplianceTask) int {
	total := len(tasks)
	if total < 1 {
		total = 1
	}
	completed, overdue := 0, 0
	for _, t := range tasks {
		switch t.Status {
		case models.TaskCompleted:
			completed++
		case models.TaskOverdue:
			overdue++
		}
	}
	raw := int(math.Round(float64(completed)/float64(total)*100)) - overdue*overduePenalty
	return clamp(raw, 0, 100)
}

// surveillanceScore starts at a perfect 100 and subtracts a per-flag
// penalty weighted by severity.
func surveillanceScore(flags []models.Flag) int {
	penalty := 0
	for _, f := range flags {
		switch f.Severity {
		case models.SeverityHigh:
			penalty += penaltyHigh
		case models.SeverityMedium:
			penalty += penaltyMedium
		default:
			penalty += penaltyLow
		}
	}
	score := 100 - penalty
	if score < 0 {
		score = 0
	}
	return score
}

// businessScore grows with 7-day activity on a diminishing-returns
// curve. The +1 inside the log keeps zero activity well defined.
func businessScore(trades []models.Trade, now time.Time) int {
	recent := 0
	for _, t := range trades {
		if now.Sub(t.Time()) < recentWindow {
			recent++
		}
	}
	raw := 30 + int(math.Round(math.Log2(float64(1+recent))*15))
	return clamp(raw, 10, 100)
}

// heatmap buckets trades by calendar day in now's location and walks the
// 14-day window oldest first. Using one location for both the bucket
// keys and the walk keeps them from ever disagreeing.
func heatmap(trades []models.Trade, now time.Time) []int {
	loc := now.Location()
	buckets := make(map[string]int)
	for _, t := range trades {
		buckets[t.Time().In(loc).Format("2006-01-02")]++
	}

	cells := make([]int, 0, heatmapDays)
	for i := heatmapDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		n := buckets[day]
		switch {
		case n > highDayTrades:
			cells = append(cells, 2)
		case n > mediumDayTrades:
			cells = append(cells, 1)
		default:
			cells = append(cells, 0)
		}
	}
	return cells
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
