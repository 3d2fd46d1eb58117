// Package seed builds the demo dataset: a few days of randomized trades
// plus the standing compliance task list.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tapan77777/Transpera/models"
)

var (
	symbols = []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "ITC"}
	clients = []string{"C001", "C002", "C003", "C004"}
)

const tradeCount = 120

// Trades generates demo trades spread over the 5 days before now, with
// 5-90 minute gaps between executions. The rand source is injected so
// callers can pin the dataset.
func Trades(now time.Time, rnd *rand.Rand) []models.Trade {
	trades := make([]models.Trade, 0, tradeCount)
	ts := now.UnixMilli() - 5*24*60*60*1000
	for i := 0; i < tradeCount; i++ {
		ts += int64(rangeInt(rnd, 5, 90)) * 60 * 1000
		sym := symbols[rnd.Intn(len(symbols))]
		price := float64(rangeInt(rnd, 80, 120))
		if sym == "RELIANCE" {
			price += 900
		}
		side := models.SideSell
		if rnd.Float64() > 0.5 {
			side = models.SideBuy
		}
		trades = append(trades, models.Trade{
			ID:       fmt.Sprintf("T%d", i),
			ClientID: clients[rnd.Intn(len(clients))],
			Symbol:   sym,
			Side:     side,
			Qty:      int64(rangeInt(rnd, 1, 120)),
			Price:    price,
			Ts:       ts,
		})
	}
	return trades
}

// Tasks returns the standing compliance obligations with due dates
// relative to now.
func Tasks(now time.Time) []models.ComplianceTask {
	return []models.ComplianceTask{
		{
			ID:       "KRA-2025-09",
			Title:    "KRA/KYC Periodic Review",
			Due:      now.AddDate(0, 0, 2).Format(time.RFC3339),
			Status:   models.TaskPending,
			Category: models.CategoryRegulatory,
		},
		{
			ID:       "AML-STR",
			Title:    "Monthly STR Submission",
			Due:      now.AddDate(0, 0, -1).Format(time.RFC3339),
			Status:   models.TaskOverdue,
			Category: models.CategoryReporting,
		},
		{
			ID:       "RMS-TEST",
			Title:    "Quarterly RMS Backtesting",
			Due:      now.AddDate(0, 0, 10).Format(time.RFC3339),
			Status:   models.TaskPending,
			Category: models.CategoryRisk,
		},
		{
			ID:       "UCC-HEALTH",
			Title:    "UCC Master Reconciliation",
			Due:      now.AddDate(0, 0, -10).Format(time.RFC3339),
			Status:   models.TaskCompleted,
			Category: models.CategoryRegulatory,
		},
	}
}

// rangeInt returns a random int in [min, max].
func rangeInt(rnd *rand.Rand, min, max int) int {
	return rnd.Intn(max-min+1) + min
}
