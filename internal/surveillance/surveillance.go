// Package surveillance scans trade history for suspicious activity and
// emits discrete flags per trade. Every rule is evaluated independently
// per symbol, in chronological order, over a full snapshot of trades.
package surveillance

import (
	"fmt"
	"math"
	"sort"

	"github.com/tapan77777/Transpera/models"
)

const (
	// Rolling window of recent quantities used as the volume baseline.
	volumeWindowSize = 10

	// High-volume rule: qty above volumeRatio times the rolling average,
	// or above absoluteQtyLimit outright. Above severeQtyLimit the flag
	// escalates to HIGH.
	volumeRatio      = 4.0
	absoluteQtyLimit = 50
	severeQtyLimit   = 100

	// Price-jump rule thresholds on relative change vs the previous
	// trade. Exactly 20% is still MEDIUM.
	jumpThreshold   = 0.10
	severeThreshold = 0.20

	// Rapid-reversal rule: opposite-side same-client same-qty trades
	// this close together are a circularity candidate.
	reversalWindowMs = 5 * 60 * 1000
)

// DetectFlags runs all surveillance rules over the given trades and
// returns the flags raised. Input may be unsorted and span many symbols;
// it is never mutated. Symbols are evaluated in sorted order, and within
// a symbol flags come out in ascending time order of the triggering
// trade, so identical inputs always produce identical output.
func DetectFlags(trades []models.Trade) []models.Flag {
	bySymbol := make(map[string][]models.Trade)
	for _, t := range trades {
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
	}

	symbols := make([]string, 0, len(bySymbol))
	for s := range bySymbol {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	flags := []models.Flag{}
	for _, symbol := range symbols {
		arr := append([]models.Trade(nil), bySymbol[symbol]...)
		sort.SliceStable(arr, func(i, j int) bool { return arr[i].Ts < arr[j].Ts })
		flags = append(flags, scanSymbol(symbol, arr)...)
	}
	return flags
}

// scanSymbol evaluates one symbol's chronologically sorted trades.
func scanSymbol(symbol string, arr []models.Trade) []models.Flag {
	var flags []models.Flag
	window := make([]int64, 0, volumeWindowSize)
	var prevPrice float64
	havePrev := false

	for i, t := range arr {
		avgQty := 0.0
		if len(window) > 0 {
			var sum int64
			for _, q := range window {
				sum += q
			}
			avgQty = float64(sum) / float64(len(window))
		}

		// High volume: above the rolling baseline or above the hard cap.
		if (avgQty > 0 && float64(t.Qty) > volumeRatio*avgQty) || t.Qty > absoluteQtyLimit {
			severity := models.SeverityMedium
			if t.Qty > severeQtyLimit {
				severity = models.SeverityHigh
			}
			flags = append(flags, models.Flag{
				TradeID:  t.ID,
				Type:     models.FlagHighVolume,
				Severity: severity,
				Message:  fmt.Sprintf("%s: Unusual quantity %d vs avg %.1f", symbol, t.Qty, avgQty),
			})
		}

		// Price jump vs the previous trade of the same symbol.
		if havePrev {
			chg := (t.Price - prevPrice) / prevPrice
			if math.Abs(chg) >= jumpThreshold {
				severity := models.SeverityMedium
				if math.Abs(chg) > severeThreshold {
					severity = models.SeverityHigh
				}
				flags = append(flags, models.Flag{
					TradeID:  t.ID,
					Type:     models.FlagPriceJump,
					Severity: severity,
					Message:  fmt.Sprintf("%s: Price changed %.1f%%", symbol, chg*100),
				})
			}
		}

		// Rapid reversal: only ever compares adjacent trade pairs.
		if i > 0 {
			prev := arr[i-1]
			within := t.Ts-prev.Ts <= reversalWindowMs
			if within && prev.Side != t.Side && prev.ClientID == t.ClientID && prev.Qty == t.Qty {
				flags = append(flags, models.Flag{
					TradeID:  t.ID,
					Type:     models.FlagCircularity,
					Severity: models.SeverityMedium,
					Message:  fmt.Sprintf("%s: Rapid opposite trades by %s", symbol, t.ClientID),
				})
			}
		}

		window = append(window, t.Qty)
		if len(window) > volumeWindowSize {
			window = window[1:]
		}
		prevPrice = t.Price
		havePrev = true
	}
	return flags
}
