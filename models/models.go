package models

import "time"

// Side is the direction of an executed order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// FlagType identifies which surveillance rule raised a flag.
type FlagType string

const (
	FlagHighVolume  FlagType = "HIGH_VOLUME"
	FlagPriceJump   FlagType = "PRICE_JUMP"
	FlagCircularity FlagType = "POTENTIAL_CIRCULARITY"
)

// Severity is the ordinal risk level of a flag (LOW < MEDIUM < HIGH).
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// TaskStatus is the lifecycle state of a compliance task. It is managed
// by whoever owns the task list; the engine only reads it.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskCompleted TaskStatus = "COMPLETED"
	TaskOverdue   TaskStatus = "OVERDUE"
)

// TaskCategory classifies a compliance task.
type TaskCategory string

const (
	CategoryRegulatory TaskCategory = "REGULATORY"
	CategoryRisk       TaskCategory = "RISK"
	CategoryReporting  TaskCategory = "REPORTING"
)

// Trade is a single executed order. Ts is epoch milliseconds.
type Trade struct {
	ID       string  `json:"id"`
	ClientID string  `json:"clientId"`
	Symbol   string  `json:"symbol"`
	Side     Side    `json:"side"`
	Qty      int64   `json:"qty"`
	Price    float64 `json:"price"`
	Ts       int64   `json:"ts"`
}

// Time returns the trade's execution time.
func (t Trade) Time() time.Time {
	return time.UnixMilli(t.Ts)
}

// Flag is a discrete anomaly signal attached to exactly one trade.
// Message is advisory only and never drives logic.
type Flag struct {
	TradeID  string   `json:"tradeId"`
	Type     FlagType `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ComplianceTask is a regulatory or operational obligation.
// Due is an RFC 3339 date string.
type ComplianceTask struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Due      string       `json:"due"`
	Status   TaskStatus   `json:"status"`
	Category TaskCategory `json:"category"`
}

// HealthScore is the aggregated output of a scoring pass. All four
// scores are integers in [0, 100]. Heatmap holds exactly 14 daily risk
// buckets in {0, 1, 2}, oldest day first, ending today.
type HealthScore struct {
	ComplianceScore   int   `json:"complianceScore"`
	SurveillanceScore int   `json:"surveillanceScore"`
	BusinessScore     int   `json:"businessScore"`
	Overall           int   `json:"overall"`
	Heatmap           []int `json:"heatmap"`
}
