package health

import (
	"reflect"
	"testing"
	"time"

	"github.com/tapan77777/Transpera/models"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func tradeAt(ts time.Time) models.Trade {
	return models.Trade{ID: "T", ClientID: "C001", Symbol: "TCS", Side: models.SideBuy, Qty: 5, Price: 100, Ts: ts.UnixMilli()}
}

func tradesOnDay(day time.Time, n int) []models.Trade {
	trades := make([]models.Trade, n)
	for i := 0; i < n; i++ {
		trades[i] = tradeAt(day.Add(time.Duration(i) * time.Minute))
	}
	return trades
}

func task(status models.TaskStatus) models.ComplianceTask {
	return models.ComplianceTask{ID: "TASK", Title: "t", Due: testNow.Format(time.RFC3339), Status: status, Category: models.CategoryRegulatory}
}

func TestComplianceScore(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.ComplianceTask
		want  int
	}{
		{"No tasks scores zero", nil, 0},
		{"All completed scores perfect", []models.ComplianceTask{task(models.TaskCompleted), task(models.TaskCompleted)}, 100},
		{"Overdue tasks cost five points each", []models.ComplianceTask{task(models.TaskCompleted), task(models.TaskOverdue)}, 45},
		{"All pending scores zero", []models.ComplianceTask{task(models.TaskPending)}, 0},
		{"Heavy overdue load clamps at zero", []models.ComplianceTask{
			task(models.TaskOverdue), task(models.TaskOverdue), task(models.TaskOverdue),
			task(models.TaskOverdue), task(models.TaskOverdue),
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(nil, nil, tt.tasks, testNow)
			if got.ComplianceScore != tt.want {
				t.Errorf("complianceScore = %d, want %d", got.ComplianceScore, tt.want)
			}
		})
	}
}

func TestSurveillanceScore(t *testing.T) {
	flag := func(sev models.Severity) models.Flag {
		return models.Flag{TradeID: "T", Type: models.FlagHighVolume, Severity: sev}
	}

	tests := []struct {
		name  string
		flags []models.Flag
		want  int
	}{
		{"No flags keeps a perfect score", nil, 100},
		{"Five high flags cost forty points", []models.Flag{
			flag(models.SeverityHigh), flag(models.SeverityHigh), flag(models.SeverityHigh),
			flag(models.SeverityHigh), flag(models.SeverityHigh),
		}, 60},
		{"Mixed severities", []models.Flag{flag(models.SeverityHigh), flag(models.SeverityMedium), flag(models.SeverityLow)}, 86},
		{"Flood of flags clamps at zero", func() []models.Flag {
			var fs []models.Flag
			for i := 0; i < 20; i++ {
				fs = append(fs, flag(models.SeverityHigh))
			}
			return fs
		}(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(nil, tt.flags, nil, testNow)
			if got.SurveillanceScore != tt.want {
				t.Errorf("surveillanceScore = %d, want %d", got.SurveillanceScore, tt.want)
			}
		})
	}
}

func TestBusinessScore(t *testing.T) {
	tests := []struct {
		name   string
		trades []models.Trade
		want   int
	}{
		{"No recent activity", nil, 30},
		// log2(1+3)*15 = 30, so 30+30.
		{"Three recent trades", tradesOnDay(testNow.Add(-time.Hour), 3), 60},
		// Trades older than seven days do not count.
		{"Stale trades ignored", tradesOnDay(testNow.AddDate(0, 0, -8), 3), 30},
		// log2(1+127)*15 = 105, clamped to 100.
		{"Heavy activity clamps at one hundred", tradesOnDay(testNow.Add(-time.Hour), 127), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.trades, nil, nil, testNow)
			if got.BusinessScore != tt.want {
				t.Errorf("businessScore = %d, want %d", got.BusinessScore, tt.want)
			}
		})
	}
}

func TestOverallWeighting(t *testing.T) {
	// One completed task -> compliance 100; no flags -> surveillance 100;
	// no trades -> business 30. 0.45*100 + 0.35*100 + 0.20*30 = 86.
	got := Compute(nil, nil, []models.ComplianceTask{task(models.TaskCompleted)}, testNow)
	if got.Overall != 86 {
		t.Errorf("overall = %d, want 86", got.Overall)
	}
	if got.Overall < 0 || got.Overall > 100 {
		t.Errorf("overall %d outside [0, 100]", got.Overall)
	}
}

func TestHeatmap(t *testing.T) {
	tests := []struct {
		name   string
		trades []models.Trade
		check  func(t *testing.T, cells []int)
	}{
		{
			name:   "Always fourteen cells of zero without trades",
			trades: nil,
			check: func(t *testing.T, cells []int) {
				for i, c := range cells {
					if c != 0 {
						t.Errorf("cell %d = %d, want 0", i, c)
					}
				}
			},
		},
		{
			name:   "Six trades today puts bucket one in the last cell",
			trades: tradesOnDay(testNow.Add(-2*time.Hour), 6),
			check: func(t *testing.T, cells []int) {
				if cells[13] != 1 {
					t.Errorf("today's cell = %d, want 1", cells[13])
				}
			},
		},
		{
			name:   "Sixteen trades today puts bucket two in the last cell",
			trades: tradesOnDay(testNow.Add(-2*time.Hour), 16),
			check: func(t *testing.T, cells []int) {
				if cells[13] != 2 {
					t.Errorf("today's cell = %d, want 2", cells[13])
				}
			},
		},
		{
			name:   "Thirteen days ago lands in the first cell",
			trades: tradesOnDay(testNow.AddDate(0, 0, -13), 6),
			check: func(t *testing.T, cells []int) {
				if cells[0] != 1 {
					t.Errorf("oldest cell = %d, want 1", cells[0])
				}
				for i := 1; i < len(cells); i++ {
					if cells[i] != 0 {
						t.Errorf("cell %d = %d, want 0", i, cells[i])
					}
				}
			},
		},
		{
			name:   "Trades outside the window are invisible",
			trades: tradesOnDay(testNow.AddDate(0, 0, -14), 20),
			check: func(t *testing.T, cells []int) {
				for i, c := range cells {
					if c != 0 {
						t.Errorf("cell %d = %d, want 0", i, c)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.trades, nil, nil, testNow)
			if len(got.Heatmap) != 14 {
				t.Fatalf("heatmap length = %d, want 14", len(got.Heatmap))
			}
			for i, c := range got.Heatmap {
				if c < 0 || c > 2 {
					t.Errorf("cell %d = %d, outside {0,1,2}", i, c)
				}
			}
			tt.check(t, got.Heatmap)
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	trades := tradesOnDay(testNow.Add(-time.Hour), 8)
	flags := []models.Flag{{TradeID: "T", Type: models.FlagPriceJump, Severity: models.SeverityHigh}}
	tasks := []models.ComplianceTask{task(models.TaskCompleted), task(models.TaskOverdue)}

	first := Compute(trades, flags, tasks, testNow)
	second := Compute(trades, flags, tasks, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ:\n%+v\n%+v", first, second)
	}
}
