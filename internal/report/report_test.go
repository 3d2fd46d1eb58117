package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tapan77777/Transpera/models"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestBuildIncludesScores(t *testing.T) {
	health := models.HealthScore{ComplianceScore: 45, SurveillanceScore: 92, BusinessScore: 60, Overall: 64}
	out := Build(health, nil, nil, testNow)

	for _, want := range []string{"Overall: 64", "Compliance: 45", "Surveillance: 92", "Business: 60"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestBuildTaskSection(t *testing.T) {
	tasks := []models.ComplianceTask{
		{ID: "A", Title: "Done thing", Status: models.TaskCompleted},
		{ID: "B", Title: "Monthly STR Submission", Status: models.TaskOverdue, Due: testNow.Format(time.RFC3339)},
	}
	out := Build(models.HealthScore{}, nil, tasks, testNow)

	if strings.Contains(out, "Done thing") {
		t.Error("completed task should not be listed")
	}
	if !strings.Contains(out, "[OVERDUE] Monthly STR Submission") {
		t.Errorf("overdue task missing:\n%s", out)
	}

	allDone := Build(models.HealthScore{}, nil, []models.ComplianceTask{{ID: "A", Status: models.TaskCompleted}}, testNow)
	if !strings.Contains(allDone, "All tasks completed.") {
		t.Errorf("all-completed message missing:\n%s", allDone)
	}
}

func TestBuildShowsLastTenFlags(t *testing.T) {
	var flags []models.Flag
	for i := 0; i < 12; i++ {
		flags = append(flags, models.Flag{
			TradeID:  fmt.Sprintf("T%d", i),
			Type:     models.FlagHighVolume,
			Severity: models.SeverityMedium,
			Message:  fmt.Sprintf("flag number %d", i),
		})
	}
	out := Build(models.HealthScore{}, flags, nil, testNow)

	if strings.Contains(out, "flag number 0") || strings.Contains(out, "flag number 1\n") {
		t.Error("oldest flags should be cut from the report")
	}
	if !strings.Contains(out, "flag number 11") {
		t.Errorf("latest flag missing:\n%s", out)
	}
}
