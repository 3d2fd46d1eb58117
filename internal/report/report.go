// Package report renders the compliance summary served by the report
// endpoint: health scores, open tasks and the most recent flags.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/tapan77777/Transpera/models"
)

const recentFlagCount = 10

// Build renders the plain-text compliance report.
func Build(health models.HealthScore, flags []models.Flag, tasks []models.ComplianceTask, now time.Time) string {
	var b strings.Builder

	b.WriteString("Transpera Compliance Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(time.RFC1123))

	b.WriteString("Health Scores\n")
	fmt.Fprintf(&b, "  Overall: %d\n", health.Overall)
	fmt.Fprintf(&b, "  Compliance: %d\n", health.ComplianceScore)
	fmt.Fprintf(&b, "  Surveillance: %d\n", health.SurveillanceScore)
	fmt.Fprintf(&b, "  Business: %d\n\n", health.BusinessScore)

	b.WriteString("Open / Overdue Tasks\n")
	open := 0
	for _, t := range tasks {
		if t.Status == models.TaskCompleted {
			continue
		}
		open++
		due := t.Due
		if parsed, err := time.Parse(time.RFC3339, t.Due); err == nil {
			due = parsed.Format("Mon Jan 2 2006")
		}
		fmt.Fprintf(&b, "  - [%s] %s (Due: %s)\n", t.Status, t.Title, due)
	}
	if open == 0 {
		b.WriteString("  All tasks completed.\n")
	}
	b.WriteString("\n")

	b.WriteString("Recent Flags\n")
	recent := flags
	if len(recent) > recentFlagCount {
		recent = recent[len(recent)-recentFlagCount:]
	}
	for _, f := range recent {
		fmt.Fprintf(&b, "  - [%s] %s: %s\n", f.Severity, f.Type, f.Message)
	}
	if len(recent) == 0 {
		b.WriteString("  No flags raised.\n")
	}

	return b.String()
}
