package analytics

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a Markdown document.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Routine report, %s\n\n", r.Today.Format("Monday, Jan 2 2006"))

	b.WriteString("## Last 7 days\n\n")
	b.WriteString("| Day | Done | Progress |\n|---|---|---|\n")
	for _, d := range r.Weekly {
		if !d.HasTasks() {
			fmt.Fprintf(&b, "| %s | - | no tasks |\n", d.Date.Format("Mon Jan 2"))
			continue
		}
		fmt.Fprintf(&b, "| %s | %d/%d | %d%% |\n", d.Date.Format("Mon Jan 2"), d.Completed, d.Total, d.Percent)
	}
	if avg, ok := r.WeeklyAverage(); ok {
		fmt.Fprintf(&b, "\nAverage: **%d%%**\n", avg)
	}

	b.WriteString("\n## Time allocation\n\n")
	if len(r.Allocation) == 0 {
		b.WriteString("_No timed tasks in any routine._\n")
		return b.String()
	}
	total := r.TotalHours()
	b.WriteString("| Category | Hours | Share |\n|---|---|---|\n")
	for _, c := range r.Allocation {
		fmt.Fprintf(&b, "| %s | %.1f | %.0f%% |\n", c.Name, c.Hours, c.Hours/total*100)
	}
	return b.String()
}
