package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	Index         int
	ID            string
	Name          string
	StartTime     string
	EndTime       string
	CategoryName  string
	CategoryColor string
	Completed     bool
	Current       bool
	Selected      bool
}

type TodayPanelData struct {
	DateLabel    string
	IsToday      bool
	Completed    int
	Total        int
	Percent      int
	ProgressView string
	Tasks        []TaskRowData
}

type TaskDetailData struct {
	Name          string
	ID            string
	Window        string
	CategoryName  string
	CategoryColor string
	Completed     bool
	NotesView     string
}

type DayBarData struct {
	Label    string
	Percent  int
	HasTasks bool
}

type HeatCellData struct {
	Day     int
	Level   int
	InRange bool
	Empty   bool
}

type AllocationRowData struct {
	Name  string
	Color string
	Hours float64
	Share float64
}

type AnalyticsPanelData struct {
	Weekly      []DayBarData
	Average     int
	HasAverage  bool
	Heatmap     [][]HeatCellData
	Allocation  []AllocationRowData
	TotalHours  float64
	BarWidth    int
	ReportTitle string
}

type CategoryRowData struct {
	ID       string
	Name     string
	Color    string
	Fixed    bool
	Selected bool
}

type CategoriesPanelData struct {
	Rows []CategoryRowData
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(s Styles, data TodayPanelData) string {
	var b strings.Builder
	title := data.DateLabel
	if data.IsToday {
		title += " (today)"
	}
	b.WriteString(s.Title.Render(title) + "\n")
	if data.Total == 0 {
		b.WriteString(s.Muted.Render("No tasks scheduled for this day."))
		return b.String()
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", data.ProgressView, s.Muted.Render(fmt.Sprintf("%d/%d done (%d%%)", data.Completed, data.Total, data.Percent))))
	for _, t := range data.Tasks {
		b.WriteString(renderTaskRow(s, t) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskRow(s Styles, t TaskRowData) string {
	cursor := " "
	if t.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	window := formatWindow(t.StartTime, t.EndTime)
	name := s.Text.Render(t.Name)
	switch {
	case t.Completed:
		name = s.Done.Render(t.Name)
	case t.Current:
		name = s.Current.Render(t.Name + " ← now")
	case t.Selected:
		name = s.Selected.Render(t.Name)
	}
	return fmt.Sprintf("%s %2d %s %s %s %s %s",
		cursor, t.Index, check, s.Swatch(t.CategoryColor), s.Muted.Render(window), name, s.Muted.Render("· "+t.CategoryName))
}

func formatWindow(start, end string) string {
	if start == "" && end == "" {
		return "  anytime  "
	}
	if start == "" {
		start = "--:--"
	}
	if end == "" {
		end = "--:--"
	}
	return start + "-" + end
}

func RenderTaskDetail(s Styles, data TaskDetailData) string {
	if data.ID == "" {
		return s.Muted.Render("(no selection)")
	}
	state := "open"
	if data.Completed {
		state = "done"
	}
	var b strings.Builder
	b.WriteString(s.Title.Render(data.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s %s\n", s.Swatch(data.CategoryColor), data.CategoryName))
	b.WriteString(s.Muted.Render(fmt.Sprintf("when: %s | %s", data.Window, state)) + "\n")
	b.WriteString(s.Muted.Render("id: "+data.ID) + "\n")
	if strings.TrimSpace(data.NotesView) != "" {
		b.WriteString("\n" + data.NotesView)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderAnalyticsPanel(s Styles, data AnalyticsPanelData) string {
	width := data.BarWidth
	if width <= 0 {
		width = 20
	}
	var b strings.Builder
	b.WriteString(s.Title.Render(data.ReportTitle) + "\n\n")

	b.WriteString(s.Title.Render("Weekly progress") + "\n")
	for _, d := range data.Weekly {
		if !d.HasTasks {
			b.WriteString(fmt.Sprintf("%-9s %s\n", d.Label, s.Muted.Render("no tasks")))
			continue
		}
		filled := d.Percent * width / 100
		bar := barView(s, filled, width)
		b.WriteString(fmt.Sprintf("%-9s %s %3d%%\n", d.Label, bar, d.Percent))
	}
	if data.HasAverage {
		b.WriteString(s.Muted.Render(fmt.Sprintf("average %d%%", data.Average)) + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Heatmap") + "\n")
	b.WriteString(s.Muted.Render("Mo Tu We Th Fr Sa Su") + "\n")
	for _, row := range data.Heatmap {
		cells := make([]string, 0, len(row))
		for _, c := range row {
			cells = append(cells, renderHeatCell(s, c))
		}
		b.WriteString(strings.Join(cells, " ") + "\n")
	}

	b.WriteString("\n" + s.Title.Render("Time allocation") + "\n")
	if len(data.Allocation) == 0 {
		b.WriteString(s.Muted.Render("No timed tasks in any routine."))
		return b.String()
	}
	for _, a := range data.Allocation {
		b.WriteString(fmt.Sprintf("%s %-14s %5.1fh %s\n", s.Swatch(a.Color), a.Name, a.Hours, s.Muted.Render(fmt.Sprintf("%3.0f%%", a.Share))))
	}
	b.WriteString(s.Muted.Render(fmt.Sprintf("total %.1fh", data.TotalHours)))
	return b.String()
}

func barView(s Styles, filled, width int) string {
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return s.Current.Render(strings.Repeat("█", filled)) + s.Muted.Render(strings.Repeat("░", width-filled))
}

func renderHeatCell(s Styles, c HeatCellData) string {
	if !c.InRange {
		return "  "
	}
	label := fmt.Sprintf("%2d", c.Day)
	if c.Empty {
		return s.Muted.Render(label)
	}
	style := s.Text.Background(lipgloss.Color(s.HeatColor(c.Level)))
	return style.Render(label)
}

func RenderCategoriesPanel(s Styles, data CategoriesPanelData) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Categories") + "\n")
	if len(data.Rows) == 0 {
		b.WriteString(s.Muted.Render("(none)"))
		return b.String()
	}
	for _, r := range data.Rows {
		cursor := " "
		name := s.Text.Render(r.Name)
		if r.Selected {
			cursor = ">"
			name = s.Selected.Render(r.Name)
		}
		suffix := ""
		if r.Fixed {
			suffix = s.Muted.Render(" (fixed)")
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s%s\n", cursor, s.Swatch(r.Color), name, s.Muted.Render(r.ID+" "+r.Color), suffix))
	}
	b.WriteString("\n" + s.Muted.Render("/category add <name> <#RRGGBB> | rename <id> <name> | delete <id>"))
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderNotification(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return "now: " + body
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help: %s\n%s\n\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
