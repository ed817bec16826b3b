package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/routine"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/views"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
		m.syncNotes()
	case "down", "j":
		if m.Today.Cursor < len(m.Today.Tasks)-1 {
			m.Today.Cursor++
		}
		m.syncNotes()
	case " ", "enter", "x":
		if selected, ok := m.currentTask(); ok {
			if err := m.toggleTask(selected); err != nil {
				m.setError(err)
			}
		}
	case "left", "h":
		m.Date = m.Date.AddDate(0, 0, -1)
		m.Today.Cursor = 0
		m.reload()
	case "right", "l":
		m.Date = m.Date.AddDate(0, 0, 1)
		m.Today.Cursor = 0
		m.reload()
	case "t":
		m.Date = model.StartOfDay(m.now())
		m.Today.Cursor = 0
		m.reload()
	}
	return m
}

// reload re-projects the day on screen and refreshes everything derived
// from it.
func (m *Model) reload() {
	m.Today.Tasks = m.svc.Projector.Project(m.Date)
	if m.Today.Cursor >= len(m.Today.Tasks) {
		m.Today.Cursor = len(m.Today.Tasks) - 1
	}
	if m.Today.Cursor < 0 {
		m.Today.Cursor = 0
	}
	m.Today.CurrentIDs = make(map[string]bool)
	for _, cur := range m.svc.Projector.CurrentTasks(m.Date, m.now()) {
		m.Today.CurrentIDs[cur.ID] = true
	}
	m.Categories.Items = model.SortCategoriesForDisplay(m.svc.Store.Categories())
	if m.Categories.Cursor >= len(m.Categories.Items) {
		m.Categories.Cursor = max(len(m.Categories.Items)-1, 0)
	}
	if m.CurrentView == ViewAnalytics {
		m.refreshReport()
	}
	m.syncNotes()
}

func (m *Model) syncNotes() {
	selected, ok := m.currentTask()
	if !ok || strings.TrimSpace(selected.Notes) == "" {
		m.notesViewport.SetContent("")
		return
	}
	m.notesViewport.SetContent(views.RenderMarkdown(selected.Notes, string(m.Theme)))
}

func (m Model) currentTask() (model.DisplayTask, bool) {
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(m.Today.Tasks) {
		return model.DisplayTask{}, false
	}
	return m.Today.Tasks[m.Today.Cursor], true
}

func (m *Model) toggleTask(task model.DisplayTask) error {
	done, err := m.svc.Tracker.Toggle(m.ctx, m.Date, task.ID)
	if err != nil {
		return err
	}
	state := "reopened"
	if done {
		state = "completed"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", state, task.Name)}
	m.reload()
	if m.isViewingToday() {
		m.scheduleStarts()
	}
	return nil
}

func (m Model) isViewingToday() bool {
	return model.SameDay(m.Date, m.now())
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
}

func (m Model) renderTodayView() string {
	completed, total := routine.Counts(m.Today.Tasks)
	percent := routine.Percent(completed, total)
	rows := make([]views.TaskRowData, 0, len(m.Today.Tasks))
	for i, t := range m.Today.Tasks {
		rows = append(rows, views.TaskRowData{
			Index:         i + 1,
			ID:            t.ID,
			Name:          t.Name,
			StartTime:     t.StartTime,
			EndTime:       t.EndTime,
			CategoryName:  t.CategoryName,
			CategoryColor: t.CategoryColor,
			Completed:     t.Completed,
			Current:       m.Today.CurrentIDs[t.ID],
			Selected:      i == m.Today.Cursor,
		})
	}
	return views.RenderTodayPanel(m.styles, views.TodayPanelData{
		DateLabel:    m.Date.Format("Monday, Jan 2 2006"),
		IsToday:      m.isViewingToday(),
		Completed:    completed,
		Total:        total,
		Percent:      percent,
		ProgressView: m.dayProgress.ViewAs(float64(percent) / 100),
		Tasks:        rows,
	})
}

func (m Model) renderTaskDetail() string {
	selected, ok := m.currentTask()
	if !ok {
		return views.RenderTaskDetail(m.styles, views.TaskDetailData{})
	}
	window := "anytime"
	if selected.StartTime != "" || selected.EndTime != "" {
		window = selected.StartTime + "-" + selected.EndTime
	}
	return views.RenderTaskDetail(m.styles, views.TaskDetailData{
		Name:          selected.Name,
		ID:            selected.ID,
		Window:        window,
		CategoryName:  selected.CategoryName,
		CategoryColor: selected.CategoryColor,
		Completed:     selected.Completed,
		NotesView:     m.notesViewport.View(),
	})
}
