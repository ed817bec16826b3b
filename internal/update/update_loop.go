package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.svc.Scheduler != nil {
		return waitForTaskStartCmd(m.svc.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case "/":
			return m.openPalette(), nil
		case m.Keys.Today:
			return m.switchView(ViewToday), nil
		case m.Keys.Analytics:
			return m.switchView(ViewAnalytics), nil
		case m.Keys.Categories:
			return m.switchView(ViewCategories), nil
		case m.Keys.Theme:
			next := m.Theme.Next()
			if err := m.setTheme(next); err != nil {
				m.setError(err)
				return m, nil
			}
			m.Status = StatusBar{Text: "theme: " + string(next)}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewToday:
			return m.handleTodayKey(typed), nil
		case ViewCategories:
			return m.handleCategoriesKey(typed), nil
		case ViewAnalytics:
			if typed.String() == "r" {
				m.refreshReport()
				m.Status = StatusBar{Text: "analytics recomputed"}
			}
			return m, nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m = m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	case RefreshMsg:
		m.reload()
		return m, nil
	case DayRolloverMsg:
		m.onDayRollover(typed.At)
		return m, nil
	case TaskStartMsg:
		m.applyTaskStart(typed.Event)
		if m.svc.Scheduler != nil {
			return m, waitForTaskStartCmd(m.svc.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) switchView(v View) Model {
	m.CurrentView = v
	if v == ViewAnalytics {
		m.refreshReport()
	}
	return m
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewToday:
		leftPane = m.renderTodayView()
		rightPane = m.renderTaskDetail()
	case ViewAnalytics:
		leftPane = m.renderAnalyticsView()
	case ViewCategories:
		leftPane = m.renderCategoriesView()
	}
	rightPane = joinNonEmpty(rightPane, m.renderCommandPalette(), m.renderHelpIfVisible())

	notification := ""
	if m.LastStart != "" {
		notification = views.RenderNotification(m.LastStart)
	}

	return views.RenderApp(m.styles, views.AppData{
		Header:       fmt.Sprintf("zenith | %s | %s | %s", m.CurrentView, model.DateKey(m.Date), m.Theme),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   m.Status.Text,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s today | %s analytics | %s categories | %s theme | / cmd | %s help | %s quit",
			m.Keys.Today, m.Keys.Analytics, m.Keys.Categories, m.Keys.Theme, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewAnalytics, ViewCategories:
		return true
	default:
		return false
	}
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
