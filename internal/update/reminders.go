package update

import (
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/scheduler"
)

// scheduleStarts queues a start event for each of today's open tasks that
// has not started yet, replacing whatever was queued before.
func (m *Model) scheduleStarts() {
	if !m.startReminders || m.svc.Scheduler == nil {
		return
	}
	now := m.now()
	today := model.StartOfDay(now)
	evs := scheduler.StartEvents(today, m.svc.Projector.Project(today), now)
	gen, err := m.svc.Scheduler.Replace(evs)
	if err != nil {
		slog.Warn("task start scheduling failed", "error", err)
		return
	}
	m.startGeneration = gen
	slog.Debug("task starts scheduled", "date", model.DateKey(today), "count", len(evs), "generation", gen)
}

func waitForTaskStartCmd(ch <-chan scheduler.TaskStartEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return TaskStartMsg{Event: ev}
	}
}

func (m *Model) applyTaskStart(ev scheduler.TaskStartEvent) {
	if ev.Generation != m.startGeneration {
		return
	}
	date, err := model.ParseDateKey(ev.Date)
	if err != nil || m.svc.Tracker.IsComplete(date, ev.TaskID) {
		return
	}
	m.LastStart = fmt.Sprintf("%s (%s)", ev.Name, ev.TriggerAt.Format("15:04"))
	m.Status = StatusBar{Text: "starting now: " + ev.Name}
	m.notify("Task starting", ev.Name, "info")
	m.reload()
}

func (m *Model) onDayRollover(at time.Time) {
	yesterday := model.StartOfDay(at).AddDate(0, 0, -1)
	if model.SameDay(m.Date, yesterday) {
		m.Date = model.StartOfDay(at)
		m.Today.Cursor = 0
	}
	m.LastStart = ""
	m.reload()
	m.scheduleStarts()
	slog.Info("day rolled over", "date", model.DateKey(at))
}

func (m *Model) notify(title, body, level string) {
	if body == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			slog.Debug("desktop notification failed", "error", err)
		}
	}
}
