// Package update holds the Bubble Tea model of the dashboard: its state,
// message handling and the glue between key presses and the domain
// services.
package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/analytics"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/routine"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/scheduler"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/storage"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/views"
)

type View string

const (
	ViewToday      View = "Today"
	ViewAnalytics  View = "Analytics"
	ViewCategories View = "Categories"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today      string
	Analytics  string
	Categories string
	Theme      string
	Help       string
	Quit       string
}

// Services are the domain components the model drives. Store, Tracker and
// Projector are required.
type Services struct {
	Store      *storage.Store
	Tracker    *routine.Tracker
	Projector  *routine.Projector
	Aggregator *analytics.Aggregator
	Scheduler  *scheduler.Engine
}

type Options struct {
	StartReminders       bool
	DesktopNotifications bool
	Notifier             DesktopNotifier
	// Now defaults to time.Now.
	Now func() time.Time
}

type TodayState struct {
	Tasks      []model.DisplayTask
	Cursor     int
	CurrentIDs map[string]bool
}

type CategoriesState struct {
	Items  []model.Category
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	CurrentView View
	Date        time.Time
	Today       TodayState
	Categories  CategoriesState
	Report      analytics.Report
	Theme       model.Theme
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	LastStart   string
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier

	ctx             context.Context
	svc             Services
	now             func() time.Time
	startReminders  bool
	startGeneration uint64
	styles          views.Styles

	commandInput  textinput.Model
	dayProgress   progress.Model
	helpModel     help.Model
	notesViewport viewport.Model
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// RefreshMsg re-reads the day on screen and the current task.
type RefreshMsg struct {
	At time.Time
}

// DayRolloverMsg is sent at midnight.
type DayRolloverMsg struct {
	At time.Time
}

type TaskStartMsg struct {
	Event scheduler.TaskStartEvent
}

func NewModel(ctx context.Context, svc Services, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := Model{
		CurrentView:    ViewToday,
		Date:           model.StartOfDay(now()),
		ctx:            ctx,
		svc:            svc,
		now:            now,
		startReminders: opts.StartReminders,
		DesktopEnabled: opts.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Today:      "1",
			Analytics:  "2",
			Categories: "3",
			Theme:      "T",
			Help:       "?",
			Quit:       "q",
		},
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	m.Theme = themeFromSettings(svc.Store.LoadSettings())
	m.styles = views.NewStyles(string(m.Theme))
	m.initBubbleComponents()
	m.reload()
	m.scheduleStarts()
	return m
}

func themeFromSettings(s model.Settings) model.Theme {
	theme, err := model.ParseTheme(s.Theme)
	if err != nil {
		return model.ThemeDark
	}
	return theme
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48
	m.commandInput.Placeholder = "toggle 1 | goto +1 | add monday 06:00-07:00 Run"

	m.dayProgress = progress.New(progress.WithScaledGradient(m.styles.Palette.AccentPrimary, m.styles.Palette.AccentSecondary), progress.WithoutPercentage())
	m.dayProgress.Width = 24

	m.helpModel = help.New()
	m.notesViewport = viewport.New(44, 8)
}
