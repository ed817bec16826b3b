package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/analytics"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/config"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/logging"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/routine"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/scheduler"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/storage"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/update"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/views"
	"github.com/mattn/go-isatty"
)

const usage = `usage: zenith [command]

commands:
  (none)   run the dashboard
  report   print the analytics report
  today    print today's routine
`

type app struct {
	cfg        config.Config
	store      *storage.Store
	tracker    *routine.Tracker
	projector  *routine.Projector
	aggregator *analytics.Aggregator
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "zenith failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "", "report", "today":
	case "-h", "--help", "help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	if cmd == "" {
		logFile, err := openLogFile(cfg.LogPath())
		if err != nil {
			return err
		}
		defer logFile.Close()
		logging.Setup(logFile, level, false)
	} else {
		logging.Setup(os.Stderr, level, isatty.IsTerminal(os.Stderr.Fd()))
	}
	if cfg.Source != "" {
		slog.Debug("config file applied", "path", cfg.Source)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.store.Close(); err != nil {
			slog.Warn("close store", "error", err)
		}
	}()

	switch cmd {
	case "report":
		return a.printReport(os.Stdout)
	case "today":
		return a.printToday(os.Stdout)
	default:
		return a.runDashboard(ctx)
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func openBackend(cfg config.Config) (storage.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return storage.OpenSQLite(cfg.SQLitePath)
	default:
		return storage.NewFileBackend(cfg.DataDir)
	}
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewStore(backend)
	if err != nil {
		return nil, errors.Join(err, backend.Close())
	}
	store.Load(ctx)
	slog.Info("store loaded", "backend", cfg.Backend, "data_dir", cfg.DataDir)

	tracker := routine.NewTracker(store)
	projector := routine.NewProjector(routine.NewResolver(store), tracker, store)
	aggregator := analytics.NewAggregator(projector, store, store)
	aggregator.WeeklyDays = cfg.WeeklyDays
	aggregator.HeatmapDays = cfg.HeatmapDays

	return &app{
		cfg:        cfg,
		store:      store,
		tracker:    tracker,
		projector:  projector,
		aggregator: aggregator,
	}, nil
}

func (a *app) theme() string {
	return a.store.LoadSettings().Theme
}

func (a *app) printReport(w io.Writer) error {
	report := a.aggregator.Report(time.Now())
	_, err := fmt.Fprintln(w, views.RenderMarkdown(report.Markdown(), a.theme()))
	return err
}

func (a *app) printToday(w io.Writer) error {
	now := time.Now()
	tasks := a.projector.Project(now)
	completed, total := routine.Counts(tasks)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", now.Format("Monday, Jan 2 2006"))
	if total == 0 {
		b.WriteString("_No tasks scheduled._\n")
	} else {
		fmt.Fprintf(&b, "%d/%d done (%d%%)\n\n", completed, total, routine.Percent(completed, total))
		for _, t := range tasks {
			box := " "
			if t.Completed {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s-%s **%s** (%s)\n", box, t.StartTime, t.EndTime, t.Name, t.CategoryName)
		}
	}
	_, err := fmt.Fprintln(w, views.RenderMarkdown(b.String(), a.theme()))
	return err
}

func (a *app) runDashboard(ctx context.Context) error {
	engine := scheduler.NewEngine(a.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if a.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}

	m := update.NewModel(ctx, update.Services{
		Store:      a.store,
		Tracker:    a.tracker,
		Projector:  a.projector,
		Aggregator: a.aggregator,
		Scheduler:  engine,
	}, update.Options{
		StartReminders:       a.cfg.StartReminders,
		DesktopNotifications: a.cfg.DesktopNotifications,
		Notifier:             notifier,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	ticker := scheduler.NewTicker(time.Local)
	if _, err := ticker.Every(time.Duration(a.cfg.RefreshSeconds)*time.Second, func() {
		program.Send(update.RefreshMsg{At: time.Now()})
	}); err != nil {
		return err
	}
	if _, err := ticker.Daily(model.MidnightClock, func() {
		program.Send(update.DayRolloverMsg{At: time.Now()})
	}); err != nil {
		return err
	}
	ticker.Start()
	defer ticker.Stop()

	slog.Info("dashboard started", "refresh_seconds", a.cfg.RefreshSeconds, "start_reminders", a.cfg.StartReminders)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	slog.Info("dashboard stopped", "dropped_start_events", engine.Dropped())
	return nil
}
