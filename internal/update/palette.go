package update

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/commands"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/routine"
	"github.com/masum-007/Zenith-Routine-Dashboard/internal/views"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			task, err := m.resolveVisibleTask(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.toggleTask(task); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			m.Date = a.Resolve(m.Date, m.now())
			m.Today.Cursor = 0
			m.CurrentView = ViewToday
			m.reload()
			return commands.Result{Message: "showing " + model.DateKey(m.Date)}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			theme := a.Theme
			if theme == "" {
				theme = m.Theme.Next()
			}
			if err := m.setTheme(theme); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "theme: " + string(theme)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			m = m.switchView(viewForScreen(a.Screen))
			return commands.Result{Message: "view: " + string(m.CurrentView)}, nil
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.addTask(a)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %s to %s (%s-%s)", task.Name, a.Day, task.StartTime, task.EndTime)}, nil
		},
		Remove: func(a commands.RemoveArgs) (commands.Result, error) {
			task, err := m.removeTask(a)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("removed %s from %s", task.Name, a.Day)}, nil
		},
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			var (
				text string
				err  error
			)
			switch a.Action {
			case commands.CategoryAdd:
				text, err = m.addCategory(a.Name, a.Color)
			case commands.CategoryRename:
				text, err = m.renameCategory(a.ID, a.Name)
			case commands.CategoryDelete:
				text, err = m.deleteCategory(a.ID)
			}
			return commands.Result{Message: text}, err
		},
	})
	if err != nil {
		m.setError(err)
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func viewForScreen(s commands.Screen) View {
	switch s {
	case commands.ScreenAnalytics:
		return ViewAnalytics
	case commands.ScreenCategories:
		return ViewCategories
	default:
		return ViewToday
	}
}

func (m Model) resolveVisibleTask(target commands.Target) (model.DisplayTask, error) {
	if target.Index > 0 {
		if target.Index > len(m.Today.Tasks) {
			return model.DisplayTask{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%d on %s", target.Index, model.DateKey(m.Date))}
		}
		return m.Today.Tasks[target.Index-1], nil
	}
	for _, t := range m.Today.Tasks {
		if t.ID == target.TaskID {
			return t, nil
		}
	}
	return model.DisplayTask{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("task %q is not scheduled on %s", target.TaskID, model.DateKey(m.Date))}
}

// addTask appends a task to a template. Without explicit times it takes the
// slot after the day's latest task.
func (m *Model) addTask(a commands.AddArgs) (model.Task, error) {
	tasks, _ := m.svc.Store.Template(a.Day)
	task := model.Task{Name: a.Name, StartTime: a.Start, EndTime: a.End, Category: model.UncategorizedID}
	if a.Start == "" {
		slot := routine.SuggestSlot(tasks)
		task.StartTime, task.EndTime, task.Category = slot.StartTime, slot.EndTime, slot.Category
	}
	task.ID = model.NewTaskID()
	saved, err := m.svc.Store.SaveRoutineTemplate(m.ctx, a.Day, append(tasks, task))
	if err != nil {
		return model.Task{}, err
	}
	m.afterTemplateChange()
	return saved[len(saved)-1], nil
}

// removeTask deletes a task from a template. A numeric target counts in
// start-time order, the same order the Today panel numbers tasks.
func (m *Model) removeTask(a commands.RemoveArgs) (model.Task, error) {
	tasks, ok := m.svc.Store.Template(a.Day)
	if !ok {
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s has no template", a.Day)}
	}
	pos := -1
	switch {
	case a.Target.TaskID != "":
		pos = slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == a.Target.TaskID })
	case a.Target.Index > 0 && a.Target.Index <= len(tasks):
		pos = routine.DisplayOrder(tasks)[a.Target.Index-1]
	}
	if pos < 0 {
		return model.Task{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no such task in %s", a.Day)}
	}
	removed := tasks[pos]
	tasks = append(tasks[:pos], tasks[pos+1:]...)
	if _, err := m.svc.Store.SaveRoutineTemplate(m.ctx, a.Day, tasks); err != nil {
		return model.Task{}, err
	}
	m.afterTemplateChange()
	return removed, nil
}

func (m *Model) afterTemplateChange() {
	m.reload()
	m.scheduleStarts()
}

func (m *Model) setTheme(theme model.Theme) error {
	settings := m.svc.Store.LoadSettings()
	settings.Theme = string(theme)
	if err := m.svc.Store.SaveSettings(m.ctx, settings); err != nil {
		return err
	}
	m.Theme = theme
	m.styles = views.NewStyles(string(theme))
	m.initBubbleComponents()
	m.syncNotes()
	return nil
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}
