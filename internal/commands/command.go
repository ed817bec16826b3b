// Package commands parses and dispatches the palette commands typed into
// the dashboard.
package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

type Type string

const (
	TypeToggle   Type = "toggle"
	TypeGoto     Type = "goto"
	TypeTheme    Type = "theme"
	TypeShow     Type = "show"
	TypeAdd      Type = "add"
	TypeRemove   Type = "remove"
	TypeCategory Type = "category"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// Target names a task either by its 1-based position in the list on screen
// or by id.
type Target struct {
	Index  int
	TaskID string
}

type ToggleArgs struct {
	Target Target
}

// GotoArgs moves the viewed date. Exactly one form is set: Today, a
// relative Offset in days, or an absolute Date.
type GotoArgs struct {
	Today  bool
	Offset int
	Date   time.Time
}

// Resolve returns the date the command points at, given the date on
// screen and today.
func (g GotoArgs) Resolve(current, today time.Time) time.Time {
	switch {
	case g.Today:
		return model.StartOfDay(today)
	case !g.Date.IsZero():
		return g.Date
	default:
		return model.StartOfDay(current).AddDate(0, 0, g.Offset)
	}
}

// ThemeArgs selects a theme; an empty Theme cycles to the next one.
type ThemeArgs struct {
	Theme model.Theme
}

type Screen string

const (
	ScreenToday      Screen = "today"
	ScreenAnalytics  Screen = "analytics"
	ScreenCategories Screen = "categories"
)

type ShowArgs struct {
	Screen Screen
}

// AddArgs appends a task to a template. Start and End are empty when the
// caller should suggest a slot.
type AddArgs struct {
	Day   string
	Start string
	End   string
	Name  string
}

type RemoveArgs struct {
	Day    string
	Target Target
}

type CategoryAction string

const (
	CategoryAdd    CategoryAction = "add"
	CategoryRename CategoryAction = "rename"
	CategoryDelete CategoryAction = "delete"
)

type CategoryArgs struct {
	Action CategoryAction
	ID     string
	Name   string
	Color  string
}

type Command struct {
	Type     Type
	Raw      string
	Toggle   *ToggleArgs
	Goto     *GotoArgs
	Theme    *ThemeArgs
	Show     *ShowArgs
	Add      *AddArgs
	Remove   *RemoveArgs
	Category *CategoryArgs
}

var (
	slotPattern  = regexp.MustCompile(`^(\d{1,2}:\d{2})-(\d{1,2}:\d{2})$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeToggle:
		return parseToggle(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeAdd:
		return parseAdd(input, args)
	case TypeRemove:
		return parseRemove(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseTarget(raw string) (Target, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return Target{}, invalid("task number must be positive, got %d", n)
		}
		return Target{Index: n}, nil
	}
	return Target{TaskID: raw}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("toggle requires a task number or id")
	}
	target, err := parseTarget(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{Target: target}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goto requires a date, today, +N or -N")
	}
	arg := strings.ToLower(args[0])
	switch {
	case arg == "today":
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Today: true}}, nil
	case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Command{}, invalid("invalid day offset %q", args[0])
		}
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Offset: n}}, nil
	default:
		d, err := model.ParseDateKey(arg)
		if err != nil {
			return Command{}, invalid("invalid date %q, expected YYYY-MM-DD", args[0])
		}
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: d}}, nil
	}
}

func parseTheme(raw string, args []string) (Command, error) {
	switch len(args) {
	case 0:
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{}}, nil
	case 1:
		theme, err := model.ParseTheme(strings.ToLower(args[0]))
		if err != nil {
			return Command{}, invalid("unknown theme %q", args[0])
		}
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
	default:
		return Command{}, invalid("theme takes at most one argument")
	}
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("show requires today, analytics or categories")
	}
	screen := Screen(strings.ToLower(args[0]))
	switch screen {
	case ScreenToday, ScreenAnalytics, ScreenCategories:
		return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Screen: screen}}, nil
	default:
		return Command{}, invalid("unknown screen %q", args[0])
	}
}

// parseDay maps a weekday name, its three-letter abbreviation or
// "default" to a template key.
func parseDay(raw string) (string, error) {
	lower := strings.ToLower(raw)
	for _, key := range model.TemplateKeys() {
		k := strings.ToLower(key)
		if lower == k || (len(lower) == 3 && strings.HasPrefix(k, lower) && key != model.DefaultTemplateKey) {
			return key, nil
		}
	}
	return "", invalid("unknown day %q", raw)
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("add requires a day and a name")
	}
	day, err := parseDay(args[0])
	if err != nil {
		return Command{}, err
	}
	add := AddArgs{Day: day}
	rest := args[1:]
	if m := slotPattern.FindStringSubmatch(rest[0]); m != nil {
		start, errStart := normalizeClock(m[1])
		end, errEnd := normalizeClock(m[2])
		if errStart != nil || errEnd != nil {
			return Command{}, invalid("invalid time range %q", rest[0])
		}
		add.Start, add.End = start, end
		rest = rest[1:]
	}
	add.Name = strings.TrimSpace(strings.Join(rest, " "))
	if add.Name == "" {
		return Command{}, invalid("add requires a name")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func normalizeClock(raw string) (string, error) {
	minutes, err := model.ParseClock(raw)
	if err != nil {
		return "", err
	}
	return model.FormatClock(minutes), nil
}

func parseRemove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("remove requires a day and a task number or id")
	}
	day, err := parseDay(args[0])
	if err != nil {
		return Command{}, err
	}
	target, err := parseTarget(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeRemove, Raw: raw, Remove: &RemoveArgs{Day: day, Target: target}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("category requires add, rename or delete")
	}
	action := CategoryAction(strings.ToLower(args[0]))
	args = args[1:]
	switch action {
	case CategoryAdd:
		if len(args) < 2 {
			return Command{}, invalid("category add requires a name and a #RRGGBB color")
		}
		color := args[len(args)-1]
		if !colorPattern.MatchString(color) {
			return Command{}, invalid("invalid color %q, expected #RRGGBB", color)
		}
		name := strings.Join(args[:len(args)-1], " ")
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Action: action, Name: name, Color: strings.ToUpper(color)}}, nil
	case CategoryRename:
		if len(args) < 2 {
			return Command{}, invalid("category rename requires an id and a name")
		}
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Action: action, ID: args[0], Name: strings.Join(args[1:], " ")}}, nil
	case CategoryDelete:
		if len(args) != 1 {
			return Command{}, invalid("category delete requires an id")
		}
		return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Action: action, ID: args[0]}}, nil
	default:
		return Command{}, invalid("unknown category action %q", action)
	}
}
