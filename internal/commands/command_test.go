package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/masum-007/Zenith-Routine-Dashboard/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/toggle 2", TypeToggle},
		{"goto 2024-01-10", TypeGoto},
		{"theme light", TypeTheme},
		{"show analytics", TypeShow},
		{"add monday 06:00-07:00 Morning run", TypeAdd},
		{"remove default task-1", TypeRemove},
		{"category add Side Project #FF8800", TypeCategory},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "  ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("Parse(%q): expected empty input error, got %v", in, err)
		}
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"toggle",
		"toggle 0",
		"goto yesterday",
		"goto +x",
		"theme neon",
		"show settings",
		"add funday Nap",
		"add monday 06:00-07:00",
		"add monday 25:00-26:00 Late",
		"remove monday",
		"category add Work blue",
		"category rename cat-002",
		"category purge cat-002",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("Parse(%q): expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseToggleTarget(t *testing.T) {
	cmd, err := Parse("toggle 3")
	if err != nil || cmd.Toggle.Target.Index != 3 || cmd.Toggle.Target.TaskID != "" {
		t.Fatalf("unexpected toggle %+v, %v", cmd.Toggle, err)
	}
	cmd, err = Parse("toggle task-abc")
	if err != nil || cmd.Toggle.Target.TaskID != "task-abc" || cmd.Toggle.Target.Index != 0 {
		t.Fatalf("unexpected toggle %+v, %v", cmd.Toggle, err)
	}
}

func TestParseAdd(t *testing.T) {
	cmd, err := Parse("add Wed 7:30-8:00 Read a chapter")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := AddArgs{Day: "Wednesday", Start: "07:30", End: "08:00", Name: "Read a chapter"}
	if *cmd.Add != want {
		t.Fatalf("add = %+v, want %+v", *cmd.Add, want)
	}

	cmd, err = Parse("add default Stretch")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Day != model.DefaultTemplateKey || cmd.Add.Start != "" || cmd.Add.Name != "Stretch" {
		t.Fatalf("unexpected add %+v", *cmd.Add)
	}
}

func TestParseCategory(t *testing.T) {
	cmd, err := Parse("category add Side Project #ff8800")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Category.Name != "Side Project" || cmd.Category.Color != "#FF8800" || cmd.Category.Action != CategoryAdd {
		t.Fatalf("unexpected category %+v", *cmd.Category)
	}
	cmd, err = Parse("category rename cat-002 Deep Study")
	if err != nil || cmd.Category.ID != "cat-002" || cmd.Category.Name != "Deep Study" {
		t.Fatalf("unexpected rename %+v, %v", cmd.Category, err)
	}
}

func TestGotoResolve(t *testing.T) {
	current := time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local)
	today := time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local)

	cases := map[string]string{
		"goto today":      "2024-02-01",
		"goto +1":         "2024-01-11",
		"goto -10":        "2023-12-31",
		"goto 2024-03-05": "2024-03-05",
	}
	for in, want := range cases {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got := model.DateKey(cmd.Goto.Resolve(current, today)); got != want {
			t.Fatalf("%q resolved to %s, want %s", in, got, want)
		}
	}
}

func TestParseThemeCycle(t *testing.T) {
	cmd, err := Parse("theme")
	if err != nil || cmd.Theme.Theme != "" {
		t.Fatalf("expected cycle theme, got %+v, %v", cmd.Theme, err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add friday Review week")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Name != "Review week" || a.Day != "Friday" {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show today")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
