package ui

import (
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"texteditor/editor"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name    string
		ev      *tcell.EventKey
		intents []editor.Intent
		cmd     Command
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
			[]editor.Intent{editor.InsertChar{Char: 'x'}}, CmdNone},
		{"shift left selects", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift),
			[]editor.Intent{editor.Move{Dir: editor.Left, Select: true}}, CmdNone},
		{"ctrl right jumps words", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl),
			[]editor.Intent{editor.Move{Dir: editor.Right, Word: true}}, CmdNone},
		{"ctrl home", tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl),
			[]editor.Intent{editor.Move{Dir: editor.Top}}, CmdNone},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
			[]editor.Intent{editor.InsertChar{Char: '\n'}}, CmdNone},
		{"backtab outdents", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone),
			[]editor.Intent{editor.InsertChar{Char: '\t', Shift: true}}, CmdNone},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone),
			[]editor.Intent{editor.Backspace}, CmdNone},
		{"undo", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl),
			[]editor.Intent{editor.Undo}, CmdNone},
		{"insert toggles overwrite", tcell.NewEventKey(tcell.KeyInsert, 0, tcell.ModNone),
			[]editor.Intent{editor.ToggleOverwrite}, CmdNone},
		{"save", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), nil, CmdSave},
		{"breakpoint", tcell.NewEventKey(tcell.KeyF9, 0, tcell.ModNone), nil, CmdToggleBreakpoint},
		{"alt rune ignored", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), nil, CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intents, cmd := TranslateKey(tt.ev)
			if !reflect.DeepEqual(intents, tt.intents) {
				t.Fatalf("got intents %#v, want %#v", intents, tt.intents)
			}
			if cmd != tt.cmd {
				t.Fatalf("got command %d, want %d", cmd, tt.cmd)
			}
		})
	}
}

func TestMouseTrackerCountsClicks(t *testing.T) {
	now := time.Unix(0, 0)
	m := &MouseTracker{Now: func() time.Time { return now }}
	press := tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone)
	release := tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone)

	for want := 1; want <= 3; want++ {
		in := m.Translate(press, Region{X: 1})
		c, ok := in.(editor.Click)
		if !ok {
			t.Fatalf("press %d: got %#v, want a click", want, in)
		}
		if c.Count != want || c.X != 4 || c.Y != 2 {
			t.Fatalf("press %d: got %+v", want, c)
		}
		if m.Translate(release, Region{X: 1}) != nil {
			t.Fatalf("release should not produce an intent")
		}
		now = now.Add(100 * time.Millisecond)
	}

	now = now.Add(time.Second)
	if c := m.Translate(press, Region{}).(editor.Click); c.Count != 1 {
		t.Fatalf("slow press should start a new click, got count %d", c.Count)
	}
}

func TestMouseTrackerDrag(t *testing.T) {
	m := &MouseTracker{}
	m.Translate(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone), Region{})
	in := m.Translate(tcell.NewEventMouse(7, 3, tcell.Button1, tcell.ModNone), Region{})
	if d, ok := in.(editor.Drag); !ok || d.X != 7 || d.Y != 3 {
		t.Fatalf("got %#v, want a drag to (7,3)", in)
	}
}
