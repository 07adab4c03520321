package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"texteditor/editor"
)

// Command is a host-level action that does not go to the engine.
type Command int

const (
	CmdNone Command = iota
	CmdSave
	CmdQuit
	CmdGotoLine
	CmdLanguage
	CmdToggleBreakpoint
	CmdToggleWhitespace
	CmdNextError
)

// TranslateKey maps a key event to engine intents or a host command.
func TranslateKey(ev *tcell.EventKey) ([]editor.Intent, Command) {
	mod := ev.Modifiers()
	shift := mod&tcell.ModShift != 0
	ctrl := mod&tcell.ModCtrl != 0

	move := func(d editor.Direction) []editor.Intent {
		return []editor.Intent{editor.Move{Dir: d, Select: shift, Word: ctrl}}
	}

	switch ev.Key() {
	case tcell.KeyCtrlS:
		return nil, CmdSave
	case tcell.KeyCtrlQ:
		return nil, CmdQuit
	case tcell.KeyCtrlG:
		return nil, CmdGotoLine
	case tcell.KeyCtrlL:
		return nil, CmdLanguage
	case tcell.KeyCtrlW:
		return nil, CmdToggleWhitespace
	case tcell.KeyF9:
		return nil, CmdToggleBreakpoint
	case tcell.KeyF8:
		return nil, CmdNextError

	case tcell.KeyUp:
		return move(editor.Up), CmdNone
	case tcell.KeyDown:
		return move(editor.Down), CmdNone
	case tcell.KeyLeft:
		return move(editor.Left), CmdNone
	case tcell.KeyRight:
		return move(editor.Right), CmdNone
	case tcell.KeyHome:
		if ctrl {
			return []editor.Intent{editor.Move{Dir: editor.Top, Select: shift}}, CmdNone
		}
		return move(editor.Home), CmdNone
	case tcell.KeyEnd:
		if ctrl {
			return []editor.Intent{editor.Move{Dir: editor.Bottom, Select: shift}}, CmdNone
		}
		return move(editor.End), CmdNone
	case tcell.KeyPgUp:
		return move(editor.PageUp), CmdNone
	case tcell.KeyPgDn:
		return move(editor.PageDown), CmdNone

	case tcell.KeyEnter:
		return []editor.Intent{editor.InsertChar{Char: '\n'}}, CmdNone
	case tcell.KeyTab:
		return []editor.Intent{editor.InsertChar{Char: '\t', Shift: shift}}, CmdNone
	case tcell.KeyBacktab:
		return []editor.Intent{editor.InsertChar{Char: '\t', Shift: true}}, CmdNone
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []editor.Intent{editor.Backspace}, CmdNone
	case tcell.KeyDelete:
		return []editor.Intent{editor.Delete}, CmdNone
	case tcell.KeyInsert:
		return []editor.Intent{editor.ToggleOverwrite}, CmdNone

	case tcell.KeyCtrlZ:
		return []editor.Intent{editor.Undo}, CmdNone
	case tcell.KeyCtrlY:
		return []editor.Intent{editor.Redo}, CmdNone
	case tcell.KeyCtrlC:
		return []editor.Intent{editor.Copy}, CmdNone
	case tcell.KeyCtrlX:
		return []editor.Intent{editor.Cut}, CmdNone
	case tcell.KeyCtrlV:
		return []editor.Intent{editor.Paste}, CmdNone
	case tcell.KeyCtrlA:
		return []editor.Intent{editor.SelectAll}, CmdNone

	case tcell.KeyRune:
		if mod&tcell.ModAlt != 0 {
			return nil, CmdNone
		}
		return []editor.Intent{editor.InsertChar{Char: ev.Rune()}}, CmdNone
	}
	return nil, CmdNone
}

// DoubleClickTime is the longest gap between presses that still counts
// towards a double or triple click.
const DoubleClickTime = 400 * time.Millisecond

// MouseTracker turns raw button state into click and drag intents,
// counting repeated presses on the same cell.
type MouseTracker struct {
	// Now defaults to time.Now.
	Now func() time.Time

	down         bool
	count        int
	last         time.Time
	lastX, lastY int
}

// Translate converts ev into an intent relative to origin, or nil when the
// event does not concern the primary button.
func (m *MouseTracker) Translate(ev *tcell.EventMouse, origin Region) editor.Intent {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	x, y := ev.Position()
	lx, ly := float64(x-origin.X), float64(y-origin.Y)

	if ev.Buttons()&tcell.Button1 == 0 {
		m.down = false
		return nil
	}
	if m.down {
		return editor.Drag{X: lx, Y: ly}
	}
	m.down = true

	t := now()
	if m.count > 0 && m.count < 3 && x == m.lastX && y == m.lastY && t.Sub(m.last) <= DoubleClickTime {
		m.count++
	} else {
		m.count = 1
	}
	m.last, m.lastX, m.lastY = t, x, y
	return editor.Click{X: lx, Y: ly, Count: m.count, Ctrl: ev.Modifiers()&tcell.ModCtrl != 0}
}
