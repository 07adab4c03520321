package ui

import (
	"github.com/gdamore/tcell/v2"

	"texteditor/palette"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogGotoLine
	DialogInput // generic text input
)

// Dialog is a one-line prompt drawn over the status bar.
type Dialog struct {
	Type   DialogType
	Prompt string
	Input  string
	Cursor int // in runes

	Palette palette.Palette

	OnSubmit func(value string)
	OnCancel func()
}

func NewGotoLineDialog() *Dialog {
	return &Dialog{Type: DialogGotoLine, Prompt: "Go to line: ", Palette: palette.Dark()}
}

func NewInputDialog(prompt, initial string) *Dialog {
	return &Dialog{
		Type:    DialogInput,
		Prompt:  prompt,
		Input:   initial,
		Cursor:  len([]rune(initial)),
		Palette: palette.Dark(),
	}
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width int) {
	p := d.Palette
	style := tcell.StyleDefault.Background(p.Color(palette.Selection)).Foreground(p.Color(palette.Cursor))
	promptStyle := style.Foreground(p.Color(palette.Keyword)).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range d.Prompt {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, promptStyle)
			col++
		}
	}

	runes := []rune(d.Input)
	for i, ch := range runes {
		if col >= x+width {
			break
		}
		st := style
		if i == d.Cursor {
			st = st.Reverse(true)
		}
		screen.SetContent(col, y, ch, nil, st)
		col++
	}
	if d.Cursor >= len(runes) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
	}
}

// HandleKey edits the input line. It reports whether the key was consumed,
// which is always the case while the dialog is open.
func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	runes := []rune(d.Input)
	switch ev.Key() {
	case tcell.KeyEscape:
		if d.OnCancel != nil {
			d.OnCancel()
		}
	case tcell.KeyEnter:
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.Cursor > 0 {
			d.Input = string(runes[:d.Cursor-1]) + string(runes[d.Cursor:])
			d.Cursor--
		}
	case tcell.KeyDelete:
		if d.Cursor < len(runes) {
			d.Input = string(runes[:d.Cursor]) + string(runes[d.Cursor+1:])
		}
	case tcell.KeyLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
	case tcell.KeyRight:
		if d.Cursor < len(runes) {
			d.Cursor++
		}
	case tcell.KeyHome:
		d.Cursor = 0
	case tcell.KeyEnd:
		d.Cursor = len(runes)
	case tcell.KeyRune:
		ch := ev.Rune()
		if d.Type == DialogGotoLine && (ch < '0' || ch > '9') {
			return true
		}
		d.Input = string(runes[:d.Cursor]) + string(ch) + string(runes[d.Cursor:])
		d.Cursor++
	}
	return true
}
