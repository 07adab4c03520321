package editor

// Intent is one decoded input event. Hosts translate their platform events
// into intents and pass them to Update or HandleIntent.
type Intent interface {
	apply(e *Editor)
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	Home
	End
	Top
	Bottom
	PageUp
	PageDown
)

// Move moves the cursor. Amount applies to Up, Down, Left and Right and
// defaults to one. Word makes Left and Right jump by words.
type Move struct {
	Dir    Direction
	Amount int
	Select bool
	Word   bool
}

func (m Move) apply(e *Editor) {
	n := max(1, m.Amount)
	switch m.Dir {
	case Up:
		e.MoveUp(n, m.Select)
	case Down:
		e.MoveDown(n, m.Select)
	case Left:
		e.MoveLeft(n, m.Select, m.Word)
	case Right:
		e.MoveRight(n, m.Select, m.Word)
	case Home:
		e.MoveHome(m.Select)
	case End:
		e.MoveEnd(m.Select)
	case Top:
		e.MoveTop(m.Select)
	case Bottom:
		e.MoveBottom(m.Select)
	case PageUp:
		e.PageUp(m.Select)
	case PageDown:
		e.PageDown(m.Select)
	}
}

// InsertChar types a character. Control characters other than tab and
// newline are dropped.
type InsertChar struct {
	Char  rune
	Shift bool
}

func (c InsertChar) apply(e *Editor) {
	if e.IsReadOnly() {
		return
	}
	if c.Char == '\t' || c.Char == '\n' || c.Char >= 32 {
		e.EnterCharacter(c.Char, c.Shift)
	}
}

type Action int

const (
	Delete Action = iota
	Backspace
	Undo
	Redo
	Copy
	Cut
	Paste
	SelectAll
	ToggleOverwrite
)

func (a Action) apply(e *Editor) {
	ro := e.IsReadOnly()
	switch a {
	case Delete:
		if !ro {
			e.Delete()
		}
	case Backspace:
		if !ro {
			e.Backspace()
		}
	case Undo:
		e.Undo(1)
	case Redo:
		e.Redo(1)
	case Copy:
		e.Copy()
	case Cut:
		e.Cut()
	case Paste:
		e.Paste()
	case SelectAll:
		e.SelectAll()
	case ToggleOverwrite:
		e.overwrite = !e.overwrite
	}
}

// Click is a primary button press at a viewport position. Count is 1 for
// a single click, 2 for a double click and 3 for a triple click.
type Click struct {
	X, Y  float64
	Count int
	Ctrl  bool
}

func (c Click) apply(e *Editor) {
	pos := e.ScreenPosToCoordinates(c.X, c.Y)
	switch {
	case c.Count >= 3:
		if c.Ctrl {
			return
		}
		e.selectionMode = Line
	case c.Count == 2:
		if c.Ctrl {
			return
		}
		if e.selectionMode == Line {
			e.selectionMode = Normal
		} else {
			e.selectionMode = Word
		}
	default:
		if c.Ctrl {
			e.selectionMode = Word
		} else {
			e.selectionMode = Normal
		}
	}
	e.setCursor(pos)
	e.interactiveStart, e.interactiveEnd = pos, pos
	e.SetSelection(e.interactiveStart, e.interactiveEnd, e.selectionMode)
}

// Drag extends the selection from the last click to a viewport position.
type Drag struct {
	X, Y float64
}

func (d Drag) apply(e *Editor) {
	pos := e.ScreenPosToCoordinates(d.X, d.Y)
	e.setCursor(pos)
	e.interactiveEnd = pos
	e.SetSelection(e.interactiveStart, e.interactiveEnd, e.selectionMode)
}

// HandleIntent applies one intent immediately. Mutating intents are
// ignored on a read-only editor.
func (e *Editor) HandleIntent(in Intent) {
	if in != nil {
		in.apply(e)
	}
}
