package editor

import "texteditor/buffer"

// extendFromStart moves whichever anchor sat at old to the cursor, for
// motions that grow the selection towards the buffer start.
func (e *Editor) extendFromStart(old buffer.Coordinates, selecting bool) {
	cur := e.state.Cursor
	switch {
	case !selecting:
		e.interactiveStart, e.interactiveEnd = cur, cur
	case old == e.interactiveStart:
		e.interactiveStart = cur
	case old == e.interactiveEnd:
		e.interactiveEnd = cur
	default:
		e.interactiveStart, e.interactiveEnd = cur, old
	}
}

// extendFromEnd is extendFromStart for motions towards the buffer end.
func (e *Editor) extendFromEnd(old buffer.Coordinates, selecting bool) {
	cur := e.state.Cursor
	switch {
	case !selecting:
		e.interactiveStart, e.interactiveEnd = cur, cur
	case old == e.interactiveEnd:
		e.interactiveEnd = cur
	case old == e.interactiveStart:
		e.interactiveStart = cur
	default:
		e.interactiveStart, e.interactiveEnd = old, cur
	}
}

// MoveUp keeps the cursor's column even when the target line is shorter,
// so that moving on through longer lines lands in the original column.
func (e *Editor) MoveUp(amount int, selecting bool) {
	old := e.state.Cursor
	e.state.Cursor.Line = max(0, e.state.Cursor.Line-amount)
	if e.state.Cursor == old {
		return
	}
	e.cursorPositionChanged = true
	e.extendFromStart(old, selecting)
	e.SetSelection(e.interactiveStart, e.interactiveEnd, Normal)
	e.scrollToCursor = true
}

func (e *Editor) MoveDown(amount int, selecting bool) {
	old := e.state.Cursor
	e.state.Cursor.Line = max(0, min(e.buf.LineCount()-1, e.state.Cursor.Line+amount))
	if e.state.Cursor == old {
		return
	}
	e.cursorPositionChanged = true
	e.extendFromEnd(old, selecting)
	e.SetSelection(e.interactiveStart, e.interactiveEnd, Normal)
	e.scrollToCursor = true
}

func (e *Editor) MoveLeft(amount int, selecting, wordMode bool) {
	old := e.state.Cursor
	e.state.Cursor = e.CursorPosition()
	line := e.state.Cursor.Line
	i := e.buf.CharacterIndex(e.state.Cursor)

	for ; amount > 0; amount-- {
		if i == 0 {
			if line > 0 {
				line--
				i = len(e.buf.Lines[line])
			}
		} else {
			i--
			for i > 0 && isContinuation(e.buf.Lines[line][i].Char) {
				i--
			}
		}
		e.state.Cursor = buffer.Coordinates{Line: line, Column: e.buf.CharacterColumn(line, i)}
		if wordMode {
			e.state.Cursor = e.FindWordStart(e.state.Cursor)
			i = e.buf.CharacterIndex(e.state.Cursor)
		}
	}
	e.state.Cursor = buffer.Coordinates{Line: line, Column: e.buf.CharacterColumn(line, i)}
	if e.state.Cursor != old {
		e.cursorPositionChanged = true
	}

	e.extendFromStart(old, selecting)
	mode := Normal
	if selecting && wordMode {
		mode = Word
	}
	e.SetSelection(e.interactiveStart, e.interactiveEnd, mode)
	e.scrollToCursor = true
}

func (e *Editor) MoveRight(amount int, selecting, wordMode bool) {
	old := e.state.Cursor
	e.state.Cursor = e.CursorPosition()
	i := e.buf.CharacterIndex(e.state.Cursor)

	for ; amount > 0; amount-- {
		ln := e.state.Cursor.Line
		line := e.buf.Lines[ln]
		if i >= len(line) {
			if ln >= e.buf.LineCount()-1 {
				break
			}
			e.state.Cursor = buffer.Coordinates{Line: ln + 1}
			i = 0
			continue
		}
		i = min(i+e.buf.CharLen(line[i].Char), len(line))
		e.state.Cursor = buffer.Coordinates{Line: ln, Column: e.buf.CharacterColumn(ln, i)}
		if wordMode {
			e.state.Cursor = e.FindNextWord(e.state.Cursor)
			i = e.buf.CharacterIndex(e.state.Cursor)
		}
	}
	if e.state.Cursor != old {
		e.cursorPositionChanged = true
	}

	e.extendFromEnd(old, selecting)
	mode := Normal
	if selecting && wordMode {
		mode = Word
	}
	e.SetSelection(e.interactiveStart, e.interactiveEnd, mode)
	e.scrollToCursor = true
}

func (e *Editor) MoveTop(selecting bool) {
	old := e.state.Cursor
	e.setCursor(buffer.Coordinates{})
	if e.state.Cursor == old {
		return
	}
	if selecting {
		e.interactiveStart, e.interactiveEnd = e.state.Cursor, old
	} else {
		e.interactiveStart, e.interactiveEnd = e.state.Cursor, e.state.Cursor
	}
	e.SetSelection(e.interactiveStart, e.interactiveEnd, Normal)
}

func (e *Editor) MoveBottom(selecting bool) {
	old := e.CursorPosition()
	pos := buffer.Coordinates{Line: e.buf.LineCount() - 1}
	e.setCursor(pos)
	if selecting {
		e.interactiveStart, e.interactiveEnd = old, pos
	} else {
		e.interactiveStart, e.interactiveEnd = pos, pos
	}
	e.SetSelection(e.interactiveStart, e.interactiveEnd, Normal)
}

func (e *Editor) MoveHome(selecting bool) {
	old := e.state.Cursor
	e.setCursor(buffer.Coordinates{Line: old.Line})
	if e.state.Cursor == old {
		return
	}
	e.extendFromStart(old, selecting)
	e.SetSelection(e.interactiveStart, e.interactiveEnd, Normal)
}

func (e *Editor) MoveEnd(selecting bool) {
	old := e.state.Cursor
	e.setCursor(buffer.Coordinates{Line: old.Line, Column: e.buf.LineMaxColumn(old.Line)})
	if e.state.Cursor == old {
		return
	}
	e.extendFromEnd(old, selecting)
	e.SetSelection(e.interactiveStart, e.interactiveEnd, Normal)
}

// PageSize is the number of whole lines the viewport shows.
func (e *Editor) PageSize() int {
	h := e.lineHeight()
	if h <= 0 {
		return 1
	}
	return max(1, int(e.View.Height/h))
}

func (e *Editor) PageUp(selecting bool) {
	e.MoveUp(max(1, e.PageSize()-4), selecting)
}

func (e *Editor) PageDown(selecting bool) {
	e.MoveDown(max(1, e.PageSize()-4), selecting)
}
