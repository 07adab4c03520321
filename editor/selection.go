package editor

import "texteditor/buffer"

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// isContinuation reports a UTF-8 trailing byte (10xxxxxx).
func isContinuation(c byte) bool { return c&0xC0 == 0x80 }

// sameWord reports whether two glyphs belong to the same word: the same
// style when colorizing, the same side of a whitespace transition
// otherwise.
func (e *Editor) sameWord(a, b buffer.Glyph) bool {
	if e.colorizer.Enabled {
		return a.Color == b.Color
	}
	return isSpace(a.Char) == isSpace(b.Char)
}

// CursorPosition returns the cursor clamped to the buffer.
func (e *Editor) CursorPosition() buffer.Coordinates {
	return e.buf.Sanitize(e.state.Cursor)
}

// SetCursorPosition moves the cursor without touching the selection.
func (e *Editor) SetCursorPosition(c buffer.Coordinates) {
	e.setCursor(e.buf.Sanitize(c))
}

func (e *Editor) setCursor(c buffer.Coordinates) {
	if e.state.Cursor != c {
		e.state.Cursor = c
		e.cursorPositionChanged = true
		e.scrollToCursor = true
	}
}

func (e *Editor) Selection() buffer.Selection { return e.state.Selection }

func (e *Editor) HasSelection() bool {
	return e.state.Selection.Start.Before(e.state.Selection.End)
}

// SetSelection clamps and orders start and end, then snaps them according
// to mode.
func (e *Editor) SetSelection(start, end buffer.Coordinates, mode SelectionMode) {
	old := e.state.Selection
	sel := buffer.NewSelection(e.buf.Sanitize(start), e.buf.Sanitize(end))

	switch mode {
	case Word:
		sel.Start = e.FindWordStart(sel.Start)
		if !e.IsOnWordBoundary(sel.End) {
			sel.End = e.FindWordEnd(e.FindWordStart(sel.End))
		}
	case Line:
		sel.Start = buffer.Coordinates{Line: sel.Start.Line}
		sel.End = buffer.Coordinates{Line: sel.End.Line, Column: e.buf.LineMaxColumn(sel.End.Line)}
	}

	e.state.Selection = sel
	if sel != old {
		e.cursorPositionChanged = true
	}
}

func (e *Editor) SelectAll() {
	e.SetSelection(buffer.Coordinates{}, buffer.Coordinates{Line: e.buf.LineCount()}, Normal)
}

func (e *Editor) SelectWordUnderCursor() {
	c := e.CursorPosition()
	e.SetSelection(e.FindWordStart(c), e.FindWordEnd(c), Normal)
}

// FindWordStart walks left from c to the first glyph of its word.
func (e *Editor) FindWordStart(c buffer.Coordinates) buffer.Coordinates {
	if c.Line < 0 || c.Line >= e.buf.LineCount() {
		return c
	}
	line := e.buf.Lines[c.Line]
	i := e.buf.CharacterIndex(c)
	if i >= len(line) {
		return c
	}

	for i > 0 && isSpace(line[i].Char) {
		i--
	}
	start := line[i]
	for i > 0 {
		ch := line[i].Char
		if !isContinuation(ch) {
			if isSpace(ch) {
				i++
				break
			}
			if !e.sameWord(start, line[i-1]) {
				break
			}
		}
		i--
	}
	return buffer.Coordinates{Line: c.Line, Column: e.buf.CharacterColumn(c.Line, i)}
}

// FindWordEnd walks right from c past the end of its word. Trailing
// whitespace after a run of whitespace is consumed too.
func (e *Editor) FindWordEnd(c buffer.Coordinates) buffer.Coordinates {
	if c.Line < 0 || c.Line >= e.buf.LineCount() {
		return c
	}
	line := e.buf.Lines[c.Line]
	i := e.buf.CharacterIndex(c)
	if i >= len(line) {
		return c
	}

	prevSpace := isSpace(line[i].Char)
	start := line[i]
	for i < len(line) {
		ch := line[i].Char
		if !e.sameWord(start, line[i]) {
			break
		}
		if prevSpace != isSpace(ch) {
			if isSpace(ch) {
				for i < len(line) && isSpace(line[i].Char) {
					i++
				}
			}
			break
		}
		i += e.buf.CharLen(ch)
	}
	i = min(i, len(line))
	return buffer.Coordinates{Line: c.Line, Column: e.buf.CharacterColumn(c.Line, i)}
}

// FindNextWord returns the start of the next alphanumeric run after c,
// crossing lines. Past the last word it returns the end of the buffer.
func (e *Editor) FindNextWord(c buffer.Coordinates) buffer.Coordinates {
	at := c
	if at.Line < 0 || at.Line >= e.buf.LineCount() {
		return at
	}

	i := e.buf.CharacterIndex(c)
	isWord, skip := false, false
	if line := e.buf.Lines[at.Line]; i < len(line) {
		isWord = isAlnum(line[i].Char)
		skip = isWord
	}

	for !isWord || skip {
		if at.Line >= e.buf.LineCount() {
			last := e.buf.LineCount() - 1
			return buffer.Coordinates{Line: last, Column: e.buf.LineMaxColumn(last)}
		}
		line := e.buf.Lines[at.Line]
		if i < len(line) {
			isWord = isAlnum(line[i].Char)
			if isWord && !skip {
				return buffer.Coordinates{Line: at.Line, Column: e.buf.CharacterColumn(at.Line, i)}
			}
			if !isWord {
				skip = false
			}
			i++
		} else {
			i = 0
			at.Line++
			skip = false
			isWord = false
		}
	}
	return at
}

// IsOnWordBoundary reports whether c sits between two words.
func (e *Editor) IsOnWordBoundary(c buffer.Coordinates) bool {
	c = e.buf.Sanitize(c)
	if c.Column == 0 {
		return true
	}
	line := e.buf.Lines[c.Line]
	i := e.buf.CharacterIndex(c)
	if i >= len(line) || i == 0 {
		return true
	}
	return !e.sameWord(line[i], line[i-1])
}
