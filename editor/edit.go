package editor

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"texteditor/buffer"
)

func (e *Editor) mustBeWritable() {
	if e.buf.ReadOnly {
		panic(buffer.ErrReadOnly)
	}
}

func (e *Editor) collapseSelection(at buffer.Coordinates) {
	e.interactiveStart, e.interactiveEnd = at, at
	e.SetSelection(at, at, Normal)
}

// takeSelection records the selected text as removed by u and deletes it.
func (e *Editor) takeSelection(u *buffer.UndoRecord) {
	u.Removed = e.SelectedText()
	u.RemovedStart = e.state.Selection.Start
	u.RemovedEnd = e.state.Selection.End
	e.deleteSelection()
}

func (e *Editor) deleteSelection() {
	sel := buffer.NewSelection(e.buf.Sanitize(e.state.Selection.Start), e.buf.Sanitize(e.state.Selection.End))
	if sel.Empty() {
		return
	}
	e.buf.DeleteRange(sel.Start, sel.End)
	e.collapseSelection(sel.Start)
	e.setCursor(sel.Start)
}

// EnterCharacter types ch at the cursor, replacing the selection. A tab
// with a selection spanning several lines indents them instead, or
// outdents them when shift is held.
func (e *Editor) EnterCharacter(ch rune, shift bool) {
	e.mustBeWritable()

	u := buffer.UndoRecord{Before: e.state}
	if e.HasSelection() {
		if ch == '\t' && e.state.Selection.Start.Line != e.state.Selection.End.Line {
			e.indentSelection(u, shift)
			return
		}
		e.takeSelection(&u)
	}

	coord := e.CursorPosition()
	u.AddedStart = coord

	switch {
	case ch == '\n':
		text := "\n" + e.autoIndent(coord.Line)
		end, _ := e.buf.InsertTextAt(coord, text)
		u.Added = text
		e.setCursor(end)
	case ch == '\t' && e.expandTabs:
		// spaces up to the next tab stop
		text := strings.Repeat(" ", max(1, e.buf.NextColumn(coord.Column, '\t')-coord.Column))
		end, _ := e.buf.InsertTextAt(coord, text)
		u.Added = text
		e.setCursor(end)
	case utf8.ValidRune(ch):
		text := string(ch)
		line := e.buf.Lines[coord.Line]
		if i := e.buf.CharacterIndex(coord); e.overwrite && u.Removed == "" && i < len(line) {
			n := min(e.buf.CharLen(line[i].Char), len(line)-i)
			u.RemovedStart = coord
			u.RemovedEnd = buffer.Coordinates{Line: coord.Line, Column: e.buf.CharacterColumn(coord.Line, i+n)}
			u.Removed = e.buf.TextRange(u.RemovedStart, u.RemovedEnd)
			e.buf.DeleteRange(u.RemovedStart, u.RemovedEnd)
		}
		end, _ := e.buf.InsertTextAt(coord, text)
		u.Added = text
		e.setCursor(end)
	default:
		return
	}

	u.AddedEnd = e.CursorPosition()
	e.collapseSelection(u.AddedEnd)
	u.After = e.state
	e.undo.Push(u)
	e.scrollToCursor = true
}

func (e *Editor) autoIndent(line int) string {
	lang := e.colorizer.Language()
	if lang == nil || !lang.AutoIndentation {
		return ""
	}
	l := e.buf.Lines[line]
	n := 0
	for n < len(l) && (l[n].Char == ' ' || l[n].Char == '\t') {
		n++
	}
	return l[:n].String()
}

func (e *Editor) indentSelection(u buffer.UndoRecord, outdent bool) {
	start := e.state.Selection.Start
	end := e.state.Selection.End
	originalEnd := end

	start.Column = 0
	if end.Column == 0 && end.Line > 0 {
		end.Line--
	}
	end.Line = min(end.Line, e.buf.LineCount()-1)
	end.Column = e.buf.LineMaxColumn(end.Line)

	u.RemovedStart = start
	u.RemovedEnd = end
	u.Removed = e.buf.TextRange(start, end)

	indent := "\t"
	if e.expandTabs {
		indent = strings.Repeat(" ", max(1, e.buf.TabSize()))
	}
	modified := false
	for i := start.Line; i <= end.Line; i++ {
		line := e.buf.Lines[i]
		lineStart := buffer.Coordinates{Line: i}
		if !outdent {
			e.buf.InsertTextAt(lineStart, indent)
			modified = true
			continue
		}
		n := 0
		if len(line) > 0 && line[0].Char == '\t' {
			n = 1
		} else {
			for n < e.buf.TabSize() && n < len(line) && line[n].Char == ' ' {
				n++
			}
		}
		if n > 0 {
			e.buf.DeleteRange(lineStart, buffer.Coordinates{Line: i, Column: e.buf.CharacterColumn(i, n)})
			modified = true
		}
	}
	if !modified {
		return
	}

	var rangeEnd buffer.Coordinates
	if originalEnd.Column != 0 {
		end = buffer.Coordinates{Line: end.Line, Column: e.buf.LineMaxColumn(end.Line)}
		rangeEnd = end
	} else {
		end = buffer.Coordinates{Line: originalEnd.Line}
		rangeEnd = buffer.Coordinates{Line: end.Line - 1, Column: e.buf.LineMaxColumn(end.Line - 1)}
	}
	u.Added = e.buf.TextRange(start, rangeEnd)
	u.AddedStart = start
	u.AddedEnd = rangeEnd

	e.interactiveStart, e.interactiveEnd = start, end
	e.SetSelection(start, end, Normal)
	u.After = e.state
	e.undo.Push(u)
	e.scrollToCursor = true
}

// InsertText inserts text at the cursor, replacing the selection, as one
// undoable edit.
func (e *Editor) InsertText(text string) {
	if text == "" {
		return
	}
	e.mustBeWritable()

	u := buffer.UndoRecord{Before: e.state}
	if e.HasSelection() {
		e.takeSelection(&u)
	}
	u.Added = text
	u.AddedStart = e.CursorPosition()
	end, _ := e.buf.InsertTextAt(u.AddedStart, text)
	e.collapseSelection(end)
	e.setCursor(end)
	u.AddedEnd = end
	u.After = e.state
	e.undo.Push(u)
}

// Delete removes the selection, or the character after the cursor, joining
// the next line when the cursor is at the end of its line.
func (e *Editor) Delete() {
	e.mustBeWritable()

	u := buffer.UndoRecord{Before: e.state}
	if e.HasSelection() {
		e.takeSelection(&u)
	} else {
		pos := e.CursorPosition()
		e.setCursor(pos)
		line := e.buf.Lines[pos.Line]
		// A column inside a trailing tab has no glyph under it.
		if i := e.buf.CharacterIndex(pos); i >= len(line) {
			if pos.Line == e.buf.LineCount()-1 {
				return
			}
			u.Removed = "\n"
			u.RemovedStart = buffer.Coordinates{Line: pos.Line, Column: e.buf.LineMaxColumn(pos.Line)}
			u.RemovedEnd = buffer.Coordinates{Line: pos.Line + 1}
		} else {
			n := min(e.buf.CharLen(line[i].Char), len(line)-i)
			u.RemovedStart = pos
			u.RemovedEnd = buffer.Coordinates{Line: pos.Line, Column: e.buf.CharacterColumn(pos.Line, i+n)}
			u.Removed = e.buf.TextRange(u.RemovedStart, u.RemovedEnd)
		}
		e.buf.DeleteRange(u.RemovedStart, u.RemovedEnd)
		e.collapseSelection(pos)
	}
	u.After = e.state
	e.undo.Push(u)
}

// Backspace removes the selection, or the character before the cursor,
// joining onto the previous line at column zero.
func (e *Editor) Backspace() {
	e.mustBeWritable()

	u := buffer.UndoRecord{Before: e.state}
	if e.HasSelection() {
		e.takeSelection(&u)
	} else {
		pos := e.CursorPosition()
		e.setCursor(pos)
		if pos.Column == 0 {
			if pos.Line == 0 {
				return
			}
			prev := pos.Line - 1
			u.Removed = "\n"
			u.RemovedStart = buffer.Coordinates{Line: prev, Column: e.buf.LineMaxColumn(prev)}
			u.RemovedEnd = buffer.Coordinates{Line: pos.Line}
		} else {
			line := e.buf.Lines[pos.Line]
			i := e.buf.CharacterIndex(pos) - 1
			for i > 0 && isContinuation(line[i].Char) {
				i--
			}
			u.RemovedStart = buffer.Coordinates{Line: pos.Line, Column: e.buf.CharacterColumn(pos.Line, i)}
			u.RemovedEnd = pos
			u.Removed = e.buf.TextRange(u.RemovedStart, u.RemovedEnd)
		}
		e.buf.DeleteRange(u.RemovedStart, u.RemovedEnd)
		e.setCursor(u.RemovedStart)
		e.collapseSelection(u.RemovedStart)
		e.scrollToCursor = true
	}
	u.After = e.state
	e.undo.Push(u)
}

// Copy puts the selection on the clipboard, or the current line when
// nothing is selected.
func (e *Editor) Copy() {
	text := e.SelectedText()
	if !e.HasSelection() {
		text = e.CurrentLineText()
	}
	if err := e.clipboard.Write(text); err != nil {
		e.log.Warn("clipboard write failed", zap.Error(err))
	}
}

// Cut copies and deletes the selection. On a read-only editor it only
// copies.
func (e *Editor) Cut() {
	if e.IsReadOnly() {
		e.Copy()
		return
	}
	if !e.HasSelection() {
		return
	}
	u := buffer.UndoRecord{Before: e.state}
	e.Copy()
	e.takeSelection(&u)
	u.After = e.state
	e.undo.Push(u)
}

// Paste inserts the clipboard text. It does nothing on a read-only editor.
func (e *Editor) Paste() {
	if e.IsReadOnly() {
		return
	}
	text, err := e.clipboard.Read()
	if err != nil {
		e.log.Warn("clipboard read failed", zap.Error(err))
		return
	}
	e.InsertText(text)
}

func (e *Editor) CanUndo() bool { return !e.IsReadOnly() && e.undo.CanUndo() }
func (e *Editor) CanRedo() bool { return !e.IsReadOnly() && e.undo.CanRedo() }

func (e *Editor) Undo(steps int) {
	for ; steps > 0 && e.CanUndo(); steps-- {
		st, _ := e.undo.Undo(e.buf)
		e.restore(st)
		e.log.Debug("undo", zap.Int("index", e.undo.Index()))
	}
}

func (e *Editor) Redo(steps int) {
	for ; steps > 0 && e.CanRedo(); steps-- {
		st, _ := e.undo.Redo(e.buf)
		e.restore(st)
		e.log.Debug("redo", zap.Int("index", e.undo.Index()))
	}
}

// restore makes st current. The drag anchors are reset to its selection.
func (e *Editor) restore(st buffer.EditorState) {
	e.state = st
	e.interactiveStart, e.interactiveEnd = st.Selection.Start, st.Selection.End
	e.cursorPositionChanged = true
	e.scrollToCursor = true
}
