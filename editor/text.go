package editor

import (
	"texteditor/buffer"
	"texteditor/highlight"
)

// SetText replaces the content and clears the undo history. Markers stay
// where they are.
func (e *Editor) SetText(text string) {
	e.buf.SetText(text)
	e.resetAfterLoad()
}

func (e *Editor) SetTextLines(lines []string) {
	e.buf.SetLines(lines)
	e.resetAfterLoad()
}

func (e *Editor) resetAfterLoad() {
	e.undo.Clear()
	e.scrollToTop = true
	e.state.Cursor = e.buf.Sanitize(e.state.Cursor)
	e.state.Selection = buffer.NewSelection(
		e.buf.Sanitize(e.state.Selection.Start),
		e.buf.Sanitize(e.state.Selection.End))
	e.interactiveStart = e.buf.Sanitize(e.interactiveStart)
	e.interactiveEnd = e.buf.Sanitize(e.interactiveEnd)
}

func (e *Editor) Text() string        { return e.buf.Text() }
func (e *Editor) TextLines() []string { return e.buf.TextLines() }
func (e *Editor) TotalLines() int     { return e.buf.LineCount() }

// TextRange returns the text in [start, end) after clamping both ends.
func (e *Editor) TextRange(start, end buffer.Coordinates) string {
	return e.buf.TextRange(e.buf.Sanitize(start), e.buf.Sanitize(end))
}

func (e *Editor) SelectedText() string {
	return e.buf.TextRange(e.state.Selection.Start, e.state.Selection.End)
}

func (e *Editor) CurrentLineText() string {
	return e.buf.LineText(e.CursorPosition().Line)
}

// WordAt returns the word containing c, as delimited by FindWordStart and
// FindWordEnd.
func (e *Editor) WordAt(c buffer.Coordinates) string {
	c = e.buf.Sanitize(c)
	return e.buf.TextRange(e.FindWordStart(c), e.FindWordEnd(c))
}

func (e *Editor) WordUnderCursor() string {
	return e.WordAt(e.CursorPosition())
}

// IdentifierAt looks the word at c up among the language's known and
// preprocessor identifiers.
func (e *Editor) IdentifierAt(c buffer.Coordinates) (highlight.Identifier, bool) {
	lang := e.colorizer.Language()
	if lang == nil {
		return highlight.Identifier{}, false
	}
	word := e.WordAt(c)
	if word == "" {
		return highlight.Identifier{}, false
	}
	return lang.Lookup(word)
}
