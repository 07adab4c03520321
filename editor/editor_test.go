package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"texteditor/buffer"
	"texteditor/clipboardx"
	"texteditor/config"
	"texteditor/highlight"
)

func coord(line, col int) buffer.Coordinates {
	return buffer.Coordinates{Line: line, Column: col}
}

func newTestEditor(t *testing.T, text string, opts ...func(*config.Config)) *Editor {
	t.Helper()
	cfg := config.Default()
	for _, o := range opts {
		o(cfg)
	}
	e := New(cfg,
		WithLogger(zaptest.NewLogger(t)),
		WithClipboard(&clipboardx.Memory{}),
		WithLeftMargin(0),
	)
	e.SetText(text)
	flush(e)
	return e
}

// flush runs update cycles until the colorizer is idle.
func flush(e *Editor) {
	for e.ColorizerPending() {
		e.Update()
	}
}

func clipboardText(t *testing.T, e *Editor) string {
	t.Helper()
	s, err := e.clipboard.Read()
	require.NoError(t, err)
	return s
}

func TestSetTextRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "a\nb", "x\n\ny", "tab\there", "héllo\nwörld"} {
		e := newTestEditor(t, s)
		assert.Equal(t, s, e.Text(), "round trip of %q", s)
	}
}

func TestSetTextDropsCarriageReturns(t *testing.T) {
	e := newTestEditor(t, "a\r\nb\r\n")
	assert.Equal(t, []string{"a", "b", ""}, e.TextLines())
}

func TestSetTextClearsUndo(t *testing.T) {
	e := newTestEditor(t, "abc")
	e.SetCursorPosition(coord(0, 3))
	e.EnterCharacter('d', false)
	require.True(t, e.CanUndo())
	e.SetText("fresh")
	assert.False(t, e.CanUndo())
}

func TestWordSelectionStopsAtPunctuation(t *testing.T) {
	e := newTestEditor(t, "foo.bar")
	e.SetCursorPosition(coord(0, 1))
	c := e.CursorPosition()
	e.SetSelection(c, c, Word)
	assert.Equal(t, "foo", e.SelectedText())
	assert.Equal(t, buffer.Selection{Start: coord(0, 0), End: coord(0, 3)}, e.Selection())
}

func TestWordSelectionWithoutColorizerUsesWhitespace(t *testing.T) {
	e := newTestEditor(t, "foo.bar baz", func(c *config.Config) { c.ColorizerEnabled = false })
	e.SetSelection(coord(0, 1), coord(0, 1), Word)
	assert.Equal(t, "foo.bar ", e.SelectedText(), "trailing whitespace belongs to the word")

	e.SetSelection(coord(0, 9), coord(0, 9), Word)
	assert.Equal(t, "baz", e.SelectedText())
}

func TestLineSelection(t *testing.T) {
	e := newTestEditor(t, "ab\ncd\nef")
	e.SetSelection(coord(1, 1), coord(0, 1), Line)
	assert.Equal(t, buffer.Selection{Start: coord(0, 0), End: coord(1, 2)}, e.Selection())
	assert.Equal(t, "ab\ncd", e.SelectedText())
}

func TestSetSelectionSanitizesAndOrders(t *testing.T) {
	e := newTestEditor(t, "abc\nde")
	e.SetSelection(coord(9, 9), coord(0, 1), Normal)
	assert.Equal(t, buffer.Selection{Start: coord(0, 1), End: coord(1, 2)}, e.Selection())
	assert.True(t, e.IsCursorPositionChanged())
}

func TestSelectAll(t *testing.T) {
	e := newTestEditor(t, "one\ntwo")
	e.SelectAll()
	assert.Equal(t, "one\ntwo", e.SelectedText())
}

func TestWordAtAndIdentifier(t *testing.T) {
	e := newTestEditor(t, "print(x)", func(c *config.Config) { c.Language = "glua" })
	assert.Equal(t, "print", e.WordAt(coord(0, 2)))

	id, ok := e.IdentifierAt(coord(0, 2))
	require.True(t, ok)
	assert.Equal(t, "Native Lua Function", id.Declaration)

	_, ok = e.IdentifierAt(coord(0, 6))
	assert.False(t, ok)
}

func TestTypingAndUndoRedo(t *testing.T) {
	e := newTestEditor(t, "ab")
	e.SetCursorPosition(coord(0, 1))
	e.EnterCharacter('X', false)
	assert.Equal(t, "aXb", e.Text())
	assert.Equal(t, coord(0, 2), e.CursorPosition())

	e.Undo(1)
	assert.Equal(t, "ab", e.Text())
	assert.Equal(t, coord(0, 1), e.CursorPosition())

	e.Redo(1)
	assert.Equal(t, "aXb", e.Text())
	assert.Equal(t, coord(0, 2), e.CursorPosition())
}

func TestTypingReplacesSelection(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.SetSelection(coord(0, 0), coord(0, 5), Normal)
	e.EnterCharacter('J', false)
	assert.Equal(t, "J world", e.Text())
	assert.False(t, e.HasSelection())

	e.Undo(1)
	assert.Equal(t, "hello world", e.Text())
	assert.Equal(t, "hello", e.SelectedText())
}

func TestMultiByteCharacters(t *testing.T) {
	e := newTestEditor(t, "a")
	e.SetCursorPosition(coord(0, 1))
	e.EnterCharacter('é', false)
	assert.Equal(t, "aé", e.Text())
	assert.Equal(t, coord(0, 2), e.CursorPosition())

	e.Backspace()
	assert.Equal(t, "a", e.Text())
	assert.Equal(t, coord(0, 1), e.CursorPosition())
}

func TestUndoRedoInverseOverEditSequence(t *testing.T) {
	e := newTestEditor(t, "hello\nworld")
	require.NoError(t, e.clipboard.Write("PASTE\nD"))

	type step struct {
		prep func()
		edit func()
	}
	steps := []step{
		{func() { e.SetCursorPosition(coord(0, 5)) }, func() { e.EnterCharacter('!', false) }},
		{nil, func() { e.EnterCharacter('\n', false) }},
		{nil, func() { e.InsertText("mid") }},
		{nil, func() { e.Backspace() }},
		{func() { e.SetCursorPosition(coord(0, 0)) }, func() { e.Delete() }},
		{func() { e.SetSelection(coord(1, 0), coord(2, 2), Normal) }, func() { e.EnterCharacter('Z', false) }},
		{nil, func() { e.Paste() }},
		{func() { e.SetCursorPosition(coord(1, 0)) }, func() { e.Backspace() }},
	}

	type snapshot struct {
		text  string
		state buffer.EditorState
	}
	var before, after []snapshot
	for _, s := range steps {
		if s.prep != nil {
			s.prep()
		}
		before = append(before, snapshot{e.Text(), e.state})
		s.edit()
		after = append(after, snapshot{e.Text(), e.state})
	}

	for i := len(steps) - 1; i >= 0; i-- {
		require.True(t, e.CanUndo())
		e.Undo(1)
		assert.Equal(t, before[i].text, e.Text(), "undo %d", i)
		assert.Equal(t, before[i].state, e.state, "undo %d", i)
	}
	assert.False(t, e.CanUndo())
	assert.Equal(t, "hello\nworld", e.Text())

	for i := range steps {
		require.True(t, e.CanRedo())
		e.Redo(1)
		assert.Equal(t, after[i].text, e.Text(), "redo %d", i)
		assert.Equal(t, after[i].state, e.state, "redo %d", i)
	}
	assert.False(t, e.CanRedo())
}

func TestUndoRestoresSelectionAnchors(t *testing.T) {
	e := newTestEditor(t, "hello world")
	e.MoveRight(5, true, false)
	require.Equal(t, buffer.NewSelection(coord(0, 0), coord(0, 5)), e.Selection())

	e.EnterCharacter('X', false)
	require.Equal(t, "X world", e.Text())
	e.Undo(1)
	require.Equal(t, "hello world", e.Text())
	assert.Equal(t, coord(0, 0), e.interactiveStart)
	assert.Equal(t, coord(0, 5), e.interactiveEnd)

	// shrinking from the cursor end keeps the start anchored
	e.MoveLeft(1, true, false)
	assert.Equal(t, buffer.NewSelection(coord(0, 0), coord(0, 4)), e.Selection())
}

func TestNewEditTruncatesRedo(t *testing.T) {
	e := newTestEditor(t, "")
	e.EnterCharacter('a', false)
	e.EnterCharacter('b', false)
	e.Undo(1)
	require.True(t, e.CanRedo())
	e.EnterCharacter('c', false)
	assert.False(t, e.CanRedo())
	assert.Equal(t, "ac", e.Text())
}

func TestUndoLimitFromConfig(t *testing.T) {
	e := newTestEditor(t, "", func(c *config.Config) { c.UndoLimit = 2 })
	for _, r := range "xyz" {
		e.EnterCharacter(r, false)
	}
	e.Undo(10)
	assert.Equal(t, "x", e.Text())
}

func TestDeleteAndBackspaceJoinLines(t *testing.T) {
	e := newTestEditor(t, "ab\ncd")
	e.SetCursorPosition(coord(0, 2))
	e.Delete()
	assert.Equal(t, "abcd", e.Text())
	e.Undo(1)
	assert.Equal(t, "ab\ncd", e.Text())

	e.SetCursorPosition(coord(1, 0))
	e.Backspace()
	assert.Equal(t, "abcd", e.Text())
	assert.Equal(t, coord(0, 2), e.CursorPosition())
	e.Undo(1)
	assert.Equal(t, "ab\ncd", e.Text())
}

func TestDeleteInsideTrailingTabJoinsLines(t *testing.T) {
	e := newTestEditor(t, "abc\na\t\nz")
	e.SetCursorPosition(coord(0, 2))
	e.MoveDown(1, false)
	require.Equal(t, coord(1, 2), e.CursorPosition())

	require.NotPanics(t, func() { e.Delete() })
	assert.Equal(t, "abc\na\tz", e.Text())
	e.Undo(1)
	assert.Equal(t, "abc\na\t\nz", e.Text())
	assert.Equal(t, coord(1, 2), e.CursorPosition())

	e.SetText("a\t")
	e.SetCursorPosition(coord(0, 2))
	e.Delete()
	assert.Equal(t, "a\t", e.Text())
	assert.False(t, e.CanUndo())
}

func TestDeleteAtBufferEdgesIsNoop(t *testing.T) {
	e := newTestEditor(t, "ab")
	e.SetCursorPosition(coord(0, 2))
	e.Delete()
	e.SetCursorPosition(coord(0, 0))
	e.Backspace()
	assert.Equal(t, "ab", e.Text())
	assert.False(t, e.CanUndo())
}

func TestTabIndentsAndOutdentsSelectedLines(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc")
	e.SetSelection(coord(0, 0), coord(2, 1), Normal)
	e.EnterCharacter('\t', false)
	assert.Equal(t, "\ta\n\tb\n\tc", e.Text())

	e.SelectAll()
	e.EnterCharacter('\t', true)
	assert.Equal(t, "a\nb\nc", e.Text())

	e.Undo(1)
	assert.Equal(t, "\ta\n\tb\n\tc", e.Text())
	e.Undo(1)
	assert.Equal(t, "a\nb\nc", e.Text())
	e.Redo(1)
	assert.Equal(t, "\ta\n\tb\n\tc", e.Text())
}

func TestExpandTabsInsertsSpaces(t *testing.T) {
	e := newTestEditor(t, "ab\nc", func(c *config.Config) { c.ExpandTabs = true })
	require.True(t, e.IsExpandingTabs())

	e.SetCursorPosition(coord(0, 1))
	e.EnterCharacter('\t', false)
	assert.Equal(t, "a   b\nc", e.Text())
	assert.Equal(t, coord(0, 4), e.CursorPosition())
	e.Undo(1)
	assert.Equal(t, "ab\nc", e.Text())

	e.SelectAll()
	e.EnterCharacter('\t', false)
	assert.Equal(t, "    ab\n    c", e.Text())
	e.SelectAll()
	e.EnterCharacter('\t', true)
	assert.Equal(t, "ab\nc", e.Text())
}

func TestOutdentRemovesUpToTabSizeSpaces(t *testing.T) {
	e := newTestEditor(t, "      x\n  y\nz")
	e.SelectAll()
	e.EnterCharacter('\t', true)
	assert.Equal(t, "  x\ny\nz", e.Text())
}

func TestAutoIndent(t *testing.T) {
	e := newTestEditor(t, "    foo")
	e.SetCursorPosition(coord(0, 7))
	e.EnterCharacter('\n', false)
	assert.Equal(t, "    foo\n    ", e.Text())
	assert.Equal(t, coord(1, 4), e.CursorPosition())

	e.Undo(1)
	assert.Equal(t, "    foo", e.Text())
	e.Redo(1)
	assert.Equal(t, "    foo\n    ", e.Text())
}

func TestOverwriteMode(t *testing.T) {
	e := newTestEditor(t, "abc")
	e.SetOverwrite(true)
	e.SetCursorPosition(coord(0, 1))
	e.EnterCharacter('X', false)
	assert.Equal(t, "aXc", e.Text())
	assert.Equal(t, coord(0, 2), e.CursorPosition())

	e.SetCursorPosition(coord(0, 3))
	e.EnterCharacter('!', false)
	assert.Equal(t, "aXc!", e.Text())

	e.Undo(2)
	assert.Equal(t, "abc", e.Text())
}

func TestCopyCutPaste(t *testing.T) {
	e := newTestEditor(t, "one\ntwo")

	e.SetCursorPosition(coord(1, 1))
	e.Copy()
	assert.Equal(t, "two", clipboardText(t, e))

	e.SetSelection(coord(0, 0), coord(1, 0), Normal)
	e.Cut()
	assert.Equal(t, "one\n", clipboardText(t, e))
	assert.Equal(t, "two", e.Text())

	e.SetCursorPosition(coord(0, 3))
	e.Paste()
	assert.Equal(t, "twoone\n", e.Text())
	assert.Equal(t, coord(1, 0), e.CursorPosition())

	e.Undo(2)
	assert.Equal(t, "one\ntwo", e.Text())
}

func TestReadOnly(t *testing.T) {
	e := newTestEditor(t, "one\ntwo", func(c *config.Config) { c.ReadOnly = true })

	require.PanicsWithValue(t, buffer.ErrReadOnly, func() { e.EnterCharacter('x', false) })
	require.PanicsWithValue(t, buffer.ErrReadOnly, func() { e.Delete() })
	require.PanicsWithValue(t, buffer.ErrReadOnly, func() { e.InsertText("x") })

	e.Update(InsertChar{Char: 'x'}, Delete, Backspace, Paste, Undo)
	assert.Equal(t, "one\ntwo", e.Text())
	assert.False(t, e.IsTextChanged())

	e.SetSelection(coord(0, 0), coord(0, 3), Normal)
	e.Update(Cut)
	assert.Equal(t, "one", clipboardText(t, e))
	assert.Equal(t, "one\ntwo", e.Text())
}

func TestCanUndoFalseWhileReadOnly(t *testing.T) {
	e := newTestEditor(t, "")
	e.EnterCharacter('a', false)
	e.SetReadOnly(true)
	assert.False(t, e.CanUndo())
	e.SetReadOnly(false)
	assert.True(t, e.CanUndo())
}

func TestMarkersFollowEdits(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc\nd")
	e.AddBreakpoint(3)
	e.SetErrorMarkers(map[int]string{4: "bad"})

	e.SetCursorPosition(coord(0, 1))
	e.EnterCharacter('\n', false)
	assert.Equal(t, []int{4}, e.Breakpoints())
	assert.Equal(t, map[int]string{5: "bad"}, e.ErrorMarkers())

	e.Backspace()
	assert.Equal(t, []int{3}, e.Breakpoints())
	msg, ok := e.ErrorAt(4)
	require.True(t, ok)
	assert.Equal(t, "bad", msg)
}

func TestMarkerOnRemovedLineIsDropped(t *testing.T) {
	e := newTestEditor(t, "a\nb\nc")
	e.AddBreakpoint(2)
	e.AddBreakpoint(3)
	e.SetSelection(coord(0, 1), coord(1, 1), Normal)
	e.Delete()
	assert.Equal(t, "a\nc", e.Text())
	assert.Equal(t, []int{2}, e.Breakpoints())
}

func TestToggleBreakpointAndGutter(t *testing.T) {
	e := newTestEditor(t, "a\nb")
	assert.True(t, e.ToggleBreakpoint(2))
	assert.Equal(t, GutterBreakpoint, e.GutterAt(1))
	e.SetErrorMarkers(map[int]string{2: "oops"})
	assert.Equal(t, GutterError, e.GutterAt(1))
	assert.False(t, e.ToggleBreakpoint(2))
	assert.Equal(t, GutterNone, e.GutterAt(0))
}

func TestSetLanguageRecolors(t *testing.T) {
	e := newTestEditor(t, "select x")
	d, err := highlight.Preset("sql")
	require.NoError(t, err)
	e.SetLanguageDefinition(d)
	flush(e)
	assert.Equal(t, "SQL", e.LanguageDefinition().Name)
	assert.Equal(t, "select", e.WordAt(coord(0, 0)))
}

func TestApplyConfig(t *testing.T) {
	e := newTestEditor(t, "a\tb")
	cfg := config.Default()
	cfg.TabSize = 8
	cfg.ReadOnly = true
	cfg.Language = "lua"
	cfg.Palette = "light"
	e.ApplyConfig(cfg)

	assert.Equal(t, 8, e.TabSize())
	assert.True(t, e.IsReadOnly())
	assert.Equal(t, "Lua", e.LanguageDefinition().Name)
	assert.Equal(t, 9, e.buf.LineMaxColumn(0))
}
