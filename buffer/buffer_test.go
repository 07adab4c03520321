package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuffer(t *testing.T, tab int, lines ...string) *Buffer {
	t.Helper()
	b := New(tab)
	b.SetLines(lines)
	return b
}

func TestTabColumnMath(t *testing.T) {
	b := newBuffer(t, 4, "a\tb")
	assert.Equal(t, 5, b.LineMaxColumn(0))
	assert.Equal(t, 2, b.CharacterIndex(Coordinates{0, 4}))
	assert.Equal(t, 4, b.CharacterColumn(0, 2))
	assert.Equal(t, 3, b.LineCharacterCount(0))
	assert.Equal(t, -1, b.CharacterIndex(Coordinates{1, 0}))
}

func TestZeroTabSizeAdvancesOneColumn(t *testing.T) {
	b := newBuffer(t, 0, "\t\tx")
	assert.Equal(t, 3, b.LineMaxColumn(0))
}

func TestTabSizeClamped(t *testing.T) {
	assert.Equal(t, MaxTabSize, New(100).TabSize())
	assert.Equal(t, 0, New(-3).TabSize())
}

func TestMultiByteCharactersTakeOneColumn(t *testing.T) {
	b := newBuffer(t, 4, "héllo")
	require.Len(t, b.Lines[0], 6)
	assert.Equal(t, 5, b.LineMaxColumn(0))
	assert.Equal(t, 5, b.LineCharacterCount(0))
	assert.Equal(t, 3, b.CharacterIndex(Coordinates{0, 2}))
	assert.Equal(t, Coordinates{0, 2}, b.Advance(Coordinates{0, 1}))
}

func TestLegacyDecodeTable(t *testing.T) {
	assert.Equal(t, 6, Legacy.Len(0xFC))
	assert.Equal(t, 5, Legacy.Len(0xF8))
	assert.Equal(t, 4, Legacy.Len(0xF0))
	assert.Equal(t, 1, Legacy.Len('a'))
	assert.Equal(t, 1, Strict.Len(0xFC))
	assert.Equal(t, 4, Strict.Len(0xF4))
	assert.Equal(t, 1, Strict.Len(0xC0))
}

func TestAdvanceCrossesLines(t *testing.T) {
	b := newBuffer(t, 4, "ab", "c")
	assert.Equal(t, Coordinates{0, 2}, b.Advance(Coordinates{0, 1}))
	assert.Equal(t, Coordinates{1, 0}, b.Advance(Coordinates{0, 2}))
	assert.Equal(t, Coordinates{1, 1}, b.Advance(Coordinates{1, 1}))
}

func TestSanitizeIsIdempotent(t *testing.T) {
	b := newBuffer(t, 4, "one", "\ttwo", "")
	for _, c := range []Coordinates{
		{-5, -5}, {0, 100}, {1, 2}, {1, 7}, {2, 3}, {3, 0}, {99, 99},
	} {
		once := b.Sanitize(c)
		assert.Equal(t, once, b.Sanitize(once), "%v", c)
		assert.GreaterOrEqual(t, once.Line, 0)
		assert.Less(t, once.Line, b.LineCount())
		assert.LessOrEqual(t, once.Column, b.LineMaxColumn(once.Line))
	}
	assert.Equal(t, Coordinates{2, 0}, b.Sanitize(Coordinates{10, 0}))
	assert.Equal(t, Coordinates{0, 3}, b.Sanitize(Coordinates{0, 10}))
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "a\nb", "\n\n", "x\ty\n  z", "日本語\nü"} {
		b := New(4)
		b.SetText(s)
		assert.Equal(t, s, b.Text())
	}
}

func TestSetTextDropsCarriageReturns(t *testing.T) {
	b := New(4)
	b.SetText("a\r\nb")
	assert.Equal(t, []string{"a", "b"}, b.TextLines())
}

func TestInsertSplitsLine(t *testing.T) {
	b := newBuffer(t, 4, "ab")
	end, n := b.InsertTextAt(Coordinates{0, 1}, "\n")
	assert.Equal(t, 1, n)
	assert.Equal(t, Coordinates{1, 0}, end)
	assert.Equal(t, []string{"a", "b"}, b.TextLines())
	assert.True(t, b.TextChanged)
}

func TestInsertMultiLineText(t *testing.T) {
	b := newBuffer(t, 4, "[]")
	end, n := b.InsertTextAt(Coordinates{0, 1}, "x\r\ny\n\tz")
	assert.Equal(t, 2, n)
	assert.Equal(t, Coordinates{2, 5}, end)
	assert.Equal(t, []string{"[x", "y", "\tz]"}, b.TextLines())
}

func TestCrossLineDeleteMerges(t *testing.T) {
	b := newBuffer(t, 4, "ab", "cd")
	b.DeleteRange(Coordinates{0, 1}, Coordinates{1, 1})
	assert.Equal(t, []string{"ad"}, b.TextLines())
}

func TestDeleteRangeSpanningSeveralLines(t *testing.T) {
	b := newBuffer(t, 4, "one", "two", "three", "four")
	b.DeleteRange(Coordinates{0, 2}, Coordinates{2, 3})
	assert.Equal(t, []string{"onee", "four"}, b.TextLines())
}

func TestDeleteToEndOfLine(t *testing.T) {
	b := newBuffer(t, 4, "abc")
	b.DeleteRange(Coordinates{0, 1}, Coordinates{0, 99})
	assert.Equal(t, "a", b.Text())
	b.DeleteRange(Coordinates{0, 0}, Coordinates{0, 0})
	assert.Equal(t, "a", b.Text())
}

func TestTextRange(t *testing.T) {
	b := newBuffer(t, 4, "abc", "def", "ghi")
	assert.Equal(t, "bc\nde", b.TextRange(Coordinates{0, 1}, Coordinates{1, 2}))
	assert.Equal(t, "abc\n", b.TextRange(Coordinates{0, 0}, Coordinates{1, 0}))
	assert.Equal(t, "abc\ndef\nghi", b.TextRange(Coordinates{0, 0}, Coordinates{2, 3}))
	assert.Equal(t, "", b.TextRange(Coordinates{1, 1}, Coordinates{0, 0}))
}

func TestDeleteInsertRestoresText(t *testing.T) {
	b := newBuffer(t, 4, "alpha", "\tbeta", "gamma")
	start, end := Coordinates{0, 2}, Coordinates{2, 1}
	removed := b.TextRange(start, end)
	b.DeleteRange(start, end)
	got, _ := b.InsertTextAt(start, removed)
	assert.Equal(t, end, got)
	assert.Equal(t, []string{"alpha", "\tbeta", "gamma"}, b.TextLines())
}

func TestContractViolationsPanic(t *testing.T) {
	b := newBuffer(t, 4, "ab", "cd")
	assert.PanicsWithError(t, "invalid range: delete {1 0}..{0 0}", func() {
		b.DeleteRange(Coordinates{1, 0}, Coordinates{0, 0})
	})
	assert.Panics(t, func() { b.RemoveLines(0, 2) })
	assert.Panics(t, func() { b.InsertTextAt(Coordinates{5, 0}, "x") })

	b.ReadOnly = true
	assert.PanicsWithValue(t, ErrReadOnly, func() { b.InsertTextAt(Coordinates{0, 0}, "x") })
	assert.PanicsWithValue(t, ErrReadOnly, func() { b.DeleteRange(Coordinates{0, 0}, Coordinates{0, 1}) })
}

func TestOnChangeReportsPaddedSpan(t *testing.T) {
	b := newBuffer(t, 4, "a", "b", "c")
	var from, count int
	b.OnChange = func(f, n int) { from, count = f, n }
	b.InsertTextAt(Coordinates{1, 1}, "\n\n")
	assert.Equal(t, 0, from)
	assert.Equal(t, 5, count)
}
