// Package buffer holds the glyph storage of an editor together with the
// mapping between display coordinates and byte indices.
package buffer

import (
	"strings"

	"texteditor/palette"
)

// MaxTabSize bounds the configurable tab width.
const MaxTabSize = 32

// Glyph is a single stored byte plus the classification the colorizer last
// assigned to it. Multi-byte characters occupy one glyph per byte.
type Glyph struct {
	Char         byte
	Color        palette.Index
	Comment      bool
	BlockComment bool
	Preprocessor bool
}

type Line []Glyph

func (l Line) String() string {
	var sb strings.Builder
	sb.Grow(len(l))
	for _, g := range l {
		sb.WriteByte(g.Char)
	}
	return sb.String()
}

type Buffer struct {
	Lines    []Line
	ReadOnly bool
	// Decode sizes multi-byte characters. Nil means Legacy.
	Decode  *DecodeTable
	Markers *Markers

	// TextChanged is set by every mutation. Owners clear it.
	TextChanged bool
	// OnChange receives the line span touched by a mutation, padded by one
	// line of context on each side. A negative count means "to the end".
	OnChange func(fromLine, lines int)

	tabSize int
}

func New(tabSize int) *Buffer {
	b := &Buffer{
		Lines:   []Line{{}},
		Markers: NewMarkers(),
	}
	b.SetTabSize(tabSize)
	return b
}

func (b *Buffer) TabSize() int { return b.tabSize }

func (b *Buffer) SetTabSize(n int) {
	b.tabSize = max(0, min(n, MaxTabSize))
}

func (b *Buffer) LineCount() int { return len(b.Lines) }

// CharLen is the byte length of the character whose lead byte is c.
func (b *Buffer) CharLen(c byte) int {
	if b.Decode == nil {
		return Legacy.Len(c)
	}
	return b.Decode.Len(c)
}

// NextColumn returns the column following col when the character c is
// drawn at it.
func (b *Buffer) NextColumn(col int, c byte) int {
	if c != '\t' {
		return col + 1
	}
	if b.tabSize == 0 {
		return col + 1
	}
	return (col/b.tabSize)*b.tabSize + b.tabSize
}

func (b *Buffer) changed(fromLine, lines int) {
	b.TextChanged = true
	if b.OnChange != nil {
		b.OnChange(fromLine, lines)
	}
}

func (b *Buffer) mustBeWritable() {
	if b.ReadOnly {
		panic(ErrReadOnly)
	}
}

// CharacterIndex returns the byte offset of the character drawn at c, or
// -1 when c.Line is outside the buffer.
func (b *Buffer) CharacterIndex(c Coordinates) int {
	if c.Line < 0 || c.Line >= len(b.Lines) {
		return -1
	}
	line := b.Lines[c.Line]
	col, i := 0, 0
	for i < len(line) && col < c.Column {
		col = b.NextColumn(col, line[i].Char)
		i += b.CharLen(line[i].Char)
	}
	return min(i, len(line))
}

// CharacterColumn is the inverse of CharacterIndex.
func (b *Buffer) CharacterColumn(line, index int) int {
	if line < 0 || line >= len(b.Lines) {
		return 0
	}
	l := b.Lines[line]
	col, i := 0, 0
	for i < index && i < len(l) {
		c := l[i].Char
		i += b.CharLen(c)
		col = b.NextColumn(col, c)
	}
	return col
}

// LineCharacterCount counts decoded characters, not bytes.
func (b *Buffer) LineCharacterCount(line int) int {
	if line < 0 || line >= len(b.Lines) {
		return 0
	}
	l := b.Lines[line]
	n := 0
	for i := 0; i < len(l); n++ {
		i += b.CharLen(l[i].Char)
	}
	return n
}

func (b *Buffer) LineMaxColumn(line int) int {
	if line < 0 || line >= len(b.Lines) {
		return 0
	}
	l := b.Lines[line]
	col := 0
	for i := 0; i < len(l); i += b.CharLen(l[i].Char) {
		col = b.NextColumn(col, l[i].Char)
	}
	return col
}

// Advance steps one character forward. At the end of a line it moves to
// the start of the next one; at the end of the buffer it stays put.
func (b *Buffer) Advance(c Coordinates) Coordinates {
	c = b.Sanitize(c)
	line := b.Lines[c.Line]
	idx := b.CharacterIndex(c)
	if idx < len(line) {
		idx = min(idx+b.CharLen(line[idx].Char), len(line))
		return Coordinates{Line: c.Line, Column: b.CharacterColumn(c.Line, idx)}
	}
	if c.Line+1 < len(b.Lines) {
		return Coordinates{Line: c.Line + 1}
	}
	return c
}

// Sanitize clamps c to the nearest location that exists in the buffer.
func (b *Buffer) Sanitize(c Coordinates) Coordinates {
	if c.Line >= len(b.Lines) {
		last := len(b.Lines) - 1
		return Coordinates{Line: last, Column: b.LineMaxColumn(last)}
	}
	if c.Line < 0 {
		c.Line = 0
	}
	c.Column = max(0, min(c.Column, b.LineMaxColumn(c.Line)))
	return c
}

// LineText returns the bytes of one line, or "" when out of range.
func (b *Buffer) LineText(line int) string {
	if line < 0 || line >= len(b.Lines) {
		return ""
	}
	return b.Lines[line].String()
}

// Text joins all lines with '\n'.
func (b *Buffer) Text() string {
	return strings.Join(b.TextLines(), "\n")
}

func (b *Buffer) TextLines() []string {
	out := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		out[i] = l.String()
	}
	return out
}

// TextRange returns the text between start (inclusive) and end
// (exclusive), joining lines with '\n'.
func (b *Buffer) TextRange(start, end Coordinates) string {
	if !start.Before(end) {
		return ""
	}
	from := max(0, b.CharacterIndex(start))
	to := b.CharacterIndex(end)
	var sb strings.Builder
	for ln := max(0, start.Line); ln <= end.Line && ln < len(b.Lines); ln++ {
		line := b.Lines[ln]
		i, j := 0, len(line)
		if ln == start.Line {
			i = min(from, len(line))
		}
		if ln == end.Line && to >= 0 {
			j = min(to, len(line))
		}
		for ; i < j; i++ {
			sb.WriteByte(line[i].Char)
		}
		if ln < end.Line && ln+1 < len(b.Lines) {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// SetText replaces the whole content. '\r' is dropped. Markers are kept.
func (b *Buffer) SetText(text string) {
	b.Lines = b.Lines[:0]
	b.Lines = append(b.Lines, Line{})
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\r':
		case '\n':
			b.Lines = append(b.Lines, Line{})
		default:
			last := len(b.Lines) - 1
			b.Lines[last] = append(b.Lines[last], Glyph{Char: c})
		}
	}
	b.changed(0, -1)
}

func (b *Buffer) SetLines(lines []string) {
	b.Lines = b.Lines[:0]
	for _, s := range lines {
		line := make(Line, 0, len(s))
		for i := 0; i < len(s); i++ {
			if s[i] == '\r' {
				continue
			}
			line = append(line, Glyph{Char: s[i]})
		}
		b.Lines = append(b.Lines, line)
	}
	if len(b.Lines) == 0 {
		b.Lines = append(b.Lines, Line{})
	}
	b.changed(0, -1)
}
