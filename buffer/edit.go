package buffer

import (
	"fmt"
	"slices"
)

// InsertTextAt inserts text at where and returns the position just past the
// inserted text together with the number of line breaks it contained.
func (b *Buffer) InsertTextAt(where Coordinates, text string) (Coordinates, int) {
	b.mustBeWritable()
	idx := b.CharacterIndex(where)
	if idx < 0 {
		panic(fmt.Errorf("%w: insert at line %d of %d", ErrInvalidRange, where.Line, len(b.Lines)))
	}
	first := where.Line
	lines := 0
	for i := 0; i < len(text); {
		switch c := text[i]; c {
		case '\r':
			i++
		case '\n':
			b.InsertLine(where.Line + 1)
			cur := b.Lines[where.Line]
			if idx < len(cur) {
				b.Lines[where.Line+1] = append(b.Lines[where.Line+1], cur[idx:]...)
				b.Lines[where.Line] = cur[:idx]
			}
			where.Line++
			idx = 0
			lines++
			i++
		default:
			n := min(b.CharLen(c), len(text)-i)
			glyphs := make([]Glyph, n)
			for k := range glyphs {
				glyphs[k] = Glyph{Char: text[i+k]}
			}
			b.Lines[where.Line] = slices.Insert(b.Lines[where.Line], idx, glyphs...)
			idx += n
			i += n
		}
	}
	where.Column = b.CharacterColumn(where.Line, idx)
	b.changed(first-1, lines+3)
	return where, lines
}

// DeleteRange removes the text in [start, end). Lines strictly after
// start.Line up to and including end.Line are merged into start.Line.
func (b *Buffer) DeleteRange(start, end Coordinates) {
	b.mustBeWritable()
	if end.Before(start) {
		panic(fmt.Errorf("%w: delete %v..%v", ErrInvalidRange, start, end))
	}
	if start.Equal(end) {
		return
	}
	from := b.CharacterIndex(start)
	to := b.CharacterIndex(end)
	if from < 0 || to < 0 {
		panic(fmt.Errorf("%w: delete %v..%v outside %d lines", ErrInvalidRange, start, end, len(b.Lines)))
	}

	if start.Line == end.Line {
		line := b.Lines[start.Line]
		if end.Column >= b.LineMaxColumn(start.Line) {
			to = len(line)
		}
		b.Lines[start.Line] = slices.Delete(line, from, max(from, to))
	} else {
		first := b.Lines[start.Line][:from]
		tail := b.Lines[end.Line][to:]
		b.Lines[start.Line] = append(first, tail...)
		b.RemoveLines(start.Line+1, end.Line+1)
	}
	b.changed(start.Line-1, 3)
}

// InsertLine inserts an empty line before index, shifting markers on and
// after it.
func (b *Buffer) InsertLine(index int) {
	b.mustBeWritable()
	if index < 0 || index > len(b.Lines) {
		panic(fmt.Errorf("%w: insert line %d of %d", ErrInvalidRange, index, len(b.Lines)))
	}
	b.Lines = slices.Insert(b.Lines, index, Line{})
	b.Markers.LinesInserted(index, 1)
	b.TextChanged = true
}

// RemoveLines removes lines [start, end). Removing every line is a
// contract violation.
func (b *Buffer) RemoveLines(start, end int) {
	b.mustBeWritable()
	if end < start || start < 0 || end > len(b.Lines) {
		panic(fmt.Errorf("%w: remove lines %d..%d of %d", ErrInvalidRange, start, end, len(b.Lines)))
	}
	if end-start >= len(b.Lines) {
		panic(fmt.Errorf("%w: cannot remove all %d lines", ErrInvalidRange, len(b.Lines)))
	}
	if start == end {
		return
	}
	b.Lines = slices.Delete(b.Lines, start, end)
	b.Markers.LinesRemoved(start, end)
	b.TextChanged = true
}
