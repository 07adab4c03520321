package buffer

// Coordinates is a position in display space: Column already accounts for
// tab expansion and is not a byte offset.
type Coordinates struct {
	Line, Column int
}

func (c Coordinates) Before(other Coordinates) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Column < other.Column
}

func (c Coordinates) Equal(other Coordinates) bool {
	return c.Line == other.Line && c.Column == other.Column
}

// Compare returns -1, 0 or 1 ordering line first, then column.
func (c Coordinates) Compare(other Coordinates) int {
	switch {
	case c.Before(other):
		return -1
	case other.Before(c):
		return 1
	}
	return 0
}

type Selection struct {
	Start, End Coordinates
}

// NewSelection orders a and b so that Start is never after End.
func NewSelection(a, b Coordinates) Selection {
	if b.Before(a) {
		return Selection{Start: b, End: a}
	}
	return Selection{Start: a, End: b}
}

func (s Selection) Contains(c Coordinates) bool {
	if c.Before(s.Start) || s.End.Before(c) {
		return false
	}
	return true
}

func (s Selection) Empty() bool {
	return s.Start.Equal(s.End)
}

// EditorState is the cursor and selection snapshot stored with every undo
// record.
type EditorState struct {
	Cursor    Coordinates
	Selection Selection
}
