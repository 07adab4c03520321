package editor

import (
	"math"
	"strconv"

	"github.com/mattn/go-runewidth"

	"texteditor/buffer"
)

// Measurer reports the drawn width of a string. Units are up to the host:
// pixels for a GUI, cells for a terminal.
type Measurer interface {
	TextWidth(s string) float64
}

// MonospaceMeasurer measures in fixed-width cells, counting East Asian wide
// characters twice.
type MonospaceMeasurer struct {
	CellWidth float64
}

func (m MonospaceMeasurer) TextWidth(s string) float64 {
	return float64(runewidth.StringWidth(s)) * m.CellWidth
}

// Viewport is the visible window onto the text, in Measurer units.
type Viewport struct {
	Width, Height    float64
	ScrollX, ScrollY float64
	// LineHeight is the font height before line spacing is applied.
	LineHeight float64
	Focused    bool
}

func (e *Editor) lineHeight() float64 {
	return e.View.LineHeight * e.lineSpacing
}

func (e *Editor) spaceWidth() float64 { return e.measure.TextWidth(" ") }

// charWidth is the advance of a typical glyph.
func (e *Editor) charWidth() float64 { return e.measure.TextWidth("#") }

// TextStart is the horizontal offset of column zero, past the line
// number gutter.
func (e *Editor) TextStart() float64 {
	if !e.showLineNumbers {
		return e.leftMargin
	}
	return e.measure.TextWidth(" "+strconv.Itoa(e.buf.LineCount())+" ") + e.leftMargin
}

// tabStop returns the offset of the tab stop following x. The tenth of a
// space absorbs rounding when x already sits on a stop.
func (e *Editor) tabStop(x float64) float64 {
	space := e.spaceWidth()
	w := float64(e.buf.TabSize()) * space
	if w <= 0 {
		return x + space
	}
	return (1 + math.Floor((x+space*0.1)/w)) * w
}

// TextDistanceToLineStart is the drawn width of the text before c.
func (e *Editor) TextDistanceToLineStart(c buffer.Coordinates) float64 {
	c = e.buf.Sanitize(c)
	line := e.buf.Lines[c.Line]
	to := e.buf.CharacterIndex(c)
	dist := 0.0
	for i := 0; i < len(line) && i < to; {
		if line[i].Char == '\t' {
			dist = e.tabStop(dist)
			i++
			continue
		}
		n := min(e.buf.CharLen(line[i].Char), len(line)-i)
		dist += e.measure.TextWidth(line[i : i+n].String())
		i += n
	}
	return dist
}

// ScreenPosToCoordinates maps a point relative to the viewport origin to
// the nearest coordinates. A character is hit once the point passes its
// horizontal midpoint.
func (e *Editor) ScreenPosToCoordinates(x, y float64) buffer.Coordinates {
	localX := x + e.View.ScrollX
	localY := y + e.View.ScrollY

	h := e.lineHeight()
	lineNo := 0
	if h > 0 {
		lineNo = max(0, int(math.Floor(localY/h)))
	}

	col := 0
	if lineNo < e.buf.LineCount() {
		line := e.buf.Lines[lineNo]
		start := e.TextStart()
		colX := 0.0
		for i := 0; i < len(line); {
			c := line[i].Char
			var w float64
			n := 1
			if c == '\t' {
				w = e.tabStop(colX) - colX
			} else {
				n = min(e.buf.CharLen(c), len(line)-i)
				w = e.measure.TextWidth(line[i : i+n].String())
			}
			if start+colX+w*0.5 > localX {
				break
			}
			colX += w
			col = e.buf.NextColumn(col, c)
			i += n
		}
	}
	return e.buf.Sanitize(buffer.Coordinates{Line: lineNo, Column: col})
}

// EnsureCursorVisible scrolls the viewport so that the cursor stays four
// lines and four characters away from its edges.
func (e *Editor) EnsureCursorVisible() {
	v := &e.View
	h := e.lineHeight()
	cw := e.charWidth()
	if h <= 0 {
		return
	}

	top := 1 + int(math.Ceil(v.ScrollY/h))
	bottom := int(math.Ceil((v.ScrollY + v.Height) / h))

	pos := e.CursorPosition()
	x := e.TextDistanceToLineStart(pos) + e.TextStart()

	if pos.Line < top {
		v.ScrollY = max(0, float64(pos.Line-1)*h)
	}
	if pos.Line > bottom-4 {
		v.ScrollY = max(0, float64(pos.Line+4)*h-v.Height)
	}
	if x < v.ScrollX+4*cw {
		v.ScrollX = max(0, x-4*cw)
	}
	if x > v.ScrollX+v.Width-4*cw {
		v.ScrollX = max(0, x+4*cw-v.Width)
	}
}
