package editor

import (
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"texteditor/buffer"
	"texteditor/palette"
)

type DrawKind int

const (
	FillRect DrawKind = iota
	StrokeRect
	Text
	LineNumber
	Cursor
	// TabMarker is an arrow from X to X+W at Y.
	TabMarker
	// SpaceMarker is a dot centred on X, Y.
	SpaceMarker
)

// DrawCommand is one abstract drawing instruction. Positions are relative
// to the viewport origin with scrolling already applied.
type DrawCommand struct {
	Kind       DrawKind
	X, Y, W, H float64
	Text       string
	Color      tcell.Color
	// Line is the buffer line the command belongs to, or -1.
	Line int
}

// glyphColor resolves the colour a glyph is drawn in.
func (e *Editor) glyphColor(g buffer.Glyph) tcell.Color {
	if !e.colorizer.Enabled {
		return e.palette.Color(palette.Default)
	}
	return e.palette.Resolve(g.Color, g.Comment, g.BlockComment, g.Preprocessor)
}

// Layout applies pending scroll requests to View and returns the draw list
// for the visible lines, back to front.
func (e *Editor) Layout() []DrawCommand {
	v := &e.View
	if e.scrollToTop {
		e.scrollToTop = false
		v.ScrollY = 0
	}
	if e.scrollToCursor {
		e.scrollToCursor = false
		e.EnsureCursorVisible()
	}

	cmds := []DrawCommand{{
		Kind: FillRect, W: v.Width, H: v.Height,
		Color: e.palette.Color(palette.Background), Line: -1,
	}}
	h := e.lineHeight()
	if h <= 0 {
		return cmds
	}

	first := max(0, int(math.Floor(v.ScrollY/h)))
	last := min(e.buf.LineCount()-1, int(math.Floor((v.ScrollY+v.Height)/h)))
	textStart := e.TextStart()
	space := e.spaceWidth()
	cursor := e.CursorPosition()
	sel := e.state.Selection

	for lineNo := first; lineNo <= last; lineNo++ {
		y := float64(lineNo)*h - v.ScrollY
		textX := textStart - v.ScrollX
		line := e.buf.Lines[lineNo]
		lineStart := buffer.Coordinates{Line: lineNo}
		lineEnd := buffer.Coordinates{Line: lineNo, Column: e.buf.LineMaxColumn(lineNo)}

		sstart, send := -1.0, -1.0
		if !lineEnd.Before(sel.Start) {
			sstart = 0
			if lineStart.Before(sel.Start) {
				sstart = e.TextDistanceToLineStart(sel.Start)
			}
		}
		if lineStart.Before(sel.End) {
			end := lineEnd
			if sel.End.Before(lineEnd) {
				end = sel.End
			}
			send = e.TextDistanceToLineStart(end)
		}
		if sel.End.Line > lineNo {
			send += e.charWidth()
		}
		if sstart >= 0 && send >= 0 && sstart < send {
			cmds = append(cmds, DrawCommand{
				Kind: FillRect, X: textX + sstart, Y: y, W: send - sstart, H: h,
				Color: e.palette.Color(palette.Selection), Line: lineNo,
			})
		}

		switch e.GutterAt(lineNo) {
		case GutterError:
			if e.buf.Markers.HasBreakpoint(lineNo) {
				cmds = append(cmds, e.lineFill(lineNo, y, palette.Breakpoint))
			}
			cmds = append(cmds, e.lineFill(lineNo, y, palette.ErrorMarker))
		case GutterBreakpoint:
			cmds = append(cmds, e.lineFill(lineNo, y, palette.Breakpoint))
		}

		if e.showLineNumbers {
			label := strconv.Itoa(lineNo+1) + "  "
			cmds = append(cmds, DrawCommand{
				Kind: LineNumber, X: textX - e.measure.TextWidth(label), Y: y, H: h,
				Text: label, Color: e.palette.Color(palette.LineNumber), Line: lineNo,
			})
		}

		if cursor.Line == lineNo {
			if !e.HasSelection() {
				fill := palette.CurrentLineFillInactive
				if v.Focused {
					fill = palette.CurrentLineFill
				}
				cmds = append(cmds, e.lineFill(lineNo, y, fill))
				edge := e.lineFill(lineNo, y, palette.CurrentLineEdge)
				edge.Kind = StrokeRect
				cmds = append(cmds, edge)
			}
			if v.Focused {
				cmds = append(cmds, e.cursorRect(line, cursor, textX, y))
			}
		}

		cmds = e.appendText(cmds, line, lineNo, textX, y, space)
	}
	return cmds
}

func (e *Editor) lineFill(lineNo int, y float64, i palette.Index) DrawCommand {
	return DrawCommand{
		Kind: FillRect, Y: y, W: e.View.Width, H: e.lineHeight(),
		Color: e.palette.Color(i), Line: lineNo,
	}
}

func (e *Editor) cursorRect(line buffer.Line, cursor buffer.Coordinates, textX, y float64) DrawCommand {
	cx := e.TextDistanceToLineStart(cursor)
	width := 1.0
	if i := e.buf.CharacterIndex(cursor); e.overwrite && i < len(line) {
		if line[i].Char == '\t' {
			width = e.tabStop(cx) - cx
		} else {
			n := min(e.buf.CharLen(line[i].Char), len(line)-i)
			width = e.measure.TextWidth(line[i : i+n].String())
		}
	}
	return DrawCommand{
		Kind: Cursor, X: textX + cx, Y: y, W: width, H: e.lineHeight(),
		Color: e.palette.Color(palette.Cursor), Line: cursor.Line,
	}
}

// appendText emits runs of equally coloured glyphs. Runs break at tabs and
// spaces so that whitespace never has to be measured as text.
func (e *Editor) appendText(cmds []DrawCommand, line buffer.Line, lineNo int, textX, y, space float64) []DrawCommand {
	if len(line) == 0 {
		return cmds
	}
	h := e.lineHeight()
	offset := 0.0
	var pending []byte
	runX := 0.0
	prev := e.glyphColor(line[0])
	emit := func() {
		if len(pending) == 0 {
			return
		}
		s := string(pending)
		w := e.measure.TextWidth(s)
		cmds = append(cmds, DrawCommand{
			Kind: Text, X: textX + runX, Y: y, W: w, H: h,
			Text: s, Color: prev, Line: lineNo,
		})
		offset = runX + w
		pending = pending[:0]
	}

	for i := 0; i < len(line); {
		g := line[i]
		color := e.glyphColor(g)
		if color != prev || g.Char == '\t' || g.Char == ' ' {
			emit()
		}
		prev = color

		switch g.Char {
		case '\t':
			old := offset
			offset = e.tabStop(offset)
			if e.showWhitespace {
				cmds = append(cmds, DrawCommand{
					Kind: TabMarker, X: textX + old + 1, Y: y + h*0.5, W: offset - old - 2,
					Color: e.palette.Color(palette.LineNumber), Line: lineNo,
				})
			}
			i++
		case ' ':
			if e.showWhitespace {
				cmds = append(cmds, DrawCommand{
					Kind: SpaceMarker, X: textX + offset + space*0.5, Y: y + h*0.5,
					Color: e.palette.Color(palette.LineNumber), Line: lineNo,
				})
			}
			offset += space
			i++
		default:
			if len(pending) == 0 {
				runX = offset
			}
			n := min(e.buf.CharLen(g.Char), len(line)-i)
			for k := 0; k < n; k++ {
				pending = append(pending, line[i+k].Char)
			}
			i += n
		}
	}
	emit()
	return cmds
}
