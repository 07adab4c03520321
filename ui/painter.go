// Package ui is a terminal host for the editor engine built on tcell.
package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"texteditor/editor"
)

// Region is a rectangle of screen cells.
type Region struct {
	X, Y, W, H int
}

func (r Region) contains(cx, cy int) bool {
	return cx >= r.X && cx < r.X+r.W && cy >= r.Y && cy < r.Y+r.H
}

// cell converts a draw-list position to an absolute screen cell.
func (r Region) cell(x, y float64) (int, int) {
	return r.X + int(math.Floor(x)), r.Y + int(math.Floor(y))
}

// Paint renders a draw list into r, one cell per measurer unit. Fills
// change only the background of the cells they cover; text keeps the
// background already painted beneath it.
func Paint(screen tcell.Screen, r Region, cmds []editor.DrawCommand) {
	for cy := r.Y; cy < r.Y+r.H; cy++ {
		for cx := r.X; cx < r.X+r.W; cx++ {
			screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault)
		}
	}
	cursorShown := false
	for _, c := range cmds {
		switch c.Kind {
		case editor.FillRect:
			fill(screen, r, c)
		case editor.Text, editor.LineNumber:
			cx, cy := r.cell(c.X, c.Y)
			drawString(screen, r, cx, cy, c.Text, c.Color)
		case editor.TabMarker:
			cx, cy := r.cell(c.X, c.Y)
			drawString(screen, r, cx, cy, "→", c.Color)
		case editor.SpaceMarker:
			cx, cy := r.cell(c.X, c.Y)
			drawString(screen, r, cx, cy, "·", c.Color)
		case editor.Cursor:
			cx, cy := r.cell(c.X, c.Y)
			if !r.contains(cx, cy) {
				continue
			}
			if c.W > 1 {
				// overwrite mode: block over the character
				for i := 0; i < int(math.Round(c.W)); i++ {
					reverse(screen, r, cx+i, cy)
				}
			} else {
				screen.ShowCursor(cx, cy)
				cursorShown = true
			}
		case editor.StrokeRect:
			// cells have no outline
		}
	}
	if !cursorShown {
		screen.HideCursor()
	}
}

func fill(screen tcell.Screen, r Region, c editor.DrawCommand) {
	x0, y0 := r.cell(c.X, c.Y)
	x1, y1 := r.cell(c.X+c.W, c.Y+c.H)
	if x1 == x0 && c.W > 0 {
		x1++
	}
	if y1 == y0 && c.H > 0 {
		y1++
	}
	for cy := max(y0, r.Y); cy < min(y1, r.Y+r.H); cy++ {
		for cx := max(x0, r.X); cx < min(x1, r.X+r.W); cx++ {
			mainc, comb, style, _ := screen.GetContent(cx, cy) //nolint:staticcheck
			if mainc == 0 {
				mainc = ' '
			}
			screen.SetContent(cx, cy, mainc, comb, style.Background(c.Color))
		}
	}
}

func drawString(screen tcell.Screen, r Region, cx, cy int, s string, fg tcell.Color) {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if r.contains(cx, cy) {
			_, _, style, _ := screen.GetContent(cx, cy) //nolint:staticcheck
			screen.SetContent(cx, cy, ch, nil, style.Foreground(fg))
		}
		cx += max(1, w)
	}
}

func reverse(screen tcell.Screen, r Region, cx, cy int) {
	if !r.contains(cx, cy) {
		return
	}
	mainc, comb, style, _ := screen.GetContent(cx, cy) //nolint:staticcheck
	screen.SetContent(cx, cy, mainc, comb, style.Reverse(true))
}
