package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"texteditor/editor"
	"texteditor/palette"
)

type StatusBar struct {
	Mode     string // "EDIT", "OVR" or "VIEW"
	Filename string
	Modified bool
	Line     int
	Col      int
	Language string
	Encoding string
	TabInfo  string // "Tab: 4"
	Message  string // temporary status message
	Hint     string // error marker or identifier declaration under the cursor
	SelChars int    // number of selected bytes (0 = no selection)
	SelLines int    // number of selected lines
	Errors   int    // number of error markers
	Palette  palette.Palette
}

func NewStatusBar() *StatusBar {
	return &StatusBar{
		Mode:     "EDIT",
		Encoding: "UTF-8",
		Palette:  palette.Dark(),
	}
}

// Sync copies the state worth showing from e.
func (s *StatusBar) Sync(e *editor.Editor) {
	s.Palette = e.Palette()
	switch {
	case e.IsReadOnly():
		s.Mode = "VIEW"
	case e.IsOverwrite():
		s.Mode = "OVR"
	default:
		s.Mode = "EDIT"
	}
	pos := e.CursorPosition()
	s.Line, s.Col = pos.Line, pos.Column
	if d := e.LanguageDefinition(); d != nil {
		s.Language = d.Name
	}
	s.TabInfo = fmt.Sprintf("Tab: %d", e.TabSize())
	if e.IsExpandingTabs() {
		s.TabInfo = fmt.Sprintf("Spaces: %d", e.TabSize())
	}
	s.Errors = len(e.ErrorMarkers())

	s.SelChars, s.SelLines = 0, 0
	if e.HasSelection() {
		sel := e.Selection()
		s.SelChars = len(e.SelectedText())
		s.SelLines = sel.End.Line - sel.Start.Line + 1
	}

	s.Hint = ""
	if msg, ok := e.ErrorAt(pos.Line + 1); ok {
		s.Hint = msg
	} else if id, ok := e.IdentifierAt(pos); ok {
		s.Hint = id.Declaration
	}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	p := s.Palette
	style := tcell.StyleDefault.Background(p.Color(palette.LineNumber)).Foreground(p.Color(palette.Background))
	modeStyle := tcell.StyleDefault.Background(p.Color(palette.Keyword)).Foreground(p.Color(palette.Background)).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	limit := x + width
	put := func(text string, st tcell.Style) {
		for _, ch := range text {
			if col < limit {
				screen.SetContent(col, y, ch, nil, st)
				col++
			}
		}
	}

	put(" "+s.Mode+" ", modeStyle)
	put(" ", style)

	// a temporary message replaces everything else
	if s.Message != "" {
		put(s.Message, style)
		return
	}

	errPart := ""
	if s.Errors > 0 {
		errPart = fmt.Sprintf("E:%d │ ", s.Errors)
	}
	var right string
	if s.SelChars > 0 {
		right = fmt.Sprintf("%sSel: %d chars, %d lines │ Ln %d, Col %d │ %s │ %s │ %s ", errPart, s.SelChars, s.SelLines, s.Line+1, s.Col+1, s.Language, s.Encoding, s.TabInfo)
	} else {
		right = fmt.Sprintf("%sLn %d, Col %d │ %s │ %s │ %s ", errPart, s.Line+1, s.Col+1, s.Language, s.Encoding, s.TabInfo)
	}
	rightRunes := []rune(right)
	rightStart := x + width - len(rightRunes)

	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	}
	if s.Modified {
		fname += " [+]"
	}
	put(fname, style)
	if s.Hint != "" && rightStart > col+2 {
		limit = rightStart - 2
		put("  "+s.Hint, style.Italic(true))
	}

	if rightStart <= col+2 {
		return
	}
	errLen := len([]rune(errPart))
	for i, ch := range rightRunes {
		st := style
		if i < errLen-2 {
			st = style.Foreground(tcell.ColorRed)
		}
		screen.SetContent(rightStart+i, y, ch, nil, st)
	}
}
