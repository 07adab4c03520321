package ui

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"texteditor/buffer"
	"texteditor/editor"
)

// FileState is what is remembered about a file between runs.
type FileState struct {
	Path        string `json:"path"`
	Line        int    `json:"cursor_line"`
	Col         int    `json:"cursor_col"`
	Breakpoints []int  `json:"breakpoints,omitempty"`
}

func sessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "texteditor", "sessions")
}

func sessionPath(filePath string) string {
	hash := sha256.Sum256([]byte(filePath))
	return filepath.Join(sessionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

// CaptureState records the cursor and breakpoints of e.
func CaptureState(path string, e *editor.Editor) FileState {
	pos := e.CursorPosition()
	return FileState{
		Path:        path,
		Line:        pos.Line,
		Col:         pos.Column,
		Breakpoints: e.Breakpoints(),
	}
}

// RestoreState applies fs to e. A cursor past the end of the text is
// clamped, and the view scrolls to it on the next layout.
func RestoreState(fs FileState, e *editor.Editor) {
	pos := buffer.Coordinates{Line: fs.Line, Column: fs.Col}
	e.SetSelection(pos, pos, editor.Normal)
	e.SetCursorPosition(pos)
	e.SetBreakpoints(fs.Breakpoints)
}

// SaveSession stores the state of the open file. Untitled buffers are not
// remembered.
func (a *App) SaveSession() error {
	if a.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(CaptureState(a.path, a.ed), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(sessionDir(), 0o755); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	return os.WriteFile(sessionPath(a.path), data, 0o644)
}

// RestoreSession reapplies the state stored for the open file. It reports
// whether a matching session was found.
func (a *App) RestoreSession() bool {
	if a.path == "" {
		return false
	}
	data, err := os.ReadFile(sessionPath(a.path))
	if err != nil {
		return false
	}
	var fs FileState
	if err := json.Unmarshal(data, &fs); err != nil || fs.Path != a.path {
		return false
	}
	RestoreState(fs, a.ed)
	return true
}
