package editor

type GutterMark int

const (
	GutterNone GutterMark = iota
	GutterBreakpoint
	GutterError // takes precedence over a breakpoint on the same line
)

// GutterAt returns the marker to show next to a line (0-indexed).
func (e *Editor) GutterAt(line int) GutterMark {
	if _, ok := e.buf.Markers.Error(line); ok {
		return GutterError
	}
	if e.buf.Markers.HasBreakpoint(line) {
		return GutterBreakpoint
	}
	return GutterNone
}
