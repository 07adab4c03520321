package editor

// Marker APIs take and return 1-based line numbers.

// SetErrorMarkers replaces every error marker. Keys are line numbers.
func (e *Editor) SetErrorMarkers(markers map[int]string) {
	errs := make(map[int]string, len(markers))
	for line, msg := range markers {
		errs[line-1] = msg
	}
	e.buf.Markers.SetErrors(errs)
}

func (e *Editor) ErrorMarkers() map[int]string {
	errs := e.buf.Markers.Errors()
	out := make(map[int]string, len(errs))
	for line, msg := range errs {
		out[line+1] = msg
	}
	return out
}

// ErrorAt returns the message attached to a line.
func (e *Editor) ErrorAt(line int) (string, bool) {
	return e.buf.Markers.Error(line - 1)
}

func (e *Editor) AddBreakpoint(line int)    { e.buf.Markers.AddBreakpoint(line - 1) }
func (e *Editor) RemoveBreakpoint(line int) { e.buf.Markers.RemoveBreakpoint(line - 1) }

func (e *Editor) HasBreakpoint(line int) bool {
	return e.buf.Markers.HasBreakpoint(line - 1)
}

// ToggleBreakpoint flips the breakpoint on a line and reports whether it
// is now set.
func (e *Editor) ToggleBreakpoint(line int) bool {
	if e.HasBreakpoint(line) {
		e.RemoveBreakpoint(line)
		return false
	}
	e.AddBreakpoint(line)
	return true
}

// SetBreakpoints replaces every breakpoint.
func (e *Editor) SetBreakpoints(lines []int) {
	e.buf.Markers.ClearBreakpoints()
	for _, l := range lines {
		e.AddBreakpoint(l)
	}
}

// Breakpoints lists breakpoint lines in ascending order.
func (e *Editor) Breakpoints() []int {
	bps := e.buf.Markers.Breakpoints()
	for i := range bps {
		bps[i]++
	}
	return bps
}
