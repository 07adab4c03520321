package buffer

import (
	"maps"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// Markers annotates lines with error messages and breakpoints. Lines are
// 0-based here; the editor exposes them 1-based. The buffer renumbers them
// on every structural edit.
type Markers struct {
	errors      map[int]string
	breakpoints *bitset.BitSet
}

func NewMarkers() *Markers {
	return &Markers{
		errors:      make(map[int]string),
		breakpoints: bitset.New(0),
	}
}

// SetErrors replaces every error marker.
func (m *Markers) SetErrors(errs map[int]string) {
	m.errors = make(map[int]string, len(errs))
	for line, msg := range errs {
		if line >= 0 {
			m.errors[line] = msg
		}
	}
}

func (m *Markers) Error(line int) (string, bool) {
	msg, ok := m.errors[line]
	return msg, ok
}

// Errors returns a copy of the error markers.
func (m *Markers) Errors() map[int]string {
	return maps.Clone(m.errors)
}

func (m *Markers) AddBreakpoint(line int) {
	if line >= 0 {
		m.breakpoints.Set(uint(line))
	}
}

func (m *Markers) RemoveBreakpoint(line int) {
	if line >= 0 {
		m.breakpoints.Clear(uint(line))
	}
}

func (m *Markers) HasBreakpoint(line int) bool {
	return line >= 0 && m.breakpoints.Test(uint(line))
}

func (m *Markers) ClearBreakpoints() {
	m.breakpoints.ClearAll()
}

// Breakpoints lists breakpoint lines in ascending order.
func (m *Markers) Breakpoints() []int {
	var out []int
	for i, ok := m.breakpoints.NextSet(0); ok; i, ok = m.breakpoints.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// LinesInserted shifts markers at or after at down by n lines.
func (m *Markers) LinesInserted(at, n int) {
	if n <= 0 {
		return
	}
	shifted := make(map[int]string, len(m.errors))
	for line, msg := range m.errors {
		if line >= at {
			line += n
		}
		shifted[line] = msg
	}
	m.errors = shifted

	for i := 0; i < n; i++ {
		if uint(at) >= m.breakpoints.Len() {
			break
		}
		m.breakpoints.InsertAt(uint(at))
	}
}

// LinesRemoved drops markers in [start, end) and shifts the ones after
// end up by end-start.
func (m *Markers) LinesRemoved(start, end int) {
	n := end - start
	if n <= 0 {
		return
	}
	shifted := make(map[int]string, len(m.errors))
	lines := make([]int, 0, len(m.errors))
	for line := range m.errors {
		lines = append(lines, line)
	}
	slices.Sort(lines)
	for _, line := range lines {
		switch {
		case line < start:
			shifted[line] = m.errors[line]
		case line >= end:
			shifted[line-n] = m.errors[line]
		}
	}
	m.errors = shifted

	for i := 0; i < n; i++ {
		if uint(start) >= m.breakpoints.Len() {
			break
		}
		m.breakpoints.DeleteAt(uint(start))
	}
}
