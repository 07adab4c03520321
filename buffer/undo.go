package buffer

// UndoRecord is one reversible edit: the text it added, the text it removed
// and the editor state on either side of it.
type UndoRecord struct {
	Added      string
	AddedStart Coordinates
	AddedEnd   Coordinates

	Removed      string
	RemovedStart Coordinates
	RemovedEnd   Coordinates

	Before EditorState
	After  EditorState
}

// Undo reverts the record against b and returns the state to restore.
func (r *UndoRecord) Undo(b *Buffer) EditorState {
	if r.Added != "" {
		b.DeleteRange(r.AddedStart, r.AddedEnd)
	}
	if r.Removed != "" {
		b.InsertTextAt(r.RemovedStart, r.Removed)
	}
	return r.Before
}

// Redo reapplies the record against b and returns the state to restore.
func (r *UndoRecord) Redo(b *Buffer) EditorState {
	if r.Removed != "" {
		b.DeleteRange(r.RemovedStart, r.RemovedEnd)
	}
	if r.Added != "" {
		b.InsertTextAt(r.AddedStart, r.Added)
	}
	return r.After
}

// UndoLog is a linear history with a cursor. Records before the cursor can
// be undone, records at or after it can be redone.
type UndoLog struct {
	records []UndoRecord
	index   int
	limit   int
}

// NewUndoLog returns a log keeping at most limit records; zero means
// unbounded.
func NewUndoLog(limit int) *UndoLog {
	return &UndoLog{limit: max(0, limit)}
}

// Push appends r at the cursor, discarding the redo future.
func (u *UndoLog) Push(r UndoRecord) {
	u.records = append(u.records[:u.index], r)
	u.index++
	if u.limit > 0 && len(u.records) > u.limit {
		drop := len(u.records) - u.limit
		u.records = append(u.records[:0], u.records[drop:]...)
		u.index -= drop
	}
}

func (u *UndoLog) CanUndo() bool { return u.index > 0 }
func (u *UndoLog) CanRedo() bool { return u.index < len(u.records) }

// Undo steps the cursor back one record, reverting it against b.
func (u *UndoLog) Undo(b *Buffer) (EditorState, bool) {
	if !u.CanUndo() {
		return EditorState{}, false
	}
	u.index--
	return u.records[u.index].Undo(b), true
}

// Redo reapplies the record at the cursor and steps forward.
func (u *UndoLog) Redo(b *Buffer) (EditorState, bool) {
	if !u.CanRedo() {
		return EditorState{}, false
	}
	st := u.records[u.index].Redo(b)
	u.index++
	return st, true
}

func (u *UndoLog) Len() int   { return len(u.records) }
func (u *UndoLog) Index() int { return u.index }

func (u *UndoLog) Clear() {
	u.records = nil
	u.index = 0
}

// SetLimit changes the maximum depth, dropping the oldest records if the
// log is already deeper.
func (u *UndoLog) SetLimit(limit int) {
	u.limit = max(0, limit)
	if u.limit > 0 && len(u.records) > u.limit {
		drop := len(u.records) - u.limit
		u.records = append(u.records[:0], u.records[drop:]...)
		u.index = max(0, u.index-drop)
	}
}
