package buffer

import "testing"

// insert applies an insertion and records it the way the editor does.
func insert(b *Buffer, log *UndoLog, at Coordinates, text string) {
	before := EditorState{Cursor: at}
	end, _ := b.InsertTextAt(at, text)
	log.Push(UndoRecord{
		Added:      text,
		AddedStart: at,
		AddedEnd:   end,
		Before:     before,
		After:      EditorState{Cursor: end},
	})
}

func remove(b *Buffer, log *UndoLog, start, end Coordinates) {
	text := b.TextRange(start, end)
	b.DeleteRange(start, end)
	log.Push(UndoRecord{
		Removed:      text,
		RemovedStart: start,
		RemovedEnd:   end,
		Before:       EditorState{Cursor: end},
		After:        EditorState{Cursor: start},
	})
}

func TestUndoRedoInverse(t *testing.T) {
	b := New(4)
	b.SetText("func main() {\n}")
	log := NewUndoLog(0)

	insert(b, log, Coordinates{0, 13}, "\n\tprintln(1)")
	insert(b, log, Coordinates{1, 11}, "+2")
	remove(b, log, Coordinates{0, 4}, Coordinates{1, 5})
	insert(b, log, Coordinates{0, 4}, "\n")
	final := b.Text()

	var st EditorState
	for i := 0; i < 4; i++ {
		var ok bool
		if st, ok = log.Undo(b); !ok {
			t.Fatalf("expected undo step %d to succeed", i)
		}
	}
	if got := b.Text(); got != "func main() {\n}" {
		t.Fatalf("expected original text after undo, got %q", got)
	}
	if st.Cursor != (Coordinates{0, 13}) {
		t.Fatalf("expected cursor at first edit, got %v", st.Cursor)
	}
	if log.CanUndo() {
		t.Fatalf("expected nothing left to undo")
	}

	for i := 0; i < 4; i++ {
		st, _ = log.Redo(b)
	}
	if got := b.Text(); got != final {
		t.Fatalf("expected %q after redo, got %q", final, got)
	}
	if st.Cursor != (Coordinates{1, 0}) {
		t.Fatalf("expected cursor after last edit, got %v", st.Cursor)
	}
}

func TestNewEditTruncatesRedo(t *testing.T) {
	b := New(4)
	log := NewUndoLog(0)
	insert(b, log, Coordinates{0, 0}, "ab")
	insert(b, log, Coordinates{0, 2}, "cd")

	log.Undo(b)
	if !log.CanRedo() {
		t.Fatalf("expected redo to be available after undo")
	}
	insert(b, log, Coordinates{0, 2}, "x")
	if log.CanRedo() {
		t.Fatalf("expected redo future to be discarded")
	}
	if got := b.Text(); got != "abx" {
		t.Fatalf("expected abx, got %q", got)
	}
	if log.Len() != 2 || log.Index() != 2 {
		t.Fatalf("expected 2 records at index 2, got %d at %d", log.Len(), log.Index())
	}
}

func TestUndoLimitDropsOldest(t *testing.T) {
	b := New(4)
	log := NewUndoLog(2)
	for i, s := range []string{"a", "b", "c"} {
		insert(b, log, Coordinates{0, i}, s)
	}
	if log.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", log.Len())
	}
	log.Undo(b)
	log.Undo(b)
	if _, ok := log.Undo(b); ok {
		t.Fatalf("expected the oldest record to be gone")
	}
	if got := b.Text(); got != "a" {
		t.Fatalf("expected a, got %q", got)
	}

	log.SetLimit(1)
	if log.Len() != 1 || log.Index() != 0 {
		t.Fatalf("expected 1 record at index 0, got %d at %d", log.Len(), log.Index())
	}
	log.Clear()
	if log.CanRedo() || log.CanUndo() {
		t.Fatalf("expected empty log after clear")
	}
}
