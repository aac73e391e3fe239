package state

// History is the undo/redo stack of recorded nodes.
//
// committed holds the nodes in recording order. undone holds the nodes taken back by
// Undo, most recently undone last. A node is moved between the two, never copied, so it
// always lives in exactly one of them.
type History struct {
	committed []Node
	undone    []Node
}

// NewHistory starts a history from an existing recording.
func NewHistory(nodes []Node) *History {
	h := &History{}
	h.committed = append(h.committed, nodes...)
	return h
}

// Record appends a node. A Down node starts a new branch and discards the redo list.
func (h *History) Record(n Node) {
	if n.Kind == KindDown {
		h.undone = h.undone[:0]
	}
	h.committed = append(h.committed, n)
}

// Undo takes back the most recent stroke, or the most recent clear, as one unit.
// It reports false when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.committed) == 0 {
		return false
	}
	h.committed, h.undone = transfer(h.committed, h.undone, KindDown)
	return true
}

// Redo re-applies the most recently undone stroke or clear.
// It reports false when the redo list is empty.
func (h *History) Redo() bool {
	if len(h.undone) == 0 {
		return false
	}
	h.undone, h.committed = transfer(h.undone, h.committed, KindUp)
	return true
}

// transfer pops nodes off the end of from and pushes them onto to until it has moved
// a node of kind stop. A clear marker on top moves alone, and a clear marker met later
// ends the scan without being moved.
func transfer(from, to []Node, stop Kind) ([]Node, []Node) {
	last := len(from) - 1
	if from[last].Kind == KindClear {
		return from[:last], append(to, from[last])
	}
	for i := last; i >= 0; i-- {
		n := from[i]
		if n.Kind == KindClear {
			break
		}
		from = from[:i]
		to = append(to, n)
		if n.Kind == stop {
			break
		}
	}
	return from, to
}

// Truncate drops the committed nodes, keeping the redo list.
func (h *History) Truncate() {
	h.committed = h.committed[:0]
}

// Committed returns a copy of the committed nodes.
func (h *History) Committed() []Node {
	out := make([]Node, len(h.committed))
	copy(out, h.committed)
	return out
}

func (h *History) Len() int      { return len(h.committed) }
func (h *History) CanUndo() bool { return len(h.committed) > 0 }
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Strokes counts the undo units in committed: strokes plus clears.
func (h *History) Strokes() int {
	count := 0
	for i, n := range h.committed {
		switch {
		case n.Kind == KindDown, n.Kind == KindClear:
			count++
		case i == 0:
			// a recording may open mid-stroke
			count++
		}
	}
	return count
}
