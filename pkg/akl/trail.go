package akl

// trailEntry records a single variable binding so it can be undone later.
// previous is the term the variable was bound to before this entry's
// binding (nil if it was unbound).
type trailEntry struct {
	varID    int64
	previous Term
}

// Trail is the append-only undo log of variable bindings.
// Undoing to a recorded position restores every variable touched since
// that position to its prior binding.
type Trail struct {
	entries []trailEntry
}

// NewTrail creates an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// record appends a new entry. Only VarStore.Bind calls this, so every
// binding is trailed without exception.
func (t *Trail) record(varID int64, previous Term) {
	t.entries = append(t.entries, trailEntry{varID: varID, previous: previous})
}

// Mark returns the current trail position, to be passed to Undo later.
func (t *Trail) Mark() int {
	return len(t.entries)
}

// Len reports the number of entries currently on the trail, used by
// EmptyTrail to test whether any bindings were made since an and-box's
// guard began executing.
func (t *Trail) Len() int {
	return len(t.entries)
}

// Undo restores every variable bound since mark back to its prior state,
// in reverse order so chained rebindings unwind correctly, and truncates
// the trail to mark.
func (t *Trail) Undo(mark int, store *VarStore) {
	for i := len(t.entries) - 1; i >= mark; i-- {
		e := t.entries[i]
		store.unbind(e.varID, e.previous)
	}
	t.entries = t.entries[:mark]
}

// Context is a snapshot of the trail position a worker must save and
// restore around an isolated sub-execution — negation-as-failure or an
// if-then-else condition. The task, wake,
// recall and pending-solution streams are never shared with an isolated
// sub-execution in the first place: runSubGoal (worker.go) gives every
// isolated run its own throwaway task/wake/recall queues and its own
// solution count, so popping those three streams back to a mark would be a
// no-op by construction. Only the trail is genuinely shared mutable state
// that must be unwound.
type Context struct {
	trailMark int
}

// PushContext snapshots the trail. Pair with PopContext.
func (w *Worker) PushContext() Context {
	return Context{trailMark: w.trail.Mark()}
}

// PopContext undoes every trail entry recorded since ctx was pushed. It is
// unconditional: call it on every exit path of an isolated sub-execution,
// success or failure, so the isolation boundary never leaks.
func (w *Worker) PopContext(ctx Context) {
	w.trail.Undo(ctx.trailMark, w.vars)
}
