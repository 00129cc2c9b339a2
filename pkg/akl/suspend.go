package akl

// Suspension links a variable to an and-box or a choice-box that must be
// re-examined when the variable becomes bound. Exactly one
// of Box or Choice is set: and-box suspensions are the common case (a
// guard suspended on an external variable); choice-box suspensions back
// the rare RECALL task for unordered, bagof-style guards.
type Suspension struct {
	Box    *AndBox
	Choice *ChoiceBox
}

// wake appends the task this suspension implies to the worker's wake or
// recall queue.
func (s Suspension) wake(w *Worker) {
	switch {
	case s.Box != nil:
		if s.Box.Status == StatusDead {
			return
		}
		w.wakeQueue = append(w.wakeQueue, s.Box)
	case s.Choice != nil:
		w.recallQueue = append(w.recallQueue, s.Choice)
	}
}

// wakeSuspensions drains v's suspension list and enqueues a wake/recall
// task for every surviving waiter.
func wakeSuspensions(w *Worker, v *Var) {
	for _, susp := range w.vars.DrainSuspensions(v) {
		susp.wake(w)
	}
}
