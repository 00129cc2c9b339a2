package akl

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Sentinel errors for the failure categories surfaced to callers rather
// than handled purely by internal failure propagation.
var (
	// ErrStepLimitExceeded is returned by Solve when the worker's step
	// budget is exhausted before the task queue drains. Partial solutions
	// collected so far are still returned alongside this error.
	ErrStepLimitExceeded = fmt.Errorf("akl: step limit exceeded")

	// ErrDeadlocked is returned when no candidate and-box could be found
	// for splitting and the computation is otherwise unsolved. The worker
	// still returns all solutions found before the deadlock.
	ErrDeadlocked = fmt.Errorf("akl: computation deadlocked, no split candidate")

	// ErrUnknownPredicate is returned during goal expansion when a goal's
	// functor/arity has no registered clauses and the predicate store was
	// opened with NewStrictPredicateStore.
	ErrUnknownPredicate = fmt.Errorf("akl: unknown predicate")
)

// InvariantError reports a violation of one of the core's own bookkeeping
// invariants or a goal form the core does not support — an attempt to
// rebind an already-bound variable outside the trail protocol (VarStore.Bind
// panics with it), or `!` used as a body goal (the worker returns it from
// Run). These are not goal failures: the interpreter's internal state, or
// the shape of the program, is at fault rather than a goal's logic.
type InvariantError struct {
	// Op names the operation that detected the violation (e.g.
	// "VarStore.Bind", "worker.dispatch").
	Op string
	// Detail is a human-readable description of what was found.
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("akl: invariant violation in %s: %s", e.Op, e.Detail)
}

// OccursCheckError is returned by unify when binding a variable to a term
// would create a cycle.
type OccursCheckError struct {
	VarName string
}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf("akl: occurs check failed for %s", e.VarName)
}

// DeadlockReport explains why a run stopped without a split candidate: a
// deadlocked program's author needs to know which and-boxes were inspected
// and why none qualified, not just that a deadlock occurred.
type DeadlockReport struct {
	// Inspected lists, for every descendant and-box the candidate search
	// visited, a one-line reason it was rejected.
	Inspected []string
}

// Unwrap lets callers use errors.Is(err, ErrDeadlocked) without losing the
// per-candidate detail in Error().
func (r *DeadlockReport) Unwrap() error {
	return ErrDeadlocked
}

func (r *DeadlockReport) Error() string {
	if len(r.Inspected) == 0 {
		return "akl: deadlock, no stable and-box to inspect"
	}
	var me *multierror.Error
	for _, reason := range r.Inspected {
		me = multierror.Append(me, fmt.Errorf("%s", reason))
	}
	me.ErrorFormat = func(errs []error) string {
		s := fmt.Sprintf("akl: deadlock, %d candidate(s) rejected:", len(errs))
		for _, e := range errs {
			s += "\n  - " + e.Error()
		}
		return s
	}
	return me.Error()
}
