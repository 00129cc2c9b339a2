package akl

import (
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-set/v3"
)

// Program is a loaded AKL program: the predicate/clause registry the
// external parser/compiler boundary populates, plus the built-in set
// available to it. Clause loading itself is outside
// this core's scope; Program is just the handle Solve consumes.
type Program struct {
	Predicates *PredicateStore
	Builtins   map[string]BuiltinFunc
}

// NewProgram creates a Program with an empty clause registry and the
// minimum built-in set installed.
func NewProgram() *Program {
	return &Program{
		Predicates: NewPredicateStore(),
		Builtins:   defaultBuiltins(),
	}
}

// RegisterBuiltin installs or overrides a built-in under name/arity.
func (p *Program) RegisterBuiltin(name string, arity int, fn BuiltinFunc) {
	p.Builtins[builtinKey(name, arity)] = fn
}

// Solve drives a query to completion or the step budget: it
// seeds a worker with program's clauses and built-ins, runs it, and
// deduplicates the resulting solutions by their rendered form — splitting
// can, for some programs, realize the same ground answer down more than one
// branch (e.g. two clauses whose guards both commit on equal but
// syntactically distinct terms), and a solution stream is more useful to a
// caller with that redundancy removed.
//
// On ErrStepLimitExceeded the solutions collected before the budget ran out
// are still returned alongside the error; likewise a *DeadlockReport names
// every live and-box the split search inspected and rejected.
func Solve(program *Program, query Term, maxSteps int, logger hclog.Logger) ([]Term, error) {
	w := NewWorker(program.Predicates, program.Builtins, logger, maxSteps)
	raw, err := w.Run(query)
	return dedupeSolutions(raw), err
}

// Bindings pairs each named variable of query with the term it took in
// solution (one of the terms returned by Solve for that query), keyed by
// display name. Anonymous variables and unnamed fresh variables are
// skipped; a name that occurs more than once keeps its first binding, the
// repeated occurrences having been unified anyway.
func Bindings(query, solution Term) map[string]Term {
	out := make(map[string]Term)
	var walk func(q, s Term)
	walk = func(q, s Term) {
		switch qt := q.(type) {
		case *Var:
			if qt.name == "" || qt.name == "_" {
				return
			}
			if _, seen := out[qt.name]; !seen {
				out[qt.name] = s
			}
		case *Compound:
			st, ok := s.(*Compound)
			if !ok || len(st.Args) != len(qt.Args) {
				return
			}
			for i := range qt.Args {
				walk(qt.Args[i], st.Args[i])
			}
		case *Cons:
			st, ok := s.(*Cons)
			if !ok {
				return
			}
			walk(qt.Head, st.Head)
			walk(qt.Tail, st.Tail)
		}
	}
	walk(query, solution)
	return out
}

// dedupeSolutions removes solutions that render identically, preserving
// first-seen order.
func dedupeSolutions(solutions []Term) []Term {
	seen := set.New[string](len(solutions))
	out := make([]Term, 0, len(solutions))
	for _, s := range solutions {
		key := s.String()
		if seen.Contains(key) {
			continue
		}
		seen.Insert(key)
		out = append(out, s)
	}
	return out
}
