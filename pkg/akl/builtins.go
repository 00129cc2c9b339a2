package akl

import "fmt"

// StepStatus is the outcome of invoking a built-in or a unification
// attempt. Unify and built-ins share one outcome vocabulary because a quiet
// guard's unify call can suspend exactly the way a built-in can.
type StepStatus int

const (
	StepSucceeded StepStatus = iota
	StepFailed
	StepSuspended
)

// StepOutcome is a built-in's or a unification attempt's result. On is set
// only when Status is StepSuspended, naming the variable the caller must
// wait on before retrying.
type StepOutcome struct {
	Status StepStatus
	On     *Var
}

var (
	outcomeSucceeded = StepOutcome{Status: StepSucceeded}
	outcomeFailed    = StepOutcome{Status: StepFailed}
)

func outcomeSuspended(v *Var) StepOutcome {
	return StepOutcome{Status: StepSuspended, On: v}
}

// BuiltinFunc is the interface consumed from built-ins: a
// built-in is invoked with the worker, the and-box executing it, and the
// goal's argument terms. Built-ins must respect the local/external
// unification discipline — use Unify, never bind an external variable
// directly. A built-in returning StepSuspended is responsible for having
// already called w.vars.Suspend on the returned variable itself (Unify
// does this internally); the worker does not register it a second time.
type BuiltinFunc func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error)

// builtinKey renders a builtin's name/arity registry key, sharing the
// name/arity indicator scheme predicate.go uses for user clauses.
func builtinKey(name string, arity int) string {
	return fmt.Sprintf("%s/%d", name, arity)
}

// defaultBuiltins is the minimum set required for the core to be
// exercisable: true/0, fail/0, =/2, is/2, the numeric comparisons,
// structural comparison, the dereferencing type tests, and write/1 + nl/0
// for clauses whose only observable effect is a side effect.
func defaultBuiltins() map[string]BuiltinFunc {
	return map[string]BuiltinFunc{
		builtinKey(trueAtom.Name(), 0): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			return outcomeSucceeded, nil
		},
		builtinKey(failAtom.Name(), 0): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			return outcomeFailed, nil
		},
		builtinKey("=", 2): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			outcome, err := Unify(w.vars, w.trail, andb, args[0], args[1])
			if err != nil {
				return outcomeFailed, nil // occurs-check failure is a goal failure, not an invariant error
			}
			return outcome, nil
		},
		builtinKey("is", 2): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			val, err := evalArith(w.vars, args[1])
			if err != nil {
				return outcomeFailed, nil
			}
			outcome, uerr := Unify(w.vars, w.trail, andb, args[0], val)
			if uerr != nil {
				return outcomeFailed, nil
			}
			return outcome, nil
		},
		builtinKey("<", 2):  numericCompareBuiltin(func(c int) bool { return c < 0 }),
		builtinKey(">", 2):  numericCompareBuiltin(func(c int) bool { return c > 0 }),
		builtinKey("=<", 2): numericCompareBuiltin(func(c int) bool { return c <= 0 }),
		builtinKey(">=", 2): numericCompareBuiltin(func(c int) bool { return c >= 0 }),
		builtinKey("=:=", 2): numericCompareBuiltin(func(c int) bool { return c == 0 }),
		builtinKey("=\\=", 2): numericCompareBuiltin(func(c int) bool { return c != 0 }),
		builtinKey("==", 2): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			if structurallyEqual(w.vars, args[0], args[1]) {
				return outcomeSucceeded, nil
			}
			return outcomeFailed, nil
		},
		builtinKey("\\==", 2): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			if !structurallyEqual(w.vars, args[0], args[1]) {
				return outcomeSucceeded, nil
			}
			return outcomeFailed, nil
		},
		builtinKey("var", 1): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			if _, isVar := w.vars.Deref(args[0]).(*Var); isVar {
				return outcomeSucceeded, nil
			}
			return outcomeFailed, nil
		},
		builtinKey("nonvar", 1): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			if _, isVar := w.vars.Deref(args[0]).(*Var); isVar {
				return outcomeFailed, nil
			}
			return outcomeSucceeded, nil
		},
		builtinKey("write", 1): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			fmt.Fprint(w.output, w.vars.Deref(args[0]).String())
			return outcomeSucceeded, nil
		},
		builtinKey("nl", 0): func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
			fmt.Fprintln(w.output)
			return outcomeSucceeded, nil
		},
	}
}

func numericCompareBuiltin(accept func(cmp int) bool) BuiltinFunc {
	return func(w *Worker, andb *AndBox, args []Term) (StepOutcome, error) {
		lhs, err := evalArith(w.vars, args[0])
		if err != nil {
			return outcomeFailed, nil
		}
		rhs, err := evalArith(w.vars, args[1])
		if err != nil {
			return outcomeFailed, nil
		}
		cmp, ok := compareNumbers(lhs, rhs)
		if !ok || !accept(cmp) {
			return outcomeFailed, nil
		}
		return outcomeSucceeded, nil
	}
}

// evalArith evaluates an arithmetic expression term to a ground Int or
// Float for is/2 and the numeric comparisons. An unbound variable anywhere in
// the expression is an arithmetic domain violation and is
// reported as a plain error so the caller treats it as a goal failure, not
// as a core invariant violation.
func evalArith(store *VarStore, t Term) (Term, error) {
	t = store.Deref(t)
	switch x := t.(type) {
	case Int:
		return x, nil
	case Float:
		return x, nil
	case *Var:
		return nil, fmt.Errorf("akl: arithmetic domain violation: unbound variable %s", x)
	case *Compound:
		if len(x.Args) == 2 {
			l, err := evalArith(store, x.Args[0])
			if err != nil {
				return nil, err
			}
			r, err := evalArith(store, x.Args[1])
			if err != nil {
				return nil, err
			}
			return evalBinOp(x.Functor.Name(), l, r)
		}
		if len(x.Args) == 1 && x.Functor.Name() == "-" {
			v, err := evalArith(store, x.Args[0])
			if err != nil {
				return nil, err
			}
			return negate(v), nil
		}
		return nil, fmt.Errorf("akl: not an arithmetic expression: %s", x)
	default:
		return nil, fmt.Errorf("akl: not an arithmetic expression: %s", t)
	}
}

func negate(v Term) Term {
	switch x := v.(type) {
	case Int:
		return -x
	case Float:
		return -x
	default:
		return v
	}
}

func evalBinOp(op string, l, r Term) (Term, error) {
	li, lIsInt := l.(Int)
	ri, rIsInt := r.(Int)
	if lIsInt && rIsInt {
		switch op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		case "/":
			if ri == 0 {
				return nil, fmt.Errorf("akl: division by zero")
			}
			if li%ri == 0 {
				return li / ri, nil
			}
			return Float(li) / Float(ri), nil
		case "mod":
			if ri == 0 {
				return nil, fmt.Errorf("akl: modulo by zero")
			}
			return ((li % ri) + ri) % ri, nil
		}
	}
	lf, rf := toFloat(l), toFloat(r)
	switch op {
	case "+":
		return Float(lf + rf), nil
	case "-":
		return Float(lf - rf), nil
	case "*":
		return Float(lf * rf), nil
	case "/":
		if rf == 0 {
			return nil, fmt.Errorf("akl: division by zero")
		}
		return Float(lf / rf), nil
	}
	return nil, fmt.Errorf("akl: unknown arithmetic operator %q", op)
}

func toFloat(t Term) float64 {
	switch x := t.(type) {
	case Int:
		return float64(x)
	case Float:
		return float64(x)
	default:
		return 0
	}
}

// compareNumbers returns -1/0/1 comparing two evaluated numeric terms.
func compareNumbers(l, r Term) (int, bool) {
	li, lIsInt := l.(Int)
	ri, rIsInt := r.(Int)
	if lIsInt && rIsInt {
		switch {
		case li < ri:
			return -1, true
		case li > ri:
			return 1, true
		default:
			return 0, true
		}
	}
	lf, rf := toFloat(l), toFloat(r)
	switch {
	case lf < rf:
		return -1, true
	case lf > rf:
		return 1, true
	default:
		return 0, true
	}
}

// structurallyEqual implements ==/2: strict structural equality of
// dereferenced terms, distinct from unification — two distinct unbound
// variables are never equal.
func structurallyEqual(store *VarStore, a, b Term) bool {
	a = store.Deref(a)
	b = store.Deref(b)
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *Var:
		return false
	case *Atom:
		y, ok := b.(*Atom)
		return ok && x == y
	case Int:
		y, ok := b.(Int)
		return ok && x == y
	case Float:
		y, ok := b.(Float)
		return ok && x == y
	case *Compound:
		y, ok := b.(*Compound)
		if !ok || x.Functor != y.Functor || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !structurallyEqual(store, x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Cons:
		y, ok := b.(*Cons)
		return ok && structurallyEqual(store, x.Head, y.Head) && structurallyEqual(store, x.Tail, y.Tail)
	default:
		return false
	}
}
