package akl

// Unify attempts to make two terms equal against andb's locality and
// guard-quietness discipline. It dereferences both
// sides through store, then:
//
//  1. If both sides are the same object, it succeeds trivially.
//  2. If one side is an unbound variable V and the other a term T, the
//     occurs check runs first; then, if V is local to andb, V is bound to
//     T and trailed. If V is external to andb and andb's guard is noisy
//     (NONE, WAIT, CUT), the binding is deferred: (V, T) is appended to
//     andb's unifier list, a suspension of andb on V is registered, and
//     andb's status is upgraded to at least UNSTABLE. If V is external and
//     andb's guard is quiet (QUIET_WAIT, COMMIT, ARROW), deferring would let
//     the guard observe its own binding attempt as already-applied, so the
//     whole attempt instead suspends: no unifier list entry is added, and
//     Unify returns StepSuspended so the caller can back out any partial
//     work and retry the entire goal once V is bound elsewhere.
//  3. Atoms, integers and floats compare by value.
//  4. Compounds unify argument-wise left to right, stopping at the first
//     failure or suspension; the caller is responsible for undoing the
//     trail to the pre-call mark on anything but success (unify does not
//     roll back partial bindings itself).
//
// Unify never binds an external variable directly outside the two paths
// above; everything crossing a scope boundary goes through the unifier
// list or a suspension.
func Unify(store *VarStore, trail *Trail, andb *AndBox, t1, t2 Term) (StepOutcome, error) {
	t1 = store.Deref(t1)
	t2 = store.Deref(t2)

	if t1 == t2 {
		return outcomeSucceeded, nil
	}

	if v1, ok := t1.(*Var); ok {
		return unifyVar(store, trail, andb, v1, t2)
	}
	if v2, ok := t2.(*Var); ok {
		return unifyVar(store, trail, andb, v2, t1)
	}

	switch a := t1.(type) {
	case *Atom:
		b, ok := t2.(*Atom)
		if ok && a == b {
			return outcomeSucceeded, nil
		}
		return outcomeFailed, nil
	case Int:
		b, ok := t2.(Int)
		if ok && a == b {
			return outcomeSucceeded, nil
		}
		return outcomeFailed, nil
	case Float:
		b, ok := t2.(Float)
		if ok && a == b {
			return outcomeSucceeded, nil
		}
		return outcomeFailed, nil
	case *Compound:
		b, ok := t2.(*Compound)
		if !ok || a.Functor != b.Functor || len(a.Args) != len(b.Args) {
			return outcomeFailed, nil
		}
		for i := range a.Args {
			outcome, err := Unify(store, trail, andb, a.Args[i], b.Args[i])
			if err != nil || outcome.Status != StepSucceeded {
				return outcome, err
			}
		}
		return outcomeSucceeded, nil
	case *Cons:
		b, ok := t2.(*Cons)
		if !ok {
			return outcomeFailed, nil
		}
		outcome, err := Unify(store, trail, andb, a.Head, b.Head)
		if err != nil || outcome.Status != StepSucceeded {
			return outcome, err
		}
		return Unify(store, trail, andb, a.Tail, b.Tail)
	default:
		return outcomeFailed, nil
	}
}

// unifyVar binds, defers or suspends v = t. t is already dereferenced; v is not (it may
// itself need locality classification, but never dereferencing — v is by
// construction unbound here since Deref already chased bound variables).
func unifyVar(store *VarStore, trail *Trail, andb *AndBox, v *Var, t Term) (StepOutcome, error) {
	if tv, ok := t.(*Var); ok && tv.id == v.id {
		return outcomeSucceeded, nil
	}

	if occurs(store, v, t) {
		return outcomeFailed, &OccursCheckError{VarName: v.String()}
	}

	if isLocal(v, andb.Env) {
		store.Bind(v, t, trail)
		return outcomeSucceeded, nil
	}

	if andb.GuardType.IsQuiet() {
		store.Suspend(v, Suspension{Box: andb})
		return outcomeSuspended(v), nil
	}

	// v is external (or belongs to an unrelated branch; treated the same
	// as external since andb must never bind it directly) and andb's guard
	// is noisy: defer the binding rather than suspend.
	andb.Unifiers = append(andb.Unifiers, Unifier{Var: v, Value: t})
	store.Suspend(v, Suspension{Box: andb})
	andb.raiseStatus(StatusUnstable)
	return outcomeSucceeded, nil
}

// occurs implements the occurs check: binding v
// to any term containing v must fail rather than construct a cyclic term.
func occurs(store *VarStore, v *Var, t Term) bool {
	t = store.Deref(t)
	switch x := t.(type) {
	case *Var:
		return x.id == v.id
	case *Compound:
		for _, arg := range x.Args {
			if occurs(store, v, arg) {
				return true
			}
		}
		return false
	case *Cons:
		return occurs(store, v, x.Head) || occurs(store, v, x.Tail)
	default:
		return false
	}
}
