package akl

import (
	"fmt"
	"sync/atomic"
)

var varCounter atomic.Int64

// Var is a mutable binding slot with stable identity. Two variables constructed independently are never
// equal even if their display names coincide; display names are purely
// cosmetic.
//
// A Var's binding is not stored on the Var itself: it lives in a VarStore,
// indexed by id, so that rebinding goes through VarStore.Bind and copying the
// surrounding and-box subtree can share or duplicate variables without
// mutating shared Var values.
type Var struct {
	id   int64
	name string
	// env identifies the and-box in which this variable was created. nil
	// denotes a naked query variable, external to every and-box.
	env *EnvId
}

func (*Var) isTerm() {}

// Fresh allocates a new variable with no env (a naked variable, as used for
// query variables and for a Clause's template variables; Clause.Instantiate
// itself uses FreshIn) and the given display name. Every textual occurrence
// of `_` in a clause template is its own Fresh call — anonymous variables
// are never shared.
func Fresh(name string) *Var {
	return &Var{id: varCounter.Add(1), name: name}
}

// FreshIn allocates a new variable local to andbEnv.
func FreshIn(name string, andbEnv *EnvId) *Var {
	return &Var{id: varCounter.Add(1), name: name, env: andbEnv}
}

// ID returns the variable's stable identity.
func (v *Var) ID() int64 { return v.id }

// Name returns the variable's display name, purely cosmetic.
func (v *Var) Name() string { return v.name }

// Env returns the variable's owning environment, or nil for a naked
// variable.
func (v *Var) Env() *EnvId { return v.env }

func (v *Var) String() string {
	if v.name != "" {
		return fmt.Sprintf("_%s%d", v.name, v.id)
	}
	return fmt.Sprintf("_G%d", v.id)
}

// VarStore is the mutable cell store backing every Var's binding and
// suspension list. All binding mutation goes
// through Bind, which both updates the cell and appends to the trail —
// there is no other way to change a variable's binding.
type VarStore struct {
	bindings    map[int64]Term
	suspensions map[int64][]Suspension
}

// NewVarStore creates an empty variable store.
func NewVarStore() *VarStore {
	return &VarStore{
		bindings:    make(map[int64]Term),
		suspensions: make(map[int64][]Suspension),
	}
}

// Binding returns the term bound to v, or nil if v is unbound.
func (s *VarStore) Binding(v *Var) Term {
	return s.bindings[v.id]
}

// Deref chases a chain of variable bindings until it reaches a non-variable
// term or an unbound variable. It is
// idempotent: Deref(Deref(t)) == Deref(t).
func (s *VarStore) Deref(t Term) Term {
	for {
		v, ok := t.(*Var)
		if !ok {
			return t
		}
		bound, has := s.bindings[v.id]
		if !has {
			return t
		}
		t = bound
	}
}

// Bind records v = term in the store and appends (v, previous-binding) to
// trail. previous-binding is nil when v was unbound, which is what Undo
// uses to tell "restore to unbound" apart from "restore to a prior term".
//
// Bind never checks locality or the occurs check itself — those are
// unify's job (unify.go). Bind is the single mutation point so that every
// binding, from unify or from promotion's discharge step, is trailed.
func (s *VarStore) Bind(v *Var, term Term, trail *Trail) {
	if _, alreadyBound := s.bindings[v.id]; alreadyBound {
		panic(&InvariantError{
			Op:     "VarStore.Bind",
			Detail: fmt.Sprintf("%s is already bound; rebind attempted outside the trail protocol", v),
		})
	}
	trail.record(v.id, nil)
	s.bindings[v.id] = term
}

// unbind is used only by Trail.Undo to restore a variable to unbound or to
// a previous binding. It bypasses the already-bound check in Bind because
// undo is explicitly allowed to move a variable backwards.
func (s *VarStore) unbind(varID int64, previous Term) {
	if previous == nil {
		delete(s.bindings, varID)
		return
	}
	s.bindings[varID] = previous
}

// Suspend appends a suspension record to v's suspension list.
func (s *VarStore) Suspend(v *Var, susp Suspension) {
	s.suspensions[v.id] = append(s.suspensions[v.id], susp)
}

// Suspensions returns v's current suspension list without draining it.
func (s *VarStore) Suspensions(v *Var) []Suspension {
	return s.suspensions[v.id]
}

// DrainSuspensions returns and clears v's suspension list, used when v
// becomes bound and every waiter must be woken exactly once.
func (s *VarStore) DrainSuspensions(v *Var) []Suspension {
	list := s.suspensions[v.id]
	delete(s.suspensions, v.id)
	return list
}
