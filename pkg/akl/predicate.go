package akl

import (
	"fmt"

	iradix "github.com/hashicorp/go-immutable-radix/v2"
)

// Clause is the interface consumed from the external parser/compiler: a
// loaded program exposes a predicate lookup that returns, for a given
// name/arity, the clauses that might match a goal. Each clause
// carries its head, guard, guard type and body as uninstantiated term
// trees plus the set of variables mentioned, so a fresh copy can be
// produced per activation.
type Clause struct {
	Head      Term
	Guard     Term
	GuardType GuardType
	Body      Term
	// Vars lists every variable mentioned anywhere in Head/Guard/Body.
	// Instantiate uses this to build a fresh substitution per activation.
	Vars []*Var
}

// Instantiate produces a fresh copy of the clause's head, guard and body
// with every variable in Vars replaced by a fresh variable local to
// andbEnv, plus the guard's goal list for the new and-box's Goals and the
// body for its BodyGoals. freshVars is exactly the
// set of new variables created, in Vars order — the caller installs it
// verbatim as the new and-box's localVars.
func (c *Clause) Instantiate(andbEnv *EnvId) (head, guard, body Term, freshVars []*Var) {
	rename := make(map[int64]*Var, len(c.Vars))
	freshVars = make([]*Var, len(c.Vars))
	for i, v := range c.Vars {
		fresh := FreshIn(v.name, andbEnv)
		rename[v.id] = fresh
		freshVars[i] = fresh
	}
	return renameTerm(c.Head, rename), renameTerm(c.Guard, rename), renameTerm(c.Body, rename), freshVars
}

// renameTerm structurally copies t, substituting every variable present in
// rename with its fresh counterpart. Variables not present in rename (which
// should not occur for a well-formed clause) are left as-is.
func renameTerm(t Term, rename map[int64]*Var) Term {
	switch x := t.(type) {
	case *Var:
		if fresh, ok := rename[x.id]; ok {
			return fresh
		}
		return x
	case *Compound:
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = renameTerm(a, rename)
		}
		return &Compound{Functor: x.Functor, Args: args}
	case *Cons:
		return &Cons{Head: renameTerm(x.Head, rename), Tail: renameTerm(x.Tail, rename)}
	default:
		return t
	}
}

// PredicateStore is the predicate/clause registry. It is
// backed by an immutable radix tree keyed by "name/arity": the registry is
// only ever built once before a Solve run begins (clause loading is part of
// the excluded compiler boundary), so an immutable tree's structural
// sharing costs nothing here and keeps the registry's own copy semantics
// consistent with the rest of the core's persistent-snapshot style
// (copy.go).
type PredicateStore struct {
	tree   *iradix.Tree[[]*Clause]
	strict bool
}

// NewPredicateStore creates an empty registry. A call to an indicator with no
// registered clauses fails silently, the same as any other goal failure
// — the ordinary mode for a program whose predicates are all
// known in advance.
func NewPredicateStore() *PredicateStore {
	return &PredicateStore{tree: iradix.New[[]*Clause]()}
}

// NewStrictPredicateStore creates an empty registry in strict mode: a call to
// an indicator with no registered clauses is treated as a program error
// rather than a goal failure, and dispatchCall returns ErrUnknownPredicate
// instead of failing the and-box. Useful for catching typo'd predicate calls
// (missing clauses vs. genuinely failing ones) in a closed program.
func NewStrictPredicateStore() *PredicateStore {
	return &PredicateStore{tree: iradix.New[[]*Clause](), strict: true}
}

// indicatorKey renders a predicate indicator name/arity as the radix tree
// key.
func indicatorKey(name string, arity int) []byte {
	return []byte(fmt.Sprintf("%s/%d", name, arity))
}

// Register appends clause to the given predicate indicator's clause list,
// in the order clauses are registered — clause order is program order and
// determines untried-list order at goal expansion time.
func (p *PredicateStore) Register(name string, arity int, clause *Clause) {
	key := indicatorKey(name, arity)
	existing, _ := p.tree.Get(key)
	updated := make([]*Clause, len(existing), len(existing)+1)
	copy(updated, existing)
	updated = append(updated, clause)
	p.tree, _, _ = p.tree.Insert(key, updated)
}

// Lookup returns the clauses registered for name/arity, or nil if none are
// registered.
func (p *PredicateStore) Lookup(name string, arity int) []*Clause {
	clauses, _ := p.tree.Get(indicatorKey(name, arity))
	return clauses
}

// Indicator splits a goal term into its functor name and arity, the key
// goal expansion uses to look up clauses. ok is false for
// goals that are not atomic predicate calls (variables, numbers).
func Indicator(goal Term) (name string, arity int, ok bool) {
	switch g := goal.(type) {
	case *Atom:
		return g.Name(), 0, true
	case *Compound:
		return g.Functor.Name(), len(g.Args), true
	default:
		return "", 0, false
	}
}
