package akl

import "testing"

func TestIndicator(t *testing.T) {
	name, arity, ok := Indicator(NewAtom("foo"))
	if !ok || name != "foo" || arity != 0 {
		t.Fatalf("atom indicator: got (%q, %d, %v)", name, arity, ok)
	}

	name, arity, ok = Indicator(NewCompound(NewAtom("bar"), Int(1), Int(2)))
	if !ok || name != "bar" || arity != 2 {
		t.Fatalf("compound indicator: got (%q, %d, %v)", name, arity, ok)
	}

	_, _, ok = Indicator(Fresh("X"))
	if ok {
		t.Fatal("a variable is not a valid predicate indicator")
	}
}

func TestPredicateStoreRegisterAndLookup(t *testing.T) {
	store := NewPredicateStore()
	if clauses := store.Lookup("foo", 1); clauses != nil {
		t.Fatalf("expected no clauses registered yet, got %v", clauses)
	}

	c1 := &Clause{Head: NewAtom("a")}
	c2 := &Clause{Head: NewAtom("b")}
	store.Register("foo", 1, c1)
	store.Register("foo", 1, c2)

	got := store.Lookup("foo", 1)
	if len(got) != 2 || got[0] != c1 || got[1] != c2 {
		t.Fatalf("expected clauses in registration order, got %v", got)
	}

	if clauses := store.Lookup("foo", 2); clauses != nil {
		t.Fatalf("distinct arity must not share clauses, got %v", clauses)
	}
}

func TestClauseInstantiateFreshensEveryVar(t *testing.T) {
	x := Fresh("X")
	clause := &Clause{
		Head: NewCompound(NewAtom("p"), x),
		Guard: NewAtom("true"),
		Body:  NewCompound(NewAtom("q"), x),
		Vars:  []*Var{x},
	}

	env := queryEnv().Child()
	head, _, body, freshVars := clause.Instantiate(env)

	if len(freshVars) != 1 {
		t.Fatalf("expected 1 fresh var, got %d", len(freshVars))
	}
	fresh := freshVars[0]
	if fresh.id == x.id {
		t.Fatal("instantiation must produce a fresh variable, not reuse the template's")
	}

	headArg := head.(*Compound).Args[0].(*Var)
	bodyArg := body.(*Compound).Args[0].(*Var)
	if headArg != fresh || bodyArg != fresh {
		t.Fatal("every occurrence of the template variable must resolve to the same fresh variable")
	}
	if fresh.env != env {
		t.Fatalf("the fresh variable must be local to the new and-box's env")
	}
}
