package akl

import "testing"

func TestAtomIdentity(t *testing.T) {
	a1 := NewAtom("foo")
	a2 := NewAtom("foo")
	if a1 != a2 {
		t.Fatalf("expected NewAtom(%q) to return the same object twice", "foo")
	}
	if NewAtom("bar") == a1 {
		t.Fatalf("expected distinct atoms for distinct names")
	}
}

func TestVarIdentity(t *testing.T) {
	x := Fresh("X")
	y := Fresh("X")
	if x == y {
		t.Fatal("expected two independently constructed variables, even with the same display name, to be distinct")
	}
	if x.ID() == y.ID() {
		t.Fatal("expected distinct ids")
	}
}

func TestListRoundTrip(t *testing.T) {
	store := NewVarStore()
	l := List(Int(1), Int(2), Int(3))
	elems, ok := ListToSlice(store, l)
	if !ok {
		t.Fatal("expected a proper list")
	}
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elems))
	}
	for i, want := range []Int{1, 2, 3} {
		if elems[i] != want {
			t.Errorf("element %d: want %v, got %v", i, want, elems[i])
		}
	}
}

func TestListToSliceRejectsImproperList(t *testing.T) {
	store := NewVarStore()
	improper := &Cons{Head: Int(1), Tail: Fresh("T")}
	_, ok := ListToSlice(store, improper)
	if ok {
		t.Fatal("expected an unbound tail to make the list improper")
	}
}

func TestCompoundRequiresArgs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewCompound with zero args to panic")
		}
	}()
	NewCompound(NewAtom("f"))
}

func TestDerefIdempotent(t *testing.T) {
	store := NewVarStore()
	trail := NewTrail()
	v := Fresh("X")
	store.Bind(v, Int(42), trail)

	once := store.Deref(v)
	twice := store.Deref(once)
	if once != twice {
		t.Fatalf("Deref should be idempotent: %v != %v", once, twice)
	}
	if once != Int(42) {
		t.Fatalf("expected 42, got %v", once)
	}
}
