package akl

import "testing"

func newTestAndBox(env *EnvId, guardType GuardType) *AndBox {
	return &AndBox{ID: "t", Status: StatusStable, Env: env, GuardType: guardType}
}

func TestUnifyLocalBindsDirectly(t *testing.T) {
	store := NewVarStore()
	trail := NewTrail()
	env := queryEnv().Child()
	andb := newTestAndBox(env, GuardNone)

	v := FreshIn("X", env)
	outcome, err := Unify(store, trail, andb, v, Int(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StepSucceeded {
		t.Fatalf("expected success, got %v", outcome.Status)
	}
	if store.Binding(v) != Int(7) {
		t.Fatalf("expected v bound to 7, got %v", store.Binding(v))
	}
	if len(andb.Unifiers) != 0 {
		t.Fatalf("local bind must not add a unifier entry")
	}
}

func TestUnifyExternalNoisyDefers(t *testing.T) {
	store := NewVarStore()
	trail := NewTrail()
	outer := queryEnv().Child()
	inner := outer.Child()
	andb := newTestAndBox(inner, GuardWait)

	v := FreshIn("X", outer) // external to andb
	outcome, err := Unify(store, trail, andb, v, Int(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StepSucceeded {
		t.Fatalf("noisy external bind should report success (deferred), got %v", outcome.Status)
	}
	if store.Binding(v) != nil {
		t.Fatal("external variable must not be bound directly")
	}
	if len(andb.Unifiers) != 1 || andb.Unifiers[0].Var != v {
		t.Fatalf("expected one deferred unifier for v, got %+v", andb.Unifiers)
	}
	if andb.Status != StatusUnstable {
		t.Fatalf("expected status raised to UNSTABLE, got %v", andb.Status)
	}
}

func TestUnifyExternalQuietSuspends(t *testing.T) {
	store := NewVarStore()
	trail := NewTrail()
	outer := queryEnv().Child()
	inner := outer.Child()
	andb := newTestAndBox(inner, GuardCommit)

	v := FreshIn("X", outer)
	outcome, err := Unify(store, trail, andb, v, Int(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StepSuspended || outcome.On != v {
		t.Fatalf("expected suspension on v under a quiet guard, got %+v", outcome)
	}
	if len(andb.Unifiers) != 0 {
		t.Fatal("a quiet guard's suspended attempt must not add a unifier entry")
	}
	susp := store.Suspensions(v)
	if len(susp) != 1 || susp[0].Box != andb {
		t.Fatalf("expected andb registered as a suspension of v, got %+v", susp)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	store := NewVarStore()
	trail := NewTrail()
	env := queryEnv().Child()
	andb := newTestAndBox(env, GuardNone)

	v := FreshIn("X", env)
	cyclic := NewCompound(NewAtom("f"), v)
	_, err := Unify(store, trail, andb, v, cyclic)
	if err == nil {
		t.Fatal("expected occurs check failure")
	}
	if _, ok := err.(*OccursCheckError); !ok {
		t.Fatalf("expected *OccursCheckError, got %T", err)
	}
	if store.Binding(v) != nil {
		t.Fatal("occurs check failure must leave v unbound")
	}
}

func TestUnifyCompoundMismatch(t *testing.T) {
	store := NewVarStore()
	trail := NewTrail()
	env := queryEnv().Child()
	andb := newTestAndBox(env, GuardNone)

	f1 := NewCompound(NewAtom("f"), Int(1))
	f2 := NewCompound(NewAtom("f"), Int(2))
	outcome, err := Unify(store, trail, andb, f1, f2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StepFailed {
		t.Fatalf("expected failure, got %v", outcome.Status)
	}

	g := NewCompound(NewAtom("g"), Int(1))
	outcome, err = Unify(store, trail, andb, f1, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StepFailed {
		t.Fatalf("different functor must fail, got %v", outcome.Status)
	}
}

func TestUnifyStructuralRoundTrip(t *testing.T) {
	store := NewVarStore()
	trail := NewTrail()
	env := queryEnv().Child()
	andb := newTestAndBox(env, GuardNone)

	x := FreshIn("X", env)
	y := FreshIn("Y", env)
	t1 := NewCompound(NewAtom("f"), x, Int(2))
	t2 := NewCompound(NewAtom("f"), Int(1), y)

	outcome, err := Unify(store, trail, andb, t1, t2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Status != StepSucceeded {
		t.Fatalf("expected success, got %v", outcome.Status)
	}
	if !structurallyEqual(store, t1, t2) {
		t.Fatalf("expected deref(t1) structurally equal to deref(t2): %v vs %v", store.Deref(t1), store.Deref(t2))
	}
}

func TestTrailUndoRestoresPriorBindings(t *testing.T) {
	store := NewVarStore()
	trail := NewTrail()
	env := queryEnv().Child()
	andb := newTestAndBox(env, GuardNone)

	v := FreshIn("X", env)
	mark := trail.Mark()
	if _, err := Unify(store, trail, andb, v, Int(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Binding(v) != Int(5) {
		t.Fatal("expected v bound to 5")
	}
	trail.Undo(mark, store)
	if store.Binding(v) != nil {
		t.Fatal("expected v to be unbound again after undo")
	}
}
