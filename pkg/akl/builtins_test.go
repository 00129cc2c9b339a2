package akl

import (
	"bytes"
	"testing"
)

func newBuiltinTestBox() (*Worker, *AndBox) {
	w := NewWorker(NewPredicateStore(), defaultBuiltins(), nil, 0)
	env := queryEnv().Child()
	andb := &AndBox{ID: "t", Status: StatusStable, Env: env, GuardType: GuardNone}
	return w, andb
}

func call(t *testing.T, w *Worker, andb *AndBox, name string, arity int, args ...Term) StepOutcome {
	t.Helper()
	fn, ok := w.builtins[builtinKey(name, arity)]
	if !ok {
		t.Fatalf("no builtin registered for %s/%d", name, arity)
	}
	outcome, err := fn(w, andb, args)
	if err != nil {
		t.Fatalf("%s/%d returned unexpected error: %v", name, arity, err)
	}
	return outcome
}

func TestIsArithmetic(t *testing.T) {
	w, andb := newBuiltinTestBox()
	x := FreshIn("X", andb.Env)
	outcome := call(t, w, andb, "is", 2, x, NewCompound(NewAtom("+"), Int(2), Int(3)))
	if outcome.Status != StepSucceeded {
		t.Fatalf("expected success, got %v", outcome.Status)
	}
	if w.vars.Binding(x) != Int(5) {
		t.Fatalf("expected X bound to 5, got %v", w.vars.Binding(x))
	}
}

func TestIsDivisionFallsBackToFloat(t *testing.T) {
	w, andb := newBuiltinTestBox()
	x := FreshIn("X", andb.Env)
	call(t, w, andb, "is", 2, x, NewCompound(NewAtom("/"), Int(7), Int(2)))
	if got, ok := w.vars.Binding(x).(Float); !ok || got != Float(3.5) {
		t.Fatalf("expected X bound to 3.5, got %v", w.vars.Binding(x))
	}
}

func TestIsDivisionByZeroFails(t *testing.T) {
	w, andb := newBuiltinTestBox()
	x := FreshIn("X", andb.Env)
	outcome := call(t, w, andb, "is", 2, x, NewCompound(NewAtom("/"), Int(1), Int(0)))
	if outcome.Status != StepFailed {
		t.Fatalf("expected division by zero to fail the goal, got %v", outcome.Status)
	}
}

func TestNumericComparisons(t *testing.T) {
	w, andb := newBuiltinTestBox()
	if call(t, w, andb, "<", 2, Int(1), Int(2)).Status != StepSucceeded {
		t.Fatal("1 < 2 should succeed")
	}
	if call(t, w, andb, "<", 2, Int(2), Int(1)).Status != StepFailed {
		t.Fatal("2 < 1 should fail")
	}
	if call(t, w, andb, ">=", 2, Int(2), Int(2)).Status != StepSucceeded {
		t.Fatal("2 >= 2 should succeed")
	}
	if call(t, w, andb, "=:=", 2, Int(2), Float(2.0)).Status != StepSucceeded {
		t.Fatal("2 =:= 2.0 should succeed across numeric types")
	}
}

func TestStructuralEquality(t *testing.T) {
	w, andb := newBuiltinTestBox()
	f12 := NewCompound(NewAtom("f"), Int(1), Int(2))
	f12b := NewCompound(NewAtom("f"), Int(1), Int(2))
	if call(t, w, andb, "==", 2, f12, f12b).Status != StepSucceeded {
		t.Fatal("structurally identical compounds should be ==")
	}

	x := FreshIn("X", andb.Env)
	y := FreshIn("Y", andb.Env)
	if call(t, w, andb, "==", 2, x, y).Status != StepFailed {
		t.Fatal("two distinct unbound variables must never be ==")
	}
	if call(t, w, andb, "\\==", 2, x, y).Status != StepSucceeded {
		t.Fatal("two distinct unbound variables must be \\==")
	}
}

func TestVarNonvar(t *testing.T) {
	w, andb := newBuiltinTestBox()
	x := FreshIn("X", andb.Env)
	if call(t, w, andb, "var", 1, x).Status != StepSucceeded {
		t.Fatal("a fresh variable should satisfy var/1")
	}
	if call(t, w, andb, "nonvar", 1, Int(1)).Status != StepSucceeded {
		t.Fatal("a ground term should satisfy nonvar/1")
	}
	w.vars.Bind(x, Int(1), w.trail)
	if call(t, w, andb, "var", 1, x).Status != StepFailed {
		t.Fatal("a bound variable must no longer satisfy var/1 once dereferenced")
	}
}

func TestWriteAndNlUseWorkerOutput(t *testing.T) {
	w, andb := newBuiltinTestBox()
	var buf bytes.Buffer
	w.SetOutput(&buf)

	call(t, w, andb, "write", 1, NewAtom("hello"))
	call(t, w, andb, "nl", 0)
	call(t, w, andb, "write", 1, Int(7))

	if got, want := buf.String(), "hello\n7"; got != want {
		t.Fatalf("expected output %q, got %q", want, got)
	}
}
