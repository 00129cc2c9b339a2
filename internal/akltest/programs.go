// Package akltest builds small, fixed AKL programs used across the pkg/akl
// test suite. Clause loading is outside the execution core's scope, so
// every program here is assembled directly against the term and clause
// constructors the core exports, the way a host embedding the core without
// its own front end would.
package akltest

import "github.com/andorra-lang/akl/pkg/akl"

func fact(head akl.Term, vars ...*akl.Var) *akl.Clause {
	return &akl.Clause{
		Head:      head,
		Guard:     akl.NewAtom("true"),
		GuardType: akl.GuardNone,
		Body:      akl.NewAtom("true"),
		Vars:      vars,
	}
}

func rule(head, body akl.Term, vars ...*akl.Var) *akl.Clause {
	return &akl.Clause{
		Head:      head,
		Guard:     akl.NewAtom("true"),
		GuardType: akl.GuardNone,
		Body:      body,
		Vars:      vars,
	}
}

func guardedFact(head, guard, body akl.Term, guardType akl.GuardType, vars ...*akl.Var) *akl.Clause {
	return &akl.Clause{
		Head:      head,
		Guard:     guard,
		GuardType: guardType,
		Body:      body,
		Vars:      vars,
	}
}

func conj(a, b akl.Term) akl.Term {
	return akl.NewCompound(akl.NewAtom(","), a, b)
}

// MemberProgram builds the classic list-membership relation:
//
//	member(X, [X|_]).
//	member(X, [_|T]) :- member(X, T).
func MemberProgram() *akl.Program {
	p := akl.NewProgram()
	memberAtom := akl.NewAtom("member")

	x1, anon1 := akl.Fresh("X"), akl.Fresh("_")
	headFact := akl.NewCompound(memberAtom, x1, &akl.Cons{Head: x1, Tail: anon1})
	p.Predicates.Register("member", 2, fact(headFact, x1, anon1))

	x2, h2, t2 := akl.Fresh("X"), akl.Fresh("_"), akl.Fresh("T")
	headRule := akl.NewCompound(memberAtom, x2, &akl.Cons{Head: h2, Tail: t2})
	body := akl.NewCompound(memberAtom, x2, t2)
	p.Predicates.Register("member", 2, rule(headRule, body, x2, h2, t2))

	return p
}

// AppendProgram builds the list-concatenation relation:
//
//	append([], Y, Y).
//	append([H|T], Y, [H|R]) :- append(T, Y, R).
func AppendProgram() *akl.Program {
	p := akl.NewProgram()
	appendAtom := akl.NewAtom("append")

	y1 := akl.Fresh("Y")
	headFact := akl.NewCompound(appendAtom, akl.EmptyList(), y1, y1)
	p.Predicates.Register("append", 3, fact(headFact, y1))

	h2, t2, y2, r2 := akl.Fresh("H"), akl.Fresh("T"), akl.Fresh("Y"), akl.Fresh("R")
	headRule := akl.NewCompound(appendAtom,
		&akl.Cons{Head: h2, Tail: t2}, y2, &akl.Cons{Head: h2, Tail: r2})
	body := akl.NewCompound(appendAtom, t2, y2, r2)
	p.Predicates.Register("append", 3, rule(headRule, body, h2, t2, y2, r2))

	return p
}

// LenProgram builds a list-length relation exercising is/2:
//
//	len([], 0).
//	len([_|T], N) :- len(T, M), N is M + 1.
func LenProgram() *akl.Program {
	p := akl.NewProgram()
	lenAtom := akl.NewAtom("len")

	headFact := akl.NewCompound(lenAtom, akl.EmptyList(), akl.Int(0))
	p.Predicates.Register("len", 2, fact(headFact))

	anon2, t2, n2, m2 := akl.Fresh("_"), akl.Fresh("T"), akl.Fresh("N"), akl.Fresh("M")
	headRule := akl.NewCompound(lenAtom, &akl.Cons{Head: anon2, Tail: t2}, n2)
	recur := akl.NewCompound(lenAtom, t2, m2)
	plusOne := akl.NewCompound(akl.NewAtom("is"), n2, akl.NewCompound(akl.NewAtom("+"), m2, akl.Int(1)))
	body := conj(recur, plusOne)
	p.Predicates.Register("len", 2, rule(headRule, body, anon2, t2, n2, m2))

	return p
}

// OrderedProgram builds a pair of quiet-wait guarded clauses whose body
// side effects expose promotion order:
//
//	ordered(a) :- true ?? write(first).
//	ordered(b) :- true ?? write(second).
func OrderedProgram() *akl.Program {
	p := akl.NewProgram()
	orderedAtom := akl.NewAtom("ordered")
	trueAtom := akl.NewAtom("true")
	writeAtom := akl.NewAtom("write")

	first := akl.NewCompound(orderedAtom, akl.NewAtom("a"))
	p.Predicates.Register("ordered", 1,
		guardedFact(first, trueAtom, akl.NewCompound(writeAtom, akl.NewAtom("first")), akl.GuardQuietWait))

	second := akl.NewCompound(orderedAtom, akl.NewAtom("b"))
	p.Predicates.Register("ordered", 1,
		guardedFact(second, trueAtom, akl.NewCompound(writeAtom, akl.NewAtom("second")), akl.GuardQuietWait))

	return p
}

// PickProgram builds three wait-guarded facts whose solutions can only be
// realized by splitting:
//
//	pick(1) :- true ? true.
//	pick(2) :- true ? true.
//	pick(3) :- true ? true.
func PickProgram() *akl.Program {
	p := akl.NewProgram()
	pickAtom := akl.NewAtom("pick")
	trueAtom := akl.NewAtom("true")

	for _, n := range []akl.Term{akl.Int(1), akl.Int(2), akl.Int(3)} {
		head := akl.NewCompound(pickAtom, n)
		p.Predicates.Register("pick", 1, guardedFact(head, trueAtom, trueAtom, akl.GuardWait))
	}

	return p
}
