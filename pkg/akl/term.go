package akl

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is the sum type at the heart of the core. Concrete terms are *Var, *Atom, Int, Float, *Compound
// and *Cons. The empty list is the distinguished atom returned by
// EmptyList().
//
// Term values are immutable once constructed, with the sole exception of
// *Var, whose binding lives in a VarStore rather than the Term itself —
// see var.go. All operations other than deref work on already-dereferenced
// values; callers must deref before inspecting a term's shape.
type Term interface {
	// String renders the term for diagnostics. It does not follow
	// bindings; use Deref first if a dereferenced view is wanted.
	String() string

	isTerm()
}

// Int is an immutable integer term.
type Int int64

func (Int) isTerm() {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is an immutable floating point term.
type Float float64

func (Float) isTerm() {}

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Compound is a functor atom paired with a fixed-arity ordered argument
// sequence.
type Compound struct {
	Functor *Atom
	Args    []Term
}

func (*Compound) isTerm() {}

// NewCompound builds a compound term. Arity 0 compounds are not produced by
// this constructor — use the functor's Atom directly for arity-0 goals.
func NewCompound(functor *Atom, args ...Term) *Compound {
	if len(args) == 0 {
		panic("akl: NewCompound requires at least one argument; use the atom directly for arity 0")
	}
	return &Compound{Functor: functor, Args: args}
}

// Arity returns the number of arguments.
func (c *Compound) Arity() int { return len(c.Args) }

func (c *Compound) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Functor.Name(), strings.Join(parts, ", "))
}

// Cons is a list cell: head + tail. The empty list is the
// distinguished atom returned by EmptyList, never a nil *Cons.
type Cons struct {
	Head Term
	Tail Term
}

func (*Cons) isTerm() {}

func (c *Cons) String() string {
	var b strings.Builder
	b.WriteByte('[')
	cur := Term(c)
	first := true
	for {
		cell, ok := cur.(*Cons)
		if !ok {
			break
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(cell.Head.String())
		cur = cell.Tail
	}
	if atom, ok := cur.(*Atom); !ok || atom != emptyListAtom {
		b.WriteString("|")
		b.WriteString(cur.String())
	}
	b.WriteByte(']')
	return b.String()
}

// List builds a proper list terminated by EmptyList() from the given
// elements, right to left.
func List(elems ...Term) Term {
	var tail Term = EmptyList()
	for i := len(elems) - 1; i >= 0; i-- {
		tail = &Cons{Head: elems[i], Tail: tail}
	}
	return tail
}

// ListToSlice walks a proper list and returns its elements. ok is false if
// term is not dereferenced into a proper, fully ground spine (an unbound
// tail or a non-Cons/non-EmptyList tail stops the walk).
func ListToSlice(store *VarStore, term Term) (elems []Term, ok bool) {
	cur := store.Deref(term)
	for {
		if atom, isAtom := cur.(*Atom); isAtom && atom == emptyListAtom {
			return elems, true
		}
		cell, isCons := cur.(*Cons)
		if !isCons {
			return elems, false
		}
		elems = append(elems, store.Deref(cell.Head))
		cur = store.Deref(cell.Tail)
	}
}
