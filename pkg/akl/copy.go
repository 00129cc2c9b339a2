package akl

// copier holds the identity maps the copy engine threads through a
// traversal of one and-box subtree: "Maintain a mapping by
// object identity: original → copy for and-boxes, choice-boxes, and
// variables."
type copier struct {
	vars   *VarStore
	andbox map[*AndBox]*AndBox
	choice map[*ChoiceBox]*ChoiceBox
	env    map[*EnvId]*EnvId
	varmap map[int64]*Var
	newID  func() string
}

func newCopier(vars *VarStore, newID func() string) *copier {
	return &copier{
		vars:   vars,
		andbox: make(map[*AndBox]*AndBox),
		choice: make(map[*ChoiceBox]*ChoiceBox),
		env:    make(map[*EnvId]*EnvId),
		varmap: make(map[int64]*Var),
		newID:  newID,
	}
}

// CopySubtree deep-copies the and-box subtree rooted at root, for use when
// splitting a stable-but-unsolved and-box. The copy's own EnvId is a fresh
// child of root's parent env — a
// sibling scope, not a nested one, because the copy is about to be
// inserted as root's left sibling rather than as its descendant. Local
// variables get fresh copies; variables external to the subtree (including
// naked query variables) are shared between original and copy, which is
// what lets the two branches observe each other's bindings on those
// variables.
func CopySubtree(root *AndBox, vars *VarStore, newID func() string) *AndBox {
	root2, _, _ := CopySubtreeWithMap(root, vars, newID)
	return root2
}

// CopySubtreeWithMap is CopySubtree plus the identity maps the copier built,
// so a caller (split, worker.go) can locate the copy corresponding to a
// specific original and-box or choice-box inside the subtree — needed to
// find the copied fork and candidate after a split's generic subtree copy.
func CopySubtreeWithMap(root *AndBox, vars *VarStore, newID func() string) (*AndBox, map[*AndBox]*AndBox, map[*ChoiceBox]*ChoiceBox) {
	cp := newCopier(vars, newID)
	var rootParentEnv *EnvId
	if root.Env != nil {
		rootParentEnv = root.Env.parent
	}
	newRootEnv := rootParentEnv.Child()
	root2 := cp.copyAndBox(root, newRootEnv)
	cp.duplicateSuspensions()
	return root2, cp.andbox, cp.choice
}

// duplicateSuspensions runs once after the structural walk: every suspension
// entry whose waiter lies inside the copied subtree gets a counterpart
// pointing at the copy. For a variable that was itself copied, the
// counterpart goes on the copy's own list; for a shared external variable it
// is appended alongside the original entry, so binding it wakes both
// branches.
func (cp *copier) duplicateSuspensions() {
	pending := make(map[int64][]Suspension)
	for varID, list := range cp.vars.suspensions {
		var added []Suspension
		for _, susp := range list {
			switch {
			case susp.Box != nil:
				if copyBox, ok := cp.andbox[susp.Box]; ok {
					added = append(added, Suspension{Box: copyBox})
				}
			case susp.Choice != nil:
				if copyChoice, ok := cp.choice[susp.Choice]; ok {
					added = append(added, Suspension{Choice: copyChoice})
				}
			}
		}
		if len(added) == 0 {
			continue
		}
		target := varID
		if fresh, ok := cp.varmap[varID]; ok {
			target = fresh.id
		}
		pending[target] = append(pending[target], added...)
	}
	for id, added := range pending {
		cp.vars.suspensions[id] = append(cp.vars.suspensions[id], added...)
	}
}

func (cp *copier) copyAndBox(orig *AndBox, newEnv *EnvId) *AndBox {
	if existing, ok := cp.andbox[orig]; ok {
		return existing
	}

	copyBox := &AndBox{
		ID:                  cp.newID(),
		Status:              orig.Status,
		Env:                 newEnv,
		GuardType:           orig.GuardType,
		trailMarkAtStart:    orig.trailMarkAtStart,
		unifiersMarkAtStart: orig.unifiersMarkAtStart,
	}
	cp.andbox[orig] = copyBox
	cp.env[orig.Env] = newEnv

	copyBox.Goals = cp.copyTermSlice(orig.Goals)
	copyBox.BodyGoals = cp.copyTermSlice(orig.BodyGoals)

	// Suspension entries for the copied unifier and constraint variables are
	// not added here: duplicateSuspensions covers every waiter in one pass
	// after the walk, and the original box registered its own suspension when
	// it deferred, so adding one per entry here would wake the copy twice.
	copyBox.Unifiers = make([]Unifier, len(orig.Unifiers))
	for i, u := range orig.Unifiers {
		copyBox.Unifiers[i] = Unifier{Var: cp.copyVar(u.Var), Value: cp.copyTerm(u.Value)}
	}

	copyBox.Constraints = make([]PostedConstraint, len(orig.Constraints))
	for i, c := range orig.Constraints {
		vs := make([]*Var, len(c.Vars))
		for j, v := range c.Vars {
			vs[j] = cp.copyVar(v)
		}
		copyBox.Constraints[i] = PostedConstraint{Name: c.Name, Vars: vs, Entailed: c.Entailed}
	}

	for _, childChoice := range orig.Tried {
		copyBox.Tried = append(copyBox.Tried, cp.copyChoiceBox(childChoice, copyBox))
	}

	for _, v := range orig.localVars {
		copyBox.localVars = append(copyBox.localVars, cp.copyVar(v))
	}

	return copyBox
}

func (cp *copier) copyChoiceBox(orig *ChoiceBox, newFather *AndBox) *ChoiceBox {
	if existing, ok := cp.choice[orig]; ok {
		return existing
	}
	copyBox := &ChoiceBox{
		ID:      cp.newID(),
		Father:  newFather,
		Untried: orig.Untried, // clause definitions are static program data
		Goal:    cp.copyTerm(orig.Goal),
	}
	cp.choice[orig] = copyBox

	for alt := orig.Alternatives; alt != nil; alt = alt.Next {
		altEnv := newFather.Env.Child()
		altCopy := cp.copyAndBox(alt, altEnv)
		copyBox.appendAlternative(altCopy)
	}
	return copyBox
}

// copyVar resolves t's copy identity: a naked variable or one whose env
// lies outside the subtree being copied is external and shared; a variable
// whose env was assigned a copy (because its owning and-box lies inside
// the subtree) is local and gets a fresh copy, memoized by original id so
// repeated references inside the subtree resolve to the same fresh
// variable.
func (cp *copier) copyVar(v *Var) *Var {
	if v.env == nil {
		return v
	}
	newEnv, local := cp.env[v.env]
	if !local {
		return v
	}
	if existing, ok := cp.varmap[v.id]; ok {
		return existing
	}
	fresh := FreshIn(v.name, newEnv)
	cp.varmap[v.id] = fresh
	return fresh
}

// copyTerm dereferences t before copying it: a local variable bound via
// the store (rather than by term-tree mutation, since bindings never
// touch the Var value itself — see var.go) must have its bound value
// carried into the copy, not a fresh unbound variable standing in for it.
func (cp *copier) copyTerm(t Term) Term {
	t = cp.vars.Deref(t)
	switch x := t.(type) {
	case *Var:
		return cp.copyVar(x)
	case *Compound:
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = cp.copyTerm(a)
		}
		return &Compound{Functor: x.Functor, Args: args}
	case *Cons:
		return &Cons{Head: cp.copyTerm(x.Head), Tail: cp.copyTerm(x.Tail)}
	default:
		// Atoms, Int and Float are immutable and shared verbatim.
		return t
	}
}

func (cp *copier) copyTermSlice(ts []Term) []Term {
	if ts == nil {
		return nil
	}
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = cp.copyTerm(t)
	}
	return out
}
