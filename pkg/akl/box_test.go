package akl

import "testing"

func TestSolvedRequiresEmptyGoalsAndTried(t *testing.T) {
	a := &AndBox{}
	if !Solved(a) {
		t.Fatal("a fresh and-box with no goals and no tried children should be solved")
	}
	a.Goals = []Term{trueAtom}
	if Solved(a) {
		t.Fatal("pending goals should make it unsolved")
	}
	a.Goals = nil
	a.Tried = []*ChoiceBox{{}}
	if Solved(a) {
		t.Fatal("live child choice-boxes should make it unsolved")
	}
}

func TestQuietIgnoresUnifiersProposedBeforeGuardStart(t *testing.T) {
	a := &AndBox{}
	v := Fresh("X")
	a.Unifiers = []Unifier{{Var: v, Value: Int(1)}}
	a.unifiersMarkAtStart = 1 // head match proposed exactly this one
	if !Quiet(a) {
		t.Fatal("a head-match-time unifier must not count against Quiet")
	}

	a.Unifiers = append(a.Unifiers, Unifier{Var: Fresh("Y"), Value: Int(2)})
	if Quiet(a) {
		t.Fatal("a unifier proposed after the guard started must count against Quiet")
	}
}

func TestQuietRespectsUnentailedConstraints(t *testing.T) {
	a := &AndBox{Constraints: []PostedConstraint{{Name: "dif", Entailed: false}}}
	if Quiet(a) {
		t.Fatal("an unentailed constraint must make the and-box non-quiet")
	}
	a.Constraints[0].Entailed = true
	if !Quiet(a) {
		t.Fatal("an entailed constraint should not block quiescence")
	}
}

func TestLastAndLeftmost(t *testing.T) {
	c := &ChoiceBox{}
	a1 := &AndBox{ID: "a1"}
	a2 := &AndBox{ID: "a2"}
	c.appendAlternative(a1)
	c.appendAlternative(a2)

	if Last(c, a1) {
		t.Fatal("two live alternatives: neither is Last")
	}
	if !Leftmost(a1) || Leftmost(a2) {
		t.Fatal("a1 should be leftmost, a2 should not")
	}

	a2.markDead()
	if !Last(c, a1) {
		t.Fatal("with a2 dead, a1 should be Last")
	}
}

func TestMarkDeadIsTransitive(t *testing.T) {
	parent := &AndBox{}
	child := &ChoiceBox{}
	grandchild := &AndBox{}
	child.appendAlternative(grandchild)
	parent.Tried = []*ChoiceBox{child}

	parent.markDead()
	if grandchild.Status != StatusDead {
		t.Fatal("markDead should mark descendants dead transitively")
	}
}

func TestInsertLeftOfSplicesCorrectly(t *testing.T) {
	c := &ChoiceBox{}
	existing := &AndBox{ID: "existing"}
	c.appendAlternative(existing)

	fresh := &AndBox{ID: "fresh"}
	c.insertLeftOf(existing, fresh)

	if c.Alternatives != fresh {
		t.Fatal("fresh should become the new head of the alternatives list")
	}
	if fresh.Next != existing || existing.Previous != fresh {
		t.Fatal("fresh and existing should be linked as adjacent siblings")
	}
	if fresh.Father != c {
		t.Fatal("fresh's father should be c")
	}
}

func TestRemoveTried(t *testing.T) {
	p := &AndBox{}
	c1 := &ChoiceBox{}
	c2 := &ChoiceBox{}
	p.Tried = []*ChoiceBox{c1, c2}
	p.removeTried(c1)
	if len(p.Tried) != 1 || p.Tried[0] != c2 {
		t.Fatalf("expected only c2 to remain, got %+v", p.Tried)
	}
}

func TestUnlinkPreservesSiblingChain(t *testing.T) {
	c := &ChoiceBox{}
	a1 := &AndBox{ID: "a1"}
	a2 := &AndBox{ID: "a2"}
	a3 := &AndBox{ID: "a3"}
	c.appendAlternative(a1)
	c.appendAlternative(a2)
	c.appendAlternative(a3)

	a2.unlink()
	if a1.Next != a3 || a3.Previous != a1 {
		t.Fatal("unlinking the middle alternative should join its neighbors")
	}
	if a2.Father != nil || a2.Previous != nil || a2.Next != nil {
		t.Fatal("unlink should clear the unlinked and-box's own links")
	}
}
