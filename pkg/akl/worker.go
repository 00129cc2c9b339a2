package akl

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-uuid"
)

// Worker is the single-threaded execution engine. It owns the task queue,
// the wake/recall priority queues, and the one computation tree rooted at
// rootChoice — a synthetic top-level choice-box with no father of its own,
// so that promoting out of the top becomes the ordinary case of promoting
// into a choice-box whose Father and-box happens not to exist, handled
// uniformly as a solution harvest rather than as a nil-pointer special
// case threaded through every promotion site.
type Worker struct {
	vars       *VarStore
	trail      *Trail
	predicates *PredicateStore
	builtins   map[string]BuiltinFunc
	logger     hclog.Logger
	maxSteps   int
	output     io.Writer

	tasks       *TaskQueue
	wakeQueue   []*AndBox
	recallQueue []*ChoiceBox

	rootChoice *ChoiceBox
	query      Term
	solutions  []Term
	steps      int

	// onHarvest is called for every and-box promoted directly out of
	// rootChoice. Run installs the default (snapshot and append to
	// solutions); runSubGoal temporarily installs one that just records
	// success, for an isolated negation/if-then-else evaluation.
	onHarvest func(a *AndBox)
}

// NewWorker builds a worker over a loaded predicate store and built-in set.
// maxSteps <= 0 means unbounded.
func NewWorker(predicates *PredicateStore, builtins map[string]BuiltinFunc, logger hclog.Logger, maxSteps int) *Worker {
	if logger == nil {
		logger = discardLogger()
	}
	w := &Worker{
		vars:       NewVarStore(),
		trail:      NewTrail(),
		predicates: predicates,
		builtins:   builtins,
		logger:     logger,
		maxSteps:   maxSteps,
		output:     os.Stdout,
		tasks:      NewTaskQueue(),
	}
	w.onHarvest = func(a *AndBox) {
		w.solutions = append(w.solutions, w.snapshotQuery(a))
	}
	return w
}

// SetOutput redirects write/1's destination, for tests that want to capture
// guard side effects instead of letting them land on os.Stdout.
func (w *Worker) SetOutput(out io.Writer) {
	w.output = out
}

func (w *Worker) newObjectID() string {
	id, err := uuid.GenerateUUID()
	if err != nil {
		panic("akl: failed to generate object id: " + err.Error())
	}
	return id
}

// Run seeds the computation tree from query and drains it to exhaustion or
// the step budget, returning every solution harvested.
func (w *Worker) Run(query Term) ([]Term, error) {
	w.query = query
	rootEnv := queryEnv().Child()
	rootBox := &AndBox{
		ID:               w.newObjectID(),
		Status:           StatusStable,
		Env:              rootEnv,
		Goals:            []Term{query},
		GuardType:        GuardNone,
		trailMarkAtStart: w.trail.Len(),
	}
	w.rootChoice = &ChoiceBox{ID: w.newObjectID()}
	w.rootChoice.appendAlternative(rootBox)
	w.tasks.Push(Task{Kind: TaskRoot, Box: rootBox})

	if err := w.drain(); err != nil {
		return w.solutions, err
	}
	return w.solutions, nil
}

// drain pops tasks — wake queue first, then recall queue, then the regular
// FIFO — and when every queue is empty, searches for a split candidate
// before declaring the run finished.
func (w *Worker) drain() error {
	for {
		if w.maxSteps > 0 && w.steps >= w.maxSteps {
			return ErrStepLimitExceeded
		}
		task, ok := w.nextTask()
		if !ok {
			candidate := w.findCandidate()
			if candidate != nil {
				if err := w.split(candidate); err != nil {
					return err
				}
				continue
			}
			// Harvested alternatives unlink themselves, but failed ones stay
			// in the sibling list marked DEAD — a run whose last branch
			// failed has finished, not deadlocked.
			live := false
			for alt := w.rootChoice.Alternatives; alt != nil; alt = alt.Next {
				if alt.Status != StatusDead {
					live = true
					break
				}
			}
			if !live {
				return nil
			}
			return w.deadlockError()
		}
		w.steps++
		if err := w.runTask(task); err != nil {
			return err
		}
	}
}

// deadlockError builds a diagnostic report of every live and-box still
// standing when the task queue and the split search both came up empty but
// at least one top-level branch remains unresolved.
func (w *Worker) deadlockError() error {
	var report DeadlockReport
	var walk func(a *AndBox)
	walk = func(a *AndBox) {
		if a.Status == StatusDead {
			return
		}
		switch {
		case len(a.Goals) > 0:
			report.Inspected = append(report.Inspected,
				fmt.Sprintf("%s: waiting on goal %s", a.ID, a.Goals[0]))
		case !Solved(a):
			report.Inspected = append(report.Inspected,
				fmt.Sprintf("%s: has unresolved child choice-boxes", a.ID))
		default:
			report.Inspected = append(report.Inspected,
				fmt.Sprintf("%s: solved under guard %s but not eligible to promote", a.ID, a.GuardType))
		}
		for _, cb := range a.Tried {
			for alt := cb.Alternatives; alt != nil; alt = alt.Next {
				walk(alt)
			}
		}
	}
	for alt := w.rootChoice.Alternatives; alt != nil; alt = alt.Next {
		walk(alt)
	}
	return &report
}

func (w *Worker) nextTask() (Task, bool) {
	if len(w.wakeQueue) > 0 {
		b := w.wakeQueue[0]
		w.wakeQueue = w.wakeQueue[1:]
		return Task{Kind: TaskWake, Box: b}, true
	}
	if len(w.recallQueue) > 0 {
		c := w.recallQueue[0]
		w.recallQueue = w.recallQueue[1:]
		return Task{Kind: TaskRecall, Choice: c}, true
	}
	return w.tasks.Pop()
}

func (w *Worker) runTask(t Task) error {
	switch t.Kind {
	case TaskStart, TaskWake, TaskRoot:
		return w.dispatch(t.Box)
	case TaskRecall:
		return w.recall(t.Choice)
	case TaskPromote:
		return w.promote(t.Box)
	case TaskSplit:
		// A split retry token: drain's own "queue empty" branch already
		// re-runs findCandidate whenever there is nothing left to do, so
		// draining the token itself is a no-op.
		return nil
	default:
		return nil
	}
}

// dispatch processes exactly one pending goal of andb — or, if andb has none
// left, checks whether it is now solved. While a goal's choice-box is still
// pending in andb.Tried, the next goal waits: promotion (or failure) of that
// choice-box wakes andb again, so goals run in program order and a promoted
// body runs before the continuation behind it.
func (w *Worker) dispatch(andb *AndBox) error {
	if andb.Status == StatusDead {
		return nil
	}
	if len(andb.Tried) > 0 {
		return nil
	}
	if len(andb.Goals) == 0 {
		return w.checkSolved(andb)
	}

	g := w.vars.Deref(andb.Goals[0])
	rest := andb.Goals[1:]
	w.logger.Trace("dispatch", "andbox", andb.ID, "goal", g, "pending", len(rest))

	if g == cutAtom {
		// `!` as a body goal (rather than a guard operator) is rejected
		// rather than silently failed; this core rejects it here,
		// at dispatch time, since it has no separate compile step.
		return &InvariantError{Op: "worker.dispatch", Detail: "cut (!) as a body goal is not supported; use a guard operator"}
	}

	if c, ok := g.(*Compound); ok {
		switch {
		case c.Functor == commaAtom && len(c.Args) == 2:
			andb.Goals = append([]Term{c.Args[0], c.Args[1]}, rest...)
			w.tasks.Push(Task{Kind: TaskWake, Box: andb})
			return nil
		case c.Functor == semiAtom && len(c.Args) == 2:
			andb.Goals = rest
			return w.dispatchDisjunction(andb, c.Args[0], c.Args[1])
		case c.Functor == notAtom && len(c.Args) == 1:
			andb.Goals = rest
			return w.dispatchNegation(andb, c.Args[0])
		}
	}

	andb.Goals = rest
	return w.dispatchCall(andb, g)
}

// dispatchDisjunction handles `;(A,B)`: if A is itself
// `->(Cond,Then)` this is if-then-else, resolved by running Cond in an
// isolated sub-execution; otherwise it is a plain two-way choice, expanded
// into a choice-box of two NONE-guarded and-boxes sharing andb's own local
// variables (no renaming — unlike clause instantiation, these are not
// template variables).
func (w *Worker) dispatchDisjunction(andb *AndBox, left, right Term) error {
	if ifte, ok := left.(*Compound); ok && ifte.Functor == arrowAtom && len(ifte.Args) == 2 {
		cond, then := ifte.Args[0], ifte.Args[1]
		ok, err := w.runSubGoal(andb, cond)
		if err != nil {
			return err
		}
		if ok {
			andb.Goals = append([]Term{then}, andb.Goals...)
		} else {
			andb.Goals = append([]Term{right}, andb.Goals...)
		}
		w.tasks.Push(Task{Kind: TaskWake, Box: andb})
		return nil
	}

	cb := &ChoiceBox{
		ID:     w.newObjectID(),
		Father: andb,
		Goal:   &Compound{Functor: semiAtom, Args: []Term{left, right}},
	}
	leftBox := &AndBox{
		ID: w.newObjectID(), Status: StatusStable, Env: andb.Env.Child(),
		Goals: []Term{left}, GuardType: GuardNone, trailMarkAtStart: w.trail.Len(),
	}
	rightBox := &AndBox{
		ID: w.newObjectID(), Status: StatusStable, Env: andb.Env.Child(),
		Goals: []Term{right}, GuardType: GuardNone, trailMarkAtStart: w.trail.Len(),
	}
	cb.appendAlternative(leftBox)
	cb.appendAlternative(rightBox)
	andb.Tried = append(andb.Tried, cb)

	w.tasks.Push(Task{Kind: TaskStart, Box: leftBox})
	w.tasks.Push(Task{Kind: TaskStart, Box: rightBox})
	w.tasks.Push(Task{Kind: TaskWake, Box: andb})
	return nil
}

// dispatchNegation handles `\+G`:
// G runs to first success in an isolated sub-execution whose bindings are
// always undone; the and-box succeeds iff G had no solution.
func (w *Worker) dispatchNegation(andb *AndBox, g Term) error {
	ok, err := w.runSubGoal(andb, g)
	if err != nil {
		return err
	}
	if ok {
		return w.fail(andb)
	}
	w.tasks.Push(Task{Kind: TaskWake, Box: andb})
	return nil
}

// dispatchCall handles an atomic goal: a built-in invocation or a predicate
// call expanded into a fresh choice-box of clause activations.
func (w *Worker) dispatchCall(andb *AndBox, g Term) error {
	name, arity, ok := Indicator(g)
	if !ok {
		return w.fail(andb)
	}

	if fn, found := w.builtins[builtinKey(name, arity)]; found {
		outcome, err := fn(w, andb, argsOf(g))
		if err != nil {
			return err
		}
		switch outcome.Status {
		case StepSucceeded:
			w.tasks.Push(Task{Kind: TaskWake, Box: andb})
			return nil
		case StepSuspended:
			// The built-in (or, transitively, Unify) already registered the
			// suspension on outcome.On before returning StepSuspended — see
			// BuiltinFunc's contract in builtins.go. Registering it again
			// here would let the variable's binding wake andb twice.
			andb.Goals = append([]Term{g}, andb.Goals...)
			andb.raiseStatus(StatusUnstable)
			return nil
		default:
			return w.fail(andb)
		}
	}

	clauses := w.predicates.Lookup(name, arity)
	if len(clauses) == 0 {
		if w.predicates.strict {
			w.logger.Debug("dispatchCall: unknown predicate", "name", name, "arity", arity)
			return ErrUnknownPredicate
		}
		return w.fail(andb)
	}
	return w.expandPredicateCall(andb, g, clauses)
}

func argsOf(g Term) []Term {
	if c, ok := g.(*Compound); ok {
		return c.Args
	}
	return nil
}

// expandPredicateCall tries every clause's head against g and creates a
// child and-box per matching clause, all siblings in one fresh choice-box.
// Head unification always runs under noisy (deferring) rules regardless of
// the clause's own guard type — quiet guards only forbid external bindings
// from the guard's own execution, which starts only after a head match
// succeeds.
func (w *Worker) expandPredicateCall(andb *AndBox, g Term, clauses []*Clause) error {
	cb := &ChoiceBox{ID: w.newObjectID(), Father: andb, Goal: g}
	matched := false

	for _, clause := range clauses {
		childEnv := andb.Env.Child()
		mark := w.trail.Mark()
		head, guard, body, freshVars := clause.Instantiate(childEnv)

		child := &AndBox{
			ID: w.newObjectID(), Status: StatusStable, Env: childEnv,
			GuardType: GuardNone, BodyGoals: []Term{body}, localVars: freshVars,
		}

		outcome, err := Unify(w.vars, w.trail, child, g, head)
		if err != nil || outcome.Status != StepSucceeded {
			// A partially successful head match may already have registered
			// suspensions of child on the caller's external variables;
			// marking it DEAD keeps a later binding from waking an
			// activation that was never installed in cb.
			child.markDead()
			w.trail.Undo(mark, w.vars)
			continue
		}

		matched = true
		child.GuardType = clause.GuardType
		child.Goals = []Term{guard}
		// trailMarkAtStart/unifiersMarkAtStart are stamped after
		// head-unification, not before: a clause's head match is a
		// committed, deterministic part of activating it, not part of the
		// guard's own execution, so bindings and deferred unifiers it
		// produced must not count against this and-box's own
		// EmptyTrail/Quiet checks.
		child.trailMarkAtStart = w.trail.Len()
		child.unifiersMarkAtStart = len(child.Unifiers)
		cb.appendAlternative(child)
		w.tasks.Push(Task{Kind: TaskStart, Box: child})
	}

	if !matched {
		return w.fail(andb)
	}
	andb.Tried = append(andb.Tried, cb)
	w.tasks.Push(Task{Kind: TaskWake, Box: andb})
	return nil
}

// checkSolved promotes or harvests andb if it has become Solved and its
// guard's promotion condition now holds.
func (w *Worker) checkSolved(andb *AndBox) error {
	if andb.Status == StatusDead || !Solved(andb) {
		return nil
	}
	if andb.Father == w.rootChoice {
		w.harvestRoot(andb)
		return nil
	}
	if PromotionEligible(w.trail, andb, andb.Father) {
		return w.promote(andb)
	}
	return nil
}

// harvestRoot records a solution the moment a top-level and-box solves,
// independent of any guard's Last/Leftmost gating — there is nothing above
// rootChoice to promote into, so "solved at the top" simply is the
// observable result. The branch's variable
// bindings are read off without mutating the shared store: naked query
// variables are the only externals a root-level and-box can ever defer on
// (every other ancestor in its env chain is a synthetic, non-variable-owning
// scope), and a split's sibling branches share exactly those naked
// variables — binding one for real here would leak into a sibling branch
// still being explored.
func (w *Worker) harvestRoot(a *AndBox) {
	w.onHarvest(a)
	a.unlink()
	a.markDead()
}

// snapshotQuery resolves w.query to a displayable term for the solution
// found in and-box a, substituting a's own deferred unifiers for any query
// variable it bound.
func (w *Worker) snapshotQuery(a *AndBox) Term {
	return w.resolveForSnapshot(a, w.query)
}

func (w *Worker) resolveForSnapshot(a *AndBox, t Term) Term {
	t = w.vars.Deref(t)
	switch x := t.(type) {
	case *Var:
		for _, u := range a.Unifiers {
			if u.Var.id == x.id {
				return w.resolveForSnapshot(a, u.Value)
			}
		}
		return x
	case *Compound:
		args := make([]Term, len(x.Args))
		for i, arg := range x.Args {
			args[i] = w.resolveForSnapshot(a, arg)
		}
		return &Compound{Functor: x.Functor, Args: args}
	case *Cons:
		return &Cons{Head: w.resolveForSnapshot(a, x.Head), Tail: w.resolveForSnapshot(a, x.Tail)}
	default:
		return t
	}
}

// promote runs the full promotion algorithm: prune, rehome
// local variables, discharge unifiers, propagate constraints, splice body
// goals at the parent's front, delink from the fork, and wake the parent.
func (w *Worker) promote(a *AndBox) error {
	c := a.Father
	if c == w.rootChoice {
		w.harvestRoot(a)
		return nil
	}
	if !PromotionEligible(w.trail, a, c) {
		return nil
	}
	p := c.Father
	w.logger.Debug("promote", "andbox", a.ID, "into", p.ID, "guard", a.GuardType)

	switch PruneScopeFor(a.GuardType) {
	case PruneAllSiblings:
		for cur := c.Alternatives; cur != nil; cur = cur.Next {
			if cur != a {
				cur.markDead()
			}
		}
		c.Untried = nil
	case PruneRightSiblings:
		for cur := a.Next; cur != nil; cur = cur.Next {
			cur.markDead()
		}
		c.Untried = nil
	}

	// Rehomed variables are local to p from here on; p.localVars must track
	// them so a later promotion of p itself rehomes them again.
	for _, v := range a.localVars {
		v.env = p.Env
		wakeSuspensions(w, v)
	}
	p.localVars = append(p.localVars, a.localVars...)
	a.localVars = nil

	for _, u := range a.Unifiers {
		val := w.vars.Deref(u.Value)
		cur := w.vars.Deref(u.Var)
		if cv, isVar := cur.(*Var); isVar {
			if isLocal(cv, p.Env) {
				w.vars.Bind(cv, val, w.trail)
				wakeSuspensions(w, cv)
			} else {
				p.Unifiers = append(p.Unifiers, Unifier{Var: cv, Value: val})
				w.vars.Suspend(cv, Suspension{Box: p})
				p.raiseStatus(StatusUnstable)
			}
			continue
		}
		// u.Var was bound after the entry was deferred — a sibling sub-goal
		// of p already discharged its own proposal for the same variable.
		// The two proposals must agree, or p itself fails.
		outcome, err := Unify(w.vars, w.trail, p, cur, val)
		if err != nil || outcome.Status == StepFailed {
			a.Unifiers = nil
			return w.fail(p)
		}
	}
	a.Unifiers = nil

	for _, pc := range a.Constraints {
		nowLocal := true
		for _, v := range pc.Vars {
			if !isLocal(v, p.Env) {
				nowLocal = false
				break
			}
		}
		p.Constraints = append(p.Constraints, pc)
		if nowLocal {
			for _, v := range pc.Vars {
				wakeSuspensions(w, v)
			}
		}
	}
	a.Constraints = nil

	if len(a.BodyGoals) > 0 {
		p.Goals = append(append([]Term{}, a.BodyGoals...), p.Goals...)
	}

	a.unlink()
	// a has now dissolved into p: its body goals and bindings live on in p,
	// but a itself must never be dispatched again. Without this, a stale
	// self-suspension a registered on one of its own now-discharged
	// Unifiers (wakeSuspensions above can drain that same entry) would
	// re-queue a wake task against an and-box whose Father is now nil.
	a.markDead()

	stillLive := len(c.Untried)
	for cur := c.Alternatives; cur != nil; cur = cur.Next {
		if cur.Status != StatusDead {
			stillLive++
		}
	}
	if stillLive == 0 {
		p.removeTried(c)
	}

	w.tasks.Push(Task{Kind: TaskWake, Box: p})
	return nil
}

// fail marks a dead and propagates the failure up through its fork and, if
// that empties the fork entirely, into the and-box that housed it.
func (w *Worker) fail(a *AndBox) error {
	a.markDead()
	return w.propagateFailure(a)
}

func (w *Worker) propagateFailure(a *AndBox) error {
	c := a.Father
	w.logger.Trace("propagateFailure", "andbox", a.ID, "fork", c.ID)
	if c == w.rootChoice {
		return nil
	}

	live := len(c.Untried)
	for cur := c.Alternatives; cur != nil; cur = cur.Next {
		if cur.Status != StatusDead {
			live++
		}
	}
	if live == 0 {
		w.logger.Debug("propagateFailure: fork exhausted", "fork", c.ID, "mother", c.Father.ID)
		return w.fail(c.Father)
	}

	// Dropping an alternative may have made the remaining one eligible (a
	// NONE/WAIT guard's Last condition often starts holding here). Re-run it
	// last: if it promotes, c is already spliced away and there is nothing
	// left to propagate.
	if c.Determinate() {
		if remaining := c.SoleLiveAlternative(); remaining != nil {
			return w.checkSolved(remaining)
		}
	}
	return nil
}

// recall re-examines every live alternative of cb for promotion
// eligibility: the rarely-used counterpart to and-box suspension, for
// guards whose eligibility depends on the choice-box as a whole rather
// than on a single and-box's own goal.
func (w *Worker) recall(cb *ChoiceBox) error {
	for alt := cb.Alternatives; alt != nil; alt = alt.Next {
		if alt.Status == StatusDead {
			continue
		}
		if err := w.checkSolved(alt); err != nil {
			return err
		}
	}
	return nil
}

// runSubGoal runs g to first success or exhaustion in an isolated,
// throwaway computation: its own task,
// wake and recall queues and its own synthetic root choice-box, so it can
// never interleave with or be promoted into the enclosing computation. The
// trail is unconditionally rewound on return, success or failure, so no
// binding made while evaluating g is ever observable afterward.
func (w *Worker) runSubGoal(parent *AndBox, g Term) (bool, error) {
	ctx := w.PushContext()
	defer w.PopContext(ctx)

	savedTasks, savedWake, savedRecall := w.tasks, w.wakeQueue, w.recallQueue
	savedRoot, savedHarvest := w.rootChoice, w.onHarvest
	defer func() {
		// Suspensions the sub-run registered on shared external variables
		// outlive it; marking its whole tree DEAD makes those wakes no-ops
		// instead of dispatches into an orphaned graph.
		for alt := w.rootChoice.Alternatives; alt != nil; alt = alt.Next {
			alt.markDead()
		}
		w.tasks, w.wakeQueue, w.recallQueue = savedTasks, savedWake, savedRecall
		w.rootChoice, w.onHarvest = savedRoot, savedHarvest
	}()

	succeeded := false
	w.onHarvest = func(*AndBox) { succeeded = true }
	w.tasks = NewTaskQueue()
	w.wakeQueue = nil
	w.recallQueue = nil

	subRoot := &AndBox{
		ID: w.newObjectID(), Status: StatusStable, Env: parent.Env.Child(),
		Goals: []Term{g}, GuardType: GuardNone, trailMarkAtStart: w.trail.Len(),
	}
	w.rootChoice = &ChoiceBox{ID: w.newObjectID()}
	w.rootChoice.appendAlternative(subRoot)
	w.tasks.Push(Task{Kind: TaskRoot, Box: subRoot})

	for !succeeded {
		task, ok := w.nextTask()
		if !ok {
			candidate := w.findCandidate()
			if candidate == nil {
				break
			}
			if err := w.split(candidate); err != nil {
				return false, err
			}
			continue
		}
		if w.maxSteps > 0 {
			w.steps++
			if w.steps >= w.maxSteps {
				return false, ErrStepLimitExceeded
			}
		}
		if err := w.runTask(task); err != nil {
			return false, err
		}
	}
	return succeeded, nil
}

// findCandidate searches the whole computation tree for a split candidate: a
// solved, leftmost and-box under a NONE or WAIT guard, preferring the
// deepest, then leftmost, match. A candidate whose fork is rootChoice
// is excluded: a solved top-level and-box is harvested the moment it solves
// (checkSolved), so it never lingers here looking for a split.
func (w *Worker) findCandidate() *AndBox {
	var best *AndBox
	bestDepth := -1

	var walk func(a *AndBox, depth int)
	walk = func(a *AndBox, depth int) {
		if a.Status == StatusDead {
			return
		}
		if a.Father != w.rootChoice && Solved(a) &&
			(a.GuardType == GuardNone || a.GuardType == GuardWait) && Leftmost(a) {
			if depth > bestDepth {
				bestDepth = depth
				best = a
			}
		}
		for _, cb := range a.Tried {
			for alt := cb.Alternatives; alt != nil; alt = alt.Next {
				walk(alt, depth+1)
			}
		}
	}
	for alt := w.rootChoice.Alternatives; alt != nil; alt = alt.Next {
		walk(alt, 0)
	}
	return best
}

// split realizes the nondeterminism at candidate a by copying its mother,
// pruning the copy down to a single committed branch, and installing the
// copy as the mother's new left sibling.
func (w *Worker) split(a *AndBox) error {
	c := a.Father
	m := c.Father
	w.logger.Debug("split", "candidate", a.ID, "fork", c.ID, "mother", m.ID)

	mCopy, boxMap, choiceMap := CopySubtreeWithMap(m, w.vars, w.newObjectID)
	cCopy := choiceMap[c]
	aCopy := boxMap[a]

	// Every copied alternative other than aCopy is discarded from the new
	// branch; they are marked DEAD, not merely dropped from the list, because
	// the copy pass duplicated their suspensions on shared externals and a
	// later binding must not wake a box the branch never kept.
	for cur := cCopy.Alternatives; cur != nil; cur = cur.Next {
		if cur != aCopy {
			cur.markDead()
		}
	}
	cCopy.Alternatives = aCopy
	aCopy.Previous, aCopy.Next = nil, nil
	aCopy.Father = cCopy
	cCopy.Untried = nil

	a.unlink()
	a.markDead()

	gc := m.Father
	gc.insertLeftOf(m, mCopy)

	if c.Determinate() {
		if remaining := c.SoleLiveAlternative(); remaining != nil {
			w.tasks.Push(Task{Kind: TaskPromote, Box: remaining})
		}
	} else if Stable(m) {
		w.tasks.Push(Task{Kind: TaskSplit})
	}

	// The copy's branch commits to a immediately: promoting aCopy here, not
	// through a queued task, keeps the committed branch's continuation ahead
	// of the original's remaining alternatives, so solutions come out in
	// left-to-right clause order.
	return w.promote(aCopy)
}
