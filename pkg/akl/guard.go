package akl

// PruneScope describes which siblings a guard's promotion removes.
type PruneScope int

const (
	PruneNone PruneScope = iota
	PruneRightSiblings
	PruneAllSiblings
)

// guardRule is one row of the guard dispatch table: when its guard may
// promote, and which siblings promotion removes.
type guardRule struct {
	promoteWhen func(a *AndBox, c *ChoiceBox, emptyTrail bool) bool
	prune       PruneScope
}

var guardTable = map[GuardType]guardRule{
	GuardNone: {
		promoteWhen: func(a *AndBox, c *ChoiceBox, _ bool) bool { return Last(c, a) },
		prune:       PruneNone,
	},
	GuardWait: {
		promoteWhen: func(a *AndBox, c *ChoiceBox, _ bool) bool { return Last(c, a) },
		prune:       PruneNone,
	},
	GuardQuietWait: {
		promoteWhen: func(a *AndBox, c *ChoiceBox, emptyTrail bool) bool {
			return Quiet(a) && emptyTrail && Leftmost(a)
		},
		prune: PruneRightSiblings,
	},
	GuardCommit: {
		promoteWhen: func(a *AndBox, _ *ChoiceBox, emptyTrail bool) bool {
			return Quiet(a) && emptyTrail
		},
		prune: PruneAllSiblings,
	},
	GuardArrow: {
		promoteWhen: func(a *AndBox, c *ChoiceBox, emptyTrail bool) bool {
			return Quiet(a) && emptyTrail && Leftmost(a)
		},
		prune: PruneRightSiblings,
	},
	GuardCut: {
		promoteWhen: func(a *AndBox, c *ChoiceBox, emptyTrail bool) bool {
			return (Quiet(a) && emptyTrail && Leftmost(a)) || Last(c, a)
		},
		prune: PruneRightSiblings,
	},
}

// EmptyTrail reports whether the global trail position recorded when a's
// guard began executing equals the current position: no binding has
// happened since.
func EmptyTrail(trail *Trail, a *AndBox) bool {
	return trail.Len() == a.trailMarkAtStart
}

// PromotionEligible reports whether a, the solved and-box under guard
// a.GuardType within choice-box c, currently satisfies its guard's promote
// condition.
func PromotionEligible(trail *Trail, a *AndBox, c *ChoiceBox) bool {
	rule, ok := guardTable[a.GuardType]
	if !ok {
		return false
	}
	return rule.promoteWhen(a, c, EmptyTrail(trail, a))
}

// PruneScopeFor returns the prune scope for guardType's promotion.
func PruneScopeFor(guardType GuardType) PruneScope {
	return guardTable[guardType].prune
}
