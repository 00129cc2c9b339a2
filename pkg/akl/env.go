package akl

import "github.com/hashicorp/go-uuid"

// EnvId is a node in the tree of and-box scopes. Its parent
// link denotes the enclosing and-box's environment. The query env is the
// root of every computation and is treated as the parent of the root
// and-box's env, which is what makes query variables external to every
// descendant and-box.
type EnvId struct {
	id     string
	parent *EnvId
}

// newEnvId allocates a fresh EnvId as a child of parent (nil for the query
// env). The id itself is only used for logging/diagnostics; locality is
// decided by walking the parent chain, never by comparing ids.
func newEnvId(parent *EnvId) *EnvId {
	id, err := uuid.GenerateUUID()
	if err != nil {
		// uuid.GenerateUUID only fails if the OS's random source is
		// broken; there's nothing a caller could do to recover, and
		// every other subsystem is about to fail the same way.
		panic("akl: failed to generate env id: " + err.Error())
	}
	return &EnvId{id: id, parent: parent}
}

// queryEnv is the distinguished root of every env tree.
func queryEnv() *EnvId {
	return &EnvId{id: "query"}
}

// String renders the env id for diagnostics.
func (e *EnvId) String() string {
	if e == nil {
		return "<nil-env>"
	}
	return e.id
}

// Child allocates a fresh EnvId whose parent is e.
func (e *EnvId) Child() *EnvId {
	return newEnvId(e)
}

// IsAncestorOf reports whether e is a strict ancestor of other, i.e. other
// was reached by following other's parent chain through e.
func (e *EnvId) IsAncestorOf(other *EnvId) bool {
	for cur := other.parent; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}

// isLocal reports whether v is local to an and-box whose own env is andbEnv:
// v.env == andbEnv.
func isLocal(v *Var, andbEnv *EnvId) bool {
	return v.env == andbEnv
}

// isExternal reports whether v is external to an and-box whose own env is
// andbEnv: v.env is a strict ancestor of andbEnv, or v has no env at all
// (a naked query variable).
func isExternal(v *Var, andbEnv *EnvId) bool {
	if v.env == nil {
		return true
	}
	return v.env.IsAncestorOf(andbEnv)
}
