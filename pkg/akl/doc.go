// Package akl implements the execution core of an interpreter for the
// Andorra Kernel Language (AKL), a concurrent constraint logic language in
// the Prolog family.
//
// Unlike Prolog, AKL does not backtrack chronologically. Nondeterminism is
// realised by splitting: the live computation graph is deep-copied into
// independent branches, while concurrent clauses coordinate through guards
// that suspend on external variables and promote their results into the
// parent scope once quiescent.
//
// The package is organized around the tree of and-boxes and choice-boxes
// (box.go), variable environments and scope (env.go), unification with
// deferred external bindings (unify.go), suspension and wake queues
// (suspend.go), guard semantics (guard.go), copy-based splitting (copy.go),
// and the single-threaded cooperative worker that ties it all together
// (worker.go). A query driver (driver.go) seeds the worker with a root goal
// and collects ground solutions.
//
// This implementation is single-threaded and cooperative: one worker drains
// a task queue to completion. Concurrency in AKL is a property of the
// computation graph (many and-boxes coexist), not of the Go runtime driving
// it — see worker.go for the scheduling loop.
package akl
