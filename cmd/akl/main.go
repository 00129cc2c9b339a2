// Command akl runs a handful of fixed demo programs against the execution
// core and prints their solutions, exercising the solver without any parser
// front end.
package main

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/andorra-lang/akl/pkg/akl"
	"github.com/andorra-lang/akl/internal/akltest"
)

func main() {
	logger := hclog.New(&hclog.LoggerOptions{Name: "akl", Level: hclog.Warn})

	fmt.Println("member(X, [1,2,3])")
	runMember(logger)

	fmt.Println()
	fmt.Println("append(X, Y, [1,2,3])")
	runAppend(logger)

	fmt.Println()
	fmt.Println("len([1,2,3], N)")
	runLen(logger)

	fmt.Println()
	fmt.Println("ordered(X) -- quiet-wait guard ordering")
	runOrdered(logger)

	fmt.Println()
	fmt.Println("pick(X) -- noisy guard resolved by splitting")
	runPick(logger)

	fmt.Println()
	fmt.Println("\\+ member(4, [1,2,3]) -- negation as failure")
	runNegation(logger)
}

func runMember(logger hclog.Logger) {
	program := akltest.MemberProgram()
	x := akl.Fresh("X")
	list := akl.List(akl.Int(1), akl.Int(2), akl.Int(3))
	query := akl.NewCompound(akl.NewAtom("member"), x, list)

	solutions, err := akl.Solve(program, query, 10_000, logger)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range solutions {
		fmt.Println(" ", s)
	}
}

func runAppend(logger hclog.Logger) {
	program := akltest.AppendProgram()
	x, y := akl.Fresh("X"), akl.Fresh("Y")
	list := akl.List(akl.Int(1), akl.Int(2), akl.Int(3))
	query := akl.NewCompound(akl.NewAtom("append"), x, y, list)

	solutions, err := akl.Solve(program, query, 10_000, logger)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range solutions {
		fmt.Println(" ", s)
	}
}

func runLen(logger hclog.Logger) {
	program := akltest.LenProgram()
	n := akl.Fresh("N")
	list := akl.List(akl.Int(1), akl.Int(2), akl.Int(3))
	query := akl.NewCompound(akl.NewAtom("len"), list, n)

	solutions, err := akl.Solve(program, query, 10_000, logger)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range solutions {
		fmt.Println(" ", s)
	}
}

func runOrdered(logger hclog.Logger) {
	program := akltest.OrderedProgram()
	w := akl.NewWorker(program.Predicates, program.Builtins, logger, 10_000)
	x := akl.Fresh("X")
	query := akl.NewCompound(akl.NewAtom("ordered"), x)

	solutions, err := w.Run(query)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range solutions {
		fmt.Println(" ", s)
	}
}

func runPick(logger hclog.Logger) {
	program := akltest.PickProgram()
	x := akl.Fresh("X")
	query := akl.NewCompound(akl.NewAtom("pick"), x)

	solutions, err := akl.Solve(program, query, 10_000, logger)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range solutions {
		fmt.Println(" ", s)
	}
}

func runNegation(logger hclog.Logger) {
	program := akltest.MemberProgram()
	list := akl.List(akl.Int(1), akl.Int(2), akl.Int(3))
	inner := akl.NewCompound(akl.NewAtom("member"), akl.Int(4), list)
	query := akl.NewCompound(akl.NewAtom("\\+"), inner)

	solutions, err := akl.Solve(program, query, 10_000, logger)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(solutions) == 0 {
		fmt.Println("  no")
		return
	}
	fmt.Println("  yes")
}
