package akl_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andorra-lang/akl/pkg/akl"
	"github.com/andorra-lang/akl/internal/akltest"
)

func solveStrings(t *testing.T, program *akl.Program, query akl.Term) []string {
	t.Helper()
	solutions, err := akl.Solve(program, query, 10_000, nil)
	require.NoError(t, err)
	out := make([]string, len(solutions))
	for i, s := range solutions {
		out[i] = s.String()
	}
	return out
}

func TestMemberProgram(t *testing.T) {
	program := akltest.MemberProgram()
	memberAtom := akl.NewAtom("member")
	list123 := akl.List(akl.Int(1), akl.Int(2), akl.Int(3))

	x := akl.Fresh("X")
	got := solveStrings(t, program, akl.NewCompound(memberAtom, x, list123))
	require.Equal(t, []string{
		"member(1, [1, 2, 3])",
		"member(2, [1, 2, 3])",
		"member(3, [1, 2, 3])",
	}, got)

	got = solveStrings(t, program, akl.NewCompound(memberAtom, akl.Int(2), list123))
	require.Len(t, got, 1)

	got = solveStrings(t, program, akl.NewCompound(memberAtom, akl.Int(4), list123))
	require.Empty(t, got)
}

func TestAppendProgram(t *testing.T) {
	program := akltest.AppendProgram()
	appendAtom := akl.NewAtom("append")
	list12 := akl.List(akl.Int(1), akl.Int(2))
	list34 := akl.List(akl.Int(3), akl.Int(4))
	list1234 := akl.List(akl.Int(1), akl.Int(2), akl.Int(3), akl.Int(4))

	z := akl.Fresh("Z")
	got := solveStrings(t, program, akl.NewCompound(appendAtom, list12, list34, z))
	require.Equal(t, []string{"append([1, 2], [3, 4], [1, 2, 3, 4])"}, got)

	x, y := akl.Fresh("X"), akl.Fresh("Y")
	got = solveStrings(t, program, akl.NewCompound(appendAtom, x, y, list1234))
	require.Len(t, got, 5)
}

func TestLenProgram(t *testing.T) {
	program := akltest.LenProgram()
	lenAtom := akl.NewAtom("len")
	list123 := akl.List(akl.Int(1), akl.Int(2), akl.Int(3))

	n := akl.Fresh("N")
	got := solveStrings(t, program, akl.NewCompound(lenAtom, list123, n))
	require.Equal(t, []string{"len([1, 2, 3], 3)"}, got)
}

func TestOrderedProgramQuietWaitOrdering(t *testing.T) {
	program := akltest.OrderedProgram()
	w := akl.NewWorker(program.Predicates, program.Builtins, nil, 10_000)
	var out bytes.Buffer
	w.SetOutput(&out)

	x := akl.Fresh("X")
	solutions, err := w.Run(akl.NewCompound(akl.NewAtom("ordered"), x))
	require.NoError(t, err)

	require.Len(t, solutions, 1)
	require.Equal(t, "ordered(a)", solutions[0].String())
	require.Equal(t, "first", out.String())
}

func TestPickProgramSplitsThreeWays(t *testing.T) {
	program := akltest.PickProgram()
	pickAtom := akl.NewAtom("pick")

	x := akl.Fresh("X")
	got := solveStrings(t, program, akl.NewCompound(pickAtom, x))
	require.Equal(t, []string{"pick(1)", "pick(2)", "pick(3)"}, got)
}

func TestNegationOverMember(t *testing.T) {
	program := akltest.MemberProgram()
	memberAtom := akl.NewAtom("member")
	notAtom := akl.NewAtom("\\+")
	list123 := akl.List(akl.Int(1), akl.Int(2), akl.Int(3))

	absent := akl.NewCompound(notAtom, akl.NewCompound(memberAtom, akl.Int(4), list123))
	got := solveStrings(t, program, absent)
	require.Len(t, got, 1)

	present := akl.NewCompound(notAtom, akl.NewCompound(memberAtom, akl.Int(2), list123))
	got = solveStrings(t, program, present)
	require.Empty(t, got)
}
