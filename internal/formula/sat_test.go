package formula

import (
	"testing"

	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/stretchr/testify/assert"
)

func pred(name string) ast.Predicate {
	return ast.Predicate{Name: name}
}

func atom(name string) ast.Formula {
	return ast.MakeAtom(pred(name))
}

func TestSatisfiable(t *testing.T) {
	testCases := []struct {
		name   string
		input  ast.Formula
		expect bool
	}{
		{
			name:   "empty formula is satisfiable",
			input:  ast.Empty(),
			expect: true,
		},
		{
			name:   "single atom is satisfiable",
			input:  atom("at-home"),
			expect: true,
		},
		{
			name:   "atom and its negation is unsatisfiable",
			input:  ast.MakeAnd(atom("at-home"), ast.MakeNot(atom("at-home"))),
			expect: false,
		},
		{
			name:   "atom or its negation is satisfiable",
			input:  ast.MakeOr(atom("at-home"), ast.MakeNot(atom("at-home"))),
			expect: true,
		},
		{
			name: "conjunction of distinct atoms is satisfiable",
			input: ast.MakeAnd(
				atom("has-key"),
				atom("door-unlocked"),
			),
			expect: true,
		},
		{
			name: "imply with contradictory antecedent and consequent",
			input: ast.MakeImply(
				[]ast.Formula{atom("has-key")},
				[]ast.Formula{ast.MakeNot(atom("has-key"))},
			),
			expect: true, // satisfied whenever has-key is false
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			simplified := Simplify(tc.input)
			nnf := ToNNF(simplified)
			cnf := Distribute(nnf)
			dropped := DropQuantifiers(cnf)

			actual := Satisfiable(dropped)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestToClauses_TrivialTrue(t *testing.T) {
	assert := assert.New(t)

	f := ast.MakeOr(atom("a"), ast.MakeNot(atom("a")))
	nnf := ToNNF(Simplify(f))
	cnf := Distribute(nnf)

	_, clauses := ToClauses(cnf)

	// a clause containing both a literal and its negation is trivially
	// true and should not constrain satisfiability.
	assert.True(Satisfiable(cnf))
	_ = clauses
}
