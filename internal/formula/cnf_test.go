package formula

import (
	"testing"

	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplify_DoubleNegationCollapses(t *testing.T) {
	f := ast.MakeNot(ast.MakeNot(atom("p")))
	got := Simplify(f)
	assert.Equal(t, ast.FAtom, got.Kind)
}

func TestSimplify_FlattenNestedAnd(t *testing.T) {
	f := ast.MakeAnd(atom("a"), ast.MakeAnd(atom("b"), atom("c")))
	got := Simplify(f)
	require.Equal(t, ast.FAnd, got.Kind)
	assert.Len(t, got.Children, 3)
}

func TestSimplify_ImplyBecomesOrOfNegatedAndAndConsequent(t *testing.T) {
	f := ast.MakeImply([]ast.Formula{atom("a")}, []ast.Formula{atom("b")})
	got := Simplify(f)
	assert.Equal(t, ast.FOr, got.Kind)
}

func TestSimplify_EquivRewritesEquals(t *testing.T) {
	a := ast.Symbol{Name: "x"}
	b := ast.Symbol{Name: "y"}
	f := ast.MakeEquals(a, b)
	got := Simplify(f)
	// Equals(a,b) -> Or(And(a,b), And(not a, not b))
	require.Equal(t, ast.FOr, got.Kind)
	require.Len(t, got.Children, 2)
	assert.Equal(t, ast.FAnd, got.Children[0].Kind)
	assert.Equal(t, ast.FAnd, got.Children[1].Kind)
}

func TestSimplify_NotEqualsBecomesXor(t *testing.T) {
	a := ast.Symbol{Name: "x"}
	b := ast.Symbol{Name: "y"}
	f := ast.MakeNot(ast.MakeEquals(a, b))
	got := Simplify(f)
	// Xor(a,b) simplifies further into an And of Or-clauses.
	assert.Equal(t, ast.FAnd, got.Kind)
}

func TestSimplify_XorBecomesConjunctionOfClauses(t *testing.T) {
	f := ast.MakeXor(atom("a"), atom("b"))
	got := Simplify(f)
	require.Equal(t, ast.FAnd, got.Kind)
	// n disjuncts plus the final all-disjunction clause = n+1 clauses
	assert.Len(t, got.Children, 3)
	for _, c := range got.Children {
		assert.Equal(t, ast.FOr, c.Kind)
	}
}

func TestToNNF_NoXorImplyEqualsSurvive(t *testing.T) {
	f := ast.MakeNot(ast.MakeAnd(atom("a"), atom("b")))
	simplified := Simplify(f)
	nnf := ToNNF(simplified)
	require.Equal(t, ast.FOr, nnf.Kind)
	for _, c := range nnf.Children {
		assert.Equal(t, ast.FNot, c.Kind)
	}
}

func TestToNNF_QuantifierDual(t *testing.T) {
	f := ast.MakeNot(ast.MakeExists([]ast.Symbol{{Name: "x"}}, atom("p")))
	nnf := ToNNF(Simplify(f))
	require.Equal(t, ast.FForAll, nnf.Kind)
	assert.Equal(t, ast.FNot, nnf.Body().Kind)
}

func TestDistribute_OrOverAnd(t *testing.T) {
	// (a & b) | c  ->  (a | c) & (b | c)
	f := ast.MakeOr(ast.MakeAnd(atom("a"), atom("b")), atom("c"))
	got := Distribute(f)
	require.Equal(t, ast.FAnd, got.Kind)
	require.Len(t, got.Children, 2)
	for _, clause := range got.Children {
		assert.Equal(t, ast.FOr, clause.Kind)
		assert.Len(t, clause.Children, 2)
	}
}

func TestDropQuantifiers_ReplacesWithEmpty(t *testing.T) {
	f := ast.MakeAnd(atom("a"), ast.MakeExists([]ast.Symbol{{Name: "x"}}, atom("p")))
	got := DropQuantifiers(f)
	require.Equal(t, ast.FAnd, got.Kind)
	assert.True(t, got.Children[1].IsEmpty())
}

// TestCNFSoundness checks F <=> cnf(F) for every propositional assignment of
// atoms, per spec's "CNF soundness" testable property, over a handful of
// representative formulas built from two atoms.
func TestCNFSoundness(t *testing.T) {
	a, b := atom("a"), atom("b")
	formulas := []ast.Formula{
		ast.MakeAnd(a, b),
		ast.MakeOr(a, b),
		ast.MakeNot(a),
		ast.MakeOr(ast.MakeAnd(a, b), ast.MakeNot(a)),
		ast.MakeImply([]ast.Formula{a}, []ast.Formula{b}),
		ast.MakeXor(a, b),
		ast.MakeEquals(ast.Symbol{Name: "a"}, ast.Symbol{Name: "b"}),
	}

	for _, f := range formulas {
		cnf := Distribute(ToNNF(Simplify(f)))
		for _, av := range []bool{true, false} {
			for _, bv := range []bool{true, false} {
				assign := map[string]bool{"a": av, "b": bv}
				want := evalFormula(t, f, assign)
				got := evalFormula(t, cnf, assign)
				assert.Equal(t, want, got, "f=%+v a=%v b=%v", f, av, bv)
			}
		}
	}
}

// evalFormula is a tiny propositional evaluator over the pre-CNF formula
// shapes (Atom/Not/And/Or/Xor/Imply/Equals), used only to check CNF
// soundness against the original meaning.
func evalFormula(t *testing.T, f ast.Formula, assign map[string]bool) bool {
	t.Helper()
	switch f.Kind {
	case ast.FEmpty:
		return true
	case ast.FAtom:
		v, ok := assign[f.Atom.Name]
		if !ok {
			t.Fatalf("unassigned atom %q", f.Atom.Name)
		}
		return v
	case ast.FNot:
		return !evalFormula(t, f.Not(), assign)
	case ast.FAnd:
		for _, c := range f.Children {
			if !evalFormula(t, c, assign) {
				return false
			}
		}
		return true
	case ast.FOr:
		for _, c := range f.Children {
			if evalFormula(t, c, assign) {
				return true
			}
		}
		return false
	case ast.FXor:
		count := 0
		for _, c := range f.Children {
			if evalFormula(t, c, assign) {
				count++
			}
		}
		return count == 1
	case ast.FImply:
		ante := true
		for _, c := range f.Antecedents {
			if !evalFormula(t, c, assign) {
				ante = false
			}
		}
		conse := true
		for _, c := range f.Consequents {
			if !evalFormula(t, c, assign) {
				conse = false
			}
		}
		return !ante || conse
	case ast.FEquals:
		return assign[f.A.Name] == assign[f.B.Name]
	default:
		t.Fatalf("unhandled formula kind %v", f.Kind)
		return false
	}
}
