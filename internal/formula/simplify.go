// Package formula implements the CNF normalization and DPLL-style SAT
// pipeline used to flag propositionally inconsistent preconditions:
// simplify -> NNF -> distribute disjunction -> drop quantifiers -> clause
// extraction -> DPLL.
package formula

import "github.com/dekarrin/hddlint/internal/ast"

// Simplify rewrites Xor, Imply, and Equals away in terms of And/Or/Not,
// collapses double negation, folds a negated Equals into Xor over dummy
// atoms, and flattens one level of nested And/Or. The result contains only
// Empty, Atom, Not, And, Or, Exists, ForAll.
func Simplify(f ast.Formula) ast.Formula {
	switch f.Kind {
	case ast.FNot:
		inner := f.Not()
		if inner.Kind == ast.FNot {
			return Simplify(inner.Not())
		}
		if inner.Kind == ast.FEquals {
			a := ast.MakeAtom(ast.DummyPredicate(inner.A.Name, inner.A.NamePos))
			b := ast.MakeAtom(ast.DummyPredicate(inner.B.Name, inner.B.NamePos))
			return Simplify(ast.MakeXor(a, b))
		}
		return ast.MakeNot(Simplify(inner))

	case ast.FAnd:
		return ast.MakeAnd(simplifyFlatten(f.Children, ast.FAnd)...)

	case ast.FOr:
		return ast.MakeOr(simplifyFlatten(f.Children, ast.FOr)...)

	case ast.FXor:
		clauses := simplifyXor(f.Children)
		return Simplify(ast.MakeAnd(clauses...))

	case ast.FImply:
		ante := ast.MakeAnd(f.Antecedents...)
		conse := ast.MakeAnd(f.Consequents...)
		return Simplify(ast.MakeOr(ast.MakeNot(ante), conse))

	case ast.FEquals:
		a := ast.MakeAtom(ast.DummyPredicate(f.A.Name, f.A.NamePos))
		b := ast.MakeAtom(ast.DummyPredicate(f.B.Name, f.B.NamePos))
		return Simplify(ast.MakeOr(
			ast.MakeAnd(a, b),
			ast.MakeAnd(ast.MakeNot(a), ast.MakeNot(b)),
		))

	case ast.FExists:
		return ast.MakeExists(f.Params, Simplify(f.Body()))
	case ast.FForAll:
		return ast.MakeForAll(f.Params, Simplify(f.Body()))

	default: // FEmpty, FAtom
		return f
	}
}

// simplifyFlatten simplifies each child and splices in the children of any
// direct child sharing kind, flattening exactly one level.
func simplifyFlatten(children []ast.Formula, kind ast.FormulaKind) []ast.Formula {
	var out []ast.Formula
	for _, c := range children {
		sc := Simplify(c)
		if sc.Kind == kind {
			out = append(out, sc.Children...)
		} else {
			out = append(out, sc)
		}
	}
	return out
}

// simplifyXor rewrites Xor(f1...fn) into the conjunction:
// [Or(not(fi), And(not(fj) for j != i))]_i ++ [Or(f1...fn)]: each operand
// excludes every other operand, and at least one operand holds.
func simplifyXor(fs []ast.Formula) []ast.Formula {
	simplified := make([]ast.Formula, len(fs))
	for i, f := range fs {
		simplified[i] = Simplify(f)
	}

	var clauses []ast.Formula
	for i := range simplified {
		var others []ast.Formula
		for j := range simplified {
			if i == j {
				continue
			}
			others = append(others, ast.MakeNot(simplified[j]))
		}
		if len(others) == 0 {
			continue
		}
		clauses = append(clauses, ast.MakeOr(ast.MakeNot(simplified[i]), ast.MakeAnd(others...)))
	}
	clauses = append(clauses, ast.MakeOr(simplified...))
	return clauses
}
