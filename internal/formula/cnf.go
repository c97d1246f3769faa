package formula

import "github.com/dekarrin/hddlint/internal/ast"

// ToNNF pushes Not down to atoms via De Morgan's laws and the quantifier
// dual, assuming f has already been Simplify'd (no Xor/Imply/Equals
// remain).
func ToNNF(f ast.Formula) ast.Formula {
	switch f.Kind {
	case ast.FNot:
		inner := f.Not()
		switch inner.Kind {
		case ast.FNot:
			return ToNNF(inner.Not())
		case ast.FAnd:
			return ast.MakeOr(negateChildren(inner.Children)...)
		case ast.FOr:
			return ast.MakeAnd(negateChildren(inner.Children)...)
		case ast.FExists:
			return ast.MakeForAll(inner.Params, ToNNF(ast.MakeNot(inner.Body())))
		case ast.FForAll:
			return ast.MakeExists(inner.Params, ToNNF(ast.MakeNot(inner.Body())))
		default: // Atom, Empty
			return f
		}
	case ast.FAnd:
		return ast.MakeAnd(mapNNF(f.Children)...)
	case ast.FOr:
		return ast.MakeOr(mapNNF(f.Children)...)
	case ast.FExists:
		return ast.MakeExists(f.Params, ToNNF(f.Body()))
	case ast.FForAll:
		return ast.MakeForAll(f.Params, ToNNF(f.Body()))
	default: // Atom, Empty
		return f
	}
}

func mapNNF(fs []ast.Formula) []ast.Formula {
	out := make([]ast.Formula, len(fs))
	for i, f := range fs {
		out[i] = ToNNF(f)
	}
	return out
}

func negateChildren(fs []ast.Formula) []ast.Formula {
	out := make([]ast.Formula, len(fs))
	for i, f := range fs {
		out[i] = ToNNF(ast.MakeNot(f))
	}
	return out
}

// Distribute converts an NNF formula to CNF by distributing Or over And.
// Exists/ForAll bodies are distributed in place; the quantifier itself is
// untouched here (dropped later by DropQuantifiers, per the pipeline
// order).
func Distribute(f ast.Formula) ast.Formula {
	switch f.Kind {
	case ast.FAnd:
		var conjuncts []ast.Formula
		for _, c := range f.Children {
			dc := Distribute(c)
			if dc.Kind == ast.FAnd {
				conjuncts = append(conjuncts, dc.Children...)
			} else {
				conjuncts = append(conjuncts, dc)
			}
		}
		return ast.MakeAnd(conjuncts...)

	case ast.FOr:
		var acc [][]ast.Formula
		for i, c := range f.Children {
			dc := Distribute(c)
			clauses := clausesOf(dc)
			if i == 0 {
				acc = clauses
			} else {
				acc = crossProduct(acc, clauses)
			}
		}
		var orClauses []ast.Formula
		for _, lits := range acc {
			orClauses = append(orClauses, ast.MakeOr(lits...))
		}
		if len(orClauses) == 1 {
			return orClauses[0]
		}
		return ast.MakeAnd(orClauses...)

	case ast.FExists:
		return ast.MakeExists(f.Params, Distribute(f.Body()))
	case ast.FForAll:
		return ast.MakeForAll(f.Params, Distribute(f.Body()))

	default: // Atom, Not, Empty
		return f
	}
}

// clausesOf decomposes a (possibly And-of-Or) formula into a list of
// clauses, each a list of literal formulas.
func clausesOf(f ast.Formula) [][]ast.Formula {
	if f.Kind == ast.FAnd {
		var clauses [][]ast.Formula
		for _, c := range f.Children {
			clauses = append(clauses, literalsOf(c))
		}
		return clauses
	}
	return [][]ast.Formula{literalsOf(f)}
}

// literalsOf flattens an Or formula into its literal operands; a bare
// literal (Atom, Not(Atom), or Empty) is returned as a singleton.
func literalsOf(f ast.Formula) []ast.Formula {
	if f.Kind == ast.FOr {
		var lits []ast.Formula
		for _, c := range f.Children {
			lits = append(lits, literalsOf(c)...)
		}
		return lits
	}
	return []ast.Formula{f}
}

func crossProduct(a, b [][]ast.Formula) [][]ast.Formula {
	out := make([][]ast.Formula, 0, len(a)*len(b))
	for _, ca := range a {
		for _, cb := range b {
			combined := make([]ast.Formula, 0, len(ca)+len(cb))
			combined = append(combined, ca...)
			combined = append(combined, cb...)
			out = append(out, combined)
		}
	}
	return out
}

// DropQuantifiers replaces every Exists/ForAll subtree with Empty: the
// solver checks propositional inconsistency only, so a quantified
// statement neither forces truth nor falsity.
func DropQuantifiers(f ast.Formula) ast.Formula {
	switch f.Kind {
	case ast.FExists, ast.FForAll:
		return ast.Empty()
	case ast.FAnd:
		children := make([]ast.Formula, len(f.Children))
		for i, c := range f.Children {
			children[i] = DropQuantifiers(c)
		}
		return ast.MakeAnd(children...)
	case ast.FOr:
		children := make([]ast.Formula, len(f.Children))
		for i, c := range f.Children {
			children[i] = DropQuantifiers(c)
		}
		return ast.MakeOr(children...)
	case ast.FNot:
		return ast.MakeNot(DropQuantifiers(f.Not()))
	default: // Atom, Empty
		return f
	}
}
