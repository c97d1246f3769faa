package semantic

import (
	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/internal/typecheck"
)

// checkFormula validates every atom in f against the predicate table and
// recursively extends scope as quantifiers are entered, returning the first
// inconsistency found.
func checkFormula(f ast.Formula, scope map[string]ast.Symbol, predicates map[string]ast.Predicate, graph *typecheck.Graph) diag.SemanticErrorType {
	switch f.Kind {
	case ast.FEmpty:
		return nil
	case ast.FAtom:
		return checkAtom(f.Atom, scope, predicates, graph)
	case ast.FNot:
		return checkFormula(f.Not(), scope, predicates, graph)
	case ast.FAnd, ast.FOr, ast.FXor:
		for _, c := range f.Children {
			if err := checkFormula(c, scope, predicates, graph); err != nil {
				return err
			}
		}
		return nil
	case ast.FImply:
		for _, c := range f.Antecedents {
			if err := checkFormula(c, scope, predicates, graph); err != nil {
				return err
			}
		}
		for _, c := range f.Consequents {
			if err := checkFormula(c, scope, predicates, graph); err != nil {
				return err
			}
		}
		return nil
	case ast.FExists, ast.FForAll:
		inner := make(map[string]ast.Symbol, len(scope)+len(f.Params))
		for k, v := range scope {
			inner[k] = v
		}
		for _, p := range f.Params {
			inner[p.Name] = p
		}
		return checkFormula(f.Body(), inner, predicates, graph)
	case ast.FEquals:
		if _, ok := scope[f.A.Name]; !ok {
			return diag.UndefinedParameter{Name: f.A.Name, Position: f.A.NamePos}
		}
		if _, ok := scope[f.B.Name]; !ok {
			return diag.UndefinedParameter{Name: f.B.Name, Position: f.B.NamePos}
		}
		return nil
	default:
		return nil
	}
}

func checkAtom(atom ast.Predicate, scope map[string]ast.Symbol, predicates map[string]ast.Predicate, graph *typecheck.Graph) diag.SemanticErrorType {
	decl, ok := predicates[atom.Name]
	if !ok {
		return diag.UndefinedPredicate{Name: atom.Name, Position: atom.NamePos}
	}
	if len(decl.Variables) != len(atom.Variables) {
		return diag.InconsistentPredicateArity{
			Name: atom.Name, Expected: len(decl.Variables), Found: len(atom.Variables), Position: atom.NamePos,
		}
	}
	for i, term := range atom.Variables {
		sym, ok := scope[term.Name]
		if !ok {
			return diag.UndefinedParameter{Name: term.Name, Position: term.NamePos}
		}
		slot := decl.Variables[i]
		if !graph.IsSubtype(sym.Type, sym.Typed, slot.Type, slot.Typed) {
			return diag.InconsistentPredicateArgType{
				Name: atom.Name, Variable: term.Name,
				Expected: typeNameOf(slot), Found: typeNameOf(sym), Position: term.NamePos,
			}
		}
	}
	return nil
}
