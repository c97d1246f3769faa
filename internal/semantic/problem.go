package semantic

import (
	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/diag"
)

// AnalyzeProblem cross-validates a parsed problem against the SymbolTable
// produced by analyzing its referenced domain: object declarations, initial
// state predicates, the initial task network, and the goal formula. It
// stops at the first semantic error and otherwise returns the accumulated
// warning list (appended to domain's, not mutating it).
func AnalyzeProblem(p *ast.Problem, domain *SymbolTable, src string) ([]diag.WarningType, error) {
	warnings := append([]diag.WarningType(nil), domain.Warnings...)

	// objects: duplicate and type-declared checks
	objects := map[string]ast.Symbol{}
	seenObj := map[string]diag.Position{}
	for _, o := range p.Objects {
		if first, ok := seenObj[o.Name]; ok {
			return nil, wrapSem(diag.DuplicateObjectDeclaration{Name: o.Name, First: first, Second: o.NamePos}, src)
		}
		seenObj[o.Name] = o.NamePos
		if o.Typed && !domain.Types.IsDeclared(o.Type) {
			return nil, wrapSem(diag.UndefinedType{Name: o.Type, Position: o.TypePos}, src)
		}
		objects[o.Name] = o
	}

	objScope := make(map[string]ast.Symbol, len(objects)+len(domain.Constants))
	for name, c := range domain.Constants {
		objScope[name] = c
	}
	for name, o := range objects {
		objScope[name] = o
	}

	// initial state: each predicate must be declared, arity/type-consistent,
	// and every term a known object or constant.
	for _, pred := range p.InitState {
		if err := checkAtom(pred, objScope, domain.Predicates, domain.Types); err != nil {
			return nil, wrapSem(asUndefinedObject(err), src)
		}
	}

	// initial task network, if present
	if p.InitTN != nil {
		tnScope := make(map[string]ast.Symbol, len(objScope)+len(p.InitTN.Params))
		for k, v := range objScope {
			tnScope[k] = v
		}
		for _, param := range p.InitTN.Params {
			tnScope[param.Name] = param
		}

		for _, sub := range p.InitTN.Subtasks {
			var params []ast.Symbol
			if ct, ok := domain.Tasks[sub.Task.Name]; ok {
				params = ct.Parameters
			} else if act, ok := domain.Actions[sub.Task.Name]; ok {
				params = act.Parameters
			} else {
				return nil, wrapSem(diag.UndefinedSubtask{Name: sub.Task.Name, Position: sub.Task.NamePos}, src)
			}
			if len(params) != len(sub.Terms) {
				return nil, wrapSem(diag.InconsistentTaskArity{
					Name: sub.Task.Name, Expected: len(params), Found: len(sub.Terms), Position: sub.Task.NamePos,
				}, src)
			}
			for i, term := range sub.Terms {
				sym, ok := tnScope[term.Name]
				if !ok {
					return nil, wrapSem(diag.UndefinedObject{Name: term.Name, Position: term.NamePos}, src)
				}
				slot := params[i]
				if !domain.Types.IsSubtype(sym.Type, sym.Typed, slot.Type, slot.Typed) {
					return nil, wrapSem(diag.InconsistentTaskArgType{
						Name: sub.Task.Name, Variable: term.Name, Expected: typeNameOf(slot), Found: typeNameOf(sym), Position: term.NamePos,
					}, src)
				}
			}
		}

		if err := checkOrderingAcyclic(*p.InitTN); err != nil {
			return nil, wrapSem(err, src)
		}
	}

	// goal formula
	if p.HasGoal {
		if err := checkFormula(p.Goal, objScope, domain.Predicates, domain.Types); err != nil {
			return nil, wrapSem(asUndefinedObject(err), src)
		}
	}

	return warnings, nil
}

// asUndefinedObject remaps the shared checkAtom/checkFormula's
// UndefinedParameter (the domain-scoped "not a declared parameter" error)
// to the problem-scoped UndefinedObject, per spec §4.6: a term unresolved in
// the initial state or goal is an undeclared object, not an undeclared
// parameter.
func asUndefinedObject(err diag.SemanticErrorType) diag.SemanticErrorType {
	if up, ok := err.(diag.UndefinedParameter); ok {
		return diag.UndefinedObject{Name: up.Name, Position: up.Position}
	}
	return err
}
