package semantic

import (
	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/internal/formula"
	"github.com/dekarrin/hddlint/internal/tdg"
	"github.com/dekarrin/hddlint/internal/typecheck"
)

// AnalyzeDomain runs the 8 sequential checks of spec §4.5 against d,
// stopping at the first error. src is the original domain text, used to
// render the offending line in diagnostics.
func AnalyzeDomain(d *ast.Domain, src string) (*SymbolTable, error) {
	st := newSymbolTable()

	// 1. requirement duplicates
	seenReq := map[string]diag.Position{}
	for _, r := range d.Requirements {
		if first, ok := seenReq[r.Name]; ok {
			return nil, wrapSem(diag.DuplicateRequirementDeclaration{Name: r.Name, First: first, Second: r.Pos}, src)
		}
		seenReq[r.Name] = r.Pos
	}

	// 2. type hierarchy acyclic
	graph := typecheck.Build(d.Types)
	if err := graph.VerifyAcyclic(); err != nil {
		return nil, wrapSem(err.(diag.SemanticErrorType), src)
	}
	st.Types = graph

	// 3. predicate uniqueness & typed params
	seenPred := map[string]diag.Position{}
	for _, pr := range d.Predicates {
		if first, ok := seenPred[pr.Name]; ok {
			return nil, wrapSem(diag.DuplicatePredicateDeclaration{Name: pr.Name, First: first, Second: pr.NamePos}, src)
		}
		seenPred[pr.Name] = pr.NamePos
		if err := graph.CheckDeclarations(pr.Variables); err != nil {
			return nil, wrapSem(err.(diag.SemanticErrorType), src)
		}
		st.Predicates[pr.Name] = pr
	}

	// 4. compound task uniqueness & typed params
	seenTask := map[string]diag.Position{}
	for _, t := range d.CompoundTasks {
		if first, ok := seenTask[t.Name]; ok {
			return nil, wrapSem(diag.DuplicateCompoundTaskDeclaration{Name: t.Name, First: first, Second: t.NamePos}, src)
		}
		seenTask[t.Name] = t.NamePos
		if err := graph.CheckDeclarations(t.Parameters); err != nil {
			return nil, wrapSem(err.(diag.SemanticErrorType), src)
		}
		st.Tasks[t.Name] = t
	}

	// 5. constants: inserted as-is, no duplicate check (see DESIGN.md open
	// question decision).
	for _, c := range d.Constants {
		st.Constants[c.Name] = c
	}

	// 6. actions
	seenAction := map[string]diag.Position{}
	for _, a := range d.Actions {
		if first, ok := seenAction[a.Name]; ok {
			return nil, wrapSem(diag.DuplicateActionDeclaration{Name: a.Name, First: first, Second: a.NamePos}, src)
		}
		seenAction[a.Name] = a.NamePos

		scope := buildScope(a.Parameters, st.Constants)
		if a.HasPrecondition {
			if err := checkFormula(a.Precondition, scope, st.Predicates, graph); err != nil {
				return nil, wrapSem(err, src)
			}
			if !formula.Satisfiable(a.Precondition) {
				st.Warnings = append(st.Warnings, diag.UnsatisfiableActionPrecondition{Name: a.Name, Position: a.NamePos})
			}
		}
		if a.HasEffect {
			if err := checkFormula(a.Effect, scope, st.Predicates, graph); err != nil {
				return nil, wrapSem(err, src)
			}
		}
		st.Actions[a.Name] = a
	}

	// 7. methods
	seenMethod := map[string]diag.Position{}
	for _, m := range d.Methods {
		if first, ok := seenMethod[m.Name.Name]; ok {
			return nil, wrapSem(diag.DuplicateMethodDeclaration{Name: m.Name.Name, First: first, Second: m.Name.NamePos}, src)
		}
		seenMethod[m.Name.Name] = m.Name.NamePos

		methodScope := buildScope(m.Params, st.Constants)
		if m.HasPrecondition {
			if err := checkFormula(m.Precondition, methodScope, st.Predicates, graph); err != nil {
				return nil, wrapSem(err, src)
			}
			if !formula.Satisfiable(m.Precondition) {
				st.Warnings = append(st.Warnings, diag.UnsatisfiableMethodPrecondition{Name: m.Name.Name, Position: m.Name.NamePos})
			}
		}

		decomposed, ok := st.Tasks[m.Task.Name]
		if !ok {
			return nil, wrapSem(diag.UndefinedTask{Name: m.Task.Name, Position: m.Task.NamePos}, src)
		}
		if len(decomposed.Parameters) != len(m.TaskTerms) {
			return nil, wrapSem(diag.InconsistentTaskArity{
				Name: m.Task.Name, Expected: len(decomposed.Parameters), Found: len(m.TaskTerms), Position: m.Task.NamePos,
			}, src)
		}
		for i, term := range m.TaskTerms {
			sym, ok := methodScope[term.Name]
			if !ok {
				return nil, wrapSem(diag.UndefinedParameter{Name: term.Name, Position: term.NamePos}, src)
			}
			slot := decomposed.Parameters[i]
			if !graph.IsSubtype(sym.Type, sym.Typed, slot.Type, slot.Typed) {
				return nil, wrapSem(diag.InconsistentTaskArgType{
					Name: m.Task.Name, Variable: term.Name, Expected: typeNameOf(slot), Found: typeNameOf(sym), Position: term.NamePos,
				}, src)
			}
		}

		for _, sub := range m.TN.Subtasks {
			var params []ast.Symbol
			if ct, ok := st.Tasks[sub.Task.Name]; ok {
				params = ct.Parameters
			} else if act, ok := st.Actions[sub.Task.Name]; ok {
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
				sym, ok := methodScope[term.Name]
				if !ok {
					return nil, wrapSem(diag.UndefinedParameter{Name: term.Name, Position: term.NamePos}, src)
				}
				slot := params[i]
				if !graph.IsSubtype(sym.Type, sym.Typed, slot.Type, slot.Typed) {
					return nil, wrapSem(diag.InconsistentTaskArgType{
						Name: sub.Task.Name, Variable: term.Name, Expected: typeNameOf(slot), Found: typeNameOf(sym), Position: term.NamePos,
					}, src)
				}
			}
		}

		if err := checkOrderingAcyclic(m.TN); err != nil {
			return nil, wrapSem(err, src)
		}
	}

	// 8. TDG pass: warn on compound tasks with no primitive refinement and
	// no nullability.
	graphTDG := tdg.Build(d)
	for name, t := range st.Tasks {
		res := graphTDG.Reachable(name)
		if len(res.Primitives) == 0 && !res.Nullable {
			st.Warnings = append(st.Warnings, diag.NoPrimitiveRefinement{Name: name, Position: t.NamePos})
		}
	}

	return st, nil
}

// checkOrderingAcyclic verifies a method's (or initial task network's)
// explicit partial ordering has no cycle among its subtask ids. A Total
// ordering (induced by list order) can never cycle.
func checkOrderingAcyclic(tn ast.HTN) diag.SemanticErrorType {
	if tn.Orderings.Kind != ast.OrderingPartial {
		return nil
	}

	adj := map[string][]string{}
	nodes := map[string]bool{}
	for _, st := range tn.Subtasks {
		if st.ID != nil {
			nodes[st.ID.Name] = true
		}
	}
	for _, pr := range tn.Orderings.Pairs {
		adj[pr.Before.Name] = append(adj[pr.Before.Name], pr.After.Name)
		nodes[pr.Before.Name] = true
		nodes[pr.After.Name] = true
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var visit func(n string) bool
	visit = func(n string) bool {
		switch color[n] {
		case black:
			return true
		case gray:
			return false
		}
		color[n] = gray
		for _, nb := range adj[n] {
			if !visit(nb) {
				return false
			}
		}
		color[n] = black
		return true
	}

	for n := range nodes {
		if color[n] == white {
			if !visit(n) {
				pos := diag.Position{}
				if tn.OrderingPos != nil {
					pos = *tn.OrderingPos
				}
				return diag.CyclicOrderingDeclaration{Position: pos}
			}
		}
	}
	return nil
}
