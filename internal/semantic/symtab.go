// Package semantic cross-validates a parsed domain (and, optionally,
// problem) AST: type hierarchy acyclicity, predicate/task arity and
// argument-type consistency, subtask ordering acyclicity, and formula
// satisfiability. It produces a SymbolTable plus an accumulated warning
// list on success, or the first semantic error encountered.
package semantic

import (
	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/internal/typecheck"
)

// SymbolTable is the output of domain analysis: the declared constants,
// predicates, compound tasks, and actions of a domain, its type hierarchy,
// and every warning raised while validating it.
type SymbolTable struct {
	Warnings []diag.WarningType

	Constants  map[string]ast.Symbol
	Predicates map[string]ast.Predicate
	Tasks      map[string]ast.Task
	Actions    map[string]ast.Action

	Types *typecheck.Graph
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		Constants:  map[string]ast.Symbol{},
		Predicates: map[string]ast.Predicate{},
		Tasks:      map[string]ast.Task{},
		Actions:    map[string]ast.Action{},
	}
}

func buildScope(params []ast.Symbol, constants map[string]ast.Symbol) map[string]ast.Symbol {
	scope := make(map[string]ast.Symbol, len(params)+len(constants))
	for name, c := range constants {
		scope[name] = c
	}
	for _, p := range params {
		scope[p.Name] = p
	}
	return scope
}

func typeNameOf(s ast.Symbol) string {
	if s.Typed {
		return s.Type
	}
	return "object"
}

func wrapSem(err diag.SemanticErrorType, src string) error {
	return diag.NewSemanticError(err, src)
}
