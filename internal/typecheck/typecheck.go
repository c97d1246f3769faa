// Package typecheck owns the directed type-hierarchy graph built from a
// domain's `:types` section and answers is-subtype / is-type-declared /
// acyclicity queries on top of it.
package typecheck

import (
	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/diag"
)

// Graph is the subtype -> supertype type hierarchy of a single domain. The
// implicit root type "object" is always considered declared, matching
// HDDL's built-in top type.
type Graph struct {
	parent   map[string]string
	declared map[string]bool
}

// Build constructs a Graph from a domain's `:types` declarations. Each
// Symbol's Type (when Typed) names its immediate supertype; an untyped
// entry gets no supertype edge, so it is a root of the hierarchy and is not
// linked to "object".
func Build(types []ast.Symbol) *Graph {
	g := &Graph{parent: map[string]string{}, declared: map[string]bool{"object": true}}
	for _, t := range types {
		g.declared[t.Name] = true
		if t.Typed {
			g.parent[t.Name] = t.Type
			g.declared[t.Type] = true
		}
	}
	return g
}

// IsDeclared reports whether name is a node of the type graph (either
// declared as a subtype or referenced as someone else's supertype).
func (g *Graph) IsDeclared(name string) bool {
	return g.declared[name]
}

// VerifyAcyclic fails with CyclicTypeDeclaration iff the subtype ->
// supertype graph cannot be topologically sorted.
func (g *Graph) VerifyAcyclic() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.declared))

	var visit func(n string) bool
	visit = func(n string) bool {
		switch color[n] {
		case black:
			return true
		case gray:
			return false
		}
		color[n] = gray
		if parent, ok := g.parent[n]; ok {
			if !visit(parent) {
				return false
			}
		}
		color[n] = black
		return true
	}

	for n := range g.declared {
		if color[n] == white {
			if !visit(n) {
				return diag.CyclicTypeDeclaration{}
			}
		}
	}
	return nil
}

// IsSubtype implements spec's truth table over optional types:
//   - (none, none)   -> true
//   - (some, none) or (none, some) -> false
//   - (some a, some b) -> true iff a == b or a path a -> ... -> b exists
func (g *Graph) IsSubtype(found string, foundTyped bool, expected string, expectedTyped bool) bool {
	if !foundTyped && !expectedTyped {
		return true
	}
	if foundTyped != expectedTyped {
		return false
	}
	if found == expected {
		return true
	}
	cur := found
	seen := map[string]bool{}
	for {
		if seen[cur] {
			return false // defensive: a cycle should already have been rejected
		}
		seen[cur] = true
		next, ok := g.parent[cur]
		if !ok {
			return false
		}
		if next == expected {
			return true
		}
		cur = next
	}
}

// CheckDeclarations returns an UndefinedType error for the first param whose
// declared type is not a node in the graph, or nil if all are declared.
func (g *Graph) CheckDeclarations(params []ast.Symbol) error {
	for _, p := range params {
		if p.Typed && !g.IsDeclared(p.Type) {
			return diag.UndefinedType{Name: p.Type, Position: p.TypePos}
		}
	}
	return nil
}
