// Package metadata computes the summary report of a verified domain: its
// recursion classification, nullable compound tasks, and declaration counts
// (spec §4.8).
package metadata

import (
	"sort"

	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/semantic"
	"github.com/dekarrin/hddlint/internal/tdg"
)

// MetaData is the fixed summary produced for a single domain.
type MetaData struct {
	DomainName string `json:"domain_name"`

	RecursionType string   `json:"recursion_type"`
	RecursionPath []string `json:"recursion_path,omitempty"`
	Nullables     []string `json:"nullables"`

	NumActions int `json:"n_actions"`
	NumTasks   int `json:"n_tasks"`
	NumMethods int `json:"n_methods"`
}

// Compute derives a MetaData report from a domain AST and the SymbolTable
// produced by analyzing it.
func Compute(d *ast.Domain, st *semantic.SymbolTable) MetaData {
	g := tdg.Build(d)
	nullableSet := g.ComputeNullables()
	recursion := g.GetRecursionType(nullableSet)

	var nullables []string
	for name, isNullable := range nullableSet {
		if isNullable {
			nullables = append(nullables, name)
		}
	}
	sort.Strings(nullables)

	return MetaData{
		DomainName:    d.Name,
		RecursionType: recursion.Kind.String(),
		RecursionPath: recursion.Cycle,
		Nullables:     nullables,
		NumActions:    len(d.Actions),
		NumTasks:      len(d.CompoundTasks),
		NumMethods:    len(d.Methods),
	}
}
