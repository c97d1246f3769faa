package formula

import (
	"strings"

	"github.com/dekarrin/hddlint/internal/ast"
)

// atomTable assigns a stable 1-based positive integer id to each distinct
// atom seen, keyed on predicate name plus ordered argument names (dummy
// equality atoms included).
type atomTable struct {
	ids  map[string]int
	next int
}

func newAtomTable() *atomTable {
	return &atomTable{ids: map[string]int{}}
}

func (t *atomTable) idFor(p ast.Predicate) int {
	key := atomKey(p)
	if id, ok := t.ids[key]; ok {
		return id
	}
	t.next++
	t.ids[key] = t.next
	return t.next
}

func atomKey(p ast.Predicate) string {
	var sb strings.Builder
	sb.WriteString(p.Name)
	sb.WriteByte('(')
	for i, v := range p.Variables {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(v.Name)
	}
	sb.WriteByte(')')
	return sb.String()
}

// ToClauses extracts the CNF clause list from a formula already run through
// Simplify -> ToNNF -> Distribute -> DropQuantifiers. Each clause is a list
// of signed 1-based variable ids (negative = negated). A clause made
// trivially true by a dropped quantifier is omitted entirely, never
// contributing a constraint.
func ToClauses(f ast.Formula) (varCount int, clauses [][]int) {
	t := newAtomTable()

	var top []ast.Formula
	switch f.Kind {
	case ast.FEmpty:
		top = nil
	case ast.FAnd:
		top = f.Children
	default:
		top = []ast.Formula{f}
	}

	for _, c := range top {
		if c.Kind == ast.FEmpty {
			continue
		}
		ints, trivial := extractClause(t, c)
		if trivial {
			continue
		}
		clauses = append(clauses, ints)
	}
	return t.next, clauses
}

func extractClause(t *atomTable, c ast.Formula) (ints []int, trivial bool) {
	for _, lit := range literalsOf(c) {
		switch lit.Kind {
		case ast.FEmpty:
			return nil, true
		case ast.FNot:
			ints = append(ints, -t.idFor(lit.Not().Atom))
		case ast.FAtom:
			ints = append(ints, t.idFor(lit.Atom))
		}
	}
	return ints, false
}
