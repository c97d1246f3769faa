package formula

import "github.com/dekarrin/hddlint/internal/ast"

// Satisfiable runs the full simplify -> NNF -> distribute -> drop-quantifier
// -> clause-extraction -> DPLL pipeline and reports whether f is
// propositionally satisfiable after quantifiers are dropped. A formula is
// flagged unsatisfiable for warnings purposes iff this returns false.
func Satisfiable(f ast.Formula) bool {
	f = Simplify(f)
	f = ToNNF(f)
	f = Distribute(f)
	f = DropQuantifiers(f)
	_, clauses := ToClauses(f)
	return dpll(clauses)
}

// dpll is a sound and complete DPLL procedure with unit propagation and
// pure-literal elimination.
func dpll(clauses [][]int) bool {
	for _, c := range clauses {
		if len(c) == 0 {
			return false
		}
	}

	clauses, ok := unitPropagate(clauses)
	if !ok {
		return false
	}
	if len(clauses) == 0 {
		return true
	}

	clauses = pureLiteralEliminate(clauses)
	if len(clauses) == 0 {
		return true
	}
	for _, c := range clauses {
		if len(c) == 0 {
			return false
		}
	}

	lit := clauses[0][0]
	return dpll(assignLiteral(clauses, lit)) || dpll(assignLiteral(clauses, -lit))
}

// unitPropagate repeatedly resolves unit clauses until none remain or a
// conflict (an empty clause) is produced, in which case ok is false.
func unitPropagate(clauses [][]int) (out [][]int, ok bool) {
	for {
		unit, found := 0, false
		for _, c := range clauses {
			if len(c) == 1 {
				unit, found = c[0], true
				break
			}
		}
		if !found {
			return clauses, true
		}
		clauses = assignLiteral(clauses, unit)
		for _, c := range clauses {
			if len(c) == 0 {
				return nil, false
			}
		}
	}
}

// pureLiteralEliminate removes every clause containing a literal whose
// variable appears with only one polarity across all clauses.
func pureLiteralEliminate(clauses [][]int) [][]int {
	polarity := map[int]int{}
	for _, c := range clauses {
		for _, lit := range c {
			v := lit
			if v < 0 {
				v = -v
				polarity[v] |= 2
			} else {
				polarity[v] |= 1
			}
		}
	}

	pure := map[int]bool{}
	for v, p := range polarity {
		switch p {
		case 1:
			pure[v] = true
		case 2:
			pure[-v] = true
		}
	}
	if len(pure) == 0 {
		return clauses
	}

	var next [][]int
	for _, c := range clauses {
		satisfied := false
		for _, lit := range c {
			if pure[lit] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			next = append(next, c)
		}
	}
	return next
}

// assignLiteral returns clauses with lit assumed true: clauses containing
// lit are dropped (satisfied), and -lit is removed from the rest.
func assignLiteral(clauses [][]int, lit int) [][]int {
	var next [][]int
	for _, c := range clauses {
		if containsLiteral(c, lit) {
			continue
		}
		next = append(next, removeLiteral(c, -lit))
	}
	return next
}

func containsLiteral(c []int, lit int) bool {
	for _, l := range c {
		if l == lit {
			return true
		}
	}
	return false
}

func removeLiteral(c []int, lit int) []int {
	var out []int
	for _, l := range c {
		if l != lit {
			out = append(out, l)
		}
	}
	return out
}
