package ast

// FormulaKind is the closed set of Formula variants.
type FormulaKind int

const (
	FEmpty FormulaKind = iota
	FAtom
	FNot
	FAnd
	FOr
	FXor
	FImply
	FExists
	FForAll
	FEquals
)

func (k FormulaKind) String() string {
	switch k {
	case FEmpty:
		return "empty"
	case FAtom:
		return "atom"
	case FNot:
		return "not"
	case FAnd:
		return "and"
	case FOr:
		return "or"
	case FXor:
		return "xor"
	case FImply:
		return "imply"
	case FExists:
		return "exists"
	case FForAll:
		return "forall"
	case FEquals:
		return "equals"
	default:
		return "unknown"
	}
}

// Formula is the closed sum type of boolean-formula shapes a precondition,
// effect, or goal can take. Exactly the fields implied by Kind are
// meaningful; a Formula built any way other than the constructors below is
// not a valid member of the type.
//
// Invariants (enforced by construction, not re-checked at use sites):
//   - Not always has exactly one child (Children[0]).
//   - Imply is a pair of conjunctions (Antecedents, Consequents).
//   - After CNF normalization the tree contains only And, Or, Not, Atom,
//     Empty.
type Formula struct {
	Kind FormulaKind

	Atom Predicate

	// Children holds Not's single child, and And/Or/Xor's operand lists.
	Children []Formula

	// Antecedents/Consequents are populated only for Imply, each itself a
	// conjunction (use MakeAnd to wrap a single formula as a 1-ary one).
	Antecedents  []Formula
	Consequents []Formula

	// Params is populated for Exists/ForAll.
	Params []Symbol
	// Body is the quantified subformula for Exists/ForAll; stored as the
	// sole element of Children for uniformity with Not.

	// A, B are populated for Equals.
	A, B Symbol
}

// Empty constructs the FEmpty formula (vacuously true; also the value
// produced by quantifier-drop).
func Empty() Formula { return Formula{Kind: FEmpty} }

// MakeAtom constructs an FAtom wrapping p.
func MakeAtom(p Predicate) Formula { return Formula{Kind: FAtom, Atom: p} }

// MakeNot constructs an FNot over f.
func MakeNot(f Formula) Formula { return Formula{Kind: FNot, Children: []Formula{f}} }

// MakeAnd constructs an FAnd over fs. A single-element slice is still
// wrapped, matching spec's use of And to represent "a conjunction of one".
func MakeAnd(fs ...Formula) Formula { return Formula{Kind: FAnd, Children: fs} }

// MakeOr constructs an FOr over fs.
func MakeOr(fs ...Formula) Formula { return Formula{Kind: FOr, Children: fs} }

// MakeXor constructs an FXor over fs (spelled "oneof" in source).
func MakeXor(fs ...Formula) Formula { return Formula{Kind: FXor, Children: fs} }

// MakeImply constructs an FImply from the conjunction of ante to the
// conjunction of conse.
func MakeImply(ante, conse []Formula) Formula {
	return Formula{Kind: FImply, Antecedents: ante, Consequents: conse}
}

// MakeExists constructs an FExists binding params over body.
func MakeExists(params []Symbol, body Formula) Formula {
	return Formula{Kind: FExists, Params: params, Children: []Formula{body}}
}

// MakeForAll constructs an FForAll binding params over body.
func MakeForAll(params []Symbol, body Formula) Formula {
	return Formula{Kind: FForAll, Params: params, Children: []Formula{body}}
}

// MakeEquals constructs an FEquals between two term names.
func MakeEquals(a, b Symbol) Formula { return Formula{Kind: FEquals, A: a, B: b} }

// Not returns the single child of an FNot.
func (f Formula) Not() Formula { return f.Children[0] }

// Body returns the quantified subformula of an FExists/FForAll.
func (f Formula) Body() Formula { return f.Children[0] }

// IsEmpty reports whether f is the FEmpty variant.
func (f Formula) IsEmpty() bool { return f.Kind == FEmpty }

// Walk calls visit on f and recursively on every child formula it contains,
// pre-order. Used by the semantic analyzer to enumerate every atom.
func (f Formula) Walk(visit func(Formula)) {
	visit(f)
	switch f.Kind {
	case FNot, FExists, FForAll:
		f.Children[0].Walk(visit)
	case FAnd, FOr, FXor:
		for _, c := range f.Children {
			c.Walk(visit)
		}
	case FImply:
		for _, c := range f.Antecedents {
			c.Walk(visit)
		}
		for _, c := range f.Consequents {
			c.Walk(visit)
		}
	}
}
