// Package ast holds the immutable value trees produced by the parser and
// traversed by the semantic layer. Nodes carry source positions for
// diagnostics and borrow identifier slices from the input buffer the way the
// lexer's tokens do; the buffer must outlive any AST built from it.
package ast

import "github.com/dekarrin/hddlint/internal/diag"

// Symbol is a named, optionally-typed reference: a typed parameter, an
// object declaration, a task identifier, or a bound quantified variable.
// Two symbols are equal iff their names are equal.
type Symbol struct {
	Name    string
	NamePos diag.Position

	Type    string
	TypePos diag.Position
	Typed   bool
}

// Equal compares two symbols by name only, per spec.
func (s Symbol) Equal(o Symbol) bool {
	return s.Name == o.Name
}

// Predicate is a named tuple of typed variables. Equality and hash are on
// Name only; domain-level uniqueness is enforced by the semantic analyzer,
// not here.
type Predicate struct {
	Name      string
	NamePos   diag.Position
	Variables []Symbol
}

// Equal compares two predicates by name only, per spec.
func (p Predicate) Equal(o Predicate) bool {
	return p.Name == o.Name
}

// DummyPredicate wraps a single equality-term name as a zero-arity atom, for
// use by the formula engine when rewriting Equals nodes.
func DummyPredicate(name string, pos diag.Position) Predicate {
	return Predicate{Name: name, NamePos: pos}
}

// Task is a named tuple of typed parameters: either a compound task or (via
// Action) a primitive one. Equality/hash is on Name.
type Task struct {
	Name      string
	NamePos   diag.Position
	Parameters []Symbol
}

// Action is a primitive task: a Task plus optional precondition and effect
// formulas. Equality/hash is on Name.
type Action struct {
	Name       string
	NamePos    diag.Position
	Parameters []Symbol

	Precondition    Formula
	HasPrecondition bool

	Effect    Formula
	HasEffect bool
}

// Subtask is a reference to a task (compound or primitive) occurring inside
// a task network. An absent ID denotes a positional reference that cannot
// participate in partial-order constraints naming it.
type Subtask struct {
	ID    *Symbol
	Task  Symbol
	Terms []Symbol
}

// OrderingKind distinguishes the two forms a TaskOrdering can take.
type OrderingKind int

const (
	// OrderingTotal means the ordering is induced by subtask list order; no
	// explicit (< a b) pairs are present.
	OrderingTotal OrderingKind = iota
	// OrderingPartial means the ordering is given by an explicit set of
	// (before, after) id pairs.
	OrderingPartial
)

// OrderPair names one (before, after) edge of a partial subtask ordering.
type OrderPair struct {
	Before Symbol
	After  Symbol
}

// TaskOrdering is either Total (subtasks execute in list order) or Partial
// (an explicit set of precedence pairs over subtask ids).
type TaskOrdering struct {
	Kind  OrderingKind
	Pairs []OrderPair
}

// ConstraintKind distinguishes the two forms a binding Constraint can take.
type ConstraintKind int

const (
	ConstraintEqual ConstraintKind = iota
	ConstraintNotEqual
)

// Constraint is an equality or inequality requirement between two subtask
// terms.
type Constraint struct {
	Kind ConstraintKind
	A, B Symbol
}

// HTN is a task network: the subtask list of a method or a problem's initial
// task network, together with its ordering and binding constraints.
type HTN struct {
	// Params is populated only for a problem's initial task network, whose
	// `:htn` section may declare its own free variables bound to objects;
	// a method's subtask network instead takes its parameters from Method.
	Params []Symbol

	Subtasks []Subtask

	OrderingPos *diag.Position
	Orderings   TaskOrdering

	Constraints []Constraint
}

// Method is a single decomposition rule for a compound task.
type Method struct {
	Name Symbol

	Task      Symbol
	TaskTerms []Symbol

	Params []Symbol

	Precondition    Formula
	HasPrecondition bool

	TN HTN
}

// Requirement is a single `:requirements` flag occurrence, carrying its
// source position so duplicate declarations can be reported precisely.
type Requirement struct {
	Name string
	Pos  diag.Position
}

// Domain is the parsed form of a `(define (domain NAME) ...)` file.
type Domain struct {
	Name    string
	NamePos diag.Position

	Requirements []Requirement

	// Types holds one Symbol per declared subtype; Symbol.Type (when Typed)
	// names its immediate supertype. Untyped entries (no supertype batch)
	// are roots of the hierarchy.
	Types []Symbol

	Constants []Symbol

	Predicates []Predicate

	CompoundTasks []Task
	Methods       []Method
	Actions       []Action
}

// Problem is the parsed form of a `(define (problem NAME) (:domain D) ...)`
// file.
type Problem struct {
	Name    string
	NamePos diag.Position

	DomainName    string
	DomainNamePos diag.Position

	Requirements []Requirement

	Objects []Symbol

	InitTN    *HTN
	InitState []Predicate

	Goal    Formula
	HasGoal bool
}
