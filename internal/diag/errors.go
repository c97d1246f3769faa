package diag

import "fmt"

// LexicalErrorType is the closed set of errors the lexer can produce.
type LexicalErrorType interface {
	error
	Pos() Position
	isLexicalError()
}

// InvalidIdentifier is produced when a lexeme contains a character outside
// alphanumerics, '_', and '-'.
type InvalidIdentifier struct {
	Lexeme   string
	Position Position
}

func (e InvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid identifier %q at %s", e.Lexeme, e.Position)
}
func (e InvalidIdentifier) Pos() Position  { return e.Position }
func (InvalidIdentifier) isLexicalError() {}

// InvalidKeyword is produced when a ':'-prefixed lexeme does not match any
// entry in the closed keyword/requirement tables.
type InvalidKeyword struct {
	Lexeme   string
	Position Position
}

func (e InvalidKeyword) Error() string {
	return fmt.Sprintf("invalid keyword %q at %s", e.Lexeme, e.Position)
}
func (e InvalidKeyword) Pos() Position { return e.Position }
func (InvalidKeyword) isLexicalError() {}

// SyntacticError is produced by the parser on the first structural mismatch
// encountered. Parsing never recovers from one; it is always fatal to the
// current file.
type SyntacticError struct {
	Expected string
	Found    string
	Position Position
}

func (e SyntacticError) Error() string {
	return fmt.Sprintf("expected %s, found %s at %s", e.Expected, e.Found, e.Position)
}
func (e SyntacticError) Pos() Position { return e.Position }

// SemanticErrorType is the closed set of errors the semantic analyzers can
// produce.
type SemanticErrorType interface {
	error
	Pos() Position
	isSemanticError()
}

type DuplicateRequirementDeclaration struct {
	Name           string
	First, Second  Position
}

func (e DuplicateRequirementDeclaration) Error() string {
	return fmt.Sprintf("requirement %q declared more than once (first at %s, again at %s)", e.Name, e.First, e.Second)
}
func (e DuplicateRequirementDeclaration) Pos() Position { return e.Second }
func (DuplicateRequirementDeclaration) isSemanticError() {}

type DuplicatePredicateDeclaration struct {
	Name          string
	First, Second Position
}

func (e DuplicatePredicateDeclaration) Error() string {
	return fmt.Sprintf("predicate %q declared more than once (first at %s, again at %s)", e.Name, e.First, e.Second)
}
func (e DuplicatePredicateDeclaration) Pos() Position { return e.Second }
func (DuplicatePredicateDeclaration) isSemanticError() {}

type DuplicateCompoundTaskDeclaration struct {
	Name          string
	First, Second Position
}

func (e DuplicateCompoundTaskDeclaration) Error() string {
	return fmt.Sprintf("task %q declared more than once (first at %s, again at %s)", e.Name, e.First, e.Second)
}
func (e DuplicateCompoundTaskDeclaration) Pos() Position { return e.Second }
func (DuplicateCompoundTaskDeclaration) isSemanticError() {}

type DuplicateActionDeclaration struct {
	Name          string
	First, Second Position
}

func (e DuplicateActionDeclaration) Error() string {
	return fmt.Sprintf("action %q declared more than once (first at %s, again at %s)", e.Name, e.First, e.Second)
}
func (e DuplicateActionDeclaration) Pos() Position { return e.Second }
func (DuplicateActionDeclaration) isSemanticError() {}

type DuplicateMethodDeclaration struct {
	Name          string
	First, Second Position
}

func (e DuplicateMethodDeclaration) Error() string {
	return fmt.Sprintf("method %q declared more than once (first at %s, again at %s)", e.Name, e.First, e.Second)
}
func (e DuplicateMethodDeclaration) Pos() Position { return e.Second }
func (DuplicateMethodDeclaration) isSemanticError() {}

type DuplicateObjectDeclaration struct {
	Name          string
	First, Second Position
}

func (e DuplicateObjectDeclaration) Error() string {
	return fmt.Sprintf("object %q declared more than once (first at %s, again at %s)", e.Name, e.First, e.Second)
}
func (e DuplicateObjectDeclaration) Pos() Position { return e.Second }
func (DuplicateObjectDeclaration) isSemanticError() {}

type UndefinedPredicate struct {
	Name     string
	Position Position
}

func (e UndefinedPredicate) Error() string {
	return fmt.Sprintf("undefined predicate %q at %s", e.Name, e.Position)
}
func (e UndefinedPredicate) Pos() Position { return e.Position }
func (UndefinedPredicate) isSemanticError() {}

type UndefinedType struct {
	Name     string
	Position Position
}

func (e UndefinedType) Error() string {
	return fmt.Sprintf("undefined type %q at %s", e.Name, e.Position)
}
func (e UndefinedType) Pos() Position { return e.Position }
func (UndefinedType) isSemanticError() {}

type UndefinedSubtask struct {
	Name     string
	Position Position
}

func (e UndefinedSubtask) Error() string {
	return fmt.Sprintf("subtask refers to undeclared task or action %q at %s", e.Name, e.Position)
}
func (e UndefinedSubtask) Pos() Position { return e.Position }
func (UndefinedSubtask) isSemanticError() {}

type UndefinedTask struct {
	Name     string
	Position Position
}

func (e UndefinedTask) Error() string {
	return fmt.Sprintf("method decomposes undeclared task %q at %s", e.Name, e.Position)
}
func (e UndefinedTask) Pos() Position { return e.Position }
func (UndefinedTask) isSemanticError() {}

type UndefinedParameter struct {
	Name     string
	Position Position
}

func (e UndefinedParameter) Error() string {
	return fmt.Sprintf("undefined parameter %q at %s", e.Name, e.Position)
}
func (e UndefinedParameter) Pos() Position { return e.Position }
func (UndefinedParameter) isSemanticError() {}

type UndefinedObject struct {
	Name     string
	Position Position
}

func (e UndefinedObject) Error() string {
	return fmt.Sprintf("undefined object %q at %s", e.Name, e.Position)
}
func (e UndefinedObject) Pos() Position { return e.Position }
func (UndefinedObject) isSemanticError() {}

type InconsistentPredicateArity struct {
	Name             string
	Expected, Found  int
	Position         Position
}

func (e InconsistentPredicateArity) Error() string {
	return fmt.Sprintf("predicate %q expects %d argument(s), found %d at %s", e.Name, e.Expected, e.Found, e.Position)
}
func (e InconsistentPredicateArity) Pos() Position { return e.Position }
func (InconsistentPredicateArity) isSemanticError() {}

type InconsistentTaskArity struct {
	Name            string
	Expected, Found int
	Position        Position
}

func (e InconsistentTaskArity) Error() string {
	return fmt.Sprintf("task %q expects %d argument(s), found %d at %s", e.Name, e.Expected, e.Found, e.Position)
}
func (e InconsistentTaskArity) Pos() Position { return e.Position }
func (InconsistentTaskArity) isSemanticError() {}

type InconsistentPredicateArgType struct {
	Name, Variable   string
	Expected, Found  string
	Position         Position
}

func (e InconsistentPredicateArgType) Error() string {
	return fmt.Sprintf("predicate %q argument %q expects type %q, found %q at %s", e.Name, e.Variable, e.Expected, e.Found, e.Position)
}
func (e InconsistentPredicateArgType) Pos() Position { return e.Position }
func (InconsistentPredicateArgType) isSemanticError() {}

type InconsistentTaskArgType struct {
	Name, Variable  string
	Expected, Found string
	Position        Position
}

func (e InconsistentTaskArgType) Error() string {
	return fmt.Sprintf("task %q argument %q expects type %q, found %q at %s", e.Name, e.Variable, e.Expected, e.Found, e.Position)
}
func (e InconsistentTaskArgType) Pos() Position { return e.Position }
func (InconsistentTaskArgType) isSemanticError() {}

type CyclicTypeDeclaration struct{}

func (e CyclicTypeDeclaration) Error() string  { return "type hierarchy contains a cycle" }
func (e CyclicTypeDeclaration) Pos() Position  { return Position{} }
func (CyclicTypeDeclaration) isSemanticError() {}

type CyclicOrderingDeclaration struct {
	Position Position
}

func (e CyclicOrderingDeclaration) Error() string {
	return fmt.Sprintf("subtask ordering contains a cycle at %s", e.Position)
}
func (e CyclicOrderingDeclaration) Pos() Position { return e.Position }
func (CyclicOrderingDeclaration) isSemanticError() {}

// WarningType is the closed set of warnings a successful analysis may still
// accumulate.
type WarningType interface {
	error
	Pos() Position
	isWarning()
}

type UnsatisfiableActionPrecondition struct {
	Name     string
	Position Position
}

func (w UnsatisfiableActionPrecondition) Error() string {
	return fmt.Sprintf("precondition of action %q is not satisfiable at %s", w.Name, w.Position)
}
func (w UnsatisfiableActionPrecondition) Pos() Position { return w.Position }
func (UnsatisfiableActionPrecondition) isWarning() {}

type UnsatisfiableMethodPrecondition struct {
	Name     string
	Position Position
}

func (w UnsatisfiableMethodPrecondition) Error() string {
	return fmt.Sprintf("precondition of method %q is not satisfiable at %s", w.Name, w.Position)
}
func (w UnsatisfiableMethodPrecondition) Pos() Position { return w.Position }
func (UnsatisfiableMethodPrecondition) isWarning() {}

type NoPrimitiveRefinement struct {
	Name     string
	Position Position
}

func (w NoPrimitiveRefinement) Error() string {
	return fmt.Sprintf("task %q has no primitive refinement and is never nullable at %s", w.Name, w.Position)
}
func (w NoPrimitiveRefinement) Pos() Position { return w.Position }
func (NoPrimitiveRefinement) isWarning() {}
