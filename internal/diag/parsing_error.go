package diag

import "strings"

// ParsingErrorKind distinguishes the three error families a ParsingError can
// wrap.
type ParsingErrorKind int

const (
	Lexical ParsingErrorKind = iota
	Syntactic
	Semantic
)

func (k ParsingErrorKind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// ParsingError is the top-level tagged union returned by the analyzer any
// time a file cannot be fully analyzed. Exactly one of the three error
// families is populated, as named by Kind.
//
// ParsingError carries the source text it was raised against so that
// FullMessage can render the offending line with a cursor, in the style of
// tunascript's SyntaxError.
type ParsingError struct {
	Kind ParsingErrorKind

	Lex  LexicalErrorType
	Syn  *SyntacticError
	Sem  SemanticErrorType

	source string
}

// NewLexicalError builds a ParsingError wrapping a lexical error.
func NewLexicalError(err LexicalErrorType, source string) ParsingError {
	return ParsingError{Kind: Lexical, Lex: err, source: source}
}

// NewSyntacticError builds a ParsingError wrapping a syntactic error.
func NewSyntacticError(err SyntacticError, source string) ParsingError {
	return ParsingError{Kind: Syntactic, Syn: &err, source: source}
}

// NewSemanticError builds a ParsingError wrapping a semantic error.
func NewSemanticError(err SemanticErrorType, source string) ParsingError {
	return ParsingError{Kind: Semantic, Sem: err, source: source}
}

func (e ParsingError) Error() string {
	switch e.Kind {
	case Lexical:
		return e.Lex.Error()
	case Syntactic:
		return e.Syn.Error()
	case Semantic:
		return e.Sem.Error()
	default:
		return "unknown parsing error"
	}
}

// Pos returns the source position the wrapped error was raised at.
func (e ParsingError) Pos() Position {
	switch e.Kind {
	case Lexical:
		return e.Lex.Pos()
	case Syntactic:
		return e.Syn.Pos()
	case Semantic:
		return e.Sem.Pos()
	default:
		return Position{}
	}
}

// FullMessage renders Error() along with the offending source line and a '^'
// cursor beneath it, mirroring tunascript.SyntaxError.SourceLineWithCursor.
// If the position has no associated line (e.g. CyclicTypeDeclaration, which
// names no single offending line), only Error() is returned.
func (e ParsingError) FullMessage() string {
	pos := e.Pos()
	if pos.Line == 0 {
		return e.Error()
	}

	line := pos.SourceLine(e.source)
	if line == "" {
		return e.Error()
	}

	return e.Error() + "\n" + line + "\n^"
}

// SourceLineWithCursor returns the offending line followed by a line
// containing a single '^' under the start of the line, matching the
// rendering idiom used elsewhere in the ambient stack for reporting the
// "roughly where" of an error when no column is tracked.
func (e ParsingError) SourceLineWithCursor() string {
	pos := e.Pos()
	line := pos.SourceLine(e.source)
	if line == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(line)
	sb.WriteString("\n^")
	return sb.String()
}
