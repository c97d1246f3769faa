package lex

import (
	"github.com/dekarrin/hddlint/internal/diag"
)

// Lexer converts a byte buffer into a stream of positioned tokens with
// one-token lookahead. It is consumed only by the parser.
//
// The caller must keep the source buffer alive for the lifetime of the
// Lexer and everything derived from it: Identifier tokens borrow slices of
// it directly, exactly as spec'd.
type Lexer struct {
	src  string
	curs int
	line int

	peeked    *Token
	peekedErr error
}

// New creates a Lexer over src, ready to produce the first token.
func New(src string) *Lexer {
	return &Lexer{src: src, curs: 0, line: 1}
}

// GetToken advances the lexer and returns the next token, consuming it. If
// the lexer encountered an invalid lexeme, a non-nil error is returned
// instead (wrapped as a diag.ParsingError with Kind == diag.Lexical).
func (l *Lexer) GetToken() (Token, error) {
	if l.peeked != nil {
		t := *l.peeked
		err := l.peekedErr
		l.peeked = nil
		l.peekedErr = nil
		return t, err
	}
	return l.scan()
}

// Lookahead returns the next token without consuming it. It is idempotent:
// repeated calls return the same value, and the following GetToken call
// returns a token equal to it.
func (l *Lexer) Lookahead() (Token, error) {
	if l.peeked == nil {
		t, err := l.scan()
		l.peeked = &t
		l.peekedErr = err
	}
	return *l.peeked, l.peekedErr
}

// LastTokenPosition returns the line number the lexer's cursor has most
// recently reached. Used to attribute parser-level errors (which have no
// token of their own, e.g. an unexpected EOF) to an input line.
func (l *Lexer) LastTokenPosition() diag.Position {
	return diag.Pos(l.line)
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespaceAndComments()

	if l.curs >= len(l.src) {
		return Token{Kind: KindEOF, Position: diag.Pos(l.line)}, nil
	}

	startLine := l.line
	c := l.src[l.curs]

	switch {
	case c == '(':
		l.curs++
		return Token{Kind: KindPunctuator, Punctuator: PunctLParen, Position: diag.Pos(startLine)}, nil
	case c == ')':
		l.curs++
		return Token{Kind: KindPunctuator, Punctuator: PunctRParen, Position: diag.Pos(startLine)}, nil
	case c == '-':
		l.curs++
		return Token{Kind: KindPunctuator, Punctuator: PunctDash, Position: diag.Pos(startLine)}, nil
	case c == '<' || c == '>' || c == '=':
		return l.scanRelational(startLine), nil
	case c == '?':
		l.curs++
		lex := l.scanLexeme()
		return Token{Kind: KindIdentifier, Identifier: lex, Position: diag.Pos(startLine)}, nil
	case c == ':':
		l.curs++
		lex := l.scanLexeme()
		if kw, ok := colonKeywords[lex]; ok {
			return Token{Kind: KindKeyword, Keyword: kw, Position: diag.Pos(startLine)}, nil
		}
		if req, ok := requirementWords[lex]; ok {
			return Token{Kind: KindRequirement, Requirement: req, Position: diag.Pos(startLine)}, nil
		}
		return Token{}, diag.NewLexicalError(diag.InvalidKeyword{Lexeme: ":" + lex, Position: diag.Pos(startLine)}, l.src)
	default:
		lex := l.scanLexeme()
		if op, ok := logicalOperatorWords[lex]; ok {
			return Token{Kind: KindOperator, Operator: op, Position: diag.Pos(startLine)}, nil
		}
		if kw, ok := bareKeywords[lex]; ok {
			return Token{Kind: KindKeyword, Keyword: kw, Position: diag.Pos(startLine)}, nil
		}
		if isValidIdentifier(lex) {
			return Token{Kind: KindIdentifier, Identifier: lex, Position: diag.Pos(startLine)}, nil
		}
		return Token{}, diag.NewLexicalError(diag.InvalidIdentifier{Lexeme: lex, Position: diag.Pos(startLine)}, l.src)
	}
}

func (l *Lexer) scanRelational(line int) Token {
	c := l.src[l.curs]
	l.curs++
	switch c {
	case '=':
		return Token{Kind: KindOperator, Operator: OpEqual, Position: diag.Pos(line)}
	case '<':
		if l.curs < len(l.src) && l.src[l.curs] == '=' {
			l.curs++
			return Token{Kind: KindOperator, Operator: OpLessThanOrEqual, Position: diag.Pos(line)}
		}
		return Token{Kind: KindOperator, Operator: OpLessThan, Position: diag.Pos(line)}
	default: // '>'
		if l.curs < len(l.src) && l.src[l.curs] == '=' {
			l.curs++
			return Token{Kind: KindOperator, Operator: OpGreaterThanOrEqual, Position: diag.Pos(line)}
		}
		return Token{Kind: KindOperator, Operator: OpGreaterThan, Position: diag.Pos(line)}
	}
}

// scanLexeme reads from the cursor until whitespace, '(', or ')' and returns
// the raw lexeme text; validity (alphanumeric/'_'/'-' only) is left to the
// caller, since the valid-character set differs depending on what table the
// lexeme is checked against (colon lexemes vs. bare lexemes).
func (l *Lexer) scanLexeme() string {
	start := l.curs
	for l.curs < len(l.src) {
		c := l.src[l.curs]
		if isWhitespace(c) || c == '(' || c == ')' {
			break
		}
		l.curs++
	}
	return l.src[start:l.curs]
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.curs < len(l.src) {
		c := l.src[l.curs]
		if c == ';' {
			for l.curs < len(l.src) && l.src[l.curs] != '\n' {
				l.curs++
			}
			continue
		}
		if isWhitespace(c) {
			if c == '\n' {
				l.line++
			}
			l.curs++
			continue
		}
		break
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLexemeChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

func isValidIdentifier(lex string) bool {
	if lex == "" {
		return false
	}
	for i := 0; i < len(lex); i++ {
		if !isLexemeChar(lex[i]) {
			return false
		}
	}
	return true
}
