package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		tok, err := l.GetToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
}

func TestLexer_Punctuators(t *testing.T) {
	toks := allTokens(t, "( ) -")
	require.Len(t, toks, 4)
	assert.Equal(t, PunctLParen, toks[0].Punctuator)
	assert.Equal(t, PunctRParen, toks[1].Punctuator)
	assert.Equal(t, PunctDash, toks[2].Punctuator)
	assert.Equal(t, KindEOF, toks[3].Kind)
}

func TestLexer_RelationalOperators(t *testing.T) {
	toks := allTokens(t, "= < > <= >=")
	want := []Operator{OpEqual, OpLessThan, OpGreaterThan, OpLessThanOrEqual, OpGreaterThanOrEqual}
	require.Len(t, toks, len(want)+1)
	for i, op := range want {
		assert.Equal(t, KindOperator, toks[i].Kind)
		assert.Equal(t, op, toks[i].Operator)
	}
}

func TestLexer_VariableIdentifier(t *testing.T) {
	toks := allTokens(t, "?loc1")
	require.Len(t, toks, 2)
	assert.Equal(t, KindIdentifier, toks[0].Kind)
	assert.Equal(t, "loc1", toks[0].Identifier)
}

func TestLexer_ColonKeywordsAndAliases(t *testing.T) {
	toks := allTokens(t, ":parameters :subtasks :tasks :ordered-subtasks :ordered-tasks :ordering :order")
	require.Len(t, toks, 8)
	assert.Equal(t, KwParameters, toks[0].Keyword)
	assert.Equal(t, KwSubtasks, toks[1].Keyword)
	assert.Equal(t, KwSubtasks, toks[2].Keyword, "tasks aliases to subtasks")
	assert.Equal(t, KwOrderedSubtasks, toks[3].Keyword)
	assert.Equal(t, KwOrderedSubtasks, toks[4].Keyword, "ordered-tasks aliases to ordered-subtasks")
	assert.Equal(t, KwOrdering, toks[5].Keyword)
	assert.Equal(t, KwOrdering, toks[6].Keyword, "order aliases to ordering")
}

func TestLexer_Requirements(t *testing.T) {
	toks := allTokens(t, ":hierarchy :typing :negative-preconditions :universal-preconditions :equality :method-preconditions")
	want := []Requirement{ReqHierarchy, ReqTypedObjects, ReqNegativePreconditions, ReqUniversalPreconditions, ReqEquality, ReqMethodPreconditions}
	require.Len(t, toks, len(want)+1)
	for i, r := range want {
		assert.Equal(t, KindRequirement, toks[i].Kind)
		assert.Equal(t, r, toks[i].Requirement)
	}
}

func TestLexer_LogicalOperatorWords(t *testing.T) {
	toks := allTokens(t, "and or not oneof forall exists imply")
	want := []Operator{OpAnd, OpOr, OpNot, OpXor, OpForAll, OpExists, OpImply}
	require.Len(t, toks, len(want)+1)
	for i, op := range want {
		assert.Equal(t, KindOperator, toks[i].Kind)
		assert.Equal(t, op, toks[i].Operator)
	}
}

func TestLexer_BareKeywords(t *testing.T) {
	toks := allTokens(t, "define domain problem")
	require.Len(t, toks, 4)
	assert.Equal(t, KwDefine, toks[0].Keyword)
	assert.Equal(t, KwDomain, toks[1].Keyword)
	assert.Equal(t, KwProblem, toks[2].Keyword)
}

func TestLexer_PlainIdentifier(t *testing.T) {
	toks := allTokens(t, "loc_1 block-b objA")
	require.Len(t, toks, 4)
	for i, want := range []string{"loc_1", "block-b", "objA"} {
		assert.Equal(t, KindIdentifier, toks[i].Kind)
		assert.Equal(t, want, toks[i].Identifier)
	}
}

func TestLexer_LineCommentsSkipped(t *testing.T) {
	toks := allTokens(t, "foo ; a comment\nbar")
	require.Len(t, toks, 3)
	assert.Equal(t, "foo", toks[0].Identifier)
	assert.Equal(t, "bar", toks[1].Identifier)
}

func TestLexer_PositionMonotonicity(t *testing.T) {
	src := "foo\nbar\n\nbaz"
	toks := allTokens(t, src)
	for i := 1; i < len(toks); i++ {
		assert.LessOrEqual(t, toks[i-1].Position.Line, toks[i].Position.Line)
	}
	assert.Equal(t, 1, toks[0].Position.Line)
	assert.Equal(t, 2, toks[1].Position.Line)
	assert.Equal(t, 4, toks[2].Position.Line)
}

func TestLexer_InvalidIdentifier(t *testing.T) {
	l := New("foo@bar")
	_, err := l.GetToken()
	require.Error(t, err)
	pe, ok := err.(interface{ Error() string })
	require.True(t, ok)
	assert.Contains(t, pe.Error(), "invalid identifier")
}

func TestLexer_InvalidKeyword(t *testing.T) {
	l := New(":bogus")
	_, err := l.GetToken()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid keyword")
}

func TestLexer_EOFIsSticky(t *testing.T) {
	l := New("")
	tok1, err := l.GetToken()
	require.NoError(t, err)
	assert.Equal(t, KindEOF, tok1.Kind)
	tok2, err := l.GetToken()
	require.NoError(t, err)
	assert.Equal(t, KindEOF, tok2.Kind)
}

// TestLexer_LookaheadIdempotence exercises the spec's lookahead contract:
// repeated Lookahead calls return equal values, and the following GetToken
// returns a value equal to the last Lookahead.
func TestLexer_LookaheadIdempotence(t *testing.T) {
	l := New("(define (domain foo))")

	la1, err := l.Lookahead()
	require.NoError(t, err)
	la2, err := l.Lookahead()
	require.NoError(t, err)
	assert.True(t, la1.Equal(la2))

	got, err := l.GetToken()
	require.NoError(t, err)
	assert.True(t, la1.Equal(got))
}

func TestLexer_LastTokenPosition(t *testing.T) {
	l := New("foo\nbar")
	_, err := l.GetToken()
	require.NoError(t, err)
	_, err = l.GetToken()
	require.NoError(t, err)
	assert.Equal(t, 2, l.LastTokenPosition().Line)
}
