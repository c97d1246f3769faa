// Package parse implements the recursive-descent parser that turns a token
// stream from internal/lex into a typed, position-bearing AST (package
// internal/ast). The first structural mismatch aborts the parse with a
// diag.ParsingError wrapping a diag.SyntacticError; there is no recovery.
package parse

import (
	"github.com/dekarrin/hddlint/internal/ast"
	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/internal/lex"
)

// Parser consumes a Lexer and produces either a Domain or a Problem AST,
// dispatching on the file's outer header.
type Parser struct {
	lx  *lex.Lexer
	src string
}

// New creates a Parser over src.
func New(src string) *Parser {
	return &Parser{lx: lex.New(src), src: src}
}

// ParseDomain parses src as a domain file. It fails with a SyntacticError
// if the header names a problem instead.
func ParseDomain(src string) (*ast.Domain, error) {
	d, p, err := New(src).Parse()
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, diag.NewSyntacticError(diag.SyntacticError{
			Expected: "domain header", Found: "problem header", Position: p.NamePos,
		}, src)
	}
	return d, nil
}

// ParseProblem parses src as a problem file. It fails with a SyntacticError
// if the header names a domain instead.
func ParseProblem(src string) (*ast.Problem, error) {
	d, p, err := New(src).Parse()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, diag.NewSyntacticError(diag.SyntacticError{
			Expected: "problem header", Found: "domain header", Position: d.NamePos,
		}, src)
	}
	return p, nil
}

// Parse parses the outer `(define (domain NAME) ...)` or
// `(define (problem NAME) (:domain D) ...)` header and dispatches to the
// matching body parser. Exactly one of the two return values is non-nil on
// success.
func (p *Parser) Parse() (*ast.Domain, *ast.Problem, error) {
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return nil, nil, err
	}
	if err := p.expectKeyword(lex.KwDefine); err != nil {
		return nil, nil, err
	}
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return nil, nil, err
	}
	tok, err := p.next()
	if err != nil {
		return nil, nil, err
	}
	if tok.Kind != lex.KindKeyword {
		return nil, nil, p.syntaxErr("domain or problem", tok)
	}
	switch tok.Keyword {
	case lex.KwDomain:
		nameTok, err := p.expectIdentifier()
		if err != nil {
			return nil, nil, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return nil, nil, err
		}
		d, err := p.parseDomainBody(nameTok)
		if err != nil {
			return nil, nil, err
		}
		return d, nil, nil
	case lex.KwProblem:
		nameTok, err := p.expectIdentifier()
		if err != nil {
			return nil, nil, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return nil, nil, err
		}
		pr, err := p.parseProblemBody(nameTok)
		if err != nil {
			return nil, nil, err
		}
		return nil, pr, nil
	default:
		return nil, nil, p.syntaxErr("domain or problem", tok)
	}
}

// --- domain body ---

func (p *Parser) parseDomainBody(nameTok lex.Token) (*ast.Domain, error) {
	d := &ast.Domain{Name: nameTok.Identifier, NamePos: nameTok.Position}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
			p.next()
			break
		}
		if err := p.expectPunct(lex.PunctLParen); err != nil {
			return nil, err
		}
		kw, err := p.next()
		if err != nil {
			return nil, err
		}
		if kw.Kind != lex.KindKeyword {
			return nil, p.syntaxErr("domain section keyword", kw)
		}
		switch kw.Keyword {
		case lex.KwRequirements:
			reqs, err := p.parseRequirementList()
			if err != nil {
				return nil, err
			}
			d.Requirements = reqs
		case lex.KwTypes:
			types, err := p.parseTypedList()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return nil, err
			}
			d.Types = types
		case lex.KwConstants:
			consts, err := p.parseTypedList()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return nil, err
			}
			d.Constants = consts
		case lex.KwPredicates:
			preds, err := p.parsePredicateDefs()
			if err != nil {
				return nil, err
			}
			d.Predicates = preds
		case lex.KwTask:
			t, err := p.parseCompoundTaskDecl()
			if err != nil {
				return nil, err
			}
			d.CompoundTasks = append(d.CompoundTasks, t)
		case lex.KwAction:
			a, err := p.parseAction()
			if err != nil {
				return nil, err
			}
			d.Actions = append(d.Actions, a)
		case lex.KwMethod:
			m, err := p.parseMethod()
			if err != nil {
				return nil, err
			}
			d.Methods = append(d.Methods, m)
		default:
			return nil, p.syntaxErr("domain section keyword", kw)
		}
	}

	return d, nil
}

func (p *Parser) parseCompoundTaskDecl() (ast.Task, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return ast.Task{}, err
	}
	if err := p.expectKeyword(lex.KwParameters); err != nil {
		return ast.Task{}, err
	}
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return ast.Task{}, err
	}
	params, err := p.parseTypedList()
	if err != nil {
		return ast.Task{}, err
	}
	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return ast.Task{}, err
	}
	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return ast.Task{}, err
	}
	return ast.Task{Name: nameTok.Identifier, NamePos: nameTok.Position, Parameters: params}, nil
}

func (p *Parser) parseAction() (ast.Action, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return ast.Action{}, err
	}
	if err := p.expectKeyword(lex.KwParameters); err != nil {
		return ast.Action{}, err
	}
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return ast.Action{}, err
	}
	params, err := p.parseTypedList()
	if err != nil {
		return ast.Action{}, err
	}
	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return ast.Action{}, err
	}

	a := ast.Action{Name: nameTok.Identifier, NamePos: nameTok.Position, Parameters: params}

	tok, err := p.peek()
	if err != nil {
		return ast.Action{}, err
	}
	if tok.Kind == lex.KindKeyword && tok.Keyword == lex.KwPrecondition {
		p.next()
		f, err := p.parseFormula()
		if err != nil {
			return ast.Action{}, err
		}
		a.Precondition = f
		a.HasPrecondition = true
	}

	tok, err = p.peek()
	if err != nil {
		return ast.Action{}, err
	}
	if tok.Kind == lex.KindKeyword && tok.Keyword == lex.KwEffect {
		p.next()
		f, err := p.parseFormula()
		if err != nil {
			return ast.Action{}, err
		}
		a.Effect = f
		a.HasEffect = true
	}

	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return ast.Action{}, err
	}
	return a, nil
}

func (p *Parser) parseMethod() (ast.Method, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return ast.Method{}, err
	}
	if err := p.expectKeyword(lex.KwParameters); err != nil {
		return ast.Method{}, err
	}
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return ast.Method{}, err
	}
	params, err := p.parseTypedList()
	if err != nil {
		return ast.Method{}, err
	}
	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return ast.Method{}, err
	}

	if err := p.expectKeyword(lex.KwTask); err != nil {
		return ast.Method{}, err
	}
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return ast.Method{}, err
	}
	taskNameTok, err := p.expectIdentifier()
	if err != nil {
		return ast.Method{}, err
	}
	taskTerms, err := p.parseTermList()
	if err != nil {
		return ast.Method{}, err
	}
	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return ast.Method{}, err
	}

	m := ast.Method{
		Name:      ast.Symbol{Name: nameTok.Identifier, NamePos: nameTok.Position},
		Task:      ast.Symbol{Name: taskNameTok.Identifier, NamePos: taskNameTok.Position},
		TaskTerms: taskTerms,
		Params:    params,
	}

	tok, err := p.peek()
	if err != nil {
		return ast.Method{}, err
	}
	if tok.Kind == lex.KindKeyword && tok.Keyword == lex.KwPrecondition {
		p.next()
		f, err := p.parseFormula()
		if err != nil {
			return ast.Method{}, err
		}
		m.Precondition = f
		m.HasPrecondition = true
	}

	tok, err = p.next()
	if err != nil {
		return ast.Method{}, err
	}
	if tok.Kind != lex.KindKeyword || (tok.Keyword != lex.KwSubtasks && tok.Keyword != lex.KwOrderedSubtasks) {
		return ast.Method{}, p.syntaxErr(":subtasks or :ordered-subtasks", tok)
	}
	subtasks, err := p.parseSubtasks()
	if err != nil {
		return ast.Method{}, err
	}
	tn := ast.HTN{Subtasks: subtasks, Orderings: ast.TaskOrdering{Kind: ast.OrderingTotal}}

	tok, err = p.peek()
	if err != nil {
		return ast.Method{}, err
	}
	if tok.Kind == lex.KindKeyword && tok.Keyword == lex.KwOrdering {
		p.next()
		ord, pos, err := p.parseOrdering()
		if err != nil {
			return ast.Method{}, err
		}
		tn.Orderings = ord
		tn.OrderingPos = &pos
	}

	tok, err = p.peek()
	if err != nil {
		return ast.Method{}, err
	}
	if tok.Kind == lex.KindKeyword && tok.Keyword == lex.KwConstraints {
		p.next()
		cs, err := p.parseConstraints()
		if err != nil {
			return ast.Method{}, err
		}
		tn.Constraints = cs
	}

	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return ast.Method{}, err
	}
	m.TN = tn
	return m, nil
}

// --- problem body ---

func (p *Parser) parseProblemBody(nameTok lex.Token) (*ast.Problem, error) {
	pr := &ast.Problem{Name: nameTok.Identifier, NamePos: nameTok.Position}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
			p.next()
			break
		}
		if err := p.expectPunct(lex.PunctLParen); err != nil {
			return nil, err
		}
		kw, err := p.next()
		if err != nil {
			return nil, err
		}
		if kw.Kind != lex.KindKeyword {
			return nil, p.syntaxErr("problem section keyword", kw)
		}
		switch kw.Keyword {
		case lex.KwDomain:
			dn, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			pr.DomainName = dn.Identifier
			pr.DomainNamePos = dn.Position
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return nil, err
			}
		case lex.KwRequirements:
			reqs, err := p.parseRequirementList()
			if err != nil {
				return nil, err
			}
			pr.Requirements = reqs
		case lex.KwObjects:
			objs, err := p.parseTypedList()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return nil, err
			}
			pr.Objects = objs
		case lex.KwInit:
			preds, err := p.parseGroundPredicateList()
			if err != nil {
				return nil, err
			}
			pr.InitState = preds
		case lex.KwHTN:
			tn, err := p.parseInitTN()
			if err != nil {
				return nil, err
			}
			pr.InitTN = tn
		case lex.KwGoal:
			f, err := p.parseFormula()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return nil, err
			}
			pr.Goal = f
			pr.HasGoal = true
		default:
			return nil, p.syntaxErr("problem section keyword", kw)
		}
	}

	return pr, nil
}

func (p *Parser) parseInitTN() (*ast.HTN, error) {
	tn := &ast.HTN{Orderings: ast.TaskOrdering{Kind: ast.OrderingTotal}}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lex.KindKeyword && tok.Keyword == lex.KwParameters {
		p.next()
		if err := p.expectPunct(lex.PunctLParen); err != nil {
			return nil, err
		}
		params, err := p.parseTypedList()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return nil, err
		}
		tn.Params = params
	}

	tok, err = p.next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != lex.KindKeyword || (tok.Keyword != lex.KwSubtasks && tok.Keyword != lex.KwOrderedSubtasks) {
		return nil, p.syntaxErr(":subtasks or :ordered-subtasks", tok)
	}
	subtasks, err := p.parseSubtasks()
	if err != nil {
		return nil, err
	}
	tn.Subtasks = subtasks

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lex.KindKeyword && tok.Keyword == lex.KwOrdering {
		p.next()
		ord, pos, err := p.parseOrdering()
		if err != nil {
			return nil, err
		}
		tn.Orderings = ord
		tn.OrderingPos = &pos
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lex.KindKeyword && tok.Keyword == lex.KwConstraints {
		p.next()
		cs, err := p.parseConstraints()
		if err != nil {
			return nil, err
		}
		tn.Constraints = cs
	}

	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return nil, err
	}
	return tn, nil
}

func (p *Parser) parseGroundPredicateList() ([]ast.Predicate, error) {
	var preds []ast.Predicate
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
			p.next()
			return preds, nil
		}
		if err := p.expectPunct(lex.PunctLParen); err != nil {
			return nil, err
		}
		nameTok, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		terms, err := p.parseTermList()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return nil, err
		}
		preds = append(preds, ast.Predicate{Name: nameTok.Identifier, NamePos: nameTok.Position, Variables: terms})
	}
}

// --- shared productions ---

func (p *Parser) parsePredicateDefs() ([]ast.Predicate, error) {
	var preds []ast.Predicate
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
			p.next()
			return preds, nil
		}
		if err := p.expectPunct(lex.PunctLParen); err != nil {
			return nil, err
		}
		nameTok, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		vars, err := p.parseTypedList()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return nil, err
		}
		preds = append(preds, ast.Predicate{Name: nameTok.Identifier, NamePos: nameTok.Position, Variables: vars})
	}
}

func (p *Parser) parseRequirementList() ([]ast.Requirement, error) {
	var reqs []ast.Requirement
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
			return reqs, nil
		}
		if tok.Kind != lex.KindRequirement {
			return nil, p.syntaxErr("requirement", tok)
		}
		reqs = append(reqs, ast.Requirement{Name: tok.Requirement.String(), Pos: tok.Position})
	}
}

// parseTypedList implements parse_args: identifiers are accumulated into a
// batch; '-' followed by one identifier types the whole batch; a trailing
// untyped batch is flushed when ')' is reached (without consuming it).
func (p *Parser) parseTypedList() ([]ast.Symbol, error) {
	var result []ast.Symbol
	var batch []ast.Symbol
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen:
			return append(result, batch...), nil
		case tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctDash:
			p.next()
			typeTok, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			for i := range batch {
				batch[i].Type = typeTok.Identifier
				batch[i].TypePos = typeTok.Position
				batch[i].Typed = true
			}
			result = append(result, batch...)
			batch = nil
		case tok.Kind == lex.KindIdentifier:
			p.next()
			batch = append(batch, ast.Symbol{Name: tok.Identifier, NamePos: tok.Position})
		default:
			return nil, p.syntaxErr("identifier, '-', or ')'", tok)
		}
	}
}

func (p *Parser) parseTermList() ([]ast.Symbol, error) {
	var terms []ast.Symbol
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
			return terms, nil
		}
		if tok.Kind != lex.KindIdentifier {
			return nil, p.syntaxErr("identifier", tok)
		}
		p.next()
		terms = append(terms, ast.Symbol{Name: tok.Identifier, NamePos: tok.Position})
	}
}

func (p *Parser) parseTermSymbol() (ast.Symbol, error) {
	tok, err := p.next()
	if err != nil {
		return ast.Symbol{}, err
	}
	if tok.Kind != lex.KindIdentifier {
		return ast.Symbol{}, p.syntaxErr("identifier", tok)
	}
	return ast.Symbol{Name: tok.Identifier, NamePos: tok.Position}, nil
}

// parseFormula implements the Formula grammar: ')' (unconsumed) and '()'
// (consumed) both denote Empty; otherwise an opening '(' followed by an
// operator or identifier dictates the shape.
func (p *Parser) parseFormula() (ast.Formula, error) {
	tok, err := p.peek()
	if err != nil {
		return ast.Formula{}, err
	}
	if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
		return ast.Empty(), nil
	}
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return ast.Formula{}, err
	}

	head, err := p.peek()
	if err != nil {
		return ast.Formula{}, err
	}

	if head.Kind == lex.KindPunctuator && head.Punctuator == lex.PunctRParen {
		p.next()
		return ast.Empty(), nil
	}

	if head.Kind == lex.KindOperator {
		p.next()
		switch head.Operator {
		case lex.OpNot:
			inner, err := p.parseFormula()
			if err != nil {
				return ast.Formula{}, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return ast.Formula{}, err
			}
			return ast.MakeNot(inner), nil
		case lex.OpAnd:
			list, err := p.parseFormulaListUntilClose()
			if err != nil {
				return ast.Formula{}, err
			}
			return ast.MakeAnd(list...), nil
		case lex.OpOr:
			list, err := p.parseFormulaListUntilClose()
			if err != nil {
				return ast.Formula{}, err
			}
			return ast.MakeOr(list...), nil
		case lex.OpXor:
			list, err := p.parseFormulaListUntilClose()
			if err != nil {
				return ast.Formula{}, err
			}
			return ast.MakeXor(list...), nil
		case lex.OpEqual:
			a, err := p.parseTermSymbol()
			if err != nil {
				return ast.Formula{}, err
			}
			b, err := p.parseTermSymbol()
			if err != nil {
				return ast.Formula{}, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return ast.Formula{}, err
			}
			return ast.MakeEquals(a, b), nil
		case lex.OpForAll, lex.OpExists:
			if err := p.expectPunct(lex.PunctLParen); err != nil {
				return ast.Formula{}, err
			}
			params, err := p.parseTypedList()
			if err != nil {
				return ast.Formula{}, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return ast.Formula{}, err
			}
			body, err := p.parseFormula()
			if err != nil {
				return ast.Formula{}, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return ast.Formula{}, err
			}
			if head.Operator == lex.OpForAll {
				return ast.MakeForAll(params, body), nil
			}
			return ast.MakeExists(params, body), nil
		case lex.OpImply:
			ante, err := p.parseFormula()
			if err != nil {
				return ast.Formula{}, err
			}
			conse, err := p.parseFormula()
			if err != nil {
				return ast.Formula{}, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return ast.Formula{}, err
			}
			return ast.MakeImply([]ast.Formula{ante}, []ast.Formula{conse}), nil
		default:
			return ast.Formula{}, p.syntaxErr("formula operator", head)
		}
	}

	if head.Kind == lex.KindIdentifier {
		p.next()
		terms, err := p.parseTermList()
		if err != nil {
			return ast.Formula{}, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return ast.Formula{}, err
		}
		return ast.MakeAtom(ast.Predicate{Name: head.Identifier, NamePos: head.Position, Variables: terms}), nil
	}

	return ast.Formula{}, p.syntaxErr("formula", head)
}

func (p *Parser) parseFormulaListUntilClose() ([]ast.Formula, error) {
	var list []ast.Formula
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
			p.next()
			return list, nil
		}
		f, err := p.parseFormula()
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
}

// --- subtasks / ordering / constraints ---

func (p *Parser) parseSubtasks() ([]ast.Subtask, error) {
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lex.KindOperator && tok.Operator == lex.OpAnd {
		p.next()
		var list []ast.Subtask
		for {
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
				p.next()
				return list, nil
			}
			st, err := p.parseSubtaskForm()
			if err != nil {
				return nil, err
			}
			list = append(list, st)
		}
	}
	st, err := p.parseSubtaskFormBody()
	if err != nil {
		return nil, err
	}
	return []ast.Subtask{st}, nil
}

func (p *Parser) parseSubtaskForm() (ast.Subtask, error) {
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return ast.Subtask{}, err
	}
	return p.parseSubtaskFormBody()
}

// parseSubtaskFormBody assumes the form's own leading '(' has already been
// consumed. An id is present iff the first identifier is followed by
// another '(' (a nested (task terms)); otherwise that identifier is the
// task name itself.
func (p *Parser) parseSubtaskFormBody() (ast.Subtask, error) {
	first, err := p.expectIdentifier()
	if err != nil {
		return ast.Subtask{}, err
	}
	next, err := p.peek()
	if err != nil {
		return ast.Subtask{}, err
	}
	if next.Kind == lex.KindPunctuator && next.Punctuator == lex.PunctLParen {
		p.next()
		taskNameTok, err := p.expectIdentifier()
		if err != nil {
			return ast.Subtask{}, err
		}
		terms, err := p.parseTermList()
		if err != nil {
			return ast.Subtask{}, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return ast.Subtask{}, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return ast.Subtask{}, err
		}
		id := ast.Symbol{Name: first.Identifier, NamePos: first.Position}
		return ast.Subtask{
			ID:    &id,
			Task:  ast.Symbol{Name: taskNameTok.Identifier, NamePos: taskNameTok.Position},
			Terms: terms,
		}, nil
	}

	terms, err := p.parseTermList()
	if err != nil {
		return ast.Subtask{}, err
	}
	if err := p.expectPunct(lex.PunctRParen); err != nil {
		return ast.Subtask{}, err
	}
	return ast.Subtask{Task: ast.Symbol{Name: first.Identifier, NamePos: first.Position}, Terms: terms}, nil
}

func (p *Parser) parseOrdering() (ast.TaskOrdering, diag.Position, error) {
	startTok, err := p.peek()
	if err != nil {
		return ast.TaskOrdering{}, diag.Position{}, err
	}
	pos := startTok.Position

	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return ast.TaskOrdering{}, pos, err
	}
	tok, err := p.peek()
	if err != nil {
		return ast.TaskOrdering{}, pos, err
	}
	if tok.Kind == lex.KindOperator && tok.Operator == lex.OpAnd {
		p.next()
		var pairs []ast.OrderPair
		for {
			tok, err := p.peek()
			if err != nil {
				return ast.TaskOrdering{}, pos, err
			}
			if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
				p.next()
				return ast.TaskOrdering{Kind: ast.OrderingPartial, Pairs: pairs}, pos, nil
			}
			if err := p.expectPunct(lex.PunctLParen); err != nil {
				return ast.TaskOrdering{}, pos, err
			}
			if err := p.expectOperator(lex.OpLessThan); err != nil {
				return ast.TaskOrdering{}, pos, err
			}
			before, err := p.parseTermSymbol()
			if err != nil {
				return ast.TaskOrdering{}, pos, err
			}
			after, err := p.parseTermSymbol()
			if err != nil {
				return ast.TaskOrdering{}, pos, err
			}
			if err := p.expectPunct(lex.PunctRParen); err != nil {
				return ast.TaskOrdering{}, pos, err
			}
			pairs = append(pairs, ast.OrderPair{Before: before, After: after})
		}
	}
	if err := p.expectOperator(lex.OpLessThan); err != nil {
		return ast.TaskOrdering{}, pos, err
	}
	var terms []ast.Symbol
	for {
		tok, err := p.peek()
		if err != nil {
			return ast.TaskOrdering{}, pos, err
		}
		if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
			p.next()
			break
		}
		t, err := p.parseTermSymbol()
		if err != nil {
			return ast.TaskOrdering{}, pos, err
		}
		terms = append(terms, t)
	}
	var pairs []ast.OrderPair
	for i := 0; i+1 < len(terms); i++ {
		pairs = append(pairs, ast.OrderPair{Before: terms[i], After: terms[i+1]})
	}
	return ast.TaskOrdering{Kind: ast.OrderingPartial, Pairs: pairs}, pos, nil
}

func (p *Parser) parseConstraints() ([]ast.Constraint, error) {
	if err := p.expectPunct(lex.PunctLParen); err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == lex.KindOperator && tok.Operator == lex.OpAnd {
		p.next()
		var list []ast.Constraint
		for {
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Kind == lex.KindPunctuator && tok.Punctuator == lex.PunctRParen {
				p.next()
				return list, nil
			}
			if err := p.expectPunct(lex.PunctLParen); err != nil {
				return nil, err
			}
			c, err := p.parseConstraintClauseBody()
			if err != nil {
				return nil, err
			}
			list = append(list, c)
		}
	}
	c, err := p.parseConstraintClauseBody()
	if err != nil {
		return nil, err
	}
	return []ast.Constraint{c}, nil
}

// parseConstraintClauseBody assumes the clause's own leading '(' has
// already been consumed.
func (p *Parser) parseConstraintClauseBody() (ast.Constraint, error) {
	tok, err := p.next()
	if err != nil {
		return ast.Constraint{}, err
	}
	if tok.Kind != lex.KindOperator {
		return ast.Constraint{}, p.syntaxErr("'=' or 'not'", tok)
	}
	switch tok.Operator {
	case lex.OpEqual:
		a, err := p.parseTermSymbol()
		if err != nil {
			return ast.Constraint{}, err
		}
		b, err := p.parseTermSymbol()
		if err != nil {
			return ast.Constraint{}, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return ast.Constraint{}, err
		}
		return ast.Constraint{Kind: ast.ConstraintEqual, A: a, B: b}, nil
	case lex.OpNot:
		if err := p.expectPunct(lex.PunctLParen); err != nil {
			return ast.Constraint{}, err
		}
		if err := p.expectOperator(lex.OpEqual); err != nil {
			return ast.Constraint{}, err
		}
		a, err := p.parseTermSymbol()
		if err != nil {
			return ast.Constraint{}, err
		}
		b, err := p.parseTermSymbol()
		if err != nil {
			return ast.Constraint{}, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return ast.Constraint{}, err
		}
		if err := p.expectPunct(lex.PunctRParen); err != nil {
			return ast.Constraint{}, err
		}
		return ast.Constraint{Kind: ast.ConstraintNotEqual, A: a, B: b}, nil
	default:
		return ast.Constraint{}, p.syntaxErr("'=' or 'not'", tok)
	}
}

// --- token helpers ---

func (p *Parser) next() (lex.Token, error) { return p.lx.GetToken() }
func (p *Parser) peek() (lex.Token, error) { return p.lx.Lookahead() }

func (p *Parser) expectPunct(punct lex.Punctuator) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != lex.KindPunctuator || tok.Punctuator != punct {
		return p.syntaxErr("'"+punct.String()+"'", tok)
	}
	return nil
}

func (p *Parser) expectKeyword(kw lex.Keyword) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != lex.KindKeyword || tok.Keyword != kw {
		return p.syntaxErr(kw.String(), tok)
	}
	return nil
}

func (p *Parser) expectOperator(op lex.Operator) error {
	tok, err := p.next()
	if err != nil {
		return err
	}
	if tok.Kind != lex.KindOperator || tok.Operator != op {
		return p.syntaxErr("'"+op.String()+"'", tok)
	}
	return nil
}

func (p *Parser) expectIdentifier() (lex.Token, error) {
	tok, err := p.next()
	if err != nil {
		return lex.Token{}, err
	}
	if tok.Kind != lex.KindIdentifier {
		return lex.Token{}, p.syntaxErr("identifier", tok)
	}
	return tok, nil
}

func (p *Parser) syntaxErr(expected string, found lex.Token) error {
	pos := found.Position
	if found.Kind == lex.KindEOF {
		pos = p.lx.LastTokenPosition()
	}
	return diag.NewSyntacticError(diag.SyntacticError{
		Expected: expected,
		Found:    found.String(),
		Position: pos,
	}, p.src)
}
