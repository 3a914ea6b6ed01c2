package parser

import (
	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/sqlerr"
	"github.com/vippsas/sqlfront/token"
)

// registerParseFns allocates the prefix/infix dispatch maps once per Parser.
// The maps stay empty and are never consulted: expression parsing
// dispatches through the switches in parsePrefix and parseInfix.
func (p *Parser) registerParseFns() {
	p.prefixFns = map[tokenKey]prefixParseFn{}
	p.infixFns = map[tokenKey]infixParseFn{}
}

// parseExpression is the precedence-climbing entry point: it parses one
// prefix expression, then repeatedly folds in infix/postfix operators whose
// precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := p.currentInfixPrecedence()
		if !ok || prec <= minPrec {
			break
		}
		left, err = p.parseInfix(left, prec)
		if err != nil {
			return nil, err
		}
	}
	return foldNary(left), nil
}

// foldNary collapses a nested chain (left-nested as parseExpression builds
// it, or right-nested) of same-operator OR/AND/||
// BinaryExpr nodes into a single NaryExpr, matching the N-ary folding the
// original performs for these three operators (spec.md §4.3 levels 1, 2, 5;
// §8 "Folding (A OR B OR C) ... produce the N-ary variant").
func foldNary(e ast.Expression) ast.Expression {
	bin, ok := e.(*ast.BinaryExpr)
	if !ok {
		return e
	}
	if bin.Operator != "OR" && bin.Operator != "AND" && bin.Operator != "||" {
		return e
	}
	var operands []ast.Expression
	var collect func(ast.Expression)
	collect = func(x ast.Expression) {
		if b, ok := x.(*ast.BinaryExpr); ok && b.Operator == bin.Operator {
			collect(b.Left)
			collect(b.Right)
			return
		}
		operands = append(operands, foldNary(x))
	}
	collect(bin)
	if len(operands) < 3 {
		return e
	}
	return &ast.NaryExpr{Lit: bin.Lit, Operator: bin.Operator, Operands: operands}
}

func (p *Parser) currentInfixPrecedence() (int, bool) {
	t := p.cur()
	switch {
	case p.curIsKeyword(token.OR):
		return precOr, true
	case p.curIsKeyword(token.AND):
		return precAnd, true
	case t.Kind == token.PunctuationKind:
		switch t.Punct {
		case token.Eq, token.NE, token.LT, token.LE, token.GT, token.GE:
			return precComparison, true
		case token.Concat:
			return precConcat, true
		case token.Plus, token.Minus:
			return precAdditive, true
		case token.Star, token.Slash, token.Percent:
			return precMultiplicative, true
		case token.DoubleColon:
			return precPostfix, true
		case token.LBracket, token.Dot:
			return precPostfix, true
		case token.AndAnd:
			return precComparison, true
		}
	case p.curIsAnyKeyword(token.LIKE, token.ILIKE, token.REGEXP, token.IN, token.BETWEEN, token.IS):
		return precComparison, true
	case p.curIsKeyword(token.NOT):
		// Lookahead past NOT for LIKE/ILIKE/REGEXP/IN/BETWEEN.
		if p.peekIsAnyKeyword(1, token.LIKE, token.ILIKE, token.REGEXP, token.IN, token.BETWEEN) {
			return precComparison, true
		}
	case p.curIsKeyword(token.AT):
		return precPostfix, true
	}
	return 0, false
}

func (p *Parser) peekIsAnyKeyword(offset int, kws ...token.Keyword) bool {
	t := p.peek(offset)
	if t.Kind != token.KeywordKind {
		return false
	}
	for _, kw := range kws {
		if t.Keyword == kw {
			return true
		}
	}
	return false
}

func (p *Parser) parsePrefix() (ast.Expression, error) {
	t := p.cur()

	switch {
	case p.parseDomainConstraint && p.curIsKeyword(token.VALUE):
		p.advance()
		return &ast.DomainValueRef{Lit: t.Text}, nil

	case t.Kind == token.Identifier:
		return p.parseIdentifierOrCall()

	case t.Kind == token.IntegerLiteral || t.Kind == token.BigintLiteral ||
		t.Kind == token.ExactNumericLiteral || t.Kind == token.ApproximateNumericLiteral:
		p.advance()
		return &ast.Literal{Lit: t.Text, Value: t.Value}, nil

	case t.Kind == token.CharacterStringLiteral:
		p.advance()
		return &ast.Literal{Lit: t.Text, Value: t.Value}, nil

	case t.Kind == token.BinaryStringLiteral:
		p.advance()
		return &ast.Literal{Lit: t.Text, Value: t.Value}, nil

	case t.Kind == token.Parameter:
		p.advance()
		idx, err := p.resolver.Params().Track(t.ParamIndex, p.flags.MaxParameterIndex)
		if err != nil {
			return nil, err
		}
		return &ast.ParameterRef{Lit: t.Text, Index: idx}, nil

	case t.Kind == token.PunctuationKind && t.Punct == token.At:
		p.advance()
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.VariableRef{Lit: "@" + name.Value, Name: name.Value}, nil

	case t.Kind == token.PunctuationKind && t.Punct == token.LParen:
		return p.parseParenExpression()

	case p.curIsKeyword(token.NULL):
		p.advance()
		return &ast.Literal{Lit: t.Text, Value: nil}, nil

	case p.curIsKeyword(token.TRUE):
		p.advance()
		return &ast.Literal{Lit: t.Text, Value: true}, nil

	case p.curIsKeyword(token.FALSE):
		p.advance()
		return &ast.Literal{Lit: t.Text, Value: false}, nil

	case p.curIsKeyword(token.NOT):
		p.advance()
		operand, err := p.parseExpression(precNot)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Lit: "NOT", Operator: "NOT", Operand: operand}, nil

	case t.Kind == token.PunctuationKind && (t.Punct == token.Minus || t.Punct == token.Plus || t.Punct == token.Tilde):
		p.advance()
		operand, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Lit: t.Text, Operator: t.Text, Operand: operand}, nil

	case p.curIsKeyword(token.CASE):
		return p.parseCaseExpression()

	case p.curIsKeyword(token.CAST):
		return p.parseCastExpression()

	case p.curIsKeyword(token.EXISTS):
		return p.parseExistsExpression(false)

	case p.curIsKeyword(token.UNIQUE):
		p.advance()
		sub, err := p.parseSubqueryParen()
		if err != nil {
			return nil, err
		}
		return &ast.UniqueExpr{Subquery: sub}, nil

	case p.curIsKeyword(token.ARRAY):
		return p.parseArrayConstructor()

	case p.curIsKeyword(token.ROW):
		return p.parseRowConstructor()

	case p.curIsKeyword(token.CURRENT_DATE), p.curIsKeyword(token.CURRENT_TIME),
		p.curIsKeyword(token.CURRENT_TIMESTAMP), p.curIsKeyword(token.CURRENT_USER):
		p.advance()
		return &ast.CurrentValueSpec{Lit: t.Text, Name: t.Keyword.String()}, nil

	case p.curIsKeyword(token.NEXT) || p.curIsKeyword(token.CURRENT):
		return p.parseSequenceValue()

	default:
		p.expected = append(p.expected, "expression")
		return nil, p.syntaxErrorExpected()
	}
}

func (p *Parser) parseParenExpression() (ast.Expression, error) {
	p.advance() // consume (
	if p.curIsKeyword(token.SELECT) || p.curIsKeyword(token.VALUES) || p.curIsKeyword(token.WITH) {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
		return &ast.Subquery{Query: cmd}, nil
	}
	first, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.curIs(token.PunctuationKind, token.Comma) {
		fields := []ast.Expression{first}
		for p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			fields = append(fields, e)
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
		return &ast.RowConstructor{Fields: fields}, nil
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return first, nil
}

func (p *Parser) parseSubqueryParen() (*ast.Subquery, error) {
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return &ast.Subquery{Query: cmd}, nil
}

func (p *Parser) parseExistsExpression(not bool) (ast.Expression, error) {
	p.advance() // consume EXISTS
	sub, err := p.parseSubqueryParen()
	if err != nil {
		return nil, err
	}
	return &ast.ExistsExpr{Not: not, Subquery: sub}, nil
}

func (p *Parser) parseSequenceValue() (ast.Expression, error) {
	next := p.curIsKeyword(token.NEXT)
	p.advance()
	if err := p.expectKeyword(token.VALUE); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.FOR); err != nil {
		return nil, err
	}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	seqVal := &ast.SequenceValue{Schema: schema, Sequence: name, Next: next}
	seq, err := p.resolver.ResolveSequence(seqVal)
	if err != nil {
		return nil, err
	}
	seqVal.ResolvedSchema = seq.Schema()
	return seqVal, nil
}

func (p *Parser) parseArrayConstructor() (ast.Expression, error) {
	p.advance() // consume ARRAY
	if p.curIs(token.PunctuationKind, token.LParen) {
		sub, err := p.parseSubqueryParen()
		if err != nil {
			return nil, err
		}
		return &ast.ArrayConstructor{Subquery: sub}, nil
	}
	if err := p.expectPunct(token.LBracket); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	if !p.curIs(token.PunctuationKind, token.RBracket) {
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.curIs(token.PunctuationKind, token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(token.RBracket); err != nil {
		return nil, err
	}
	return &ast.ArrayConstructor{Elements: elems}, nil
}

func (p *Parser) parseRowConstructor() (ast.Expression, error) {
	p.advance() // consume ROW
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	var fields []ast.Expression
	if !p.curIs(token.PunctuationKind, token.RParen) {
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			fields = append(fields, e)
			if p.curIs(token.PunctuationKind, token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return &ast.RowConstructor{Fields: fields}, nil
}

func (p *Parser) parseCaseExpression() (ast.Expression, error) {
	p.advance() // consume CASE
	ce := &ast.CaseExpr{}
	if !p.curIsKeyword(token.WHEN) {
		operand, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		ce.Operand = operand
	}
	for p.curIsKeyword(token.WHEN) {
		p.advance()
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(token.THEN); err != nil {
			return nil, err
		}
		result, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		ce.Whens = append(ce.Whens, ast.WhenClause{Condition: cond, Result: result})
	}
	if len(ce.Whens) == 0 {
		p.expected = append(p.expected, "WHEN")
		return nil, p.syntaxErrorExpected()
	}
	if p.curIsKeyword(token.ELSE) {
		p.advance()
		elseExpr, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		ce.Else = elseExpr
	}
	if err := p.expectKeyword(token.END); err != nil {
		return nil, err
	}
	return ce, nil
}

func (p *Parser) parseCastExpression() (ast.Expression, error) {
	p.advance() // consume CAST
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeDescriptor()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return &ast.Cast{Operand: operand, Type: typ}, nil
}

// parseIdentifierOrCall handles the large family of expressions that start
// with a bare identifier: a column reference, a schema-qualified column, or
// a function call (with an optional FILTER/OVER suffix).
func (p *Parser) parseIdentifierOrCall() (ast.Expression, error) {
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	var schema, table *ast.Identifier
	name := first
	for p.curIs(token.PunctuationKind, token.Dot) {
		p.advance()
		if p.curIs(token.PunctuationKind, token.Star) {
			p.advance()
			return ast.Expression(&ast.ColumnRef{Schema: schema, Table: name, Name: &ast.Identifier{Value: "*"}}), nil
		}
		next, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		schema, table, name = table, name, next
	}

	if p.curIs(token.PunctuationKind, token.LParen) {
		return p.parseFuncCallTail(table, name)
	}

	return &ast.ColumnRef{Schema: schema, Table: table, Name: name}, nil
}

func (p *Parser) parseFuncCallTail(schema, name *ast.Identifier) (ast.Expression, error) {
	p.advance() // consume (
	call := &ast.FuncCall{Schema: schema, Name: name}
	if p.curIs(token.PunctuationKind, token.Star) {
		p.advance()
		call.Star = true
	} else if !p.curIs(token.PunctuationKind, token.RParen) {
		if p.curIsKeyword(token.DISTINCT) {
			p.advance()
			call.Distinct = true
		}
		for {
			arg, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if p.curIs(token.PunctuationKind, token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}

	if p.curIsKeyword(token.FILTER) {
		p.advance()
		if err := p.expectPunct(token.LParen); err != nil {
			return nil, err
		}
		if err := p.expectKeyword(token.WHERE); err != nil {
			return nil, err
		}
		filter, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		call.Filter = filter
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
	}

	if p.curIsKeyword(token.OVER) {
		p.advance()
		win, err := p.parseWindowSpec()
		if err != nil {
			return nil, err
		}
		call.Window = win
	}

	// Only an explicitly schema-qualified call is resolved against the
	// catalog; an unqualified name is presumed to be a builtin, aggregate,
	// or window function dispatched outside it (spec.md §4.3 "the actual
	// invocation is out of scope").
	if call.Schema != nil {
		fn, err := p.resolver.ResolveFunction(call)
		if err != nil {
			return nil, err
		}
		call.ResolvedSchema = fn.Schema()
		if !fn.Deterministic() {
			p.recompile = true
		}
	}

	return call, nil
}

func (p *Parser) parseInfix(left ast.Expression, prec int) (ast.Expression, error) {
	t := p.cur()

	switch {
	case p.curIsKeyword(token.OR):
		p.advance()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Operator: "OR", Left: left, Right: right}, nil

	case p.curIsKeyword(token.AND):
		p.advance()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Operator: "AND", Left: left, Right: right}, nil

	case p.curIsKeyword(token.BETWEEN):
		return p.parseBetween(left, false)

	case p.curIsKeyword(token.IN):
		return p.parseIn(left, false)

	case p.curIsKeyword(token.LIKE):
		return p.parseLike(left, false, ast.LikeExact)
	case p.curIsKeyword(token.ILIKE):
		return p.parseLike(left, false, ast.LikeInsensitive)
	case p.curIsKeyword(token.REGEXP):
		return p.parseLike(left, false, ast.LikeRegexp)

	case p.curIsKeyword(token.NOT):
		p.advance()
		switch {
		case p.curIsKeyword(token.BETWEEN):
			return p.parseBetween(left, true)
		case p.curIsKeyword(token.IN):
			return p.parseIn(left, true)
		case p.curIsKeyword(token.LIKE):
			return p.parseLike(left, true, ast.LikeExact)
		case p.curIsKeyword(token.ILIKE):
			return p.parseLike(left, true, ast.LikeInsensitive)
		case p.curIsKeyword(token.REGEXP):
			return p.parseLike(left, true, ast.LikeRegexp)
		}
		p.expected = append(p.expected, "BETWEEN, IN, LIKE")
		return nil, p.syntaxErrorExpected()

	case p.curIsKeyword(token.IS):
		return p.parseIs(left)

	case p.curIsKeyword(token.AT):
		return p.parseAtTimeZone(left)

	case t.Kind == token.PunctuationKind:
		switch t.Punct {
		case token.Eq, token.NE, token.LT, token.LE, token.GT, token.GE:
			return p.parseComparisonOrQuantified(left, t)
		case token.Concat:
			p.advance()
			right, err := p.parseExpression(prec)
			if err != nil {
				return nil, err
			}
			return &ast.BinaryExpr{Operator: "||", Left: left, Right: right}, nil
		case token.Plus, token.Minus, token.Star, token.Slash, token.Percent:
			p.advance()
			right, err := p.parseExpression(prec)
			if err != nil {
				return nil, err
			}
			return &ast.BinaryExpr{Operator: t.Text, Left: left, Right: right}, nil
		case token.AndAnd:
			p.advance()
			right, err := p.parseExpression(prec)
			if err != nil {
				return nil, err
			}
			return &ast.IntersectsExpr{Left: left, Right: right}, nil
		case token.DoubleColon:
			p.advance()
			typ, err := p.parseTypeDescriptor()
			if err != nil {
				return nil, err
			}
			return &ast.Cast{Operand: left, Type: typ, Postfix: true}, nil
		case token.LBracket:
			p.advance()
			idx, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(token.RBracket); err != nil {
				return nil, err
			}
			return &ast.ArrayElementRef{Operand: left, Index: idx}, nil
		case token.Dot:
			p.advance()
			field, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			return &ast.FieldDeref{Operand: left, FieldName: field}, nil
		}
	}
	return nil, sqlerr.Syntax(p.sql, t.Start)
}

func (p *Parser) parseComparisonOrQuantified(left ast.Expression, t token.Token) (ast.Expression, error) {
	p.advance()
	if p.curIsAnyKeyword(token.ANY, token.ALL, token.SOME) {
		quantifier := p.cur().Keyword.String()
		p.advance()
		sub, err := p.parseSubqueryParen()
		if err != nil {
			return nil, err
		}
		return &ast.QuantifiedComparison{Left: left, Operator: t.Text, Quantifier: quantifier, Subquery: sub}, nil
	}
	right, err := p.parseExpression(precComparison)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Operator: t.Text, Left: left, Right: right}, nil
}

func (p *Parser) parseBetween(left ast.Expression, not bool) (ast.Expression, error) {
	p.advance() // consume BETWEEN
	symmetric := false
	if p.curIsKeyword(token.SYMMETRIC) {
		p.advance()
		symmetric = true
	} else if p.curIsKeyword(token.ASYMMETRIC) {
		p.advance()
	}
	low, err := p.parseExpression(precComparison)
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.AND); err != nil {
		return nil, err
	}
	high, err := p.parseExpression(precComparison)
	if err != nil {
		return nil, err
	}
	return &ast.BetweenExpr{Operand: left, Not: not, Symmetric: symmetric, Low: low, High: high}, nil
}

func (p *Parser) parseIn(left ast.Expression, not bool) (ast.Expression, error) {
	p.advance() // consume IN
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	if p.curIsKeyword(token.SELECT) || p.curIsKeyword(token.VALUES) || p.curIsKeyword(token.WITH) {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
		return &ast.InExpr{Operand: left, Not: not, Subquery: &ast.Subquery{Query: cmd}}, nil
	}
	var list []ast.Expression
	for {
		e, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return &ast.InExpr{Operand: left, Not: not, List: list}, nil
}

func (p *Parser) parseLike(left ast.Expression, not bool, kind ast.LikeKind) (ast.Expression, error) {
	p.advance() // consume LIKE/ILIKE/REGEXP
	pattern, err := p.parseExpression(precComparison)
	if err != nil {
		return nil, err
	}
	le := &ast.LikeExpr{Operand: left, Not: not, Kind: kind, Pattern: pattern}
	if p.curIsKeyword(token.ESCAPE) {
		p.advance()
		esc, err := p.parseExpression(precComparison)
		if err != nil {
			return nil, err
		}
		le.Escape = esc
	}
	return le, nil
}

func (p *Parser) parseIs(left ast.Expression) (ast.Expression, error) {
	p.advance() // consume IS
	not := false
	if p.curIsKeyword(token.NOT) {
		p.advance()
		not = true
	}
	switch {
	case p.curIsKeyword(token.NULL):
		p.advance()
		kind := ast.IsNull
		if not {
			kind = ast.IsNotNull
		}
		return &ast.IsExpr{Operand: left, Kind: kind}, nil
	case p.curIsKeyword(token.TRUE):
		p.advance()
		kind := ast.IsTrue
		if not {
			kind = ast.IsNotTrue
		}
		return &ast.IsExpr{Operand: left, Kind: kind}, nil
	case p.curIsKeyword(token.FALSE):
		p.advance()
		kind := ast.IsFalse
		if not {
			kind = ast.IsNotFalse
		}
		return &ast.IsExpr{Operand: left, Kind: kind}, nil
	case p.curIsKeyword(token.UNKNOWN):
		p.advance()
		kind := ast.IsUnknown
		if not {
			kind = ast.IsNotUnknown
		}
		return &ast.IsExpr{Operand: left, Kind: kind}, nil
	case p.curIsKeyword(token.DISTINCT):
		p.advance()
		if err := p.expectKeyword(token.FROM); err != nil {
			return nil, err
		}
		other, err := p.parseExpression(precComparison)
		if err != nil {
			return nil, err
		}
		kind := ast.IsDistinctFrom
		if not {
			kind = ast.IsNotDistinctFrom
		}
		return &ast.IsExpr{Operand: left, Kind: kind, Other: other}, nil
	}
	p.expected = append(p.expected, "NULL, TRUE, FALSE, UNKNOWN, DISTINCT")
	return nil, p.syntaxErrorExpected()
}

func (p *Parser) parseAtTimeZone(left ast.Expression) (ast.Expression, error) {
	p.advance() // consume AT
	if p.curIsKeyword(token.LOCAL) {
		p.advance()
		return &ast.AtTimeZone{Operand: left, AtLocal: true}, nil
	}
	// TIME is not a reserved word (it doubles as an unquoted identifier
	// outside type/interval position), so it is matched on spelling here
	// rather than through the keyword table.
	if !p.curIsWord("TIME") {
		p.expected = append(p.expected, "TIME, LOCAL")
		return nil, p.syntaxErrorExpected()
	}
	p.advance()
	if err := p.expectKeyword(token.ZONE); err != nil {
		return nil, err
	}
	zone, err := p.parseExpression(precPostfix)
	if err != nil {
		return nil, err
	}
	return &ast.AtTimeZone{Operand: left, Zone: zone}, nil
}
