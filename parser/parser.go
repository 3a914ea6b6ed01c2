// Package parser implements the recursive-descent, operator-precedence SQL
// parser: tokens in, ast.Command out. A Parser instance is built once per
// Prepare call, carries dialect flags and a resolver bound to the calling
// session, and is never reused across statements (mirrors the teacher's
// per-call Parser construction rather than a long-lived shared instance).
package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/pkg/errors"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/catalog"
	"github.com/vippsas/sqlfront/dialect"
	"github.com/vippsas/sqlfront/lexer"
	"github.com/vippsas/sqlfront/resolver"
	"github.com/vippsas/sqlfront/sqlerr"
	"github.com/vippsas/sqlfront/token"
)

// Precedence levels for the expression parser, lowest to highest binding,
// numbered consecutively by iota.
const (
	_ int = iota
	precLowest
	precOr        // OR
	precAnd       // AND
	precNot       // NOT (prefix)
	precComparison // = <> < <= > >= IS [NOT] LIKE [NOT] BETWEEN [NOT] IN
	precConcat    // ||
	precAdditive  // + -
	precMultiplicative // * / %
	precUnary     // unary - + ~
	precPostfix   // :: [] . (field access, cast, array index)
)

// Prepared is the result of a successful Prepare call: the bound command
// tree plus the bookkeeping the caller needs to execute it (spec.md §3
// "Prepared command").
type Prepared struct {
	Command      ast.Command
	SQL          string
	ParamCount   int
	Recompile    bool // true when the tree calls a schema-qualified function the catalog reports as non-deterministic
	CTECleanups  []func() error
}

// Parser parses one SQL text under a fixed dialect and session.
type Parser struct {
	flags    dialect.Flags
	session  catalog.Session
	resolver *resolver.Resolver
	log      *logrus.Entry

	sql    string
	toks   []token.Token
	pos    int
	expected []string
	recompile bool
	cteCleanups []func() error
	// parseDomainConstraint is set while parsing a CREATE DOMAIN ... CHECK
	// expression so the bare VALUE keyword parses as the domain's
	// placeholder value (spec.md §4.2 "Domain references") instead of being
	// rejected as a syntax error.
	parseDomainConstraint bool

	prefixFns map[tokenKey]prefixParseFn
	infixFns  map[tokenKey]infixParseFn
}

type tokenKey struct {
	kind    token.Kind
	keyword token.Keyword
	punct   token.Punct
}

type prefixParseFn func(p *Parser) (ast.Expression, error)
type infixParseFn func(p *Parser, left ast.Expression) (ast.Expression, error)

// New builds a Parser over sql, bound to session. The tokenizer runs
// eagerly so syntax errors from illegal characters surface before any
// grammar production runs.
func New(sql string, session catalog.Session) (*Parser, error) {
	flags := session.Flags()
	toks, err := lexer.Tokenize(sql, flags)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	p := &Parser{
		flags:    flags,
		session:  session,
		resolver: resolver.New(session),
		log:      logrus.WithField("component", "parser"),
		sql:      sql,
		toks:     toks,
	}
	p.registerParseFns()
	return p, nil
}

// Prepare parses sql under session into a Prepared command. It is the main
// external entry point (spec.md §6 "Context").
func Prepare(sql string, session catalog.Session) (*Prepared, error) {
	p, err := New(sql, session)
	if err != nil {
		return nil, err
	}
	cmd, err := p.parseCommandList()
	if err != nil {
		return nil, p.wrapError(err)
	}
	return &Prepared{
		Command:     cmd,
		SQL:         sql,
		ParamCount:  p.resolver.Params().Count(),
		Recompile:   p.recompile,
		CTECleanups: p.cteCleanups,
	}, nil
}

// PrepareCommand parses a single statement (no `;`-separated script
// handling) and fails if more than one statement is present.
func PrepareCommand(sql string, session catalog.Session) (*Prepared, error) {
	p, err := New(sql, session)
	if err != nil {
		return nil, err
	}
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, p.wrapError(err)
	}
	for p.curIs(token.PunctuationKind, token.Semi) {
		p.advance()
	}
	if !p.atEnd() {
		return nil, p.wrapError(p.syntaxErrorExpected())
	}
	return &Prepared{
		Command:    cmd,
		SQL:        sql,
		ParamCount: p.resolver.Params().Count(),
		Recompile:  p.recompile,
	}, nil
}

// ParseExpression parses a single value expression, used by callers that
// need to evaluate a DEFAULT clause or similar fragment in isolation.
func ParseExpression(sql string, session catalog.Session) (ast.Expression, error) {
	p, err := New(sql, session)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, p.wrapError(err)
	}
	return expr, nil
}

// ParseDomainConstraintExpression parses the boolean expression of a CREATE
// DOMAIN ... CHECK clause, where the implicit VALUE keyword is bound as a
// column-less placeholder (spec.md §4.2 "Domain references").
func ParseDomainConstraintExpression(sql string, session catalog.Session) (ast.Expression, error) {
	p, err := New(sql, session)
	if err != nil {
		return nil, err
	}
	p.parseDomainConstraint = true
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, p.wrapError(err)
	}
	return expr, nil
}

// ParseTableName parses a (possibly schema-qualified) table name fragment.
func ParseTableName(sql string, session catalog.Session) (*ast.TableRef, error) {
	p, err := New(sql, session)
	if err != nil {
		return nil, err
	}
	ref, err := p.parseTableRefName()
	if err != nil {
		return nil, p.wrapError(err)
	}
	return ref, nil
}

// ParseColumnList parses a parenthesized, comma-separated column name list.
func ParseColumnList(sql string, session catalog.Session) ([]*ast.Identifier, error) {
	p, err := New(sql, session)
	if err != nil {
		return nil, err
	}
	cols, err := p.parseIdentifierList()
	if err != nil {
		return nil, p.wrapError(err)
	}
	return cols, nil
}

func (p *Parser) wrapError(err error) error {
	var se *sqlerr.Error
	if errors.As(err, &se) {
		return se.WithSQL(p.sql)
	}
	return err
}

// -----------------------------------------------------------------------
// Token cursor
// -----------------------------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EndOfInput}
	}
	return p.toks[p.pos]
}

func (p *Parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return token.Token{Kind: token.EndOfInput}
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	p.expected = nil
	return t
}

func (p *Parser) atEnd() bool { return p.cur().Kind == token.EndOfInput }

func (p *Parser) curIs(kind token.Kind, punct token.Punct) bool {
	return p.cur().Kind == kind && p.cur().Punct == punct
}

func (p *Parser) curIsKeyword(kw token.Keyword) bool {
	return p.cur().Kind == token.KeywordKind && p.cur().Keyword == kw &&
		!p.session.IsNonKeyword(int(kw))
}

// curIsWord reports whether the current token is a plain (non-reserved)
// identifier spelled word, case-insensitively. Used for the handful of
// contextual keywords (TIME, type names, ...) that the lexer never reserves.
func (p *Parser) curIsWord(word string) bool {
	t := p.cur()
	return t.Kind == token.Identifier && strings.EqualFold(t.Text, word)
}

func (p *Parser) curIsAnyKeyword(kws ...token.Keyword) bool {
	for _, kw := range kws {
		if p.curIsKeyword(kw) {
			return true
		}
	}
	return false
}

func (p *Parser) expectPunct(punct token.Punct) error {
	if p.curIs(token.PunctuationKind, punct) {
		p.advance()
		return nil
	}
	p.expected = append(p.expected, punct.String())
	return p.syntaxErrorExpected()
}

func (p *Parser) expectKeyword(kw token.Keyword) error {
	if p.curIsKeyword(kw) {
		p.advance()
		return nil
	}
	p.expected = append(p.expected, kw.String())
	return p.syntaxErrorExpected()
}

func (p *Parser) syntaxErrorExpected() error {
	if len(p.expected) == 0 {
		return sqlerr.Syntax(p.sql, p.cur().Start)
	}
	return sqlerr.SyntaxExpected(p.sql, p.cur().Start, append([]string(nil), p.expected...))
}

func (p *Parser) expectIdentifier() (*ast.Identifier, error) {
	t := p.cur()
	if t.Kind != token.Identifier {
		p.expected = append(p.expected, "identifier")
		return nil, p.syntaxErrorExpected()
	}
	p.advance()
	return &ast.Identifier{Lit: t.Text, Value: t.Value.(string), Quoted: t.Quoted}, nil
}

func (p *Parser) parseIdentifierList() ([]*ast.Identifier, error) {
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	var out []*ast.Identifier
	for {
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		out = append(out, id)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return out, nil
}

// parseQualifiedName reads `[schema.]name`. An unqualified name always
// yields a nil schema, so no schema from an earlier name in the statement
// carries over; the parser keeps no shared schema field. A leading `.` with
// no schema segment (`.name`) is a syntax error.
func (p *Parser) parseQualifiedName() (schema, name *ast.Identifier, err error) {
	first, err := p.expectIdentifier()
	if err != nil {
		return nil, nil, err
	}
	if p.curIs(token.PunctuationKind, token.Dot) {
		p.advance()
		second, err := p.expectIdentifier()
		if err != nil {
			return nil, nil, err
		}
		return first, second, nil
	}
	return nil, first, nil
}

func (p *Parser) parseTableRefName() (*ast.TableRef, error) {
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	ref := &ast.TableRef{Schema: schema, Name: name}
	if p.curIsKeyword(token.AS) {
		p.advance()
		alias, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		ref.Alias = alias
	} else if p.cur().Kind == token.Identifier {
		alias, _ := p.expectIdentifier()
		ref.Alias = alias
	}
	return ref, nil
}
