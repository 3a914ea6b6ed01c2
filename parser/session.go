package parser

import (
	"strings"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/token"
)

// parseSet parses `SET name = expr` (spec.md §4.4 "Session statements").
func (p *Parser) parseSet() (ast.Command, error) {
	p.advance() // consume SET
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.PunctuationKind, token.Eq) {
		p.advance()
	} else if err := p.expectKeyword(token.TO); err != nil {
		return nil, err
	}
	val, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.Set{Name: name.Value, Value: val}, nil
}

// parseShow parses `SHOW name`.
func (p *Parser) parseShow() (ast.Command, error) {
	p.advance() // consume SHOW
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.Show{Name: name.Value}, nil
}

// parseExplain parses `EXPLAIN [ANALYZE | PLAN FOR] command`.
func (p *Parser) parseExplain() (ast.Command, error) {
	p.advance() // consume EXPLAIN
	analyze := false
	switch {
	case p.curIsKeyword(token.ANALYZE):
		p.advance()
		analyze = true
	case p.curIsKeyword(token.PLAN):
		p.advance()
		if err := p.expectKeyword(token.FOR); err != nil {
			return nil, err
		}
	}
	target, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	return &ast.Explain{Analyze: analyze, Target: target}, nil
}

// parseTransactionControl parses BEGIN/COMMIT/ROLLBACK/SAVEPOINT/RELEASE
// statements (spec.md §4.4 "Session statements").
func (p *Parser) parseTransactionControl() (ast.Command, error) {
	switch {
	case p.curIsKeyword(token.BEGIN):
		p.advance()
		if p.curIsKeyword(token.TRANSACTION) {
			p.advance()
		}
		return &ast.TransactionControl{Kind: ast.TxnBegin}, nil
	case p.curIsKeyword(token.COMMIT):
		p.advance()
		return &ast.TransactionControl{Kind: ast.TxnCommit}, nil
	case p.curIsKeyword(token.ROLLBACK):
		p.advance()
		if p.curIsKeyword(token.TO) {
			p.advance()
			if p.curIsKeyword(token.SAVEPOINT) {
				p.advance()
			}
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			return &ast.TransactionControl{Kind: ast.TxnRollbackToSavepoint, SavepointName: name}, nil
		}
		return &ast.TransactionControl{Kind: ast.TxnRollback}, nil
	case p.curIsKeyword(token.SAVEPOINT):
		p.advance()
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.TransactionControl{Kind: ast.TxnSavepoint, SavepointName: name}, nil
	case p.curIsKeyword(token.RELEASE):
		p.advance()
		if p.curIsKeyword(token.SAVEPOINT) {
			p.advance()
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.TransactionControl{Kind: ast.TxnReleaseSavepoint, SavepointName: name}, nil
	default:
		p.expected = append(p.expected, "BEGIN, COMMIT, ROLLBACK, SAVEPOINT, RELEASE SAVEPOINT")
		return nil, p.syntaxErrorExpected()
	}
}

// parseCall parses `CALL procedure(args)`.
func (p *Parser) parseCall() (ast.Command, error) {
	p.advance() // consume CALL
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if !p.curIs(token.PunctuationKind, token.LParen) {
		p.expected = append(p.expected, "(")
		return nil, p.syntaxErrorExpected()
	}
	expr, err := p.parseFuncCallTail(schema, name)
	if err != nil {
		return nil, err
	}
	return &ast.Call{Proc: expr.(*ast.FuncCall)}, nil
}

// parsePrepareStmt parses `PREPARE name [(types)] AS sql_text`. The body is
// kept as raw SQL text rather than eagerly parsed, mirroring how the
// teacher's own prepared-statement cache defers compilation.
func (p *Parser) parsePrepareStmt() (ast.Command, error) {
	p.advance() // consume PREPARE
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	ps := &ast.PrepareStmt{Name: name}
	if p.curIs(token.PunctuationKind, token.LParen) {
		p.advance()
		for !p.curIs(token.PunctuationKind, token.RParen) {
			typ, err := p.parseTypeDescriptor()
			if err != nil {
				return nil, err
			}
			ps.Types = append(ps.Types, typ)
			if p.curIs(token.PunctuationKind, token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}
	ps.SQL = p.restOfStatementText()
	return ps, nil
}

// restOfStatementText reconstructs the raw source text from the current
// token to the end of the statement (the next top-level `;` or end of
// input), used for PREPARE bodies that are stored rather than parsed
// immediately.
func (p *Parser) restOfStatementText() string {
	start := p.cur().Start
	end := start
	for !p.atEnd() && !p.curIs(token.PunctuationKind, token.Semi) {
		end = p.cur().End
		p.advance()
	}
	if end <= start {
		return ""
	}
	runes := []rune(p.sql)
	if end > len(runes) {
		end = len(runes)
	}
	return strings.TrimSpace(string(runes[start:end]))
}

// parseExecuteStmt parses `EXECUTE name [(args)]`.
func (p *Parser) parseExecuteStmt() (ast.Command, error) {
	p.advance() // consume EXECUTE or EXEC
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	es := &ast.ExecuteStmt{Name: name}
	if p.curIs(token.PunctuationKind, token.LParen) {
		args, err := p.parseExpressionParenList()
		if err != nil {
			return nil, err
		}
		es.Args = args
	}
	return es, nil
}

// parseDeallocate parses `DEALLOCATE [PREPARE] name`.
func (p *Parser) parseDeallocate() (ast.Command, error) {
	p.advance() // consume DEALLOCATE
	if p.curIsKeyword(token.PREPARE) {
		p.advance()
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.Deallocate{Name: name}, nil
}

// parseUse parses `USE schema`, a session current-schema switch.
func (p *Parser) parseUse() (ast.Command, error) {
	p.advance() // consume USE
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.Use{Schema: name}, nil
}

// parseHelp parses `HELP [topic]`, accepting an arbitrary trailing word or
// quoted string as the topic.
func (p *Parser) parseHelp() (ast.Command, error) {
	p.advance() // consume HELP
	h := &ast.Help{}
	if p.cur().Kind == token.Identifier {
		h.Topic = p.cur().Text
		p.advance()
	} else if p.cur().Kind == token.CharacterStringLiteral {
		h.Topic, _ = p.cur().Value.(string)
		p.advance()
	}
	return h, nil
}

// parseCheckpoint parses `CHECKPOINT [SYNC]`.
func (p *Parser) parseCheckpoint() (ast.Command, error) {
	p.advance() // consume CHECKPOINT
	c := &ast.Checkpoint{}
	if p.curIsKeyword(token.SYNC) {
		p.advance()
		c.Sync = true
	}
	return c, nil
}

// parseShutdown parses `SHUTDOWN [IMMEDIATELY|COMPACT|DEFRAG]`.
func (p *Parser) parseShutdown() (ast.Command, error) {
	p.advance() // consume SHUTDOWN
	s := &ast.Shutdown{Mode: ast.ShutdownNormal}
	switch {
	case p.curIsKeyword(token.IMMEDIATELY):
		p.advance()
		s.Mode = ast.ShutdownImmediately
	case p.curIsKeyword(token.COMPACT):
		p.advance()
		s.Mode = ast.ShutdownCompact
	case p.curIsKeyword(token.DEFRAG):
		p.advance()
		s.Mode = ast.ShutdownDefrag
	}
	return s, nil
}

// parseRunScript parses `RUNSCRIPT FROM expr` and `SCRIPT [TO expr]` (spec.md
// §4.4 "Session statements").
func (p *Parser) parseRunScript() (ast.Command, error) {
	isDump := p.curIsKeyword(token.SCRIPT)
	p.advance() // consume RUNSCRIPT or SCRIPT
	rs := &ast.RunScript{IsDump: isDump}
	switch {
	case p.curIsKeyword(token.FROM):
		p.advance()
		src, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		rs.Source = src
	case p.curIsKeyword(token.TO):
		p.advance()
		src, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		rs.Source = src
	}
	return rs, nil
}

// parseTruncate parses `TRUNCATE TABLE name`.
func (p *Parser) parseTruncate() (ast.Command, error) {
	p.advance() // consume TRUNCATE
	if p.curIsKeyword(token.TABLE) {
		p.advance()
	}
	table, err := p.parseTableRefName()
	if err != nil {
		return nil, err
	}
	return &ast.Truncate{Table: table}, nil
}

// parseCommentOn parses `COMMENT ON {TABLE|COLUMN|VIEW|...} target [.col] IS
// 'text'`.
func (p *Parser) parseCommentOn() (ast.Command, error) {
	p.advance() // consume COMMENT
	if err := p.expectKeyword(token.ON); err != nil {
		return nil, err
	}
	kindTok := p.cur()
	if kindTok.Kind != token.KeywordKind && kindTok.Kind != token.Identifier {
		p.expected = append(p.expected, "TABLE, COLUMN, VIEW, SCHEMA, INDEX, SEQUENCE, DOMAIN, TRIGGER, USER, ROLE, CONSTANT, ALIAS")
		return nil, p.syntaxErrorExpected()
	}
	objectKind := strings.ToUpper(kindTok.Text)
	if kindTok.Kind == token.KeywordKind {
		objectKind = kindTok.Keyword.String()
	}
	p.advance()

	co := &ast.CommentOn{ObjectKind: objectKind}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	_ = schema
	co.Target = name
	if objectKind == "COLUMN" && p.curIs(token.PunctuationKind, token.Dot) {
		p.advance()
		col, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		co.TargetCol = col
	}

	if err := p.expectKeyword(token.IS); err != nil {
		return nil, err
	}
	t := p.cur()
	if t.Kind != token.CharacterStringLiteral {
		p.expected = append(p.expected, "string literal")
		return nil, p.syntaxErrorExpected()
	}
	co.Text, _ = t.Value.(string)
	p.advance()
	return co, nil
}

// parseAnalyze parses `ANALYZE [TABLE name] [SAMPLE_SIZE n]`.
func (p *Parser) parseAnalyze() (ast.Command, error) {
	p.advance() // consume ANALYZE
	an := &ast.Analyze{}
	if p.curIsKeyword(token.TABLE) {
		p.advance()
		schema, name, err := p.parseQualifiedName()
		if err != nil {
			return nil, err
		}
		an.Table = &ast.TableRef{Schema: schema, Name: name}
	}
	if p.curIsWord("SAMPLE_SIZE") {
		p.advance()
		n, err := p.parseExpression(precComparison)
		if err != nil {
			return nil, err
		}
		an.SampleSize = n
	}
	return an, nil
}
