package parser

import "github.com/vippsas/sqlfront/token"
import "github.com/vippsas/sqlfront/ast"

// parseCommandList parses a `;`-separated script (spec.md §4.6
// "Multi-statement scripts"). A lone trailing `;` is accepted and
// contributes no command; a script with no statement at all (empty, or only
// `;` separators) yields a single NoOperation.
func (p *Parser) parseCommandList() (ast.Command, error) {
	var cmds []ast.Command
	for {
		for p.curIs(token.PunctuationKind, token.Semi) {
			p.advance()
		}
		if p.atEnd() {
			break
		}
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
		if p.curIs(token.PunctuationKind, token.Semi) {
			continue
		}
		if !p.atEnd() {
			return nil, p.syntaxErrorExpected()
		}
	}
	if len(cmds) == 0 {
		return &ast.NoOperation{}, nil
	}
	if len(cmds) == 1 {
		return cmds[0], nil
	}
	return &ast.CommandList{Commands: cmds}, nil
}

// parseCommand dispatches to one statement-kind parser based on the leading
// keyword, mirroring the teacher's top-level statement switch.
func (p *Parser) parseCommand() (ast.Command, error) {
	if p.atEnd() || p.curIs(token.PunctuationKind, token.Semi) {
		return &ast.NoOperation{}, nil
	}

	switch {
	case p.curIsKeyword(token.WITH):
		return p.parseWithPrefixedCommand()
	case p.curIsKeyword(token.SELECT):
		return p.parseSelectOrSetOp()
	case p.curIsKeyword(token.VALUES):
		return p.parseValuesOrSetOp()
	case p.curIsKeyword(token.INSERT):
		return p.parseInsert(nil)
	case p.curIsKeyword(token.UPDATE):
		return p.parseUpdate(nil)
	case p.curIsKeyword(token.DELETE):
		return p.parseDelete(nil)
	case p.curIsKeyword(token.MERGE):
		return p.parseMerge(nil)
	case p.curIsKeyword(token.CREATE):
		return p.parseCreate()
	case p.curIsKeyword(token.ALTER):
		return p.parseAlterTable()
	case p.curIsKeyword(token.DROP):
		return p.parseDrop()
	case p.curIsKeyword(token.SET):
		return p.parseSet()
	case p.curIsKeyword(token.SHOW):
		return p.parseShow()
	case p.curIsKeyword(token.EXPLAIN):
		return p.parseExplain()
	case p.curIsKeyword(token.BEGIN) || p.curIsKeyword(token.COMMIT) ||
		p.curIsKeyword(token.ROLLBACK) || p.curIsKeyword(token.SAVEPOINT) ||
		p.curIsKeyword(token.RELEASE):
		return p.parseTransactionControl()
	case p.curIsKeyword(token.CALL):
		return p.parseCall()
	case p.curIsKeyword(token.PREPARE):
		return p.parsePrepareStmt()
	case p.curIsKeyword(token.EXECUTE) || p.curIsKeyword(token.EXEC):
		return p.parseExecuteStmt()
	case p.curIsKeyword(token.DEALLOCATE):
		return p.parseDeallocate()
	case p.curIsKeyword(token.TRUNCATE):
		return p.parseTruncate()
	case p.curIsKeyword(token.COMMENT):
		return p.parseCommentOn()
	case p.curIsKeyword(token.USE):
		return p.parseUse()
	case p.curIsKeyword(token.HELP):
		return p.parseHelp()
	case p.curIsKeyword(token.CHECKPOINT):
		return p.parseCheckpoint()
	case p.curIsKeyword(token.SHUTDOWN):
		return p.parseShutdown()
	case p.curIsKeyword(token.RUNSCRIPT) || p.curIsKeyword(token.SCRIPT):
		return p.parseRunScript()
	case p.curIsKeyword(token.ANALYZE):
		return p.parseAnalyze()
	default:
		return nil, p.syntaxErrorExpected()
	}
}

func (p *Parser) parseWithPrefixedCommand() (ast.Command, error) {
	with, err := p.parseWithClause()
	if err != nil {
		return nil, err
	}
	switch {
	case p.curIsKeyword(token.SELECT):
		return p.parseSelectOrSetOpWith(with)
	case p.curIsKeyword(token.INSERT):
		return p.parseInsert(with)
	case p.curIsKeyword(token.UPDATE):
		return p.parseUpdate(with)
	case p.curIsKeyword(token.DELETE):
		return p.parseDelete(with)
	case p.curIsKeyword(token.MERGE):
		return p.parseMerge(with)
	default:
		return nil, p.syntaxErrorExpected()
	}
}
