package parser

import (
	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/token"
)

func (p *Parser) parseInsert(with *ast.With) (ast.Command, error) {
	p.advance() // consume INSERT
	if err := p.expectKeyword(token.INTO); err != nil {
		return nil, err
	}
	table, err := p.parseTableRefName()
	if err != nil {
		return nil, err
	}
	ins := &ast.Insert{With: with, Table: table}

	if p.curIs(token.PunctuationKind, token.LParen) {
		cols, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		ins.Columns = cols
	}

	switch {
	case p.curIsKeyword(token.DEFAULT):
		p.advance()
		if err := p.expectKeyword(token.VALUES); err != nil {
			return nil, err
		}
		ins.DefaultVals = true
	case p.curIsKeyword(token.VALUES):
		rows, err := p.parseInsertValuesRows()
		if err != nil {
			return nil, err
		}
		ins.Values = rows
	default:
		query, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		ins.Query = query
	}

	if p.curIsKeyword(token.ON) {
		if err := p.parseOnConflict(); err != nil {
			return nil, err
		}
	}

	if p.curIsKeyword(token.RETURNING) {
		p.advance()
		items, err := p.parseSelectItemList()
		if err != nil {
			return nil, err
		}
		ins.Returning = items
	}

	return ins, nil
}

func (p *Parser) parseInsertValuesRows() ([][]ast.Expression, error) {
	p.advance() // consume VALUES
	var rows [][]ast.Expression
	for {
		row, err := p.parseExpressionParenList()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return rows, nil
}

// parseOnConflict accepts (and discards the detail of) an `ON CONFLICT
// [(cols)] DO NOTHING|UPDATE SET ...` upsert clause; full conflict-target
// tracking belongs to the storage layer, not this front-end (spec.md §1).
func (p *Parser) parseOnConflict() error {
	p.advance() // consume ON
	if err := p.expectKeyword(token.CONFLICT); err != nil {
		return err
	}
	if p.curIs(token.PunctuationKind, token.LParen) {
		if _, err := p.parseIdentifierList(); err != nil {
			return err
		}
	}
	if err := p.expectKeyword(token.DO); err != nil {
		return err
	}
	if p.curIsKeyword(token.NOTHING) {
		p.advance()
		return nil
	}
	if err := p.expectKeyword(token.UPDATE); err != nil {
		return err
	}
	if err := p.expectKeyword(token.SET); err != nil {
		return err
	}
	_, err := p.parseAssignmentList()
	return err
}

func (p *Parser) parseAssignmentList() ([]ast.Assignment, error) {
	var out []ast.Assignment
	for {
		col, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(token.Eq); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Assignment{Column: col, Value: val})
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return out, nil
}

func (p *Parser) parseUpdate(with *ast.With) (ast.Command, error) {
	p.advance() // consume UPDATE
	table, err := p.parseTableRefName()
	if err != nil {
		return nil, err
	}
	upd := &ast.Update{With: with, Table: table}

	if err := p.expectKeyword(token.SET); err != nil {
		return nil, err
	}
	assigns, err := p.parseAssignmentList()
	if err != nil {
		return nil, err
	}
	upd.Set = assigns

	if p.curIsKeyword(token.FROM) {
		p.advance()
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		upd.From = from
	}

	if p.curIsKeyword(token.WHERE) {
		p.advance()
		where, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		upd.Where = where
	}

	if p.curIsKeyword(token.RETURNING) {
		p.advance()
		items, err := p.parseSelectItemList()
		if err != nil {
			return nil, err
		}
		upd.Returning = items
	}

	return upd, nil
}

func (p *Parser) parseDelete(with *ast.With) (ast.Command, error) {
	p.advance() // consume DELETE
	if err := p.expectKeyword(token.FROM); err != nil {
		return nil, err
	}
	table, err := p.parseTableRefName()
	if err != nil {
		return nil, err
	}
	del := &ast.Delete{With: with, Table: table}

	if p.curIsKeyword(token.USING) {
		p.advance()
		using, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		del.Using = using
	}

	if p.curIsKeyword(token.WHERE) {
		p.advance()
		where, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		del.Where = where
	}

	if p.curIsKeyword(token.RETURNING) {
		p.advance()
		items, err := p.parseSelectItemList()
		if err != nil {
			return nil, err
		}
		del.Returning = items
	}

	return del, nil
}

func (p *Parser) parseMerge(with *ast.With) (ast.Command, error) {
	p.advance() // consume MERGE
	if err := p.expectKeyword(token.INTO); err != nil {
		return nil, err
	}
	target, err := p.parseTableRefName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.USING); err != nil {
		return nil, err
	}
	source, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.ON); err != nil {
		return nil, err
	}
	on, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	m := &ast.Merge{With: with, Target: target, Source: source, On: on}

	for p.curIsKeyword(token.WHEN) {
		action, err := p.parseMergeAction()
		if err != nil {
			return nil, err
		}
		m.Whens = append(m.Whens, action)
	}
	if len(m.Whens) == 0 {
		p.expected = append(p.expected, "WHEN")
		return nil, p.syntaxErrorExpected()
	}
	return m, nil
}

func (p *Parser) parseMergeAction() (ast.MergeAction, error) {
	p.advance() // consume WHEN
	action := ast.MergeAction{}
	if p.curIsKeyword(token.NOT) {
		p.advance()
		action.Matched = false
	} else {
		action.Matched = true
	}
	if err := p.expectKeyword(token.MATCHED); err != nil {
		return action, err
	}
	if p.curIsKeyword(token.AND) {
		p.advance()
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return action, err
		}
		action.Condition = cond
	}
	if err := p.expectKeyword(token.THEN); err != nil {
		return action, err
	}
	switch {
	case p.curIsKeyword(token.UPDATE):
		p.advance()
		if err := p.expectKeyword(token.SET); err != nil {
			return action, err
		}
		assigns, err := p.parseAssignmentList()
		if err != nil {
			return action, err
		}
		action.UpdateSet = assigns
	case p.curIsKeyword(token.INSERT):
		p.advance()
		if p.curIs(token.PunctuationKind, token.LParen) {
			cols, err := p.parseIdentifierList()
			if err != nil {
				return action, err
			}
			action.InsertCols = cols
		}
		if err := p.expectKeyword(token.VALUES); err != nil {
			return action, err
		}
		vals, err := p.parseExpressionParenList()
		if err != nil {
			return action, err
		}
		action.InsertVals = vals
	case p.curIsKeyword(token.DELETE):
		p.advance()
		action.Delete = true
	case p.curIsKeyword(token.DO):
		p.advance()
		if err := p.expectKeyword(token.NOTHING); err != nil {
			return action, err
		}
		action.DoNothing = true
	default:
		p.expected = append(p.expected, "UPDATE, INSERT, DELETE, DO NOTHING")
		return action, p.syntaxErrorExpected()
	}
	return action, nil
}
