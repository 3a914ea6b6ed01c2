package parser

import (
	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/catalog"
	"github.com/vippsas/sqlfront/sqlerr"
	"github.com/vippsas/sqlfront/token"
)

// parseWithClause parses `WITH [RECURSIVE] name [(cols)] AS (query), ...`
// and installs each CTE's shadow table before the next CTE (or the main
// query body) is parsed, so later CTEs/the main body can reference earlier
// ones by name (spec.md §4.4 CTE).
func (p *Parser) parseWithClause() (*ast.With, error) {
	p.advance() // consume WITH
	with := &ast.With{}
	if p.curIsKeyword(token.RECURSIVE) {
		p.advance()
		with.Recursive = true
	}
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		cte := &ast.CTE{Name: name, Recursive: with.Recursive}
		if p.curIs(token.PunctuationKind, token.LParen) {
			cols, err := p.parseIdentifierList()
			if err != nil {
				return nil, err
			}
			cte.Columns = cols
		}
		if err := p.expectKeyword(token.AS); err != nil {
			return nil, err
		}
		if err := p.expectPunct(token.LParen); err != nil {
			return nil, err
		}

		// The shadow table is installed before the body is parsed, not
		// after, so a recursive CTE's self-reference inside its own body
		// (and any later CTE referencing this one) resolves against it
		// (spec.md §4.4 CTE, §8 scenario 3).
		shadow := &cteShadowTable{name: name.Value}
		if err := p.resolver.CTEScope().Install(cte, shadow); err != nil {
			return nil, err
		}
		p.cteCleanups = append(p.cteCleanups, p.resolver.CTEScope().Cleanup)

		body, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
		cte.Query = body

		with.CTEs = append(with.CTEs, cte)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return with, nil
}

// cteShadowTable is the minimal catalog.Table placeholder installed for a
// CTE's name while its body (and anything referencing it) is being parsed;
// the real column list is supplied by the storage layer once the CTE's
// SELECT list is known, which is out of scope for this front-end (spec.md
// §1).
type cteShadowTable struct {
	name string
}

func (c *cteShadowTable) Name() string                             { return c.name }
func (c *cteShadowTable) Schema() string                           { return "" }
func (c *cteShadowTable) IsView() bool                              { return true }
func (c *cteShadowTable) Columns() []catalog.Column                 { return nil }
func (c *cteShadowTable) FindColumn(string) (catalog.Column, bool)  { return catalog.Column{}, false }

func (p *Parser) parseSelectOrSetOp() (ast.Command, error) {
	return p.parseSelectOrSetOpWith(nil)
}

func (p *Parser) parseSelectOrSetOpWith(with *ast.With) (ast.Command, error) {
	left, err := p.parseSimpleSelect(with)
	if err != nil {
		return nil, err
	}
	return p.parseSetOpTail(left)
}

func (p *Parser) parseValuesOrSetOp() (ast.Command, error) {
	left, err := p.parseValues()
	if err != nil {
		return nil, err
	}
	return p.parseSetOpTail(left)
}

func (p *Parser) parseSetOpTail(left ast.Command) (ast.Command, error) {
	for {
		var kind ast.SetOpKind
		switch {
		case p.curIsKeyword(token.UNION):
			p.advance()
			kind = ast.SetOpUnion
			if p.curIsKeyword(token.ALL) {
				p.advance()
				kind = ast.SetOpUnionAll
			} else if p.curIsKeyword(token.DISTINCT) {
				p.advance()
			}
		case p.curIsKeyword(token.EXCEPT), p.curIsKeyword(token.MINUS):
			p.advance()
			kind = ast.SetOpExcept
		case p.curIsKeyword(token.INTERSECT):
			p.advance()
			kind = ast.SetOpIntersect
		default:
			return left, nil
		}
		var right ast.Command
		var err error
		if p.curIsKeyword(token.SELECT) {
			right, err = p.parseSimpleSelect(nil)
		} else if p.curIsKeyword(token.VALUES) {
			right, err = p.parseValues()
		} else {
			p.expected = append(p.expected, "SELECT, VALUES")
			return nil, p.syntaxErrorExpected()
		}
		if err != nil {
			return nil, err
		}
		left = &ast.SetOperation{Left: left, Right: right, Kind: kind}
	}
}

func (p *Parser) parseValues() (ast.Command, error) {
	p.advance() // consume VALUES
	v := &ast.Values{}
	for {
		if err := p.expectPunct(token.LParen); err != nil {
			return nil, err
		}
		var row []ast.Expression
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			row = append(row, e)
			if p.curIs(token.PunctuationKind, token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
		v.Rows = append(v.Rows, row)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return v, nil
}

func (p *Parser) parseSimpleSelect(with *ast.With) (*ast.Select, error) {
	if err := p.expectKeyword(token.SELECT); err != nil {
		return nil, err
	}
	sel := &ast.Select{With: with}
	if p.curIsKeyword(token.DISTINCT) {
		p.advance()
		sel.Distinct = true
	} else if p.curIsKeyword(token.ALL) {
		p.advance()
	}
	if p.curIsKeyword(token.TOP) {
		p.advance()
		top, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		sel.Top = top
	}

	items, err := p.parseSelectItemList()
	if err != nil {
		return nil, err
	}
	sel.Items = items

	if p.curIsKeyword(token.FROM) {
		p.advance()
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		sel.From = from
	}

	if p.curIsKeyword(token.WHERE) {
		p.advance()
		where, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		sel.Where = where
	}

	if p.curIsKeyword(token.GROUP) {
		gb, err := p.parseGroupBy()
		if err != nil {
			return nil, err
		}
		sel.GroupBy = gb
	}

	if p.curIsKeyword(token.HAVING) {
		p.advance()
		having, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		sel.Having = having
	}

	if p.curIsKeyword(token.WINDOW) {
		p.advance()
		windows, err := p.parseWindowClause()
		if err != nil {
			return nil, err
		}
		sel.Windows = windows
	}

	if p.curIsKeyword(token.QUALIFY) {
		p.advance()
		q, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		sel.Qualify = q
	}

	if p.curIsKeyword(token.ORDER) {
		ob, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		sel.OrderBy = ob
	}

	if p.curIsKeyword(token.LIMIT) || p.curIsKeyword(token.OFFSET) || p.curIsKeyword(token.FETCH) {
		lc, err := p.parseLimitClause(len(sel.OrderBy) > 0)
		if err != nil {
			return nil, err
		}
		sel.Limit = lc
	}

	if err := p.resolveSelectColumns(sel); err != nil {
		return nil, err
	}

	return sel, nil
}

// resolveSelectColumns binds every unqualified/table-qualified ColumnRef in
// the select list, WHERE, HAVING, and QUALIFY against the tables named in
// FROM (spec.md §4.2 "Column reference"). It is a no-op whenever the FROM
// clause isn't a flat chain of plain table references it can fully resolve
// itself with the already-registered catalog (a derived table, table
// function, or a CTE's shadow table, whose real columns aren't known to the
// front-end) — those column references are left for the storage layer.
func (p *Parser) resolveSelectColumns(sel *ast.Select) error {
	if sel.From == nil {
		return nil
	}
	tables, ok := p.collectFromTables(sel.From)
	if !ok {
		return nil
	}

	exprs := make([]ast.Expression, 0, len(sel.Items)+3)
	for _, it := range sel.Items {
		if it.Expr != nil {
			exprs = append(exprs, it.Expr)
		}
	}
	if sel.Where != nil {
		exprs = append(exprs, sel.Where)
	}
	if sel.Having != nil {
		exprs = append(exprs, sel.Having)
	}
	if sel.Qualify != nil {
		exprs = append(exprs, sel.Qualify)
	}

	for _, expr := range exprs {
		var resolveErr error
		ast.Walk(ast.Inspector(func(n ast.Node) bool {
			if resolveErr != nil {
				return false
			}
			ref, isRef := n.(*ast.ColumnRef)
			if !isRef || ref.Name.Value == "*" {
				return true
			}
			if err := p.resolver.ResolveColumn(ref, tables); err != nil {
				resolveErr = err
				return false
			}
			return true
		}), expr)
		if resolveErr != nil {
			return resolveErr
		}
	}
	return nil
}

// collectFromTables flattens a chain of plain table references and INNER/
// LEFT/RIGHT/CROSS joins into the catalog.Table list ResolveColumn needs.
// It reports ok=false for anything it can't flatten this way: a derived
// table, a table-valued function, or a CTE shadow table (cteShadowTable
// never has real columns, by design — see parseWithClause).
func (p *Parser) collectFromTables(expr ast.TableExpr) ([]catalog.Table, bool) {
	switch n := expr.(type) {
	case *ast.TableRef:
		table, err := p.resolver.ResolveTable(&ast.TableRef{Schema: n.Schema, Name: n.Name})
		if err != nil {
			return nil, false
		}
		if _, isShadow := table.(*cteShadowTable); isShadow {
			return nil, false
		}
		return []catalog.Table{table}, true
	case *ast.JoinExpr:
		left, ok := p.collectFromTables(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := p.collectFromTables(n.Right)
		if !ok {
			return nil, false
		}
		return append(left, right...), true
	default:
		return nil, false
	}
}

func (p *Parser) parseSelectItemList() ([]ast.SelectItem, error) {
	var items []ast.SelectItem
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return items, nil
}

func (p *Parser) parseSelectItem() (ast.SelectItem, error) {
	if p.curIs(token.PunctuationKind, token.Star) {
		p.advance()
		return ast.SelectItem{Star: true}, nil
	}
	if p.cur().Kind == token.Identifier && p.peek(1).Kind == token.PunctuationKind &&
		p.peek(1).Punct == token.Dot && p.peek(2).Kind == token.PunctuationKind && p.peek(2).Punct == token.Star {
		qualifier, _ := p.expectIdentifier()
		p.advance() // dot
		p.advance() // star
		return ast.SelectItem{Star: true, Qualifier: qualifier}, nil
	}
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return ast.SelectItem{}, err
	}
	item := ast.SelectItem{Expr: expr}
	if p.curIsKeyword(token.AS) {
		p.advance()
		alias, err := p.expectIdentifier()
		if err != nil {
			return ast.SelectItem{}, err
		}
		item.Alias = alias
	} else if p.cur().Kind == token.Identifier {
		alias, _ := p.expectIdentifier()
		item.Alias = alias
	}
	return item, nil
}

// -----------------------------------------------------------------------
// FROM clause: table references and joins
// -----------------------------------------------------------------------

func (p *Parser) parseFromClause() (ast.TableExpr, error) {
	left, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	for {
		left, err = p.parseJoinTail(left)
		if err != nil {
			return nil, err
		}
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			right, err := p.parseTableFactor()
			if err != nil {
				return nil, err
			}
			left = &ast.JoinExpr{Left: left, Right: right, Kind: ast.JoinCross}
			continue
		}
		break
	}
	return left, nil
}

func (p *Parser) parseTableFactor() (ast.TableExpr, error) {
	lateral := false
	if p.curIsKeyword(token.LATERAL) {
		p.advance()
		lateral = true
	}
	if p.curIs(token.PunctuationKind, token.LParen) {
		p.advance()
		if p.curIsKeyword(token.SELECT) || p.curIsKeyword(token.VALUES) || p.curIsKeyword(token.WITH) {
			cmd, err := p.parseCommand()
			if err != nil {
				return nil, err
			}
			if err := p.expectPunct(token.RParen); err != nil {
				return nil, err
			}
			dt := &ast.DerivedTable{Query: cmd, Lateral: lateral}
			if err := p.parseOptionalAlias(&dt.Alias, &dt.Columns); err != nil {
				return nil, err
			}
			return dt, nil
		}
		inner, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	}

	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if p.curIs(token.PunctuationKind, token.LParen) {
		call, err := p.parseFuncCallTail(schema, name)
		if err != nil {
			return nil, err
		}
		tf := &ast.TableFunctionRef{Call: call.(*ast.FuncCall)}
		if err := p.parseOptionalAlias(&tf.Alias, &tf.Columns); err != nil {
			return nil, err
		}
		return tf, nil
	}
	ref := &ast.TableRef{Schema: schema, Name: name}
	if err := p.parseOptionalAlias(&ref.Alias, &ref.Columns); err != nil {
		return nil, err
	}
	table, err := p.resolver.ResolveTable(ref)
	if err != nil {
		return nil, err
	}
	ref.ResolvedSchema = table.Schema()
	return ref, nil
}

func (p *Parser) parseOptionalAlias(alias **ast.Identifier, columns *[]*ast.Identifier) error {
	if p.curIsKeyword(token.AS) {
		p.advance()
		id, err := p.expectIdentifier()
		if err != nil {
			return err
		}
		*alias = id
	} else if p.cur().Kind == token.Identifier {
		id, _ := p.expectIdentifier()
		*alias = id
	} else {
		return nil
	}
	if p.curIs(token.PunctuationKind, token.LParen) {
		cols, err := p.parseIdentifierList()
		if err != nil {
			return err
		}
		*columns = cols
	}
	return nil
}

func (p *Parser) parseJoinTail(left ast.TableExpr) (ast.TableExpr, error) {
	natural := false
	if p.curIsKeyword(token.NATURAL) {
		p.advance()
		natural = true
	}

	kind, matched, err := p.parseJoinKind()
	if err != nil {
		return nil, err
	}
	if !matched {
		return left, nil
	}
	if err := p.rejectUnsupportedJoin(kind); err != nil {
		return nil, err
	}

	right, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}
	j := &ast.JoinExpr{Left: left, Right: right, Kind: kind, Natural: natural}

	if !natural && kind != ast.JoinCross {
		switch {
		case p.curIsKeyword(token.ON):
			p.advance()
			cond, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			j.On = cond
		case p.curIsKeyword(token.USING):
			p.advance()
			cols, err := p.parseIdentifierList()
			if err != nil {
				return nil, err
			}
			j.Using = cols
		}
	}
	return j, nil
}

// parseJoinKind consumes a join keyword combination (INNER/LEFT/RIGHT/FULL
// [OUTER]/CROSS JOIN) if present, reporting matched=false and leaving the
// cursor untouched otherwise. A FULL [OUTER] JOIN is accepted here;
// parseJoinTail then rejects it through rejectUnsupportedJoin with
// UnsupportedOuterJoin before the right-hand table is parsed. FULL is the
// only join kind rejected (spec.md §9 Open Question 2).
func (p *Parser) parseJoinKind() (ast.JoinKind, bool, error) {
	switch {
	case p.curIsKeyword(token.JOIN):
		p.advance()
		return ast.JoinInner, true, nil
	case p.curIsKeyword(token.INNER):
		p.advance()
		if err := p.expectKeyword(token.JOIN); err != nil {
			return 0, true, err
		}
		return ast.JoinInner, true, nil
	case p.curIsKeyword(token.LEFT):
		p.advance()
		if p.curIsKeyword(token.OUTER) {
			p.advance()
		}
		if err := p.expectKeyword(token.JOIN); err != nil {
			return 0, true, err
		}
		return ast.JoinLeft, true, nil
	case p.curIsKeyword(token.RIGHT):
		p.advance()
		if p.curIsKeyword(token.OUTER) {
			p.advance()
		}
		if err := p.expectKeyword(token.JOIN); err != nil {
			return 0, true, err
		}
		return ast.JoinRight, true, nil
	case p.curIsKeyword(token.FULL):
		p.advance()
		if p.curIsKeyword(token.OUTER) {
			p.advance()
		}
		if err := p.expectKeyword(token.JOIN); err != nil {
			return 0, true, err
		}
		return ast.JoinFull, true, nil
	case p.curIsKeyword(token.CROSS):
		p.advance()
		if err := p.expectKeyword(token.JOIN); err != nil {
			return 0, true, err
		}
		return ast.JoinCross, true, nil
	default:
		return 0, false, nil
	}
}

func (p *Parser) rejectUnsupportedJoin(kind ast.JoinKind) error {
	if kind == ast.JoinFull {
		return sqlerr.New(sqlerr.UnsupportedOuterJoin)
	}
	return nil
}

// -----------------------------------------------------------------------
// GROUP BY / ORDER BY / LIMIT
// -----------------------------------------------------------------------

func (p *Parser) parseGroupBy() ([]ast.GroupingSet, error) {
	p.advance() // consume GROUP
	if err := p.expectKeyword(token.BY); err != nil {
		return nil, err
	}
	var sets []ast.GroupingSet
	for {
		set, err := p.parseGroupingSet()
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return sets, nil
}

func (p *Parser) parseGroupingSet() (ast.GroupingSet, error) {
	switch {
	case p.curIsKeyword(token.GROUPING):
		p.advance()
		if err := p.expectKeyword(token.SETS); err != nil {
			return ast.GroupingSet{}, err
		}
		items, err := p.parseGroupingItemList()
		if err != nil {
			return ast.GroupingSet{}, err
		}
		return ast.GroupingSet{Kind: ast.GroupingSets, Items: items}, nil
	case p.curIsKeyword(token.ROLLUP):
		p.advance()
		items, err := p.parseGroupingItemList()
		if err != nil {
			return ast.GroupingSet{}, err
		}
		return ast.GroupingSet{Kind: ast.GroupingRollup, Items: items}, nil
	case p.curIsKeyword(token.CUBE):
		p.advance()
		items, err := p.parseGroupingItemList()
		if err != nil {
			return ast.GroupingSet{}, err
		}
		return ast.GroupingSet{Kind: ast.GroupingCube, Items: items}, nil
	default:
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return ast.GroupingSet{}, err
		}
		return ast.GroupingSet{Kind: ast.GroupingPlain, Items: [][]ast.Expression{{expr}}}, nil
	}
}

// parseGroupingItemList parses the parenthesized argument list of a
// ROLLUP/CUBE/GROUPING SETS clause. Each comma-separated element is either a
// single column expression or a parenthesized sub-list of expressions
// (the composite-column form, e.g. `ROLLUP ((a, b), c)`).
func (p *Parser) parseGroupingItemList() ([][]ast.Expression, error) {
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	var items [][]ast.Expression
	if !p.curIs(token.PunctuationKind, token.RParen) {
		for {
			var sub []ast.Expression
			if p.curIs(token.PunctuationKind, token.LParen) {
				var err error
				sub, err = p.parseExpressionParenList()
				if err != nil {
					return nil, err
				}
			} else {
				expr, err := p.parseExpression(precLowest)
				if err != nil {
					return nil, err
				}
				sub = []ast.Expression{expr}
			}
			items = append(items, sub)
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
	return items, nil
}

func (p *Parser) parseExpressionParenList() ([]ast.Expression, error) {
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	var out []ast.Expression
	if !p.curIs(token.PunctuationKind, token.RParen) {
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
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
	return out, nil
}

func (p *Parser) parseOrderBy() ([]ast.OrderItem, error) {
	p.advance() // consume ORDER
	if err := p.expectKeyword(token.BY); err != nil {
		return nil, err
	}
	var items []ast.OrderItem
	for {
		item, err := p.parseOrderItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return items, nil
}

func (p *Parser) parseOrderItem() (ast.OrderItem, error) {
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return ast.OrderItem{}, err
	}
	item := ast.OrderItem{Expr: expr}
	if p.curIsKeyword(token.ASC) {
		p.advance()
	} else if p.curIsKeyword(token.DESC) {
		p.advance()
		item.Descending = true
	}
	if p.curIsKeyword(token.NULLS) {
		p.advance()
		if p.curIsKeyword(token.FIRST) {
			p.advance()
			item.NullsFirst = true
		} else if err := p.expectKeyword(token.LAST); err == nil {
			item.NullsLast = true
		} else {
			return ast.OrderItem{}, err
		}
	}
	return item, nil
}

func (p *Parser) parseLimitClause(hasOrderBy bool) (*ast.LimitClause, error) {
	lc := &ast.LimitClause{}
	if p.curIsKeyword(token.LIMIT) {
		p.advance()
		lim, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		lc.Limit = lim
		if p.curIsKeyword(token.OFFSET) {
			p.advance()
			off, err := p.parseExpression(precUnary)
			if err != nil {
				return nil, err
			}
			lc.Offset = off
		}
		return lc, nil
	}
	if p.curIsKeyword(token.OFFSET) {
		p.advance()
		off, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		lc.Offset = off
		if p.cur().Kind == token.Identifier {
			p.advance() // ROW/ROWS (not reserved)
		}
	}
	if p.curIsKeyword(token.FETCH) {
		p.advance()
		if p.curIsKeyword(token.FIRST) || p.curIsKeyword(token.NEXT) {
			p.advance()
		}
		n, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		lc.Limit = n
		if p.curIsKeyword(token.PERCENT) {
			p.advance()
			lc.Percent = true
		}
		if p.cur().Kind == token.Identifier {
			p.advance() // ROW/ROWS
		}
		if p.curIsKeyword(token.TIES) {
			if !hasOrderBy {
				return nil, sqlerr.New(sqlerr.WithTiesWithoutOrderBy)
			}
			p.advance()
			lc.FetchTies = true
		} else if err := p.expectKeyword(token.ONLY); err != nil {
			return nil, err
		}
	}
	return lc, nil
}

// -----------------------------------------------------------------------
// Window clause
// -----------------------------------------------------------------------

func (p *Parser) parseWindowClause() ([]ast.NamedWindow, error) {
	var out []ast.NamedWindow
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(token.AS); err != nil {
			return nil, err
		}
		spec, err := p.parseWindowSpec()
		if err != nil {
			return nil, err
		}
		out = append(out, ast.NamedWindow{Name: name, Spec: spec})
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return out, nil
}

func (p *Parser) parseWindowSpec() (*ast.WindowSpec, error) {
	if p.cur().Kind == token.Identifier {
		id, _ := p.expectIdentifier()
		return &ast.WindowSpec{Name: id.Value}, nil
	}
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	spec := &ast.WindowSpec{}
	if p.cur().Kind == token.Identifier {
		id, _ := p.expectIdentifier()
		spec.BaseName = id.Value
	}
	if p.curIsKeyword(token.PARTITION) {
		p.advance()
		if err := p.expectKeyword(token.BY); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			spec.PartitionBy = append(spec.PartitionBy, e)
			if p.curIs(token.PunctuationKind, token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if p.curIsKeyword(token.ORDER) {
		ob, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		spec.OrderBy = ob
	}
	if p.curIsAnyKeyword(token.ROWS, token.RANGE, token.GROUPS) {
		frame, err := p.parseWindowFrame()
		if err != nil {
			return nil, err
		}
		spec.Frame = frame
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return spec, nil
}

func (p *Parser) parseWindowFrame() (*ast.WindowFrame, error) {
	frame := &ast.WindowFrame{}
	switch {
	case p.curIsKeyword(token.ROWS):
		frame.Unit = ast.FrameRows
	case p.curIsKeyword(token.RANGE):
		frame.Unit = ast.FrameRange
	case p.curIsKeyword(token.GROUPS):
		frame.Unit = ast.FrameGroups
	}
	p.advance()

	if p.curIsKeyword(token.BETWEEN) {
		p.advance()
		start, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword(token.AND); err != nil {
			return nil, err
		}
		end, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		frame.Start = start
		frame.End = &end
	} else {
		start, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		frame.Start = start
	}

	if p.curIsKeyword(token.EXCLUDE) {
		p.advance()
		switch {
		case p.curIsKeyword(token.CURRENT):
			p.advance()
			if err := p.expectKeyword(token.ROW); err != nil {
				return nil, err
			}
			frame.Exclusion = ast.ExcludeCurrentRow
		case p.curIsKeyword(token.GROUP):
			p.advance()
			frame.Exclusion = ast.ExcludeGroup
		case p.curIsKeyword(token.TIES):
			p.advance()
			frame.Exclusion = ast.ExcludeTies
		case p.curIsKeyword(token.NO):
			p.advance()
			if err := p.expectKeyword(token.OTHERS); err != nil {
				return nil, err
			}
			frame.Exclusion = ast.ExcludeNoOthers
		}
	}
	return frame, nil
}

func (p *Parser) parseFrameBound() (ast.FrameBound, error) {
	switch {
	case p.curIsKeyword(token.UNBOUNDED):
		p.advance()
		if p.curIsKeyword(token.PRECEDING) {
			p.advance()
			return ast.FrameBound{Kind: ast.FrameUnboundedPreceding}, nil
		}
		if err := p.expectKeyword(token.FOLLOWING); err != nil {
			return ast.FrameBound{}, err
		}
		return ast.FrameBound{Kind: ast.FrameUnboundedFollowing}, nil
	case p.curIsKeyword(token.CURRENT):
		p.advance()
		if err := p.expectKeyword(token.ROW); err != nil {
			return ast.FrameBound{}, err
		}
		return ast.FrameBound{Kind: ast.FrameCurrentRow}, nil
	default:
		offset, err := p.parseExpression(precUnary)
		if err != nil {
			return ast.FrameBound{}, err
		}
		if p.curIsKeyword(token.PRECEDING) {
			p.advance()
			return ast.FrameBound{Kind: ast.FramePreceding, Offset: offset}, nil
		}
		if err := p.expectKeyword(token.FOLLOWING); err != nil {
			return ast.FrameBound{}, err
		}
		return ast.FrameBound{Kind: ast.FrameFollowing, Offset: offset}, nil
	}
}
