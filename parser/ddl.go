package parser

import (
	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/token"
)

// parseCreate dispatches every `CREATE ...` form (spec.md §4.4 "DDL"). The
// leading CREATE is always consumed here; each sub-parser picks up right
// after its own keyword.
func (p *Parser) parseCreate() (ast.Command, error) {
	p.advance() // consume CREATE

	orReplace := false
	if p.curIsKeyword(token.OR) {
		p.advance()
		if err := p.expectKeyword(token.REPLACE); err != nil {
			return nil, err
		}
		orReplace = true
	}

	unique := false
	if p.curIsKeyword(token.UNIQUE) {
		p.advance()
		unique = true
	}

	temporary := false
	if p.curIsKeyword(token.TEMPORARY) {
		p.advance()
		temporary = true
	}

	switch {
	case p.curIsKeyword(token.TABLE):
		return p.parseCreateTable(temporary)
	case p.curIsKeyword(token.VIEW):
		return p.parseCreateView(orReplace)
	case p.curIsKeyword(token.INDEX):
		return p.parseCreateIndex(unique)
	case p.curIsKeyword(token.SEQUENCE):
		return p.parseCreateSequence()
	case p.curIsKeyword(token.DOMAIN):
		return p.parseCreateDomain()
	case p.curIsKeyword(token.SCHEMA):
		return p.parseCreateSchema()
	case p.curIsKeyword(token.ROLE):
		return p.parseCreateRole()
	case p.curIsKeyword(token.USER):
		return p.parseCreateUser()
	case p.curIsKeyword(token.SYNONYM):
		return p.parseCreateSynonym(orReplace)
	case p.curIsKeyword(token.TRIGGER):
		return p.parseCreateTrigger()
	case p.curIsKeyword(token.ALIAS):
		return p.parseCreateAlias()
	case p.curIsKeyword(token.AGGREGATE):
		return p.parseCreateAggregate()
	case p.curIsKeyword(token.CONSTANT):
		return p.parseCreateConstant()
	case p.curIsKeyword(token.LINKED):
		return p.parseCreateLinkedTable()
	default:
		p.expected = append(p.expected, "TABLE, VIEW, INDEX, SEQUENCE, DOMAIN, SCHEMA, ROLE, USER, SYNONYM, TRIGGER, ALIAS, AGGREGATE, CONSTANT, LINKED TABLE")
		return nil, p.syntaxErrorExpected()
	}
}

func (p *Parser) parseIfNotExists() (bool, error) {
	if !p.curIsKeyword(token.IF) {
		return false, nil
	}
	p.advance()
	if err := p.expectKeyword(token.NOT); err != nil {
		return false, err
	}
	if err := p.expectKeyword(token.EXISTS); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Parser) parseIfExists() (bool, error) {
	if !p.curIsKeyword(token.IF) {
		return false, nil
	}
	p.advance()
	if err := p.expectKeyword(token.EXISTS); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Parser) parseCreateTable(temporary bool) (ast.Command, error) {
	p.advance() // consume TABLE
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	ct := &ast.CreateTable{Schema: schema, Name: name, IfNotExists: ifNotExists, Temporary: temporary}

	if p.curIs(token.PunctuationKind, token.LParen) {
		p.advance()
		for {
			if p.curIsAnyKeyword(token.CONSTRAINT, token.PRIMARY, token.UNIQUE, token.CHECK, token.FOREIGN) {
				c, err := p.parseTableConstraint()
				if err != nil {
					return nil, err
				}
				ct.Constraints = append(ct.Constraints, c)
			} else {
				col, err := p.parseColumnDef()
				if err != nil {
					return nil, err
				}
				ct.Columns = append(ct.Columns, col)
			}
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

	if p.curIsKeyword(token.AS) {
		p.advance()
		query, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		ct.AsQuery = query
	}

	return ct, nil
}

// parseColumnDef parses one column definition inside CREATE TABLE / ALTER
// TABLE ADD COLUMN (spec.md §4.2 "Column definition").
func (p *Parser) parseColumnDef() (ast.ColumnDef, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return ast.ColumnDef{}, err
	}
	typ, err := p.parseTypeDescriptor()
	if err != nil {
		return ast.ColumnDef{}, err
	}
	col := ast.ColumnDef{Name: name, Type: typ}

	for {
		switch {
		case p.curIsKeyword(token.NOT):
			p.advance()
			if err := p.expectKeyword(token.NULL); err != nil {
				return col, err
			}
			col.NotNull = true
		case p.curIsKeyword(token.NULL):
			p.advance()
		case p.curIsKeyword(token.DEFAULT):
			p.advance()
			def, err := p.parseExpression(precComparison)
			if err != nil {
				return col, err
			}
			col.Default = def
		case p.curIsKeyword(token.GENERATED):
			spec, err := p.parseIdentitySpec()
			if err != nil {
				return col, err
			}
			col.Identity = spec
		case p.curIsAnyKeyword(token.PRIMARY, token.UNIQUE, token.CHECK, token.REFERENCES):
			cons, err := p.parseColumnConstraint()
			if err != nil {
				return col, err
			}
			col.Constraints = append(col.Constraints, cons)
		default:
			return col, nil
		}
	}
}

// parseIdentitySpec parses `GENERATED [ALWAYS|BY DEFAULT] AS IDENTITY [(START
// WITH n [INCREMENT BY n])]` (spec.md §4.2 "Identity columns").
func (p *Parser) parseIdentitySpec() (*ast.IdentitySpec, error) {
	p.advance() // consume GENERATED
	spec := &ast.IdentitySpec{Always: true}
	switch {
	case p.curIsKeyword(token.ALWAYS):
		p.advance()
	case p.curIsKeyword(token.BY):
		p.advance()
		if err := p.expectKeyword(token.DEFAULT); err != nil {
			return nil, err
		}
		spec.Always = false
	}
	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.IDENTITY); err != nil {
		return nil, err
	}
	if p.curIs(token.PunctuationKind, token.LParen) {
		p.advance()
		for !p.curIs(token.PunctuationKind, token.RParen) {
			switch {
			case p.curIsKeyword(token.START):
				p.advance()
				if err := p.expectKeyword(token.WITH); err != nil {
					return nil, err
				}
				n, err := p.parseExpression(precComparison)
				if err != nil {
					return nil, err
				}
				spec.StartWith = int64(literalInt(n))
			case p.curIsKeyword(token.INCREMENT):
				p.advance()
				if p.curIsKeyword(token.BY) {
					p.advance()
				}
				n, err := p.parseExpression(precComparison)
				if err != nil {
					return nil, err
				}
				spec.Increment = int64(literalInt(n))
			default:
				p.expected = append(p.expected, "START WITH, INCREMENT BY")
				return nil, p.syntaxErrorExpected()
			}
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

// parseColumnConstraint parses an inline column-level constraint: PRIMARY
// KEY, UNIQUE, CHECK (expr), or REFERENCES target [(col)] [ON DELETE/UPDATE
// action].
func (p *Parser) parseColumnConstraint() (ast.TableConstraint, error) {
	switch {
	case p.curIsKeyword(token.PRIMARY):
		p.advance()
		if err := p.expectKeyword(token.KEY); err != nil {
			return ast.TableConstraint{}, err
		}
		return ast.TableConstraint{Kind: ast.ConstraintPrimaryKey}, nil
	case p.curIsKeyword(token.UNIQUE):
		p.advance()
		return ast.TableConstraint{Kind: ast.ConstraintUnique}, nil
	case p.curIsKeyword(token.CHECK):
		p.advance()
		if err := p.expectPunct(token.LParen); err != nil {
			return ast.TableConstraint{}, err
		}
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return ast.TableConstraint{}, err
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return ast.TableConstraint{}, err
		}
		return ast.TableConstraint{Kind: ast.ConstraintCheck, Check: expr}, nil
	case p.curIsKeyword(token.REFERENCES):
		return p.parseReferencesClause()
	default:
		p.expected = append(p.expected, "PRIMARY KEY, UNIQUE, CHECK, REFERENCES")
		return ast.TableConstraint{}, p.syntaxErrorExpected()
	}
}

// parseReferencesClause parses `REFERENCES [schema.]table [(cols)] [ON
// DELETE action] [ON UPDATE action]`, consuming the leading REFERENCES
// keyword itself.
func (p *Parser) parseReferencesClause() (ast.TableConstraint, error) {
	if err := p.expectKeyword(token.REFERENCES); err != nil {
		return ast.TableConstraint{}, err
	}
	cons := ast.TableConstraint{Kind: ast.ConstraintForeignKey}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return cons, err
	}
	cons.RefSchema, cons.RefTable = schema, name
	if p.curIs(token.PunctuationKind, token.LParen) {
		cols, err := p.parseIdentifierList()
		if err != nil {
			return cons, err
		}
		cons.RefColumns = cols
	}
	for p.curIsKeyword(token.ON) {
		p.advance()
		switch {
		case p.curIsKeyword(token.DELETE):
			p.advance()
			action, err := p.parseReferentialAction()
			if err != nil {
				return cons, err
			}
			cons.OnDelete = action
		case p.curIsKeyword(token.UPDATE):
			p.advance()
			action, err := p.parseReferentialAction()
			if err != nil {
				return cons, err
			}
			cons.OnUpdate = action
		default:
			p.expected = append(p.expected, "DELETE, UPDATE")
			return cons, p.syntaxErrorExpected()
		}
	}
	return cons, nil
}

// parseReferentialAction parses the action word(s) after ON DELETE/ON
// UPDATE. IGNORE is accepted as a silent alias for SET DEFAULT, matching
// what the source dialect's grammar does with that legacy spelling (spec.md
// §9 Open Question 3).
func (p *Parser) parseReferentialAction() (ast.ReferentialAction, error) {
	switch {
	case p.curIsKeyword(token.CASCADE):
		p.advance()
		return ast.CascadeAction, nil
	case p.curIsKeyword(token.RESTRICT):
		p.advance()
		return ast.RestrictAction, nil
	case p.curIsKeyword(token.IGNORE):
		p.advance()
		return ast.SetDefaultAction, nil
	case p.curIsKeyword(token.NO):
		p.advance()
		if err := p.expectKeyword(token.ACTION); err != nil {
			return 0, err
		}
		return ast.NoAction, nil
	case p.curIsKeyword(token.SET):
		p.advance()
		switch {
		case p.curIsKeyword(token.NULL):
			p.advance()
			return ast.SetNullAction, nil
		case p.curIsKeyword(token.DEFAULT):
			p.advance()
			return ast.SetDefaultAction, nil
		default:
			p.expected = append(p.expected, "NULL, DEFAULT")
			return 0, p.syntaxErrorExpected()
		}
	default:
		p.expected = append(p.expected, "CASCADE, RESTRICT, SET NULL, SET DEFAULT, NO ACTION")
		return 0, p.syntaxErrorExpected()
	}
}

func (p *Parser) parseTableConstraint() (ast.TableConstraint, error) {
	var name *ast.Identifier
	if p.curIsKeyword(token.CONSTRAINT) {
		p.advance()
		n, err := p.expectIdentifier()
		if err != nil {
			return ast.TableConstraint{}, err
		}
		name = n
	}

	var cons ast.TableConstraint
	switch {
	case p.curIsKeyword(token.PRIMARY):
		p.advance()
		if err := p.expectKeyword(token.KEY); err != nil {
			return cons, err
		}
		cols, err := p.parseIdentifierList()
		if err != nil {
			return cons, err
		}
		cons = ast.TableConstraint{Kind: ast.ConstraintPrimaryKey, Columns: cols}
	case p.curIsKeyword(token.UNIQUE):
		p.advance()
		cols, err := p.parseIdentifierList()
		if err != nil {
			return cons, err
		}
		cons = ast.TableConstraint{Kind: ast.ConstraintUnique, Columns: cols}
	case p.curIsKeyword(token.CHECK):
		p.advance()
		if err := p.expectPunct(token.LParen); err != nil {
			return cons, err
		}
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return cons, err
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return cons, err
		}
		cons = ast.TableConstraint{Kind: ast.ConstraintCheck, Check: expr}
	case p.curIsKeyword(token.FOREIGN):
		p.advance()
		if err := p.expectKeyword(token.KEY); err != nil {
			return cons, err
		}
		cols, err := p.parseIdentifierList()
		if err != nil {
			return cons, err
		}
		refCons, err := p.parseReferencesClause()
		if err != nil {
			return cons, err
		}
		refCons.Columns = cols
		cons = refCons
	default:
		p.expected = append(p.expected, "PRIMARY KEY, UNIQUE, CHECK, FOREIGN KEY")
		return cons, p.syntaxErrorExpected()
	}
	cons.Name = name
	return cons, nil
}

func (p *Parser) parseCreateView(orReplace bool) (ast.Command, error) {
	p.advance() // consume VIEW
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	cv := &ast.CreateView{Schema: schema, Name: name, OrReplace: orReplace}
	if p.curIs(token.PunctuationKind, token.LParen) {
		cols, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		cv.Columns = cols
	}
	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}
	query, err := p.parseSelectOrSetOp()
	if err != nil {
		return nil, err
	}
	cv.Query = query
	return cv, nil
}

func (p *Parser) parseCreateIndex(unique bool) (ast.Command, error) {
	p.advance() // consume INDEX
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.ON); err != nil {
		return nil, err
	}
	table, err := p.parseTableRefName()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	var cols []ast.OrderItem
	for {
		item, err := p.parseOrderItem()
		if err != nil {
			return nil, err
		}
		cols = append(cols, item)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return &ast.CreateIndex{Name: name, Table: table, Unique: unique, Columns: cols, IfNotExists: ifNotExists}, nil
}

func (p *Parser) parseCreateSequence() (ast.Command, error) {
	p.advance() // consume SEQUENCE
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	cs := &ast.CreateSequence{Schema: schema, Name: name, IfNotExists: ifNotExists}
	for {
		switch {
		case p.curIsKeyword(token.START):
			p.advance()
			if p.curIsKeyword(token.WITH) {
				p.advance()
			}
			v, err := p.parseExpression(precComparison)
			if err != nil {
				return nil, err
			}
			cs.StartWith = v
		case p.curIsKeyword(token.INCREMENT):
			p.advance()
			if p.curIsKeyword(token.BY) {
				p.advance()
			}
			v, err := p.parseExpression(precComparison)
			if err != nil {
				return nil, err
			}
			cs.IncrementBy = v
		case p.curIsKeyword(token.MINVALUE):
			p.advance()
			v, err := p.parseExpression(precComparison)
			if err != nil {
				return nil, err
			}
			cs.MinValue = v
		case p.curIsKeyword(token.MAXVALUE):
			p.advance()
			v, err := p.parseExpression(precComparison)
			if err != nil {
				return nil, err
			}
			cs.MaxValue = v
		case p.curIsKeyword(token.CYCLE):
			p.advance()
			cs.Cycle = true
		case p.curIsKeyword(token.NO) && p.peekIsAnyKeyword(1, token.CYCLE):
			p.advance()
			p.advance()
			cs.Cycle = false
		default:
			return cs, nil
		}
	}
}

func (p *Parser) parseCreateDomain() (ast.Command, error) {
	p.advance() // consume DOMAIN
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.AS); err != nil {
		return nil, err
	}
	base, err := p.parseTypeDescriptor()
	if err != nil {
		return nil, err
	}
	cd := &ast.CreateDomain{Schema: schema, Name: name, BaseType: base}
	if p.curIsKeyword(token.DEFAULT) {
		p.advance()
		def, err := p.parseExpression(precComparison)
		if err != nil {
			return nil, err
		}
		cd.Default = def
	}
	if p.curIsKeyword(token.CHECK) {
		p.advance()
		if err := p.expectPunct(token.LParen); err != nil {
			return nil, err
		}
		// Within a domain's CHECK clause, a bare VALUE denotes the value
		// being validated (spec.md §4.2 "Domain references").
		prev := p.parseDomainConstraint
		p.parseDomainConstraint = true
		check, err := p.parseExpression(precLowest)
		p.parseDomainConstraint = prev
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
		cd.Check = check
	}
	return cd, nil
}

func (p *Parser) parseCreateSchema() (ast.Command, error) {
	p.advance() // consume SCHEMA
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	cs := &ast.CreateSchema{Name: name, IfNotExists: ifNotExists}
	if p.curIsKeyword(token.AUTHORIZATION) {
		p.advance()
		owner, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		cs.Authorization = owner
	}
	return cs, nil
}

func (p *Parser) parseCreateRole() (ast.Command, error) {
	p.advance() // consume ROLE
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.CreateRole{Name: name, IfNotExists: ifNotExists}, nil
}

func (p *Parser) parseCreateUser() (ast.Command, error) {
	p.advance() // consume USER
	ifNotExists, err := p.parseIfNotExists()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	cu := &ast.CreateUser{Name: name, IfNotExists: ifNotExists}
	if p.curIsKeyword(token.PASSWORD) {
		p.advance()
		pass, err := p.parseExpression(precComparison)
		if err != nil {
			return nil, err
		}
		cu.Password = pass
	}
	if p.curIsKeyword(token.ADMIN) {
		p.advance()
		cu.Admin = true
	}
	return cu, nil
}

func (p *Parser) parseCreateSynonym(orReplace bool) (ast.Command, error) {
	p.advance() // consume SYNONYM
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.FOR); err != nil {
		return nil, err
	}
	targetSchema, target, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	return &ast.CreateSynonym{
		Schema: schema, Name: name, OrReplace: orReplace,
		TargetSchema: targetSchema, Target: target,
	}, nil
}

func (p *Parser) parseCreateTrigger() (ast.Command, error) {
	p.advance() // consume TRIGGER
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	ct := &ast.CreateTrigger{Name: name}

	switch {
	case p.curIsKeyword(token.BEFORE):
		p.advance()
		ct.Timing = ast.TriggerBefore
	case p.curIsKeyword(token.AFTER):
		p.advance()
		ct.Timing = ast.TriggerAfter
	case p.curIsKeyword(token.INSTEAD):
		p.advance()
		if err := p.expectKeyword(token.OF); err != nil {
			return nil, err
		}
		ct.Timing = ast.TriggerInsteadOf
	default:
		p.expected = append(p.expected, "BEFORE, AFTER, INSTEAD OF")
		return nil, p.syntaxErrorExpected()
	}

	for {
		switch {
		case p.curIsKeyword(token.INSERT):
			p.advance()
			ct.Events = append(ct.Events, ast.TriggerInsert)
		case p.curIsKeyword(token.UPDATE):
			p.advance()
			ct.Events = append(ct.Events, ast.TriggerUpdate)
		case p.curIsKeyword(token.DELETE):
			p.advance()
			ct.Events = append(ct.Events, ast.TriggerDelete)
		case p.curIsKeyword(token.SELECT):
			p.advance()
			ct.Events = append(ct.Events, ast.TriggerSelect)
		case p.curIsKeyword(token.ROLLBACK):
			p.advance()
			ct.Events = append(ct.Events, ast.TriggerRollback)
		default:
			p.expected = append(p.expected, "INSERT, UPDATE, DELETE, SELECT, ROLLBACK")
			return nil, p.syntaxErrorExpected()
		}
		if p.curIsKeyword(token.OR) {
			p.advance()
			continue
		}
		break
	}

	if err := p.expectKeyword(token.ON); err != nil {
		return nil, err
	}
	table, err := p.parseTableRefName()
	if err != nil {
		return nil, err
	}
	ct.Table = table

	if p.curIsKeyword(token.FOR) {
		p.advance()
		if err := p.expectKeyword(token.EACH); err != nil {
			return nil, err
		}
		switch {
		case p.curIsKeyword(token.ROW):
			p.advance()
			ct.ForEach = true
		case p.curIsKeyword(token.STATEMENT):
			p.advance()
			ct.ForEach = false
		default:
			p.expected = append(p.expected, "ROW, STATEMENT")
			return nil, p.syntaxErrorExpected()
		}
	}

	if err := p.expectKeyword(token.CALL); err != nil {
		return nil, err
	}
	class, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	ct.CallClass = class.Value
	return ct, nil
}

func (p *Parser) parseCreateAlias() (ast.Command, error) {
	p.advance() // consume ALIAS
	deterministic := false
	if p.curIsKeyword(token.DETERMINISTIC) {
		p.advance()
		deterministic = true
	}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.FOR); err != nil {
		return nil, err
	}
	class, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.CreateAlias{Schema: schema, Name: name, Deterministic: deterministic, ClassMethod: class.Value}, nil
}

func (p *Parser) parseCreateAggregate() (ast.Command, error) {
	p.advance() // consume AGGREGATE
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.FOR); err != nil {
		return nil, err
	}
	class, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.CreateAggregate{Schema: schema, Name: name, ClassMethod: class.Value}, nil
}

func (p *Parser) parseCreateConstant() (ast.Command, error) {
	p.advance() // consume CONSTANT
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword(token.VALUE); err != nil {
		return nil, err
	}
	val, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.CreateConstant{Schema: schema, Name: name, Value: val}, nil
}

func (p *Parser) parseCreateLinkedTable() (ast.Command, error) {
	p.advance() // consume LINKED
	if err := p.expectKeyword(token.TABLE); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	args, err := parseExprCommaList(p)
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	lt := &ast.LinkedTable{Name: name}
	for i, a := range args {
		switch i {
		case 0:
			lt.Driver = a
		case 1:
			lt.URL = a
		case 2:
			lt.User = a
		case 3:
			lt.Password = a
		case 4:
			lt.TargetTable = a
		}
	}
	return lt, nil
}

func parseExprCommaList(p *Parser) ([]ast.Expression, error) {
	var out []ast.Expression
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
	return out, nil
}

// parseDrop dispatches every `DROP ...` form (spec.md §4.4 "DDL").
func (p *Parser) parseDrop() (ast.Command, error) {
	p.advance() // consume DROP

	kind, err := p.parseDropKind()
	if err != nil {
		return nil, err
	}
	ifExists, err := p.parseIfExists()
	if err != nil {
		return nil, err
	}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	d := &ast.Drop{Kind: kind, Schema: schema, Name: name, IfExists: ifExists}

	switch {
	case p.curIsKeyword(token.CASCADE):
		p.advance()
		d.Cascade = true
	case p.curIsKeyword(token.RESTRICT):
		p.advance()
	}
	return d, nil
}

func (p *Parser) parseDropKind() (ast.DropKind, error) {
	switch {
	case p.curIsKeyword(token.TABLE):
		p.advance()
		return ast.DropTable, nil
	case p.curIsKeyword(token.VIEW):
		p.advance()
		return ast.DropView, nil
	case p.curIsKeyword(token.INDEX):
		p.advance()
		return ast.DropIndex, nil
	case p.curIsKeyword(token.SEQUENCE):
		p.advance()
		return ast.DropSequence, nil
	case p.curIsKeyword(token.DOMAIN):
		p.advance()
		return ast.DropDomain, nil
	case p.curIsKeyword(token.SCHEMA):
		p.advance()
		return ast.DropSchema, nil
	case p.curIsKeyword(token.TRIGGER):
		p.advance()
		return ast.DropTrigger, nil
	case p.curIsKeyword(token.ROLE):
		p.advance()
		return ast.DropRole, nil
	case p.curIsKeyword(token.USER):
		p.advance()
		return ast.DropUser, nil
	case p.curIsKeyword(token.SYNONYM):
		p.advance()
		return ast.DropSynonym, nil
	case p.curIsKeyword(token.ALIAS):
		p.advance()
		return ast.DropAlias, nil
	case p.curIsKeyword(token.AGGREGATE):
		p.advance()
		return ast.DropAggregate, nil
	case p.curIsKeyword(token.CONSTANT):
		p.advance()
		return ast.DropConstant, nil
	default:
		p.expected = append(p.expected, "TABLE, VIEW, INDEX, SEQUENCE, DOMAIN, SCHEMA, TRIGGER, ROLE, USER, SYNONYM, ALIAS, AGGREGATE, CONSTANT")
		return 0, p.syntaxErrorExpected()
	}
}

// parseAlterTable parses `ALTER TABLE [IF EXISTS] name action` (spec.md §4.4
// "DDL").
func (p *Parser) parseAlterTable() (ast.Command, error) {
	p.advance() // consume ALTER
	if err := p.expectKeyword(token.TABLE); err != nil {
		return nil, err
	}
	ifExists, err := p.parseIfExists()
	if err != nil {
		return nil, err
	}
	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}
	at := &ast.AlterTable{Schema: schema, Name: name, IfExists: ifExists}

	action, err := p.parseAlterTableAction()
	if err != nil {
		return nil, err
	}
	at.Action = action
	return at, nil
}

func (p *Parser) parseAlterTableAction() (ast.AlterTableAction, error) {
	switch {
	case p.curIsKeyword(token.ADD):
		p.advance()
		if p.curIsKeyword(token.CONSTRAINT) || p.curIsAnyKeyword(token.PRIMARY, token.UNIQUE, token.CHECK, token.FOREIGN) {
			cons, err := p.parseTableConstraint()
			if err != nil {
				return nil, err
			}
			return &ast.AddTableConstraint{Constraint: cons}, nil
		}
		if p.curIsKeyword(token.COLUMN) {
			p.advance()
		}
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		return &ast.AddColumn{Column: col}, nil
	case p.curIsKeyword(token.DROP):
		p.advance()
		if p.curIsKeyword(token.CONSTRAINT) {
			p.advance()
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			return &ast.DropConstraint{Name: name}, nil
		}
		if p.curIsKeyword(token.COLUMN) {
			p.advance()
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.DropColumn{Name: name}, nil
	case p.curIsKeyword(token.ALTER):
		p.advance()
		if p.curIsKeyword(token.COLUMN) {
			p.advance()
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if p.curIsKeyword(token.SET) {
			p.advance()
			if err := p.expectKeyword(token.DATA); err != nil {
				return nil, err
			}
		}
		if err := p.expectKeyword(token.TYPE); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}
		return &ast.AlterColumnType{Name: name, Type: typ}, nil
	case p.curIsKeyword(token.RENAME):
		p.advance()
		if err := p.expectKeyword(token.TO); err != nil {
			return nil, err
		}
		newName, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.RenameTable{NewName: newName}, nil
	default:
		p.expected = append(p.expected, "ADD, DROP, ALTER, RENAME")
		return nil, p.syntaxErrorExpected()
	}
}
