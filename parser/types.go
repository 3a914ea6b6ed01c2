package parser

import (
	"strconv"
	"strings"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/catalog"
	"github.com/vippsas/sqlfront/token"
)

// typeNameToPrimary maps the single-word spellings of a primary type to its
// ast.PrimaryType, keyed uppercase. Multi-word forms (DOUBLE PRECISION, TIME
// WITH TIME ZONE, CHARACTER VARYING, ...) and the thirteen INTERVAL
// qualifiers are handled separately in parseTypeDescriptor.
var typeNameToPrimary = map[string]ast.PrimaryType{
	"BOOLEAN": ast.Boolean, "BOOL": ast.Boolean,
	"TINYINT":  ast.Tinyint,
	"SMALLINT": ast.Smallint, "INT2": ast.Smallint,
	"INTEGER": ast.Integer, "INT": ast.Integer, "INT4": ast.Integer,
	"BIGINT": ast.Bigint, "INT8": ast.Bigint,
	"NUMERIC": ast.Numeric, "DECIMAL": ast.Numeric, "DEC": ast.Numeric,
	"REAL": ast.Real, "FLOAT4": ast.Real,
	"DOUBLE": ast.Double, "FLOAT8": ast.Double, "FLOAT": ast.Double,
	"DECFLOAT": ast.Decfloat,
	"CHAR":     ast.Char, "CHARACTER": ast.Char,
	"VARCHAR": ast.Varchar, "VARCHAR2": ast.Varchar,
	"VARCHAR_IGNORECASE": ast.VarcharIgnorecase,
	"CLOB":               ast.Clob, "TEXT": ast.Clob,
	"BINARY": ast.Binary,
	"VARBINARY": ast.Varbinary,
	"BLOB": ast.Blob, "BYTEA": ast.Blob,
	"DATE":      ast.Date,
	"TIMESTAMP": ast.Timestamp,
	"JSON":      ast.JSON,
	"GEOMETRY":  ast.Geometry,
	"UUID":      ast.UUID,
}

var intervalUnitToPrimary = map[string]ast.PrimaryType{
	"YEAR": ast.IntervalYear, "MONTH": ast.IntervalMonth,
	"DAY": ast.IntervalDay, "HOUR": ast.IntervalHour,
	"MINUTE": ast.IntervalMinute, "SECOND": ast.IntervalSecond,
}

var intervalRangeToPrimary = map[[2]string]ast.PrimaryType{
	{"YEAR", "MONTH"}:   ast.IntervalYearToMonth,
	{"DAY", "HOUR"}:     ast.IntervalDayToHour,
	{"DAY", "MINUTE"}:   ast.IntervalDayToMinute,
	{"DAY", "SECOND"}:   ast.IntervalDayToSecond,
	{"HOUR", "MINUTE"}:  ast.IntervalHourToMinute,
	{"HOUR", "SECOND"}:  ast.IntervalHourToSecond,
	{"MINUTE", "SECOND"}: ast.IntervalMinuteToSecond,
}

// parseTypeDescriptor parses a type name used in CAST, column definitions,
// and domain declarations (spec.md §4.2 "Type descriptor"). A spelling that
// doesn't match a known primary type is not an error here: it is accepted
// as a domain reference and left for the resolver to either expand (via
// catalog.Schema.FindDomain) or reject as not found.
func (p *Parser) parseTypeDescriptor() (*ast.TypeDescriptor, error) {
	if p.curIsKeyword(token.INTERVAL) {
		return p.parseIntervalType()
	}
	if p.curIsKeyword(token.ARRAY) {
		// bare `ARRAY[elemtype]` / `ARRAY(elemtype)` form, as opposed to the
		// postfix `elemtype ARRAY` form handled below.
		p.advance()
		elem, err := p.parseTypeDescriptorParenOrBracket()
		if err != nil {
			return nil, err
		}
		return &ast.TypeDescriptor{Primary: ast.Array, ElementType: elem, Precision: -1, Scale: -1}, nil
	}
	if p.curIsKeyword(token.ROW) {
		return p.parseRowType()
	}
	if p.curIsWord("ENUM") {
		return p.parseEnumType()
	}

	schema, name, err := p.parseQualifiedName()
	if err != nil {
		return nil, err
	}

	typ, err := p.resolveNamedType(name.Value)
	if err != nil {
		return nil, err
	}
	if typ == nil {
		desc := &ast.TypeDescriptor{Primary: ast.Domain, Precision: -1, Scale: -1, DomainName: name.Value}
		if schema != nil {
			desc.DomainSchema = schema.Value
		}
		domain, err := p.resolver.FindDomain(schema, name)
		if err != nil {
			return nil, err
		}
		desc.Resolved = baseTypeDescriptor(domain.BaseType())
		desc.DomainComment = domain.Comment()
		return p.parseTypeArraySuffix(desc)
	}

	if p.curIs(token.PunctuationKind, token.LParen) {
		p.advance()
		prec, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		typ.Precision = literalInt(prec)
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			scale, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			typ.Scale = literalInt(scale)
		}
		if err := p.expectPunct(token.RParen); err != nil {
			return nil, err
		}
	}

	return p.parseTypeArraySuffix(typ)
}

// resolveNamedType recognizes a primary type name (including the multi-word
// forms) starting at the just-consumed identifier text. Returns nil, nil
// when name isn't a known primary type spelling.
func (p *Parser) resolveNamedType(name string) (*ast.TypeDescriptor, error) {
	upper := strings.ToUpper(name)

	switch upper {
	case "DOUBLE":
		if p.curIsWord("PRECISION") {
			p.advance()
		}
		return &ast.TypeDescriptor{Primary: ast.Double, Precision: -1, Scale: -1}, nil
	case "CHARACTER":
		if p.curIsWord("VARYING") {
			p.advance()
			return &ast.TypeDescriptor{Primary: ast.Varchar, Precision: -1, Scale: -1}, nil
		}
		return &ast.TypeDescriptor{Primary: ast.Char, Precision: -1, Scale: -1}, nil
	case "TIME":
		return p.parseTimeOrTimestampTail(ast.Time, ast.TimeTZ)
	case "TIMESTAMP":
		return p.parseTimeOrTimestampTail(ast.Timestamp, ast.TimestampTZ)
	}

	if prim, ok := typeNameToPrimary[upper]; ok {
		return &ast.TypeDescriptor{Primary: prim, Precision: -1, Scale: -1}, nil
	}
	return nil, nil
}

func (p *Parser) parseTimeOrTimestampTail(plain, withZone ast.PrimaryType) (*ast.TypeDescriptor, error) {
	desc := &ast.TypeDescriptor{Primary: plain, Precision: -1, Scale: -1}
	if p.curIsKeyword(token.WITH) {
		p.advance()
		if !p.curIsWord("TIME") {
			p.expected = append(p.expected, "TIME")
			return nil, p.syntaxErrorExpected()
		}
		p.advance()
		if err := p.expectKeyword(token.ZONE); err != nil {
			return nil, err
		}
		desc.Primary = withZone
	} else if p.curIsKeyword(token.WITHOUT) {
		p.advance()
		if !p.curIsWord("TIME") {
			p.expected = append(p.expected, "TIME")
			return nil, p.syntaxErrorExpected()
		}
		p.advance()
		if err := p.expectKeyword(token.ZONE); err != nil {
			return nil, err
		}
	}
	return desc, nil
}

// parseIntervalType parses the thirteen INTERVAL qualifier forms (spec.md
// §4.2 "Interval types").
func (p *Parser) parseIntervalType() (*ast.TypeDescriptor, error) {
	p.advance() // consume INTERVAL
	first, err := p.expectIntervalUnit()
	if err != nil {
		return nil, err
	}
	if p.curIsKeyword(token.TO) {
		p.advance()
		second, err := p.expectIntervalUnit()
		if err != nil {
			return nil, err
		}
		prim, ok := intervalRangeToPrimary[[2]string{first, second}]
		if !ok {
			p.expected = append(p.expected, "a valid INTERVAL range (e.g. DAY TO SECOND)")
			return nil, p.syntaxErrorExpected()
		}
		return &ast.TypeDescriptor{Primary: prim, Precision: -1, Scale: -1}, nil
	}
	return &ast.TypeDescriptor{Primary: intervalUnitToPrimary[first], Precision: -1, Scale: -1}, nil
}

func (p *Parser) expectIntervalUnit() (string, error) {
	t := p.cur()
	if t.Kind != token.Identifier {
		p.expected = append(p.expected, "YEAR, MONTH, DAY, HOUR, MINUTE, SECOND")
		return "", p.syntaxErrorExpected()
	}
	upper := strings.ToUpper(t.Text)
	if _, ok := intervalUnitToPrimary[upper]; !ok {
		p.expected = append(p.expected, "YEAR, MONTH, DAY, HOUR, MINUTE, SECOND")
		return "", p.syntaxErrorExpected()
	}
	p.advance()
	return upper, nil
}

func (p *Parser) parseRowType() (*ast.TypeDescriptor, error) {
	p.advance() // consume ROW
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	var fields []ast.RowField
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.RowField{Name: name, Type: typ})
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return &ast.TypeDescriptor{Primary: ast.Row, Fields: fields, Precision: -1, Scale: -1}, nil
}

func (p *Parser) parseEnumType() (*ast.TypeDescriptor, error) {
	p.advance() // consume ENUM (a plain identifier, not reserved)
	if err := p.expectPunct(token.LParen); err != nil {
		return nil, err
	}
	var values []string
	for {
		t := p.cur()
		if t.Kind != token.CharacterStringLiteral {
			p.expected = append(p.expected, "string literal")
			return nil, p.syntaxErrorExpected()
		}
		p.advance()
		values = append(values, t.Value.(string))
		if p.curIs(token.PunctuationKind, token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectPunct(token.RParen); err != nil {
		return nil, err
	}
	return &ast.TypeDescriptor{Primary: ast.Enum, EnumValues: values, Precision: -1, Scale: -1}, nil
}

// parseTypeDescriptorParenOrBracket parses the element type of an `ARRAY[...]`
// or `ARRAY(...)` constructor.
func (p *Parser) parseTypeDescriptorParenOrBracket() (*ast.TypeDescriptor, error) {
	var closer token.Punct
	switch {
	case p.curIs(token.PunctuationKind, token.LBracket):
		closer = token.RBracket
	case p.curIs(token.PunctuationKind, token.LParen):
		closer = token.RParen
	default:
		p.expected = append(p.expected, "[, (")
		return nil, p.syntaxErrorExpected()
	}
	p.advance()
	elem, err := p.parseTypeDescriptor()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(closer); err != nil {
		return nil, err
	}
	return elem, nil
}

// parseTypeArraySuffix wraps typ in an Array descriptor for every trailing
// `ARRAY` or `[]` repetition, matching the postfix array-type spelling
// (`INTEGER ARRAY`, `INTEGER[]`, `INTEGER[][]`).
func (p *Parser) parseTypeArraySuffix(typ *ast.TypeDescriptor) (*ast.TypeDescriptor, error) {
	for {
		if p.curIsKeyword(token.ARRAY) {
			p.advance()
			if p.curIs(token.PunctuationKind, token.LBracket) {
				p.advance()
				if !p.curIs(token.PunctuationKind, token.RBracket) {
					if _, err := p.parseExpression(precLowest); err != nil {
						return nil, err
					}
				}
				if err := p.expectPunct(token.RBracket); err != nil {
					return nil, err
				}
			}
			typ = &ast.TypeDescriptor{Primary: ast.Array, ElementType: typ, Precision: -1, Scale: -1}
			continue
		}
		if p.curIs(token.PunctuationKind, token.LBracket) {
			p.advance()
			if err := p.expectPunct(token.RBracket); err != nil {
				return nil, err
			}
			typ = &ast.TypeDescriptor{Primary: ast.Array, ElementType: typ, Precision: -1, Scale: -1}
			continue
		}
		break
	}
	return typ, nil
}

// baseTypeDescriptor builds the TypeDescriptor a domain's catalog-resolved
// base type expands to, used to populate TypeDescriptor.Resolved (spec.md
// §4.2 "Domain references").
func baseTypeDescriptor(base catalog.TypeName) *ast.TypeDescriptor {
	if prim, ok := typeNameToPrimary[strings.ToUpper(string(base))]; ok {
		return &ast.TypeDescriptor{Primary: prim, Precision: -1, Scale: -1}
	}
	return &ast.TypeDescriptor{Primary: ast.Domain, Precision: -1, Scale: -1, DomainName: string(base)}
}

func literalInt(e ast.Expression) int {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return -1
	}
	switch v := lit.Value.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return -1
		}
		return n
	default:
		return -1
	}
}
