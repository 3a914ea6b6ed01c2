package ast

import (
	"fmt"
	"strings"
)

// PrimaryType is the closed set of base SQL types the type/literal layer can
// produce (spec.md §3 "Type descriptor", §4.2).
type PrimaryType int

const (
	Boolean PrimaryType = iota
	Tinyint
	Smallint
	Integer
	Bigint
	Numeric
	Real
	Double
	Decfloat
	Char
	Varchar
	VarcharIgnorecase
	Clob
	Binary
	Varbinary
	Blob
	Date
	Time
	TimeTZ
	Timestamp
	TimestampTZ
	IntervalYear
	IntervalMonth
	IntervalDay
	IntervalHour
	IntervalMinute
	IntervalSecond
	IntervalYearToMonth
	IntervalDayToHour
	IntervalDayToMinute
	IntervalDayToSecond
	IntervalHourToMinute
	IntervalHourToSecond
	IntervalMinuteToSecond
	Array
	Row
	Enum
	JSON
	Geometry
	UUID
	// Domain marks a type descriptor that is a reference to a user-defined
	// domain rather than a primary type; DomainName holds the lookup key and
	// Resolved (once the resolver runs) holds the base type it expands to.
	Domain
)

var primaryTypeNames = map[PrimaryType]string{
	Boolean: "BOOLEAN", Tinyint: "TINYINT", Smallint: "SMALLINT",
	Integer: "INTEGER", Bigint: "BIGINT", Numeric: "NUMERIC", Real: "REAL",
	Double: "DOUBLE", Decfloat: "DECFLOAT", Char: "CHAR", Varchar: "VARCHAR",
	VarcharIgnorecase: "VARCHAR_IGNORECASE", Clob: "CLOB", Binary: "BINARY",
	Varbinary: "VARBINARY", Blob: "BLOB", Date: "DATE", Time: "TIME",
	TimeTZ: "TIME WITH TIME ZONE", Timestamp: "TIMESTAMP",
	TimestampTZ: "TIMESTAMP WITH TIME ZONE",
	IntervalYear: "INTERVAL YEAR", IntervalMonth: "INTERVAL MONTH",
	IntervalDay: "INTERVAL DAY", IntervalHour: "INTERVAL HOUR",
	IntervalMinute: "INTERVAL MINUTE", IntervalSecond: "INTERVAL SECOND",
	IntervalYearToMonth:    "INTERVAL YEAR TO MONTH",
	IntervalDayToHour:      "INTERVAL DAY TO HOUR",
	IntervalDayToMinute:    "INTERVAL DAY TO MINUTE",
	IntervalDayToSecond:    "INTERVAL DAY TO SECOND",
	IntervalHourToMinute:   "INTERVAL HOUR TO MINUTE",
	IntervalHourToSecond:   "INTERVAL HOUR TO SECOND",
	IntervalMinuteToSecond: "INTERVAL MINUTE TO SECOND",
	Array: "ARRAY", Row: "ROW", Enum: "ENUM", JSON: "JSON",
	Geometry: "GEOMETRY", UUID: "UUID", Domain: "DOMAIN",
}

func (p PrimaryType) String() string {
	if s, ok := primaryTypeNames[p]; ok {
		return s
	}
	return fmt.Sprintf("PrimaryType(%d)", int(p))
}

// RowField is one named member of a ROW type descriptor.
type RowField struct {
	Name *Identifier
	Type *TypeDescriptor
}

// TypeDescriptor is the (primary_type, precision, scale, ext_info?) tuple
// produced by the type/literal layer. Precision/Scale carry -1 when not
// specified in source so the zero value doesn't collide with an explicit 0.
type TypeDescriptor struct {
	Primary   PrimaryType
	Precision int
	Scale     int

	// ElementType is set when Primary == Array: the element type.
	ElementType *TypeDescriptor
	// Fields is set when Primary == Row: the named member list.
	Fields []RowField
	// EnumValues is set when Primary == Enum: the literal string values in
	// declaration order.
	EnumValues []string

	// DomainSchema/DomainName are set when Primary == Domain: the lookup key
	// the resolver uses against catalog.Schema.FindDomain (spec.md §4.2
	// "Domain references").
	DomainSchema string
	DomainName   string
	// Resolved is filled in by the resolver once the domain lookup succeeds;
	// nil until then (and for non-Domain descriptors).
	Resolved *TypeDescriptor
	// DomainComment carries the domain's catalog comment, if any, once
	// Resolved is filled in.
	DomainComment string
}

func (t *TypeDescriptor) TokenLiteral() string { return t.Primary.String() }

func (t *TypeDescriptor) String() string {
	switch t.Primary {
	case Array:
		return t.ElementType.String() + " ARRAY"
	case Row:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Name.String() + " " + f.Type.String()
		}
		return "ROW(" + strings.Join(parts, ", ") + ")"
	case Enum:
		quoted := make([]string, len(t.EnumValues))
		for i, v := range t.EnumValues {
			quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
		}
		return "ENUM(" + strings.Join(quoted, ", ") + ")"
	case Domain:
		if t.DomainSchema != "" {
			return t.DomainSchema + "." + t.DomainName
		}
		return t.DomainName
	}

	base := t.Primary.String()
	if t.Precision >= 0 && t.Scale >= 0 {
		return fmt.Sprintf("%s(%d, %d)", base, t.Precision, t.Scale)
	}
	if t.Precision >= 0 {
		return fmt.Sprintf("%s(%d)", base, t.Precision)
	}
	return base
}

// IsInterval reports whether p is one of the thirteen INTERVAL qualifiers.
func (p PrimaryType) IsInterval() bool {
	return p >= IntervalYear && p <= IntervalMinuteToSecond
}
