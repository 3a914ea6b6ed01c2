// Package sqlerr defines the single exception type raised by the tokenizer,
// parser, and name resolver, tagged with a closed error-kind enum (spec.md
// §7). Every Error is constructed through github.com/pkg/errors so it
// carries a stack trace from the point of construction, the same
// convention the retrieved pack uses in aretext for wrapped errors.
package sqlerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the closed set of front-end error kinds from spec.md §7.
type Kind int

const (
	SyntaxError1 Kind = iota
	SyntaxError2
	FunctionNotFound1
	FunctionAliasAlreadyExists1
	SchemaNotFound1
	SchemaNameMustMatch
	TableOrViewNotFound1
	TableOrViewNotFoundWithCandidates2
	TableOrViewNotFoundDatabaseEmpty1
	TableOrViewAlreadyExists1
	ColumnNotFound1
	DuplicateColumnName1
	ColumnMustNotBeNullable1
	ConstantAlreadyExists1
	DatabaseNotFound1
	SequenceNotFound1
	ViewNotFound1
	InvalidValuePrecision
	InvalidValueScale
	HexStringWrong1
	DataConversionError1
	NameTooLong2
	GroupByNotInTheResult
	CannotMixIndexedAndUnindexedParams
	ColumnCountDoesNotMatch
	RolesAndRightCannotBeMixed
	LiteralsAreNotAllowed
	IdenticalExpressionsShouldBeUsed
	UnknownDataType1
	UnknownMode1
	UnsupportedJoinType
	UnsupportedOuterJoin
	UnsupportedSetOperation
	WithTiesWithoutOrderBy
	InvalidDatetimeConstant2
	DomainNotFound1
	IndexNotFound1
	TriggerNotFound1
	RoleNotFound1
	UserNotFound1
	AmbiguousColumnName1
)

var kindNames = map[Kind]string{
	SyntaxError1:                       "SYNTAX_ERROR_1",
	SyntaxError2:                       "SYNTAX_ERROR_2",
	FunctionNotFound1:                  "FUNCTION_NOT_FOUND_1",
	FunctionAliasAlreadyExists1:        "FUNCTION_ALIAS_ALREADY_EXISTS_1",
	SchemaNotFound1:                    "SCHEMA_NOT_FOUND_1",
	SchemaNameMustMatch:                "SCHEMA_NAME_MUST_MATCH",
	TableOrViewNotFound1:               "TABLE_OR_VIEW_NOT_FOUND_1",
	TableOrViewNotFoundWithCandidates2: "TABLE_OR_VIEW_NOT_FOUND_WITH_CANDIDATES_2",
	TableOrViewNotFoundDatabaseEmpty1:  "TABLE_OR_VIEW_NOT_FOUND_DATABASE_EMPTY_1",
	TableOrViewAlreadyExists1:          "TABLE_OR_VIEW_ALREADY_EXISTS_1",
	ColumnNotFound1:                    "COLUMN_NOT_FOUND_1",
	DuplicateColumnName1:               "DUPLICATE_COLUMN_NAME_1",
	ColumnMustNotBeNullable1:           "COLUMN_MUST_NOT_BE_NULLABLE_1",
	ConstantAlreadyExists1:             "CONSTANT_ALREADY_EXISTS_1",
	DatabaseNotFound1:                  "DATABASE_NOT_FOUND_1",
	SequenceNotFound1:                  "SEQUENCE_NOT_FOUND_1",
	ViewNotFound1:                      "VIEW_NOT_FOUND_1",
	InvalidValuePrecision:              "INVALID_VALUE_PRECISION",
	InvalidValueScale:                  "INVALID_VALUE_SCALE",
	HexStringWrong1:                    "HEX_STRING_WRONG_1",
	DataConversionError1:               "DATA_CONVERSION_ERROR_1",
	NameTooLong2:                       "NAME_TOO_LONG_2",
	GroupByNotInTheResult:              "GROUP_BY_NOT_IN_THE_RESULT",
	CannotMixIndexedAndUnindexedParams: "CANNOT_MIX_INDEXED_AND_UNINDEXED_PARAMS",
	ColumnCountDoesNotMatch:            "COLUMN_COUNT_DOES_NOT_MATCH",
	RolesAndRightCannotBeMixed:         "ROLES_AND_RIGHT_CANNOT_BE_MIXED",
	LiteralsAreNotAllowed:              "LITERALS_ARE_NOT_ALLOWED",
	IdenticalExpressionsShouldBeUsed:   "IDENTICAL_EXPRESSIONS_SHOULD_BE_USED",
	UnknownDataType1:                   "UNKNOWN_DATA_TYPE_1",
	UnknownMode1:                       "UNKNOWN_MODE_1",
	UnsupportedJoinType:                "UNSUPPORTED_JOIN_TYPE",
	UnsupportedOuterJoin:               "UNSUPPORTED_OUTER_JOIN_TYPE",
	UnsupportedSetOperation:            "UNSUPPORTED_SET_OPERATION",
	WithTiesWithoutOrderBy:             "WITH_TIES_WITHOUT_ORDER_BY",
	InvalidDatetimeConstant2:           "INVALID_DATETIME_CONSTANT_2",
	DomainNotFound1:                    "DOMAIN_NOT_FOUND_1",
	IndexNotFound1:                     "INDEX_NOT_FOUND_1",
	TriggerNotFound1:                   "TRIGGER_NOT_FOUND_1",
	RoleNotFound1:                      "ROLE_NOT_FOUND_1",
	UserNotFound1:                      "USER_NOT_FOUND_1",
	AmbiguousColumnName1:               "AMBIGUOUS_COLUMN_NAME_1",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN_ERROR_KIND"
}

// Error is the single exception type raised across the front-end. Syntax
// and SyntaxExpected set SQL and Offset when the error is built; for other
// kinds the parser's entry points attach the SQL (WithSQL) to errors raised
// after tokenization, and Offset stays -1.
type Error struct {
	Kind     Kind
	Args     []string // positional error-message arguments (table name, etc.)
	SQL      string
	Offset   int // rune offset into SQL, -1 if not applicable
	Expected []string // accumulated expected-token strings (SYNTAX_ERROR_2)
	Candidates []string // fuzzy-match suggestions for *_WITH_CANDIDATES kinds

	cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Kind)
	if len(e.Args) > 0 {
		fmt.Fprintf(&b, " %s", strings.Join(e.Args, ", "))
	}
	if e.SQL != "" {
		fmt.Fprintf(&b, "; SQL: [%s]", e.SQL)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, "; expected one of: %s", strings.Join(e.Expected, ", "))
	}
	if len(e.Candidates) > 0 {
		fmt.Fprintf(&b, "; did you mean: %s", strings.Join(e.Candidates, ", "))
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a name-resolution/validation error (not carrying an offset).
func New(kind Kind, args ...string) *Error {
	e := &Error{Kind: kind, Args: args, Offset: -1}
	e.cause = errors.WithStack(errors.New(e.Kind.String()))
	return e
}

// Syntax builds a SYNTAX_ERROR_1: SQL text plus offset, no expected list.
// The parser parses once, always accumulating expected-token spellings, and
// raises Syntax only when none were accumulated at the failure point
// (SyntaxExpected otherwise); it does not re-parse to build the list.
func Syntax(sql string, offset int) *Error {
	e := &Error{Kind: SyntaxError1, SQL: sql, Offset: offset}
	e.cause = errors.WithStack(errors.New(SyntaxError1.String()))
	return e
}

// SyntaxExpected builds a SYNTAX_ERROR_2: SQL text, offset, and the
// accumulated list of token spellings that would have been acceptable at
// that position.
func SyntaxExpected(sql string, offset int, expected []string) *Error {
	e := &Error{Kind: SyntaxError2, SQL: sql, Offset: offset, Expected: expected}
	e.cause = errors.WithStack(errors.New(SyntaxError2.String()))
	return e
}

// WithCandidates attaches fuzzy-match suggestions to a *_WITH_CANDIDATES_2
// style not-found error.
func (e *Error) WithCandidates(candidates []string) *Error {
	e.Candidates = candidates
	return e
}

// WithSQL attaches the original SQL text to an error that was raised
// without it (e.g. a resolver error raised deep inside statement parsing).
func (e *Error) WithSQL(sql string) *Error {
	if e.SQL == "" {
		e.SQL = sql
	}
	return e
}

// As reports whether err is (or wraps) a *sqlerr.Error of the given kind.
func As(err error, kind Kind) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Kind == kind
}
