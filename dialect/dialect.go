// Package dialect carries the compatibility-mode enum and the immutable
// dialect-flag matrix that the tokenizer and parser consult. A Flags value
// is built once per session and passed down through the parse context; it is
// never mutated mid-parse.
package dialect

// Mode selects one of the supported compatibility matrices (spec.md §6).
type Mode int

const (
	Regular Mode = iota
	DB2
	Derby
	HSQLDB
	MSSQLServer
	MySQL
	Oracle
	PostgreSQL
	SQLServer
)

func (m Mode) String() string {
	switch m {
	case DB2:
		return "DB2"
	case Derby:
		return "Derby"
	case HSQLDB:
		return "HSQLDB"
	case MSSQLServer:
		return "MSSQLServer"
	case MySQL:
		return "MySQL"
	case Oracle:
		return "Oracle"
	case PostgreSQL:
		return "PostgreSQL"
	case SQLServer:
		return "SQLServer"
	default:
		return "Regular"
	}
}

// AllowLiterals gates whether literal constants may appear in a statement at
// all (used by callers that lock down a session to parameterized SQL only).
type AllowLiterals int

const (
	AllowLiteralsAll AllowLiterals = iota
	AllowLiteralsNone
	AllowLiteralsNumbers
)

// CaseFold selects how unquoted (and backtick-quoted) identifiers are
// canonicalized. UpperLower are mutually exclusive; see tokenizer docs.
type CaseFold int

const (
	CaseFoldNone CaseFold = iota
	CaseFoldUpper
	CaseFoldLower
)

// Flags is the full dialect/session configuration consulted by the lexer
// and parser. It is built once (typically from Mode via NewFlags) and then
// may have individual fields overridden by session-level SET statements,
// producing a new Flags value — Flags is always passed by value and never
// mutated in place, matching the teacher's per-Parser-instance state rather
// than package globals.
type Flags struct {
	Mode Mode

	// Lexer-level hooks (spec.md §4.1).
	SquareBracketQuotedNames      bool
	SupportPoundSymbolForColumns  bool
	ZeroExLiteralsAreBinaryStrings bool
	MinusIsExcept                 bool
	LimitKeyword                  bool
	CaseFold                      CaseFold
	BacktickQuotedNames           bool

	// Parser-level hooks (spec.md §4.4, §6).
	ForceJoinOrder      bool
	VariableBinary      bool
	IgnoreCatalogs      bool
	AllowBuiltinOverride bool
	AllowLiterals        AllowLiterals
	QuirksMode           bool

	MaxIdentifierLength int
	MaxParameterIndex   int
}

const defaultMaxIdentifierLength = 256
const defaultMaxParameterIndex = 100_000

// NewFlags builds the flag matrix for a compatibility mode, applying the
// per-mode defaults enumerated in spec.md §6. Individual flags may be
// overridden afterward by session SET statements.
func NewFlags(mode Mode) Flags {
	f := Flags{
		Mode:                mode,
		AllowLiterals:       AllowLiteralsAll,
		MaxIdentifierLength: defaultMaxIdentifierLength,
		MaxParameterIndex:   defaultMaxParameterIndex,
	}
	switch mode {
	case MySQL:
		f.LimitKeyword = true
		f.BacktickQuotedNames = true
		f.CaseFold = CaseFoldNone
	case PostgreSQL:
		f.MinusIsExcept = true
	case MSSQLServer, SQLServer:
		f.SquareBracketQuotedNames = true
	case Oracle:
		f.CaseFold = CaseFoldUpper
	case HSQLDB, Derby, DB2:
		f.CaseFold = CaseFoldUpper
	default:
		f.CaseFold = CaseFoldUpper
	}
	return f
}
