// Package catalog defines the narrow interfaces the parser uses to reach
// its external collaborators: the session (current schema, search path,
// user, dialect flags, object-id allocation) and the schema catalog (table,
// view, index, sequence, domain, function lookup). Nothing in this package
// touches storage, locking, or execution; spec.md §1 places all of that
// outside this subsystem, reachable only through these interfaces.
package catalog

import "github.com/vippsas/sqlfront/dialect"

// Session is the narrow slice of the session object the parser is allowed
// to see (spec.md §1, §6 "Context").
type Session interface {
	CurrentSchema() string
	SearchPath() []string
	CurrentUser() string
	Flags() dialect.Flags

	// IsNonKeyword reports whether a keyword has been downgraded to an
	// ordinary identifier for this session (spec.md §3 Keyword/NonKeyword
	// set).
	IsNonKeyword(kw int) bool

	// NextObjectID allocates a fresh catalog object id, used when a DDL
	// statement needs to pre-assign an id to a not-yet-installed object
	// (e.g. a CTE shadow table, spec.md §4.4/§5).
	NextObjectID() int64

	Database() Database
}

// Database is the top-level catalog: schema lookup plus whole-database
// metadata the parser occasionally needs (its "main" schema, short name).
type Database interface {
	FindSchema(name string) (Schema, bool)
	MainSchema() Schema
	ShortName() string

	// InstallShadowTable and RemoveShadowTable implement the CTE
	// shadow-table lifecycle (spec.md §4.4 CTE, §5 resource discipline).
	// Installation/removal of a shadow table is atomic with respect to
	// other sessions; see resolver.CTEScope for the arena that tracks
	// outstanding shadow tables within one parse.
	InstallShadowTable(schema Schema, name string, t Table) error
	RemoveShadowTable(schema Schema, name string) error
}

// Schema is a single schema's view of its contained objects.
type Schema interface {
	Name() string
	FindTableOrView(name string) (Table, bool)
	FindIndex(name string) (Index, bool)
	FindSequence(name string) (Sequence, bool)
	FindDomain(name string) (Domain, bool)
	FindFunctionOrAggregate(name string) (Function, bool)

	// AllTableNames supports the fuzzy-match candidate search used by
	// TABLE_OR_VIEW_NOT_FOUND_WITH_CANDIDATES_2 (spec.md §4.4).
	AllTableNames() []string
}

// Table is a resolved table or view.
type Table interface {
	Name() string
	Schema() string
	Columns() []Column
	FindColumn(name string) (Column, bool)
	IsView() bool
}

// Column describes a single resolved column.
type Column struct {
	Name     string
	Type     TypeName
	Nullable bool
}

// TypeName is the catalog's opaque name for a resolved base type; the
// parser's own ast.TypeDescriptor is richer (precision/scale/ext info) and
// is built independently by the type/literal layer (spec.md §4.2).
type TypeName string

// Index describes a resolved index (spec.md DDL: ALTER/DROP INDEX target
// resolution).
type Index interface {
	Name() string
	TableName() string
}

// Sequence describes a resolved sequence (NEXT/CURRENT VALUE FOR).
type Sequence interface {
	Name() string
	Schema() string
}

// Domain describes a resolved domain: its base type and optional
// back-reference used by the type/literal layer (spec.md §4.2 "Domain
// references").
type Domain interface {
	Name() string
	BaseType() TypeName
	Comment() string
}

// Function describes a resolved user-defined function, aggregate, or alias.
// The actual invocation mechanism is out of scope (spec.md §4.3 "the actual
// invocation is out of scope"); the parser only needs enough to build a
// Function-call expression node and to know whether the function is
// non-deterministic (which flips a Prepared's recompile-always flag).
type Function interface {
	Name() string
	Schema() string
	IsAggregate() bool
	Deterministic() bool
}
