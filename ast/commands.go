package ast

import "strings"

// -----------------------------------------------------------------------
// FROM-clause table expressions
// -----------------------------------------------------------------------

// TableExpr is any element that can appear in a FROM clause: a table
// reference, a derived table, VALUES, or a join.
type TableExpr interface {
	Node
	tableExprNode()
}

// TableRef names a table or view, optionally schema-qualified and aliased.
type TableRef struct {
	Lit     string
	Schema  *Identifier
	Name    *Identifier
	Alias   *Identifier
	Columns []*Identifier // column-alias list, e.g. `t(a, b, c)`

	// ResolvedSchema is the schema name the resolver bound this reference
	// to, filled in once resolution succeeds.
	ResolvedSchema string
}

func (t *TableRef) tableExprNode()    {}
func (t *TableRef) TokenLiteral() string { return t.Name.Lit }
func (t *TableRef) String() string {
	var b strings.Builder
	if t.Schema != nil {
		b.WriteString(t.Schema.String())
		b.WriteString(".")
	}
	b.WriteString(t.Name.String())
	if t.Alias != nil {
		b.WriteString(" AS ")
		b.WriteString(t.Alias.String())
	}
	return b.String()
}

// DerivedTable is a subquery used as a FROM-clause source.
type DerivedTable struct {
	Lit     string
	Query   Command // *Select, *Values, or a set-operation Command
	Alias   *Identifier
	Columns []*Identifier
	Lateral bool
}

func (d *DerivedTable) tableExprNode()    {}
func (d *DerivedTable) TokenLiteral() string { return d.Lit }
func (d *DerivedTable) String() string {
	var b strings.Builder
	if d.Lateral {
		b.WriteString("LATERAL ")
	}
	b.WriteString("(")
	b.WriteString(d.Query.String())
	b.WriteString(")")
	if d.Alias != nil {
		b.WriteString(" AS ")
		b.WriteString(d.Alias.String())
	}
	return b.String()
}

// TableFunctionRef is a table-valued function invocation used as a FROM
// source (e.g. `UNNEST(arr)`, `generate_series(1, 10)`).
type TableFunctionRef struct {
	Lit     string
	Call    *FuncCall
	Alias   *Identifier
	Columns []*Identifier
}

func (t *TableFunctionRef) tableExprNode()    {}
func (t *TableFunctionRef) TokenLiteral() string { return t.Lit }
func (t *TableFunctionRef) String() string {
	s := t.Call.String()
	if t.Alias != nil {
		s += " AS " + t.Alias.String()
	}
	return s
}

// JoinKind is the closed set of join types the grammar accepts syntactically
// (spec.md §9 Open Question 2: FULL OUTER JOIN is accepted here and rejected
// later with UnsupportedOuterJoin, the same as other unsupported joins).
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
)

func (k JoinKind) String() string {
	switch k {
	case JoinLeft:
		return "LEFT OUTER JOIN"
	case JoinRight:
		return "RIGHT OUTER JOIN"
	case JoinFull:
		return "FULL OUTER JOIN"
	case JoinCross:
		return "CROSS JOIN"
	default:
		return "INNER JOIN"
	}
}

// JoinExpr is a two-sided join. Exactly one of On/Using/Natural is set,
// except for CROSS joins where all three are empty/false.
type JoinExpr struct {
	Lit      string
	Left     TableExpr
	Right    TableExpr
	Kind     JoinKind
	Natural  bool
	On       Expression
	Using    []*Identifier
}

func (j *JoinExpr) tableExprNode()    {}
func (j *JoinExpr) TokenLiteral() string { return j.Lit }
func (j *JoinExpr) String() string {
	var b strings.Builder
	b.WriteString(j.Left.String())
	b.WriteString(" ")
	if j.Natural {
		b.WriteString("NATURAL ")
	}
	b.WriteString(j.Kind.String())
	b.WriteString(" ")
	b.WriteString(j.Right.String())
	if j.On != nil {
		b.WriteString(" ON ")
		b.WriteString(j.On.String())
	} else if len(j.Using) > 0 {
		parts := make([]string, len(j.Using))
		for i, u := range j.Using {
			parts[i] = u.String()
		}
		b.WriteString(" USING (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// -----------------------------------------------------------------------
// SELECT and set operations
// -----------------------------------------------------------------------

// SelectItem is one projected expression, with an optional alias.
type SelectItem struct {
	Expr  Expression
	Alias *Identifier
	Star  bool // true for `*` or `t.*`; Expr is nil, Qualifier may be set
	Qualifier *Identifier
}

func (s SelectItem) String() string {
	if s.Star {
		if s.Qualifier != nil {
			return s.Qualifier.String() + ".*"
		}
		return "*"
	}
	str := s.Expr.String()
	if s.Alias != nil {
		str += " AS " + s.Alias.String()
	}
	return str
}

// GroupingSet is one element of a GROUP BY clause: a plain expression list,
// or a ROLLUP/CUBE/GROUPING SETS construct (spec.md §4.3 "GROUP BY").
type GroupingSet struct {
	Kind  GroupingKind
	Items [][]Expression // ROLLUP/CUBE: one sub-list per column; plain: single sub-list of one
}

type GroupingKind int

const (
	GroupingPlain GroupingKind = iota
	GroupingRollup
	GroupingCube
	GroupingSets
)

// CTE is one entry of a WITH clause (spec.md §4.4 CTE, §9 schema-reset
// quirk).
type CTE struct {
	Lit       string
	Name      *Identifier
	Columns   []*Identifier
	Query     Command
	Recursive bool

	// ShadowTableID is the catalog object id assigned when this CTE's
	// shadow table was installed (see resolver.CTEScope). Cleanup removes
	// shadow tables by schema and name and does not read this id.
	ShadowTableID int64
}

// With is a `WITH [RECURSIVE] cte, cte, ... ` prefix shared by SELECT and
// the DML statements that support it.
type With struct {
	Recursive bool
	CTEs      []*CTE
}

// SetOpKind is the closed set of binary set operators.
type SetOpKind int

const (
	SetOpUnion SetOpKind = iota
	SetOpUnionAll
	SetOpExcept
	SetOpIntersect
)

func (k SetOpKind) String() string {
	switch k {
	case SetOpUnionAll:
		return "UNION ALL"
	case SetOpExcept:
		return "EXCEPT"
	case SetOpIntersect:
		return "INTERSECT"
	default:
		return "UNION"
	}
}

// SetOperation combines two query results (spec.md §4.3 "Set operations").
type SetOperation struct {
	Lit         string
	Left, Right Command
	Kind        SetOpKind
	OrderBy     []OrderItem
	Limit       *LimitClause
}

func (s *SetOperation) commandNode()        {}
func (s *SetOperation) TokenLiteral() string { return s.Lit }
func (s *SetOperation) String() string {
	return s.Left.String() + " " + s.Kind.String() + " " + s.Right.String()
}

// LimitClause covers LIMIT/OFFSET and the SQL-standard OFFSET ... FETCH
// forms uniformly (spec.md §4.3 "ORDER BY / OFFSET / FETCH / LIMIT").
type LimitClause struct {
	Limit      Expression // nil if absent
	Offset     Expression // nil if absent
	FetchTies  bool       // WITH TIES (requires ORDER BY, spec.md WithTiesWithoutOrderBy)
	Percent    bool       // FETCH FIRST n PERCENT ROWS
}

// Select is a full SELECT query, including its WITH prefix when present.
type Select struct {
	Lit         string
	With        *With
	Distinct    bool
	Top         Expression // dialect TOP n, nil if absent
	Items       []SelectItem
	From        TableExpr // nil for a FROM-less SELECT
	Where       Expression
	GroupBy     []GroupingSet
	Having      Expression
	Windows     []NamedWindow
	Qualify     Expression
	OrderBy     []OrderItem
	Limit       *LimitClause
	ForUpdate   bool
}

func (s *Select) commandNode()        {}
func (s *Select) TokenLiteral() string { return s.Lit }
func (s *Select) String() string {
	var b strings.Builder
	if s.With != nil && len(s.With.CTEs) > 0 {
		b.WriteString("WITH ")
		if s.With.Recursive {
			b.WriteString("RECURSIVE ")
		}
		parts := make([]string, len(s.With.CTEs))
		for i, c := range s.With.CTEs {
			parts[i] = c.Name.String() + " AS (" + c.Query.String() + ")"
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(" ")
	}
	b.WriteString("SELECT ")
	if s.Distinct {
		b.WriteString("DISTINCT ")
	}
	items := make([]string, len(s.Items))
	for i, it := range s.Items {
		items[i] = it.String()
	}
	b.WriteString(strings.Join(items, ", "))
	if s.From != nil {
		b.WriteString(" FROM ")
		b.WriteString(s.From.String())
	}
	if s.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where.String())
	}
	if s.Having != nil {
		b.WriteString(" HAVING ")
		b.WriteString(s.Having.String())
	}
	return b.String()
}

// Values is a standalone `VALUES (row), (row), ...` query expression.
type Values struct {
	Lit  string
	Rows [][]Expression
}

func (v *Values) commandNode()        {}
func (v *Values) TokenLiteral() string { return v.Lit }
func (v *Values) String() string {
	rows := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		parts := make([]string, len(r))
		for j, e := range r {
			parts[j] = e.String()
		}
		rows[i] = "(" + strings.Join(parts, ", ") + ")"
	}
	return "VALUES " + strings.Join(rows, ", ")
}

// TableCommand is the bare `TABLE name` query-expression shorthand for
// `SELECT * FROM name`.
type TableCommand struct {
	Lit  string
	Name *TableRef
}

func (t *TableCommand) commandNode()        {}
func (t *TableCommand) TokenLiteral() string { return t.Lit }
func (t *TableCommand) String() string       { return "TABLE " + t.Name.String() }

// -----------------------------------------------------------------------
// DML
// -----------------------------------------------------------------------

// Insert is `INSERT INTO table [(cols)] VALUES (...) | query [ON CONFLICT
// ...] [RETURNING ...]`.
type Insert struct {
	Lit         string
	With        *With
	Table       *TableRef
	Columns     []*Identifier
	Values      [][]Expression // nil when Query is set
	Query       Command        // INSERT ... SELECT
	DefaultVals bool           // INSERT INTO t DEFAULT VALUES
	Returning   []SelectItem
}

func (i *Insert) commandNode()        {}
func (i *Insert) TokenLiteral() string { return i.Lit }
func (i *Insert) String() string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(i.Table.String())
	if len(i.Columns) > 0 {
		parts := make([]string, len(i.Columns))
		for idx, c := range i.Columns {
			parts[idx] = c.String()
		}
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}
	switch {
	case i.DefaultVals:
		b.WriteString(" DEFAULT VALUES")
	case i.Query != nil:
		b.WriteString(" ")
		b.WriteString(i.Query.String())
	default:
		rows := make([]string, len(i.Values))
		for idx, r := range i.Values {
			parts := make([]string, len(r))
			for j, e := range r {
				parts[j] = e.String()
			}
			rows[idx] = "(" + strings.Join(parts, ", ") + ")"
		}
		b.WriteString(" VALUES " + strings.Join(rows, ", "))
	}
	return b.String()
}

// Assignment is one `col = expr` pair in SET/UPDATE clauses.
type Assignment struct {
	Column *Identifier
	Value  Expression
}

// Update is `UPDATE table SET col = expr, ... [FROM ...] WHERE ... [RETURNING ...]`.
type Update struct {
	Lit       string
	With      *With
	Table     *TableRef
	Set       []Assignment
	From      TableExpr // additional FROM sources, nil if absent
	Where     Expression
	Returning []SelectItem
}

func (u *Update) commandNode()        {}
func (u *Update) TokenLiteral() string { return u.Lit }
func (u *Update) String() string {
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(u.Table.String())
	b.WriteString(" SET ")
	parts := make([]string, len(u.Set))
	for i, a := range u.Set {
		parts[i] = a.Column.String() + " = " + a.Value.String()
	}
	b.WriteString(strings.Join(parts, ", "))
	if u.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(u.Where.String())
	}
	return b.String()
}

// Delete is `DELETE FROM table [USING ...] WHERE ... [RETURNING ...]`.
type Delete struct {
	Lit       string
	With      *With
	Table     *TableRef
	Using     TableExpr
	Where     Expression
	Returning []SelectItem
}

func (d *Delete) commandNode()        {}
func (d *Delete) TokenLiteral() string { return d.Lit }
func (d *Delete) String() string {
	s := "DELETE FROM " + d.Table.String()
	if d.Where != nil {
		s += " WHERE " + d.Where.String()
	}
	return s
}

// MergeAction is one WHEN [NOT] MATCHED [AND cond] THEN ... clause.
type MergeAction struct {
	Matched   bool
	Condition Expression // nil if no AND clause
	// Exactly one of the following describes the THEN action.
	UpdateSet []Assignment
	InsertCols []*Identifier
	InsertVals []Expression
	Delete    bool
	DoNothing bool
}

// Merge is the full `MERGE INTO target USING source ON cond WHEN ... ` upsert
// statement (spec.md §4.4 "INSERT/UPDATE/DELETE/MERGE").
type Merge struct {
	Lit    string
	With   *With
	Target *TableRef
	Source TableExpr
	On     Expression
	Whens  []MergeAction
}

func (m *Merge) commandNode()        {}
func (m *Merge) TokenLiteral() string { return m.Lit }
func (m *Merge) String() string {
	return "MERGE INTO " + m.Target.String() + " USING " + m.Source.String() + " ON " + m.On.String()
}

// -----------------------------------------------------------------------
// DDL
// -----------------------------------------------------------------------

// ColumnDef is one column in a CREATE TABLE / ALTER TABLE ADD COLUMN.
type ColumnDef struct {
	Name       *Identifier
	Type       *TypeDescriptor
	NotNull    bool
	Default    Expression
	Identity   *IdentitySpec
	Constraints []TableConstraint // inline column-level constraints (PK, UNIQUE, CHECK, REFERENCES)
	Comment    string
}

// IdentitySpec is a GENERATED [ALWAYS|BY DEFAULT] AS IDENTITY clause.
type IdentitySpec struct {
	Always    bool
	StartWith int64
	Increment int64
}

// ConstraintKind enumerates table/column constraint forms.
type ConstraintKind int

const (
	ConstraintPrimaryKey ConstraintKind = iota
	ConstraintUnique
	ConstraintCheck
	ConstraintForeignKey
)

// ReferentialAction enumerates ON DELETE/ON UPDATE actions. There is no
// separate IGNORE value: the parser maps the "IGNORE" spelling to
// SetDefaultAction (spec.md §9 Open Question 3).
type ReferentialAction int

const (
	NoAction ReferentialAction = iota
	CascadeAction
	SetNullAction
	SetDefaultAction
	RestrictAction
)

// TableConstraint is a named or unnamed table-level constraint.
type TableConstraint struct {
	Name       *Identifier // nil if unnamed
	Kind       ConstraintKind
	Columns    []*Identifier
	Check      Expression // set when Kind == ConstraintCheck

	// Foreign-key fields.
	RefSchema  *Identifier
	RefTable   *Identifier
	RefColumns []*Identifier
	OnDelete   ReferentialAction
	OnUpdate   ReferentialAction
}

// CreateTable is `CREATE TABLE [IF NOT EXISTS] name (cols, constraints)`.
type CreateTable struct {
	Lit         string
	Schema      *Identifier
	Name        *Identifier
	IfNotExists bool
	Columns     []ColumnDef
	Constraints []TableConstraint
	AsQuery     Command // CREATE TABLE ... AS SELECT, nil otherwise
	Temporary   bool
}

func (c *CreateTable) commandNode()        {}
func (c *CreateTable) TokenLiteral() string { return c.Lit }
func (c *CreateTable) String() string {
	return "CREATE TABLE " + c.Name.String()
}

// CreateView is `CREATE [OR REPLACE] VIEW name [(cols)] AS query`.
type CreateView struct {
	Lit       string
	Schema    *Identifier
	Name      *Identifier
	Columns   []*Identifier
	OrReplace bool
	Query     Command
}

func (c *CreateView) commandNode()        {}
func (c *CreateView) TokenLiteral() string { return c.Lit }
func (c *CreateView) String() string {
	return "CREATE VIEW " + c.Name.String() + " AS " + c.Query.String()
}

// CreateIndex is `CREATE [UNIQUE] INDEX name ON table (cols)`.
type CreateIndex struct {
	Lit      string
	Name     *Identifier
	Table    *TableRef
	Unique   bool
	Columns  []OrderItem
	IfNotExists bool
}

func (c *CreateIndex) commandNode()        {}
func (c *CreateIndex) TokenLiteral() string { return c.Lit }
func (c *CreateIndex) String() string {
	return "CREATE INDEX " + c.Name.String() + " ON " + c.Table.String()
}

// CreateSequence is `CREATE SEQUENCE name [options]`.
type CreateSequence struct {
	Lit         string
	Schema      *Identifier
	Name        *Identifier
	IfNotExists bool
	StartWith   Expression
	IncrementBy Expression
	MinValue    Expression
	MaxValue    Expression
	Cycle       bool
}

func (c *CreateSequence) commandNode()        {}
func (c *CreateSequence) TokenLiteral() string { return c.Lit }
func (c *CreateSequence) String() string       { return "CREATE SEQUENCE " + c.Name.String() }

// CreateDomain is `CREATE DOMAIN name AS basetype [DEFAULT expr] [CHECK (expr)]`.
type CreateDomain struct {
	Lit      string
	Schema   *Identifier
	Name     *Identifier
	BaseType *TypeDescriptor
	Default  Expression
	Check    Expression
}

func (c *CreateDomain) commandNode()        {}
func (c *CreateDomain) TokenLiteral() string { return c.Lit }
func (c *CreateDomain) String() string {
	return "CREATE DOMAIN " + c.Name.String() + " AS " + c.BaseType.String()
}

// DropKind selects the catalog object class a Drop command targets.
type DropKind int

const (
	DropTable DropKind = iota
	DropView
	DropIndex
	DropSequence
	DropDomain
	DropSchema
	DropTrigger
	DropRole
	DropUser
	DropSynonym
	DropAlias
	DropAggregate
	DropConstant
)

func (k DropKind) String() string {
	switch k {
	case DropView:
		return "VIEW"
	case DropIndex:
		return "INDEX"
	case DropSequence:
		return "SEQUENCE"
	case DropDomain:
		return "DOMAIN"
	case DropSchema:
		return "SCHEMA"
	case DropTrigger:
		return "TRIGGER"
	case DropRole:
		return "ROLE"
	case DropUser:
		return "USER"
	case DropSynonym:
		return "SYNONYM"
	case DropAlias:
		return "ALIAS"
	case DropAggregate:
		return "AGGREGATE"
	case DropConstant:
		return "CONSTANT"
	default:
		return "TABLE"
	}
}

// Drop is `DROP <kind> [IF EXISTS] name [CASCADE|RESTRICT]`.
type Drop struct {
	Lit      string
	Kind     DropKind
	Schema   *Identifier
	Name     *Identifier
	IfExists bool
	Cascade  bool
}

func (d *Drop) commandNode()        {}
func (d *Drop) TokenLiteral() string { return d.Lit }
func (d *Drop) String() string       { return "DROP " + d.Kind.String() + " " + d.Name.String() }

// AlterTableAction is one action of an ALTER TABLE statement.
type AlterTableAction interface {
	Node
	alterActionNode()
}

// AddColumn is `ADD COLUMN coldef`.
type AddColumn struct {
	Lit    string
	Column ColumnDef
}

func (a *AddColumn) alterActionNode()      {}
func (a *AddColumn) TokenLiteral() string { return a.Lit }
func (a *AddColumn) String() string       { return "ADD COLUMN " + a.Column.Name.String() }

// DropColumn is `DROP COLUMN name`.
type DropColumn struct {
	Lit  string
	Name *Identifier
}

func (d *DropColumn) alterActionNode()      {}
func (d *DropColumn) TokenLiteral() string { return d.Lit }
func (d *DropColumn) String() string       { return "DROP COLUMN " + d.Name.String() }

// AlterColumnType is `ALTER COLUMN name [SET DATA] TYPE type`.
type AlterColumnType struct {
	Lit  string
	Name *Identifier
	Type *TypeDescriptor
}

func (a *AlterColumnType) alterActionNode()      {}
func (a *AlterColumnType) TokenLiteral() string { return a.Lit }
func (a *AlterColumnType) String() string {
	return "ALTER COLUMN " + a.Name.String() + " TYPE " + a.Type.String()
}

// AddTableConstraint is `ADD CONSTRAINT ...`.
type AddTableConstraint struct {
	Lit        string
	Constraint TableConstraint
}

func (a *AddTableConstraint) alterActionNode()      {}
func (a *AddTableConstraint) TokenLiteral() string { return a.Lit }
func (a *AddTableConstraint) String() string       { return "ADD CONSTRAINT" }

// DropConstraint is `DROP CONSTRAINT name`.
type DropConstraint struct {
	Lit  string
	Name *Identifier
}

func (d *DropConstraint) alterActionNode()      {}
func (d *DropConstraint) TokenLiteral() string { return d.Lit }
func (d *DropConstraint) String() string       { return "DROP CONSTRAINT " + d.Name.String() }

// RenameTable is `RENAME TO newname`.
type RenameTable struct {
	Lit     string
	NewName *Identifier
}

func (r *RenameTable) alterActionNode()      {}
func (r *RenameTable) TokenLiteral() string { return r.Lit }
func (r *RenameTable) String() string       { return "RENAME TO " + r.NewName.String() }

// AlterTable is `ALTER TABLE [IF EXISTS] name action`.
type AlterTable struct {
	Lit      string
	Schema   *Identifier
	Name     *Identifier
	IfExists bool
	Action   AlterTableAction
}

func (a *AlterTable) commandNode()        {}
func (a *AlterTable) TokenLiteral() string { return a.Lit }
func (a *AlterTable) String() string {
	return "ALTER TABLE " + a.Name.String() + " " + a.Action.String()
}

// -----------------------------------------------------------------------
// Session / transaction-control statements
// -----------------------------------------------------------------------

// Set is `SET name = expr` (a session variable/config assignment).
type Set struct {
	Lit   string
	Name  string
	Value Expression
}

func (s *Set) commandNode()        {}
func (s *Set) TokenLiteral() string { return s.Lit }
func (s *Set) String() string       { return "SET " + s.Name + " = " + s.Value.String() }

// Show is `SHOW name` (session/config introspection).
type Show struct {
	Lit  string
	Name string
}

func (s *Show) commandNode()        {}
func (s *Show) TokenLiteral() string { return s.Lit }
func (s *Show) String() string       { return "SHOW " + s.Name }

// Explain wraps another command for EXPLAIN [ANALYZE] / EXPLAIN PLAN FOR.
type Explain struct {
	Lit     string
	Analyze bool
	Target  Command
}

func (e *Explain) commandNode()        {}
func (e *Explain) TokenLiteral() string { return e.Lit }
func (e *Explain) String() string {
	if e.Analyze {
		return "EXPLAIN ANALYZE " + e.Target.String()
	}
	return "EXPLAIN " + e.Target.String()
}

// TxnKind enumerates transaction-control statements.
type TxnKind int

const (
	TxnBegin TxnKind = iota
	TxnCommit
	TxnRollback
	TxnSavepoint
	TxnReleaseSavepoint
	TxnRollbackToSavepoint
)

// TransactionControl covers BEGIN/COMMIT/ROLLBACK/SAVEPOINT statements.
type TransactionControl struct {
	Lit            string
	Kind           TxnKind
	SavepointName  *Identifier // set for the three savepoint-related kinds
}

func (t *TransactionControl) commandNode()        {}
func (t *TransactionControl) TokenLiteral() string { return t.Lit }
func (t *TransactionControl) String() string {
	switch t.Kind {
	case TxnCommit:
		return "COMMIT"
	case TxnRollback:
		return "ROLLBACK"
	case TxnSavepoint:
		return "SAVEPOINT " + t.SavepointName.String()
	case TxnReleaseSavepoint:
		return "RELEASE SAVEPOINT " + t.SavepointName.String()
	case TxnRollbackToSavepoint:
		return "ROLLBACK TO SAVEPOINT " + t.SavepointName.String()
	default:
		return "BEGIN"
	}
}

// Call is `CALL procedure(args)`.
type Call struct {
	Lit  string
	Proc *FuncCall
}

func (c *Call) commandNode()        {}
func (c *Call) TokenLiteral() string { return c.Lit }
func (c *Call) String() string       { return "CALL " + c.Proc.String() }

// PrepareStmt is `PREPARE name [(types)] AS sql_text`.
type PrepareStmt struct {
	Lit   string
	Name  *Identifier
	Types []*TypeDescriptor
	SQL   string
}

func (p *PrepareStmt) commandNode()        {}
func (p *PrepareStmt) TokenLiteral() string { return p.Lit }
func (p *PrepareStmt) String() string       { return "PREPARE " + p.Name.String() }

// ExecuteStmt is `EXECUTE name [(args)]`.
type ExecuteStmt struct {
	Lit  string
	Name *Identifier
	Args []Expression
}

func (e *ExecuteStmt) commandNode()        {}
func (e *ExecuteStmt) TokenLiteral() string { return e.Lit }
func (e *ExecuteStmt) String() string       { return "EXECUTE " + e.Name.String() }

// Deallocate is `DEALLOCATE [PREPARE] name`.
type Deallocate struct {
	Lit  string
	Name *Identifier
}

func (d *Deallocate) commandNode()        {}
func (d *Deallocate) TokenLiteral() string { return d.Lit }
func (d *Deallocate) String() string       { return "DEALLOCATE " + d.Name.String() }

// NoOperation is the empty statement: a script with no statement in it
// (empty, or only `;` separators such as `;;;`) parses as a single
// NoOperation rather than an error (spec.md §4.6).
type NoOperation struct {
	Lit string
}

func (n *NoOperation) commandNode()        {}
func (n *NoOperation) TokenLiteral() string { return n.Lit }
func (n *NoOperation) String() string       { return "" }

// CommandList is a `;`-separated script of statements (spec.md §4.6
// "Multi-statement scripts"). The parser fills Commands with every
// statement of the script up front; there is no lazy, on-demand parsing of
// the statements after the first.
type CommandList struct {
	Commands []Command
}

func (c *CommandList) commandNode()        {}
func (c *CommandList) TokenLiteral() string {
	if len(c.Commands) == 0 {
		return ""
	}
	return c.Commands[0].TokenLiteral()
}
func (c *CommandList) String() string {
	parts := make([]string, len(c.Commands))
	for i, cmd := range c.Commands {
		parts[i] = cmd.String()
	}
	return strings.Join(parts, "; ")
}

// -----------------------------------------------------------------------
// Remaining DDL: schema/role/user/synonym/trigger/alias/aggregate/constant
// -----------------------------------------------------------------------

// CreateSchema is `CREATE SCHEMA [IF NOT EXISTS] name [AUTHORIZATION user]`.
type CreateSchema struct {
	Lit           string
	Name          *Identifier
	IfNotExists   bool
	Authorization *Identifier
}

func (c *CreateSchema) commandNode()         {}
func (c *CreateSchema) TokenLiteral() string { return c.Lit }
func (c *CreateSchema) String() string       { return "CREATE SCHEMA " + c.Name.String() }

// CreateRole is `CREATE ROLE [IF NOT EXISTS] name`.
type CreateRole struct {
	Lit         string
	Name        *Identifier
	IfNotExists bool
}

func (c *CreateRole) commandNode()         {}
func (c *CreateRole) TokenLiteral() string { return c.Lit }
func (c *CreateRole) String() string       { return "CREATE ROLE " + c.Name.String() }

// CreateUser is `CREATE USER [IF NOT EXISTS] name [PASSWORD expr] [ADMIN]`.
type CreateUser struct {
	Lit         string
	Name        *Identifier
	IfNotExists bool
	Password    Expression
	Admin       bool
}

func (c *CreateUser) commandNode()         {}
func (c *CreateUser) TokenLiteral() string { return c.Lit }
func (c *CreateUser) String() string       { return "CREATE USER " + c.Name.String() }

// CreateSynonym is `CREATE [OR REPLACE] SYNONYM name FOR [schema.]target`.
type CreateSynonym struct {
	Lit          string
	Schema       *Identifier
	Name         *Identifier
	OrReplace    bool
	TargetSchema *Identifier
	Target       *Identifier
}

func (c *CreateSynonym) commandNode()         {}
func (c *CreateSynonym) TokenLiteral() string { return c.Lit }
func (c *CreateSynonym) String() string {
	return "CREATE SYNONYM " + c.Name.String() + " FOR " + c.Target.String()
}

// TriggerTiming enumerates BEFORE/AFTER/INSTEAD OF.
type TriggerTiming int

const (
	TriggerBefore TriggerTiming = iota
	TriggerAfter
	TriggerInsteadOf
)

// TriggerEvent enumerates the DML event a trigger fires on.
type TriggerEvent int

const (
	TriggerInsert TriggerEvent = iota
	TriggerUpdate
	TriggerDelete
	TriggerSelect
	TriggerRollback
)

// CreateTrigger is `CREATE TRIGGER name {BEFORE|AFTER|INSTEAD OF} event ON
// table [FOR EACH ROW|STATEMENT] CALL className`.
type CreateTrigger struct {
	Lit       string
	Name      *Identifier
	Timing    TriggerTiming
	Events    []TriggerEvent
	Table     *TableRef
	ForEach   bool // true = FOR EACH ROW, false = statement-level
	CallClass string
}

func (c *CreateTrigger) commandNode()         {}
func (c *CreateTrigger) TokenLiteral() string { return c.Lit }
func (c *CreateTrigger) String() string {
	return "CREATE TRIGGER " + c.Name.String() + " ON " + c.Table.String()
}

// CreateAlias is `CREATE ALIAS name [deterministic] FOR className` — a
// function alias bound to an opaque external method (spec.md §4.3
// "FunctionAlias binds to a Java-like external method"; the invocation
// mechanism itself is out of scope for this front-end).
type CreateAlias struct {
	Lit           string
	Schema        *Identifier
	Name          *Identifier
	Deterministic bool
	ClassMethod   string
}

func (c *CreateAlias) commandNode()         {}
func (c *CreateAlias) TokenLiteral() string { return c.Lit }
func (c *CreateAlias) String() string       { return "CREATE ALIAS " + c.Name.String() }

// CreateAggregate is `CREATE AGGREGATE name FOR className` — a user-defined
// aggregate, distinguished from CreateAlias only by the invocation form
// (spec.md §4.3 "UserAggregate ... distinguished by invocation form").
type CreateAggregate struct {
	Lit         string
	Schema      *Identifier
	Name        *Identifier
	ClassMethod string
}

func (c *CreateAggregate) commandNode()         {}
func (c *CreateAggregate) TokenLiteral() string { return c.Lit }
func (c *CreateAggregate) String() string       { return "CREATE AGGREGATE " + c.Name.String() }

// CreateConstant is `CREATE CONSTANT name VALUE expr`.
type CreateConstant struct {
	Lit    string
	Schema *Identifier
	Name   *Identifier
	Value  Expression
}

func (c *CreateConstant) commandNode()         {}
func (c *CreateConstant) TokenLiteral() string { return c.Lit }
func (c *CreateConstant) String() string       { return "CREATE CONSTANT " + c.Name.String() }

// LinkedTable is `CREATE LINKED TABLE name(driver, url, user, password,
// targetTable)`; the connection itself is an external-collaborator concern
// (spec.md §1), this node only records the DDL shape.
type LinkedTable struct {
	Lit         string
	Name        *Identifier
	Driver      Expression
	URL         Expression
	User        Expression
	Password    Expression
	TargetTable Expression
}

func (l *LinkedTable) commandNode()         {}
func (l *LinkedTable) TokenLiteral() string { return l.Lit }
func (l *LinkedTable) String() string       { return "CREATE LINKED TABLE " + l.Name.String() }

// Truncate is `TRUNCATE TABLE name`.
type Truncate struct {
	Lit   string
	Table *TableRef
}

func (t *Truncate) commandNode()         {}
func (t *Truncate) TokenLiteral() string { return t.Lit }
func (t *Truncate) String() string       { return "TRUNCATE TABLE " + t.Table.String() }

// CommentOn is `COMMENT ON {TABLE|COLUMN|...} target IS 'text'`.
type CommentOn struct {
	Lit        string
	ObjectKind string // "TABLE", "COLUMN", "VIEW", ...
	Target     *Identifier
	TargetCol  *Identifier // set for COMMENT ON COLUMN table.column
	Text       string
}

func (c *CommentOn) commandNode()         {}
func (c *CommentOn) TokenLiteral() string { return c.Lit }
func (c *CommentOn) String() string {
	return "COMMENT ON " + c.ObjectKind + " " + c.Target.String() + " IS '" + c.Text + "'"
}

// Checkpoint is `CHECKPOINT [SYNC]`.
type Checkpoint struct {
	Lit  string
	Sync bool
}

func (c *Checkpoint) commandNode()         {}
func (c *Checkpoint) TokenLiteral() string { return c.Lit }
func (c *Checkpoint) String() string {
	if c.Sync {
		return "CHECKPOINT SYNC"
	}
	return "CHECKPOINT"
}

// ShutdownMode enumerates the SHUTDOWN statement's qualifier.
type ShutdownMode int

const (
	ShutdownNormal ShutdownMode = iota
	ShutdownImmediately
	ShutdownCompact
	ShutdownDefrag
)

// Shutdown is `SHUTDOWN [IMMEDIATELY|COMPACT|DEFRAG]`.
type Shutdown struct {
	Lit  string
	Mode ShutdownMode
}

func (s *Shutdown) commandNode()         {}
func (s *Shutdown) TokenLiteral() string { return s.Lit }
func (s *Shutdown) String() string       { return "SHUTDOWN" }

// RunScript is `RUNSCRIPT FROM expr` / `SCRIPT [TO expr]`, used to re-play or
// dump a batch of statements (spec.md §4.4 "Session statements").
type RunScript struct {
	Lit    string
	Source Expression // the FROM/TO argument; nil when absent
	IsDump bool        // true for SCRIPT (dump), false for RUNSCRIPT (replay)
}

func (r *RunScript) commandNode()         {}
func (r *RunScript) TokenLiteral() string { return r.Lit }
func (r *RunScript) String() string {
	if r.IsDump {
		return "SCRIPT"
	}
	return "RUNSCRIPT"
}

// Help is `HELP [topic]`.
type Help struct {
	Lit   string
	Topic string
}

func (h *Help) commandNode()         {}
func (h *Help) TokenLiteral() string { return h.Lit }
func (h *Help) String() string       { return "HELP" }

// Use is `USE schema`, a session current-schema switch.
type Use struct {
	Lit    string
	Schema *Identifier
}

func (u *Use) commandNode()         {}
func (u *Use) TokenLiteral() string { return u.Lit }
func (u *Use) String() string       { return "USE " + u.Schema.String() }

// Analyze is `ANALYZE [TABLE name] [SAMPLE_SIZE n]`.
type Analyze struct {
	Lit        string
	Table      *TableRef // nil for a database-wide ANALYZE
	SampleSize Expression
}

func (a *Analyze) commandNode()         {}
func (a *Analyze) TokenLiteral() string { return a.Lit }
func (a *Analyze) String() string       { return "ANALYZE" }
