package ast

import "strings"

// -----------------------------------------------------------------------
// Predicates
// -----------------------------------------------------------------------

// InExpr is `expr [NOT] IN (list)` or `expr [NOT] IN (subquery)`.
type InExpr struct {
	Lit      string
	Operand  Expression
	Not      bool
	List     []Expression // nil when Subquery is set
	Subquery *Subquery
}

func (e *InExpr) expressionNode()      {}
func (e *InExpr) TokenLiteral() string { return e.Lit }
func (e *InExpr) String() string {
	var b strings.Builder
	b.WriteString(e.Operand.String())
	if e.Not {
		b.WriteString(" NOT")
	}
	b.WriteString(" IN (")
	if e.Subquery != nil {
		b.WriteString(e.Subquery.Query.String())
	} else {
		parts := make([]string, len(e.List))
		for i, v := range e.List {
			parts[i] = v.String()
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	b.WriteString(")")
	return b.String()
}

// BetweenExpr is `expr [NOT] BETWEEN [ASYMMETRIC|SYMMETRIC] low AND high`.
type BetweenExpr struct {
	Lit       string
	Operand   Expression
	Not       bool
	Symmetric bool
	Low, High Expression
}

func (e *BetweenExpr) expressionNode()      {}
func (e *BetweenExpr) TokenLiteral() string { return e.Lit }
func (e *BetweenExpr) String() string {
	var b strings.Builder
	b.WriteString(e.Operand.String())
	if e.Not {
		b.WriteString(" NOT")
	}
	b.WriteString(" BETWEEN ")
	if e.Symmetric {
		b.WriteString("SYMMETRIC ")
	}
	b.WriteString(e.Low.String())
	b.WriteString(" AND ")
	b.WriteString(e.High.String())
	return b.String()
}

// LikeKind distinguishes the LIKE family of pattern-match predicates.
type LikeKind int

const (
	LikeExact LikeKind = iota
	LikeInsensitive
	LikeRegexp
)

func (k LikeKind) keyword() string {
	switch k {
	case LikeInsensitive:
		return "ILIKE"
	case LikeRegexp:
		return "REGEXP"
	default:
		return "LIKE"
	}
}

// LikeExpr is `expr [NOT] LIKE pattern [ESCAPE esc]` and its ILIKE/REGEXP
// variants.
type LikeExpr struct {
	Lit     string
	Operand Expression
	Not     bool
	Kind    LikeKind
	Pattern Expression
	Escape  Expression // nil when no ESCAPE clause
}

func (e *LikeExpr) expressionNode()      {}
func (e *LikeExpr) TokenLiteral() string { return e.Lit }
func (e *LikeExpr) String() string {
	var b strings.Builder
	b.WriteString(e.Operand.String())
	if e.Not {
		b.WriteString(" NOT")
	}
	b.WriteString(" ")
	b.WriteString(e.Kind.keyword())
	b.WriteString(" ")
	b.WriteString(e.Pattern.String())
	if e.Escape != nil {
		b.WriteString(" ESCAPE ")
		b.WriteString(e.Escape.String())
	}
	return b.String()
}

// IsKind distinguishes the IS-predicate family.
type IsKind int

const (
	IsNull IsKind = iota
	IsNotNull
	IsTrue
	IsNotTrue
	IsFalse
	IsNotFalse
	IsUnknown
	IsNotUnknown
	IsDistinctFrom
	IsNotDistinctFrom
)

var isKindText = map[IsKind]string{
	IsNull: "IS NULL", IsNotNull: "IS NOT NULL", IsTrue: "IS TRUE",
	IsNotTrue: "IS NOT TRUE", IsFalse: "IS FALSE", IsNotFalse: "IS NOT FALSE",
	IsUnknown: "IS UNKNOWN", IsNotUnknown: "IS NOT UNKNOWN",
	IsDistinctFrom: "IS DISTINCT FROM", IsNotDistinctFrom: "IS NOT DISTINCT FROM",
}

// IsExpr covers IS [NOT] NULL/TRUE/FALSE/UNKNOWN and IS [NOT] DISTINCT FROM.
type IsExpr struct {
	Lit     string
	Operand Expression
	Kind    IsKind
	Other   Expression // set only for the DISTINCT FROM variants
}

func (e *IsExpr) expressionNode()      {}
func (e *IsExpr) TokenLiteral() string { return e.Lit }
func (e *IsExpr) String() string {
	if e.Other != nil {
		return e.Operand.String() + " " + isKindText[e.Kind] + " " + e.Other.String()
	}
	return e.Operand.String() + " " + isKindText[e.Kind]
}

// UniqueExpr is `UNIQUE (subquery)`.
type UniqueExpr struct {
	Lit      string
	Subquery *Subquery
}

func (e *UniqueExpr) expressionNode()      {}
func (e *UniqueExpr) TokenLiteral() string { return e.Lit }
func (e *UniqueExpr) String() string       { return "UNIQUE (" + e.Subquery.Query.String() + ")" }

// ExistsExpr is `[NOT] EXISTS (subquery)`.
type ExistsExpr struct {
	Lit      string
	Not      bool
	Subquery *Subquery
}

func (e *ExistsExpr) expressionNode()      {}
func (e *ExistsExpr) TokenLiteral() string { return e.Lit }
func (e *ExistsExpr) String() string {
	if e.Not {
		return "NOT EXISTS (" + e.Subquery.Query.String() + ")"
	}
	return "EXISTS (" + e.Subquery.Query.String() + ")"
}

// IntersectsExpr is the geometry-specific `expr1 && expr2` spatial-overlap
// predicate (spec.md §4.2 Geometry types, §4.3 predicates).
type IntersectsExpr struct {
	Lit         string
	Left, Right Expression
}

func (e *IntersectsExpr) expressionNode()      {}
func (e *IntersectsExpr) TokenLiteral() string { return e.Lit }
func (e *IntersectsExpr) String() string {
	return e.Left.String() + " && " + e.Right.String()
}

// QuantifiedComparison is `expr op ANY|ALL|SOME (subquery)`.
type QuantifiedComparison struct {
	Lit        string
	Left       Expression
	Operator   string
	Quantifier string // "ANY", "ALL", "SOME"
	Subquery   *Subquery
}

func (e *QuantifiedComparison) expressionNode()      {}
func (e *QuantifiedComparison) TokenLiteral() string { return e.Lit }
func (e *QuantifiedComparison) String() string {
	return e.Left.String() + " " + e.Operator + " " + e.Quantifier + " (" + e.Subquery.Query.String() + ")"
}

// -----------------------------------------------------------------------
// CASE
// -----------------------------------------------------------------------

// WhenClause is one WHEN/THEN arm of a CASE expression.
type WhenClause struct {
	// Condition holds the WHEN-expression for a searched CASE, or the
	// comparison value for a simple CASE (compared against CaseExpr.Operand).
	Condition Expression
	Result    Expression
}

// CaseExpr covers both simple `CASE operand WHEN ... END` and searched
// `CASE WHEN cond ... END` forms; Operand is nil for the searched form.
type CaseExpr struct {
	Lit     string
	Operand Expression // nil for searched CASE
	Whens   []WhenClause
	Else    Expression // nil when no ELSE clause
}

func (e *CaseExpr) expressionNode()      {}
func (e *CaseExpr) TokenLiteral() string { return e.Lit }
func (e *CaseExpr) String() string {
	var b strings.Builder
	b.WriteString("CASE")
	if e.Operand != nil {
		b.WriteString(" ")
		b.WriteString(e.Operand.String())
	}
	for _, w := range e.Whens {
		b.WriteString(" WHEN ")
		b.WriteString(w.Condition.String())
		b.WriteString(" THEN ")
		b.WriteString(w.Result.String())
	}
	if e.Else != nil {
		b.WriteString(" ELSE ")
		b.WriteString(e.Else.String())
	}
	b.WriteString(" END")
	return b.String()
}

// CoalesceExpr covers COALESCE/NULLIF/GREATEST/LEAST-style variadic
// value-expressions that aren't true function calls in every dialect.
type CoalesceExpr struct {
	Lit  string
	Name string // "COALESCE", "NULLIF", "GREATEST", "LEAST"
	Args []Expression
}

func (e *CoalesceExpr) expressionNode()      {}
func (e *CoalesceExpr) TokenLiteral() string { return e.Lit }
func (e *CoalesceExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// -----------------------------------------------------------------------
// Function calls and window functions
// -----------------------------------------------------------------------

// OrderItem is one ORDER BY element, reused by both query ORDER BY and
// window ORDER BY clauses.
type OrderItem struct {
	Expr       Expression
	Descending bool
	NullsFirst bool
	NullsLast  bool
}

// FuncCall is a scalar, aggregate, or table function invocation. Window is
// non-nil when the call carries an OVER clause.
type FuncCall struct {
	Lit      string
	Schema   *Identifier // nil unless schema-qualified
	Name     *Identifier
	Distinct bool
	Star     bool // COUNT(*)
	Args     []Expression
	Filter   Expression // FILTER (WHERE ...), nil if absent
	Window   *WindowSpec

	// ResolvedSchema is the schema name the resolver bound this call to,
	// filled in once resolution succeeds; only attempted for explicitly
	// schema-qualified calls (an unqualified call is presumed to be a
	// builtin/aggregate dispatched outside the catalog).
	ResolvedSchema string
}

func (f *FuncCall) expressionNode()      {}
func (f *FuncCall) TokenLiteral() string { return f.Lit }
func (f *FuncCall) String() string {
	var b strings.Builder
	if f.Schema != nil {
		b.WriteString(f.Schema.String())
		b.WriteString(".")
	}
	b.WriteString(f.Name.String())
	b.WriteString("(")
	if f.Star {
		b.WriteString("*")
	} else {
		if f.Distinct {
			b.WriteString("DISTINCT ")
		}
		parts := make([]string, len(f.Args))
		for i, a := range f.Args {
			parts[i] = a.String()
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	b.WriteString(")")
	if f.Filter != nil {
		b.WriteString(" FILTER (WHERE ")
		b.WriteString(f.Filter.String())
		b.WriteString(")")
	}
	if f.Window != nil {
		b.WriteString(" OVER ")
		b.WriteString(f.Window.String())
	}
	return b.String()
}

// FrameBoundKind enumerates the window-frame bound forms.
type FrameBoundKind int

const (
	FrameUnboundedPreceding FrameBoundKind = iota
	FrameUnboundedFollowing
	FramePreceding
	FrameFollowing
	FrameCurrentRow
)

// FrameBound is one end of a window frame's extent.
type FrameBound struct {
	Kind   FrameBoundKind
	Offset Expression // set for FramePreceding/FrameFollowing
}

func (b FrameBound) String() string {
	switch b.Kind {
	case FrameUnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case FrameUnboundedFollowing:
		return "UNBOUNDED FOLLOWING"
	case FramePreceding:
		return b.Offset.String() + " PRECEDING"
	case FrameFollowing:
		return b.Offset.String() + " FOLLOWING"
	default:
		return "CURRENT ROW"
	}
}

// FrameUnit selects ROWS/RANGE/GROUPS framing.
type FrameUnit int

const (
	FrameRows FrameUnit = iota
	FrameRange
	FrameGroups
)

func (u FrameUnit) String() string {
	switch u {
	case FrameRange:
		return "RANGE"
	case FrameGroups:
		return "GROUPS"
	default:
		return "ROWS"
	}
}

// FrameExclusion selects the EXCLUDE option of a window frame.
type FrameExclusion int

const (
	ExcludeNone FrameExclusion = iota
	ExcludeCurrentRow
	ExcludeGroup
	ExcludeTies
	ExcludeNoOthers
)

// WindowFrame is the ROWS/RANGE/GROUPS BETWEEN ... clause of a window
// specification (spec.md §4.3 "Window functions").
type WindowFrame struct {
	Unit      FrameUnit
	Start     FrameBound
	End       *FrameBound // nil for a single-bound frame (BETWEEN omitted)
	Exclusion FrameExclusion
}

func (f *WindowFrame) String() string {
	var b strings.Builder
	b.WriteString(f.Unit.String())
	b.WriteString(" ")
	if f.End != nil {
		b.WriteString("BETWEEN ")
		b.WriteString(f.Start.String())
		b.WriteString(" AND ")
		b.WriteString(f.End.String())
	} else {
		b.WriteString(f.Start.String())
	}
	switch f.Exclusion {
	case ExcludeCurrentRow:
		b.WriteString(" EXCLUDE CURRENT ROW")
	case ExcludeGroup:
		b.WriteString(" EXCLUDE GROUP")
	case ExcludeTies:
		b.WriteString(" EXCLUDE TIES")
	case ExcludeNoOthers:
		b.WriteString(" EXCLUDE NO OTHERS")
	}
	return b.String()
}

// WindowSpec is an inline `(PARTITION BY ... ORDER BY ... frame)` or a named
// reference to a WINDOW-clause definition.
type WindowSpec struct {
	Name        string // non-empty when this is a bare name reference
	BaseName    string // non-empty when this extends a named window
	PartitionBy []Expression
	OrderBy     []OrderItem
	Frame       *WindowFrame
}

func (w *WindowSpec) String() string {
	if w.Name != "" {
		return w.Name
	}
	var b strings.Builder
	b.WriteString("(")
	if w.BaseName != "" {
		b.WriteString(w.BaseName)
		b.WriteString(" ")
	}
	if len(w.PartitionBy) > 0 {
		parts := make([]string, len(w.PartitionBy))
		for i, p := range w.PartitionBy {
			parts[i] = p.String()
		}
		b.WriteString("PARTITION BY ")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(" ")
	}
	if len(w.OrderBy) > 0 {
		parts := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			parts[i] = orderItemString(o)
		}
		b.WriteString("ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(" ")
	}
	if w.Frame != nil {
		b.WriteString(w.Frame.String())
	}
	return strings.TrimRight(b.String(), " ") + ")"
}

func orderItemString(o OrderItem) string {
	s := o.Expr.String()
	if o.Descending {
		s += " DESC"
	} else {
		s += " ASC"
	}
	if o.NullsFirst {
		s += " NULLS FIRST"
	} else if o.NullsLast {
		s += " NULLS LAST"
	}
	return s
}

// NamedWindow is one entry of a SELECT's WINDOW clause.
type NamedWindow struct {
	Name *Identifier
	Spec *WindowSpec
}
