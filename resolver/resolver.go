// Package resolver performs the name-resolution pass that turns the
// parser's raw ast.ColumnRef/ast.TableRef/ast.FuncCall nodes into
// catalog-bound references: schema lookup, table/view/sequence/domain/
// function resolution, parameter bookkeeping, and the CTE shadow-table
// arena. It depends only on the catalog package's narrow interfaces, never
// on a concrete storage engine (spec.md §1).
package resolver

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/catalog"
	"github.com/vippsas/sqlfront/dialect"
	"github.com/vippsas/sqlfront/sqlerr"
)

// Resolver binds one parse's worth of name lookups against a Session. It is
// not safe for concurrent use; a new Resolver is created per Prepare call.
type Resolver struct {
	session catalog.Session
	log     *logrus.Entry

	params ParamTracker
	ctes   *CTEScope
	folder cases.Caser
}

// New creates a Resolver bound to session.
func New(session catalog.Session) *Resolver {
	var folder cases.Caser
	switch session.Flags().CaseFold {
	case dialect.CaseFoldUpper:
		folder = cases.Upper(language.Und)
	case dialect.CaseFoldLower:
		folder = cases.Lower(language.Und)
	default:
		folder = cases.Fold()
	}
	return &Resolver{
		session: session,
		log:     logrus.WithField("component", "resolver"),
		ctes:    newCTEScope(session),
		folder:  folder,
	}
}

// Fold canonicalizes name according to the session's case-fold mode.
func (r *Resolver) Fold(name string) string {
	if name == "" || r.session.Flags().CaseFold == dialect.CaseFoldNone {
		return name
	}
	return r.folder.String(name)
}

// identName returns id's lookup form: its exact spelling when the source
// quoted it (quoting makes casing significant), or the session's folded form
// otherwise (spec.md §3 "Quoted identifier").
func (r *Resolver) identName(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	if id.Quoted {
		return id.Value
	}
	return r.Fold(id.Value)
}

// GetSchemaOrFailIdent resolves the schema an explicit SQL identifier names,
// honoring Quoted.
func (r *Resolver) GetSchemaOrFailIdent(id *ast.Identifier) (catalog.Schema, error) {
	name := r.identName(id)
	schema, ok := r.session.Database().FindSchema(name)
	if !ok {
		return nil, sqlerr.New(sqlerr.SchemaNotFound1, name)
	}
	return schema, nil
}

// schemaOrCurrent resolves id's schema, or the session's current schema when
// id is nil (an unqualified reference).
func (r *Resolver) schemaOrCurrent(id *ast.Identifier) (catalog.Schema, error) {
	if id == nil {
		return r.GetSchemaOrFail("")
	}
	return r.GetSchemaOrFailIdent(id)
}

// CTEScope returns the shadow-table arena for this resolver's parse.
func (r *Resolver) CTEScope() *CTEScope { return r.ctes }

// -----------------------------------------------------------------------
// Schema / table / function / sequence / domain resolution
// -----------------------------------------------------------------------

// FindSchema looks up a schema by name without raising an error when it is
// absent, mirroring the original's find_schema (spec.md §4.4).
func (r *Resolver) FindSchema(name string) (catalog.Schema, bool) {
	if name == "" {
		name = r.session.CurrentSchema()
	}
	return r.session.Database().FindSchema(r.Fold(name))
}

// GetSchemaOrFail looks up a schema, raising SchemaNotFound1 when absent.
func (r *Resolver) GetSchemaOrFail(name string) (catalog.Schema, error) {
	schema, ok := r.FindSchema(name)
	if !ok {
		return nil, sqlerr.New(sqlerr.SchemaNotFound1, name)
	}
	return schema, nil
}

// ResolveTable resolves a table/view reference, searching the explicit
// schema when given or the session's search path otherwise. On failure it
// raises TableOrViewNotFound1, augmented with fuzzy-match candidates
// (TableOrViewNotFoundWithCandidates2) when the schema has similarly named
// tables (for an unqualified reference, the tables of every search-path
// schema), and TableOrViewNotFoundDatabaseEmpty1 when an explicitly named
// schema has no tables at all (spec.md §4.4).
func (r *Resolver) ResolveTable(ref *ast.TableRef) (catalog.Table, error) {
	name := r.identName(ref.Name)

	if ref.Schema != nil {
		schema, err := r.GetSchemaOrFailIdent(ref.Schema)
		if err != nil {
			return nil, err
		}
		return r.lookupInSchema(schema, name)
	}

	if t, ok := r.ctes.Lookup(name); ok {
		return t, nil
	}

	var lastErr error
	var pool []string
	for _, schemaName := range r.searchPath() {
		schema, ok := r.FindSchema(schemaName)
		if !ok {
			continue
		}
		if table, ok := schema.FindTableOrView(name); ok {
			return table, nil
		}
		pool = append(pool, schema.AllTableNames()...)
		lastErr = sqlerr.New(sqlerr.TableOrViewNotFound1, name)
	}
	if lastErr == nil {
		lastErr = sqlerr.New(sqlerr.TableOrViewNotFound1, name)
	}
	return nil, r.withCandidates(lastErr.(*sqlerr.Error), name, pool...)
}

func (r *Resolver) lookupInSchema(schema catalog.Schema, name string) (catalog.Table, error) {
	if table, ok := schema.FindTableOrView(name); ok {
		return table, nil
	}
	allNames := schema.AllTableNames()
	if len(allNames) == 0 {
		return nil, sqlerr.New(sqlerr.TableOrViewNotFoundDatabaseEmpty1, schema.Name())
	}
	return nil, r.withCandidates(sqlerr.New(sqlerr.TableOrViewNotFound1, name), name, allNames...)
}

func (r *Resolver) withCandidates(base *sqlerr.Error, name string, pool ...string) *sqlerr.Error {
	if len(pool) == 0 {
		return base
	}
	candidates := fuzzyMatch(name, pool, 3)
	if len(candidates) == 0 {
		return base
	}
	base.Kind = sqlerr.TableOrViewNotFoundWithCandidates2
	return base.WithCandidates(candidates)
}

func (r *Resolver) searchPath() []string {
	if path := r.session.SearchPath(); len(path) > 0 {
		return path
	}
	return []string{r.session.CurrentSchema()}
}

// ResolveFunction resolves a scalar/aggregate function or alias.
func (r *Resolver) ResolveFunction(call *ast.FuncCall) (catalog.Function, error) {
	name := r.identName(call.Name)
	schema, err := r.schemaOrCurrent(call.Schema)
	if err != nil {
		return nil, err
	}
	fn, ok := schema.FindFunctionOrAggregate(name)
	if !ok {
		return nil, sqlerr.New(sqlerr.FunctionNotFound1, name)
	}
	return fn, nil
}

// ResolveSequence resolves a NEXT/CURRENT VALUE FOR target.
func (r *Resolver) ResolveSequence(ref *ast.SequenceValue) (catalog.Sequence, error) {
	name := r.identName(ref.Sequence)
	schema, err := r.schemaOrCurrent(ref.Schema)
	if err != nil {
		return nil, err
	}
	seq, ok := schema.FindSequence(name)
	if !ok {
		return nil, sqlerr.New(sqlerr.SequenceNotFound1, name)
	}
	return seq, nil
}

// FindDomain resolves a domain-typed column/CAST target to its catalog
// Domain, used by the type/literal layer to expand ast.Domain descriptors
// (spec.md §4.2 "Domain references").
func (r *Resolver) FindDomain(schema, name *ast.Identifier) (catalog.Domain, error) {
	sch, err := r.schemaOrCurrent(schema)
	if err != nil {
		return nil, err
	}
	nm := r.identName(name)
	d, ok := sch.FindDomain(nm)
	if !ok {
		return nil, sqlerr.New(sqlerr.DomainNotFound1, nm)
	}
	return d, nil
}

// ResolveColumn binds a column reference against the known tables in scope
// (tables is the FROM-clause table list already resolved by the caller),
// raising ColumnNotFound1 or AmbiguousColumnName1.
func (r *Resolver) ResolveColumn(ref *ast.ColumnRef, tables []catalog.Table) error {
	name := r.identName(ref.Name)

	if ref.Table != nil {
		tableName := r.identName(ref.Table)
		for _, t := range tables {
			if strings.EqualFold(t.Name(), tableName) {
				if _, ok := t.FindColumn(name); !ok {
					return sqlerr.New(sqlerr.ColumnNotFound1, name)
				}
				ref.ResolvedTable = t.Name()
				return nil
			}
		}
		return sqlerr.New(sqlerr.TableOrViewNotFound1, tableName)
	}

	var found catalog.Table
	for _, t := range tables {
		if _, ok := t.FindColumn(name); ok {
			if found != nil {
				return sqlerr.New(sqlerr.AmbiguousColumnName1, name)
			}
			found = t
		}
	}
	if found == nil {
		return sqlerr.New(sqlerr.ColumnNotFound1, name)
	}
	ref.ResolvedTable = found.Name()
	return nil
}

// fuzzyMatch returns up to limit entries of pool within edit distance 2 of
// name, closest first (spec.md §4.4 "fuzzy-match candidate search").
func fuzzyMatch(name string, pool []string, limit int) []string {
	type scored struct {
		name string
		dist int
	}
	var candidates []scored
	for _, p := range pool {
		d := levenshtein(strings.ToUpper(name), strings.ToUpper(p))
		if d <= 2 {
			candidates = append(candidates, scored{p, d})
		}
	}
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j-1].dist > candidates[j].dist; j-- {
			candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
		}
	}
	out := make([]string, 0, limit)
	for i := 0; i < len(candidates) && i < limit; i++ {
		out = append(out, candidates[i].name)
	}
	return out
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
