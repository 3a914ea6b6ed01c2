package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/catalog"
	"github.com/vippsas/sqlfront/dialect"
	"github.com/vippsas/sqlfront/sqlerr"
)

type fakeColumn struct {
	name string
}

type fakeTable struct {
	name    string
	schema  string
	columns []string
	isView  bool
}

func (t *fakeTable) Name() string   { return t.name }
func (t *fakeTable) Schema() string { return t.schema }
func (t *fakeTable) IsView() bool   { return t.isView }
func (t *fakeTable) Columns() []catalog.Column {
	out := make([]catalog.Column, len(t.columns))
	for i, c := range t.columns {
		out[i] = catalog.Column{Name: c}
	}
	return out
}
func (t *fakeTable) FindColumn(name string) (catalog.Column, bool) {
	for _, c := range t.columns {
		if c == name {
			return catalog.Column{Name: c}, true
		}
	}
	return catalog.Column{}, false
}

type fakeSchema struct {
	name   string
	tables map[string]*fakeTable
}

func (s *fakeSchema) Name() string { return s.name }
func (s *fakeSchema) FindTableOrView(name string) (catalog.Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}
func (s *fakeSchema) FindIndex(string) (catalog.Index, bool)       { return nil, false }
func (s *fakeSchema) FindSequence(string) (catalog.Sequence, bool) { return nil, false }
func (s *fakeSchema) FindDomain(string) (catalog.Domain, bool)     { return nil, false }
func (s *fakeSchema) FindFunctionOrAggregate(string) (catalog.Function, bool) {
	return nil, false
}
func (s *fakeSchema) AllTableNames() []string {
	names := make([]string, 0, len(s.tables))
	for n := range s.tables {
		names = append(names, n)
	}
	return names
}

type fakeDatabase struct {
	schemas map[string]*fakeSchema
	main    *fakeSchema
}

func (d *fakeDatabase) FindSchema(name string) (catalog.Schema, bool) {
	s, ok := d.schemas[name]
	return s, ok
}
func (d *fakeDatabase) MainSchema() catalog.Schema { return d.main }
func (d *fakeDatabase) ShortName() string          { return "TESTDB" }
func (d *fakeDatabase) InstallShadowTable(schema catalog.Schema, name string, t catalog.Table) error {
	d.main.tables[name] = t.(*fakeTable)
	return nil
}
func (d *fakeDatabase) RemoveShadowTable(schema catalog.Schema, name string) error {
	delete(d.main.tables, name)
	return nil
}

type fakeSession struct {
	schema string
	db     *fakeDatabase
	nextID int64
}

func (s *fakeSession) CurrentSchema() string    { return s.schema }
func (s *fakeSession) SearchPath() []string     { return nil }
func (s *fakeSession) CurrentUser() string      { return "TEST" }
func (s *fakeSession) Flags() dialect.Flags     { return dialect.NewFlags(dialect.Regular) }
func (s *fakeSession) IsNonKeyword(int) bool    { return false }
func (s *fakeSession) NextObjectID() int64      { s.nextID++; return s.nextID }
func (s *fakeSession) Database() catalog.Database { return s.db }

func newTestSession() *fakeSession {
	main := &fakeSchema{name: "PUBLIC", tables: map[string]*fakeTable{
		"USERS":  {name: "USERS", schema: "PUBLIC", columns: []string{"ID", "NAME"}},
		"ORDERS": {name: "ORDERS", schema: "PUBLIC", columns: []string{"ID", "USER_ID"}},
	}}
	db := &fakeDatabase{schemas: map[string]*fakeSchema{"PUBLIC": main}, main: main}
	return &fakeSession{schema: "PUBLIC", db: db}
}

func ident(v string) *ast.Identifier { return &ast.Identifier{Lit: v, Value: v} }

func TestResolveTableFound(t *testing.T) {
	r := New(newTestSession())
	table, err := r.ResolveTable(&ast.TableRef{Name: ident("USERS")})
	require.NoError(t, err)
	assert.Equal(t, "USERS", table.Name())
}

func TestResolveTableNotFoundWithCandidates(t *testing.T) {
	r := New(newTestSession())
	_, err := r.ResolveTable(&ast.TableRef{Schema: ident("PUBLIC"), Name: ident("USER")})
	require.Error(t, err)
	assert.True(t, sqlerr.As(err, sqlerr.TableOrViewNotFoundWithCandidates2))
}

func TestResolveTableNotFoundNoCandidates(t *testing.T) {
	r := New(newTestSession())
	_, err := r.ResolveTable(&ast.TableRef{Schema: ident("PUBLIC"), Name: ident("ZZZZZ")})
	require.Error(t, err)
	assert.True(t, sqlerr.As(err, sqlerr.TableOrViewNotFound1))
}

func TestSchemaNotFound(t *testing.T) {
	r := New(newTestSession())
	_, err := r.GetSchemaOrFail("NOPE")
	require.Error(t, err)
	assert.True(t, sqlerr.As(err, sqlerr.SchemaNotFound1))
}

func TestResolveColumnAmbiguous(t *testing.T) {
	r := New(newTestSession())
	tables := []catalog.Table{
		&fakeTable{name: "A", columns: []string{"ID"}},
		&fakeTable{name: "B", columns: []string{"ID"}},
	}
	err := r.ResolveColumn(&ast.ColumnRef{Name: ident("ID")}, tables)
	require.Error(t, err)
	assert.True(t, sqlerr.As(err, sqlerr.AmbiguousColumnName1))
}

func TestResolveColumnUnqualifiedUnique(t *testing.T) {
	r := New(newTestSession())
	tables := []catalog.Table{&fakeTable{name: "A", columns: []string{"ID"}}}
	ref := &ast.ColumnRef{Name: ident("ID")}
	require.NoError(t, r.ResolveColumn(ref, tables))
	assert.Equal(t, "A", ref.ResolvedTable)
}

func TestParamTrackerRejectsMixedStyles(t *testing.T) {
	var pt ParamTracker
	_, err := pt.Track(0, 1000)
	require.NoError(t, err)
	_, err = pt.Track(2, 1000)
	require.Error(t, err)
	assert.True(t, sqlerr.As(err, sqlerr.CannotMixIndexedAndUnindexedParams))
}

func TestParamTrackerIndexedOrdinals(t *testing.T) {
	var pt ParamTracker
	idx, err := pt.Track(3, 1000)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 3, pt.Count())
}

func TestCTEScopeInstallLookupCleanup(t *testing.T) {
	sess := newTestSession()
	r := New(sess)
	scope := r.CTEScope()

	first := &ast.CTE{Name: ident("FIRST")}
	second := &ast.CTE{Name: ident("SECOND")}
	require.NoError(t, scope.Install(first, &fakeTable{name: "FIRST"}))
	require.NoError(t, scope.Install(second, &fakeTable{name: "SECOND"}))

	_, ok := scope.Lookup("SECOND")
	assert.True(t, ok)

	require.NoError(t, scope.Cleanup())
	_, ok = sess.db.main.FindTableOrView("FIRST")
	assert.False(t, ok)
	_, ok = sess.db.main.FindTableOrView("SECOND")
	assert.False(t, ok)
}

func TestCaseFoldingModes(t *testing.T) {
	r := New(newTestSession())
	assert.Equal(t, "FOO", r.Fold("foo"))
}
