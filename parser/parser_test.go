package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/catalog"
	"github.com/vippsas/sqlfront/dialect"
	"github.com/vippsas/sqlfront/sqlerr"
)

// fakeSchema/fakeDatabase/fakeSession mirror the resolver package's test
// fixtures (resolver/resolver_test.go) so the parser's own tests can bind a
// Parser to a session without needing a real catalog implementation.
type fakeTable struct {
	name, schema string
	columns      []string
}

func (t *fakeTable) Name() string   { return t.name }
func (t *fakeTable) Schema() string { return t.schema }
func (t *fakeTable) IsView() bool   { return false }
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

type fakeSequence struct{ name, schema string }

func (s *fakeSequence) Name() string   { return s.name }
func (s *fakeSequence) Schema() string { return s.schema }

type fakeDomain struct {
	name, schema string
	base         catalog.TypeName
	comment      string
}

func (d *fakeDomain) Name() string            { return d.name }
func (d *fakeDomain) BaseType() catalog.TypeName { return d.base }
func (d *fakeDomain) Comment() string         { return d.comment }

type fakeFunction struct {
	name, schema string
	aggregate    bool
}

func (f *fakeFunction) Name() string        { return f.name }
func (f *fakeFunction) Schema() string      { return f.schema }
func (f *fakeFunction) IsAggregate() bool   { return f.aggregate }
func (f *fakeFunction) Deterministic() bool { return true }

type fakeSchema struct {
	name      string
	tables    map[string]catalog.Table
	sequences map[string]catalog.Sequence
	domains   map[string]catalog.Domain
	functions map[string]catalog.Function
}

func (s *fakeSchema) Name() string { return s.name }
func (s *fakeSchema) FindTableOrView(name string) (catalog.Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}
func (s *fakeSchema) FindIndex(string) (catalog.Index, bool) { return nil, false }
func (s *fakeSchema) FindSequence(name string) (catalog.Sequence, bool) {
	seq, ok := s.sequences[name]
	return seq, ok
}
func (s *fakeSchema) FindDomain(name string) (catalog.Domain, bool) {
	d, ok := s.domains[name]
	return d, ok
}
func (s *fakeSchema) FindFunctionOrAggregate(name string) (catalog.Function, bool) {
	fn, ok := s.functions[name]
	return fn, ok
}
func (s *fakeSchema) AllTableNames() []string {
	names := make([]string, 0, len(s.tables))
	for n := range s.tables {
		names = append(names, n)
	}
	return names
}

type fakeDatabase struct {
	main *fakeSchema
}

func (d *fakeDatabase) FindSchema(name string) (catalog.Schema, bool) {
	if name == d.main.name {
		return d.main, true
	}
	return nil, false
}
func (d *fakeDatabase) MainSchema() catalog.Schema { return d.main }
func (d *fakeDatabase) ShortName() string          { return "TESTDB" }
func (d *fakeDatabase) InstallShadowTable(schema catalog.Schema, name string, t catalog.Table) error {
	d.main.tables[name] = t
	return nil
}
func (d *fakeDatabase) RemoveShadowTable(schema catalog.Schema, name string) error {
	delete(d.main.tables, name)
	return nil
}

type fakeSession struct {
	flags  dialect.Flags
	db     *fakeDatabase
	nextID int64
}

func (s *fakeSession) CurrentSchema() string      { return "PUBLIC" }
func (s *fakeSession) SearchPath() []string       { return []string{"PUBLIC"} }
func (s *fakeSession) CurrentUser() string        { return "TEST" }
func (s *fakeSession) Flags() dialect.Flags       { return s.flags }
func (s *fakeSession) IsNonKeyword(int) bool      { return false }
func (s *fakeSession) NextObjectID() int64        { s.nextID++; return s.nextID }
func (s *fakeSession) Database() catalog.Database { return s.db }

func newTestSession() *fakeSession {
	main := &fakeSchema{
		name: "PUBLIC",
		tables: map[string]catalog.Table{
			"USERS":     &fakeTable{name: "USERS", schema: "PUBLIC", columns: []string{"ID", "NAME"}},
			"ORDERS":    &fakeTable{name: "ORDERS", schema: "PUBLIC", columns: []string{"ID", "USER_ID", "TOTAL"}},
			"MixedCase": &fakeTable{name: "MixedCase", schema: "PUBLIC", columns: []string{"ID"}},
		},
		sequences: map[string]catalog.Sequence{
			"ORDER_SEQ": &fakeSequence{name: "ORDER_SEQ", schema: "PUBLIC"},
		},
		domains: map[string]catalog.Domain{
			"POSITIVE_INT": &fakeDomain{name: "POSITIVE_INT", schema: "PUBLIC", base: catalog.TypeName("INTEGER"), comment: "must be positive"},
		},
		functions: map[string]catalog.Function{
			"TOTAL_TAX": &fakeFunction{name: "TOTAL_TAX", schema: "PUBLIC"},
		},
	}
	return &fakeSession{
		flags: dialect.NewFlags(dialect.Regular),
		db:    &fakeDatabase{main: main},
	}
}

func TestParseSelectBasic(t *testing.T) {
	p, err := Prepare("SELECT id, name FROM users WHERE id = 1", newTestSession())
	require.NoError(t, err)
	sel, ok := p.Command.(*ast.Select)
	require.True(t, ok, "expected *ast.Select, got %T", p.Command)
	assert.Len(t, sel.Items, 2)
	assert.NotNil(t, sel.Where)
}

func TestParseCTE(t *testing.T) {
	sql := `WITH recent AS (SELECT id FROM orders WHERE total > 100)
	        SELECT id FROM recent`
	p, err := Prepare(sql, newTestSession())
	require.NoError(t, err)
	sel, ok := p.Command.(*ast.Select)
	require.True(t, ok, "expected *ast.Select, got %T", p.Command)
	require.NotNil(t, sel.With)
	require.Len(t, sel.With.CTEs, 1)
	// Regular-mode dialect flags fold unquoted identifiers to upper case.
	assert.Equal(t, "RECENT", sel.With.CTEs[0].Name.Value)
}

func TestParseRecursiveCTE(t *testing.T) {
	sql := `WITH RECURSIVE chain AS (SELECT id FROM orders UNION ALL SELECT id FROM chain)
	        SELECT id FROM chain`
	p, err := Prepare(sql, newTestSession())
	require.NoError(t, err)
	sel, ok := p.Command.(*ast.Select)
	require.True(t, ok)
	require.NotNil(t, sel.With)
	assert.True(t, sel.With.Recursive)
}

func TestParseFullOuterJoinRejected(t *testing.T) {
	_, err := Prepare("SELECT id FROM orders FULL OUTER JOIN users ON orders.user_id = users.id", newTestSession())
	require.Error(t, err)
	serr, ok := err.(*sqlerr.Error)
	require.True(t, ok, "expected *sqlerr.Error, got %T", err)
	assert.Equal(t, sqlerr.UnsupportedOuterJoin, serr.Kind)
}

func TestParseQuotedIdentifierSkipsFolding(t *testing.T) {
	p, err := Prepare(`SELECT id FROM "MixedCase"`, newTestSession())
	require.NoError(t, err)
	sel, ok := p.Command.(*ast.Select)
	require.True(t, ok)
	ref, ok := sel.From.(*ast.TableRef)
	require.True(t, ok, "expected *ast.TableRef, got %T", sel.From)
	assert.True(t, ref.Name.Quoted)
	assert.Equal(t, "MixedCase", ref.Name.Value)
}

func TestParseUnqualifiedColumnResolvesAgainstFromTable(t *testing.T) {
	_, err := Prepare("SELECT id, name FROM users WHERE id = 1", newTestSession())
	require.NoError(t, err)
}

func TestParseColumnNotFoundInFromTable(t *testing.T) {
	_, err := Prepare("SELECT nope FROM users", newTestSession())
	require.Error(t, err)
	serr, ok := err.(*sqlerr.Error)
	require.True(t, ok, "expected *sqlerr.Error, got %T", err)
	assert.Equal(t, sqlerr.ColumnNotFound1, serr.Kind)
}

func TestParseSchemaQualifiedFunctionCall(t *testing.T) {
	p, err := Prepare("SELECT public.total_tax(1) FROM orders", newTestSession())
	require.NoError(t, err)
	sel, ok := p.Command.(*ast.Select)
	require.True(t, ok)
	call, ok := sel.Items[0].Expr.(*ast.FuncCall)
	require.True(t, ok, "expected *ast.FuncCall, got %T", sel.Items[0].Expr)
	assert.Equal(t, "PUBLIC", call.ResolvedSchema)
}

func TestParseSchemaQualifiedFunctionCallNotFound(t *testing.T) {
	_, err := Prepare("SELECT public.nope(1) FROM orders", newTestSession())
	require.Error(t, err)
	serr, ok := err.(*sqlerr.Error)
	require.True(t, ok, "expected *sqlerr.Error, got %T", err)
	assert.Equal(t, sqlerr.FunctionNotFound1, serr.Kind)
}

func TestParseSequenceValue(t *testing.T) {
	p, err := Prepare("SELECT NEXT VALUE FOR order_seq", newTestSession())
	require.NoError(t, err)
	sel, ok := p.Command.(*ast.Select)
	require.True(t, ok)
	seq, ok := sel.Items[0].Expr.(*ast.SequenceValue)
	require.True(t, ok, "expected *ast.SequenceValue, got %T", sel.Items[0].Expr)
	assert.True(t, seq.Next)
	assert.Equal(t, "PUBLIC", seq.ResolvedSchema)
}

func TestParseSequenceValueNotFound(t *testing.T) {
	_, err := Prepare("SELECT CURRENT VALUE FOR missing_seq", newTestSession())
	require.Error(t, err)
	serr, ok := err.(*sqlerr.Error)
	require.True(t, ok, "expected *sqlerr.Error, got %T", err)
	assert.Equal(t, sqlerr.SequenceNotFound1, serr.Kind)
}

func TestParseDomainTypeInheritsBaseType(t *testing.T) {
	p, err := PrepareCommand("CREATE TABLE t (a positive_int)", newTestSession())
	require.NoError(t, err)
	ct, ok := p.Command.(*ast.CreateTable)
	require.True(t, ok, "expected *ast.CreateTable, got %T", p.Command)
	require.Len(t, ct.Columns, 1)
	typ := ct.Columns[0].Type
	require.Equal(t, ast.Domain, typ.Primary)
	require.NotNil(t, typ.Resolved)
	assert.Equal(t, ast.Integer, typ.Resolved.Primary)
	assert.Equal(t, "must be positive", typ.DomainComment)
}

func TestParseCreateDomainCheckValueKeyword(t *testing.T) {
	sql := "CREATE DOMAIN positive_int AS INTEGER CHECK (VALUE > 0)"
	p, err := PrepareCommand(sql, newTestSession())
	require.NoError(t, err)
	cd, ok := p.Command.(*ast.CreateDomain)
	require.True(t, ok, "expected *ast.CreateDomain, got %T", p.Command)
	require.NotNil(t, cd.Check)
	bin, ok := cd.Check.(*ast.BinaryExpr)
	require.True(t, ok, "expected *ast.BinaryExpr, got %T", cd.Check)
	_, ok = bin.Left.(*ast.DomainValueRef)
	assert.True(t, ok, "expected *ast.DomainValueRef, got %T", bin.Left)
}

func TestParseMerge(t *testing.T) {
	sql := `MERGE INTO orders USING users ON orders.user_id = users.id
	        WHEN MATCHED THEN UPDATE SET total = 0
	        WHEN NOT MATCHED THEN INSERT (id, user_id) VALUES (1, 2)`
	p, err := Prepare(sql, newTestSession())
	require.NoError(t, err)
	merge, ok := p.Command.(*ast.Merge)
	require.True(t, ok, "expected *ast.Merge, got %T", p.Command)
	require.Len(t, merge.Whens, 2)
	assert.True(t, merge.Whens[0].Matched)
	assert.False(t, merge.Whens[1].Matched)
}

func TestParseWindowFunction(t *testing.T) {
	sql := `SELECT id, ROW_NUMBER() OVER (PARTITION BY user_id ORDER BY total DESC) FROM orders`
	p, err := Prepare(sql, newTestSession())
	require.NoError(t, err)
	sel, ok := p.Command.(*ast.Select)
	require.True(t, ok)
	require.Len(t, sel.Items, 2)
	call, ok := sel.Items[1].Expr.(*ast.FuncCall)
	require.True(t, ok, "expected *ast.FuncCall, got %T", sel.Items[1].Expr)
	require.NotNil(t, call.Window)
	assert.Len(t, call.Window.PartitionBy, 1)
	assert.Len(t, call.Window.OrderBy, 1)
}

func TestParseCreateTableWithIdentityAndConstraints(t *testing.T) {
	sql := `CREATE TABLE orders (
		id INT GENERATED ALWAYS AS IDENTITY (START WITH 1 INCREMENT BY 1),
		user_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		total DECIMAL(10,2) DEFAULT 0,
		CONSTRAINT pk_orders PRIMARY KEY (id)
	)`
	p, err := PrepareCommand(sql, newTestSession())
	require.NoError(t, err)
	ct, ok := p.Command.(*ast.CreateTable)
	require.True(t, ok, "expected *ast.CreateTable, got %T", p.Command)
	require.Len(t, ct.Columns, 3)
	require.NotNil(t, ct.Columns[0].Identity)
	assert.True(t, ct.Columns[0].Identity.Always)
	require.Len(t, ct.Constraints, 1)
	assert.Equal(t, ast.ConstraintPrimaryKey, ct.Constraints[0].Kind)
}

func TestParseAlterTableActions(t *testing.T) {
	tests := []string{
		"ALTER TABLE orders ADD COLUMN note VARCHAR(255)",
		"ALTER TABLE orders DROP COLUMN note",
		"ALTER TABLE orders ALTER COLUMN total TYPE DECIMAL(12,2)",
		"ALTER TABLE orders RENAME TO purchase_orders",
	}
	for _, sql := range tests {
		p, err := PrepareCommand(sql, newTestSession())
		require.NoError(t, err, sql)
		_, ok := p.Command.(*ast.AlterTable)
		assert.True(t, ok, "expected *ast.AlterTable for %q, got %T", sql, p.Command)
	}
}

func TestParseDropVariants(t *testing.T) {
	tests := []struct {
		sql  string
		kind ast.DropKind
	}{
		{"DROP TABLE IF EXISTS orders", ast.DropTable},
		{"DROP VIEW recent_orders", ast.DropView},
		{"DROP INDEX idx_orders_user", ast.DropIndex},
		{"DROP SEQUENCE order_seq", ast.DropSequence},
	}
	for _, tt := range tests {
		p, err := PrepareCommand(tt.sql, newTestSession())
		require.NoError(t, err, tt.sql)
		drop, ok := p.Command.(*ast.Drop)
		require.True(t, ok, "expected *ast.Drop for %q, got %T", tt.sql, p.Command)
		assert.Equal(t, tt.kind, drop.Kind)
	}
}

func TestParseSessionStatements(t *testing.T) {
	tests := []struct {
		sql  string
		want ast.Command
	}{
		{"SET search_path = public", &ast.Set{}},
		{"SHOW search_path", &ast.Show{}},
		{"BEGIN", &ast.TransactionControl{}},
		{"COMMIT", &ast.TransactionControl{}},
		{"ROLLBACK", &ast.TransactionControl{}},
		{"TRUNCATE TABLE orders", &ast.Truncate{}},
		{"USE public", &ast.Use{}},
		{"CHECKPOINT", &ast.Checkpoint{}},
		{"ANALYZE TABLE orders SAMPLE_SIZE 100", &ast.Analyze{}},
	}
	for _, tt := range tests {
		p, err := PrepareCommand(tt.sql, newTestSession())
		require.NoError(t, err, tt.sql)
		assert.IsType(t, tt.want, p.Command, tt.sql)
	}
}

func TestParsePrepareExecuteDeallocate(t *testing.T) {
	p, err := Prepare(`PREPARE stmt1 (INT) AS SELECT * FROM orders WHERE id = ?;
	                    EXECUTE stmt1 (1);
	                    DEALLOCATE stmt1`, newTestSession())
	require.NoError(t, err)
	list, ok := p.Command.(*ast.CommandList)
	require.True(t, ok, "expected *ast.CommandList, got %T", p.Command)
	require.Len(t, list.Commands, 3)
	prep, ok := list.Commands[0].(*ast.PrepareStmt)
	require.True(t, ok)
	assert.Contains(t, prep.SQL, "SELECT")
	_, ok = list.Commands[1].(*ast.ExecuteStmt)
	assert.True(t, ok)
	_, ok = list.Commands[2].(*ast.Deallocate)
	assert.True(t, ok)
}

func TestParseCall(t *testing.T) {
	p, err := PrepareCommand("CALL refresh_totals(1, 2)", newTestSession())
	require.NoError(t, err)
	call, ok := p.Command.(*ast.Call)
	require.True(t, ok, "expected *ast.Call, got %T", p.Command)
	assert.Len(t, call.Proc.Args, 2)
}

func TestParseExplain(t *testing.T) {
	p, err := PrepareCommand("EXPLAIN ANALYZE SELECT * FROM orders", newTestSession())
	require.NoError(t, err)
	ex, ok := p.Command.(*ast.Explain)
	require.True(t, ok, "expected *ast.Explain, got %T", p.Command)
	assert.True(t, ex.Analyze)
	_, ok = ex.Target.(*ast.Select)
	assert.True(t, ok)
}

func TestParseMultiStatementScript(t *testing.T) {
	p, err := Prepare("SELECT 1; SELECT 2;; SELECT 3", newTestSession())
	require.NoError(t, err)
	list, ok := p.Command.(*ast.CommandList)
	require.True(t, ok, "expected *ast.CommandList, got %T", p.Command)
	assert.Len(t, list.Commands, 3)
}

func TestParseEmptyScript(t *testing.T) {
	p, err := Prepare("  ;  ; ", newTestSession())
	require.NoError(t, err)
	_, ok := p.Command.(*ast.NoOperation)
	assert.True(t, ok, "expected *ast.NoOperation, got %T", p.Command)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Prepare("SELECT FROM", newTestSession())
	require.Error(t, err)
}

func TestPrepareCommandRejectsTrailingStatement(t *testing.T) {
	_, err := PrepareCommand("SELECT 1; SELECT 2", newTestSession())
	require.Error(t, err)
}
