package cmd

import (
	"github.com/vippsas/sqlfront/catalog"
	"github.com/vippsas/sqlfront/dialect"
)

// emptySchema is a catalog.Schema with no objects installed. The CLI never
// resolves against a live database, so every lookup simply misses. The
// parser resolves names as it parses, so a statement that names a FROM
// table, a sequence, a schema-qualified function or a domain type fails with
// a not-found error here; statements naming none of these parse normally.
type emptySchema struct{ name string }

func (s *emptySchema) Name() string { return s.name }
func (s *emptySchema) FindTableOrView(string) (catalog.Table, bool) {
	return nil, false
}
func (s *emptySchema) FindIndex(string) (catalog.Index, bool)       { return nil, false }
func (s *emptySchema) FindSequence(string) (catalog.Sequence, bool) { return nil, false }
func (s *emptySchema) FindDomain(string) (catalog.Domain, bool)     { return nil, false }
func (s *emptySchema) FindFunctionOrAggregate(string) (catalog.Function, bool) {
	return nil, false
}
func (s *emptySchema) AllTableNames() []string { return nil }

type emptyDatabase struct{ main *emptySchema }

func (d *emptyDatabase) FindSchema(name string) (catalog.Schema, bool) {
	if name == d.main.name {
		return d.main, true
	}
	return nil, false
}
func (d *emptyDatabase) MainSchema() catalog.Schema { return d.main }
func (d *emptyDatabase) ShortName() string          { return "SQLFRONT" }
func (d *emptyDatabase) InstallShadowTable(catalog.Schema, string, catalog.Table) error {
	return nil
}
func (d *emptyDatabase) RemoveShadowTable(catalog.Schema, string) error { return nil }

// cliSession is the catalog.Session the diagnostic CLI binds the parser to.
type cliSession struct {
	flags  dialect.Flags
	db     *emptyDatabase
	nextID int64
}

func newCLISession(flags dialect.Flags) *cliSession {
	return &cliSession{
		flags: flags,
		db:    &emptyDatabase{main: &emptySchema{name: "PUBLIC"}},
	}
}

func (s *cliSession) CurrentSchema() string      { return "PUBLIC" }
func (s *cliSession) SearchPath() []string        { return []string{"PUBLIC"} }
func (s *cliSession) CurrentUser() string         { return "SQLFRONT" }
func (s *cliSession) Flags() dialect.Flags        { return s.flags }
func (s *cliSession) IsNonKeyword(int) bool        { return false }
func (s *cliSession) NextObjectID() int64 {
	s.nextID++
	return s.nextID
}
func (s *cliSession) Database() catalog.Database { return s.db }
