package resolver

import (
	"github.com/sirupsen/logrus"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/catalog"
	"github.com/vippsas/sqlfront/sqlerr"
)

// CTEScope is the per-parse arena that tracks the shadow tables installed
// for a WITH clause's common table expressions. Each entry is addressed by
// index so a CTE body can be installed before later CTEs that reference it
// are parsed, and the whole arena is torn down in reverse installation
// order once the statement is fully parsed (spec.md §4.4 CTE, §5 resource
// discipline: "install-then-remove", "reversed cleanup order").
type CTEScope struct {
	session catalog.Session
	log     *logrus.Entry

	entries []*cteEntry
	byName  map[string]int
}

type cteEntry struct {
	name   string
	schema catalog.Schema
	table  catalog.Table
}

func newCTEScope(session catalog.Session) *CTEScope {
	return &CTEScope{
		session: session,
		log:     logrus.WithField("component", "resolver.cte"),
		byName:  make(map[string]int),
	}
}

// Install registers a shadow table for one CTE, placed in the database's
// main schema, atomically with respect to other sessions (the placement
// goes through catalog.Database.InstallShadowTable, which the caller is
// responsible for making atomic at the storage layer).
func (s *CTEScope) Install(cte *ast.CTE, table catalog.Table) error {
	schema := s.session.Database().MainSchema()
	name := cte.Name.Value
	if err := s.session.Database().InstallShadowTable(schema, name, table); err != nil {
		return err
	}
	cte.ShadowTableID = s.session.NextObjectID()
	s.byName[name] = len(s.entries)
	s.entries = append(s.entries, &cteEntry{name: name, schema: schema, table: table})
	s.log.WithField("cte", name).Debug("installed shadow table")
	return nil
}

// Lookup resolves a plain (unqualified) table name against the shadow
// tables currently installed in this scope, innermost (most recently
// installed) first so a nested WITH can shadow an outer CTE of the same
// name.
func (s *CTEScope) Lookup(name string) (catalog.Table, bool) {
	if idx, ok := s.byName[name]; ok {
		return s.entries[idx].table, true
	}
	return nil, false
}

// Cleanup removes every shadow table installed in this scope, in reverse
// installation order, matching the destructor discipline of the original
// (later CTEs may have been defined in terms of earlier ones, so they must
// be torn down first). A failed removal is logged and the remaining removals
// are still attempted; only the first failure is returned, as a
// SYNTAX_ERROR_1 whose SQL field holds that failure's message.
func (s *CTEScope) Cleanup() error {
	var firstErr error
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if err := s.session.Database().RemoveShadowTable(e.schema, e.name); err != nil {
			s.log.WithError(err).WithField("cte", e.name).Warn("failed to remove shadow table")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	s.entries = nil
	s.byName = make(map[string]int)
	if firstErr != nil {
		return sqlerr.New(sqlerr.SyntaxError1).WithSQL(firstErr.Error())
	}
	return nil
}
