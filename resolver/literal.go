package resolver

import (
	"github.com/gofrs/uuid"

	"github.com/vippsas/sqlfront/ast"
	"github.com/vippsas/sqlfront/sqlerr"
)

// ValidateUUIDLiteral checks that a character-string literal being cast or
// declared to the UUID primary type is well formed, raising
// DataConversionError1 otherwise (spec.md §4.2 "UUID").
func ValidateUUIDLiteral(lit *ast.Literal) error {
	s, ok := lit.Value.(string)
	if !ok {
		return sqlerr.New(sqlerr.DataConversionError1, lit.Lit)
	}
	if _, err := uuid.FromString(s); err != nil {
		return sqlerr.New(sqlerr.DataConversionError1, lit.Lit)
	}
	return nil
}
