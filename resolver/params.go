package resolver

import "github.com/vippsas/sqlfront/sqlerr"

// paramKind distinguishes which numbering scheme a statement has committed
// to; a statement may use positional (`?`) parameters or indexed (`?N`/
// `$N`) parameters, but never both (spec.md §4/§7
// CANNOT_MIX_INDEXED_AND_UNINDEXED_PARAMS).
type paramKind int

const (
	paramKindUnset paramKind = iota
	paramKindPositional
	paramKindIndexed
)

// ParamTracker assigns stable ordinals to parameter markers as the parser
// encounters them left to right.
type ParamTracker struct {
	kind  paramKind
	count int
	max   int
}

// Track records one parameter occurrence. index is 0 for an anonymous `?`
// and the 1-based ordinal for `?N`/`$N`. It returns the ordinal to store on
// the ast.ParameterRef node.
func (p *ParamTracker) Track(index int, maxAllowed int) (int, error) {
	p.max = maxAllowed
	if index == 0 {
		if p.kind == paramKindIndexed {
			return 0, sqlerr.New(sqlerr.CannotMixIndexedAndUnindexedParams)
		}
		p.kind = paramKindPositional
		p.count++
		return p.count, nil
	}

	if p.kind == paramKindPositional {
		return 0, sqlerr.New(sqlerr.CannotMixIndexedAndUnindexedParams)
	}
	p.kind = paramKindIndexed
	if index > p.max {
		return 0, sqlerr.New(sqlerr.InvalidValuePrecision)
	}
	if index > p.count {
		p.count = index
	}
	return index, nil
}

// Count reports the number of `?` parameters seen so far, or for indexed
// parameters the highest index seen (so `?3` alone counts as 3).
func (p *ParamTracker) Count() int { return p.count }

// Params exposes the per-Resolver instance tracker to the parser, which
// calls Track once per ast.ParameterRef it builds.
func (r *Resolver) Params() *ParamTracker { return &r.params }
