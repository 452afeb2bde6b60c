// Package specification translates domain specifications into GORM conditions.
package specification

import (
	"fmt"

	"restaurant/domain/shared"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Rule translates one concrete specification type.
// ok=false means the rule does not know the specification.
type Rule[T any] func(spec shared.Specification[T]) (expr clause.Expression, ok bool)

// Translate converts a specification tree to a single clause expression.
// A nil specification yields a nil expression.
func Translate[T any](spec shared.Specification[T], rule Rule[T]) (clause.Expression, error) {
	if spec == nil {
		return nil, nil
	}

	switch s := spec.(type) {
	case shared.AndSpecification[T]:
		left, err := Translate(s.Left, rule)
		if err != nil {
			return nil, err
		}
		right, err := Translate(s.Right, rule)
		if err != nil {
			return nil, err
		}
		return clause.And(nonNil(left, right)...), nil
	case shared.NotSpecification[T]:
		inner, err := Translate(s.Spec, rule)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, nil
		}
		return clause.Not(inner), nil
	}

	expr, ok := rule(spec)
	if !ok {
		return nil, fmt.Errorf("unsupported specification %T", spec)
	}
	return expr, nil
}

// Apply adds the translated specification to the query as a WHERE condition.
func Apply[T any](db *gorm.DB, spec shared.Specification[T], rule Rule[T]) (*gorm.DB, error) {
	expr, err := Translate(spec, rule)
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return db, nil
	}
	return db.Where(expr), nil
}

func nonNil(exprs ...clause.Expression) []clause.Expression {
	out := make([]clause.Expression, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}
