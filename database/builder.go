package database

import (
	"strings"

	"github.com/uptrace/bun"
)

// QueryBuilder provides a fluent, type-safe API for building database queries
// over the bun model T. Column names are qualified with the model's table
// alias so they stay unambiguous when relations are joined in.
type QueryBuilder[T any] struct {
	db bun.IDB

	wheres    []*WhereClause
	orders    []*OrderClause
	relations []string
	limitVal  *int
	offsetVal *int
}

// WhereClause represents a WHERE condition
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
	Negate   bool // For NOT conditions
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction OrderDirection
}

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// ParseDirection maps "asc"/"desc" in any case to a direction, defaulting to ASC.
func ParseDirection(s string) OrderDirection {
	if strings.EqualFold(s, string(DESC)) {
		return DESC
	}
	return ASC
}

// Query creates a new QueryBuilder on db, which may be the database or a transaction
func Query[T any](db bun.IDB) *QueryBuilder[T] {
	return &QueryBuilder[T]{db: db}
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	return q.WhereOp(column, "=", value)
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return q
}

// WhereNot adds a WHERE NOT condition
func (q *QueryBuilder[T]) WhereNot(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
		Negate:   true,
	})
	return q
}

// WhereIn adds a WHERE IN condition; values must be a slice
func (q *QueryBuilder[T]) WhereIn(column string, values any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "IN",
		Value:    values,
	})
	return q
}

// WhereContains adds a case-insensitive substring match
func (q *QueryBuilder[T]) WhereContains(column, term string) *QueryBuilder[T] {
	return q.WhereOp(column, "ILIKE", "%"+escapeLike(term)+"%")
}

// WhereRaw adds a raw WHERE condition
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: direction,
	})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// With specifies a relation to load, by its struct field name
func (q *QueryBuilder[T]) With(relation string) *QueryBuilder[T] {
	q.relations = append(q.relations, relation)
	return q
}

// applyWheres adds every WHERE condition to a select, update or delete query
func (q *QueryBuilder[T]) applyWheres(qb bun.QueryBuilder) bun.QueryBuilder {
	for _, where := range q.wheres {
		qb = where.apply(qb)
	}
	return qb
}

func (w *WhereClause) apply(qb bun.QueryBuilder) bun.QueryBuilder {
	if w.IsRaw {
		return qb.Where(w.RawSQL, w.RawArgs...)
	}

	var (
		condition string
		args      = []any{bun.Ident(w.Column)}
	)
	switch w.Operator {
	case "IN":
		condition = "?TableAlias.? IN (?)"
		args = append(args, bun.In(w.Value))
	default:
		condition = "?TableAlias.? " + w.Operator + " ?"
		args = append(args, w.Value)
	}

	if w.Negate {
		condition = "NOT (" + condition + ")"
	}
	return qb.Where(condition, args...)
}

// selectQuery builds the SELECT for model, which points at a T or a []T
func (q *QueryBuilder[T]) selectQuery(model any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)

	for _, rel := range q.relations {
		query = query.Relation(rel)
	}

	query = query.ApplyQueryBuilder(q.applyWheres)

	for _, order := range q.orders {
		query = query.OrderExpr("?TableAlias.? "+string(order.Direction), bun.Ident(order.Column))
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	return query
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
