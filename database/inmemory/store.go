// Package inmemory keeps the catalog in process memory. It mirrors the
// Postgres repositories, including unique constraints and cascading
// deletes, and backs tests and the memory database driver.
package inmemory

import (
	"cmp"
	"context"
	"slices"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64
	now    func() time.Time

	categories map[int64]*tables.Category
	brands     map[int64]*tables.Brand
	banners    map[int64]*tables.Banner
	products   map[int64]*tables.Product
}

func New() *Store {
	return &Store{
		now:        time.Now,
		categories: map[int64]*tables.Category{},
		brands:     map[int64]*tables.Brand{},
		banners:    map[int64]*tables.Banner{},
		products:   map[int64]*tables.Product{},
	}
}

func (s *Store) Categories() *CategoryStore { return &CategoryStore{s: s} }
func (s *Store) Banners() *BannerStore       { return &BannerStore{s: s} }
func (s *Store) Brands() *BrandStore         { return &BrandStore{s: s} }
func (s *Store) Products() *ProductStore     { return &ProductStore{s: s} }

// Health reports the store as always reachable.
func (s *Store) Health(context.Context) error { return nil }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// list filters, sorts and pages rows the way the SQL repositories do:
// ORDER BY <column> <direction>, id ASC.
func list[T any](rows []T, tq structs.TableQuery, name func(T) string, field func(T, string) any, id func(T) int64) *structs.Page[T] {
	if tq.Search != "" {
		term := strings.ToLower(tq.Search)
		rows = slices.DeleteFunc(rows, func(r T) bool {
			return !strings.Contains(strings.ToLower(name(r)), term)
		})
	}

	desc := strings.EqualFold(tq.SortDirection, "desc")
	slices.SortStableFunc(rows, func(a, b T) int {
		if c := compareValues(field(a, tq.SortBy), field(b, tq.SortBy)); c != 0 {
			if desc {
				return -c
			}
			return c
		}
		return cmp.Compare(id(a), id(b))
	})

	total := len(rows)
	if tq.Unpaged {
		return &structs.Page[T]{Data: rows, Pagination: structs.Pagination{Page: 1, PageSize: total, Total: total}}
	}

	start := min(tq.Paged(), total)
	end := min(start+tq.PageSize, total)

	return &structs.Page[T]{
		Data:       slices.Clone(rows[start:end]),
		Pagination: structs.Pagination{Page: tq.Page, PageSize: tq.PageSize, Total: total},
	}
}

// newestFirst orders by created_at DESC, id DESC.
func newestFirst(aCreated, bCreated time.Time, aID, bID int64) int {
	if c := bCreated.Compare(aCreated); c != 0 {
		return c
	}
	return cmp.Compare(bID, aID)
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		return strings.Compare(strings.ToLower(av), strings.ToLower(b.(string)))
	case int:
		return cmp.Compare(av, b.(int))
	case int64:
		return cmp.Compare(av, b.(int64))
	case bool:
		switch {
		case av == b.(bool):
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case time.Time:
		return av.Compare(b.(time.Time))
	case decimal.Decimal:
		return av.Cmp(b.(decimal.Decimal))
	}
	return 0
}

func missing(ids []int64, exists func(int64) bool) []int64 {
	var out []int64
	for _, id := range ids {
		if !exists(id) {
			out = append(out, id)
		}
	}
	return out
}
