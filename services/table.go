package services

import (
	"slices"
	"storefront_server/lib"
	"storefront_server/structs"
	"strconv"
	"strings"
	"unicode/utf8"
)

// tableRules lists what a dashboard table may be sorted by and how it sorts by default.
type tableRules struct {
	sortable    []string
	defaultSort string
	defaultDir  string
}

var (
	categoryTable = tableRules{
		sortable:    []string{"id", "name", "slug", "color", "created_at", "updated_at"},
		defaultSort: "created_at",
		defaultDir:  "DESC",
	}
	bannerTable = tableRules{
		sortable:    []string{"id", "alt", "is_active", "sort_order", "created_at", "updated_at"},
		defaultSort: "sort_order",
		defaultDir:  "ASC",
	}
	brandTable = tableRules{
		sortable:    []string{"id", "name", "slug", "created_at"},
		defaultSort: "name",
		defaultDir:  "ASC",
	}
	productTable = tableRules{
		sortable:    []string{"id", "name", "slug", "price", "stock", "rating", "is_new", "created_at"},
		defaultSort: "created_at",
		defaultDir:  "DESC",
	}
)

// normalize fills defaults into a table query and rejects values the table
// does not offer. Zero values mean "not given".
func (ts tableRules) normalize(q structs.TableQuery) (structs.TableQuery, error) {
	ve := &lib.ValidationError{}

	q.Search = strings.TrimSpace(q.Search)
	if utf8.RuneCountInString(q.Search) > 255 {
		ve.Add("search", "must be at most 255 characters")
	}

	if q.SortBy == "" {
		q.SortBy = ts.defaultSort
		if q.SortDirection == "" {
			q.SortDirection = ts.defaultDir
		}
	} else if !slices.Contains(ts.sortable, q.SortBy) {
		ve.Add("sort_by", "must be one of: "+strings.Join(ts.sortable, ", "))
	}

	switch strings.ToUpper(q.SortDirection) {
	case "":
		q.SortDirection = "ASC"
	case "ASC", "DESC":
		q.SortDirection = strings.ToUpper(q.SortDirection)
	default:
		ve.Add("sort_direction", "must be one of: asc, desc")
	}

	if q.Page == 0 {
		q.Page = 1
	} else if q.Page < 0 {
		ve.Add("page", "must be at least 1")
	}

	if q.PageSize == 0 {
		q.PageSize = structs.DefaultPageSize
	} else if !slices.Contains(structs.PageSizes, q.PageSize) {
		sizes := make([]string, len(structs.PageSizes))
		for i, s := range structs.PageSizes {
			sizes[i] = strconv.Itoa(s)
		}
		ve.Add("page_size", "must be one of: "+strings.Join(sizes, ", "))
	}

	if err := ve.OrNil(); err != nil {
		return q, err
	}
	return q, nil
}

// exportQuery is the normalized query with paging switched off, so an export
// covers every filtered and sorted row.
func (ts tableRules) exportQuery(q structs.TableQuery) (structs.TableQuery, error) {
	q, err := ts.normalize(q)
	if err != nil {
		return q, err
	}
	q.Unpaged = true
	return q, nil
}
