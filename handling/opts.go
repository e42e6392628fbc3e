package handling

import (
	"net/http"
	"storefront_server/lib"
	"storefront_server/structs"
	"strconv"
	"strings"
)

// ParseTableQuery reads the dashboard table parameters from the query
// string. Only syntax is checked here; the services decide which columns
// and sizes are allowed.
func ParseTableQuery(r *http.Request) (structs.TableQuery, error) {
	query := r.URL.Query()
	ve := &lib.ValidationError{}

	tq := structs.TableQuery{
		Search:        query.Get("search"),
		SortBy:        strings.ToLower(strings.TrimSpace(query.Get("sort_by"))),
		SortDirection: strings.TrimSpace(query.Get("sort_direction")),
	}

	if page := query.Get("page"); page != "" {
		valInt, err := strconv.Atoi(page)
		if err != nil || valInt < 1 {
			ve.Add("page", "must be an integer of at least 1")
		}
		tq.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		valInt, err := strconv.Atoi(pageSize)
		if err != nil {
			ve.Add("page_size", "must be an integer")
		}
		tq.PageSize = valInt
	}

	return tq, ve.OrNil()
}

// ParseID reads a positive integer route parameter value.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
