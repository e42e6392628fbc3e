package structs

// PageSizes are the page sizes the dashboard tables offer.
var PageSizes = []int{5, 10, 20, 50}

const DefaultPageSize = 5

// TableQuery describes one dashboard table view: a name filter, a single
// sort column and a page. Unpaged queries return every matching row and are
// used for exports.
type TableQuery struct {
	Search        string `json:"search,omitempty"`
	SortBy        string `json:"sort_by"`
	SortDirection string `json:"sort_direction"` // ASC or DESC
	Page          int    `json:"page"`
	PageSize      int    `json:"page_size"`
	Unpaged       bool   `json:"-"`
}

// Paged fills in the first page and the default page size where they are
// unset and returns the number of rows skipped before the page.
func (q *TableQuery) Paged() (offset int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return (q.Page - 1) * q.PageSize
}

// Pagination describes the page a table response carries.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// Page wraps one page of rows with its pagination metadata.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}
