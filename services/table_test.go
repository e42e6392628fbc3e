package services

import (
	"bytes"
	"testing"

	"storefront_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readSheet(t *testing.T, export *Export, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestNormalize_Defaults(t *testing.T) {
	q, err := categoryTable.normalize(structs.TableQuery{})
	require.NoError(t, err)
	assert.Equal(t, structs.TableQuery{SortBy: "created_at", SortDirection: "DESC", Page: 1, PageSize: 5}, q)

	q, err = categoryTable.normalize(structs.TableQuery{SortBy: "name", Search: "  phone "})
	require.NoError(t, err)
	assert.Equal(t, "ASC", q.SortDirection)
	assert.Equal(t, "phone", q.Search)

	q, err = bannerTable.normalize(structs.TableQuery{SortDirection: "desc", PageSize: 50, Page: 3})
	require.NoError(t, err)
	assert.Equal(t, "sort_order", q.SortBy)
	assert.Equal(t, "DESC", q.SortDirection)
	assert.Equal(t, 100, q.Paged())
}

func TestNormalize_Rejects(t *testing.T) {
	cases := map[string]structs.TableQuery{
		"page_size":      {PageSize: 7},
		"sort_by":        {SortBy: "password"},
		"sort_direction": {SortDirection: "sideways"},
		"page":           {Page: -2},
		"search":         {Search: string(bytes.Repeat([]byte("a"), 256))},
	}
	for field, q := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := categoryTable.normalize(q)
			requireFieldError(t, err, field)
		})
	}
}

func TestExportQueryIsUnpaged(t *testing.T) {
	q, err := productTable.exportQuery(structs.TableQuery{Page: 4, PageSize: 10})
	require.NoError(t, err)
	assert.True(t, q.Unpaged)

	_, err = productTable.exportQuery(structs.TableQuery{PageSize: 7})
	assert.Error(t, err)
}
