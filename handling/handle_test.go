package handling

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"storefront_server/lib"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", lib.NewValidationError("name", "is required"), http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("lookup: %w", lib.ErrNotFound), http.StatusNotFound},
		{"conflict", lib.ErrConflict, http.StatusConflict},
		{"storage", fmt.Errorf("%w: disk full", lib.ErrStorage), http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			_ = HandleServiceError(rec, tc.err, "Category not found", logger)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestHandleServiceError_ValidationBody(t *testing.T) {
	rec := httptest.NewRecorder()
	ve := lib.NewValidationError("ids.2", "is invalid")
	_ = HandleServiceError(rec, ve, "", gecho.NewDefaultLogger())

	var body struct {
		Message string `json:"message"`
		Data    struct {
			Errors []lib.FieldError `json:"errors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error.validation", body.Message)
	assert.Equal(t, []lib.FieldError{{Field: "ids.2", Message: "is invalid"}}, body.Data.Errors)
}

func TestHandleServiceError_StorageHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	_ = HandleServiceError(rec, fmt.Errorf("%w: open /var/www/storage/categories/x.png", lib.ErrStorage), "", gecho.NewDefaultLogger())
	assert.NotContains(t, rec.Body.String(), "/var/www")
}

func TestParseTableQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard/categories?search=phone&sort_by=Name&sort_direction=desc&page=2&page_size=10", nil)
	tq, err := ParseTableQuery(r)
	require.NoError(t, err)
	assert.Equal(t, "phone", tq.Search)
	assert.Equal(t, "name", tq.SortBy)
	assert.Equal(t, "desc", tq.SortDirection)
	assert.Equal(t, 2, tq.Page)
	assert.Equal(t, 10, tq.PageSize)

	r = httptest.NewRequest(http.MethodGet, "/dashboard/categories?page=abc&page_size=ten", nil)
	_, err = ParseTableQuery(r)
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("page"))
	assert.True(t, ve.Has("page_size"))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "x"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}
