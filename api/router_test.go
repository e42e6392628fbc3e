package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"storefront_server/config"
	"storefront_server/database"
	"storefront_server/database/inmemory"
	"storefront_server/lib"
	"storefront_server/services"
	"storefront_server/storage"
	"storefront_server/structs"
	"strings"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) chi.Router {
	t.Helper()
	cfg := config.Load()
	cfg.Auth.AccessTokenSecret = testSecret
	cfg.Storage.Root = t.TempDir()
	cfg.Database.Driver = "memory"

	disk, err := storage.NewDisk(cfg.Storage.Root)
	require.NoError(t, err)

	mem := inmemory.New()
	require.NoError(t, mem.Seed(context.Background(), database.DemoCatalog()))
	stores := services.Stores{
		Categories: mem.Categories(),
		Banners:    mem.Banners(),
		Brands:     mem.Brands(),
		Products:   mem.Products(),
	}

	sm := services.NewServiceManager(gecho.NewDefaultLogger(), cfg, stores, disk, mem, nil)
	return App(cfg, sm, nil)
}

func session(t *testing.T, verified bool) string {
	t.Helper()
	tok, err := lib.SignToken(structs.AuthClaims{
		Sub:      "42",
		Email:    "owner@example.com",
		Verified: verified,
		Exp:      time.Now().Add(time.Hour),
	}, testSecret)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(t *testing.T, app http.Handler, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func authed(t *testing.T, method, target string, body *bytes.Buffer) *http.Request {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", session(t, true))
	return req
}

func multipartBody(t *testing.T, fields map[string]string, fileField string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, "valid.jpg")
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestStorefrontRoutes(t *testing.T) {
	app := newTestApp(t)

	rec, env := do(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var home services.HomePage
	require.NoError(t, json.Unmarshal(env.Data, &home))
	assert.Len(t, home.Banners, 2)
	assert.Len(t, home.Categories, 6)
	assert.Equal(t, "/storage", home.StorageURL)

	rec, env = do(t, app, httptest.NewRequest(http.MethodGet, "/products/iphone-15-pro-256gb", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Product struct {
			Slug string `json:"slug"`
		} `json:"product"`
		Similar []json.RawMessage `json:"similar_products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "iphone-15-pro-256gb", detail.Product.Slug)
	assert.Len(t, detail.Similar, 1)

	rec, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/products/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardRequiresSession(t *testing.T) {
	app := newTestApp(t)

	rec, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/dashboard/categories", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/dashboard/categories/1", nil)
	req.Header.Set("Authorization", session(t, false))
	rec, _ = do(t, app, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// banner listing is public
	rec, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/dashboard/homebanner", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, app, httptest.NewRequest(http.MethodPatch, "/dashboard/homebanner/1/toggle", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCategoryCreateAndServeImage(t *testing.T) {
	app := newTestApp(t)

	body, contentType := multipartBody(t, map[string]string{
		"name":        "Wearables",
		"color":       "bg-blue-100",
		"description": "Smart watches and fitness bands",
	}, "image")
	req := authed(t, http.MethodPost, "/dashboard/categories", body)
	req.Header.Set("Content-Type", contentType)

	rec, env := do(t, app, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created struct {
		ID    int64  `json:"id"`
		Slug  string `json:"slug"`
		Image string `json:"image"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "wearables", created.Slug)
	assert.True(t, strings.HasPrefix(created.Image, "categories/"))

	rec, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/storage/"+created.Image, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	// same name again
	body, contentType = multipartBody(t, map[string]string{"name": "Wearables", "color": "x"}, "")
	req = authed(t, http.MethodPost, "/dashboard/categories", body)
	req.Header.Set("Content-Type", contentType)
	rec, env = do(t, app, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error.validation", env.Message)
	assert.Contains(t, string(env.Data), `"field":"name"`)
}

func TestCategoryBulkDeleteRejectsUnknownIDs(t *testing.T) {
	app := newTestApp(t)

	req := authed(t, http.MethodDelete, "/dashboard/categories/bulk-delete", bytes.NewBufferString(`{"ids":[1,999,2]}`))
	req.Header.Set("Content-Type", "application/json")
	rec, env := do(t, app, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), `"field":"ids.1"`)

	rec, env = do(t, app, authed(t, http.MethodGet, "/dashboard/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var page structs.Page[json.RawMessage]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 6, page.Pagination.Total)
}

func TestTableQueryValidation(t *testing.T) {
	app := newTestApp(t)

	rec, env := do(t, app, authed(t, http.MethodGet, "/dashboard/categories?page_size=7", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Data), "page_size")

	rec, _ = do(t, app, authed(t, http.MethodGet, "/dashboard/products?sort_by=secret", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportDownload(t *testing.T) {
	app := newTestApp(t)

	rec, _ := do(t, app, authed(t, http.MethodGet, "/dashboard/categories/export?search=phones&sort_by=name", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "categories.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestBannerToggleAndMissing(t *testing.T) {
	app := newTestApp(t)

	rec, env := do(t, app, httptest.NewRequest(http.MethodGet, "/dashboard/homebanner?sort_by=sort_order", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var page structs.Page[struct {
		ID       int64 `json:"id"`
		IsActive bool  `json:"is_active"`
	}]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.NotEmpty(t, page.Data)
	first := page.Data[0]

	rec, env = do(t, app, authed(t, http.MethodPatch, fmt.Sprintf("/dashboard/homebanner/%d/toggle", first.ID), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled struct {
		IsActive bool `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.Equal(t, !first.IsActive, toggled.IsActive)

	rec, _ = do(t, app, authed(t, http.MethodPatch, "/dashboard/homebanner/9999/toggle", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, app, authed(t, http.MethodDelete, "/dashboard/homebanner/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthRoutes(t *testing.T) {
	app := newTestApp(t)

	rec, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/health/server", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/health/database", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
