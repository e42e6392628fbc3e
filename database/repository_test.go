package database

import (
	"context"
	"testing"
	"time"

	"storefront_server/lib"
	"storefront_server/structs"
	"storefront_server/structs/tables"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := New(sqldb, gecho.NewDefaultLogger(), time.Second)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestCategoryRepository_FindMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .* FROM "categories" AS "c" WHERE .*"c"."id" = 42.* LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	c, err := NewCategoryRepository(db).Find(context.Background(), 42)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCategoryRepository_ListFiltersSortsAndPages(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" AS "c" WHERE .*"c"."name" ILIKE '%wear%'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(`SELECT .* FROM "categories" AS "c" WHERE .*ILIKE '%wear%'.* ORDER BY "c"."name" DESC, "c"."id" ASC LIMIT 5 OFFSET 5`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "color"}).
			AddRow(1, "Wearables", "wearables", "bg-blue-100"))

	page, err := NewCategoryRepository(db).List(context.Background(), structs.TableQuery{
		Search: "wear", SortBy: "name", SortDirection: "desc", Page: 2, PageSize: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, structs.Pagination{Page: 2, PageSize: 5, Total: 6}, page.Pagination)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "wearables", page.Data[0].Slug)
}

func TestCategoryRepository_CreateMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`INSERT INTO "categories"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err := NewCategoryRepository(db).Create(context.Background(), &tables.Category{Name: "Audio", Slug: "audio", Color: "bg-red-100"})
	assert.ErrorIs(t, err, lib.ErrConflict)
}

func TestCategoryRepository_MissingIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT "c"."id" FROM "categories" AS "c" WHERE .*IN \(1, 2, 3\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(3))

	missingIDs, err := NewCategoryRepository(db).MissingIDs(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, missingIDs)
}

func TestCategoryRepository_DeleteUnknown(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM "categories" AS "c" WHERE .*"c"."id" = 9`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewCategoryRepository(db).Delete(context.Background(), 9)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestBannerRepository_MaxSortOrder(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT COALESCE\(MAX\("b".sort_order\), 0\) FROM "banners" AS "b"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

	max, err := NewBannerRepository(db).MaxSortOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, max)
}

func TestBannerRepository_Toggle(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`UPDATE "banners" AS "b" SET is_active = NOT is_active, updated_at = .* WHERE .*"b"."id" = 3.* RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "image_url", "alt", "is_active", "sort_order"}).
			AddRow(3, "banners/x.png", "Sale", false, 2))

	b, err := NewBannerRepository(db).Toggle(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, b.IsActive)
	assert.Equal(t, 2, b.SortOrder)
}

func TestBannerRepository_MissingIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT "b"."id" FROM "banners" AS "b" WHERE \("b"."id" IN \(4, 5\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	missingIDs, err := NewBannerRepository(db).MissingIDs(context.Background(), []int64{4, 5})
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, missingIDs)
}

func TestBannerRepository_ToggleUnknown(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`UPDATE "banners" AS "b"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewBannerRepository(db).Toggle(context.Background(), 404)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestProductRepository_LatestLoadsCategoryAndBrand(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM "products" AS "p" LEFT JOIN "categories" AS "category" .* LEFT JOIN "brands" AS "brand" .* ORDER BY "p"."created_at" DESC, "p"."id" DESC LIMIT 8`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "category__id", "category__slug", "brand__id", "brand__slug"}).
			AddRow(3, "pixel-8", 2, "new-phones", 5, "google"))

	latest, err := NewProductRepository(db).Latest(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	require.NotNil(t, latest[0].Category)
	require.NotNil(t, latest[0].Brand)
	assert.Equal(t, "google", latest[0].Brand.Slug)
}

func TestProductRepository_SimilarExcludesSelf(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM "products" AS "p" LEFT JOIN "categories" AS "category".* WHERE .*"p"."category_id" = 2.*NOT \("p"."id" = 10\).* ORDER BY "p"."created_at" DESC, "p"."id" DESC LIMIT 4`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow(11, "Pixel 8", "pixel-8"))

	similar, err := NewProductRepository(db).Similar(context.Background(), &tables.Product{ID: 10, CategoryID: 2}, 4)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "pixel-8", similar[0].Slug)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
