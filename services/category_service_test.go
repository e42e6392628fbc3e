package services

import (
	"context"
	"errors"
	"testing"

	"storefront_server/lib"
	"storefront_server/storage"
	"storefront_server/structs"
	"storefront_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireFieldError(t *testing.T, err error, field string) *lib.ValidationError {
	t.Helper()
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	require.True(t, ve.Has(field), "expected an error on %q, got %+v", field, ve.Errors)
	return ve
}

func TestCategory_WearablesLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := f.categories()
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &structs.CategoryInput{
		Name:        "Wearables",
		Color:       "bg-blue-100",
		Description: strp("Smart watches and fitness bands"),
		Image:       pngUpload(t, "valid.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "wearables", created.Slug)
	assert.True(t, f.disk.Exists(created.Image))

	page, err := svc.ListCategories(ctx, structs.TableQuery{Search: "wear"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, created.ID, page.Data[0].ID)

	require.NoError(t, svc.DeleteCategory(ctx, created.ID))
	assert.False(t, f.disk.Exists(created.Image))
	_, err = svc.GetCategory(ctx, created.ID)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCategory_DuplicateNameWritesNothing(t *testing.T) {
	f := newFixture(t)
	svc := f.categories()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, &structs.CategoryInput{Name: "Audio", Color: "bg-red-100"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, &structs.CategoryInput{Name: "Audio", Color: "bg-red-200", Image: pngUpload(t, "a.png")})
	ve := requireFieldError(t, err, "name")
	assert.Equal(t, "has already been taken", ve.Errors[0].Message)

	page, err := svc.ListCategories(ctx, structs.TableQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Total)
	assert.Empty(t, f.files(t, storage.CategoriesFolder))
}

func TestCategory_NameThatSlugsToExistingSlug(t *testing.T) {
	f := newFixture(t)
	svc := f.categories()
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, &structs.CategoryInput{Name: "Smart Home", Color: "c"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, &structs.CategoryInput{Name: "Smart-Home", Color: "c"})
	requireFieldError(t, err, "name")
}

func TestCategory_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	svc := f.categories()

	_, err := svc.CreateCategory(context.Background(), &structs.CategoryInput{
		Name:  "   ",
		Image: &structs.UploadedFile{Filename: "notes.png", Size: 4, Data: []byte("text")},
	})
	ve := requireFieldError(t, err, "name")
	assert.True(t, ve.Has("color"))
	assert.True(t, ve.Has("image"))
	assert.Empty(t, f.files(t, storage.CategoriesFolder))
}

func TestCategory_UpdateReplacesImage(t *testing.T) {
	f := newFixture(t)
	svc := f.categories()
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &structs.CategoryInput{Name: "Tablets", Color: "c", Image: pngUpload(t, "old.png")})
	require.NoError(t, err)
	oldImage := created.Image

	// no image keeps the current one
	updated, err := svc.UpdateCategory(ctx, created.ID, &structs.CategoryInput{Name: "Tablets", Color: "bg-purple-100"})
	require.NoError(t, err)
	assert.Equal(t, oldImage, updated.Image)
	assert.Equal(t, "bg-purple-100", updated.Color)

	updated, err = svc.UpdateCategory(ctx, created.ID, &structs.CategoryInput{Name: "Tablets & E-Readers", Color: "c", Image: pngUpload(t, "new.png")})
	require.NoError(t, err)
	assert.NotEqual(t, oldImage, updated.Image)
	assert.Equal(t, "tablets-and-e-readers", updated.Slug)
	assert.True(t, f.disk.Exists(updated.Image))
	assert.False(t, f.disk.Exists(oldImage))

	stored, err := svc.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Image, stored.Image)
}

func TestCategory_UpdateOwnNameIsNotAConflict(t *testing.T) {
	f := newFixture(t)
	svc := f.categories()
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, &structs.CategoryInput{Name: "Audio", Color: "c"})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, created.ID, &structs.CategoryInput{Name: "Audio", Color: "d"})
	assert.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, 999, &structs.CategoryInput{Name: "Audio", Color: "d"})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

type failingCategoryStore struct {
	CategoryStore
}

func (failingCategoryStore) Create(context.Context, *tables.Category) error {
	return errors.New("connection reset")
}

func TestCategory_FailedInsertRemovesNewFile(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.logger, failingCategoryStore{f.stores.Categories}, f.disk, testMaxImage)

	_, err := svc.CreateCategory(context.Background(), &structs.CategoryInput{Name: "Audio", Color: "c", Image: pngUpload(t, "a.png")})
	require.Error(t, err)
	assert.Empty(t, f.files(t, storage.CategoriesFolder))
}

func TestCategory_DeleteUnknown(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.categories().DeleteCategory(context.Background(), 42), lib.ErrNotFound)
}

func TestCategory_BulkDeleteIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	svc := f.categories()
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"One", "Two", "Three"} {
		c, err := svc.CreateCategory(ctx, &structs.CategoryInput{Name: name, Color: "c", Image: pngUpload(t, name+".png")})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	_, err := svc.BulkDeleteCategories(ctx, []int64{ids[0], 9999, ids[1]})
	ve := requireFieldError(t, err, "ids.1")
	assert.Len(t, ve.Errors, 1)

	page, err := svc.ListCategories(ctx, structs.TableQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Total, "nothing is deleted when any id is invalid")

	_, err = svc.BulkDeleteCategories(ctx, nil)
	requireFieldError(t, err, "ids")

	n, err := svc.BulkDeleteCategories(ctx, ids[:2])
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, f.files(t, storage.CategoriesFolder), 1)
}

func TestCategory_ExportMatchesFilteredSortedRows(t *testing.T) {
	f := newFixture(t)
	svc := f.categories()
	ctx := context.Background()

	for _, name := range []string{"Phone Cases", "Laptops", "Phones", "Phone Chargers", "Cameras", "Smart Phones"} {
		_, err := svc.CreateCategory(ctx, &structs.CategoryInput{Name: name, Color: "c"})
		require.NoError(t, err)
	}

	q := structs.TableQuery{Search: "phone", SortBy: "name", SortDirection: "desc", PageSize: 5}
	export, err := svc.ExportCategories(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "categories.xlsx", export.Filename)
	assert.Equal(t, 4, export.Rows)

	rows := readSheet(t, export, "Categories")
	require.Len(t, rows, 5)
	assert.Equal(t, "Name", rows[0][1])
	var names []string
	for _, r := range rows[1:] {
		names = append(names, r[1])
	}
	assert.Equal(t, []string{"Smart Phones", "Phones", "Phone Chargers", "Phone Cases"}, names)
}
