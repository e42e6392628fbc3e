package services

import (
	"context"
	"errors"
	"fmt"
	"storefront_server/lib"
	"storefront_server/storage"
	"storefront_server/structs"
	"storefront_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
)

type CategoryService struct {
	logger        *gecho.Logger
	store         CategoryStore
	files         FileStorage
	maxImageBytes int64
}

func NewCategoryService(logger *gecho.Logger, store CategoryStore, files FileStorage, maxImageBytes int64) *CategoryService {
	return &CategoryService{
		logger:        logger,
		store:         store,
		files:         files,
		maxImageBytes: maxImageBytes,
	}
}

func (cs *CategoryService) ListCategories(ctx context.Context, q structs.TableQuery) (*structs.Page[tables.Category], error) {
	q, err := categoryTable.normalize(q)
	if err != nil {
		return nil, err
	}
	page, err := cs.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return page, nil
}

func (cs *CategoryService) GetCategory(ctx context.Context, id int64) (*tables.Category, error) {
	return cs.store.Find(ctx, id)
}

// validate checks input for a category that is new (id 0) or being edited,
// returning the derived slug and the image extension.
func (cs *CategoryService) validate(ctx context.Context, in *structs.CategoryInput, id int64) (string, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)

	ve, err := collect(lib.ValidateStruct(in))
	if err != nil {
		return "", "", err
	}

	slug := lib.Slugify(in.Name)
	if in.Name != "" && slug == "" {
		ve.Add("name", "must contain letters or digits")
	}

	var ext string
	if in.Image != nil {
		if ext, err = lib.CheckImage(in.Image, cs.maxImageBytes); err != nil {
			ve.Add("image", err.Error())
		}
	}

	if !ve.Has("name") {
		taken, err := cs.store.NameOrSlugTaken(ctx, in.Name, slug, id)
		if err != nil {
			return "", "", fmt.Errorf("failed to check category name: %w", err)
		}
		if taken {
			ve.Add("name", takenMessage)
		}
	}

	return slug, ext, ve.OrNil()
}

// CreateCategory validates the input, stores the image and inserts the
// category. Nothing is written when validation fails.
func (cs *CategoryService) CreateCategory(ctx context.Context, in *structs.CategoryInput) (*tables.Category, error) {
	slug, ext, err := cs.validate(ctx, in, 0)
	if err != nil {
		return nil, err
	}

	category := &tables.Category{
		Name:        in.Name,
		Slug:        slug,
		Color:       in.Color,
		Description: optional(in.Description),
	}

	if in.Image != nil {
		path, err := cs.files.Save(storage.CategoriesFolder, in.Image.Data, ext)
		if err != nil {
			return nil, fmt.Errorf("failed to store category image: %w", err)
		}
		category.Image = path
	}

	if err := cs.store.Create(ctx, category); err != nil {
		discardFile(cs.logger, cs.files, category.Image)
		if errors.Is(err, lib.ErrConflict) {
			return nil, lib.NewValidationError("name", takenMessage)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	cs.logger.Info("Category created", gecho.Field("id", category.ID), gecho.Field("slug", category.Slug))
	return category, nil
}

// UpdateCategory replaces the editable fields of a category. A new image is
// stored before the record is updated and the old file is removed after.
func (cs *CategoryService) UpdateCategory(ctx context.Context, id int64, in *structs.CategoryInput) (*tables.Category, error) {
	existing, err := cs.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	slug, ext, err := cs.validate(ctx, in, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = in.Name
	updated.Slug = slug
	updated.Color = in.Color
	updated.Description = optional(in.Description)

	var newImage string
	if in.Image != nil {
		if newImage, err = cs.files.Save(storage.CategoriesFolder, in.Image.Data, ext); err != nil {
			return nil, fmt.Errorf("failed to store category image: %w", err)
		}
		updated.Image = newImage
	}

	if err := cs.store.Update(ctx, &updated); err != nil {
		discardFile(cs.logger, cs.files, newImage)
		if errors.Is(err, lib.ErrConflict) {
			return nil, lib.NewValidationError("name", takenMessage)
		}
		if errors.Is(err, lib.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if newImage != "" && existing.Image != newImage {
		discardFile(cs.logger, cs.files, existing.Image)
	}

	return &updated, nil
}

// DeleteCategory removes the record, then its image file.
func (cs *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	existing, err := cs.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := cs.store.Delete(ctx, id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	discardFile(cs.logger, cs.files, existing.Image)
	cs.logger.Info("Category deleted", gecho.Field("id", id))
	return nil
}

// BulkDeleteCategories removes every listed category or none: a batch that
// names any unknown id is rejected as a whole.
func (cs *CategoryService) BulkDeleteCategories(ctx context.Context, ids []int64) (int, error) {
	if err := lib.ValidateStruct(&structs.BulkDeleteRequest{IDs: ids}); err != nil {
		return 0, err
	}

	missingIDs, err := cs.store.MissingIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to look up categories: %w", err)
	}
	if err := invalidIDs(ids, missingIDs); err != nil {
		return 0, err
	}

	removed, err := cs.store.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete categories: %w", err)
	}
	for _, c := range removed {
		discardFile(cs.logger, cs.files, c.Image)
	}

	cs.logger.Info("Categories deleted", gecho.Field("count", len(removed)))
	return len(removed), nil
}

// ExportCategories renders the filtered and sorted categories, across all pages, as a workbook.
func (cs *CategoryService) ExportCategories(ctx context.Context, q structs.TableQuery) (*Export, error) {
	q, err := categoryTable.exportQuery(q)
	if err != nil {
		return nil, err
	}
	page, err := cs.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	rows := make([][]any, 0, len(page.Data))
	for _, c := range page.Data {
		rows = append(rows, []any{c.ID, c.Name, c.Slug, c.Color, cellString(c.Description), c.Image, cellTime(c.CreatedAt)})
	}

	data, err := buildWorkbook("Categories",
		[]string{"ID", "Name", "Slug", "Color", "Description", "Image", "Created At"}, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build categories export: %w", err)
	}
	return &Export{Filename: "categories.xlsx", Data: data, Rows: len(rows)}, nil
}
