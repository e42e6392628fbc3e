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

type BannerService struct {
	logger        *gecho.Logger
	store         BannerStore
	files         FileStorage
	maxImageBytes int64
}

func NewBannerService(logger *gecho.Logger, store BannerStore, files FileStorage, maxImageBytes int64) *BannerService {
	return &BannerService{
		logger:        logger,
		store:         store,
		files:         files,
		maxImageBytes: maxImageBytes,
	}
}

func (bs *BannerService) ListBanners(ctx context.Context, q structs.TableQuery) (*structs.Page[tables.Banner], error) {
	q, err := bannerTable.normalize(q)
	if err != nil {
		return nil, err
	}
	page, err := bs.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return page, nil
}

// validate checks banner input. The image is mandatory only for new banners.
func (bs *BannerService) validate(in *structs.BannerInput, imageRequired bool) (string, error) {
	in.Alt = strings.TrimSpace(in.Alt)
	in.LinkURL = optional(in.LinkURL)

	ve, err := collect(lib.ValidateStruct(in))
	if err != nil {
		return "", err
	}

	var ext string
	switch {
	case in.Image != nil:
		if ext, err = lib.CheckImage(in.Image, bs.maxImageBytes); err != nil {
			ve.Add("image", err.Error())
		}
	case imageRequired:
		ve.Add("image", "is required")
	}

	return ext, ve.OrNil()
}

// CreateBanner stores the image and inserts the banner. Without an explicit
// sort order the banner is placed after the last one.
func (bs *BannerService) CreateBanner(ctx context.Context, in *structs.BannerInput) (*tables.Banner, error) {
	ext, err := bs.validate(in, true)
	if err != nil {
		return nil, err
	}

	sortOrder := 0
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	} else {
		highest, err := bs.store.MaxSortOrder(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compute sort order: %w", err)
		}
		sortOrder = highest + 1
	}

	path, err := bs.files.Save(storage.BannersFolder, in.Image.Data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to store banner image: %w", err)
	}

	banner := &tables.Banner{
		ImageURL:  path,
		LinkURL:   in.LinkURL,
		Alt:       in.Alt,
		IsActive:  *in.IsActive,
		SortOrder: sortOrder,
	}
	if err := bs.store.Create(ctx, banner); err != nil {
		discardFile(bs.logger, bs.files, path)
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	bs.logger.Info("Banner created", gecho.Field("id", banner.ID), gecho.Field("sort_order", banner.SortOrder))
	return banner, nil
}

// UpdateBanner replaces the editable fields. An omitted image or sort order keeps the current one.
func (bs *BannerService) UpdateBanner(ctx context.Context, id int64, in *structs.BannerInput) (*tables.Banner, error) {
	existing, err := bs.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	ext, err := bs.validate(in, false)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.LinkURL = in.LinkURL
	updated.Alt = in.Alt
	updated.IsActive = *in.IsActive
	if in.SortOrder != nil {
		updated.SortOrder = *in.SortOrder
	}

	var newImage string
	if in.Image != nil {
		if newImage, err = bs.files.Save(storage.BannersFolder, in.Image.Data, ext); err != nil {
			return nil, fmt.Errorf("failed to store banner image: %w", err)
		}
		updated.ImageURL = newImage
	}

	if err := bs.store.Update(ctx, &updated); err != nil {
		discardFile(bs.logger, bs.files, newImage)
		if errors.Is(err, lib.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}

	if newImage != "" && existing.ImageURL != newImage {
		discardFile(bs.logger, bs.files, existing.ImageURL)
	}

	return &updated, nil
}

// ToggleActive flips only the active flag.
func (bs *BannerService) ToggleActive(ctx context.Context, id int64) (*tables.Banner, error) {
	banner, err := bs.store.Toggle(ctx, id)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle banner: %w", err)
	}

	bs.logger.Info("Banner toggled", gecho.Field("id", id), gecho.Field("is_active", banner.IsActive))
	return banner, nil
}

func (bs *BannerService) DeleteBanner(ctx context.Context, id int64) error {
	existing, err := bs.store.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := bs.store.Delete(ctx, id); err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	discardFile(bs.logger, bs.files, existing.ImageURL)
	return nil
}

// BulkDeleteBanners follows the same all-or-nothing rule as categories.
func (bs *BannerService) BulkDeleteBanners(ctx context.Context, ids []int64) (int, error) {
	if err := lib.ValidateStruct(&structs.BulkDeleteRequest{IDs: ids}); err != nil {
		return 0, err
	}

	missingIDs, err := bs.store.MissingIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to look up banners: %w", err)
	}
	if err := invalidIDs(ids, missingIDs); err != nil {
		return 0, err
	}

	removed, err := bs.store.DeleteMany(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete banners: %w", err)
	}
	for _, b := range removed {
		discardFile(bs.logger, bs.files, b.ImageURL)
	}

	bs.logger.Info("Banners deleted", gecho.Field("count", len(removed)))
	return len(removed), nil
}

func (bs *BannerService) ExportBanners(ctx context.Context, q structs.TableQuery) (*Export, error) {
	q, err := bannerTable.exportQuery(q)
	if err != nil {
		return nil, err
	}
	page, err := bs.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}

	rows := make([][]any, 0, len(page.Data))
	for _, b := range page.Data {
		rows = append(rows, []any{b.ID, b.Alt, cellString(b.LinkURL), b.ImageURL, cellBool(b.IsActive), b.SortOrder, cellTime(b.CreatedAt)})
	}

	data, err := buildWorkbook("Home Banners",
		[]string{"ID", "Alt", "Link URL", "Image", "Active", "Sort Order", "Created At"}, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build banners export: %w", err)
	}
	return &Export{Filename: "home_banners.xlsx", Data: data, Rows: len(rows)}, nil
}
