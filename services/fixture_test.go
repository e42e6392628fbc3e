package services

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"storefront_server/database/inmemory"
	"storefront_server/storage"
	"storefront_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/require"
)

const testMaxImage = 2048 * 1024

type fixture struct {
	mem    *inmemory.Store
	stores Stores
	disk   *storage.Disk
	logger *gecho.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	disk, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)

	mem := inmemory.New()
	return &fixture{
		mem: mem,
		stores: Stores{
			Categories: mem.Categories(),
			Banners:    mem.Banners(),
			Brands:     mem.Brands(),
			Products:   mem.Products(),
		},
		disk:   disk,
		logger: gecho.NewDefaultLogger(),
	}
}

func (f *fixture) categories() *CategoryService {
	return NewCategoryService(f.logger, f.stores.Categories, f.disk, testMaxImage)
}

func (f *fixture) banners() *BannerService {
	return NewBannerService(f.logger, f.stores.Banners, f.disk, testMaxImage)
}

func (f *fixture) products() *ProductService {
	return NewProductService(f.logger, f.stores, f.disk, testMaxImage)
}

// files lists what is stored under folder.
func (f *fixture) files(t *testing.T, folder string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(f.disk.Root(), folder, "*"))
	require.NoError(t, err)
	return matches
}

func pngUpload(t *testing.T, name string) *structs.UploadedFile {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 3))))
	return &structs.UploadedFile{Filename: name, Size: int64(buf.Len()), Data: buf.Bytes()}
}

func strp(s string) *string { return &s }

func boolp(b bool) *bool { return &b }

func intp(i int) *int { return &i }
