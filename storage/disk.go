package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"storefront_server/lib"
	"strings"

	"github.com/google/uuid"
)

// Folders uploads are grouped under.
const (
	CategoriesFolder = "categories"
	BannersFolder    = "banners"
	ProductsFolder   = "products"
)

// Disk is the public file disk. Stored files are addressed by slash
// separated paths relative to the root, e.g. "banners/<uuid>.png".
type Disk struct {
	root string
}

func NewDisk(root string) (*Disk, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve root %q: %v", lib.ErrStorage, root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create root %q: %v", lib.ErrStorage, abs, err)
	}
	return &Disk{root: abs}, nil
}

func (d *Disk) Root() string {
	return d.root
}

// Save writes data under folder with a random file name and returns its relative path.
func (d *Disk) Save(folder string, data []byte, ext string) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	rel := path.Join(folder, uuid.NewString()+ext)

	dir := filepath.Join(d.root, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create folder %q: %v", lib.ErrStorage, folder, err)
	}

	// O_EXCL so a name collision can never clobber an existing file
	f, err := os.OpenFile(d.abs(rel), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: create %q: %v", lib.ErrStorage, rel, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(d.abs(rel))
		return "", fmt.Errorf("%w: write %q: %v", lib.ErrStorage, rel, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(d.abs(rel))
		return "", fmt.Errorf("%w: close %q: %v", lib.ErrStorage, rel, err)
	}
	return rel, nil
}

// Delete removes a managed file. Unmanaged references and files that are
// already gone are ignored.
func (d *Disk) Delete(rel string) error {
	if !IsManaged(rel) {
		return nil
	}
	if err := os.Remove(d.abs(rel)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: delete %q: %v", lib.ErrStorage, rel, err)
	}
	return nil
}

func (d *Disk) Exists(rel string) bool {
	if !IsManaged(rel) {
		return false
	}
	info, err := os.Stat(d.abs(rel))
	return err == nil && !info.IsDir()
}

func (d *Disk) abs(rel string) string {
	return filepath.Join(d.root, filepath.FromSlash(rel))
}

// IsManaged reports whether p is a path this service wrote to the disk, as
// opposed to an external URL or a public asset such as "/images/x.png".
func IsManaged(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "://") || strings.Contains(p, "\\") {
		return false
	}
	clean := path.Clean(p)
	if clean != p || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return false
	}
	folder, _, ok := strings.Cut(clean, "/")
	if !ok {
		return false
	}
	switch folder {
	case CategoriesFolder, BannersFolder, ProductsFolder:
		return true
	}
	return false
}
