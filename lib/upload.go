package lib

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"storefront_server/structs"

	"github.com/gabriel-vasile/mimetype"
)

// Raster formats accepted for uploaded images.
var imageMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ReadUpload reads the first file of a multipart field. A missing field is
// not an error and yields nil. At most maxBytes+1 bytes are kept so an
// oversized file can still be reported as such.
func ReadUpload(r *http.Request, field string, maxBytes int64) (*structs.UploadedFile, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	return readFileHeader(r.MultipartForm.File[field][0], maxBytes)
}

// ReadUploads reads every file of a repeated multipart field, in form order.
func ReadUploads(r *http.Request, field string, maxBytes int64) ([]*structs.UploadedFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	files := make([]*structs.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readFileHeader(fh, maxBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func readFileHeader(fh *multipart.FileHeader, maxBytes int64) (*structs.UploadedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}

	return &structs.UploadedFile{
		Filename: fh.Filename,
		Size:     fh.Size,
		Data:     data,
	}, nil
}

// CheckImage validates an upload against the size cap and the raster
// allow-list, detecting the type from content rather than the file name.
// It returns the extension the file should be stored under. The error text
// is meant for the client.
func CheckImage(f *structs.UploadedFile, maxBytes int64) (string, error) {
	if f == nil || len(f.Data) == 0 {
		return "", errors.New("must be a file")
	}
	if f.Size > maxBytes || int64(len(f.Data)) > maxBytes {
		return "", fmt.Errorf("must not be greater than %d kilobytes", maxBytes/1024)
	}

	mtype := mimetype.Detect(f.Data)
	for _, allowed := range imageMimeTypes {
		if mtype.Is(allowed) {
			return mtype.Extension(), nil
		}
	}
	return "", errors.New("must be an image (jpeg, png, jpg, gif, webp)")
}
