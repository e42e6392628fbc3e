package services

import (
	"errors"
	"slices"
	"storefront_server/lib"
	"strings"

	"github.com/MonkyMars/gecho"
)

const takenMessage = "has already been taken"

// collect starts a validation error from the result of lib.ValidateStruct so
// that further checks can add to it. Non-validation errors are returned as is.
func collect(err error) (*lib.ValidationError, error) {
	if err == nil {
		return &lib.ValidationError{}, nil
	}
	var ve *lib.ValidationError
	if errors.As(err, &ve) {
		return ve, nil
	}
	return nil, err
}

// invalidIDs names each position of ids that refers to a missing row.
func invalidIDs(ids, missing []int64) error {
	ve := &lib.ValidationError{}
	for i, id := range ids {
		if slices.Contains(missing, id) {
			ve.Add(lib.IndexField("ids", i), "is invalid")
		}
	}
	return ve.OrNil()
}

// discardFile removes a stored file whose record is gone or was never written.
// Failures only leave an orphaned file, so they are logged and not returned.
func discardFile(logger *gecho.Logger, files FileStorage, path string) {
	if path == "" {
		return
	}
	if err := files.Delete(path); err != nil {
		logger.Error("Failed to delete stored file",
			gecho.Field("path", path),
			gecho.Field("error", err),
		)
	}
}

// optional trims s and maps blank input to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
