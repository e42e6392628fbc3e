package handling

import (
	"errors"
	"net/http"
	"storefront_server/lib"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.WithMessage("Something went wrong. Please try again"), gecho.Send())
}

// ValidationFailed writes the field errors of ve as a 400 response.
func ValidationFailed(w http.ResponseWriter, ve *lib.ValidationError) error {
	return gecho.BadRequest(w,
		gecho.WithMessage("error.validation"),
		gecho.WithData(ve),
		gecho.Send(),
	)
}

// HandleServiceError maps an error returned by a service to its response.
// notFound is the message shown when the addressed record does not exist.
func HandleServiceError(w http.ResponseWriter, err error, notFound string, logger *gecho.Logger) error {
	var ve *lib.ValidationError
	switch {
	case errors.As(err, &ve):
		return ValidationFailed(w, ve)
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w, gecho.WithMessage(notFound), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage("The record was changed by another request"), gecho.Send())
	case errors.Is(err, lib.ErrStorage):
		logger.Error("File storage failed", gecho.Field("error", err), gecho.WithCallerSkip(3))
		return gecho.InternalServerError(w, gecho.WithMessage("The file could not be saved. Please try again"), gecho.Send())
	}
	return HandleError(err, notFound, logger, w)
}
