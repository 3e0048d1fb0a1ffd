package handler

import (
	"errors"
	"net/http"

	"draftconv/internal/domain"
	"draftconv/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var serr *domain.SerializationError

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &serr):
		httputil.RespondErrorWithExtras(w, serr.StatusCode(), "could not save: "+serr.Error(), map[string]interface{}{
			"node_type": serr.NodeType,
			"path":      serr.Path,
		})
	case errors.Is(err, domain.ErrNormalization):
		httputil.RespondError(w, http.StatusInternalServerError, "document structure could not be repaired")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
