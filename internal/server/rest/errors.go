package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/edustream/internal/common"
)

// writeError is the fallback mapping from the common error taxonomy to a
// response. Handlers with endpoint-specific bodies handle their cases first.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, verr)
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrorUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "Unauthenticated.")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	default:
		writeInternal(w, "Server error")
	}
}
