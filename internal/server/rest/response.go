package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/edustream/internal/common"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"message": message})
}

func writeValidation(w http.ResponseWriter, v *common.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "Validation failed",
		"errors":  v.Fields,
	})
}

// decodeBody reads a JSON request body into dst. Malformed payloads are
// reported as a *common.ValidationError so handlers answer them with 422.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return common.NewValidationError("request", "The request body is required.")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return common.NewValidationError(typeErr.Field, fmt.Sprintf("The %s field must be of type %s.", typeErr.Field, typeErr.Type.Kind()))
		default:
			return common.NewValidationError("request", "The request body must be valid JSON.")
		}
	}
	return nil
}

func writeInternal(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"message": message,
		"error":   "Internal server error",
	})
}
