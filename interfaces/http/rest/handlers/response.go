package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/pkg/utils"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 64 << 10

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeBody reads and validates a JSON request body
func decodeBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.NewValidationError("Request body could not be read")
	}
	if len(body) == 0 {
		return errors.NewValidationError("Request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errors.NewValidationError(fmt.Sprintf("Invalid JSON in request body: %v", err))
	}
	if err := utils.ValidateStruct(dst); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return nil
}

// pathParam returns a required URL parameter. chi matches on the escaped
// path when the request carries one, so the value is unescaped here.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(v)
		if err != nil {
			return "", errors.NewValidationError(fmt.Sprintf("%s is not a valid path segment", name))
		}
		v = unescaped
	}
	if v == "" {
		return "", errors.NewValidationError(name + " is required")
	}
	return v, nil
}
