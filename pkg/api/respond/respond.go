// Package respond holds the JSON, CORS and error-mapping helpers shared by
// the HTTP handlers.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/phuslu/log"

	"hagwon_strategy/pkg/core/store"
	"hagwon_strategy/pkg/models"
)

// AllowedOrigin is sent in Access-Control-Allow-Origin. cmd/api sets it
// from config.
var AllowedOrigin = "*"

// CORS writes the CORS headers and answers preflight requests. It returns
// false when the request was fully handled, either as a preflight or
// because the method is not in methods.
func CORS(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	allow := strings.Join(append(append([]string{}, methods...), http.MethodOptions), ", ")
	w.Header().Set("Access-Control-Allow-Origin", AllowedOrigin)
	w.Header().Set("Access-Control-Allow-Methods", allow)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return false
	}
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", allow)
	JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	return false
}

func JSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// Decode reads a JSON body into v. Malformed bodies become validation
// errors so they map to 400.
func Decode(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return models.NewValidationError(nil, models.FieldError{Field: "body", Error: "is required"})
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			return models.NewValidationError(err, models.FieldError{Field: "body", Error: err.Error()})
		}
		return models.NewValidationError(nil, models.FieldError{Field: "body", Error: err.Error()})
	}
	return nil
}

// Error maps err to a status: validation errors are 400 with the field
// map, unknown records are 404, anything else is a logged 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		body := map[string]interface{}{"error": verr.Err.Error()}
		if len(verr.Fields) > 0 {
			body["fields"] = verr.FieldMap()
		}
		JSON(w, http.StatusBadRequest, body)
	case errors.Is(err, models.ErrInvalidInput):
		JSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		log.Error().Str("method", r.Method).Str("path", r.URL.Path).Err(err).Msg("request failed")
		JSON(w, http.StatusInternalServerError, map[string]string{"error": http.StatusText(http.StatusInternalServerError)})
	}
}

// QueryInt reads an integer query parameter, returning def when it is
// absent.
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError(nil, models.FieldError{Field: key, Error: "must be a number"})
	}
	return n, nil
}
