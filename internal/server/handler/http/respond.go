// Package http provides the HTTP handlers and routing for the taskfolio
// API. Handlers authenticate through the session middleware, validate
// request payloads, invoke one repository method, and serialize the result.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate checks request payload struct tags before any repository call.
// Repositories assume pre-validated input and do not re-validate.
var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeValid decodes the request body into v and runs struct validation.
// It writes the error response itself and reports whether decoding
// succeeded.
func decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
