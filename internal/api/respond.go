package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Error messages returned in {"error": ...} bodies.
const (
	msgNotFound         = "Not found"
	msgNotJSON          = "Not a JSON"
	msgMethodNotAllowed = "Method not allowed"
	msgInternal         = "Internal server error"
	msgEmailTaken       = "Email already exists"
	msgInvalid          = "Invalid request"
	msgInvalidPassword  = "Invalid password"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMissing(w http.ResponseWriter, field string) {
	writeError(w, http.StatusBadRequest, "Missing "+field)
}

// writeFailure maps a storage error to a response. Anything other than a
// missing entity is logged and reported as a 500.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, types.ErrNotFound) {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	logger.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// writeInvalid answers 400 naming the field whose value could not be
// decoded. The decoder's message is only logged.
func writeInvalid(w http.ResponseWriter, r *http.Request, err error) {
	var fe *types.FieldError
	if !errors.As(err, &fe) {
		writeFailure(w, r, err)
		return
	}
	logger.Debugf("%s %s: %v", r.Method, r.URL.Path, err)
	if fe.Field == "" {
		writeError(w, http.StatusBadRequest, msgInvalid)
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid "+fe.Field)
}

// writeEntity renders e in its external form.
func writeEntity(w http.ResponseWriter, status int, e types.Entity) {
	writeJSON(w, status, e.ToMap(false))
}

func writeEntities[T types.Entity](w http.ResponseWriter, es []T) {
	out := make([]map[string]any, len(es))
	for i, e := range es {
		out[i] = e.ToMap(false)
	}
	writeJSON(w, http.StatusOK, out)
}

// readBody decodes a JSON object request body. ok is false, and a 400 has
// been written, when the body is not a JSON object.
func readBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeError(w, http.StatusBadRequest, msgNotJSON)
		return nil, false
	}
	return body, true
}

// requireFields writes a 400 for the first key missing from body.
func requireFields(w http.ResponseWriter, body map[string]any, fields ...string) bool {
	for _, f := range fields {
		if _, ok := body[f]; !ok {
			writeMissing(w, f)
			return false
		}
	}
	return true
}
