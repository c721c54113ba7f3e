package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// maxBodyBytes is far above any project or task payload
const maxBodyBytes = 1 << 20

// ParseJSON decodes the request body into dest, rejecting unknown fields and
// bodies over maxBodyBytes. On failure it writes the problem response itself
// (413 for an oversized body, 400 otherwise) and returns false.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondProblem(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		RespondProblem(w, r, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}

// PathUUID returns the named path value in canonical form; it must be a UUID
func PathUUID(r *http.Request, name string) (string, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q: must be a UUID", name, raw)
	}
	return id.String(), nil
}

// PathUUIDs parses each named path value with PathUUID. The first bad one
// gets a 400 and ok is false.
func PathUUIDs(w http.ResponseWriter, r *http.Request, names ...string) (ids []string, ok bool) {
	ids = make([]string, len(names))
	for i, name := range names {
		id, err := PathUUID(r, name)
		if err != nil {
			RespondProblem(w, r, http.StatusBadRequest, err.Error())
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}
