package httputil

import (
	"encoding/json"
	"net/http"

	"sylo/internal/domain"
)

// Problem is an RFC 7807 problem details body
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.1",
	http.StatusUnauthorized:          "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.2",
	http.StatusForbidden:             "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.4",
	http.StatusNotFound:              "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.5",
	http.StatusConflict:              "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.10",
	http.StatusRequestEntityTooLarge: "https://www.rfc-editor.org/rfc/rfc9110#section-15.5.14",
	http.StatusInternalServerError:   "https://www.rfc-editor.org/rfc/rfc9110#section-15.6.1",
}

// RespondJSON writes data as JSON. The body is marshaled before any header is
// written, so an encoding failure still produces a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondProblem(w, nil, http.StatusInternalServerError, "failed to encode response")
		return
	}
	write(w, status, "application/json", payload)
}

// RespondProblem writes a problem+json body. When r is non-nil its path is
// reported as the instance.
func RespondProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := Problem{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
	if t, ok := problemTypes[status]; ok {
		problem.Type = t
	}
	if r != nil {
		problem.Instance = r.URL.Path
	}

	payload, err := json.Marshal(problem)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	write(w, status, "application/problem+json", payload)
}

// RespondError writes err with the status from domain.StatusCode and returns
// that status. Server-side failures get a generic detail; the caller logs them.
func RespondError(w http.ResponseWriter, r *http.Request, err error) int {
	status := domain.StatusCode(err)
	detail := err.Error()
	if status >= http.StatusInternalServerError {
		detail = "internal server error"
	}
	RespondProblem(w, r, status, detail)
	return status
}

func write(w http.ResponseWriter, status int, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(payload)
}
