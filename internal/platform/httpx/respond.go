// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

// ProblemDetail represents RFC7807 problem details.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}

// Error maps a DomainError kind to the matching problem response.
// Anything untagged becomes a 500 carrying the underlying message.
func Error(w http.ResponseWriter, err error) {
	var de *shared.DomainError
	if errors.As(err, &de) {
		switch de.Kind {
		case shared.KindValidation, shared.KindInvalidReference:
			Problem(w, http.StatusBadRequest, "Bad Request", de.Message)
			return
		case shared.KindNotFound:
			Problem(w, http.StatusNotFound, "Not Found", de.Message)
			return
		case shared.KindConflict:
			Problem(w, http.StatusConflict, "Conflict", de.Message)
			return
		}
	}
	Problem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
}
