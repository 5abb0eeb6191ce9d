// Package httputil provides the JSON envelope shared by every API endpoint.
package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/Hozaifa-Bhutta/agri-vision/internal/errors"
)

// Envelope is the response shape of every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// successEnvelope always carries the result field so false and null
// results survive serialization.
type successEnvelope struct {
	Success bool `json:"success"`
	Result  any  `json:"result"`
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, result any) {
	WriteJSON(w, http.StatusOK, successEnvelope{
		Success: true,
		Result:  result,
	})
}

// WriteError writes a failure envelope with an explicit status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{
		Success: false,
		Error:   message,
	})
}

// WriteAppError maps an application error onto its HTTP status and writes
// the failure envelope.
func WriteAppError(w http.ResponseWriter, err error) {
	status := apperrors.StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	WriteError(w, status, message)
}

// ReadJSON reads JSON from the request body.
func ReadJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}
