package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Envelope is the standard API response format.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *APIError   `json:"error"`
	Meta    Meta        `json:"meta"`
}

// APIError is the error body of a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains request metadata.
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(r *http.Request) Meta {
	reqID := ""
	if r != nil {
		reqID = middleware.GetReqID(r.Context())
	}
	return Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: reqID,
	}
}

// RespondJSON writes a success JSON response with the standard envelope.
func RespondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	env := Envelope{
		Success: true,
		Data:    data,
		Meta:    newMeta(r),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// RespondError writes an error JSON response with the standard envelope.
func RespondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	env := Envelope{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
		Meta:    newMeta(r),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}
