package serve

import (
	"encoding/json"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "evaluate" | "evaluate_batch" | "status" | "close"
	Payload json.RawMessage `json:"payload"`
}

// EvaluatePayload is the payload for "evaluate" requests
type EvaluatePayload struct {
	Password string `json:"password"`
	// Explain adds the pattern rules that fired to the result.
	Explain bool `json:"explain,omitempty"`
}

// EvaluateBatchPayload is the payload for "evaluate_batch" requests
type EvaluateBatchPayload struct {
	Passwords []string `json:"passwords"`
	Explain   bool     `json:"explain,omitempty"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "evaluate" | "evaluate_batch" | "status" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}

// BatchData is the data field for "evaluate_batch" responses. Results are
// in request order.
type BatchData struct {
	Results []json.RawMessage `json:"results"`
}

// StatusData is the data field for "status" responses
type StatusData struct {
	Version         string `json:"version"`
	DictionaryReady bool   `json:"dictionary_ready"`
	DictionarySize  int    `json:"dictionary_size"`
	DictionaryError string `json:"dictionary_error,omitempty"`
}
