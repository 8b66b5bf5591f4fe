// Package httputil writes the JSON envelope every endpoint responds with:
// a success flag, a human-readable message, and optional payload fields.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope carries the optional payload fields of a response.
type Envelope map[string]any

// Success writes a successful response with the given payload fields merged
// into the envelope.
func Success(w http.ResponseWriter, status int, message string, data Envelope) {
	body := Envelope{
		"success": true,
		"message": message,
	}
	for k, v := range data {
		body[k] = v
	}

	writeJSON(w, status, body)
}

// Error writes a failure response. The message is rendered directly by
// clients, so it must never contain internal error detail.
func Error(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{
		"success": false,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	// Encoding a map of already-marshalable values cannot fail in a way the
	// client can still be told about; the connection is the only failure mode.
	_ = json.NewEncoder(w).Encode(body)
}
