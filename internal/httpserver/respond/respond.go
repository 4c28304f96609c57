// Package respond writes HTTP response bodies in the shapes the API promises.
package respond

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the structured error shape: {"error":{"message":"..."}}.
type ErrorBody struct {
	Error ErrorMessage `json:"error"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// JSON writes v as a JSON document with the given status.
func JSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// Text writes a plain-text body with the given status.
func Text(w http.ResponseWriter, status int, msg string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, err := w.Write([]byte(msg))
	return err
}

// Error writes the structured error shape with the given status.
func Error(w http.ResponseWriter, status int, msg string) error {
	return JSON(w, status, ErrorBody{Error: ErrorMessage{Message: msg}})
}
