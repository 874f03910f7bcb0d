// Package common holds helpers shared by the API handlers.
package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// MaxBodyBytes bounds request bodies accepted by the API
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse mirrors the boolean result of a write operation
type SuccessResponse struct {
	Success bool `json:"success"`
}

// WriteJSONResponse writes a JSON response with the given data
func WriteJSONResponse(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// WriteErrorResponse writes a standardized error response
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	WriteJSONResponse(w, ErrorResponse{Error: message}, statusCode)
}

// WriteSuccess writes {"success": ok} with status 200
func WriteSuccess(w http.ResponseWriter, ok bool) {
	WriteJSONResponse(w, SuccessResponse{Success: ok}, http.StatusOK)
}

// ReadBody reads a request body of at most MaxBodyBytes
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

// DecodeJSON decodes a JSON request body into v. Trailing data is rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: unexpected data after JSON value")
	}
	return nil
}
