package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error codes returned in the error envelope.
const (
	codeInvalidRequest      = "invalid_request"
	codeInvalidRange        = "invalid_range"
	codeInvalidValue        = "invalid_value"
	codeProviderUnavailable = "provider_unavailable"
	codeRequestInFlight     = "request_in_flight"
	codeGenderBlocked       = "gender_blocked"
	codeUpstreamError       = "upstream_error"
	codeTooManyFiles        = "too_many_files"
	codeFileTooLarge        = "file_too_large"
)

// errorBody is the JSON error envelope: {"error":{"code","message","details"}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// writeJSON encodes v as JSON with the given status code. On encoding failure
// it falls back to a plain 500 body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("server: encode response", "err", err)
		http.Error(w, `{"error":{"code":"internal","message":"encoding failed"}}`, http.StatusInternalServerError)
	}
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message, details string) {
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// decodeJSON decodes the request body into v, rejecting unknown fields. A
// false return means the error response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "malformed JSON body", err.Error())
		return false
	}
	return true
}
