package server

import (
	"encoding/json"
	"net/http"
)

// videoResponse is the wire shape of a lookup answer. VideoURL is a pointer
// so "not found" serializes as an explicit null.
type videoResponse struct {
	VideoURL *string `json:"videoUrl"`
	Message  string  `json:"message,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, errorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
