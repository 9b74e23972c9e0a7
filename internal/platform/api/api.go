// Package api writes the service's JSON envelope: every response carries a
// status field ("success", "fail" for client errors, "error" for server
// faults) so clients never parse two shapes for one endpoint.
package api

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Success writes the success envelope; pass nil data for bodyless results.
func Success(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Response{Status: "success", Data: data})
}

// Fail writes a client-error envelope (4xx).
func Fail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{Status: "fail", Message: message})
}

// Internal writes the generic 500 envelope. Details stay in the logs.
func Internal(w http.ResponseWriter) {
	WriteJSON(w, http.StatusInternalServerError, Response{
		Status:  "error",
		Message: "terjadi kegagalan pada server kami",
	})
}
