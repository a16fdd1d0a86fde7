package httpapi

import (
	"encoding/json"
	"net/http"
)

// maxRequestBody caps request body sizes. The largest admin payload (a
// registration) is well under 1 KiB, so 4 KiB is generous.
const maxRequestBody = 4096

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
