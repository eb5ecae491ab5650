package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes the standard JSON error envelope used by
// responses produced before a request reaches its controller.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
