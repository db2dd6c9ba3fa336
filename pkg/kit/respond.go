package kit

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Envelope carries the top-level fields of a success response. Every body
// has a boolean "success" discriminator; payload fields (data, pagination,
// count, message, ...) sit next to it.
type Envelope map[string]any

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteSuccess(w http.ResponseWriter, status int, fields Envelope) {
	body := Envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	WriteJSON(w, status, body)
}

// WriteError emits {success:false, error, message?, details?, request_id?}.
// details holds field-level messages for validation failures.
func WriteError(w http.ResponseWriter, r *http.Request, status int, errMsg, message string, details []string) {
	body := Envelope{
		"success": false,
		"error":   errMsg,
	}
	if message != "" {
		body["message"] = message
	}
	if len(details) > 0 {
		body["details"] = details
	}
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		body["request_id"] = reqID
	}
	WriteJSON(w, status, body)
}
