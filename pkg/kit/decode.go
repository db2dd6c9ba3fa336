package kit

import (
	"encoding/json"
	"net/http"
)

const maxBodyBytes = 1 << 20

// DecodeJSON strictly decodes a request body into v, capping the body at
// 1MB and rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
