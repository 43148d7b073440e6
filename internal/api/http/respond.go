package http

import (
	"encoding/hex"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"
)

type errorBody struct {
	Error  string      `json:"error"`
	Code   string      `json:"code,omitempty"`
	Fields interface{} `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, fields interface{}) {
	writeJSON(w, status, errorBody{Error: msg, Code: code, Fields: fields})
}

// wantsJSON is true for JSON request bodies and for clients that ask for JSON
// without also accepting HTML.
func wantsJSON(r *http.Request) bool {
	if isJSONContent(r.Header.Get("Content-Type")) {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func isJSONContent(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/json"
}

// etag is a strong validator over the response body.
func etag(b []byte) string {
	sum := blake2b.Sum256(b)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func etagMatches(r *http.Request, tag string) bool {
	for _, t := range strings.Split(r.Header.Get("If-None-Match"), ",") {
		t = strings.TrimSpace(t)
		if t == tag || t == "*" {
			return true
		}
	}
	return false
}
