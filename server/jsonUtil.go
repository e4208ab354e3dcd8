package server

import (
	"encoding/json"
	"net/http"
)

const contentTypeHeader string = "Content-Type"

var jsonContentTypeValue = []string{"application/json; charset=utf-8"}

// WriteJSON serializes body to provided writer
func WriteJSON(status int, body interface{}, w http.ResponseWriter) error {
	header := w.Header()
	if val := header[contentTypeHeader]; len(val) == 0 {
		header[contentTypeHeader] = jsonContentTypeValue
	}
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
