// This file adds small helpers for encoding responses and decoding JSON
// requests with validation.
//
// decodeJSON reads the request body into v, enforcing a reasonable limit and
// rejecting unknown fields. It returns an error suitable for use with
// respondJSONError. Callers should check for errors and send an appropriate
// response.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// respondJSON writes v as a JSON response. Encoding failures are logged; the
// status line has already been sent at that point so nothing else can be
// done for the client.
func respondJSON(w http.ResponseWriter, logger *log.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		if logger == nil {
			logger = log.StandardLogger()
		}
		logger.WithError(err).Error("encode response")
	}
}

// respondJSONError writes a JSON error body with the given status code.
func respondJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// decodeJSON attempts to decode the request body into the provided
// destination. The body is limited to 1MB to guard against malicious
// requests. Unknown fields cause an error so clients cannot send unexpected
// data.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer r.Body.Close()
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1MB
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New("empty body")
		}
		return err
	}
	if dec.More() {
		return errors.New("extra data in request body")
	}
	return nil
}
