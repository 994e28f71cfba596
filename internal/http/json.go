package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/apperr"
	"github.com/tuanvumaihuynh/coffee-roastery/pkg/validator"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst and, when v is set, validates
// it. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v validator.Validator, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.MalformedBodyErr.Wrap(err).WithMsg("Invalid JSON body: request body is empty")
		}
		return apperr.MalformedBodyErr.Wrap(err).WithMsgf("Invalid JSON body: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.MalformedBodyErr.Wrap(err).WithMsg("Invalid JSON body: trailing data after JSON value")
	}

	if v == nil {
		return nil
	}
	if err := v.Validate(dst); err != nil {
		return fmt.Errorf("validate request body: %w", err)
	}
	return nil
}

// recordID returns the id path parameter with percent-escapes decoded, so
// "green_coffee%3A<key>" resolves like "green_coffee:<key>". A malformed
// escape is returned as is and resolves to no record.
func recordID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return id
}

// writeJSON encodes v before writing any header, so an encoding failure can
// still be reported as an error response.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	w.Write(append(b, '\n'))
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func healthCheck(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
