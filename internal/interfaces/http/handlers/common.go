// Package handlers implements the HTTP request handlers for the depiction
// API. Handlers decode and validate transport concerns only; all domain work
// lives in the application services.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wikimol/wikimolgen/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeAppError maps an application error onto its HTTP status. Internal
// errors are masked; everything else surfaces its own code and message.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	if status >= http.StatusInternalServerError {
		writeJSON(w, status, ErrorResponse{
			Code:    string(code),
			Message: "internal server error",
		})
		return
	}
	writeJSON(w, status, ErrorResponse{
		Code:    string(code),
		Message: err.Error(),
	})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidParam("request body is not valid JSON: " + err.Error())
	}
	return nil
}
