// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Consistent response shapes also make life easier for API consumers —
// they always know what error responses look like.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope for request-level failures
// (decode errors, validation errors):
//
//	{ "status": "error", "error": "field Age must be at least 5" }
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as a JSON body with the given HTTP status code.
// Headers must be set before WriteHeader, and WriteHeader before any
// body bytes.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Message builds the single-field {"message": ...} envelope used for
// 404s and delete confirmations.
func Message(msg string) map[string]string {
	return map[string]string{"message": msg}
}

// Detail builds the {"message": ..., "error": ...} envelope handlers use
// when a storage call fails.
func Detail(msg string, err error) map[string]string {
	return map[string]string{"message": msg, "error": err.Error()}
}

// GeneralError wraps any Go error into the standard Response shape.
// Use this for unexpected errors (decode errors, bad path values, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts the per-field errors collected by
// go-playground/validator into a single Response whose error string
// lists every violation.
//
// Example output:
//
//	{ "status": "error",
//	  "error": "field FullName is required, field Age must be at least 5" }
//
// Range and length messages quote the bound from the validate tag
// itself, so the text can never drift from the enforced rule.
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "email":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be a valid email address", e.Field()))
		case "max":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must not exceed %s characters", e.Field(), e.Param()))
		case "gte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "lte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		case "len":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be exactly %s digits", e.Field(), e.Param()))
		case "number":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must contain only digits", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
