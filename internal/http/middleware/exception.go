// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/schoolproject/school-api/internal/apierror"
	"github.com/schoolproject/school-api/internal/utils/response"
)

// ErrorEnvelope is the wire shape of every response emitted by the
// exception translator. The PascalCase keys are part of the public
// contract; other envelopes in this API use lowercase keys.
type ErrorEnvelope struct {
	StatusCode int    `json:"StatusCode"`
	Message    string `json:"Message"`
}

// ExceptionTranslator is the outermost safety net. It recovers any
// panic escaping the handler chain, classifies it by error kind, and
// writes a uniform ErrorEnvelope. It is a last-resort translator only:
// no retry, no recovery, handlers keep their own error branches.
//
// Classification:
//
//	apierror.ErrInvalidArgument → 400, the error's own text
//	apierror.ErrUnauthorized    → 401, "Unauthorized access."
//	apierror.ErrNotFound        → 404, "Resource not found."
//	anything else               → 500, "Internal Server Error. Please contact support."
func ExceptionTranslator(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// The net/http contract for aborting a handler.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				status, message := translate(rec)

				log.Error("unhandled failure in handler",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)

				response.WriteJSON(w, status, ErrorEnvelope{
					StatusCode: status,
					Message:    message,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// translate maps a recovered panic value to an HTTP status and a
// client-facing message. Non-error panic values fall through to the
// generic 500 branch.
func translate(rec any) (int, string) {
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}

	switch {
	case errors.Is(err, apierror.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apierror.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized access."
	case errors.Is(err, apierror.ErrNotFound):
		return http.StatusNotFound, "Resource not found."
	default:
		return http.StatusInternalServerError, "Internal Server Error. Please contact support."
	}
}
