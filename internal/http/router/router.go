// Package router assembles the HTTP surface: the middleware chain and
// the student route table. main and the handler tests share it so the
// served routes and the tested routes can never drift apart.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/schoolproject/school-api/internal/http/handlers/student"
	"github.com/schoolproject/school-api/internal/http/middleware"
	"github.com/schoolproject/school-api/internal/storage"
)

// New builds the router. The exception translator is the outermost
// application middleware so anything panicking out of a handler still
// produces the uniform {StatusCode, Message} envelope; the request
// logger sits outside it and therefore logs the translated status.
func New(log *slog.Logger, st storage.Storage) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ExceptionTranslator(log))

	r.Route("/api/student", func(r chi.Router) {
		r.Get("/students", student.GetList(st))
		r.Get("/standard/{standard}", student.GetByStandard(st))
		r.Get("/test-exception", student.TestException())
		r.Post("/upsert", student.Upsert(st))
		r.Post("/upsert/{studentSid}", student.Upsert(st))
		r.Get("/{studentSid}", student.GetBySid(st))
		r.Delete("/{studentSid}", student.Delete(st))
	})

	return r
}
