// Package student contains all HTTP handlers for the student resource.
//
// Handlers follow the factory/closure pattern: each exported function
// takes the Storage dependency and returns an http.HandlerFunc, so the
// router stays ignorant of the database:
//
//	r.Get("/students", student.GetList(storage))
//	//                 ^ called once at startup; the returned closure
//	//                   runs on every request.
//
// Every handler keeps its own error branches (local 500s with an error
// detail) in addition to the exception-translation middleware wrapping
// the whole router; the middleware only fires for failures that escape
// a handler as a panic.
package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/schoolproject/school-api/internal/storage"
	"github.com/schoolproject/school-api/internal/types"
	"github.com/schoolproject/school-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/student/students?page=&pageSize=&searchText=
//
// Returns one page of non-deleted students, optionally filtered by a
// case-insensitive substring match on name/email.
//
// Responses:
//
//	200 — JSON array of students
//	400 — page or pageSize is not an integer
//	404 — {"message": "No students found!"}
//	500 — {"message": ..., "error": ...} on a storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(st storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		slog.Info("fetching students",
			slog.Int("page", filter.Page),
			slog.Int("pageSize", filter.PageSize),
			slog.String("searchText", filter.SearchText),
		)

		students, err := st.GetFilteredStudents(filter.Page, filter.PageSize, filter.SearchText)
		if err != nil {
			slog.Error("error fetching students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.Detail("Something went wrong while fetching students", err))
			return
		}

		if len(students) == 0 {
			response.WriteJSON(w, http.StatusNotFound,
				response.Message("No students found!"))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByStandard handles GET /api/student/standard/{standard}
//
// Responses:
//
//	200 — JSON array of students in that standard
//	400 — standard is not an integer
//	404 — {"message": "No students found in standard N"}
//	500 — {"message": ..., "error": ...} on a storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByStandard(st storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "standard")

		standard, err := strconv.Atoi(raw)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid standard: must be an integer")))
			return
		}

		slog.Info("fetching students by standard", slog.Int("standard", standard))

		students, err := st.GetStudentsByStandard(standard)
		if err != nil {
			slog.Error("error fetching students by standard",
				slog.Int("standard", standard),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.Detail("Error fetching students by standard", err))
			return
		}

		if len(students) == 0 {
			response.WriteJSON(w, http.StatusNotFound,
				response.Message(fmt.Sprintf("No students found in standard %d", standard)))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetBySid handles GET /api/student/{studentSid}
//
// Responses:
//
//	200 — the student
//	404 — {"message": "Student with SID '...' not found."}
//	500 — {"message": ..., "error": ...} on a storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func GetBySid(st storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "studentSid")
		slog.Info("fetching student", slog.String("sid", sid))

		student, err := st.GetStudentBySid(sid)
		if errors.Is(err, storage.ErrStudentNotFound) {
			response.WriteJSON(w, http.StatusNotFound,
				response.Message(fmt.Sprintf("Student with SID '%s' not found.", sid)))
			return
		}
		if err != nil {
			slog.Error("error fetching student",
				slog.String("sid", sid),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.Detail("Error fetching student", err))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/student/{studentSid}
//
// Sets the soft-delete flag; the row is retained. Idempotent from the
// client's view: deleting an unknown or already-deleted SID is a 404,
// never an error.
//
// Responses:
//
//	200 — {"message": "Student deleted successfully"}
//	404 — {"message": "Student with SID '...' not found."}
//	500 — {"message": ..., "error": ...} on a storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(st storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "studentSid")
		slog.Info("deleting student", slog.String("sid", sid))

		deleted, err := st.DeleteStudent(sid)
		if err != nil {
			slog.Error("error deleting student",
				slog.String("sid", sid),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.Detail("Error deleting student", err))
			return
		}

		if !deleted {
			response.WriteJSON(w, http.StatusNotFound,
				response.Message(fmt.Sprintf("Student with SID '%s' not found.", sid)))
			return
		}

		slog.Info("student deleted", slog.String("sid", sid))
		response.WriteJSON(w, http.StatusOK,
			response.Message("Student deleted successfully"))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Upsert handles POST /api/student/upsert and POST /api/student/upsert/{studentSid}
//
// Without a SID the request creates a new student; with one it
// overwrites the matching non-deleted student. An unknown SID is a 404
// — an update never silently creates.
//
// Responses:
//
//	201 — UpsertResponse with the freshly generated SID (create)
//	200 — UpsertResponse (update)
//	400 — empty/malformed body or validation failure
//	404 — {"message": "Student with SID '...' not found."}
//	500 — {"message": "Upsert operation failed", "error": ...}
//
// ─────────────────────────────────────────────────────────────────────────────
func Upsert(st storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "studentSid") // empty on the no-SID route
		slog.Info("upserting student", slog.String("sid", sid))

		var req types.UpsertRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		result, err := st.Upsert(req, sid)
		if errors.Is(err, storage.ErrStudentNotFound) {
			response.WriteJSON(w, http.StatusNotFound,
				response.Message(fmt.Sprintf("Student with SID '%s' not found.", sid)))
			return
		}
		if err != nil {
			slog.Error("error upserting student",
				slog.String("sid", sid),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.Detail("Upsert operation failed", err))
			return
		}

		slog.Info("upsert completed",
			slog.String("sid", result.Sid),
			slog.Int("status", result.StatusCode))
		response.WriteJSON(w, result.StatusCode, result)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// TestException handles GET /api/student/test-exception
//
// A diagnostic route that always panics so the exception-translation
// middleware can be exercised end to end. Expected response:
//
//	500 — {"StatusCode": 500, "Message": "Internal Server Error. Please contact support."}
//
// ─────────────────────────────────────────────────────────────────────────────
func TestException() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("test exception for the error-translation middleware"))
	}
}

// parseFilter reads the listing query parameters. Missing values fall
// back to page 1 with the storage layer's default page size; values
// that are present but not integers are a client error.
func parseFilter(r *http.Request) (types.StudentFilter, error) {
	filter := types.StudentFilter{
		Page:       1,
		SearchText: r.URL.Query().Get("searchText"),
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return types.StudentFilter{}, errors.New("invalid page: must be an integer")
		}
		filter.Page = page
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return types.StudentFilter{}, errors.New("invalid pageSize: must be an integer")
		}
		filter.PageSize = pageSize
	}

	return filter, nil
}
