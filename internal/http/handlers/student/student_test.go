package student_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/schoolproject/school-api/internal/config"
	"github.com/schoolproject/school-api/internal/http/router"
	"github.com/schoolproject/school-api/internal/storage/sqlite"
	"github.com/schoolproject/school-api/internal/types"
)

// newTestRouter serves the real route table over a throwaway sqlite
// database, so these tests cover the full pipeline: routing,
// validation, storage, response shaping, and the middleware chain.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Env:         "dev",
		StoragePath: filepath.Join(t.TempDir(), "school.db"),
	}
	st, err := sqlite.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { st.Db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return router.New(log, st)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func validUpsert() types.UpsertRequest {
	return types.UpsertRequest{
		FullName:      "Rakesh Kumar",
		Age:           12,
		Standard:      7,
		Email:         "rakesh@school.test",
		ContactNumber: "9876543210",
	}
}

// create posts a valid upsert without a SID and returns the new SID.
func create(t *testing.T, h http.Handler, req types.UpsertRequest) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/student/upsert", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp types.UpsertResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Sid)
	return resp.Sid
}

func TestListEmptyReturns404(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/student/students", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "No students found!", body["message"])
}

func TestListReturnsStudents(t *testing.T) {
	h := newTestRouter(t)
	sid := create(t, h, validUpsert())

	rec := doJSON(t, h, http.MethodGet, "/api/student/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var students []types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&students))
	require.Len(t, students, 1)
	require.Equal(t, sid, students[0].Sid)
}

func TestListRejectsNonIntegerPage(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/student/students?page=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSearchText(t *testing.T) {
	h := newTestRouter(t)

	neha := validUpsert()
	neha.FullName = "Neha Gupta"
	neha.Email = "neha@school.test"
	nehaSid := create(t, h, neha)

	rohan := validUpsert()
	rohan.FullName = "Rohan Das"
	rohan.Email = "rohan@school.test"
	create(t, h, rohan)

	// A token matching nothing is a 404.
	rec := doJSON(t, h, http.MethodGet, "/api/student/students?searchText=zzz", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// A token matching one student returns exactly that student.
	rec = doJSON(t, h, http.MethodGet, "/api/student/students?searchText=neha", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var students []types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&students))
	require.Len(t, students, 1)
	require.Equal(t, nehaSid, students[0].Sid)
}

func TestGetBySid(t *testing.T) {
	h := newTestRouter(t)
	sid := create(t, h, validUpsert())

	rec := doJSON(t, h, http.MethodGet, "/api/student/"+sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, sid, got.Sid)
	require.Equal(t, "Rakesh Kumar", got.FullName)
}

func TestGetBySidNotFound(t *testing.T) {
	h := newTestRouter(t)

	missing := uuid.NewString()
	rec := doJSON(t, h, http.MethodGet, "/api/student/"+missing, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Contains(t, body["message"], missing)
}

func TestDeleteTwice(t *testing.T) {
	h := newTestRouter(t)
	sid := create(t, h, validUpsert())

	rec := doJSON(t, h, http.MethodDelete, "/api/student/"+sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "Student deleted successfully", body["message"])

	// The student is gone from the listing after the first delete.
	rec = doJSON(t, h, http.MethodGet, "/api/student/students", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// The second delete reports not found, never an error.
	rec = doJSON(t, h, http.MethodDelete, "/api/student/"+sid, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpsertUpdate(t *testing.T) {
	h := newTestRouter(t)
	sid := create(t, h, validUpsert())

	update := validUpsert()
	update.FullName = "Rakesh K"
	update.Age = 13

	rec := doJSON(t, h, http.MethodPost, "/api/student/upsert/"+sid, update)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.UpsertResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, sid, resp.Sid)

	rec = doJSON(t, h, http.MethodGet, "/api/student/"+sid, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, "Rakesh K", got.FullName)
	require.Equal(t, 13, got.Age)
}

func TestUpsertUnknownSidIsNotFound(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/student/upsert/"+uuid.NewString(), validUpsert())
	require.Equal(t, http.StatusNotFound, rec.Code)

	// No silent create.
	rec = doJSON(t, h, http.MethodGet, "/api/student/students", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpsertEmptyBody(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/student/upsert", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// The enforced age range is 5–100 inclusive. The generated messages
// quote the enforced bound (5), fixing the original text that claimed
// the lower bound was 6.
func TestUpsertValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*types.UpsertRequest)
		wantStatus int
		wantInBody string
	}{
		{
			name:       "age below range",
			mutate:     func(r *types.UpsertRequest) { r.Age = 3 },
			wantStatus: http.StatusBadRequest,
			wantInBody: "field Age must be at least 5",
		},
		{
			name:       "age lower bound inclusive",
			mutate:     func(r *types.UpsertRequest) { r.Age = 5 },
			wantStatus: http.StatusCreated,
		},
		{
			name:       "age upper bound inclusive",
			mutate:     func(r *types.UpsertRequest) { r.Age = 100 },
			wantStatus: http.StatusCreated,
		},
		{
			name:       "age above range",
			mutate:     func(r *types.UpsertRequest) { r.Age = 101 },
			wantStatus: http.StatusBadRequest,
			wantInBody: "field Age must be at most 100",
		},
		{
			name:       "missing full name",
			mutate:     func(r *types.UpsertRequest) { r.FullName = "" },
			wantStatus: http.StatusBadRequest,
			wantInBody: "field FullName is required",
		},
		{
			name: "full name too long",
			mutate: func(r *types.UpsertRequest) {
				r.FullName = "A name that is far longer than thirty characters"
			},
			wantStatus: http.StatusBadRequest,
			wantInBody: "field FullName must not exceed 30 characters",
		},
		{
			name:       "standard above range",
			mutate:     func(r *types.UpsertRequest) { r.Standard = 13 },
			wantStatus: http.StatusBadRequest,
			wantInBody: "field Standard must be at most 12",
		},
		{
			name:       "invalid email",
			mutate:     func(r *types.UpsertRequest) { r.Email = "not-an-email" },
			wantStatus: http.StatusBadRequest,
			wantInBody: "field Email must be a valid email address",
		},
		{
			name:       "contact number too short",
			mutate:     func(r *types.UpsertRequest) { r.ContactNumber = "12345" },
			wantStatus: http.StatusBadRequest,
			wantInBody: "field ContactNumber must be exactly 10 digits",
		},
		{
			name:       "contact number exactly ten digits",
			mutate:     func(r *types.UpsertRequest) { r.ContactNumber = "1234567890" },
			wantStatus: http.StatusCreated,
		},
		{
			name:       "contact number absent",
			mutate:     func(r *types.UpsertRequest) { r.ContactNumber = "" },
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t)

			req := validUpsert()
			tt.mutate(&req)

			rec := doJSON(t, h, http.MethodPost, "/api/student/upsert", req)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantInBody != "" {
				require.Contains(t, rec.Body.String(), tt.wantInBody)
			}
		})
	}
}

func TestStandardRoute(t *testing.T) {
	h := newTestRouter(t)

	sevenA := validUpsert()
	sevenA.FullName = "Seven A"
	sevenA.Email = "seven.a@school.test"
	create(t, h, sevenA)

	eight := validUpsert()
	eight.FullName = "Eight A"
	eight.Email = "eight.a@school.test"
	eight.Standard = 8
	create(t, h, eight)

	// The read path does not bound the standard; 13 simply has no rows.
	rec := doJSON(t, h, http.MethodGet, "/api/student/standard/13", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Exactly the standard-7 subset.
	rec = doJSON(t, h, http.MethodGet, "/api/student/standard/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var students []types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&students))
	require.Len(t, students, 1)
	require.Equal(t, 7, students[0].Standard)

	// Non-integer standard is a client error.
	rec = doJSON(t, h, http.MethodGet, "/api/student/standard/seventh", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// The diagnostic route panics on purpose; the exception-translation
// middleware must turn that into the uniform 500 envelope.
func TestTestExceptionRoute(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/student/test-exception", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var envelope struct {
		StatusCode int    `json:"StatusCode"`
		Message    string `json:"Message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.Equal(t, http.StatusInternalServerError, envelope.StatusCode)
	require.Equal(t, "Internal Server Error. Please contact support.", envelope.Message)
}
