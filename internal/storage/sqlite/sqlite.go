// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/schoolproject/school-api/internal/config"
	"github.com/schoolproject/school-api/internal/storage"
	"github.com/schoolproject/school-api/internal/types"

	// Registers the "sqlite3" driver; side-effect only.
	_ "github.com/mattn/go-sqlite3"
)

// defaultPageSize is used when the caller passes a pageSize below 1.
const defaultPageSize = 10

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the database at cfg.StoragePath and ensures the students
// table exists.
//
// Schema notes: sid is the external identifier (UUID string, unique);
// id stays internal and is only used for stable ordering. Rows are
// never physically removed — is_deleted marks them invisible to every
// read path.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			sid            TEXT    NOT NULL UNIQUE,
			full_name      TEXT    NOT NULL,
			age            INTEGER NOT NULL,
			standard       INTEGER NOT NULL,
			email          TEXT    NOT NULL,
			contact_number TEXT,
			is_deleted     INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// GetFilteredStudents returns one page of non-deleted students ordered
// by internal id (insertion order), optionally filtered by a
// case-insensitive substring match on full name or email.
//
// Bounds policy: page < 1 clamps to 1, pageSize < 1 clamps to
// defaultPageSize. Out-of-range pages simply return an empty slice.
func (s *SQLite) GetFilteredStudents(page, pageSize int, searchText string) ([]types.Student, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	query := `SELECT sid, full_name, age, standard, email, contact_number
		FROM students WHERE is_deleted = 0`
	args := make([]any, 0, 4)

	if searchText != "" {
		query += ` AND (LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)`
		needle := "%" + strings.ToLower(searchText) + "%"
		args = append(args, needle, needle)
	}

	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.Db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("GetFilteredStudents: query: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// GetStudentsByStandard returns every non-deleted student whose
// standard equals the argument, in insertion order.
func (s *SQLite) GetStudentsByStandard(standard int) ([]types.Student, error) {
	stmt, err := s.Db.Prepare(`SELECT sid, full_name, age, standard, email, contact_number
		FROM students WHERE is_deleted = 0 AND standard = ? ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("GetStudentsByStandard: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(standard)
	if err != nil {
		return nil, fmt.Errorf("GetStudentsByStandard: query: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// GetStudentBySid fetches the single non-deleted student with the given
// external identifier, or storage.ErrStudentNotFound.
func (s *SQLite) GetStudentBySid(sid string) (types.Student, error) {
	stmt, err := s.Db.Prepare(`SELECT sid, full_name, age, standard, email, contact_number
		FROM students WHERE is_deleted = 0 AND sid = ? LIMIT 1`)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentBySid: prepare: %w", err)
	}
	defer stmt.Close()

	var (
		student types.Student
		contact sql.NullString
	)
	err = stmt.QueryRow(sid).Scan(
		&student.Sid,
		&student.FullName,
		&student.Age,
		&student.Standard,
		&student.Email,
		&contact,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Student{}, storage.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentBySid: scan: %w", err)
	}

	if contact.Valid {
		student.ContactNumber = contact.String
	}
	return student, nil
}

// DeleteStudent marks the student with the given SID as deleted.
// The WHERE clause only matches live rows, so a repeat delete (or an
// unknown SID) affects zero rows and reports false without error.
func (s *SQLite) DeleteStudent(sid string) (bool, error) {
	stmt, err := s.Db.Prepare(`UPDATE students SET is_deleted = 1
		WHERE sid = ? AND is_deleted = 0`)
	if err != nil {
		return false, fmt.Errorf("DeleteStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(sid)
	if err != nil {
		return false, fmt.Errorf("DeleteStudent: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteStudent: rows affected: %w", err)
	}
	return affected > 0, nil
}

// Upsert inserts a new student when sid is empty, generating a fresh
// UUID as the external identifier, or overwrites the fields of the
// non-deleted student with that SID. An update that matches no live
// row returns storage.ErrStudentNotFound — it never falls back to an
// insert.
func (s *SQLite) Upsert(req types.UpsertRequest, sid string) (types.UpsertResponse, error) {
	contact := sql.NullString{String: req.ContactNumber, Valid: req.ContactNumber != ""}

	if sid == "" {
		newSid := uuid.NewString()

		stmt, err := s.Db.Prepare(`INSERT INTO students
			(sid, full_name, age, standard, email, contact_number, is_deleted)
			VALUES (?, ?, ?, ?, ?, ?, 0)`)
		if err != nil {
			return types.UpsertResponse{}, fmt.Errorf("Upsert: prepare insert: %w", err)
		}
		defer stmt.Close()

		if _, err := stmt.Exec(newSid, req.FullName, req.Age, req.Standard, req.Email, contact); err != nil {
			return types.UpsertResponse{}, fmt.Errorf("Upsert: insert: %w", err)
		}

		return types.UpsertResponse{
			StatusCode: http.StatusCreated,
			Message:    "Student created successfully",
			Sid:        newSid,
		}, nil
	}

	stmt, err := s.Db.Prepare(`UPDATE students
		SET full_name = ?, age = ?, standard = ?, email = ?, contact_number = ?
		WHERE sid = ? AND is_deleted = 0`)
	if err != nil {
		return types.UpsertResponse{}, fmt.Errorf("Upsert: prepare update: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(req.FullName, req.Age, req.Standard, req.Email, contact, sid)
	if err != nil {
		return types.UpsertResponse{}, fmt.Errorf("Upsert: update: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.UpsertResponse{}, fmt.Errorf("Upsert: rows affected: %w", err)
	}
	if affected == 0 {
		return types.UpsertResponse{}, storage.ErrStudentNotFound
	}

	return types.UpsertResponse{
		StatusCode: http.StatusOK,
		Message:    "Student updated successfully",
		Sid:        sid,
	}, nil
}

// scanStudents drains a cursor over the standard student column list.
// It always returns a non-nil slice so empty results encode as [] in
// JSON rather than null.
func scanStudents(rows *sql.Rows) ([]types.Student, error) {
	students := make([]types.Student, 0)

	for rows.Next() {
		var (
			student types.Student
			contact sql.NullString
		)
		if err := rows.Scan(
			&student.Sid,
			&student.FullName,
			&student.Age,
			&student.Standard,
			&student.Email,
			&contact,
		); err != nil {
			return nil, fmt.Errorf("scan student row: %w", err)
		}
		if contact.Valid {
			student.ContactNumber = contact.String
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return students, nil
}
