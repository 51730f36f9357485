// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// Handlers depend only on this interface, never on a concrete driver.
// Swapping the backend means implementing these methods for the new
// store and changing one line in main.go; handler code and tests are
// untouched.
package storage

import (
	"errors"

	"github.com/schoolproject/school-api/internal/types"
)

// ErrStudentNotFound is the single "absent row" signal for the whole
// storage contract. Every lookup or update that misses returns it
// (possibly wrapped); handlers test for it with errors.Is and translate
// it into a 404.
var ErrStudentNotFound = errors.New("student not found")

// Storage is the database contract for the student resource.
type Storage interface {
	// GetFilteredStudents returns one page of non-deleted students,
	// ordered by insertion (internal primary key) so paging is stable.
	// When searchText is non-empty, only students whose full name or
	// email contains it (case-insensitive) are returned. page < 1 is
	// clamped to 1, pageSize < 1 to a default of 10. An empty page is
	// an empty slice, not an error.
	GetFilteredStudents(page, pageSize int, searchText string) ([]types.Student, error)

	// GetStudentsByStandard returns all non-deleted students in the
	// given standard. An empty result is an empty slice, not an error.
	GetStudentsByStandard(standard int) ([]types.Student, error)

	// GetStudentBySid fetches the single non-deleted student with the
	// given external identifier, or ErrStudentNotFound.
	GetStudentBySid(sid string) (types.Student, error)

	// DeleteStudent flips the soft-delete flag for the given SID and
	// reports whether a live record was flagged. Deleting an unknown or
	// already-deleted SID returns (false, nil) — never an error.
	DeleteStudent(sid string) (bool, error)

	// Upsert creates a new student when sid is empty (201 response with
	// a freshly generated SID) or overwrites the non-deleted student
	// with that SID (200 response). Updating an unknown or deleted SID
	// returns ErrStudentNotFound; it never silently creates.
	Upsert(req types.UpsertRequest, sid string) (types.UpsertResponse, error)
}
