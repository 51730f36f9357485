// Package types holds the shared data structures used across the
// application. Keeping them in one place prevents import cycles —
// handlers, storage, and utils can all import types without depending
// on each other.
package types

// Student is a student record as exposed by the API. The external SID
// (a UUID string) is the only identifier clients ever see; the internal
// auto-increment primary key never leaves the storage layer.
//
// Soft-deleted students are filtered out by every read path, so the
// delete flag has no JSON representation here.
type Student struct {
	Sid           string `json:"sid"`
	FullName      string `json:"fullName"`
	Age           int    `json:"age"`
	Standard      int    `json:"standard"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// StudentFilter carries the query parameters of the listing endpoint.
// Page and PageSize below 1 are clamped by the storage layer (page → 1,
// pageSize → a default of 10); SearchText is an optional case-insensitive
// substring match against name and email.
type StudentFilter struct {
	Page       int
	PageSize   int
	SearchText string
}

// UpsertRequest is the transient payload for create-or-update. It is
// never persisted directly — the storage layer translates it into a
// Student row.
//
// The validate:"..." tags are checked by go-playground/validator before
// the request reaches storage. All failing rules are collected, not just
// the first one.
type UpsertRequest struct {
	FullName      string `json:"fullName"      validate:"required,max=30"`
	Age           int    `json:"age"           validate:"required,gte=5,lte=100"`
	Standard      int    `json:"standard"      validate:"required,gte=1,lte=12"`
	Email         string `json:"email"         validate:"required,email"`
	ContactNumber string `json:"contactNumber" validate:"omitempty,len=10,number"`
}

// UpsertResponse reports the outcome of a successful upsert: 201 with a
// freshly generated SID on create, 200 with the existing SID on update.
// Failures are reported as errors, never encoded in this struct.
type UpsertResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Sid        string `json:"sid"`
}
