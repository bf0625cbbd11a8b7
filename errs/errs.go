// Package errs contains sentinel errors shared across layers so handlers can
// map failures to responses without inspecting driver errors.
package errs

import "errors"

var (
	// ErrDuplicateIdentity indicates the email is already registered.
	ErrDuplicateIdentity = errors.New("identity already exists")

	// ErrUnauthenticated indicates no identity is bound to the session.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden indicates the acting identity does not own the record.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownOwner indicates a song references a user that does not exist.
	ErrUnknownOwner = errors.New("unknown owner")

	// ErrInvalidMetadata indicates a required song field is missing or empty.
	ErrInvalidMetadata = errors.New("invalid metadata")

	// ErrInvalidUpload indicates the uploaded payload or its filename is unusable.
	ErrInvalidUpload = errors.New("invalid upload")
)
