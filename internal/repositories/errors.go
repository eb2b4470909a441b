package repositories

import "errors"

// Sentinel errors shared by all repositories. Handlers translate these
// to HTTP statuses with errors.Is.
var (
	// ErrNotFound indicates the referenced post, comment, vote or save does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the acting user does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidReference indicates a reference constraint violation,
	// e.g. a reply whose parent belongs to a different post.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrConflict indicates a duplicate save or duplicate vote.
	ErrConflict = errors.New("conflict")
	// ErrDataIntegrity indicates upstream data is inconsistent, e.g. a
	// post whose author no longer exists. Programmer/data error, not user-facing.
	ErrDataIntegrity = errors.New("data integrity violation")
)
