package models

import "errors"

// Error taxonomy for the issue lifecycle and comment log. Controllers
// map these onto HTTP status codes; upstream store failures pass
// through untyped.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCommentLength     = errors.New("comment must be between 1 and 500 characters")
	ErrNotFound          = errors.New("not found")
)
