package multipart

import "github.com/indigo-web/multipart/status"

// Every error returned by the parser is one of these, possibly wrapped with details.
// Use errors.Is to tell them apart and status.CodeOf to pick a response code.
var (
	// ErrMalformedPart is also returned for a part with an empty name (name=""), which is
	// treated the same as a missing one.
	ErrMalformedPart = status.NewError(status.BadRequest, "malformed multipart part")
	ErrTruncatedBody = status.NewError(status.BadRequest, "multipart body ended before the closing boundary")
	ErrSinkRejected  = status.NewError(status.RequestEntityTooLarge, "upload rejected")
	ErrBadBoundary   = status.NewError(status.BadRequest, "invalid multipart boundary")
)
