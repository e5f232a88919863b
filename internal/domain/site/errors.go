package site

import "errors"

var (
	// ErrSiteNotFound indicates the site doesn't exist.
	ErrSiteNotFound = errors.New("site not found")
	// ErrInvalidInput indicates invalid site input.
	ErrInvalidInput = errors.New("invalid site input")
)
