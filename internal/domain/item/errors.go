package item

import "errors"

var (
	// ErrInvalidInput indicates a missing required field on a new item.
	ErrInvalidInput = errors.New("invalid item input")
)
