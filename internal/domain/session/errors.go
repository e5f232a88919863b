package session

import "errors"

var (
	// ErrSessionNotFound indicates the session doesn't exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSiteNotFound indicates the owning site doesn't exist.
	ErrSiteNotFound = errors.New("site not found")
	// ErrItemNotFound indicates the item isn't part of the session's list.
	ErrItemNotFound = errors.New("item not found in session")
	// ErrInvalidInput indicates invalid session input.
	ErrInvalidInput = errors.New("invalid session input")
	// ErrInvalidTransition indicates a status change the state machine
	// doesn't allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrSessionLocked indicates an entry write on a session that is no
	// longer active.
	ErrSessionLocked = errors.New("session is not open for entry")
)
