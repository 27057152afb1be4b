package guests

import "errors"

var (
	// ErrNotFound is returned when no guest exists under the requested name.
	ErrNotFound = errors.New("guest not found")

	// ErrDuplicateName is returned when creating a guest whose name is taken.
	ErrDuplicateName = errors.New("guest with this name already exists")

	// ErrAlreadyRunning is returned when starting a running guest.
	ErrAlreadyRunning = errors.New("guest is already running")

	// ErrNotRunning is returned when stopping a stopped guest.
	ErrNotRunning = errors.New("guest is not running")

	// ErrGuestRunning is returned when deleting a guest that is still running.
	ErrGuestRunning = errors.New("guest must be stopped first")
)
