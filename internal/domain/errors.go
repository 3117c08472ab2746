package domain

import "errors"

// Error taxonomy shared by services and handlers. All of these are
// recoverable, caller-visible failures; none are fatal to the process.
var (
	// ErrUserNotFound means a login identifier matched no user in the directory.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotAMember means an organization switch or org-scoped operation was
	// requested for an organization the user does not belong to.
	ErrNotAMember = errors.New("not a member of organization")

	// ErrTaskNotActionable means a decision was attempted on a task that is
	// no longer pending. Terminal tasks may never be decided again.
	ErrTaskNotActionable = errors.New("task is not actionable")

	// ErrNotFound means a lookup by ID yielded no record.
	ErrNotFound = errors.New("not found")
)
