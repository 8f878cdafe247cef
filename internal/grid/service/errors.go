package service

import "errors"

// Sentinel errors the handler layer maps onto HTTP statuses. Services wrap
// them with context via fmt.Errorf("%w: ...").
var (
	ErrValidation = errors.New("validation failed")
	// ErrInvalidState means the requested transition is not allowed from
	// the record's current status, including the case where a concurrent
	// request already moved it.
	ErrInvalidState = errors.New("invalid state transition")
	// ErrImmutable means the record is frozen and no longer accepts edits.
	ErrImmutable = errors.New("record is immutable")
	// ErrPermission means the caller's role ranks below what the operation
	// requires.
	ErrPermission = errors.New("insufficient role")
	// ErrIncompleteItems means a documentation package still carries draft
	// items and cannot complete.
	ErrIncompleteItems = errors.New("package has incomplete items")
	// ErrNoEscalationTarget means the role ladder has no rung above the
	// fault's current handler.
	ErrNoEscalationTarget = errors.New("no escalation target role")
	// ErrNoTargetAvailable means the target role exists but has no active
	// user to receive the escalation.
	ErrNoTargetAvailable = errors.New("no active user for target role")
)
