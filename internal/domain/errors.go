package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
)

// Draft bill errors (state machine of the billing session).
var (
	ErrNoDraft             = errors.New("no draft bill in progress")
	ErrDraftExists         = errors.New("a draft bill with items already exists")
	ErrEmptyDraft          = errors.New("draft bill has no items")
	ErrFinalizeInFlight    = errors.New("a finalize is already in progress for this draft")
	ErrItemIndexOutOfRange = errors.New("bill item index out of range")
)

// Rendering errors.
var (
	// ErrRenderInput marks a wholly missing required rendering input
	// (no bill, no issuer profile, or an empty item list).
	ErrRenderInput = errors.New("missing required rendering input")
)
