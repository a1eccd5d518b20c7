package contracts

import "errors"

// Failure categories returned by the contracts. Every failed operation
// returns one of these, wrapped with call-site context; no operation leaves
// partial state behind a failure.
var (
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDocumentExists    = errors.New("document already exists")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrDuplicateRequest  = errors.New("duplicate access request")
	ErrRequestNotFound   = errors.New("access request not found")
	ErrRequestNotPending = errors.New("access request already resolved")
	ErrAlreadyAuthorized = errors.New("access already granted")
	ErrAlreadyInactive   = errors.New("document already inactive")
	ErrNoActiveAccess    = errors.New("no active access")
)
