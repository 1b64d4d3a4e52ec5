package model

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates an identity, ownership or capability violation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput indicates a malformed request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState indicates the operation violates a lifecycle invariant.
	ErrInvalidState = errors.New("invalid state")
	// ErrStorageUnavailable indicates the object store could not accept an upload.
	ErrStorageUnavailable = errors.New("object store unavailable")
	// ErrStorageDeleteFailed indicates the object store did not confirm a delete.
	ErrStorageDeleteFailed = errors.New("object store delete failed")
	// ErrPersistenceFailed indicates a local commit failure.
	ErrPersistenceFailed = errors.New("persistence failed")
	// ErrRoleUpdateFailed indicates a partial failure of a role edit.
	ErrRoleUpdateFailed = errors.New("role update failed")
)
