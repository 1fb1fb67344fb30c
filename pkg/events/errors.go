package events

import (
	"errors"
	"fmt"
)

// Error taxonomy. Validation errors fail fast before any external call;
// dependency errors during the upload->persist sequence are surfaced verbatim
// after compensation.
var (
	// ErrUnsupportedMediaType indicates an image MIME type outside the allow-list.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrInvalidReference indicates the organizer or city reference does not exist.
	ErrInvalidReference = errors.New("invalid organizer or city reference")

	// ErrUploadFailed indicates the object store rejected or failed the upload.
	ErrUploadFailed = errors.New("image upload failed")

	// ErrPersistenceFailed indicates a database write failed for a reason other
	// than a reference violation.
	ErrPersistenceFailed = errors.New("database write failed")

	// ErrEventNotFound indicates the requested event id does not exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrObjectNotFound indicates a requested stored object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidFilename indicates an image filename outside the accepted pattern.
	ErrInvalidFilename = errors.New("invalid filename")

	// ErrUserNotFound indicates no account matches the given identity.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists indicates the email is already registered.
	ErrUserExists = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// EventError wraps an error from an event operation with its context.
type EventError struct {
	EventID int64
	Op      string
	Err     error
}

func (e *EventError) Error() string {
	if e.EventID == 0 {
		return fmt.Sprintf("event operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("event operation %s failed for event %d: %v", e.Op, e.EventID, e.Err)
}

func (e *EventError) Unwrap() error {
	return e.Err
}

// StorageError wraps an error from the object-store gateway.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
