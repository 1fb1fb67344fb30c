package events

import (
	"context"
	"io"
	"time"
)

// UploadParams contains parameters for uploading an object.
type UploadParams struct {
	ObjectKey   string
	ContentType string
	Size        int64
	PublicRead  bool
}

// BlobStore defines the interface for S3-compatible storage backends.
type BlobStore interface {
	// Upload uploads content under the given key.
	Upload(ctx context.Context, reader io.Reader, params UploadParams) error

	// Download returns a reader over the stored object.
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, objectKey string) error

	// PresignGet returns a time-limited URL granting read access to the object.
	PresignGet(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// Repository defines the interface for event persistence.
//
// CreateEvent must surface a foreign-key violation as ErrInvalidReference so
// the orchestrator can distinguish it from generic persistence failures.
type Repository interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}

// EventSink receives lifecycle notifications. Implementations must not block;
// sink failures never affect the operation that fired them.
type EventSink interface {
	// EventCreated is fired after an event row is persisted.
	EventCreated(ctx context.Context, event *Event)

	// EventDeleted is fired after an event row is deleted.
	EventDeleted(ctx context.Context, id int64)

	// ImageUploaded is fired after a blob lands in the object store.
	ImageUploaded(ctx context.Context, objectKey string)

	// UploadFailed is fired when the object store rejects an upload.
	UploadFailed(ctx context.Context, objectKey string)

	// UploadCompensated is fired after a compensating delete of an uploaded
	// object, whether or not the delete itself succeeded.
	UploadCompensated(ctx context.Context, objectKey string)
}

// Service is the public contract of the event-creation orchestrator and the
// surrounding reads and deletes.
type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}
