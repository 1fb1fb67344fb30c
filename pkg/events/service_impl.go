package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventboard/events-api/pkg/events/imagekey"
)

// service implements the Service interface.
type service struct {
	repository Repository
	blobStore  BlobStore
	eventSink  EventSink
	log        *slog.Logger
}

// Option represents a functional option for configuring the service.
type Option func(*service)

// WithRepository sets the event repository.
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the object-store gateway.
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithEventSink sets the lifecycle sink.
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *service) {
		s.log = log
	}
}

// New creates a new service instance with the given options.
func New(options ...Option) (Service, error) {
	s := &service{
		eventSink: NewNoopEventSink(),
		log:       slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// CreateEvent runs the creation workflow: validate the image type, upload the
// blob, persist the row, and compensate with a best-effort blob delete when
// persistence fails. The upload strictly precedes the insert so compensation
// always has a valid key to act on.
func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &Event{
		Title:                req.Title,
		Description:          req.Description,
		OrganizerID:          req.OrganizerID,
		CityID:               req.CityID,
		WebsiteURL:           req.WebsiteURL,
		Price:                req.Price,
		DateStart:            req.DateStart,
		DateEnd:              req.DateEnd,
		RegistrationDeadline: req.RegistrationDeadline,
		LocationAddress:      req.LocationAddress,
		IsOnline:             req.IsOnline,
	}

	var uploadedKey string
	if req.Image != nil {
		ext, ok := imagekey.ExtensionForMIME(req.Image.ContentType)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, req.Image.ContentType)
		}

		key := imagekey.NewKey(ext)
		err := s.blobStore.Upload(ctx, req.Image.Body, UploadParams{
			ObjectKey:   key,
			ContentType: req.Image.ContentType,
			Size:        req.Image.Size,
			PublicRead:  true,
		})
		if err != nil {
			s.log.Error("image upload failed", "key", key, "error", err)
			s.eventSink.UploadFailed(ctx, key)
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}

		s.eventSink.ImageUploaded(ctx, key)
		uploadedKey = key
		event.ImageKey = key
	}

	if err := s.repository.CreateEvent(ctx, event); err != nil {
		if uploadedKey != "" {
			s.deleteBlobBestEffort(ctx, uploadedKey)
			s.eventSink.UploadCompensated(ctx, uploadedKey)
		}
		if errors.Is(err, ErrInvalidReference) {
			return nil, err
		}
		s.log.Error("event insert failed", "error", err)
		return nil, &EventError{Op: "create", Err: fmt.Errorf("%w: %v", ErrPersistenceFailed, err)}
	}

	s.eventSink.EventCreated(ctx, event)
	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id int64) (*Event, error) {
	event, err := s.repository.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, err
		}
		return nil, &EventError{EventID: id, Op: "get", Err: err}
	}
	return event, nil
}

func (s *service) ListEvents(ctx context.Context) ([]*Event, error) {
	listed, err := s.repository.ListEvents(ctx)
	if err != nil {
		return nil, &EventError{Op: "list", Err: err}
	}
	return listed, nil
}

// DeleteEvent removes the event row after a best-effort delete of its stored
// image. A gateway failure is logged and never blocks the row delete.
func (s *service) DeleteEvent(ctx context.Context, id int64) error {
	event, err := s.repository.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return err
		}
		return &EventError{EventID: id, Op: "delete", Err: err}
	}

	if event.ImageKey != "" {
		s.deleteBlobBestEffort(ctx, event.ImageKey)
	}

	if err := s.repository.DeleteEvent(ctx, id); err != nil {
		return &EventError{EventID: id, Op: "delete", Err: fmt.Errorf("%w: %v", ErrPersistenceFailed, err)}
	}

	s.eventSink.EventDeleted(ctx, id)
	return nil
}

// deleteBlobBestEffort removes a stored object, swallowing any error from the
// delete itself: a failed cleanup is logged for operators but must never mask
// or replace the error that triggered it. The call runs on a context that
// survives request cancellation so a dropped client cannot abort the cleanup.
func (s *service) deleteBlobBestEffort(ctx context.Context, key string) {
	ctx = context.WithoutCancel(ctx)
	if err := s.blobStore.Delete(ctx, key); err != nil {
		s.log.Error("best-effort blob delete failed", "key", key, "error", err)
	}
}
