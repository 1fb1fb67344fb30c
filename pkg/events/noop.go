package events

import "context"

// NoopEventSink is a no-operation implementation of EventSink, used when no
// metrics or notification layer is wired in and by tests.
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink.
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) EventCreated(ctx context.Context, event *Event)        {}
func (n *NoopEventSink) EventDeleted(ctx context.Context, id int64)            {}
func (n *NoopEventSink) ImageUploaded(ctx context.Context, objectKey string)   {}
func (n *NoopEventSink) UploadFailed(ctx context.Context, objectKey string)    {}
func (n *NoopEventSink) UploadCompensated(ctx context.Context, objectKey string) {}
