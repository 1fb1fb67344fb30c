// Package metrics exposes event lifecycle counters through a Prometheus
// registry, implemented as an events.EventSink so the service stays unaware
// of the metrics backend.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eventboard/events-api/pkg/events"
)

// Sink counts event lifecycle notifications.
type Sink struct {
	reg *prometheus.Registry

	eventsCreated       prometheus.Counter
	eventsDeleted       prometheus.Counter
	imagesUploaded      prometheus.Counter
	uploadFailures      prometheus.Counter
	compensatingDeletes prometheus.Counter
}

// NewSink creates a sink with its own registry.
func NewSink() *Sink {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	return &Sink{
		reg: reg,
		eventsCreated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "events_created_total",
			Help: "Total number of events created.",
		}),
		eventsDeleted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "events_deleted_total",
			Help: "Total number of events deleted.",
		}),
		imagesUploaded: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "event_images_uploaded_total",
			Help: "Total number of event images uploaded to the object store.",
		}),
		uploadFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "event_image_upload_failures_total",
			Help: "Total number of failed event image uploads.",
		}),
		compensatingDeletes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "event_image_compensating_deletes_total",
			Help: "Total number of compensating deletes issued after a failed event insert.",
		}),
	}
}

var _ events.EventSink = (*Sink)(nil)

func (s *Sink) EventCreated(ctx context.Context, event *events.Event) { s.eventsCreated.Inc() }
func (s *Sink) EventDeleted(ctx context.Context, id int64)            { s.eventsDeleted.Inc() }
func (s *Sink) ImageUploaded(ctx context.Context, objectKey string)   { s.imagesUploaded.Inc() }
func (s *Sink) UploadFailed(ctx context.Context, objectKey string)    { s.uploadFailures.Inc() }
func (s *Sink) UploadCompensated(ctx context.Context, objectKey string) {
	s.compensatingDeletes.Inc()
}

// Handler returns the /metrics HTTP handler for this sink's registry.
func (s *Sink) Handler() http.Handler {
	return promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})
}
