package events

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ImageUpload is an optional image blob attached to a create request. The
// declared ContentType is checked against the upload allow-list before any
// storage interaction happens.
type ImageUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// CreateEventRequest carries the fields for a new event. Pointer fields are
// optional; Image may be nil.
type CreateEventRequest struct {
	Title                string
	Description          string
	OrganizerID          int64
	CityID               *int64
	WebsiteURL           string
	Price                decimal.Decimal
	DateStart            time.Time
	DateEnd              *time.Time
	RegistrationDeadline *time.Time
	LocationAddress      string
	IsOnline             bool
	Image                *ImageUpload
}
