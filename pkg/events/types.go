package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is the persisted representation of an event row. ImageKey holds the
// raw storage key (e.g. "uploads/<uuid>.png"); it is never rewritten to a URL
// in place. Presentation URLs live on EventView.
type Event struct {
	ID                   int64
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
	ImageKey             string
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// EventView is the read model returned to clients. It differs from Event only
// in carrying a resolved image URL instead of the storage key.
type EventView struct {
	ID                   int64           `json:"id"`
	Title                string          `json:"title"`
	Description          string          `json:"description,omitempty"`
	OrganizerID          int64           `json:"organizer_id"`
	CityID               *int64          `json:"city_id,omitempty"`
	WebsiteURL           string          `json:"website_url,omitempty"`
	Price                decimal.Decimal `json:"price"`
	DateStart            time.Time       `json:"date_start"`
	DateEnd              *time.Time      `json:"date_end,omitempty"`
	RegistrationDeadline *time.Time      `json:"registration_deadline,omitempty"`
	LocationAddress      string          `json:"location_address,omitempty"`
	IsOnline             bool            `json:"is_online"`
	ImageURL             string          `json:"image_url,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            *time.Time      `json:"updated_at,omitempty"`
}

// NewEventView projects an event onto its read model with the image URL
// already resolved by the caller.
func NewEventView(ev *Event, imageURL string) EventView {
	return EventView{
		ID:                   ev.ID,
		Title:                ev.Title,
		Description:          ev.Description,
		OrganizerID:          ev.OrganizerID,
		CityID:               ev.CityID,
		WebsiteURL:           ev.WebsiteURL,
		Price:                ev.Price,
		DateStart:            ev.DateStart,
		DateEnd:              ev.DateEnd,
		RegistrationDeadline: ev.RegistrationDeadline,
		LocationAddress:      ev.LocationAddress,
		IsOnline:             ev.IsOnline,
		ImageURL:             imageURL,
		CreatedAt:            ev.CreatedAt,
		UpdatedAt:            ev.UpdatedAt,
	}
}

// User is a registered account. PasswordHash is a bcrypt hash.
type User struct {
	ID           int64
	Email        string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
