package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/eventboard/events-api/pkg/events"
)

// maxUploadBytes bounds the in-memory part of multipart parsing (20 MB, the
// original service's documented image limit).
const maxUploadBytes = 20 << 20

// eventForm carries the validated multipart fields of a create request.
type eventForm struct {
	Title       string `validate:"required,max=100"`
	OrganizerID int64  `validate:"required,gt=0"`
	WebsiteURL  string `validate:"omitempty,url,max=500"`
	Description string
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	form := eventForm{
		Title:       r.FormValue("title"),
		WebsiteURL:  r.FormValue("website_url"),
		Description: r.FormValue("description"),
	}
	if v := r.FormValue("organizer_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "organizer_id must be an integer")
			return
		}
		form.OrganizerID = id
	}
	if err := s.validate.Struct(form); err != nil {
		s.renderError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	dateStart, err := parseFormTime(r.FormValue("date_start"))
	if err != nil || dateStart.IsZero() {
		s.renderError(w, r, http.StatusBadRequest, "date_start is required and must be a timestamp")
		return
	}

	req := events.CreateEventRequest{
		Title:           form.Title,
		Description:     form.Description,
		OrganizerID:     form.OrganizerID,
		WebsiteURL:      form.WebsiteURL,
		DateStart:       dateStart,
		LocationAddress: r.FormValue("location_address"),
	}

	if v := r.FormValue("city_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "city_id must be an integer")
			return
		}
		req.CityID = &id
	}
	if v := r.FormValue("price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "price must be a decimal")
			return
		}
		req.Price = price
	}
	if v := r.FormValue("date_end"); v != "" {
		t, err := parseFormTime(v)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "date_end must be a timestamp")
			return
		}
		req.DateEnd = &t
	}
	if v := r.FormValue("registration_deadline"); v != "" {
		t, err := parseFormTime(v)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "registration_deadline must be a timestamp")
			return
		}
		req.RegistrationDeadline = &t
	}
	if v := r.FormValue("is_online"); v != "" {
		online, err := strconv.ParseBool(v)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "is_online must be a boolean")
			return
		}
		req.IsOnline = online
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		req.Image = &events.ImageUpload{
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	case errors.Is(err, http.ErrMissingFile):
		// No image attached.
	default:
		s.renderError(w, r, http.StatusBadRequest, "invalid image part")
		return
	}

	event, err := s.service.CreateEvent(r.Context(), req)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, events.NewEventView(event, s.resolver.Resolve(r.Context(), event.ImageKey)))
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	listed, err := s.service.ListEvents(r.Context())
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}

	views := make([]events.EventView, 0, len(listed))
	for _, ev := range listed {
		views = append(views, events.NewEventView(ev, s.resolver.Resolve(r.Context(), ev.ImageKey)))
	}
	render.JSON(w, r, views)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := s.service.GetEvent(r.Context(), id)
	if err != nil {
		s.renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, events.NewEventView(event, s.resolver.Resolve(r.Context(), event.ImageKey)))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := s.service.DeleteEvent(r.Context(), id); err != nil {
		s.renderServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func eventID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseFormTime accepts RFC 3339 timestamps, with or without an explicit
// offset, matching what browser clients and the previous API accepted.
func parseFormTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", v)
}
