// Package memory provides in-memory repositories for tests and the memory
// run mode. Organizer and city references are checked against explicit id
// sets so the repository surfaces ErrInvalidReference the way the PostgreSQL
// foreign keys do.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/eventboard/events-api/pkg/events"
)

// Repository is an in-memory implementation of events.Repository and
// events.UserRepository.
type Repository struct {
	mu         sync.RWMutex
	events     map[int64]*events.Event
	users      map[int64]*events.User
	organizers map[int64]struct{}
	cities     map[int64]struct{}
	nextEvent  int64
	nextUser   int64
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{
		events:     make(map[int64]*events.Event),
		users:      make(map[int64]*events.User),
		organizers: make(map[int64]struct{}),
		cities:     make(map[int64]struct{}),
	}
}

// AddOrganizer registers an organizer id that event rows may reference.
func (r *Repository) AddOrganizer(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.organizers[id] = struct{}{}
}

// AddCity registers a city id that event rows may reference.
func (r *Repository) AddCity(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cities[id] = struct{}{}
}

func (r *Repository) CreateEvent(ctx context.Context, event *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.organizers[event.OrganizerID]; !ok {
		return events.ErrInvalidReference
	}
	if event.CityID != nil {
		if _, ok := r.cities[*event.CityID]; !ok {
			return events.ErrInvalidReference
		}
	}

	r.nextEvent++
	event.ID = r.nextEvent
	event.CreatedAt = time.Now().UTC()

	stored := *event
	r.events[event.ID] = &stored
	return nil
}

func (r *Repository) GetEvent(ctx context.Context, id int64) (*events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.events[id]
	if !ok {
		return nil, events.ErrEventNotFound
	}
	copied := *ev
	return &copied, nil
}

func (r *Repository) ListEvents(ctx context.Context) ([]*events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listed := make([]*events.Event, 0, len(r.events))
	for id := int64(1); id <= r.nextEvent; id++ {
		if ev, ok := r.events[id]; ok {
			copied := *ev
			listed = append(listed, &copied)
		}
	}
	return listed, nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return events.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *events.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return events.ErrUserExists
		}
	}

	r.nextUser++
	user.ID = r.nextUser
	user.CreatedAt = time.Now().UTC()

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*events.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, events.ErrUserNotFound
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*events.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, events.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *events.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return events.ErrUserNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return events.ErrUserExists
		}
	}

	stored := *user
	r.users[user.ID] = &stored
	return nil
}
