package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventboard/events-api/pkg/events"
)

func newEvent(organizerID int64) *events.Event {
	return &events.Event{
		Title:       "Go Meetup",
		OrganizerID: organizerID,
		Price:       decimal.NewFromInt(0),
		DateStart:   time.Now().Add(24 * time.Hour).UTC(),
	}
}

func TestCreateEvent(t *testing.T) {
	r := New()
	r.AddOrganizer(1)
	ctx := context.Background()

	ev := newEvent(1)
	require.NoError(t, r.CreateEvent(ctx, ev))
	assert.EqualValues(t, 1, ev.ID)
	assert.False(t, ev.CreatedAt.IsZero())

	got, err := r.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.Title, got.Title)

	// The stored copy is independent of the caller's struct.
	ev.Title = "mutated"
	got, err = r.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Meetup", got.Title)
}

func TestCreateEventReferenceChecks(t *testing.T) {
	r := New()
	r.AddOrganizer(1)
	r.AddCity(10)
	ctx := context.Background()

	t.Run("unknown organizer", func(t *testing.T) {
		err := r.CreateEvent(ctx, newEvent(42))
		assert.ErrorIs(t, err, events.ErrInvalidReference)
	})

	t.Run("unknown city", func(t *testing.T) {
		ev := newEvent(1)
		city := int64(99)
		ev.CityID = &city
		err := r.CreateEvent(ctx, ev)
		assert.ErrorIs(t, err, events.ErrInvalidReference)
	})

	t.Run("known city", func(t *testing.T) {
		ev := newEvent(1)
		city := int64(10)
		ev.CityID = &city
		assert.NoError(t, r.CreateEvent(ctx, ev))
	})
}

func TestGetEventNotFound(t *testing.T) {
	r := New()

	_, err := r.GetEvent(context.Background(), 1)
	assert.ErrorIs(t, err, events.ErrEventNotFound)
}

func TestListEventsOrdered(t *testing.T) {
	r := New()
	r.AddOrganizer(1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, r.CreateEvent(ctx, newEvent(1)))
	}

	listed, err := r.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, ev := range listed {
		assert.EqualValues(t, i+1, ev.ID)
	}
}

func TestDeleteEvent(t *testing.T) {
	r := New()
	r.AddOrganizer(1)
	ctx := context.Background()

	ev := newEvent(1)
	require.NoError(t, r.CreateEvent(ctx, ev))

	require.NoError(t, r.DeleteEvent(ctx, ev.ID))
	_, err := r.GetEvent(ctx, ev.ID)
	assert.ErrorIs(t, err, events.ErrEventNotFound)

	assert.ErrorIs(t, r.DeleteEvent(ctx, ev.ID), events.ErrEventNotFound)
}

func TestUserLifecycle(t *testing.T) {
	r := New()
	ctx := context.Background()

	user := &events.User{
		Email:        "alice@example.com",
		PasswordHash: []byte("hash"),
		Role:         events.RoleUser,
	}
	require.NoError(t, r.CreateUser(ctx, user))
	assert.EqualValues(t, 1, user.ID)

	t.Run("duplicate email", func(t *testing.T) {
		dup := &events.User{Email: "alice@example.com"}
		assert.ErrorIs(t, r.CreateUser(ctx, dup), events.ErrUserExists)
	})

	t.Run("lookup by email", func(t *testing.T) {
		got, err := r.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = r.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, events.ErrUserNotFound)
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := r.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)

		_, err = r.GetUserByID(ctx, 99)
		assert.ErrorIs(t, err, events.ErrUserNotFound)
	})

	t.Run("update", func(t *testing.T) {
		updated := *user
		updated.Email = "alice2@example.com"
		require.NoError(t, r.UpdateUser(ctx, &updated))

		got, err := r.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice2@example.com", got.Email)
	})

	t.Run("update to taken email", func(t *testing.T) {
		other := &events.User{Email: "bob@example.com"}
		require.NoError(t, r.CreateUser(ctx, other))

		other.Email = "alice2@example.com"
		assert.ErrorIs(t, r.UpdateUser(ctx, other), events.ErrUserExists)
	})

	t.Run("update missing user", func(t *testing.T) {
		ghost := &events.User{ID: 99, Email: "ghost@example.com"}
		assert.ErrorIs(t, r.UpdateUser(ctx, ghost), events.ErrUserNotFound)
	})
}
