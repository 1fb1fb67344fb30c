// Package postgres implements the events repositories on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventboard/events-api/pkg/events"
)

// DBTX allows using either a connection pool or a transaction.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements events.Repository and events.UserRepository.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository.
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository from a connection pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// handlePostgresError maps SQLSTATE codes onto the domain error taxonomy. A
// foreign-key violation must stay distinguishable from generic failures so
// the orchestrator can report ErrInvalidReference instead of compensating
// into a 500.
func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", events.ErrInvalidReference, pgErr.ConstraintName)
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", events.ErrUserExists, pgErr.ConstraintName)
		case "23502": // not_null_violation
			return fmt.Errorf("required field %s is missing", pgErr.ColumnName)
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

const eventColumns = `
	id, title, description, organizer_id, city_id, website_url, price,
	date_start, date_end, registration_deadline, location_address, is_online,
	image_url, created_at, updated_at`

func scanEvent(row pgx.Row) (*events.Event, error) {
	var ev events.Event
	var description, websiteURL, locationAddress, imageKey *string
	err := row.Scan(
		&ev.ID, &ev.Title, &description, &ev.OrganizerID, &ev.CityID,
		&websiteURL, &ev.Price, &ev.DateStart, &ev.DateEnd,
		&ev.RegistrationDeadline, &locationAddress, &ev.IsOnline,
		&imageKey, &ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if description != nil {
		ev.Description = *description
	}
	if websiteURL != nil {
		ev.WebsiteURL = *websiteURL
	}
	if locationAddress != nil {
		ev.LocationAddress = *locationAddress
	}
	if imageKey != nil {
		ev.ImageKey = *imageKey
	}
	return &ev, nil
}

// nullable converts empty strings to NULL parameters.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateEvent inserts the row and fills in the server-assigned id and
// creation timestamp.
func (r *Repository) CreateEvent(ctx context.Context, event *events.Event) error {
	query := `
		INSERT INTO events (
			title, description, organizer_id, city_id, website_url, price,
			date_start, date_end, registration_deadline, location_address,
			is_online, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		event.Title, nullable(event.Description), event.OrganizerID, event.CityID,
		nullable(event.WebsiteURL), event.Price, event.DateStart, event.DateEnd,
		event.RegistrationDeadline, nullable(event.LocationAddress),
		event.IsOnline, nullable(event.ImageKey),
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		return handlePostgresError("create event", err)
	}

	return nil
}

func (r *Repository) GetEvent(ctx context.Context, id int64) (*events.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	ev, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrEventNotFound
		}
		return nil, handlePostgresError("get event", err)
	}

	return ev, nil
}

func (r *Repository) ListEvents(ctx context.Context) ([]*events.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date_start, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, handlePostgresError("list events", err)
	}
	defer rows.Close()

	var listed []*events.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, handlePostgresError("list events", err)
		}
		listed = append(listed, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("list events", err)
	}

	return listed, nil
}

func (r *Repository) DeleteEvent(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return handlePostgresError("delete event", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrEventNotFound
	}
	return nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *events.User) error {
	query := `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return handlePostgresError("create user", err)
	}

	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*events.User, error) {
	query := `SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1`

	var u events.User
	err := r.db.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrUserNotFound
		}
		return nil, handlePostgresError("get user by email", err)
	}

	return &u, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*events.User, error) {
	query := `SELECT id, email, password_hash, role, created_at FROM users WHERE id = $1`

	var u events.User
	err := r.db.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrUserNotFound
		}
		return nil, handlePostgresError("get user by id", err)
	}

	return &u, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *events.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET email = $2, password_hash = $3, role = $4 WHERE id = $1`,
		user.ID, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		return handlePostgresError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrUserNotFound
	}
	return nil
}
