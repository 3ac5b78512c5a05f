package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/pkg/errors"
)

// EventRepository implements event.Repository
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *DB) event.Repository {
	return &EventRepository{db: db}
}

const eventColumns = `id, owner_id, title, description, organized_by, event_date, event_time,
	location, category, participants, count, income, ticket_price, quantity,
	estimated_cost, image, likes, comments, created_at, updated_at`

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Comments == nil {
		e.Comments = []string{}
	}

	comments, err := json.Marshal(e.Comments)
	if err != nil {
		return errors.Internal("Failed to encode comments", err)
	}

	query := r.db.Rebind(`
		INSERT INTO events (owner_id, title, description, organized_by, event_date, event_time,
			location, category, participants, count, income, ticket_price, quantity,
			estimated_cost, image, likes, comments, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err = r.db.QueryRowContext(ctx, query,
		nullableID(e.OwnerID), e.Title, e.Description, e.OrganizedBy, e.EventDate, e.EventTime,
		e.Location, e.Category, e.Participants, e.Count, e.Income, e.TicketPrice, e.Quantity,
		e.EstimatedCost, e.Image, e.Likes, string(comments), now.Unix(), now.Unix(),
	).Scan(&e.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create event", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	query := r.db.Rebind(`SELECT ` + eventColumns + ` FROM events WHERE id = ?`)

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Event")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get event", err)
	}
	return e, nil
}

// List retrieves events matching filter, oldest first
func (r *EventRepository) List(ctx context.Context, filter event.Filter) ([]*event.Event, error) {
	var where []string
	var args []interface{}

	if filter.OwnerID != nil {
		where = append(where, "owner_id = ?")
		args = append(args, *filter.OwnerID)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list events", err)
	}
	defer rows.Close()

	events := []*event.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan event", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate events", err)
	}

	return events, nil
}

// Update updates the editable fields of an event
func (r *EventRepository) Update(ctx context.Context, e *event.Event) error {
	e.UpdatedAt = time.Now()

	query := r.db.Rebind(`
		UPDATE events
		SET title = ?, description = ?, organized_by = ?, event_date = ?, event_time = ?,
			location = ?, category = ?, participants = ?, count = ?, income = ?,
			ticket_price = ?, quantity = ?, estimated_cost = ?, image = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.OrganizedBy, e.EventDate, e.EventTime,
		e.Location, e.Category, e.Participants, e.Count, e.Income,
		e.TicketPrice, e.Quantity, e.EstimatedCost, e.Image, e.UpdatedAt.Unix(),
		e.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update event", err)
	}

	return expectOneRow(result, "Event")
}

// Delete deletes an event
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM events WHERE id = ?`), id)
	if err != nil {
		return errors.DatabaseError("Failed to delete event", err)
	}

	return expectOneRow(result, "Event")
}

// IncrementLikes adds one like and returns the new count
func (r *EventRepository) IncrementLikes(ctx context.Context, id int64) (int, error) {
	query := r.db.Rebind(`
		UPDATE events SET likes = likes + 1, updated_at = ?
		WHERE id = ?
		RETURNING likes
	`)

	var likes int
	err := r.db.QueryRowContext(ctx, query, time.Now().Unix(), id).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, errors.NotFound("Event")
	}
	if err != nil {
		return 0, errors.DatabaseError("Failed to like event", err)
	}
	return likes, nil
}

// AppendComment stores a comment on the event
func (r *EventRepository) AppendComment(ctx context.Context, id int64, comment string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	selectQuery := `SELECT comments FROM events WHERE id = ?`
	if r.db.Driver == "postgres" {
		selectQuery += " FOR UPDATE"
	}

	var raw string
	err = tx.QueryRowContext(ctx, r.db.Rebind(selectQuery), id).Scan(&raw)
	if err == sql.ErrNoRows {
		return errors.NotFound("Event")
	}
	if err != nil {
		return errors.DatabaseError("Failed to load comments", err)
	}

	comments := decodeComments(raw)
	comments = append(comments, comment)
	encoded, err := json.Marshal(comments)
	if err != nil {
		return errors.Internal("Failed to encode comments", err)
	}

	_, err = tx.ExecContext(ctx, r.db.Rebind(`UPDATE events SET comments = ?, updated_at = ? WHERE id = ?`),
		string(encoded), time.Now().Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to save comment", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit comment", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*event.Event, error) {
	var e event.Event
	var ownerID sql.NullInt64
	var comments string
	var createdAt, updatedAt int64

	err := row.Scan(
		&e.ID, &ownerID, &e.Title, &e.Description, &e.OrganizedBy, &e.EventDate, &e.EventTime,
		&e.Location, &e.Category, &e.Participants, &e.Count, &e.Income, &e.TicketPrice, &e.Quantity,
		&e.EstimatedCost, &e.Image, &e.Likes, &comments, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		e.OwnerID = ownerID.Int64
	}
	e.Comments = decodeComments(comments)
	e.CreatedAt = time.Unix(createdAt, 0)
	e.UpdatedAt = time.Unix(updatedAt, 0)

	return &e, nil
}

func decodeComments(raw string) []string {
	comments := []string{}
	if raw == "" {
		return comments
	}
	if err := json.Unmarshal([]byte(raw), &comments); err != nil {
		return []string{}
	}
	return comments
}

func nullableID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
