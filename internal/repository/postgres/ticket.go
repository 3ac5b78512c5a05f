package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/festhub/eventhub/internal/domain/ticket"
	"github.com/festhub/eventhub/internal/pkg/errors"
)

// TicketRepository implements ticket.Repository
type TicketRepository struct {
	db *DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *DB) ticket.Repository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, user_id, event_id, name, email, event_name, event_date, event_time,
	ticket_price, qr, count, created_at`

// Create creates a new ticket
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	t.CreatedAt = time.Now()

	query := r.db.Rebind(`
		INSERT INTO tickets (user_id, event_id, name, email, event_name, event_date, event_time,
			ticket_price, qr, count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	d := t.Details
	err := r.db.QueryRowContext(ctx, query,
		t.UserID, t.EventID, d.Name, d.Email, d.EventName, d.EventDate, d.EventTime,
		d.TicketPrice, d.QR, t.Count, t.CreatedAt.Unix(),
	).Scan(&t.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create ticket", err)
	}

	return nil
}

// GetByID retrieves a ticket by ID
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	query := r.db.Rebind(`SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`)

	t, err := scanTicket(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Ticket")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get ticket", err)
	}
	return t, nil
}

// List retrieves all tickets
func (r *TicketRepository) List(ctx context.Context) ([]*ticket.Ticket, error) {
	return r.query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id ASC`)
}

// ListByUser retrieves the tickets booked by one user
func (r *TicketRepository) ListByUser(ctx context.Context, userID int64) ([]*ticket.Ticket, error) {
	return r.query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE user_id = ? ORDER BY id ASC`, userID)
}

// Delete deletes a ticket
func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tickets WHERE id = ?`), id)
	if err != nil {
		return errors.DatabaseError("Failed to delete ticket", err)
	}

	return expectOneRow(result, "Ticket")
}

func (r *TicketRepository) query(ctx context.Context, query string, args ...interface{}) ([]*ticket.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list tickets", err)
	}
	defer rows.Close()

	tickets := []*ticket.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan ticket", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate tickets", err)
	}

	return tickets, nil
}

func scanTicket(row rowScanner) (*ticket.Ticket, error) {
	var t ticket.Ticket
	var createdAt int64

	err := row.Scan(
		&t.ID, &t.UserID, &t.EventID, &t.Details.Name, &t.Details.Email, &t.Details.EventName,
		&t.Details.EventDate, &t.Details.EventTime, &t.Details.TicketPrice, &t.Details.QR,
		&t.Count, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt = time.Unix(createdAt, 0)
	return &t, nil
}
