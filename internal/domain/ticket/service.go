package ticket

import "context"

// Service defines the interface for ticket business logic
type Service interface {
	// Create books a ticket; the referenced event must exist
	Create(ctx context.Context, t *Ticket) (*Ticket, error)

	GetByID(ctx context.Context, id int64) (*Ticket, error)
	List(ctx context.Context) ([]*Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]*Ticket, error)
	Delete(ctx context.Context, id int64) error
}
