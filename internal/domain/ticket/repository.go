package ticket

import "context"

// Repository defines the interface for ticket data access
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id int64) (*Ticket, error)
	List(ctx context.Context) ([]*Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]*Ticket, error)
	Delete(ctx context.Context, id int64) error
}
