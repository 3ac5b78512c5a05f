package event

import "context"

// Repository defines the interface for event data access
type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id int64) error

	// IncrementLikes adds one like in a single statement and returns the new count
	IncrementLikes(ctx context.Context, id int64) (int, error)

	// AppendComment stores a comment on the event
	AppendComment(ctx context.Context, id int64, comment string) error
}
