package event

import "context"

// Service defines the interface for event business logic
type Service interface {
	// Create stores the event and its optional cover image
	Create(ctx context.Context, e *Event, image *Image) (*Event, error)

	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, error)

	// Update replaces the editable fields; only the owner may update
	Update(ctx context.Context, ownerID int64, e *Event) (*Event, error)

	// Delete removes the event; only the owner may delete
	Delete(ctx context.Context, ownerID, id int64) error

	// Like increments the like counter and returns the updated event
	Like(ctx context.Context, id int64) (*Event, error)

	// Comment appends a comment and returns the updated event
	Comment(ctx context.Context, id int64, text string) (*Event, error)
}
