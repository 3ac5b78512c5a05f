package services

import (
	"context"
	"strings"

	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/metrics"
	"github.com/festhub/eventhub/internal/storage"
)

// EventService implements event.Service
type EventService struct {
	repo   event.Repository
	images storage.ImageStore
	logger *logger.Logger
}

// NewEventService creates a new event service
func NewEventService(repo event.Repository, images storage.ImageStore, log *logger.Logger) event.Service {
	return &EventService{
		repo:   repo,
		images: images,
		logger: log,
	}
}

// Create stores the optional cover image first so the event row carries
// its reference.
func (s *EventService) Create(ctx context.Context, e *event.Event, image *event.Image) (*event.Event, error) {
	if image != nil && image.Filename != "" {
		ref, err := s.images.Save(ctx, image.Filename, image.ContentType, image.Body)
		if err != nil {
			s.logger.ErrorWithErr(err, "Failed to store event image")
			return nil, errors.StorageError("Failed to store image", err)
		}
		e.Image = ref
	}

	e.Likes = 0
	e.Comments = []string{}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create event")
		return nil, err
	}

	metrics.RecordEventCreated()
	s.logger.WithFields(map[string]interface{}{
		"event_id": e.ID,
		"owner_id": e.OwnerID,
		"title":    e.Title,
	}).Info("Event created")

	return e, nil
}

// GetByID retrieves an event by ID
func (s *EventService) GetByID(ctx context.Context, id int64) (*event.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves events
func (s *EventService) List(ctx context.Context, filter event.Filter) ([]*event.Event, error) {
	return s.repo.List(ctx, filter)
}

// Update replaces the editable fields of an owned event
func (s *EventService) Update(ctx context.Context, ownerID int64, changes *event.Event) (*event.Event, error) {
	existing, err := s.owned(ctx, ownerID, changes.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = changes.Title
	existing.Description = changes.Description
	existing.OrganizedBy = changes.OrganizedBy
	existing.EventDate = changes.EventDate
	existing.EventTime = changes.EventTime
	existing.Location = changes.Location
	existing.Category = changes.Category
	existing.Participants = changes.Participants
	existing.Count = changes.Count
	existing.Income = changes.Income
	existing.TicketPrice = changes.TicketPrice
	existing.Quantity = changes.Quantity
	existing.EstimatedCost = changes.EstimatedCost
	if changes.Image != "" {
		existing.Image = changes.Image
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update event")
		return nil, err
	}

	return existing, nil
}

// Delete removes an owned event
func (s *EventService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete event")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"event_id": id,
		"owner_id": ownerID,
	}).Info("Event deleted")

	return nil
}

// Like increments the like counter
func (s *EventService) Like(ctx context.Context, id int64) (*event.Event, error) {
	if _, err := s.repo.IncrementLikes(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Comment appends a comment to the event
func (s *EventService) Comment(ctx context.Context, id int64, text string) (*event.Event, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.BadRequest("Comment must not be empty")
	}

	if err := s.repo.AppendComment(ctx, id, text); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) owned(ctx context.Context, ownerID, id int64) (*event.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != ownerID {
		return nil, errors.Forbidden("Only the event owner can change this event")
	}
	return e, nil
}
