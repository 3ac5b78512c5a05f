package services

import (
	"context"

	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/domain/ticket"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/pkg/metrics"
)

// TicketService implements ticket.Service
type TicketService struct {
	repo   ticket.Repository
	events event.Repository
	logger *logger.Logger
}

// NewTicketService creates a new ticket service
func NewTicketService(repo ticket.Repository, events event.Repository, log *logger.Logger) ticket.Service {
	return &TicketService{
		repo:   repo,
		events: events,
		logger: log,
	}
}

// Create books a ticket. Missing event details are filled from the event.
func (s *TicketService) Create(ctx context.Context, t *ticket.Ticket) (*ticket.Ticket, error) {
	e, err := s.events.GetByID(ctx, t.EventID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.BadRequest("Event does not exist")
		}
		return nil, err
	}

	if t.Count <= 0 {
		t.Count = 1
	}
	if t.Details.EventName == "" {
		t.Details.EventName = e.Title
	}
	if t.Details.EventDate == "" {
		t.Details.EventDate = e.EventDate
	}
	if t.Details.EventTime == "" {
		t.Details.EventTime = e.EventTime
	}
	if t.Details.TicketPrice == 0 {
		t.Details.TicketPrice = e.TicketPrice
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create ticket")
		return nil, err
	}

	metrics.RecordTicketCreated()
	s.logger.WithFields(map[string]interface{}{
		"ticket_id": t.ID,
		"event_id":  t.EventID,
		"user_id":   t.UserID,
		"count":     t.Count,
	}).Info("Ticket booked")

	return t, nil
}

// GetByID retrieves a ticket by ID
func (s *TicketService) GetByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all tickets
func (s *TicketService) List(ctx context.Context) ([]*ticket.Ticket, error) {
	return s.repo.List(ctx)
}

// ListByUser retrieves the tickets of one user
func (s *TicketService) ListByUser(ctx context.Context, userID int64) ([]*ticket.Ticket, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Delete cancels a ticket
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"ticket_id": id,
	}).Info("Ticket deleted")

	return nil
}
