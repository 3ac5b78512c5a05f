package client

import (
	"context"
	"fmt"
	"net/http"
)

// TicketService handles ticket-related API calls
type TicketService struct {
	client *Client
}

// CreateTicketRequest books a ticket. UserID defaults to the caller.
type CreateTicketRequest struct {
	UserID        int64         `json:"userid,omitempty"`
	EventID       int64         `json:"eventid"`
	TicketDetails TicketDetails `json:"ticketDetails"`
	Count         int           `json:"count,omitempty"`
}

type ticketEnvelope struct {
	Ticket *Ticket `json:"ticket"`
}

// Create books a ticket
func (s *TicketService) Create(ctx context.Context, req CreateTicketRequest) (*Ticket, error) {
	var resp ticketEnvelope
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/tickets", req, &resp); err != nil {
		return nil, err
	}
	return resp.Ticket, nil
}

// List retrieves all tickets
func (s *TicketService) List(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/tickets", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListByUser retrieves the tickets booked by one user
func (s *TicketService) ListByUser(ctx context.Context, userID int64) ([]Ticket, error) {
	var tickets []Ticket
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/tickets/user/%d", userID), nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Get retrieves a single ticket by ID
func (s *TicketService) Get(ctx context.Context, id int64) (*Ticket, error) {
	var t Ticket
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/tickets/%d", id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete cancels a ticket
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/tickets/%d", id), nil, nil)
}
