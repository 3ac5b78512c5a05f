package dto

import (
	"time"

	"github.com/festhub/eventhub/internal/domain/ticket"
)

// TicketDetailsDTO is the printable part of a ticket
type TicketDetailsDTO struct {
	Name        string  `json:"name" validate:"max=200"`
	Email       string  `json:"email" validate:"omitempty,email"`
	EventName   string  `json:"eventname"`
	EventDate   string  `json:"eventdate"`
	EventTime   string  `json:"eventtime"`
	TicketPrice float64 `json:"ticketprice" validate:"gte=0"`
	QR          string  `json:"qr"`
}

// TicketDTO represents a ticket in API responses
type TicketDTO struct {
	ID            int64            `json:"_id"`
	UserID        int64            `json:"userid"`
	EventID       int64            `json:"eventid"`
	TicketDetails TicketDetailsDTO `json:"ticketDetails"`
	Count         int              `json:"count"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// CreateTicketRequest books a ticket
type CreateTicketRequest struct {
	UserID        int64            `json:"userid" validate:"gte=0"`
	EventID       int64            `json:"eventid" validate:"required,gt=0"`
	TicketDetails TicketDetailsDTO `json:"ticketDetails"`
	Count         int              `json:"count" validate:"gte=0,lte=100"`
}

// TicketEnvelope wraps a created ticket
type TicketEnvelope struct {
	Ticket *TicketDTO `json:"ticket"`
}

// ToTicketDTO converts a domain ticket to its API representation
func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	return &TicketDTO{
		ID:      t.ID,
		UserID:  t.UserID,
		EventID: t.EventID,
		TicketDetails: TicketDetailsDTO{
			Name:        t.Details.Name,
			Email:       t.Details.Email,
			EventName:   t.Details.EventName,
			EventDate:   t.Details.EventDate,
			EventTime:   t.Details.EventTime,
			TicketPrice: t.Details.TicketPrice,
			QR:          t.Details.QR,
		},
		Count:     t.Count,
		CreatedAt: t.CreatedAt,
	}
}

// ToTicketDTOs converts a list of tickets
func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	out := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketDTO(t))
	}
	return out
}

// ToTicket builds a domain ticket from a validated request
func (r *CreateTicketRequest) ToTicket() *ticket.Ticket {
	return &ticket.Ticket{
		UserID:  r.UserID,
		EventID: r.EventID,
		Count:   r.Count,
		Details: ticket.Details{
			Name:        r.TicketDetails.Name,
			Email:       r.TicketDetails.Email,
			EventName:   r.TicketDetails.EventName,
			EventDate:   r.TicketDetails.EventDate,
			EventTime:   r.TicketDetails.EventTime,
			TicketPrice: r.TicketDetails.TicketPrice,
			QR:          r.TicketDetails.QR,
		},
	}
}
