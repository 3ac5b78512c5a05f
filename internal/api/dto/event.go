package dto

import (
	"time"

	"github.com/festhub/eventhub/internal/domain/event"
)

// EventDTO represents an event in API responses
// Uses camelCase for frontend compatibility
type EventDTO struct {
	ID            int64     `json:"_id"`
	Owner         int64     `json:"owner,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	OrganizedBy   string    `json:"organizedBy"`
	EventDate     string    `json:"eventDate"`
	EventTime     string    `json:"eventTime"`
	Location      string    `json:"location"`
	Category      string    `json:"category,omitempty"`
	Participants  int       `json:"Participants"`
	Count         int       `json:"Count"`
	Income        float64   `json:"Income"`
	TicketPrice   float64   `json:"ticketPrice"`
	Quantity      int       `json:"Quantity"`
	EstimatedCost float64   `json:"estimatedCost"`
	Image         string    `json:"image"`
	Likes         int       `json:"likes"`
	Comments      []string  `json:"Comment"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EventForm is the multipart form accepted when creating or updating an
// event. Field names follow the browser client.
type EventForm struct {
	Title         string  `form:"title" validate:"required,max=200"`
	Description   string  `form:"description" validate:"max=5000"`
	OrganizedBy   string  `form:"organizedBy" validate:"max=200"`
	EventDate     string  `form:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	EventTime     string  `form:"eventTime" validate:"omitempty,clock"`
	Location      string  `form:"location" validate:"max=300"`
	Category      string  `form:"category" validate:"max=100"`
	Participants  int     `form:"participants" validate:"gte=0"`
	Count         int     `form:"count" validate:"gte=0"`
	Income        float64 `form:"income" validate:"gte=0"`
	TicketPrice   float64 `form:"ticketPrice" validate:"gte=0"`
	Quantity      int     `form:"quantity" validate:"gte=0"`
	EstimatedCost float64 `form:"estimatedCost" validate:"gte=0"`
}

// CommentRequest adds a comment to an event
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// LikeResponse is returned by the like endpoint
type LikeResponse struct {
	ID    int64 `json:"_id"`
	Likes int   `json:"likes"`
}

// ToEventDTO converts a domain event to its API representation
func ToEventDTO(e *event.Event) *EventDTO {
	comments := e.Comments
	if comments == nil {
		comments = []string{}
	}
	return &EventDTO{
		ID:            e.ID,
		Owner:         e.OwnerID,
		Title:         e.Title,
		Description:   e.Description,
		OrganizedBy:   e.OrganizedBy,
		EventDate:     e.EventDate,
		EventTime:     e.EventTime,
		Location:      e.Location,
		Category:      e.Category,
		Participants:  e.Participants,
		Count:         e.Count,
		Income:        e.Income,
		TicketPrice:   e.TicketPrice,
		Quantity:      e.Quantity,
		EstimatedCost: e.EstimatedCost,
		Image:         e.Image,
		Likes:         e.Likes,
		Comments:      comments,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// ToEventDTOs converts a list of events
func ToEventDTOs(events []*event.Event) []*EventDTO {
	out := make([]*EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, ToEventDTO(e))
	}
	return out
}

// ToEvent builds a domain event from a validated form
func (f *EventForm) ToEvent() *event.Event {
	return &event.Event{
		Title:         f.Title,
		Description:   f.Description,
		OrganizedBy:   f.OrganizedBy,
		EventDate:     f.EventDate,
		EventTime:     f.EventTime,
		Location:      f.Location,
		Category:      f.Category,
		Participants:  f.Participants,
		Count:         f.Count,
		Income:        f.Income,
		TicketPrice:   f.TicketPrice,
		Quantity:      f.Quantity,
		EstimatedCost: f.EstimatedCost,
	}
}
