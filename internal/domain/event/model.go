package event

import (
	"io"
	"time"
)

// Event is a published event that attendees can like and book
type Event struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	OrganizedBy   string    `json:"organized_by"`
	EventDate     string    `json:"event_date"`
	EventTime     string    `json:"event_time"`
	Location      string    `json:"location"`
	Category      string    `json:"category"`
	Participants  int       `json:"participants"`
	Count         int       `json:"count"`
	Income        float64   `json:"income"`
	TicketPrice   float64   `json:"ticket_price"`
	Quantity      int       `json:"quantity"`
	EstimatedCost float64   `json:"estimated_cost"`
	Image         string    `json:"image"`
	Likes         int       `json:"likes"`
	Comments      []string  `json:"comments"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Image is an uploaded cover image waiting to be stored
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Filter narrows List results
type Filter struct {
	OwnerID  *int64
	Category string
}
