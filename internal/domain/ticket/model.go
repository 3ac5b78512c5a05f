package ticket

import "time"

// Ticket is a booking of one or more seats for an event
type Ticket struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EventID   int64     `json:"event_id"`
	Details   Details   `json:"ticket_details"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// Details is the printable part of a ticket
type Details struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	EventName   string  `json:"eventname"`
	EventDate   string  `json:"eventdate"`
	EventTime   string  `json:"eventtime"`
	TicketPrice float64 `json:"ticketprice"`
	QR          string  `json:"qr"`
}
