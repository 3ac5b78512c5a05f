package client

import "time"

// User represents an account
type User struct {
	ID    int64  `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Event represents a published event
type Event struct {
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

// TicketDetails is the printable part of a ticket
type TicketDetails struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	EventName   string  `json:"eventname"`
	EventDate   string  `json:"eventdate"`
	EventTime   string  `json:"eventtime"`
	TicketPrice float64 `json:"ticketprice"`
	QR          string  `json:"qr"`
}

// Ticket represents a booked ticket
type Ticket struct {
	ID            int64         `json:"_id"`
	UserID        int64         `json:"userid"`
	EventID       int64         `json:"eventid"`
	TicketDetails TicketDetails `json:"ticketDetails"`
	Count         int           `json:"count"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// RecommendedEvent is one event chosen by the recommender
type RecommendedEvent struct {
	Event           string  `json:"Event"`
	Type            string  `json:"Type"`
	Cost            float64 `json:"Cost"`
	EngagementScore float64 `json:"Engagement_Score"`
	Popularity      int     `json:"Popularity"`
	AvgSentiment    float64 `json:"Avg_Sentiment"`
	ReviewCount     int     `json:"Review_Count"`
	Explanation     string  `json:"Explanation"`
}

// Recommendation is the recommender's answer. Message is set instead of
// SelectedEvents when nothing fits the budget.
type Recommendation struct {
	SelectedEvents     []RecommendedEvent `json:"selected_events,omitempty"`
	TotalEstimatedCost float64            `json:"total_estimated_cost,omitempty"`
	Budget             float64            `json:"budget"`
	EventsSelected     int                `json:"events_selected"`
	Message            string             `json:"message,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
