package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// EventService handles event-related API calls
type EventService struct {
	client *Client
}

// EventListOptions contains options for listing events
type EventListOptions struct {
	Category string
	OwnerID  *int64
}

// EventInput holds the editable fields of an event
type EventInput struct {
	Title         string
	Description   string
	OrganizedBy   string
	EventDate     string // 2006-01-02
	EventTime     string // 18:30 or 6:30 PM
	Location      string
	Category      string
	Participants  int
	Count         int
	Income        float64
	TicketPrice   float64
	Quantity      int
	EstimatedCost float64
}

// Image is an optional cover image uploaded with a new event
type Image struct {
	Filename string
	Body     io.Reader
}

func (in EventInput) fields() map[string]string {
	return map[string]string{
		"title":         in.Title,
		"description":   in.Description,
		"organizedBy":   in.OrganizedBy,
		"eventDate":     in.EventDate,
		"eventTime":     in.EventTime,
		"location":      in.Location,
		"category":      in.Category,
		"participants":  strconv.Itoa(in.Participants),
		"count":         strconv.Itoa(in.Count),
		"income":        strconv.FormatFloat(in.Income, 'f', -1, 64),
		"ticketPrice":   strconv.FormatFloat(in.TicketPrice, 'f', -1, 64),
		"quantity":      strconv.Itoa(in.Quantity),
		"estimatedCost": strconv.FormatFloat(in.EstimatedCost, 'f', -1, 64),
	}
}

// List retrieves events, optionally filtered
func (s *EventService) List(ctx context.Context, opts *EventListOptions) ([]Event, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Category != "" {
			query.Set("category", opts.Category)
		}
		if opts.OwnerID != nil {
			query.Set("owner", strconv.FormatInt(*opts.OwnerID, 10))
		}
	}

	path := "/api/v1/events"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var events []Event
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get retrieves a single event by ID
func (s *EventService) Get(ctx context.Context, id int64) (*Event, error) {
	var e Event
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/events/%d", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// OrderSummary retrieves the event as shown on the order summary page
func (s *EventService) OrderSummary(ctx context.Context, id int64) (*Event, error) {
	var e Event
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v1/events/%d/order-summary", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create publishes a new event. image may be nil.
func (s *EventService) Create(ctx context.Context, in EventInput, image *Image) (*Event, error) {
	var e Event
	if err := s.sendForm(ctx, http.MethodPost, "/api/v1/events", in, image, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update replaces the editable fields of an event the caller owns
func (s *EventService) Update(ctx context.Context, id int64, in EventInput) (*Event, error) {
	var e Event
	if err := s.sendForm(ctx, http.MethodPut, fmt.Sprintf("/api/v1/events/%d", id), in, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete deletes an event the caller owns
func (s *EventService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/events/%d", id), nil, nil)
}

// Like adds one like and returns the updated event
func (s *EventService) Like(ctx context.Context, id int64) (*Event, error) {
	var e Event
	if err := s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/events/%d/like", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Comment appends a comment and returns the updated event
func (s *EventService) Comment(ctx context.Context, id int64, text string) (*Event, error) {
	var e Event
	body := map[string]string{"text": text}
	if err := s.client.doRequest(ctx, http.MethodPost, fmt.Sprintf("/api/v1/events/%d/comments", id), body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// sendForm posts the event as multipart/form-data
func (s *EventService) sendForm(ctx context.Context, method, path string, in EventInput, image *Image, result interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, value := range in.fields() {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	if image != nil && image.Body != nil {
		part, err := mw.CreateFormFile("image", image.Filename)
		if err != nil {
			return fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, image.Body); err != nil {
			return fmt.Errorf("failed to copy image: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to close form: %w", err)
	}

	respBody, status, err := s.client.send(ctx, method, path, mw.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	if status >= 400 {
		return parseAPIError(status, respBody)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}
