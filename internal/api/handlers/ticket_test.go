package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/domain/ticket"
	"github.com/festhub/eventhub/internal/pkg/validator"
	"github.com/festhub/eventhub/internal/services"
	"github.com/festhub/eventhub/internal/testutil"
)

func newTicketHandler(t *testing.T) (*TicketHandler, ticket.Service) {
	t.Helper()
	log := testLogger()
	events := testutil.NewMockEventRepository()
	events.Create(context.Background(), &event.Event{
		Title:       "Jazz Night",
		EventDate:   "2026-11-20",
		EventTime:   "18:30",
		TicketPrice: 250,
	})
	svc := services.NewTicketService(testutil.NewMockTicketRepository(), events, log)
	return NewTicketHandler(svc, log, validator.New()), svc
}

func TestTicketHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		sessionUser    int64
		expectedStatus int
		expectedUser   int64
	}{
		{
			name:           "book with explicit user",
			body:           `{"userid":3,"eventid":1,"ticketDetails":{"name":"Asha","email":"asha@example.com","qr":"data:image/png;base64,AAA"},"count":2}`,
			expectedStatus: http.StatusCreated,
			expectedUser:   3,
		},
		{
			name:           "user from session",
			body:           `{"eventid":1}`,
			sessionUser:    5,
			expectedStatus: http.StatusCreated,
			expectedUser:   5,
		},
		{
			name:           "no user",
			body:           `{"eventid":1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown event",
			body:           `{"userid":3,"eventid":42}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing event",
			body:           `{"userid":3}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid email",
			body:           `{"userid":3,"eventid":1,"ticketDetails":{"email":"nope"}}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newTicketHandler(t)
			req := postJSON("/tickets", tt.body)
			if tt.sessionUser != 0 {
				req = withUser(req, tt.sessionUser)
			}
			rr := httptest.NewRecorder()

			handler.Create(rr, asLegacy(req))

			if rr.Code != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if rr.Code != http.StatusCreated {
				return
			}

			var body struct {
				Ticket struct {
					UserID        int64 `json:"userid"`
					EventID       int64 `json:"eventid"`
					Count         int   `json:"count"`
					TicketDetails struct {
						EventName   string  `json:"eventname"`
						TicketPrice float64 `json:"ticketprice"`
					} `json:"ticketDetails"`
				} `json:"ticket"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Ticket.UserID != tt.expectedUser {
				t.Errorf("userid = %d, want %d", body.Ticket.UserID, tt.expectedUser)
			}
			if body.Ticket.TicketDetails.EventName != "Jazz Night" || body.Ticket.TicketDetails.TicketPrice != 250 {
				t.Errorf("details not filled from event: %+v", body.Ticket.TicketDetails)
			}
			if body.Ticket.Count < 1 {
				t.Errorf("count = %d", body.Ticket.Count)
			}
		})
	}
}

func TestTicketHandler_ListGetDelete(t *testing.T) {
	handler, svc := newTicketHandler(t)
	ctx := context.Background()
	svc.Create(ctx, &ticket.Ticket{UserID: 1, EventID: 1})
	svc.Create(ctx, &ticket.Ticket{UserID: 2, EventID: 1})

	decodeList := func(rr *httptest.ResponseRecorder) []map[string]interface{} {
		t.Helper()
		var out []map[string]interface{}
		if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return out
	}

	rr := httptest.NewRecorder()
	handler.List(rr, asLegacy(httptest.NewRequest(http.MethodGet, "/tickets/anything", nil)))
	if got := decodeList(rr); len(got) != 2 {
		t.Errorf("list all: got %d tickets, want 2", len(got))
	}

	rr = httptest.NewRecorder()
	req := withURLParams(httptest.NewRequest(http.MethodGet, "/tickets/user/2", nil), map[string]string{"userId": "2"})
	handler.ListByUser(rr, asLegacy(req))
	if got := decodeList(rr); len(got) != 1 || got[0]["userid"] != float64(2) {
		t.Errorf("list by user: %v", got)
	}

	rr = httptest.NewRecorder()
	handler.Get(rr, withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/tickets/1", nil), map[string]string{"id": "1"}))
	if rr.Code != http.StatusOK {
		t.Errorf("get: got %d want 200", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.Delete(rr, withURLParams(httptest.NewRequest(http.MethodDelete, "/tickets/1", nil), map[string]string{"id": "1"}))
	if rr.Code != http.StatusNoContent {
		t.Errorf("delete: got %d want 204", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("delete returned a body: %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.Delete(rr, withURLParams(httptest.NewRequest(http.MethodDelete, "/tickets/1", nil), map[string]string{"id": "1"}))
	if rr.Code != http.StatusNotFound {
		t.Errorf("delete missing: got %d want 404", rr.Code)
	}
}
