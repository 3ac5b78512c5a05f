package services

import (
	"context"
	"testing"

	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/domain/ticket"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/testutil"
)

func TestTicketService_Create(t *testing.T) {
	events := testutil.NewMockEventRepository()
	tickets := testutil.NewMockTicketRepository()
	service := NewTicketService(tickets, events, logger.New(logger.Config{Level: "error", Format: "json"}))
	ctx := context.Background()

	e := &event.Event{Title: "Jazz Night", EventDate: "2026-12-01", EventTime: "19:30", TicketPrice: 499}
	events.Create(ctx, e)

	tests := []struct {
		name     string
		ticket   *ticket.Ticket
		wantCode string
	}{
		{
			name:   "fills details from event",
			ticket: &ticket.Ticket{UserID: 1, EventID: e.ID},
		},
		{
			name:     "unknown event",
			ticket:   &ticket.Ticket{UserID: 1, EventID: 999},
			wantCode: errors.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Create(ctx, tt.ticket)

			if tt.wantCode != "" {
				appErr, ok := errors.As(err)
				if !ok || appErr.Code != tt.wantCode {
					t.Errorf("Create() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if got.Count != 1 {
				t.Errorf("Create() count = %d, want 1", got.Count)
			}
			if got.Details.EventName != "Jazz Night" || got.Details.TicketPrice != 499 {
				t.Errorf("Create() details = %+v", got.Details)
			}
		})
	}
}

func TestTicketService_ListAndDelete(t *testing.T) {
	events := testutil.NewMockEventRepository()
	tickets := testutil.NewMockTicketRepository()
	service := NewTicketService(tickets, events, logger.New(logger.Config{Level: "error", Format: "json"}))
	ctx := context.Background()

	e := &event.Event{Title: "Talk"}
	events.Create(ctx, e)

	a, _ := service.Create(ctx, &ticket.Ticket{UserID: 1, EventID: e.ID})
	service.Create(ctx, &ticket.Ticket{UserID: 2, EventID: e.ID})

	all, _ := service.List(ctx)
	if len(all) != 2 {
		t.Errorf("List() = %d, want 2", len(all))
	}
	mine, _ := service.ListByUser(ctx, 1)
	if len(mine) != 1 || mine[0].ID != a.ID {
		t.Errorf("ListByUser() = %+v", mine)
	}

	if err := service.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := service.Delete(ctx, a.ID); !errors.IsNotFound(err) {
		t.Errorf("Delete() twice error = %v", err)
	}
}
