package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/festhub/eventhub/internal/domain/event"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/testutil"
)

func newTestEventService() (event.Service, *testutil.MockEventRepository, *testutil.MockImageStore) {
	repo := testutil.NewMockEventRepository()
	images := testutil.NewMockImageStore()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewEventService(repo, images, log), repo, images
}

func TestEventService_Create(t *testing.T) {
	service, _, images := newTestEventService()
	ctx := context.Background()

	e, err := service.Create(ctx, &event.Event{Title: "Jazz Night", Likes: 50}, &event.Image{
		Filename:    "jazz.png",
		ContentType: "image/png",
		Body:        strings.NewReader("img"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if e.Image != "uploads/jazz.png" {
		t.Errorf("Create() image = %q", e.Image)
	}
	if e.Likes != 0 {
		t.Errorf("Create() likes = %d, want 0", e.Likes)
	}
	if string(images.Saved["jazz.png"]) != "img" {
		t.Errorf("image not stored: %v", images.Saved)
	}

	noImage, err := service.Create(ctx, &event.Event{Title: "No cover"}, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if noImage.Image != "" {
		t.Errorf("Create() image = %q, want empty", noImage.Image)
	}
}

func TestEventService_CreateImageFailure(t *testing.T) {
	service, repo, images := newTestEventService()
	images.SaveError = stderrors.New("disk full")

	_, err := service.Create(context.Background(), &event.Event{Title: "X"}, &event.Image{
		Filename: "x.png",
		Body:     strings.NewReader("x"),
	})
	appErr, ok := errors.As(err)
	if !ok || appErr.Code != errors.ErrCodeStorage {
		t.Errorf("Create() error = %v, want storage error", err)
	}
	if len(repo.Events) != 0 {
		t.Error("Create() stored event despite image failure")
	}
}

func TestEventService_Like(t *testing.T) {
	service, _, _ := newTestEventService()
	ctx := context.Background()

	e, _ := service.Create(ctx, &event.Event{Title: "Talk"}, nil)

	for i := 1; i <= 3; i++ {
		liked, err := service.Like(ctx, e.ID)
		if err != nil {
			t.Fatalf("Like() error = %v", err)
		}
		if liked.Likes != i {
			t.Errorf("Like() likes = %d, want %d", liked.Likes, i)
		}
	}

	if _, err := service.Like(ctx, 999); !errors.IsNotFound(err) {
		t.Errorf("Like() missing error = %v", err)
	}
}

func TestEventService_Comment(t *testing.T) {
	service, _, _ := newTestEventService()
	ctx := context.Background()

	e, _ := service.Create(ctx, &event.Event{Title: "Talk"}, nil)

	got, err := service.Comment(ctx, e.ID, "  Great  ")
	if err != nil {
		t.Fatalf("Comment() error = %v", err)
	}
	if len(got.Comments) != 1 || got.Comments[0] != "Great" {
		t.Errorf("Comment() comments = %v", got.Comments)
	}

	if _, err := service.Comment(ctx, e.ID, "   "); err == nil {
		t.Error("Comment() expected error for blank comment")
	}
}

func TestEventService_UpdateAndDeleteRequireOwner(t *testing.T) {
	service, _, _ := newTestEventService()
	ctx := context.Background()

	e, _ := service.Create(ctx, &event.Event{Title: "Draft", OwnerID: 1}, nil)

	changes := &event.Event{ID: e.ID, Title: "Final", Quantity: 50}
	if _, err := service.Update(ctx, 2, changes); err == nil {
		t.Error("Update() by non-owner should fail")
	} else if appErr, _ := errors.As(err); appErr.Code != errors.ErrCodeForbidden {
		t.Errorf("Update() error = %v, want forbidden", err)
	}

	updated, err := service.Update(ctx, 1, changes)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Final" || updated.Quantity != 50 {
		t.Errorf("Update() = %+v", updated)
	}

	if err := service.Delete(ctx, 2, e.ID); err == nil {
		t.Error("Delete() by non-owner should fail")
	}
	if err := service.Delete(ctx, 1, e.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := service.GetByID(ctx, e.ID); !errors.IsNotFound(err) {
		t.Errorf("GetByID() after delete error = %v", err)
	}
}
