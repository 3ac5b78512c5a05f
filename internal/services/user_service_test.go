package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/festhub/eventhub/internal/domain/user"
	"github.com/festhub/eventhub/internal/pkg/errors"
	"github.com/festhub/eventhub/internal/pkg/logger"
	"github.com/festhub/eventhub/internal/testutil"
)

func newTestUserService() (user.Service, *testutil.MockUserRepository) {
	mockRepo := testutil.NewMockUserRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewUserService(mockRepo, bcrypt.MinCost, log), mockRepo
}

func TestUserService_Register(t *testing.T) {
	service, mockRepo := newTestUserService()
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		wantCode string
	}{
		{
			name:  "successful registration",
			email: "asha@example.com",
		},
		{
			name:  "email is normalized",
			email: "  Ravi@Example.com ",
		},
		{
			name:     "duplicate email",
			email:    "ASHA@example.com",
			wantCode: errors.ErrCodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Register(ctx, "Test User", tt.email, "secret123")

			if tt.wantCode != "" {
				appErr, ok := errors.As(err)
				if !ok || appErr.Code != tt.wantCode {
					t.Errorf("Register() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if u.Role != user.RoleUser {
				t.Errorf("Register() role = %v, want %v", u.Role, user.RoleUser)
			}
			if u.PasswordHash == "secret123" || u.PasswordHash == "" {
				t.Error("Register() did not hash the password")
			}
			if _, ok := mockRepo.EmailIndex[u.Email]; !ok {
				t.Errorf("Register() stored email %q not found", u.Email)
			}
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	if _, err := service.Register(ctx, "Asha", "asha@example.com", "secret123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "valid credentials",
			email:    "asha@example.com",
			password: "secret123",
		},
		{
			name:     "unknown user",
			email:    "nobody@example.com",
			password: "secret123",
			wantCode: errors.ErrCodeNotFound,
			wantMsg:  "User not found",
		},
		{
			name:     "wrong password",
			email:    "asha@example.com",
			password: "wrong",
			wantCode: errors.ErrCodeUnauthorized,
			wantMsg:  "Invalid password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := service.Authenticate(ctx, tt.email, tt.password)

			if tt.wantCode != "" {
				appErr, ok := errors.As(err)
				if !ok || appErr.Code != tt.wantCode || appErr.Message != tt.wantMsg {
					t.Errorf("Authenticate() error = %v, want %s %q", err, tt.wantCode, tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if u.Email != tt.email {
				t.Errorf("Authenticate() email = %v, want %v", u.Email, tt.email)
			}
		})
	}
}

func TestUserService_GetByID(t *testing.T) {
	service, _ := newTestUserService()
	ctx := context.Background()

	created, _ := service.Register(ctx, "Asha", "asha@example.com", "secret123")

	got, err := service.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != created.Email {
		t.Errorf("GetByID() email = %v, want %v", got.Email, created.Email)
	}

	if _, err := service.GetByID(ctx, 999); !errors.IsNotFound(err) {
		t.Errorf("GetByID() missing error = %v", err)
	}
}
