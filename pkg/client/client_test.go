package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/"})
}

func TestClient_LoginStoresToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":{"accessToken":"abc","refreshToken":"def","user":{"_id":7,"name":"Asha","email":"asha@example.com"}}}`)
	})

	resp, err := c.Login(context.Background(), "asha@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.User == nil || resp.User.ID != 7 {
		t.Errorf("unexpected user %+v", resp.User)
	}
	if c.GetToken() != "abc" {
		t.Errorf("token = %q, want abc", c.GetToken())
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	c.SetToken("tok")

	if err := c.Events().Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
		wantDetails interface{}
	}{
		{
			name:        "envelope",
			status:      http.StatusNotFound,
			body:        `{"success":false,"error":{"code":"NOT_FOUND","message":"Event not found"}}`,
			wantCode:    "NOT_FOUND",
			wantMessage: "Event not found",
		},
		{
			name:        "flat",
			status:      http.StatusInternalServerError,
			body:        `{"error":"Failed to execute recommendation model","details":"exit status 1"}`,
			wantMessage: "Failed to execute recommendation model",
			wantDetails: "exit status 1",
		},
		{
			name:        "not json",
			status:      http.StatusBadGateway,
			body:        "bad gateway\n",
			wantMessage: "bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseAPIError(tt.status, []byte(tt.body))
			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMessage)
			}
			if apiErr.Details != tt.wantDetails {
				t.Errorf("Details = %v, want %v", apiErr.Details, tt.wantDetails)
			}
		})
	}
}

func TestEventService_CreateSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if got := r.FormValue("title"); got != "Jazz Night" {
			t.Errorf("title = %q", got)
		}
		if got := r.FormValue("estimatedCost"); got != "20000" {
			t.Errorf("estimatedCost = %q", got)
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		if hdr.Filename != "poster.png" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"data":{"_id":11,"title":"Jazz Night","Comment":[]}}`)
	})

	e, err := c.Events().Create(context.Background(), EventInput{Title: "Jazz Night", EstimatedCost: 20000},
		&Image{Filename: "poster.png", Body: strings.NewReader("png")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if e.ID != 11 {
		t.Errorf("ID = %d, want 11", e.ID)
	}
}

func TestRecommendationService_Recommend(t *testing.T) {
	t.Run("raw selection", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"selected_events":[{"Event":"Jazz Night","Cost":100}],"total_estimated_cost":100,"budget":500,"events_selected":1}`)
		})
		rec, err := c.Recommendations().Recommend(context.Background(), RecommendationRequest{Budget: 500})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if rec.EventsSelected != 1 || len(rec.SelectedEvents) != 1 || rec.SelectedEvents[0].Event != "Jazz Night" {
			t.Errorf("unexpected recommendation %+v", rec)
		}
	})

	t.Run("bad budget", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"Invalid or missing budget. Budget must be a positive number."}`)
		})
		_, err := c.Recommendations().Recommend(context.Background(), RecommendationRequest{})
		apiErr, ok := err.(*APIError)
		if !ok || !apiErr.IsValidationError() {
			t.Fatalf("expected validation APIError, got %v", err)
		}
	})
}
