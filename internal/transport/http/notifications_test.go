package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

func TestHandleListNotifications(t *testing.T) {
	t.Parallel()

	svc := &stubNotificationLister{notes: []domain.Notification{
		{
			ID:        "note-1",
			UserID:    "user-1",
			Title:     "Order matched",
			Message:   "Your group order has a partner.",
			CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	mux := NewMux(Services{Notifications: svc})

	req := httptest.NewRequest(http.MethodGet, "/notifications/user-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"title":"Order matched"`) {
		t.Fatalf("expected notification in response, got %q", rec.Body.String())
	}
}

func TestHandleListNotifications_Empty(t *testing.T) {
	t.Parallel()

	svc := &stubNotificationLister{}
	mux := NewMux(Services{Notifications: svc})

	req := httptest.NewRequest(http.MethodGet, "/notifications/user-2", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", rec.Body.String())
	}
}

type stubNotificationLister struct {
	notes []domain.Notification
	err   error
}

func (s *stubNotificationLister) ListByUser(_ context.Context, _ string) ([]domain.Notification, error) {
	return s.notes, s.err
}
