package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// NotificationLister is the minimal interface needed to poll notifications.
type NotificationLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
}

// HandleListNotifications returns an HTTP handler polled by clients for
// match and expiry messages, newest first.
func HandleListNotifications(svc NotificationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes, err := svc.ListByUser(r.Context(), r.PathValue("userId"))
		if err != nil {
			respondServiceError(w, err)
			return
		}

		resp := make([]notificationResponse, 0, len(notes))
		for _, n := range notes {
			resp = append(resp, notificationResponse{
				ID:        n.ID,
				UserID:    n.UserID,
				Title:     n.Title,
				Message:   n.Message,
				IsRead:    n.IsRead,
				CreatedAt: n.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type notificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
