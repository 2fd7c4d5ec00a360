package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/Suya12/cloud-computing-project/internal/clock"
	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// Notifier is the fire-and-forget side channel. Implementations must never
// fail the calling operation; delivery problems are logged and dropped.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message string)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]domain.Notification, error)
}

// NotificationService persists notification rows that the client polls.
type NotificationService struct {
	repo   NotificationRepository
	clock  clock.Clock
	logger *zap.Logger
}

func NewNotificationService(repo NotificationRepository, clk clock.Clock, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID, title, message string) {
	n := domain.Notification{
		ID:        newID(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.logger.Warn("notification write failed",
			zap.String("user_id", userID),
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.ListNotificationsByUser(ctx, userID)
}

// NopNotifier discards everything; used in tests.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string, string) {}
