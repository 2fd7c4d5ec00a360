package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Suya12/cloud-computing-project/internal/clock"
	"github.com/Suya12/cloud-computing-project/internal/domain"
	"github.com/Suya12/cloud-computing-project/internal/metrics"
)

type SweepRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	ListOverdueWaitingIDs(ctx context.Context, now time.Time, limit int) ([]string, error)
	GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error)
	RefundCredit(ctx context.Context, userID string, amount int) error
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error
}

// Sweeper expires waiting orders whose matching window elapsed and refunds
// the creator. Each order is expired in its own transaction under the same
// row lock matching takes, so a match and an expiry can never both apply.
type Sweeper struct {
	repo     SweepRepository
	clock    clock.Clock
	notifier Notifier
	logger   *zap.Logger
	interval time.Duration
	cron     *cron.Cron
}

const (
	defaultSweepInterval = 10 * time.Second
	sweepBatchSize       = 100
)

func NewSweeper(repo SweepRepository, clk clock.Clock, notifier Notifier, logger *zap.Logger, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		repo:     repo,
		clock:    clk,
		notifier: notifier,
		logger:   logger,
		interval: defaultSweepInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SweeperOption func(*Sweeper)

// WithSweepInterval overrides the sweep cadence.
func WithSweepInterval(d time.Duration) SweeperOption {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Start schedules the sweep on its cadence until Stop is called.
func (s *Sweeper) Start() error {
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		if _, err := s.SweepOnce(context.Background()); err != nil {
			s.logger.Error("sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	c.Start()
	s.cron = c
	s.logger.Info("expiration sweeper started", zap.Duration("interval", s.interval))
	return nil
}

// Stop halts scheduling and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("expiration sweeper stopped")
}

// SweepOnce runs a single pass and returns how many orders it expired.
// Sweeping an order that was matched, cancelled, or already expired in the
// meantime is a no-op, so repeated passes never refund twice.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.clock.Now()

	ids, err := s.repo.ListOverdueWaitingIDs(ctx, now, sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list overdue orders: %w", err)
	}

	expired := 0
	for _, id := range ids {
		creatorID, refunded, err := s.expireOne(ctx, id, now)
		if err != nil {
			// One stuck order must not stall the rest of the pass.
			s.logger.Error("expire order failed", zap.String("order_id", id), zap.Error(err))
			continue
		}
		if creatorID == "" {
			continue
		}

		expired++
		metrics.OrdersExpired.Inc()
		s.logger.Info("order expired",
			zap.String("order_id", id),
			zap.String("creator_id", creatorID),
			zap.Int("refunded", refunded),
		)
		s.notifier.Notify(ctx, creatorID,
			"Match failed",
			fmt.Sprintf("Order #%s was not matched before the deadline and has been cancelled. Your credit was refunded.", id))
	}
	return expired, nil
}

func (s *Sweeper) expireOne(ctx context.Context, orderID string, now time.Time) (creatorID string, refunded int, err error) {
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, orderID)
		if err != nil {
			if errors.Is(err, domain.ErrOrderNotFound) {
				return nil
			}
			return err
		}
		if order.Status != domain.OrderStatusWaiting || order.ExpiresAt.After(now) {
			return nil
		}

		if err := s.repo.RefundCredit(txCtx, order.CreatorID, order.OwnerPaidAmount); err != nil {
			return err
		}
		if err := s.repo.UpdateOrderStatus(txCtx, order.ID, domain.OrderStatusWaiting, domain.OrderStatusExpired); err != nil {
			return err
		}

		creatorID = order.CreatorID
		refunded = order.OwnerPaidAmount
		return nil
	})
	return creatorID, refunded, err
}
