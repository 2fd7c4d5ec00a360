package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Suya12/cloud-computing-project/internal/clock"
	"github.com/Suya12/cloud-computing-project/internal/domain"
	"github.com/Suya12/cloud-computing-project/internal/metrics"
)

type MatchRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error)
	ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	GetUser(ctx context.Context, userID string) (domain.User, error)
	ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error)
	ClearCart(ctx context.Context, userID string) error
	GetStore(ctx context.Context, storeID string) (domain.Store, error)
	DebitCredit(ctx context.Context, userID string, amount int) error
	AddOrderItems(ctx context.Context, items []domain.OrderItem) error
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error
}

// MatchService commits the second participant into a waiting order. The order
// row lock makes the whole step mutually exclusive per order: a concurrent
// match or sweep holds the lock first and the loser sees ErrOrderNotJoinable.
type MatchService struct {
	repo     MatchRepository
	clock    clock.Clock
	notifier Notifier
	logger   *zap.Logger
}

func NewMatchService(repo MatchRepository, clk clock.Clock, notifier Notifier, logger *zap.Logger) *MatchService {
	return &MatchService{
		repo:     repo,
		clock:    clk,
		notifier: notifier,
		logger:   logger,
	}
}

type MatchOrderInput struct {
	OrderID       string
	MatchedUserID string
}

func (s *MatchService) MatchOrder(ctx context.Context, in MatchOrderInput) (domain.Order, error) {
	now := s.clock.Now()
	var matched domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, in.OrderID)
		if err != nil {
			return err
		}
		if order.Status != domain.OrderStatusWaiting || !order.ExpiresAt.After(now) {
			return domain.ErrOrderNotJoinable
		}
		if in.MatchedUserID == order.CreatorID {
			return domain.ErrSelfMatch
		}

		joiner, err := s.repo.GetUser(txCtx, in.MatchedUserID)
		if err != nil {
			return err
		}

		cart, err := s.repo.ListCartItems(txCtx, joiner.ID)
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return domain.ErrEmptyCart
		}
		if cart[0].StoreID != order.StoreID {
			return domain.ErrCartStoreMismatch
		}

		store, err := s.repo.GetStore(txCtx, order.StoreID)
		if err != nil {
			return err
		}

		existing, err := s.repo.ListOrderItems(txCtx, order.ID)
		if err != nil {
			return err
		}
		existingTotal := 0
		for _, it := range existing {
			existingTotal += it.Price
		}
		joinerTotal := 0
		for _, it := range cart {
			joinerTotal += it.Price
		}
		if existingTotal+joinerTotal < store.MinimumOrder {
			return domain.ErrBelowMinimumOrder
		}

		charge := joinerCharge(joinerTotal, store.DeliveryTip, order.SplitType)
		if err := s.repo.DebitCredit(txCtx, joiner.ID, charge); err != nil {
			return err
		}

		items := make([]domain.OrderItem, 0, len(cart))
		for _, it := range cart {
			items = append(items, domain.OrderItem{
				OrderID:  order.ID,
				UserID:   joiner.ID,
				MenuID:   it.MenuID,
				MenuName: it.MenuName,
				Price:    it.Price,
			})
		}
		if err := s.repo.AddOrderItems(txCtx, items); err != nil {
			return err
		}
		if err := s.repo.ClearCart(txCtx, joiner.ID); err != nil {
			return err
		}
		// Guarded transition: a concurrent winner already moved the order out
		// of waiting, in which case this reports ErrOrderNotJoinable.
		if err := s.repo.UpdateOrderStatus(txCtx, order.ID, domain.OrderStatusWaiting, domain.OrderStatusMatched); err != nil {
			return err
		}

		order.Status = domain.OrderStatusMatched
		order.Items = append(existing, items...)
		matched = order
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotJoinable) {
			metrics.MatchConflicts.Inc()
		}
		s.notifyMatchFailed(ctx, in, err)
		return domain.Order{}, err
	}

	metrics.OrdersMatched.Inc()
	s.logger.Info("order matched",
		zap.String("order_id", matched.ID),
		zap.String("creator_id", matched.CreatorID),
		zap.String("matched_user_id", in.MatchedUserID),
	)
	s.notifier.Notify(ctx, matched.CreatorID,
		"Match succeeded",
		fmt.Sprintf("Order #%s was matched successfully.", matched.ID))
	s.notifier.Notify(ctx, in.MatchedUserID,
		"Match succeeded",
		fmt.Sprintf("You joined order #%s.", matched.ID))

	return matched, nil
}

func (s *MatchService) notifyMatchFailed(ctx context.Context, in MatchOrderInput, cause error) {
	switch {
	case errors.Is(cause, domain.ErrOrderNotJoinable),
		errors.Is(cause, domain.ErrInsufficientCredit),
		errors.Is(cause, domain.ErrEmptyCart),
		errors.Is(cause, domain.ErrCartStoreMismatch),
		errors.Is(cause, domain.ErrBelowMinimumOrder),
		errors.Is(cause, domain.ErrSelfMatch):
		s.notifier.Notify(ctx, in.MatchedUserID,
			"Match failed",
			fmt.Sprintf("Could not join order #%s: %s.", in.OrderID, cause))
	}
}
