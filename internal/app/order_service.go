package app

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Suya12/cloud-computing-project/internal/clock"
	"github.com/Suya12/cloud-computing-project/internal/domain"
	"github.com/Suya12/cloud-computing-project/internal/geo"
	"github.com/Suya12/cloud-computing-project/internal/metrics"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetUser(ctx context.Context, userID string) (domain.User, error)
	ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error)
	ClearCart(ctx context.Context, userID string) error
	GetStore(ctx context.Context, storeID string) (domain.Store, error)
	DebitCredit(ctx context.Context, userID string, amount int) error
	RefundCredit(ctx context.Context, userID string, amount int) error
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error
	ListWaitingByCategory(ctx context.Context, category string) ([]WaitingOrder, error)
	ListByParticipant(ctx context.Context, userID string) ([]domain.Order, error)
}

// WaitingOrder pairs a joinable order with its store for listings.
type WaitingOrder struct {
	Order domain.Order
	Store domain.Store
}

type OrderService struct {
	repo       OrderRepository
	clock      clock.Clock
	logger     *zap.Logger
	window     time.Duration
	listRadius float64
}

const (
	defaultMatchWindow = 30 * time.Minute
	defaultListRadius  = 300 // meters
)

func NewOrderService(repo OrderRepository, clk clock.Clock, logger *zap.Logger, opts ...OrderServiceOption) *OrderService {
	svc := &OrderService{
		repo:       repo,
		clock:      clk,
		logger:     logger,
		window:     defaultMatchWindow,
		listRadius: defaultListRadius,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderServiceOption func(*OrderService)

// WithMatchWindow overrides how long a new order stays joinable.
func WithMatchWindow(d time.Duration) OrderServiceOption {
	return func(s *OrderService) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithListRadius overrides the proximity-filter radius in meters.
func WithListRadius(m float64) OrderServiceOption {
	return func(s *OrderService) {
		if m > 0 {
			s.listRadius = m
		}
	}
}

type CreateOrderInput struct {
	CreatorID        string
	StoreID          string // optional; must agree with the cart when set
	SplitType        domain.SplitType
	DeliveryLocation string
	DetailedLocation string
	DeliveryLat      *float64
	DeliveryLng      *float64
}

// CreateOrder drains the creator's cart into a new waiting order and charges
// the creator's credit. All three effects happen in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	if !in.SplitType.Valid() {
		return domain.Order{}, domain.ErrInvalidSplitType
	}

	now := s.clock.Now()
	var created domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		user, err := s.repo.GetUser(txCtx, in.CreatorID)
		if err != nil {
			return err
		}

		cart, err := s.repo.ListCartItems(txCtx, user.ID)
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return domain.ErrEmptyCart
		}

		storeID := cart[0].StoreID
		if in.StoreID != "" && in.StoreID != storeID {
			return domain.ErrCartStoreMismatch
		}

		store, err := s.repo.GetStore(txCtx, storeID)
		if err != nil {
			return err
		}

		total := 0
		for _, it := range cart {
			total += it.Price
		}
		charge := creatorCharge(total, store.DeliveryTip, in.SplitType)

		if err := s.repo.DebitCredit(txCtx, user.ID, charge); err != nil {
			return err
		}

		order := domain.Order{
			ID:               newID(),
			CreatorID:        user.ID,
			StoreID:          storeID,
			DeliveryLocation: in.DeliveryLocation,
			DetailedLocation: in.DetailedLocation,
			DeliveryLat:      in.DeliveryLat,
			DeliveryLng:      in.DeliveryLng,
			SplitType:        in.SplitType,
			OwnerPaidAmount:  charge,
			Status:           domain.OrderStatusWaiting,
			CreatedAt:        now,
			ExpiresAt:        now.Add(s.window),
		}
		order.Items = make([]domain.OrderItem, 0, len(cart))
		for _, it := range cart {
			order.Items = append(order.Items, domain.OrderItem{
				OrderID:  order.ID,
				UserID:   user.ID,
				MenuID:   it.MenuID,
				MenuName: it.MenuName,
				Price:    it.Price,
			})
		}

		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			return err
		}
		if err := s.repo.ClearCart(txCtx, user.ID); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	metrics.OrdersCreated.Inc()
	s.logger.Info("order created",
		zap.String("order_id", created.ID),
		zap.String("creator_id", created.CreatorID),
		zap.String("store_id", created.StoreID),
		zap.Int("owner_paid_amount", created.OwnerPaidAmount),
	)
	return created, nil
}

// OrderDetail is the read-only projection served to clients.
type OrderDetail struct {
	Order         domain.Order
	StoreName     string
	StoreCategory string
	// Matched is derived from distinct participant ids for display; status is
	// the source of truth for every decision.
	Matched          bool
	RemainingSeconds int
	// PaidAmounts maps participant id to the amount charged to them.
	PaidAmounts map[string]int
}

func (s *OrderService) GetOrderDetail(ctx context.Context, orderID string) (OrderDetail, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return OrderDetail{}, err
	}
	store, err := s.repo.GetStore(ctx, order.StoreID)
	if err != nil {
		return OrderDetail{}, err
	}

	detail := OrderDetail{
		Order:         order,
		StoreName:     store.Name,
		StoreCategory: store.Category,
		PaidAmounts:   map[string]int{order.CreatorID: order.OwnerPaidAmount},
	}

	if order.Status == domain.OrderStatusWaiting {
		if remaining := order.ExpiresAt.Sub(s.clock.Now()); remaining > 0 {
			detail.RemainingSeconds = int(remaining.Seconds())
		}
	}

	for _, id := range order.ParticipantIDs() {
		if id == order.CreatorID {
			continue
		}
		detail.Matched = true
		joinerTotal := 0
		for _, it := range order.Items {
			if it.UserID == id {
				joinerTotal += it.Price
			}
		}
		detail.PaidAmounts[id] = joinerCharge(joinerTotal, store.DeliveryTip, order.SplitType)
	}

	return detail, nil
}

// DeleteOrder cancels a waiting order and refunds the creator's charge. Only
// the creator may cancel, and only before a match commits.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID, requestingUserID string) error {
	var creatorID string
	var refund int

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}
		if order.CreatorID != requestingUserID {
			return domain.ErrForbidden
		}
		if order.Status != domain.OrderStatusWaiting {
			return domain.ErrOrderNotJoinable
		}

		if err := s.repo.RefundCredit(txCtx, order.CreatorID, order.OwnerPaidAmount); err != nil {
			return err
		}
		if err := s.repo.UpdateOrderStatus(txCtx, order.ID, domain.OrderStatusWaiting, domain.OrderStatusCancelled); err != nil {
			return err
		}

		creatorID = order.CreatorID
		refund = order.OwnerPaidAmount
		return nil
	})
	if err != nil {
		return err
	}

	metrics.OrdersCancelled.Inc()
	s.logger.Info("order cancelled",
		zap.String("order_id", orderID),
		zap.String("creator_id", creatorID),
		zap.Int("refunded", refund),
	)
	return nil
}

// OrderListing is one entry of a category listing; DistanceMeters is set only
// when the caller supplied coordinates.
type OrderListing struct {
	Order          domain.Order
	StoreName      string
	DistanceMeters *float64
}

// ListOrdersByCategory returns waiting orders whose store matches the
// category. With coordinates the result is filtered to the configured radius
// and sorted nearest first; otherwise it is newest first.
func (s *OrderService) ListOrdersByCategory(ctx context.Context, category string, lat, lng *float64) ([]OrderListing, error) {
	waiting, err := s.repo.ListWaitingByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	listings := make([]OrderListing, 0, len(waiting))
	for _, w := range waiting {
		entry := OrderListing{Order: w.Order, StoreName: w.Store.Name}
		if lat != nil && lng != nil {
			d := geo.Distance(lat, lng, w.Store.Latitude, w.Store.Longitude)
			if d > s.listRadius {
				continue
			}
			entry.DistanceMeters = &d
		}
		listings = append(listings, entry)
	}

	if lat != nil && lng != nil {
		sort.Slice(listings, func(i, j int) bool {
			return *listings[i].DistanceMeters < *listings[j].DistanceMeters
		})
	}
	return listings, nil
}

// ListUserOrders returns waiting and matched orders where the user is the
// creator or a matched participant.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByParticipant(ctx, userID)
}
