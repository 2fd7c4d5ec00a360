package app

import (
	"context"
	"sort"
	"time"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// fakeRepo implements every repository interface in this package against
// in-memory maps. WithTx runs the function directly; transactional rollback
// is exercised by the postgres integration tests.
type fakeRepo struct {
	users  map[string]*domain.User
	stores map[string]domain.Store
	menus  map[string]domain.Menu
	carts  map[string][]domain.CartItem
	orders map[string]*domain.Order
	notes  []domain.Notification

	// statusConflict makes UpdateOrderStatus fail as if a concurrent
	// transition won the race.
	statusConflict bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  make(map[string]*domain.User),
		stores: make(map[string]domain.Store),
		menus:  make(map[string]domain.Menu),
		carts:  make(map[string][]domain.CartItem),
		orders: make(map[string]*domain.Order),
	}
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeRepo) GetUser(_ context.Context, userID string) (domain.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *u, nil
}

func (f *fakeRepo) ListCartItems(_ context.Context, userID string) ([]domain.CartItem, error) {
	return append([]domain.CartItem(nil), f.carts[userID]...), nil
}

func (f *fakeRepo) ClearCart(_ context.Context, userID string) error {
	delete(f.carts, userID)
	return nil
}

func (f *fakeRepo) GetStore(_ context.Context, storeID string) (domain.Store, error) {
	s, ok := f.stores[storeID]
	if !ok {
		return domain.Store{}, domain.ErrStoreNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetMenu(_ context.Context, storeID, menuID string) (domain.Menu, error) {
	m, ok := f.menus[menuID]
	if !ok || m.StoreID != storeID {
		return domain.Menu{}, domain.ErrMenuNotFound
	}
	return m, nil
}

func (f *fakeRepo) UpsertCartItem(_ context.Context, item domain.CartItem) error {
	cart := f.carts[item.UserID]
	for i, it := range cart {
		if it.MenuID == item.MenuID {
			cart[i] = item
			return nil
		}
	}
	f.carts[item.UserID] = append(cart, item)
	return nil
}

func (f *fakeRepo) DeleteCartItem(_ context.Context, userID, menuID string) error {
	cart := f.carts[userID]
	for i, it := range cart {
		if it.MenuID == menuID {
			f.carts[userID] = append(cart[:i], cart[i+1:]...)
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

func (f *fakeRepo) DebitCredit(_ context.Context, userID string, amount int) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.Credit < amount {
		return domain.ErrInsufficientCredit
	}
	u.Credit -= amount
	return nil
}

func (f *fakeRepo) RefundCredit(_ context.Context, userID string, amount int) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Credit += amount
	return nil
}

func (f *fakeRepo) AddCredit(_ context.Context, userID string, amount int) (int, error) {
	u, ok := f.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Credit += amount
	return u.Credit, nil
}

func (f *fakeRepo) GetCredit(_ context.Context, userID string) (int, error) {
	u, ok := f.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return u.Credit, nil
}

func (f *fakeRepo) CreateOrder(_ context.Context, order domain.Order) error {
	stored := order
	stored.Items = append([]domain.OrderItem(nil), order.Items...)
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeRepo) GetOrder(_ context.Context, orderID string) (domain.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	out := *o
	out.Items = append([]domain.OrderItem(nil), o.Items...)
	return out, nil
}

func (f *fakeRepo) GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error) {
	return f.GetOrder(ctx, orderID)
}

func (f *fakeRepo) ListOrderItems(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return append([]domain.OrderItem(nil), o.Items...), nil
}

func (f *fakeRepo) AddOrderItems(_ context.Context, items []domain.OrderItem) error {
	for _, it := range items {
		o, ok := f.orders[it.OrderID]
		if !ok {
			return domain.ErrOrderNotFound
		}
		o.Items = append(o.Items, it)
	}
	return nil
}

func (f *fakeRepo) UpdateOrderStatus(_ context.Context, orderID string, from, to domain.OrderStatus) error {
	if f.statusConflict {
		return domain.ErrOrderNotJoinable
	}
	o, ok := f.orders[orderID]
	if !ok || o.Status != from {
		return domain.ErrOrderNotJoinable
	}
	o.Status = to
	return nil
}

func (f *fakeRepo) ListWaitingByCategory(_ context.Context, category string) ([]WaitingOrder, error) {
	var out []WaitingOrder
	for _, o := range f.orders {
		if o.Status != domain.OrderStatusWaiting {
			continue
		}
		store, ok := f.stores[o.StoreID]
		if !ok || store.Category != category {
			continue
		}
		out = append(out, WaitingOrder{Order: *o, Store: store})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Order.CreatedAt.After(out[j].Order.CreatedAt)
	})
	return out, nil
}

func (f *fakeRepo) ListByParticipant(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.Status != domain.OrderStatusWaiting && o.Status != domain.OrderStatusMatched {
			continue
		}
		member := o.CreatorID == userID
		for _, it := range o.Items {
			if it.UserID == userID {
				member = true
			}
		}
		if member {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListOverdueWaitingIDs(_ context.Context, now time.Time, limit int) ([]string, error) {
	var ids []string
	for id, o := range f.orders {
		if o.Status == domain.OrderStatusWaiting && !o.ExpiresAt.After(now) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, user domain.User) error {
	stored := user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeRepo) UpdateUserAddress(_ context.Context, userID, address, detailedAddress string, lat, lng float64) error {
	u, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Address = address
	u.DetailedAddress = detailedAddress
	u.Latitude = &lat
	u.Longitude = &lng
	return nil
}

func (f *fakeRepo) CreateNotification(_ context.Context, n domain.Notification) error {
	f.notes = append(f.notes, n)
	return nil
}

func (f *fakeRepo) ListNotificationsByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	sent []sentNotification
}

type sentNotification struct {
	UserID  string
	Title   string
	Message string
}

func (r *recordingNotifier) Notify(_ context.Context, userID, title, message string) {
	r.sent = append(r.sent, sentNotification{UserID: userID, Title: title, Message: message})
}
