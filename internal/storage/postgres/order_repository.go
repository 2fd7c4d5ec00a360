package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suya12/cloud-computing-project/internal/app"
	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// OrderRepository backs the order, match, and sweep services. Per-order
// mutual exclusion comes from FOR UPDATE row locks taken inside WithTx.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const orderColumns = `id, creator_id, store_id, delivery_location, detailed_location,
delivery_lat, delivery_lng, split_type, owner_paid_amount, status, created_at, expires_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var split, status string
	err := row.Scan(
		&o.ID,
		&o.CreatorID,
		&o.StoreID,
		&o.DeliveryLocation,
		&o.DetailedLocation,
		&o.DeliveryLat,
		&o.DeliveryLng,
		&split,
		&o.OwnerPaidAmount,
		&status,
		&o.CreatedAt,
		&o.ExpiresAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	o.SplitType = domain.SplitType(split)
	o.Status = domain.OrderStatus(status)
	return o, nil
}

func (r *OrderRepository) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return getUser(ctx, r.pool, userID)
}

func (r *OrderRepository) GetStore(ctx context.Context, storeID string) (domain.Store, error) {
	return getStore(ctx, r.pool, storeID)
}

func (r *OrderRepository) ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	return listCartItems(ctx, r.pool, userID)
}

func (r *OrderRepository) ClearCart(ctx context.Context, userID string) error {
	if _, err := exec(ctx, r.pool, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *OrderRepository) DebitCredit(ctx context.Context, userID string, amount int) error {
	const stmt = `UPDATE users SET credit = credit - $2 WHERE id = $1 AND credit >= $2`

	tag, err := exec(ctx, r.pool, stmt, userID, amount)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("debit credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := queryRow(ctx, r.pool, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return fmt.Errorf("debit credit: %w", err)
		}
		if !exists {
			return domain.ErrUserNotFound
		}
		return domain.ErrInsufficientCredit
	}
	return nil
}

func (r *OrderRepository) RefundCredit(ctx context.Context, userID string, amount int) error {
	const stmt = `UPDATE users SET credit = credit + $2 WHERE id = $1`

	tag, err := exec(ctx, r.pool, stmt, userID, amount)
	if err != nil {
		return fmt.Errorf("refund credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const stmt = `
INSERT INTO orders (id, creator_id, store_id, delivery_location, detailed_location,
	delivery_lat, delivery_lng, split_type, owner_paid_amount, status, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := exec(ctx, r.pool, stmt,
		order.ID,
		order.CreatorID,
		order.StoreID,
		order.DeliveryLocation,
		order.DetailedLocation,
		order.DeliveryLat,
		order.DeliveryLng,
		string(order.SplitType),
		order.OwnerPaidAmount,
		string(order.Status),
		order.CreatedAt,
		order.ExpiresAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create order: %w", err)
	}
	return r.AddOrderItems(ctx, order.Items)
}

func (r *OrderRepository) AddOrderItems(ctx context.Context, items []domain.OrderItem) error {
	const stmt = `
INSERT INTO order_items (order_id, user_id, menu_id, menu_name, price)
VALUES ($1, $2, $3, $4, $5)`

	for _, it := range items {
		if _, err := exec(ctx, r.pool, stmt, it.OrderID, it.UserID, it.MenuID, it.MenuName, it.Price); err != nil {
			return fmt.Errorf("add order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := r.getOrder(ctx, orderID, false)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := r.ListOrderItems(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items
	return order, nil
}

func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error) {
	return r.getOrder(ctx, orderID, true)
}

func (r *OrderRepository) getOrder(ctx context.Context, orderID string, forUpdate bool) (domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}

	order, err := scanOrder(queryRow(ctx, r.pool, q, orderID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (r *OrderRepository) ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT order_id, user_id, menu_id, menu_name, price
FROM order_items
WHERE order_id = $1
ORDER BY user_id, menu_id`

	rows, err := query(ctx, r.pool, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.OrderID, &it.UserID, &it.MenuID, &it.MenuName, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateOrderStatus transitions only when the current status matches; the
// caller interprets a missed transition as losing the race.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	const stmt = `UPDATE orders SET status = $3 WHERE id = $1 AND status = $2`

	tag, err := exec(ctx, r.pool, stmt, orderID, string(from), string(to))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotJoinable
	}
	return nil
}

func (r *OrderRepository) ListWaitingByCategory(ctx context.Context, category string) ([]app.WaitingOrder, error) {
	q := `
SELECT o.id, o.creator_id, o.store_id, o.delivery_location, o.detailed_location,
	o.delivery_lat, o.delivery_lng, o.split_type, o.owner_paid_amount, o.status, o.created_at, o.expires_at,
	s.id, s.name, s.category, s.location, s.latitude, s.longitude, s.minimum_order, s.delivery_tip, s.delivery_delay
FROM orders o
JOIN stores s ON s.id = o.store_id
WHERE o.status = 'waiting' AND s.category = $1
ORDER BY o.created_at DESC`

	rows, err := query(ctx, r.pool, q, category)
	if err != nil {
		return nil, fmt.Errorf("list waiting orders: %w", err)
	}
	defer rows.Close()

	var out []app.WaitingOrder
	for rows.Next() {
		var o domain.Order
		var s domain.Store
		var split, status string
		err := rows.Scan(
			&o.ID, &o.CreatorID, &o.StoreID, &o.DeliveryLocation, &o.DetailedLocation,
			&o.DeliveryLat, &o.DeliveryLng, &split, &o.OwnerPaidAmount, &status, &o.CreatedAt, &o.ExpiresAt,
			&s.ID, &s.Name, &s.Category, &s.Location, &s.Latitude, &s.Longitude, &s.MinimumOrder, &s.DeliveryTip, &s.DeliveryDelay,
		)
		if err != nil {
			return nil, fmt.Errorf("scan waiting order: %w", err)
		}
		o.SplitType = domain.SplitType(split)
		o.Status = domain.OrderStatus(status)
		out = append(out, app.WaitingOrder{Order: o, Store: s})
	}
	return out, rows.Err()
}

func (r *OrderRepository) ListByParticipant(ctx context.Context, userID string) ([]domain.Order, error) {
	q := `
SELECT ` + orderColumns + `
FROM orders
WHERE status IN ('waiting', 'matched')
	AND (creator_id = $1 OR EXISTS (
		SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.user_id = $1
	))
ORDER BY created_at DESC`

	rows, err := query(ctx, r.pool, q, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list orders by participant: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			if isInvalidUUID(err) {
				return nil, domain.ErrInvalidID
			}
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, order)
	}
	return out, rows.Err()
}

func (r *OrderRepository) ListOverdueWaitingIDs(ctx context.Context, now time.Time, limit int) ([]string, error) {
	const q = `
SELECT id FROM orders
WHERE status = 'waiting' AND expires_at <= $1
ORDER BY expires_at
LIMIT $2`

	rows, err := query(ctx, r.pool, q, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list overdue orders: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
