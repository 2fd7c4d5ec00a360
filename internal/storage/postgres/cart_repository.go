package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func listCartItems(ctx context.Context, pool *pgxpool.Pool, userID string) ([]domain.CartItem, error) {
	const q = `
SELECT user_id, store_id, menu_id, menu_name, price
FROM cart_items
WHERE user_id = $1
ORDER BY menu_id`

	rows, err := query(ctx, pool, q, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var out []domain.CartItem
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.UserID, &it.StoreID, &it.MenuID, &it.MenuName, &it.Price); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CartRepository) ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	return listCartItems(ctx, r.pool, userID)
}

func (r *CartRepository) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return getUser(ctx, r.pool, userID)
}

func (r *CartRepository) GetStore(ctx context.Context, storeID string) (domain.Store, error) {
	return getStore(ctx, r.pool, storeID)
}

func (r *CartRepository) GetMenu(ctx context.Context, storeID, menuID string) (domain.Menu, error) {
	const q = `SELECT id, store_id, name, price FROM menus WHERE id = $1 AND store_id = $2`

	var m domain.Menu
	err := queryRow(ctx, r.pool, q, menuID, storeID).Scan(&m.ID, &m.StoreID, &m.Name, &m.Price)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Menu{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Menu{}, domain.ErrMenuNotFound
		}
		return domain.Menu{}, fmt.Errorf("get menu: %w", err)
	}
	return m, nil
}

// UpsertCartItem refreshes the snapshot when the menu is already staged.
func (r *CartRepository) UpsertCartItem(ctx context.Context, item domain.CartItem) error {
	const stmt = `
INSERT INTO cart_items (user_id, store_id, menu_id, menu_name, price)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, menu_id)
DO UPDATE SET store_id = EXCLUDED.store_id, menu_name = EXCLUDED.menu_name, price = EXCLUDED.price`

	_, err := exec(ctx, r.pool, stmt, item.UserID, item.StoreID, item.MenuID, item.MenuName, item.Price)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) DeleteCartItem(ctx context.Context, userID, menuID string) error {
	const stmt = `DELETE FROM cart_items WHERE user_id = $1 AND menu_id = $2`

	tag, err := exec(ctx, r.pool, stmt, userID, menuID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}
