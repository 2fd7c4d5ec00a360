package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// StoreRepository serves the read-only catalog.
type StoreRepository struct {
	pool *pgxpool.Pool
}

func NewStoreRepository(pool *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

const storeColumns = `id, name, category, location, latitude, longitude, minimum_order, delivery_tip, delivery_delay`

func getStore(ctx context.Context, pool *pgxpool.Pool, storeID string) (domain.Store, error) {
	q := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	var s domain.Store
	err := queryRow(ctx, pool, q, storeID).Scan(
		&s.ID, &s.Name, &s.Category, &s.Location,
		&s.Latitude, &s.Longitude, &s.MinimumOrder, &s.DeliveryTip, &s.DeliveryDelay,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Store{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Store{}, domain.ErrStoreNotFound
		}
		return domain.Store{}, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

func (r *StoreRepository) GetStore(ctx context.Context, storeID string) (domain.Store, error) {
	return getStore(ctx, r.pool, storeID)
}

func (r *StoreRepository) ListStoresByCategory(ctx context.Context, category string) ([]domain.Store, error) {
	q := `SELECT ` + storeColumns + ` FROM stores WHERE category = $1 ORDER BY name`

	rows, err := query(ctx, r.pool, q, category)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var out []domain.Store
	for rows.Next() {
		var s domain.Store
		err := rows.Scan(
			&s.ID, &s.Name, &s.Category, &s.Location,
			&s.Latitude, &s.Longitude, &s.MinimumOrder, &s.DeliveryTip, &s.DeliveryDelay,
		)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StoreRepository) ListMenus(ctx context.Context, storeID string) ([]domain.Menu, error) {
	const q = `SELECT id, store_id, name, price FROM menus WHERE store_id = $1 ORDER BY name`

	rows, err := query(ctx, r.pool, q, storeID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var out []domain.Menu
	for rows.Next() {
		var m domain.Menu
		if err := rows.Scan(&m.ID, &m.StoreID, &m.Name, &m.Price); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
