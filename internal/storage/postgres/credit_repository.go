package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

// CreditRepository serves the manual top-up and balance lookup endpoints.
// Order-flow charges and refunds live on OrderRepository so they share the
// order transaction.
type CreditRepository struct {
	pool *pgxpool.Pool
}

func NewCreditRepository(pool *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{pool: pool}
}

func (r *CreditRepository) AddCredit(ctx context.Context, userID string, amount int) (int, error) {
	const stmt = `UPDATE users SET credit = credit + $2 WHERE id = $1 RETURNING credit`

	var balance int
	err := queryRow(ctx, r.pool, stmt, userID, amount).Scan(&balance)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("add credit: %w", err)
	}
	return balance, nil
}

func (r *CreditRepository) GetCredit(ctx context.Context, userID string) (int, error) {
	const q = `SELECT credit FROM users WHERE id = $1`

	var balance int
	err := queryRow(ctx, r.pool, q, userID).Scan(&balance)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("get credit: %w", err)
	}
	return balance, nil
}
