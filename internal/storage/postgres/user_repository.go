package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, name, credit, address, detailed_address, latitude, longitude`

func getUser(ctx context.Context, pool *pgxpool.Pool, userID string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u domain.User
	err := queryRow(ctx, pool, q, userID).Scan(
		&u.ID, &u.Email, &u.Name, &u.Credit,
		&u.Address, &u.DetailedAddress, &u.Latitude, &u.Longitude,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.User{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return getUser(ctx, r.pool, userID)
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u domain.User
	err := queryRow(ctx, r.pool, q, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Credit,
		&u.Address, &u.DetailedAddress, &u.Latitude, &u.Longitude,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user domain.User) error {
	const stmt = `
INSERT INTO users (id, email, name, credit, address, detailed_address, latitude, longitude)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := exec(ctx, r.pool, stmt,
		user.ID, user.Email, user.Name, user.Credit,
		user.Address, user.DetailedAddress, user.Latitude, user.Longitude,
	)
	if err != nil {
		// Unique email violations surface here; the service re-reads by email
		// so concurrent registrations stay idempotent.
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateUserAddress(ctx context.Context, userID, address, detailedAddress string, lat, lng float64) error {
	const stmt = `
UPDATE users
SET address = $2, detailed_address = $3, latitude = $4, longitude = $5
WHERE id = $1`

	tag, err := exec(ctx, r.pool, stmt, userID, address, detailedAddress, lat, lng)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update user address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
