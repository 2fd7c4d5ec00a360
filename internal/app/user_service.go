package app

import (
	"context"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

type UserRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, userID string) (domain.User, error)
	UpdateUserAddress(ctx context.Context, userID, address, detailedAddress string, lat, lng float64) error
}

// UserService keeps the verified identity records. Credential verification
// happens upstream; registration here is idempotent by email.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

type RegisterUserInput struct {
	Email string
	Name  string
}

func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (domain.User, error) {
	if in.Email == "" {
		return domain.User{}, domain.ErrEmailRequired
	}

	if existing, err := s.repo.FindUserByEmail(ctx, in.Email); err != nil {
		return domain.User{}, err
	} else if existing != nil {
		return *existing, nil
	}

	user := domain.User{
		ID:    newID(),
		Email: in.Email,
		Name:  in.Name,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// A concurrent registration with the same email may have won; return
		// that row instead of surfacing the conflict.
		if existing, ferr := s.repo.FindUserByEmail(ctx, in.Email); ferr == nil && existing != nil {
			return *existing, nil
		}
		return domain.User{}, err
	}
	return user, nil
}

type UpdateAddressInput struct {
	Address         string
	DetailedAddress string
	Latitude        float64
	Longitude       float64
}

func (s *UserService) UpdateAddress(ctx context.Context, userID string, in UpdateAddressInput) error {
	return s.repo.UpdateUserAddress(ctx, userID, in.Address, in.DetailedAddress, in.Latitude, in.Longitude)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.repo.GetUser(ctx, userID)
}
