package app

import (
	"context"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

type StoreRepository interface {
	GetStore(ctx context.Context, storeID string) (domain.Store, error)
	ListStoresByCategory(ctx context.Context, category string) ([]domain.Store, error)
	ListMenus(ctx context.Context, storeID string) ([]domain.Menu, error)
}

// StoreService is the read-only catalog collaborator.
type StoreService struct {
	repo StoreRepository
}

func NewStoreService(repo StoreRepository) *StoreService {
	return &StoreService{repo: repo}
}

func (s *StoreService) GetStoreWithMenus(ctx context.Context, storeID string) (domain.Store, []domain.Menu, error) {
	store, err := s.repo.GetStore(ctx, storeID)
	if err != nil {
		return domain.Store{}, nil, err
	}
	menus, err := s.repo.ListMenus(ctx, storeID)
	if err != nil {
		return domain.Store{}, nil, err
	}
	return store, menus, nil
}

func (s *StoreService) ListByCategory(ctx context.Context, category string) ([]domain.Store, error) {
	return s.repo.ListStoresByCategory(ctx, category)
}
