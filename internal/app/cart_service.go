package app

import (
	"context"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

type CartRepository interface {
	GetUser(ctx context.Context, userID string) (domain.User, error)
	GetStore(ctx context.Context, storeID string) (domain.Store, error)
	GetMenu(ctx context.Context, storeID, menuID string) (domain.Menu, error)
	ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error)
	UpsertCartItem(ctx context.Context, item domain.CartItem) error
	DeleteCartItem(ctx context.Context, userID, menuID string) error
}

// CartService stages menu selections before an order commits. Carts are
// single-store; the drain step of create/match consumes them.
type CartService struct {
	repo CartRepository
}

func NewCartService(repo CartRepository) *CartService {
	return &CartService{repo: repo}
}

// AddItem stages a menu with its price snapshotted from the catalog. Adding a
// menu already in the cart refreshes the snapshot instead of duplicating it.
func (s *CartService) AddItem(ctx context.Context, userID, storeID, menuID string) (domain.CartItem, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if _, err := s.repo.GetStore(ctx, storeID); err != nil {
		return domain.CartItem{}, err
	}
	menu, err := s.repo.GetMenu(ctx, storeID, menuID)
	if err != nil {
		return domain.CartItem{}, err
	}

	cart, err := s.repo.ListCartItems(ctx, user.ID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if len(cart) > 0 && cart[0].StoreID != storeID {
		return domain.CartItem{}, domain.ErrCartStoreMismatch
	}

	item := domain.CartItem{
		UserID:   user.ID,
		StoreID:  storeID,
		MenuID:   menu.ID,
		MenuName: menu.Name,
		Price:    menu.Price,
	}
	if err := s.repo.UpsertCartItem(ctx, item); err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, menuID string) error {
	return s.repo.DeleteCartItem(ctx, userID, menuID)
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	return s.repo.ListCartItems(ctx, userID)
}
