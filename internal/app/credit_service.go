package app

import (
	"context"

	"github.com/Suya12/cloud-computing-project/internal/domain"
)

type CreditRepository interface {
	AddCredit(ctx context.Context, userID string, amount int) (int, error)
	GetCredit(ctx context.Context, userID string) (int, error)
}

// CreditService exposes the manual top-up and balance lookup. Charges and
// refunds run inside order transactions and never go through here.
type CreditService struct {
	repo CreditRepository
}

func NewCreditService(repo CreditRepository) *CreditService {
	return &CreditService{repo: repo}
}

// AddCredit tops up a balance and returns the new total.
func (s *CreditService) AddCredit(ctx context.Context, userID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.repo.AddCredit(ctx, userID, amount)
}

func (s *CreditService) GetCredit(ctx context.Context, userID string) (int, error) {
	return s.repo.GetCredit(ctx, userID)
}
