package service

import (
	"context"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
	"librarium-backend/internal/utils"
)

type overdueQueryService struct {
	store repository.Store
}

func NewOverdueQueryService(store repository.Store) OverdueQueryService {
	return &overdueQueryService{store: store}
}

func (s *overdueQueryService) ListOverdue(ctx context.Context) ([]domain.OverdueLoan, error) {
	loans, err := s.store.Loans().ListOverdue(ctx)
	if err != nil {
		return nil, domain.StoreError("list overdue loans", err)
	}
	return annotateFees(loans), nil
}

func (s *overdueQueryService) ListOverdueByUser(ctx context.Context, userID int64) ([]domain.OverdueLoan, error) {
	loans, err := s.store.Loans().ListOverdueByUser(ctx, userID)
	if err != nil {
		return nil, domain.StoreError("list overdue loans by user", err)
	}
	return annotateFees(loans), nil
}

// annotateFees fills in the fee accrued so far from the day count the query
// computed and the borrower's daily rate.
func annotateFees(loans []domain.OverdueLoan) []domain.OverdueLoan {
	for i := range loans {
		loans[i].LateFee = utils.LateFee(loans[i].OverdueDays, loans[i].LateFeePerDay)
	}
	return loans
}
