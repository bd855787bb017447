package postgres

import (
	"context"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type userTypeRuleRepository struct {
	q DBTX
}

func NewUserTypeRuleRepository(q DBTX) repository.UserTypeRuleRepository {
	return &userTypeRuleRepository{q: q}
}

func (r *userTypeRuleRepository) GetByTypeID(ctx context.Context, typeID int64) (*domain.UserTypeRule, error) {
	rule := &domain.UserTypeRule{}
	query := `SELECT type_id, type_name, max_borrowings, max_borrowing_days, late_fee_per_day
	          FROM user_types WHERE type_id = $1`
	err := r.q.QueryRowContext(ctx, query, typeID).Scan(&rule.TypeID, &rule.TypeName, &rule.MaxBorrowings, &rule.MaxBorrowingDays, &rule.LateFeePerDay)
	if err != nil {
		return nil, err
	}
	return rule, nil
}
