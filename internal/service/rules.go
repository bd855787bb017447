package service

import (
	"context"
	"database/sql"
	"errors"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

// ruleCatalog reads reference data outside any transaction scope; rules are
// immutable at runtime so a plain read is safe inside borrowing flows.
type ruleCatalog struct {
	store repository.Store
}

func NewRuleCatalog(store repository.Store) RuleCatalog {
	return &ruleCatalog{store: store}
}

func (c *ruleCatalog) GetRules(ctx context.Context, userTypeID int64) (*domain.UserTypeRule, error) {
	rule, err := c.store.UserTypeRules().GetByTypeID(ctx, userTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.RuleNotConfigured(userTypeID)
	}
	if err != nil {
		return nil, domain.StoreError("get borrowing rules", err)
	}
	return rule, nil
}
