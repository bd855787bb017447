package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/repository"
)

type userService struct {
	store repository.Store
	rules RuleCatalog
}

func NewUserService(store repository.Store, rules RuleCatalog) UserService {
	return &userService{store: store, rules: rules}
}

func (s *userService) RegisterUser(ctx context.Context, user *domain.User) error {
	if strings.TrimSpace(user.Name) == "" {
		return domain.Validation("user name is required")
	}
	if strings.TrimSpace(user.Contact) == "" {
		return domain.Validation("user contact is required")
	}

	// Registering against an unconfigured user type would leave the user
	// unable to borrow anything.
	if _, err := s.rules.GetRules(ctx, user.UserTypeID); err != nil {
		return err
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		return domain.StoreError("create user", err)
	}
	logger.Info("User registered", "user_id", user.ID, "user_type_id", user.UserTypeID)
	return nil
}

// GetUserProfile assembles the user record with their active loans and the
// borrowing allowances of their user type.
func (s *userService) GetUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user", userID)
	}
	if err != nil {
		return nil, domain.StoreError("get user", err)
	}

	rule, err := s.rules.GetRules(ctx, user.UserTypeID)
	if err != nil {
		return nil, err
	}

	loans, err := s.store.Loans().ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, domain.StoreError("list active loans", err)
	}

	return &domain.UserProfile{
		User:              *user,
		ActiveLoans:       loans,
		CurrentBorrowings: len(loans),
		MaxBorrowings:     rule.MaxBorrowings,
		MaxBorrowingDays:  rule.MaxBorrowingDays,
	}, nil
}

func (s *userService) UpdateContact(ctx context.Context, userID int64, contact string) error {
	if strings.TrimSpace(contact) == "" {
		return domain.Validation("user contact is required")
	}

	err := s.store.Users().UpdateContact(ctx, userID, contact)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound("user", userID)
	}
	if err != nil {
		return domain.StoreError("update user contact", err)
	}
	return nil
}

// DeleteUser removes a user. Anyone still holding materials stays on the
// books until everything is returned.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, userID); errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("user", userID)
		} else if err != nil {
			return domain.StoreError("get user", err)
		}

		active, err := tx.Loans().CountActiveByUser(ctx, userID)
		if err != nil {
			return domain.StoreError("count active loans", err)
		}
		if active > 0 {
			return domain.Validation("user %d has %d active loans and cannot be deleted", userID, active)
		}

		if err := tx.Users().Delete(ctx, userID); err != nil {
			return domain.StoreError("delete user", err)
		}
		logger.Info("User deleted", "user_id", userID)
		return nil
	})
}
