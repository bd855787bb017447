package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/repository"
	"librarium-backend/internal/utils"
)

type loanService struct {
	store repository.Store
	rules RuleCatalog
}

func NewLoanService(store repository.Store, rules RuleCatalog) LoanService {
	return &loanService{store: store, rules: rules}
}

// CreateLoan borrows a material for a user. The borrowing-limit check, the
// loan insert, and the material transition commit or roll back together.
func (s *loanService) CreateLoan(ctx context.Context, userID, materialID int64) (*domain.Loan, error) {
	var loan *domain.Loan

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("user", userID)
		}
		if err != nil {
			return domain.StoreError("get user", err)
		}

		rule, err := s.rules.GetRules(ctx, user.UserTypeID)
		if err != nil {
			return err
		}

		count, err := tx.Loans().CountActiveByUser(ctx, userID)
		if err != nil {
			return domain.StoreError("count active loans", err)
		}
		if count >= rule.MaxBorrowings {
			return domain.LimitExceeded(rule.MaxBorrowings)
		}

		material, err := tx.Materials().GetByID(ctx, materialID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("material", materialID)
		}
		if err != nil {
			return domain.StoreError("get material", err)
		}
		if material.Status != domain.MaterialStatusAvailable {
			return domain.MaterialUnavailable(materialID)
		}

		now := time.Now()
		loanDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		loan = &domain.Loan{
			UserID:     userID,
			MaterialID: materialID,
			LoanDate:   loanDate,
			ReturnDate: loanDate.AddDate(0, 0, rule.MaxBorrowingDays),
		}
		if err := tx.Loans().Create(ctx, loan); err != nil {
			return domain.StoreError("create loan", err)
		}

		return markBorrowed(ctx, tx.Materials(), materialID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Loan created", "loan_id", loan.ID, "user_id", userID, "material_id", materialID, "due", loan.ReturnDate.Format("2006-01-02"))
	return loan, nil
}

// ReturnLoan closes an active loan and computes the late fee. The fee is
// only reported back; invoicing it is the billing service's business.
func (s *loanService) ReturnLoan(ctx context.Context, loanID int64) (*domain.ReturnReceipt, error) {
	var receipt *domain.ReturnReceipt

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		detail, err := tx.Loans().GetActiveByID(ctx, loanID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("loan", loanID)
		}
		if err != nil {
			return domain.StoreError("get active loan", err)
		}

		rule, err := s.rules.GetRules(ctx, detail.UserTypeID)
		if err != nil {
			return err
		}

		now := time.Now()
		overdueDays := utils.OverdueDays(detail.ReturnDate, now)
		fee := utils.LateFee(overdueDays, rule.LateFeePerDay)

		if err := tx.Loans().SetReturned(ctx, loanID, now); err != nil {
			return domain.StoreError("set loan returned", err)
		}
		if err := markAvailable(ctx, tx.Materials(), detail.MaterialID); err != nil {
			return err
		}

		receipt = &domain.ReturnReceipt{
			LoanID:       loanID,
			UserID:       detail.UserID,
			MaterialID:   detail.MaterialID,
			MaterialName: detail.MaterialName,
			OverdueDays:  overdueDays,
			LateFee:      fee,
			ReturnedAt:   now,
			Message:      "material returned successfully",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Loan returned", "loan_id", loanID, "overdue_days", receipt.OverdueDays, "late_fee", receipt.LateFee.String())
	return receipt, nil
}

func (s *loanService) ListActiveLoans(ctx context.Context, userID int64) ([]domain.Loan, error) {
	loans, err := s.store.Loans().ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, domain.StoreError("list active loans", err)
	}
	return loans, nil
}
