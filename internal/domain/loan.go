package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan records a borrowing. ReturnDate is the due date fixed at creation
// time (loan date + the user type's borrowing days); ActualReturnDate stays
// nil while the loan is active. Loans are never physically deleted.
type Loan struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	MaterialID       int64      `json:"material_id"`
	LoanDate         time.Time  `json:"loan_date"`
	ReturnDate       time.Time  `json:"return_date"`
	ActualReturnDate *time.Time `json:"actual_return_date,omitempty"`
}

// Active reports whether the loan has not been returned yet.
func (l *Loan) Active() bool {
	return l.ActualReturnDate == nil
}

// Overdue reports whether the loan is active and past its due date.
func (l *Loan) Overdue(now time.Time) bool {
	return l.Active() && l.ReturnDate.Before(now)
}

// LoanDetail is a loan joined with the borrower and the material, as needed
// by the return and billing flows.
type LoanDetail struct {
	Loan
	UserName     string `json:"user_name"`
	UserContact  string `json:"user_contact"`
	UserTypeID   int64  `json:"user_type_id"`
	MaterialName string `json:"material_name"`
}

// OverdueLoan is a read-side projection of an overdue loan, annotated with
// the computed overdue-day count, the current material status, and the
// borrower's daily late-fee rate.
type OverdueLoan struct {
	LoanID         int64           `json:"loan_id"`
	UserID         int64           `json:"user_id"`
	UserName       string          `json:"user_name"`
	UserContact    string          `json:"user_contact"`
	UserTypeID     int64           `json:"user_type_id"`
	MaterialID     int64           `json:"material_id"`
	MaterialName   string          `json:"material_name"`
	ReturnDate     time.Time       `json:"return_date"`
	OverdueDays    int             `json:"overdue_days"`
	MaterialStatus MaterialStatus  `json:"material_status"`
	LateFeePerDay  decimal.Decimal `json:"late_fee_per_day"`
	LateFee        decimal.Decimal `json:"late_fee"`
}

// ReturnReceipt is the outcome of returning a loan. The loan service only
// computes the fee; invoicing it is the billing service's concern.
type ReturnReceipt struct {
	LoanID       int64           `json:"loan_id"`
	UserID       int64           `json:"user_id"`
	MaterialID   int64           `json:"material_id"`
	MaterialName string          `json:"material_name"`
	OverdueDays  int             `json:"overdue_days"`
	LateFee      decimal.Decimal `json:"late_fee"`
	ReturnedAt   time.Time       `json:"returned_at"`
	Message      string          `json:"message"`
}
