package service

import (
	"context"

	"librarium-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// RuleCatalog resolves the per-user-type borrowing policy. A missing rule is
// a hard stop, never a default.
type RuleCatalog interface {
	GetRules(ctx context.Context, userTypeID int64) (*domain.UserTypeRule, error)
}

type LoanService interface {
	CreateLoan(ctx context.Context, userID, materialID int64) (*domain.Loan, error)
	ReturnLoan(ctx context.Context, loanID int64) (*domain.ReturnReceipt, error)
	ListActiveLoans(ctx context.Context, userID int64) ([]domain.Loan, error)
}

// OverdueQueryService is the read side: overdue loans annotated with day
// counts, material state, and the fee accrued so far.
type OverdueQueryService interface {
	ListOverdue(ctx context.Context) ([]domain.OverdueLoan, error)
	ListOverdueByUser(ctx context.Context, userID int64) ([]domain.OverdueLoan, error)
}

type ReservationService interface {
	MakeReservation(ctx context.Context, userID, materialID int64) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationID int64) error
	ListUserReservations(ctx context.Context, userID int64) ([]domain.ReservationDetail, error)
}

type BillingService interface {
	GenerateLateFeeInvoice(ctx context.Context, userID int64) (*domain.Invoice, error)
	IssueInvoice(ctx context.Context, userID int64, amount decimal.Decimal, reason string) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID int64, amount decimal.Decimal, method string) (*domain.Payment, error)
	MarkInvoicePaid(ctx context.Context, invoiceID int64) error
	PayOverdueFee(ctx context.Context, loanID int64) (*domain.ReturnReceipt, error)
	ListUserInvoices(ctx context.Context, userID int64, includePaid bool) ([]domain.InvoiceSummary, error)
}

type MaterialService interface {
	AddMaterial(ctx context.Context, m *domain.Material) error
	GetMaterial(ctx context.Context, id int64) (*domain.Material, error)
	SearchMaterials(ctx context.Context, keyword string, typeID *int64) ([]domain.Material, error)
	SetMaterialStatus(ctx context.Context, id int64, status domain.MaterialStatus) error
	DeleteMaterial(ctx context.Context, id int64) error
}

type UserService interface {
	RegisterUser(ctx context.Context, user *domain.User) error
	GetUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error)
	UpdateContact(ctx context.Context, userID int64, contact string) error
	DeleteUser(ctx context.Context, userID int64) error
}

type EmailService interface {
	SendOverdueReminder(ctx context.Context, to, name string, loans []domain.OverdueLoan) error
	SendInvoiceNotice(ctx context.Context, to, name string, invoice *domain.Invoice) error
}
