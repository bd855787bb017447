package repository

import (
	"context"
	"time"

	"librarium-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Store bundles every repository plus the transaction scope. WithinTx runs
// fn against a Store bound to a single database transaction, committing on
// nil and rolling back on error. Transactions are single-level: calling
// WithinTx on a transaction-bound Store is an error.
type Store interface {
	Materials() MaterialRepository
	Users() UserRepository
	UserTypeRules() UserTypeRuleRepository
	Loans() LoanRepository
	Reservations() ReservationRepository
	Invoices() InvoiceRepository
	Payments() PaymentRepository

	WithinTx(ctx context.Context, fn func(Store) error) error
}

type MaterialRepository interface {
	Create(ctx context.Context, m *domain.Material) error
	GetByID(ctx context.Context, id int64) (*domain.Material, error)
	ListAvailable(ctx context.Context) ([]domain.Material, error)
	// UpdateStatus sets the status unconditionally.
	UpdateStatus(ctx context.Context, id int64, status domain.MaterialStatus) error
	// TransitionStatus sets the status only when the current status matches
	// from, reporting whether the row was updated.
	TransitionStatus(ctx context.Context, id int64, from, to domain.MaterialStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateContact(ctx context.Context, id int64, contact string) error
	Delete(ctx context.Context, id int64) error
}

type UserTypeRuleRepository interface {
	GetByTypeID(ctx context.Context, typeID int64) (*domain.UserTypeRule, error)
}

type LoanRepository interface {
	Create(ctx context.Context, l *domain.Loan) error
	// GetActiveByID fetches a loan with no recorded return, joined with the
	// borrower and material.
	GetActiveByID(ctx context.Context, id int64) (*domain.LoanDetail, error)
	CountActiveByUser(ctx context.Context, userID int64) (int, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]domain.Loan, error)
	// SetReturned stamps the actual return date on an active loan.
	SetReturned(ctx context.Context, id int64, returnedAt time.Time) error
	ListOverdue(ctx context.Context) ([]domain.OverdueLoan, error)
	ListOverdueByUser(ctx context.Context, userID int64) ([]domain.OverdueLoan, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	// Cancel marks an active reservation cancelled.
	Cancel(ctx context.Context, id int64) error
	ListActiveByUser(ctx context.Context, userID int64) ([]domain.ReservationDetail, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	ListByUser(ctx context.Context, userID int64, includePaid bool) ([]domain.Invoice, error)
	MarkPaid(ctx context.Context, id int64) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Payment, error)
	TotalPaid(ctx context.Context, invoiceID int64) (decimal.Decimal, error)
}
