package postgres

import (
	"context"
	"database/sql"
	"errors"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can run
// against the pool directly or inside a transaction scope.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var errNestedTx = errors.New("transaction scopes cannot be nested")

type Store struct {
	db            *sql.DB // nil when bound to a transaction
	materials     repository.MaterialRepository
	users         repository.UserRepository
	userTypeRules repository.UserTypeRuleRepository
	loans         repository.LoanRepository
	reservations  repository.ReservationRepository
	invoices      repository.InvoiceRepository
	payments      repository.PaymentRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:            db,
		materials:     NewMaterialRepository(q),
		users:         NewUserRepository(q),
		userTypeRules: NewUserTypeRuleRepository(q),
		loans:         NewLoanRepository(q),
		reservations:  NewReservationRepository(q),
		invoices:      NewInvoiceRepository(q),
		payments:      NewPaymentRepository(q),
	}
}

func (s *Store) Materials() repository.MaterialRepository          { return s.materials }
func (s *Store) Users() repository.UserRepository                  { return s.users }
func (s *Store) UserTypeRules() repository.UserTypeRuleRepository  { return s.userTypeRules }
func (s *Store) Loans() repository.LoanRepository                  { return s.loans }
func (s *Store) Reservations() repository.ReservationRepository    { return s.reservations }
func (s *Store) Invoices() repository.InvoiceRepository            { return s.invoices }
func (s *Store) Payments() repository.PaymentRepository            { return s.payments }

// WithinTx runs fn against a transaction-bound Store. Read committed is
// enough here: every status change goes through a guarded UPDATE, so two
// concurrent borrowers of the same material serialize on the row lock and
// the loser sees zero rows affected.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return domain.StoreError("begin transaction", errNestedTx)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return domain.StoreError("begin transaction", err)
	}

	if err := fn(newStore(nil, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Transaction rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.StoreError("commit transaction", err)
	}
	return nil
}
