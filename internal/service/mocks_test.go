package service

import (
	"context"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// mockStore implements repository.Store over testify mocks. WithinTx simply
// runs the callback against the same store, so service logic is exercised as
// if the transaction committed.
type mockStore struct {
	materials    *MockMaterialRepo
	users        *MockUserRepo
	rules        *MockUserTypeRuleRepo
	loans        *MockLoanRepo
	reservations *MockReservationRepo
	invoices     *MockInvoiceRepo
	payments     *MockPaymentRepo
}

func newMockStore() *mockStore {
	return &mockStore{
		materials:    new(MockMaterialRepo),
		users:        new(MockUserRepo),
		rules:        new(MockUserTypeRuleRepo),
		loans:        new(MockLoanRepo),
		reservations: new(MockReservationRepo),
		invoices:     new(MockInvoiceRepo),
		payments:     new(MockPaymentRepo),
	}
}

func (s *mockStore) Materials() repository.MaterialRepository { return s.materials }

func (s *mockStore) Users() repository.UserRepository { return s.users }

func (s *mockStore) UserTypeRules() repository.UserTypeRuleRepository { return s.rules }

func (s *mockStore) Loans() repository.LoanRepository { return s.loans }

func (s *mockStore) Reservations() repository.ReservationRepository { return s.reservations }

func (s *mockStore) Invoices() repository.InvoiceRepository { return s.invoices }

func (s *mockStore) Payments() repository.PaymentRepository { return s.payments }

func (s *mockStore) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

// MockMaterialRepo
type MockMaterialRepo struct {
	mock.Mock
}

func (m *MockMaterialRepo) Create(ctx context.Context, mat *domain.Material) error {
	args := m.Called(ctx, mat)
	return args.Error(0)
}
func (m *MockMaterialRepo) GetByID(ctx context.Context, id int64) (*domain.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}
func (m *MockMaterialRepo) ListAvailable(ctx context.Context) ([]domain.Material, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Material), args.Error(1)
}
func (m *MockMaterialRepo) UpdateStatus(ctx context.Context, id int64, status domain.MaterialStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockMaterialRepo) TransitionStatus(ctx context.Context, id int64, from, to domain.MaterialStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockMaterialRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateContact(ctx context.Context, id int64, contact string) error {
	args := m.Called(ctx, id, contact)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserTypeRuleRepo
type MockUserTypeRuleRepo struct {
	mock.Mock
}

func (m *MockUserTypeRuleRepo) GetByTypeID(ctx context.Context, typeID int64) (*domain.UserTypeRule, error) {
	args := m.Called(ctx, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserTypeRule), args.Error(1)
}

// MockLoanRepo
type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Create(ctx context.Context, l *domain.Loan) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockLoanRepo) GetActiveByID(ctx context.Context, id int64) (*domain.LoanDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanDetail), args.Error(1)
}
func (m *MockLoanRepo) CountActiveByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}
func (m *MockLoanRepo) ListActiveByUser(ctx context.Context, userID int64) ([]domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanRepo) SetReturned(ctx context.Context, id int64, returnedAt time.Time) error {
	args := m.Called(ctx, id, returnedAt)
	return args.Error(0)
}
func (m *MockLoanRepo) ListOverdue(ctx context.Context) ([]domain.OverdueLoan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueLoan), args.Error(1)
}
func (m *MockLoanRepo) ListOverdueByUser(ctx context.Context, userID int64) ([]domain.OverdueLoan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueLoan), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Cancel(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockReservationRepo) ListActiveByUser(ctx context.Context, userID int64) ([]domain.ReservationDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReservationDetail), args.Error(1)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) ListByUser(ctx context.Context, userID int64, includePaid bool) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID, includePaid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) MarkPaid(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) TotalPaid(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockRuleCatalog
type MockRuleCatalog struct {
	mock.Mock
}

func (m *MockRuleCatalog) GetRules(ctx context.Context, userTypeID int64) (*domain.UserTypeRule, error) {
	args := m.Called(ctx, userTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserTypeRule), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOverdueReminder(ctx context.Context, to, name string, loans []domain.OverdueLoan) error {
	args := m.Called(ctx, to, name, loans)
	return args.Error(0)
}
func (m *MockEmailService) SendInvoiceNotice(ctx context.Context, to, name string, invoice *domain.Invoice) error {
	args := m.Called(ctx, to, name, invoice)
	return args.Error(0)
}
