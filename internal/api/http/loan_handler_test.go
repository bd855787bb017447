package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"librarium-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateLoan(ctx context.Context, userID, materialID int64) (*domain.Loan, error) {
	args := m.Called(ctx, userID, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) ReturnLoan(ctx context.Context, loanID int64) (*domain.ReturnReceipt, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnReceipt), args.Error(1)
}

func (m *MockLoanService) ListActiveLoans(ctx context.Context, userID int64) ([]domain.Loan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) GenerateLateFeeInvoice(ctx context.Context, userID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockBillingService) IssueInvoice(ctx context.Context, userID int64, amount decimal.Decimal, reason string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockBillingService) RecordPayment(ctx context.Context, invoiceID int64, amount decimal.Decimal, method string) (*domain.Payment, error) {
	args := m.Called(ctx, invoiceID, amount, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockBillingService) MarkInvoicePaid(ctx context.Context, invoiceID int64) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockBillingService) PayOverdueFee(ctx context.Context, loanID int64) (*domain.ReturnReceipt, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnReceipt), args.Error(1)
}

func (m *MockBillingService) ListUserInvoices(ctx context.Context, userID int64, includePaid bool) ([]domain.InvoiceSummary, error) {
	args := m.Called(ctx, userID, includePaid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceSummary), args.Error(1)
}

func newLoanTestServer(loans *MockLoanService, billing *MockBillingService) *httptest.Server {
	router := NewRouter(Services{Loans: loans, Billing: billing})
	return httptest.NewServer(router)
}

func TestLoanHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		loans := new(MockLoanService)
		billing := new(MockBillingService)
		server := newLoanTestServer(loans, billing)
		defer server.Close()

		loans.On("CreateLoan", mock.Anything, int64(1), int64(2)).
			Return(&domain.Loan{ID: 9, UserID: 1, MaterialID: 2}, nil)

		resp, err := http.Post(server.URL+"/api/v1/loans", "application/json",
			strings.NewReader(`{"user_id": 1, "material_id": 2}`))
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var loan domain.Loan
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loan))
		assert.Equal(t, int64(9), loan.ID)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		loans := new(MockLoanService)
		billing := new(MockBillingService)
		server := newLoanTestServer(loans, billing)
		defer server.Close()

		resp, err := http.Post(server.URL+"/api/v1/loans", "application/json",
			strings.NewReader(`{"user_id": 1}`))
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		loans.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Limit Exceeded Maps To Conflict", func(t *testing.T) {
		loans := new(MockLoanService)
		billing := new(MockBillingService)
		server := newLoanTestServer(loans, billing)
		defer server.Close()

		loans.On("CreateLoan", mock.Anything, int64(1), int64(2)).
			Return(nil, domain.LimitExceeded(5))

		resp, err := http.Post(server.URL+"/api/v1/loans", "application/json",
			strings.NewReader(`{"user_id": 1, "material_id": 2}`))
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestLoanHandler_Return(t *testing.T) {
	t.Run("On Time Return Has No Invoice", func(t *testing.T) {
		loans := new(MockLoanService)
		billing := new(MockBillingService)
		server := newLoanTestServer(loans, billing)
		defer server.Close()

		loans.On("ReturnLoan", mock.Anything, int64(9)).Return(&domain.ReturnReceipt{
			LoanID:       9,
			MaterialName: "Dune",
			LateFee:      decimal.Zero,
			ReturnedAt:   time.Now(),
		}, nil)

		resp, err := http.Post(server.URL+"/api/v1/loans/9/return", "application/json", nil)
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body returnLoanResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotNil(t, body.Receipt)
		assert.Nil(t, body.Invoice)
		billing.AssertNotCalled(t, "IssueInvoice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Late Return Issues Invoice", func(t *testing.T) {
		loans := new(MockLoanService)
		billing := new(MockBillingService)
		server := newLoanTestServer(loans, billing)
		defer server.Close()

		fee := decimal.RequireFromString("2.50")
		loans.On("ReturnLoan", mock.Anything, int64(9)).Return(&domain.ReturnReceipt{
			LoanID:       9,
			UserID:       1,
			MaterialName: "Dune",
			OverdueDays:  5,
			LateFee:      fee,
			ReturnedAt:   time.Now(),
		}, nil)
		billing.On("IssueInvoice", mock.Anything, int64(1), fee, "overdue return of material: Dune").
			Return(&domain.Invoice{ID: 42, UserID: 1, Amount: fee, Status: domain.InvoiceStatusUnpaid}, nil)

		resp, err := http.Post(server.URL+"/api/v1/loans/9/return", "application/json", nil)
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body returnLoanResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotNil(t, body.Invoice)
		assert.Equal(t, int64(42), body.Invoice.ID)
	})

	t.Run("Unknown Loan", func(t *testing.T) {
		loans := new(MockLoanService)
		billing := new(MockBillingService)
		server := newLoanTestServer(loans, billing)
		defer server.Close()

		loans.On("ReturnLoan", mock.Anything, int64(9)).Return(nil, domain.NotFound("loan", 9))

		resp, err := http.Post(server.URL+"/api/v1/loans/9/return", "application/json", nil)
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid Loan ID", func(t *testing.T) {
		loans := new(MockLoanService)
		billing := new(MockBillingService)
		server := newLoanTestServer(loans, billing)
		defer server.Close()

		resp, err := http.Post(server.URL+"/api/v1/loans/abc/return", "application/json", nil)
		assert.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
