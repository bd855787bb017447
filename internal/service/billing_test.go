package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"librarium-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBillingService_GenerateLateFeeInvoice(t *testing.T) {
	ctx := context.Background()
	userID := int64(1)

	overdue := []domain.OverdueLoan{
		{LoanID: 1, UserID: userID, OverdueDays: 5, LateFeePerDay: decimal.RequireFromString("0.50")},
		{LoanID: 2, UserID: userID, OverdueDays: 3, LateFeePerDay: decimal.RequireFromString("0.50")},
	}

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "overdue loan late fee")

		store.loans.On("ListOverdueByUser", ctx, userID).Return(overdue, nil)
		store.invoices.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).Return(nil)

		invoice, err := svc.GenerateLateFeeInvoice(ctx, userID)
		assert.NoError(t, err)
		assert.NotNil(t, invoice)
		// 5*0.50 + 3*0.50 = 4.00
		assert.True(t, invoice.Amount.Equal(decimal.RequireFromString("4.00")))
		assert.Equal(t, domain.InvoiceStatusUnpaid, invoice.Status)
		assert.Equal(t, "overdue loan late fee", invoice.Reason)
	})

	t.Run("Nothing Overdue", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "overdue loan late fee")

		store.loans.On("ListOverdueByUser", ctx, userID).Return([]domain.OverdueLoan{}, nil)

		invoice, err := svc.GenerateLateFeeInvoice(ctx, userID)
		assert.Nil(t, invoice)
		assert.True(t, domain.IsCode(err, domain.CodeNothingToPay))
		store.invoices.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})
}

func TestBillingService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	invoiceID := int64(4)

	unpaid := &domain.Invoice{
		ID:          invoiceID,
		UserID:      1,
		Amount:      decimal.RequireFromString("10.00"),
		InvoiceDate: time.Now().Add(-24 * time.Hour),
		Status:      domain.InvoiceStatusUnpaid,
	}

	t.Run("Partial Payment Leaves Invoice Unpaid", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		store.invoices.On("GetByID", ctx, invoiceID).Return(unpaid, nil)
		store.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		store.payments.On("TotalPaid", ctx, invoiceID).Return(decimal.RequireFromString("4.00"), nil)

		payment, err := svc.RecordPayment(ctx, invoiceID, decimal.RequireFromString("4.00"), "cash")
		assert.NoError(t, err)
		assert.NotNil(t, payment)
		assert.NotEmpty(t, payment.Reference)
		store.invoices.AssertNotCalled(t, "MarkPaid", ctx, invoiceID)
	})

	t.Run("Covering Payment Flips Invoice To Paid", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		store.invoices.On("GetByID", ctx, invoiceID).Return(unpaid, nil)
		store.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil)
		store.payments.On("TotalPaid", ctx, invoiceID).Return(decimal.RequireFromString("10.00"), nil)
		store.invoices.On("MarkPaid", ctx, invoiceID).Return(nil)

		payment, err := svc.RecordPayment(ctx, invoiceID, decimal.RequireFromString("6.00"), "card")
		assert.NoError(t, err)
		assert.NotNil(t, payment)
		store.invoices.AssertCalled(t, "MarkPaid", ctx, invoiceID)
	})

	t.Run("Already Paid", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		paid := *unpaid
		paid.Status = domain.InvoiceStatusPaid
		store.invoices.On("GetByID", ctx, invoiceID).Return(&paid, nil)

		payment, err := svc.RecordPayment(ctx, invoiceID, decimal.RequireFromString("1.00"), "cash")
		assert.Nil(t, payment)
		assert.True(t, domain.IsCode(err, domain.CodeAlreadyPaid))
	})

	t.Run("Non Positive Amount", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		payment, err := svc.RecordPayment(ctx, invoiceID, decimal.Zero, "cash")
		assert.Nil(t, payment)
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("Unknown Invoice", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		store.invoices.On("GetByID", ctx, invoiceID).Return(nil, sql.ErrNoRows)

		payment, err := svc.RecordPayment(ctx, invoiceID, decimal.RequireFromString("1.00"), "cash")
		assert.Nil(t, payment)
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})
}

func TestBillingService_MarkInvoicePaid(t *testing.T) {
	ctx := context.Background()
	invoiceID := int64(4)

	unpaid := &domain.Invoice{
		ID:     invoiceID,
		UserID: 1,
		Amount: decimal.RequireFromString("10.00"),
		Status: domain.InvoiceStatusUnpaid,
	}

	t.Run("Fully Paid", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		store.invoices.On("GetByID", ctx, invoiceID).Return(unpaid, nil)
		store.payments.On("TotalPaid", ctx, invoiceID).Return(decimal.RequireFromString("10.00"), nil)
		store.invoices.On("MarkPaid", ctx, invoiceID).Return(nil)

		assert.NoError(t, svc.MarkInvoicePaid(ctx, invoiceID))
	})

	t.Run("Not Fully Paid", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		store.invoices.On("GetByID", ctx, invoiceID).Return(unpaid, nil)
		store.payments.On("TotalPaid", ctx, invoiceID).Return(decimal.RequireFromString("9.99"), nil)

		err := svc.MarkInvoicePaid(ctx, invoiceID)
		assert.True(t, domain.IsCode(err, domain.CodeNotFullyPaid))
		store.invoices.AssertNotCalled(t, "MarkPaid", ctx, invoiceID)
	})

	t.Run("Already Paid", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		paid := *unpaid
		paid.Status = domain.InvoiceStatusPaid
		store.invoices.On("GetByID", ctx, invoiceID).Return(&paid, nil)

		err := svc.MarkInvoicePaid(ctx, invoiceID)
		assert.True(t, domain.IsCode(err, domain.CodeAlreadyPaid))
	})
}

func TestBillingService_PayOverdueFee(t *testing.T) {
	ctx := context.Background()
	loanID := int64(7)
	materialID := int64(2)

	detail := func(due time.Time) *domain.LoanDetail {
		return &domain.LoanDetail{
			Loan: domain.Loan{
				ID:         loanID,
				UserID:     1,
				MaterialID: materialID,
				ReturnDate: due,
			},
			UserTypeID:   1,
			MaterialName: "Dune",
		}
	}

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		rules := new(MockRuleCatalog)
		svc := NewBillingService(store, rules, nil, "")

		// 5 days and a bit past due, rounds to 5
		due := time.Now().Add(-121 * time.Hour)
		store.loans.On("GetActiveByID", ctx, loanID).Return(detail(due), nil)
		rules.On("GetRules", ctx, int64(1)).Return(studentRule(), nil)

		var invoicedAmount, paidAmount decimal.Decimal
		store.invoices.On("Create", ctx, mock.AnythingOfType("*domain.Invoice")).
			Run(func(args mock.Arguments) {
				inv := args.Get(1).(*domain.Invoice)
				inv.ID = 42
				invoicedAmount = inv.Amount
				assert.Equal(t, "overdue return of material: Dune", inv.Reason)
			}).Return(nil)
		store.payments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*domain.Payment)
				paidAmount = p.Amount
				assert.Equal(t, int64(42), p.InvoiceID)
				assert.Equal(t, "overdue", p.Method)
			}).Return(nil)
		store.invoices.On("MarkPaid", ctx, int64(42)).Return(nil)
		store.loans.On("SetReturned", ctx, loanID, mock.AnythingOfType("time.Time")).Return(nil)
		store.materials.On("UpdateStatus", ctx, materialID, domain.MaterialStatusAvailable).Return(nil)

		receipt, err := svc.PayOverdueFee(ctx, loanID)
		assert.NoError(t, err)
		assert.NotNil(t, receipt)
		assert.Equal(t, 5, receipt.OverdueDays)
		// 5 * 0.50, and the invoiced and paid figures are the same computation
		assert.True(t, receipt.LateFee.Equal(decimal.RequireFromString("2.50")))
		assert.True(t, invoicedAmount.Equal(receipt.LateFee))
		assert.True(t, paidAmount.Equal(receipt.LateFee))
	})

	t.Run("Not Overdue", func(t *testing.T) {
		store := newMockStore()
		rules := new(MockRuleCatalog)
		svc := NewBillingService(store, rules, nil, "")

		due := time.Now().AddDate(0, 0, 2)
		store.loans.On("GetActiveByID", ctx, loanID).Return(detail(due), nil)
		rules.On("GetRules", ctx, int64(1)).Return(studentRule(), nil)

		receipt, err := svc.PayOverdueFee(ctx, loanID)
		assert.Nil(t, receipt)
		assert.True(t, domain.IsCode(err, domain.CodeNothingToPay))
		store.invoices.AssertNotCalled(t, "Create", ctx, mock.Anything)
		store.loans.AssertNotCalled(t, "SetReturned", ctx, loanID, mock.Anything)
	})

	t.Run("Loan Not Active", func(t *testing.T) {
		store := newMockStore()
		svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

		store.loans.On("GetActiveByID", ctx, loanID).Return(nil, sql.ErrNoRows)

		receipt, err := svc.PayOverdueFee(ctx, loanID)
		assert.Nil(t, receipt)
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})
}

func TestBillingService_ListUserInvoices(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := NewBillingService(store, new(MockRuleCatalog), nil, "")

	invoices := []domain.Invoice{
		{ID: 1, UserID: 3, Amount: decimal.RequireFromString("10.00"), Status: domain.InvoiceStatusUnpaid},
	}
	store.invoices.On("ListByUser", ctx, int64(3), false).Return(invoices, nil)
	store.payments.On("TotalPaid", ctx, int64(1)).Return(decimal.RequireFromString("4.00"), nil)

	summaries, err := svc.ListUserInvoices(ctx, 3, false)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.True(t, summaries[0].PaidAmount.Equal(decimal.RequireFromString("4.00")))
	assert.True(t, summaries[0].OutstandingAmount.Equal(decimal.RequireFromString("6.00")))
}
