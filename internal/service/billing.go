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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type billingService struct {
	store         repository.Store
	rules         RuleCatalog
	emailSvc      EmailService
	lateFeeReason string
}

func NewBillingService(store repository.Store, rules RuleCatalog, emailSvc EmailService, lateFeeReason string) BillingService {
	if lateFeeReason == "" {
		lateFeeReason = "overdue loan late fee"
	}
	return &billingService{
		store:         store,
		rules:         rules,
		emailSvc:      emailSvc,
		lateFeeReason: lateFeeReason,
	}
}

// GenerateLateFeeInvoice sums the fee accrued across the user's overdue
// loans and bills it as a single unpaid invoice.
func (s *billingService) GenerateLateFeeInvoice(ctx context.Context, userID int64) (*domain.Invoice, error) {
	var invoice *domain.Invoice

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		overdue, err := tx.Loans().ListOverdueByUser(ctx, userID)
		if err != nil {
			return domain.StoreError("list overdue loans by user", err)
		}

		total := decimal.Zero
		for _, o := range overdue {
			total = total.Add(utils.LateFee(o.OverdueDays, o.LateFeePerDay))
		}
		if !total.IsPositive() {
			return domain.NoOverdueFee(userID)
		}

		invoice = &domain.Invoice{
			UserID:      userID,
			Amount:      total,
			InvoiceDate: time.Now(),
			Reason:      s.lateFeeReason,
			Status:      domain.InvoiceStatusUnpaid,
		}
		if err := tx.Invoices().Create(ctx, invoice); err != nil {
			return domain.StoreError("create invoice", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Late fee invoice generated", "invoice_id", invoice.ID, "user_id", userID, "amount", invoice.Amount.String())
	s.notifyInvoice(ctx, invoice)
	return invoice, nil
}

// IssueInvoice bills an arbitrary charge, used by the return flow to invoice
// the fee the loan service computed.
func (s *billingService) IssueInvoice(ctx context.Context, userID int64, amount decimal.Decimal, reason string) (*domain.Invoice, error) {
	if !amount.IsPositive() {
		return nil, domain.Validation("invoice amount must be positive")
	}

	invoice := &domain.Invoice{
		UserID:      userID,
		Amount:      amount.Round(2),
		InvoiceDate: time.Now(),
		Reason:      reason,
		Status:      domain.InvoiceStatusUnpaid,
	}
	if err := s.store.Invoices().Create(ctx, invoice); err != nil {
		return nil, domain.StoreError("create invoice", err)
	}

	logger.Info("Invoice issued", "invoice_id", invoice.ID, "user_id", userID, "amount", invoice.Amount.String(), "reason", reason)
	s.notifyInvoice(ctx, invoice)
	return invoice, nil
}

// RecordPayment appends a payment to an unpaid invoice. Partial payments
// accumulate; the invoice flips to paid in the same transaction once the
// total reaches the billed amount.
func (s *billingService) RecordPayment(ctx context.Context, invoiceID int64, amount decimal.Decimal, method string) (*domain.Payment, error) {
	if !amount.IsPositive() {
		return nil, domain.Validation("payment amount must be positive")
	}
	if method == "" {
		method = "cash"
	}

	var payment *domain.Payment

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		invoice, err := tx.Invoices().GetByID(ctx, invoiceID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("invoice", invoiceID)
		}
		if err != nil {
			return domain.StoreError("get invoice", err)
		}
		if invoice.Status == domain.InvoiceStatusPaid {
			return domain.AlreadyPaid(invoiceID)
		}

		payment = &domain.Payment{
			InvoiceID:   invoiceID,
			Amount:      amount.Round(2),
			PaymentDate: time.Now(),
			Method:      method,
			Reference:   uuid.NewString(),
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return domain.StoreError("create payment", err)
		}

		total, err := tx.Payments().TotalPaid(ctx, invoiceID)
		if err != nil {
			return domain.StoreError("total paid", err)
		}
		if total.GreaterThanOrEqual(invoice.Amount) {
			if err := tx.Invoices().MarkPaid(ctx, invoiceID); err != nil {
				return domain.StoreError("mark invoice paid", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payment recorded", "payment_id", payment.ID, "invoice_id", invoiceID, "amount", payment.Amount.String(), "method", method)
	return payment, nil
}

// MarkInvoicePaid flips an invoice to paid, but only when the recorded
// payments cover the billed amount. The sufficiency check and the status
// write share one transaction so a concurrent payment cannot race it.
func (s *billingService) MarkInvoicePaid(ctx context.Context, invoiceID int64) error {
	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		invoice, err := tx.Invoices().GetByID(ctx, invoiceID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("invoice", invoiceID)
		}
		if err != nil {
			return domain.StoreError("get invoice", err)
		}
		if invoice.Status == domain.InvoiceStatusPaid {
			return domain.AlreadyPaid(invoiceID)
		}

		total, err := tx.Payments().TotalPaid(ctx, invoiceID)
		if err != nil {
			return domain.StoreError("total paid", err)
		}
		if total.LessThan(invoice.Amount) {
			return domain.NotFullyPaid(invoiceID)
		}

		if err := tx.Invoices().MarkPaid(ctx, invoiceID); err != nil {
			return domain.StoreError("mark invoice paid", err)
		}
		return nil
	})
}

// PayOverdueFee settles an overdue loan in one go: the fee is computed once
// and that same figure is invoiced, paid, and stamped on the loan before the
// material goes back to available. Any failure rolls the whole thing back,
// invoice included.
func (s *billingService) PayOverdueFee(ctx context.Context, loanID int64) (*domain.ReturnReceipt, error) {
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
		if !fee.IsPositive() {
			return domain.NothingToPay(loanID)
		}

		invoice := &domain.Invoice{
			UserID:      detail.UserID,
			Amount:      fee,
			InvoiceDate: now,
			Reason:      "overdue return of material: " + detail.MaterialName,
			Status:      domain.InvoiceStatusUnpaid,
		}
		if err := tx.Invoices().Create(ctx, invoice); err != nil {
			return domain.StoreError("create invoice", err)
		}

		payment := &domain.Payment{
			InvoiceID:   invoice.ID,
			Amount:      fee,
			PaymentDate: now,
			Method:      "overdue",
			Reference:   uuid.NewString(),
		}
		if err := tx.Payments().Create(ctx, payment); err != nil {
			return domain.StoreError("create payment", err)
		}
		if err := tx.Invoices().MarkPaid(ctx, invoice.ID); err != nil {
			return domain.StoreError("mark invoice paid", err)
		}

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
			Message:      "overdue fee paid and material returned",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Overdue fee paid", "loan_id", loanID, "late_fee", receipt.LateFee.String())
	return receipt, nil
}

func (s *billingService) ListUserInvoices(ctx context.Context, userID int64, includePaid bool) ([]domain.InvoiceSummary, error) {
	invoices, err := s.store.Invoices().ListByUser(ctx, userID, includePaid)
	if err != nil {
		return nil, domain.StoreError("list invoices", err)
	}

	summaries := make([]domain.InvoiceSummary, 0, len(invoices))
	for _, inv := range invoices {
		paid, err := s.store.Payments().TotalPaid(ctx, inv.ID)
		if err != nil {
			return nil, domain.StoreError("total paid", err)
		}
		outstanding := inv.Amount.Sub(paid)
		if outstanding.IsNegative() {
			outstanding = decimal.Zero
		}
		summaries = append(summaries, domain.InvoiceSummary{
			Invoice:           inv,
			PaidAmount:        paid,
			OutstandingAmount: outstanding,
		})
	}
	return summaries, nil
}

// notifyInvoice sends the invoice notice best-effort; billing never fails
// because an email did.
func (s *billingService) notifyInvoice(ctx context.Context, invoice *domain.Invoice) {
	if s.emailSvc == nil {
		return
	}
	user, err := s.store.Users().GetByID(ctx, invoice.UserID)
	if err != nil {
		logger.Warn("Could not load user for invoice notice", "user_id", invoice.UserID, "error", err)
		return
	}
	if err := s.emailSvc.SendInvoiceNotice(ctx, user.Contact, user.Name, invoice); err != nil {
		logger.Warn("Failed to send invoice notice", "invoice_id", invoice.ID, "error", err)
	}
}
