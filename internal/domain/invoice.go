package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "UNPAID"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
)

// Invoice is a billable charge against a user. Status flips to paid only
// once cumulative payments reach the amount.
type Invoice struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	InvoiceDate time.Time       `json:"invoice_date"`
	Reason      string          `json:"reason"`
	Status      InvoiceStatus   `json:"status"`
}

// InvoiceSummary is an invoice annotated with the payments recorded so far.
type InvoiceSummary struct {
	Invoice
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}
