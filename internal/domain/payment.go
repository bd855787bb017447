package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an append-only record against an invoice. The sum of a
// invoice's payments is the authoritative amount paid.
type Payment struct {
	ID          int64           `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
}
