package postgres

import (
	"context"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type paymentRepository struct {
	q DBTX
}

func NewPaymentRepository(q DBTX) repository.PaymentRepository {
	return &paymentRepository{q: q}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (invoice_id, amount, payment_date, method, reference)
	          VALUES ($1, $2, $3, $4, $5) RETURNING payment_id`
	return r.q.QueryRowContext(ctx, query, p.InvoiceID, p.Amount, p.PaymentDate, p.Method, p.Reference).Scan(&p.ID)
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]domain.Payment, error) {
	query := `SELECT payment_id, invoice_id, amount, payment_date, method, reference
	          FROM payments WHERE invoice_id = $1 ORDER BY payment_date DESC`
	rows, err := r.q.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.PaymentDate, &p.Method, &p.Reference); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) TotalPaid(ctx context.Context, invoiceID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`
	err := r.q.QueryRowContext(ctx, query, invoiceID).Scan(&total)
	return total, err
}
