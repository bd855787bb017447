package postgres

import (
	"context"
	"database/sql"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type invoiceRepository struct {
	q DBTX
}

func NewInvoiceRepository(q DBTX) repository.InvoiceRepository {
	return &invoiceRepository{q: q}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (user_id, amount, invoice_date, reason, status)
	          VALUES ($1, $2, $3, $4, $5) RETURNING invoice_id`
	return r.q.QueryRowContext(ctx, query, inv.UserID, inv.Amount, inv.InvoiceDate, inv.Reason, inv.Status).Scan(&inv.ID)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	query := `SELECT invoice_id, user_id, amount, invoice_date, reason, status
	          FROM invoices WHERE invoice_id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.UserID, &inv.Amount, &inv.InvoiceDate, &inv.Reason, &inv.Status)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invoiceRepository) ListByUser(ctx context.Context, userID int64, includePaid bool) ([]domain.Invoice, error) {
	query := `SELECT invoice_id, user_id, amount, invoice_date, reason, status
	          FROM invoices WHERE user_id = $1`
	args := []any{userID}
	if !includePaid {
		query += ` AND status = $2`
		args = append(args, domain.InvoiceStatusUnpaid)
	}
	query += ` ORDER BY invoice_date DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.Amount, &inv.InvoiceDate, &inv.Reason, &inv.Status); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `UPDATE invoices SET status = $1 WHERE invoice_id = $2`, domain.InvoiceStatusPaid, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
