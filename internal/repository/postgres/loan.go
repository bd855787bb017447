package postgres

import (
	"context"
	"database/sql"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type loanRepository struct {
	q DBTX
}

func NewLoanRepository(q DBTX) repository.LoanRepository {
	return &loanRepository{q: q}
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (user_id, material_id, loan_date, return_date)
	          VALUES ($1, $2, $3, $4) RETURNING loan_id`
	return r.q.QueryRowContext(ctx, query, l.UserID, l.MaterialID, l.LoanDate, l.ReturnDate).Scan(&l.ID)
}

func (r *loanRepository) GetActiveByID(ctx context.Context, id int64) (*domain.LoanDetail, error) {
	d := &domain.LoanDetail{}
	query := `SELECT l.loan_id, l.user_id, l.material_id, l.loan_date, l.return_date,
	                 u.name, u.contact, u.user_type_id, m.material_name
	          FROM loans l
	          JOIN users u ON l.user_id = u.user_id
	          JOIN materials m ON l.material_id = m.material_id
	          WHERE l.loan_id = $1 AND l.actual_return_date IS NULL`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.UserID, &d.MaterialID, &d.LoanDate, &d.ReturnDate,
		&d.UserName, &d.UserContact, &d.UserTypeID, &d.MaterialName)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *loanRepository) CountActiveByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM loans WHERE user_id = $1 AND actual_return_date IS NULL`
	err := r.q.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *loanRepository) ListActiveByUser(ctx context.Context, userID int64) ([]domain.Loan, error) {
	query := `SELECT loan_id, user_id, material_id, loan_date, return_date, actual_return_date
	          FROM loans WHERE user_id = $1 AND actual_return_date IS NULL ORDER BY return_date`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.MaterialID, &l.LoanDate, &l.ReturnDate, &l.ActualReturnDate); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) SetReturned(ctx context.Context, id int64, returnedAt time.Time) error {
	query := `UPDATE loans SET actual_return_date = $1 WHERE loan_id = $2 AND actual_return_date IS NULL`
	result, err := r.q.ExecContext(ctx, query, returnedAt, id)
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

// overdueQuery joins each overdue loan with its borrower, material, and the
// borrower's late-fee rate; overdue_days counts whole days past the due date.
const overdueQuery = `SELECT l.loan_id, l.user_id, u.name, u.contact, u.user_type_id,
       l.material_id, m.material_name, l.return_date,
       (CURRENT_DATE - l.return_date) AS overdue_days,
       m.status, t.late_fee_per_day
FROM loans l
JOIN users u ON l.user_id = u.user_id
JOIN materials m ON l.material_id = m.material_id
JOIN user_types t ON u.user_type_id = t.type_id
WHERE l.actual_return_date IS NULL AND l.return_date < CURRENT_DATE`

func (r *loanRepository) ListOverdue(ctx context.Context) ([]domain.OverdueLoan, error) {
	rows, err := r.q.QueryContext(ctx, overdueQuery+` ORDER BY l.return_date`)
	if err != nil {
		return nil, err
	}
	return scanOverdueLoans(rows)
}

func (r *loanRepository) ListOverdueByUser(ctx context.Context, userID int64) ([]domain.OverdueLoan, error) {
	rows, err := r.q.QueryContext(ctx, overdueQuery+` AND l.user_id = $1 ORDER BY l.return_date`, userID)
	if err != nil {
		return nil, err
	}
	return scanOverdueLoans(rows)
}

func scanOverdueLoans(rows *sql.Rows) ([]domain.OverdueLoan, error) {
	defer rows.Close()

	var loans []domain.OverdueLoan
	for rows.Next() {
		var o domain.OverdueLoan
		if err := rows.Scan(&o.LoanID, &o.UserID, &o.UserName, &o.UserContact, &o.UserTypeID,
			&o.MaterialID, &o.MaterialName, &o.ReturnDate, &o.OverdueDays, &o.MaterialStatus, &o.LateFeePerDay); err != nil {
			return nil, err
		}
		loans = append(loans, o)
	}
	return loans, rows.Err()
}
