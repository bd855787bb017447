package postgres

import (
	"context"
	"database/sql"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type reservationRepository struct {
	q DBTX
}

func NewReservationRepository(q DBTX) repository.ReservationRepository {
	return &reservationRepository{q: q}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	query := `INSERT INTO reservations (user_id, material_id, reservation_date, status)
	          VALUES ($1, $2, $3, $4) RETURNING reservation_id`
	return r.q.QueryRowContext(ctx, query, res.UserID, res.MaterialID, res.ReservationDate, res.Status).Scan(&res.ID)
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	query := `SELECT reservation_id, user_id, material_id, reservation_date, status
	          FROM reservations WHERE reservation_id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&res.ID, &res.UserID, &res.MaterialID, &res.ReservationDate, &res.Status)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) Cancel(ctx context.Context, id int64) error {
	query := `UPDATE reservations SET status = $1 WHERE reservation_id = $2 AND status = $3`
	result, err := r.q.ExecContext(ctx, query, domain.ReservationStatusCancelled, id, domain.ReservationStatusActive)
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

func (r *reservationRepository) ListActiveByUser(ctx context.Context, userID int64) ([]domain.ReservationDetail, error) {
	query := `SELECT r.reservation_id, r.user_id, r.material_id, r.reservation_date, r.status,
	                 m.material_name, m.author
	          FROM reservations r
	          JOIN materials m ON r.material_id = m.material_id
	          WHERE r.user_id = $1 AND r.status = $2
	          ORDER BY r.reservation_date`
	rows, err := r.q.QueryContext(ctx, query, userID, domain.ReservationStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.ReservationDetail
	for rows.Next() {
		var d domain.ReservationDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.MaterialID, &d.ReservationDate, &d.Status, &d.MaterialName, &d.Author); err != nil {
			return nil, err
		}
		reservations = append(reservations, d)
	}
	return reservations, rows.Err()
}
