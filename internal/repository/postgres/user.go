package postgres

import (
	"context"
	"database/sql"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type userRepository struct {
	q DBTX
}

func NewUserRepository(q DBTX) repository.UserRepository {
	return &userRepository{q: q}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, contact, user_type_id) VALUES ($1, $2, $3) RETURNING user_id`
	return r.q.QueryRowContext(ctx, query, u.Name, u.Contact, u.UserTypeID).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT user_id, name, contact, user_type_id FROM users WHERE user_id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Contact, &u.UserTypeID)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) UpdateContact(ctx context.Context, id int64, contact string) error {
	result, err := r.q.ExecContext(ctx, `UPDATE users SET contact = $1 WHERE user_id = $2`, contact, id)
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

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
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
